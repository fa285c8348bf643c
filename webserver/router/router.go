package router

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/pkg/log"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/webserver/controller"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/webserver/templates"
	"github.com/gin-gonic/gin"
)

type Options struct {
	AllowedOrigins []string
	DefaultOrigin  string
	WebhookCIDRs   []string
	// TrustedProxies whose forwarding headers are honored for the client address.
	TrustedProxies []string
}

func New(c *controller.Controller, opt Options) (*gin.Engine, error) {
	tmpl, err := templates.Load()
	if err != nil {
		return nil, err
	}
	guard, err := SourceGuard(opt.WebhookCIDRs)
	if err != nil {
		return nil, err
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(opt.TrustedProxies); err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tmpl)
	engine.Use(gin.Recovery(), RequestLogger(), CORS(opt.AllowedOrigins, opt.DefaultOrigin))

	page := engine.Group("/kyc")
	{
		page.GET("start", c.GetStartPage())
		page.GET("upload", c.GetUploadPage())
		page.GET("success", c.GetSuccessPage())
		page.GET("review", c.GetReviewPage())
		page.GET("rejected", c.GetRejectedPage())
	}
	api := engine.Group("/api/kyc")
	{
		api.GET("start", c.GetStartConfig)
		api.POST("create-session", c.PostCreateSession)
		api.GET("status", c.GetStatus)
		api.POST("webhook", guard, c.PostWebhook)
		api.GET("alerts.rss", c.GetAlertFeed)
	}
	engine.NoRoute(func(ctx *gin.Context) {
		ctx.String(http.StatusNotFound, "Not Found")
	})
	return engine, nil
}

// Run serves engine on address until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, address string, engine *gin.Engine) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("Listening on %v", address)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
