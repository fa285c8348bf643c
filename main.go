package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/bot"
	_ "github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/bot/command_handler"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/config"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/db"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/pkg/alert"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/pkg/httpclient"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/pkg/log"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/pkg/provider"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/service"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/webserver/controller"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/webserver/router"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/webserver/templates"
	"github.com/gin-gonic/gin"
)

func main() {
	conf := config.GetConfig()
	if conf.LogLevel != "debug" && conf.LogLevel != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := db.NewStore(conf.Store, db.Options{
		Dir:           conf.Config,
		RedisAddr:     conf.RedisAddr,
		RedisPassword: conf.RedisPassword,
		RedisDB:       conf.RedisDB,
	})
	if err != nil {
		log.Fatal("Store: %v", err)
	}
	defer store.Close()

	client, err := httpclient.New(conf.Timeout(), conf.OutboundProxy)
	if err != nil {
		log.Fatal("HTTP client: %v", err)
	}

	var creator service.SessionCreator
	if conf.ProviderAPIKey != "" {
		creator = provider.New(conf.ProviderURL, conf.ProviderAPIKey, client)
	} else {
		log.Warn("provider-api-key is not set: verification sessions cannot be created")
	}
	if conf.WebhookSecret == "" {
		log.Warn("webhook-secret is not set: every decision webhook will be rejected")
	}

	sinkOpt := alert.Options{
		HTTP:         client,
		WebhookURL:   conf.AlertWebhookURL,
		TelegramChat: conf.TelegramChat,
		Store:        store,
	}
	var operatorBot *bot.Bot
	if conf.TelegramToken != "" {
		if operatorBot, err = bot.New(conf.TelegramToken, nil, nil, conf.TelegramChat); err != nil {
			log.Fatal("Bot: %v", err)
		}
		sinkOpt.Telegram = operatorBot
	}
	var sinkNames []string
	var feed *alert.Feed
	for _, name := range conf.Sinks() {
		switch {
		case name == "webhook" && conf.AlertWebhookURL == "":
			log.Warn("alert-webhook-url is not set: webhook alerts are disabled")
			continue
		case name == "feed":
			feed = alert.NewFeed(store, "")
		}
		sinkNames = append(sinkNames, name)
	}
	var alerts alert.Sink
	if len(sinkNames) > 0 {
		sinks, err := alert.NewSinks(sinkNames, sinkOpt)
		if err != nil {
			log.Fatal("Alert sinks: %v", err)
		}
		alerts = sinks
	}

	services := service.New(service.Env{
		Store:           store,
		Provider:        creator,
		ProviderProfile: conf.ProviderProfile,
		WebhookSecret:   conf.WebhookSecret,
		Alerts:          alerts,
		AlertTimeout:    conf.Timeout(),
	})
	if operatorBot != nil {
		operatorBot.Status = services.Status
		go operatorBot.Start()
		defer operatorBot.Stop()
	}

	c := controller.New(services, feed, templates.Page{
		Company: conf.CompanyName,
		Logo:    conf.LogoURL,
		Message: conf.WelcomeMessage,
	})
	engine, err := router.New(c, router.Options{
		AllowedOrigins: conf.Origins(),
		DefaultOrigin:  conf.DefaultOrigin,
		WebhookCIDRs:   conf.WebhookCIDRs(),
		TrustedProxies: conf.Proxies(),
	})
	if err != nil {
		log.Fatal("Router: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := router.Run(ctx, conf.Address, engine); err != nil {
		log.Error("%v", err)
	}
}
