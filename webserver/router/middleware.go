package router

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/common"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/pkg/log"
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/yl2chen/cidranger"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "RequestID"
)

// RequestLogger tags every request with an id and logs it once it is served.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := gonanoid.New()
		if err != nil {
			id = "-"
		}
		ctx.Set(RequestIDKey, id)
		ctx.Header(RequestIDHeader, id)
		start := time.Now()

		ctx.Next()

		status := ctx.Writer.Status()
		logf := log.Info
		if status >= http.StatusInternalServerError {
			logf = log.Warn
		}
		logf("[%v] %v %v %v %v %v %v", id, ctx.ClientIP(), ctx.Request.Method, ctx.Request.URL.Path, status, time.Since(start), ctx.Errors.String())
	}
}

// CORS reflects Origin when it is allowed and falls back to defaultOrigin otherwise.
// Preflight requests are answered here with 204.
func CORS(allowed []string, defaultOrigin string) gin.HandlerFunc {
	set := common.SliceToSet(allowed)
	return func(ctx *gin.Context) {
		origin := ctx.GetHeader("Origin")
		if _, ok := set[origin]; !ok || origin == "" {
			origin = defaultOrigin
		}
		h := ctx.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, X-Signature")
		h.Add("Vary", "Origin")
		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	}
}

// SourceGuard rejects callers outside cidrs with 403. An empty list allows every caller.
func SourceGuard(cidrs []string) (gin.HandlerFunc, error) {
	if len(cidrs) == 0 {
		return func(ctx *gin.Context) { ctx.Next() }, nil
	}
	ranger := cidranger.NewPCTrieRanger()
	for _, c := range cidrs {
		if !strings.Contains(c, "/") {
			if ip := net.ParseIP(c); ip != nil && ip.To4() != nil {
				c += "/32"
			} else {
				c += "/128"
			}
		}
		_, network, err := net.ParseCIDR(c)
		if err != nil {
			return nil, fmt.Errorf("bad webhook network %q: %w", c, err)
		}
		if err := ranger.Insert(cidranger.NewBasicRangerEntry(*network)); err != nil {
			return nil, err
		}
	}
	return func(ctx *gin.Context) {
		ip := net.ParseIP(ctx.ClientIP())
		if ip != nil {
			if ok, err := ranger.Contains(ip); err == nil && ok {
				ctx.Next()
				return
			}
		}
		log.Warn("SourceGuard: rejected %v %v", ctx.ClientIP(), ctx.Request.URL.Path)
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}, nil
}
