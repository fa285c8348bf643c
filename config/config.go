package config

import (
	log2 "log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/common"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/pkg/log"
	"github.com/stevenroose/gonfig"
)

type Params struct {
	Address string `id:"address" short:"a" default:"0.0.0.0:8787" desc:"Listening address"`
	Config  string `id:"config" short:"c" default:"$HOME/.config/kyclisa" desc:"KYCLisa data directory"`

	Store         string `id:"store" default:"bolt" desc:"Key-value store backend: bolt or redis"`
	RedisAddr     string `id:"redis-addr" default:"127.0.0.1:6379"`
	RedisPassword string `id:"redis-password"`
	RedisDB       int    `id:"redis-db" default:"0"`

	ProviderURL     string `id:"provider-url" default:"https://api2.idanalyzer.com" desc:"Base URL of the verification provider API"`
	ProviderAPIKey  string `id:"provider-api-key" desc:"Required to create verification sessions"`
	ProviderProfile string `id:"provider-profile" desc:"Provider KYC profile id"`

	WebhookSecret       string `id:"webhook-secret" desc:"Shared secret of decision webhooks; webhooks are rejected when empty"`
	WebhookAllowedCIDRs string `id:"webhook-allowed-cidrs" desc:"Comma separated networks allowed to call the webhook; empty allows all"`

	AlertSinks      string `id:"alert-sinks" default:"webhook" desc:"Comma separated alert sinks: webhook, telegram, feed"`
	AlertWebhookURL string `id:"alert-webhook-url" desc:"Chat webhook URL receiving high-risk alerts"`
	TelegramToken   string `id:"telegram-token" desc:"Operator bot token"`
	TelegramChat    int64  `id:"telegram-chat" desc:"Operator chat id receiving alerts"`

	CompanyName    string `id:"company-name" default:"StreamAlphaX"`
	LogoURL        string `id:"logo-url" default:"https://streamalphax.com/logo.png"`
	WelcomeMessage string `id:"welcome-message" default:"Your secure financial identity verification is ready"`

	AllowedOrigins string `id:"allowed-origins" default:"https://streamalphax.com,https://app.streamalphax.com" desc:"Comma separated CORS origins reflected back"`
	DefaultOrigin  string `id:"default-origin" default:"https://streamalphax.com"`
	TrustedProxies string `id:"trusted-proxies" desc:"Comma separated proxies whose X-Forwarded-For is honored"`

	HTTPTimeout   int    `id:"http-timeout" default:"15" desc:"Timeout in seconds of calls to the provider and alert sinks"`
	OutboundProxy string `id:"outbound-proxy" desc:"socks5 proxy for outbound calls, e.g. socks5://127.0.0.1:1080"`

	LogLevel        string `id:"log-level" default:"info" desc:"Optional values: trace, debug, info, warn or error"`
	LogFile         string `id:"log-file" desc:"The path of log file"`
	LogMaxDays      int64  `id:"log-max-days" default:"3" desc:"Maximum number of days to keep log files"`
	LogDisableColor bool   `id:"log-disable-color"`
}

// Load reads parameters from flags and KYC_ prefixed environment variables.
func Load(conf gonfig.Conf) (*Params, error) {
	var params Params
	if conf.EnvPrefix == "" {
		conf.EnvPrefix = "KYC_"
	}
	conf.FileDisable = true
	if err := gonfig.Load(&params, conf); err != nil {
		return nil, err
	}
	// replace all dots of the filename with underlines
	params.Config = filepath.Join(
		filepath.Dir(params.Config),
		strings.ReplaceAll(filepath.Base(params.Config), ".", "_"),
	)
	var err error
	// expand '~' with user home
	if params.Config, err = common.HomeExpand(params.Config); err != nil {
		return nil, err
	}
	if params.LogFile, err = common.HomeExpand(params.LogFile); err != nil {
		return nil, err
	}
	if strings.Contains(params.Config, "$HOME") {
		if h, err := os.UserHomeDir(); err == nil {
			params.Config = strings.ReplaceAll(params.Config, "$HOME", h)
		}
	}
	return &params, nil
}

func (p *Params) Origins() []string {
	return common.SplitComma(p.AllowedOrigins)
}

func (p *Params) Sinks() []string {
	return common.SplitComma(p.AlertSinks)
}

func (p *Params) WebhookCIDRs() []string {
	return common.SplitComma(p.WebhookAllowedCIDRs)
}

func (p *Params) Proxies() []string {
	return common.SplitComma(p.TrustedProxies)
}

func (p *Params) Timeout() time.Duration {
	if p.HTTPTimeout <= 0 {
		return 15 * time.Second
	}
	return time.Duration(p.HTTPTimeout) * time.Second
}

var (
	params Params
	once   sync.Once
)

func initFunc() {
	p, err := Load(gonfig.Conf{FlagIgnoreUnknown: false})
	if err != nil {
		if err.Error() != "unexpected word while parsing flags: '-test.v'" {
			log2.Fatal(err)
		}
		p = &Params{}
	}
	params = *p
	if err := os.MkdirAll(params.Config, 0700); err != nil {
		log2.Fatal(err)
	}
	logWay := "console"
	if params.LogFile != "" {
		logWay = "file"
	}
	log.InitLog(logWay, params.LogFile, params.LogLevel, params.LogMaxDays, params.LogDisableColor)
}

// GetConfig loads the process configuration once and initializes logging.
func GetConfig() *Params {
	once.Do(initFunc)
	return &params
}
