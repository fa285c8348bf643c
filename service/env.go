package service

import (
	"time"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/db"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/pkg/alert"
)

// Env carries everything the operations of this package depend on.
type Env struct {
	Store db.Store
	// Provider is nil when no provider API key is configured.
	Provider        SessionCreator
	ProviderProfile string
	WebhookSecret   string
	// Alerts may be nil, in which case alerts are logged and dropped.
	Alerts       alert.Sink
	AlertTimeout time.Duration
}

type Services struct {
	Webhook  *WebhookIngestor
	Sessions *SessionManager
	Status   *StatusReporter
}

func New(env Env) *Services {
	return &Services{
		Webhook:  NewWebhookIngestor(env.Store, env.Alerts, env.WebhookSecret, env.AlertTimeout),
		Sessions: NewSessionManager(env.Store, env.Provider, env.ProviderProfile),
		Status:   NewStatusReporter(env.Store),
	}
}
