package service

import (
	"context"
	"time"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/db"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/model"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/pkg/alert"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/pkg/log"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/errgroup"
)

// TimestampLayout is ISO-8601 with milliseconds in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

const DefaultAlertTimeout = 15 * time.Second

const StatusProcessed = "processed"

type IngestResult struct {
	Status        string         `json:"status"`
	UserID        string         `json:"userId"`
	TransactionID string         `json:"transactionId"`
	Decision      model.Decision `json:"decision"`
}

// WebhookIngestor authenticates, normalizes and persists provider decisions.
type WebhookIngestor struct {
	store        db.Store
	sink         alert.Sink
	secret       string
	alertTimeout time.Duration
	// Now is the clock used for the receipt timestamp.
	Now func() time.Time
}

// NewWebhookIngestor returns an ingestor. A nil sink disables alerting.
func NewWebhookIngestor(store db.Store, sink alert.Sink, secret string, alertTimeout time.Duration) *WebhookIngestor {
	if alertTimeout <= 0 {
		alertTimeout = DefaultAlertTimeout
	}
	return &WebhookIngestor{
		store:        store,
		sink:         sink,
		secret:       secret,
		alertTimeout: alertTimeout,
		Now:          time.Now,
	}
}

func (w *WebhookIngestor) Ingest(ctx context.Context, rawBody []byte, signature string) (*IngestResult, error) {
	if !VerifySignature(rawBody, signature, w.secret) {
		return nil, newError(KindUnauthenticated, nil, "invalid signature")
	}
	var payload model.DecisionPayload
	if err := jsoniter.Unmarshal(rawBody, &payload); err != nil {
		return nil, newError(KindMalformedPayload, err, "invalid payload")
	}
	if payload.TransactionID == "" || payload.Decision == "" {
		return nil, newError(KindMalformedPayload, nil, "missing transactionId or decision")
	}
	if !payload.Decision.Valid() {
		log.Warn("Webhook: transaction %v carries unknown decision %q", payload.TransactionID, payload.Decision)
	}
	if payload.CustomData == "" {
		log.Warn("Webhook: transaction %v carries no customData", payload.TransactionID)
	}

	record := w.NewRecord(&payload)
	if err := w.persist(ctx, record); err != nil {
		return nil, newError(KindInternal, err, "failed to store verification result")
	}
	log.Info("Webhook: user %v, transaction %v, decision %v, %v warnings (%v AML)",
		record.UserID, record.TransactionID, record.Decision, len(record.Warnings), len(record.AMLWarnings))

	if a := model.AlertFor(record); a != nil {
		w.alert(a)
	}
	return &IngestResult{
		Status:        StatusProcessed,
		UserID:        record.UserID,
		TransactionID: record.TransactionID,
		Decision:      record.Decision,
	}, nil
}

// NewRecord builds the record stored for a decision received now.
func (w *WebhookIngestor) NewRecord(p *model.DecisionPayload) *model.VerificationRecord {
	warnings := p.Warning
	if warnings == nil {
		warnings = []model.Warning{}
	}
	return &model.VerificationRecord{
		UserID:        p.CustomData,
		TransactionID: p.TransactionID,
		Decision:      p.Decision,
		Timestamp:     w.Now().UTC().Format(TimestampLayout),
		Warnings:      warnings,
		AMLWarnings:   model.AMLWarnings(warnings),
		ReviewScore:   p.ReviewScore,
		RejectScore:   p.RejectScore,
		ExtractedData: p.Extract(),
		Images:        p.OutputImage,
		AuditReport:   p.OutputFile,
	}
}

// persist writes both keys concurrently. The writes are not atomic: transaction:* is only an index.
func (w *WebhookIngestor) persist(ctx context.Context, r *model.VerificationRecord) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.store.Set(gctx, model.UserKey(r.UserID), r, model.OutcomeTTL)
	})
	g.Go(func() error {
		return w.store.Set(gctx, model.TransactionKey(r.TransactionID), r.UserID, model.OutcomeTTL)
	})
	return g.Wait()
}

// alert delivers a in the background and waits for it, bounded by alertTimeout.
// Failures are logged only; the webhook response does not depend on them.
func (w *WebhookIngestor) alert(a *model.Alert) {
	if w.sink == nil {
		log.Warn("Webhook: no alert sink configured, dropping %v", a.Title())
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), w.alertTimeout)
	defer cancel()
	task := alert.Dispatch(ctx, w.sink, a, func(err error) {
		log.Error("Alert for transaction %v: %v", a.TransactionID, err)
	})
	if err := task.Wait(ctx); err == context.DeadlineExceeded {
		log.Error("Alert for transaction %v: timed out after %v", a.TransactionID, w.alertTimeout)
	}
}
