package alert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/model"
	jsoniter "github.com/json-iterator/go"
)

func init() {
	Register("webhook", func(opt Options) (Sink, error) {
		if opt.WebhookURL == "" {
			return nil, fmt.Errorf("webhook sink: alert-webhook-url is empty")
		}
		client := opt.HTTP
		if client == nil {
			client = http.DefaultClient
		}
		return &Webhook{URL: opt.WebhookURL, HTTP: client}, nil
	})
}

// Webhook posts alerts to a chat webhook. Text is read by Slack-like endpoints and Content by Discord-like ones.
type Webhook struct {
	URL  string
	HTTP *http.Client
}

type webhookBody struct {
	Text    string `json:"text"`
	Content string `json:"content"`
	*model.Alert
}

func (w *Webhook) Send(ctx context.Context, a *model.Alert) error {
	text := a.Text()
	b, err := jsoniter.Marshal(webhookBody{Text: text, Content: text, Alert: a})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := w.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("webhook sink: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook sink: unexpected status %v", resp.StatusCode)
	}
	return nil
}
