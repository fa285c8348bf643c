// Package alert delivers high-risk verification outcomes to the operator channels.
package alert

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/db"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/model"
	tb "gopkg.in/tucnak/telebot.v2"
)

type Sink interface {
	Send(ctx context.Context, a *model.Alert) error
}

// Sender is the part of *tb.Bot used to deliver messages.
type Sender interface {
	Send(to tb.Recipient, what interface{}, options ...interface{}) (*tb.Message, error)
}

type Options struct {
	HTTP       *http.Client
	WebhookURL string

	Telegram     Sender
	TelegramChat int64

	Store db.Store
	// FeedLink is the public URL of the alert feed.
	FeedLink string
}

type Creator func(opt Options) (Sink, error)

var creatorMapping = make(map[string]Creator)

func Register(name string, creator Creator) {
	creatorMapping[name] = creator
}

func NewSink(name string, opt Options) (Sink, error) {
	creator, ok := creatorMapping[name]
	if !ok {
		return nil, fmt.Errorf("unexpected alert sink: %v", name)
	}
	return creator(opt)
}

// NewSinks builds every named sink and fans alerts out to all of them.
func NewSinks(names []string, opt Options) (Multi, error) {
	var m Multi
	for _, name := range names {
		s, err := NewSink(name, opt)
		if err != nil {
			return nil, err
		}
		m = append(m, s)
	}
	return m, nil
}

// Multi sends to every sink and reports the failures together.
type Multi []Sink

func (m Multi) Send(ctx context.Context, a *model.Alert) error {
	var errs []string
	for _, s := range m {
		if err := s.Send(ctx, a); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("alert: %v", strings.Join(errs, "; "))
	}
	return nil
}
