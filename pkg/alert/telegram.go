package alert

import (
	"context"
	"fmt"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/model"
	tb "gopkg.in/tucnak/telebot.v2"
)

func init() {
	Register("telegram", func(opt Options) (Sink, error) {
		if opt.Telegram == nil || opt.TelegramChat == 0 {
			return nil, fmt.Errorf("telegram sink: telegram-token and telegram-chat are required")
		}
		return &Telegram{Sender: opt.Telegram, Chat: &tb.Chat{ID: opt.TelegramChat}}, nil
	})
}

type Telegram struct {
	Sender Sender
	Chat   tb.Recipient
}

// Send ignores ctx: telebot has no per-call context and relies on its own client timeout.
func (t *Telegram) Send(ctx context.Context, a *model.Alert) error {
	if _, err := t.Sender.Send(t.Chat, a.Text(), tb.NoPreview); err != nil {
		return fmt.Errorf("telegram sink: %w", err)
	}
	return nil
}
