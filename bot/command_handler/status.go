package command_handler

import (
	"context"
	"time"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/bot"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/pkg/log"
	tb "gopkg.in/tucnak/telebot.v2"
)

func init() {
	bot.RegisterCommands("status", Status)
}

// Status replies with the latest outcome of a user: /status <userId>
func Status(b *bot.Bot, m *tb.Message, params []string) {
	if len(params) < 1 {
		b.Reply(m, "usage: /status <userId>")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("Bot: status of %v queried in chat %v", params[0], m.Chat.ID)
	report, err := b.Status.GetStatus(ctx, params[0])
	if err != nil {
		b.Reply(m, err.Error())
		return
	}
	b.Reply(m, bot.FormatReport(params[0], report))
}
