package command_handler

import (
	"context"
	"fmt"
	"time"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/bot"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/model"
	tb "gopkg.in/tucnak/telebot.v2"
)

func init() {
	bot.RegisterCommands("tx", Transaction)
}

// Transaction replies with the outcome a transaction produced: /tx <transactionId>
func Transaction(b *bot.Bot, m *tb.Message, params []string) {
	if len(params) < 1 {
		b.Reply(m, "usage: /tx <transactionId>")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	userID, report, err := b.Status.GetStatusByTransaction(ctx, params[0])
	if err != nil {
		b.Reply(m, err.Error())
		return
	}
	if report.Status == model.StatusNotFound && userID == "" {
		b.Reply(m, fmt.Sprintf("No verification found for transaction %v.", params[0]))
		return
	}
	b.Reply(m, bot.FormatReport(userID, report))
}
