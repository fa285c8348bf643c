// Package bot is the operator chat bot: it answers verification queries
// and delivers alerts to the operator chat.
package bot

import (
	"strings"
	"time"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/pkg/log"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/service"
	tb "gopkg.in/tucnak/telebot.v2"
)

// Client is the part of *tb.Bot the operator bot talks through.
type Client interface {
	Send(to tb.Recipient, what interface{}, options ...interface{}) (*tb.Message, error)
	Reply(to *tb.Message, what interface{}, options ...interface{}) (*tb.Message, error)
}

type Bot struct {
	Client       Client
	Status       *service.StatusReporter
	OperatorChat int64

	tb *tb.Bot
}

type CommandHandler func(b *Bot, m *tb.Message, params []string)

var GlobalCommandMapper = make(map[string]CommandHandler)

func RegisterCommands(command string, f CommandHandler) {
	GlobalCommandMapper[command] = f
}

func New(token string, poller tb.Poller, status *service.StatusReporter, operatorChat int64) (*Bot, error) {
	if poller == nil {
		poller = &tb.LongPoller{Timeout: 15 * time.Second}
	}
	b, err := tb.NewBot(tb.Settings{
		Token:  token,
		Poller: poller,
	})
	if err != nil {
		return nil, err
	}
	bot := &Bot{
		Client:       b,
		Status:       status,
		OperatorChat: operatorChat,
		tb:           b,
	}
	b.Handle(tb.OnText, bot.Handle)
	b.Handle(tb.OnChannelPost, bot.Handle)
	return bot, nil
}

// Start polls updates until Stop is called.
func (b *Bot) Start() {
	b.tb.Start()
}

func (b *Bot) Stop() {
	b.tb.Stop()
}

// Send makes the bot usable as the telegram alert sender.
func (b *Bot) Send(to tb.Recipient, what interface{}, options ...interface{}) (*tb.Message, error) {
	return b.Client.Send(to, what, options...)
}

// Authorized reports whether c may query verifications. Only the operator chat may.
func (b *Bot) Authorized(c *tb.Chat) bool {
	return c != nil && b.OperatorChat != 0 && c.ID == b.OperatorChat
}

func (b *Bot) Reply(m *tb.Message, text string) {
	if _, err := b.Client.Reply(m, text, tb.Silent, tb.NoPreview); err != nil {
		log.Warn("Bot: reply to chat %v: %v", m.Chat.ID, err)
	}
}

// Handle dispatches a command message to its registered handler.
func (b *Bot) Handle(m *tb.Message) {
	command, params, ok := ParseCommand(m.Text)
	if !ok {
		return
	}
	handler, ok := GlobalCommandMapper[command]
	if !ok {
		return
	}
	if !b.Authorized(m.Chat) {
		log.Warn("Bot: /%v from unauthorized chat %v", command, m.Chat.ID)
		b.Reply(m, "This chat is not allowed to query verifications.")
		return
	}
	handler(b, m, params)
}

// ParseCommand splits "/command@BotName a b" into "command" and its params.
func ParseCommand(text string) (command string, params []string, ok bool) {
	if !strings.HasPrefix(text, "/") || len(text) <= 1 {
		return "", nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(text, "/"))
	if len(fields) == 0 {
		return "", nil, false
	}
	command = fields[0]
	if i := strings.IndexByte(command, '@'); i >= 0 {
		command = command[:i]
	}
	if command == "" {
		return "", nil, false
	}
	return command, fields[1:], true
}
