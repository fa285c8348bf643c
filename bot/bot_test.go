package bot

import (
	"testing"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/model"
	"github.com/stretchr/testify/assert"
	tb "gopkg.in/tucnak/telebot.v2"
)

type fakeClient struct {
	replies []string
}

func (f *fakeClient) Send(to tb.Recipient, what interface{}, options ...interface{}) (*tb.Message, error) {
	return &tb.Message{}, nil
}

func (f *fakeClient) Reply(to *tb.Message, what interface{}, options ...interface{}) (*tb.Message, error) {
	f.replies = append(f.replies, what.(string))
	return &tb.Message{}, nil
}

func TestParseCommand(t *testing.T) {
	cases := []struct {
		text    string
		command string
		params  []string
		ok      bool
	}{
		{"/status user_1", "status", []string{"user_1"}, true},
		{"/status@KYCLisaBot  user_1 ", "status", []string{"user_1"}, true},
		{"/tx", "tx", []string{}, true},
		{"/", "", nil, false},
		{"status user_1", "", nil, false},
		{"/@bot", "", nil, false},
	}
	for _, c := range cases {
		command, params, ok := ParseCommand(c.text)
		assert.Equal(t, c.ok, ok, c.text)
		assert.Equal(t, c.command, command, c.text)
		if c.ok {
			assert.Equal(t, c.params, params, c.text)
		}
	}
}

func TestHandle_Authorization(t *testing.T) {
	var called []string
	RegisterCommands("ping", func(b *Bot, m *tb.Message, params []string) {
		called = append(called, params...)
	})
	defer delete(GlobalCommandMapper, "ping")

	client := &fakeClient{}
	b := &Bot{Client: client, OperatorChat: -100}

	b.Handle(&tb.Message{Text: "/ping a", Chat: &tb.Chat{ID: 42}})
	assert.Empty(t, called)
	assert.Len(t, client.replies, 1)

	b.Handle(&tb.Message{Text: "/ping b", Chat: &tb.Chat{ID: -100}})
	assert.Equal(t, []string{"b"}, called)

	b.Handle(&tb.Message{Text: "/unknown", Chat: &tb.Chat{ID: -100}})
	assert.Len(t, client.replies, 1)
}

func TestAuthorized_NoOperatorChat(t *testing.T) {
	b := &Bot{}
	assert.False(t, b.Authorized(&tb.Chat{ID: 0}))
}

func TestFormatReport(t *testing.T) {
	assert.Equal(t, "No verification found for user u1.", FormatReport("u1", model.NotFoundReport()))

	name, country := "Jane Doe", "Nigeria"
	text := FormatReport("u1", &model.StatusReport{
		Status:        model.StatusFound,
		Decision:      model.DecisionReview,
		Timestamp:     "2024-01-02T03:04:05.006Z",
		Warnings:      []model.Warning{{Code: "AML_PEP"}, {Code: "DOC_BLUR"}},
		ExtractedData: &model.ExtractedData{FullName: &name, Country: &country},
	})
	assert.Contains(t, text, "Decision: review")
	assert.Contains(t, text, "Warnings: AML_PEP, DOC_BLUR")
	assert.Contains(t, text, "Name: Jane Doe")
	assert.Contains(t, text, "Country: Nigeria")
}
