package notify_test

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/RajatSinghRajawat/maanvibackend/internal/notify"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v4"
)

type sentMessage struct {
	chat string
	text string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMessage
	fail map[string]bool
}

func (f *fakeSender) Send(to telebot.Recipient, what any, _ ...any) (*telebot.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[to.Recipient()] {
		return nil, errors.New("chat not found")
	}
	text, _ := what.(string)
	f.sent = append(f.sent, sentMessage{chat: to.Recipient(), text: text})
	return &telebot.Message{}, nil
}

func TestTelegram_EnquiryCreated(t *testing.T) {
	t.Parallel()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	enquiry := models.Enquiry{
		ID:       uuid.New(),
		Name:     "Ann <Lee>",
		Email:    "ann@example.com",
		Phone:    func() *string { s := "+100200300"; return &s }(),
		Topic:    "Pricing & plans",
		Priority: models.PriorityHigh,
		Channel:  models.ChannelWebsite,
	}

	t.Run("sends to every chat", func(t *testing.T) {
		t.Parallel()
		sender := &fakeSender{fail: map[string]bool{"200": true}}
		notifier := notify.NewTelegramWithSender(log, sender, []int64{100, 200, 300})

		notifier.EnquiryCreated(t.Context(), enquiry)
		notifier.Wait()

		require.Len(t, sender.sent, 2)
		assert.Equal(t, "100", sender.sent[0].chat)
		assert.Equal(t, "300", sender.sent[1].chat)
		assert.Contains(t, sender.sent[0].text, "Ann &lt;Lee&gt;")
		assert.Contains(t, sender.sent[0].text, "Pricing &amp; plans")
		assert.Contains(t, sender.sent[0].text, "+100200300")
		assert.Contains(t, sender.sent[0].text, "High")
	})

	t.Run("no chats configured", func(t *testing.T) {
		t.Parallel()
		sender := &fakeSender{}
		notifier := notify.NewTelegramWithSender(log, sender, nil)

		notifier.EnquiryCreated(t.Context(), enquiry)
		notifier.Wait()

		assert.Empty(t, sender.sent)
	})
}
