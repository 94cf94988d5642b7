// Package notify forwards newly created enquiries to Telegram chats.
package notify

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"gopkg.in/telebot.v4"
)

const telegramRateTimeout = 100 * time.Millisecond

// Sender is the part of the Telegram bot API the notifier needs.
type Sender interface {
	Send(to telebot.Recipient, what any, opts ...any) (*telebot.Message, error)
}

// Telegram posts a short message about every new enquiry to the configured chats.
// Messages are sent in the background so the API request is never held up by Telegram.
type Telegram struct {
	sender  Sender
	log     *slog.Logger
	chatIDs []int64
	pause   time.Duration
	wg      sync.WaitGroup
}

// NewTelegram authorizes the bot with the given token and returns a notifier for the chats.
func NewTelegram(log *slog.Logger, token string, chatIDs []int64) (*Telegram, error) {
	bot, err := telebot.NewBot(telebot.Settings{Token: token})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on account", "account", bot.Me.Username)

	return NewTelegramWithSender(log, bot, chatIDs), nil
}

// NewTelegramWithSender returns a notifier that sends through sender.
func NewTelegramWithSender(log *slog.Logger, sender Sender, chatIDs []int64) *Telegram {
	return &Telegram{sender: sender, log: log, chatIDs: chatIDs, pause: telegramRateTimeout}
}

// EnquiryCreated schedules the notification and returns immediately.
func (t *Telegram) EnquiryCreated(ctx context.Context, enquiry models.Enquiry) {
	if len(t.chatIDs) == 0 {
		return
	}

	message := formatEnquiryMessage(enquiry)
	logCtx := context.WithoutCancel(ctx)

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		for i, chatID := range t.chatIDs {
			if i > 0 {
				time.Sleep(t.pause)
			}
			if _, err := t.sender.Send(telebot.ChatID(chatID), message, telebot.ModeHTML); err != nil {
				t.log.WarnContext(logCtx, "Failed to send enquiry notification",
					"chat_id", chatID, "enquiry_id", enquiry.ID, "error", err)
			}
		}
	}()
}

// Wait blocks until every scheduled notification has been sent.
func (t *Telegram) Wait() {
	t.wg.Wait()
}

func formatEnquiryMessage(enquiry models.Enquiry) string {
	var builder strings.Builder

	builder.WriteString("📩 <b>New enquiry</b>\n\n")
	fmt.Fprintf(&builder, "<b>Name:</b> %s\n", html.EscapeString(enquiry.Name))
	fmt.Fprintf(&builder, "<b>Email:</b> %s\n", html.EscapeString(enquiry.Email))
	if enquiry.Phone != nil {
		fmt.Fprintf(&builder, "<b>Phone:</b> %s\n", html.EscapeString(*enquiry.Phone))
	}
	fmt.Fprintf(&builder, "<b>Topic:</b> %s\n", html.EscapeString(enquiry.Topic))
	fmt.Fprintf(&builder, "<b>Priority:</b> %s\n", enquiry.Priority)
	fmt.Fprintf(&builder, "<b>Channel:</b> %s\n", enquiry.Channel)
	if enquiry.Message != nil {
		fmt.Fprintf(&builder, "\n%s\n", html.EscapeString(*enquiry.Message))
	}

	return builder.String()
}
