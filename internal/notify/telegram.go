// Package notify delivers produced summaries to a configured Telegram chat.
package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier receives each successfully produced summary.
type Notifier interface {
	SummaryProduced(title, summary string)
}

// Noop is the notifier used when no Telegram credentials are configured.
type Noop struct{}

func (Noop) SummaryProduced(title, summary string) {}

type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

func (t *Telegram) SummaryProduced(title, summary string) {
	msg := tgbotapi.NewMessage(t.chatID, formatSummaryMessage(title, summary))
	msg.DisableWebPagePreview = true

	if _, err := t.api.Send(msg); err != nil {
		log.Printf("Failed to send telegram message: %v", err)
	}
}

func formatSummaryMessage(title, summary string) string {
	return fmt.Sprintf("📰 %s\n\n📝 %s", title, summary)
}
