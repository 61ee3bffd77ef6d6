package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"pomo-hub/internal/logger"
)

// Telegram sends messages to a fixed chat. Optional second channel next to
// the webhook; outbound only, the tracker has no inbound chat surface.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

func (t *Telegram) Notify(_ context.Context, message string) {
	if _, err := t.api.Send(tgbotapi.NewMessage(t.chatID, message)); err != nil {
		logger.Warn("telegram delivery failed",
			zap.Int64("chat_id", t.chatID),
			zap.Error(err))
	}
}
