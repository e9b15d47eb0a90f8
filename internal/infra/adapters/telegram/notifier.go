package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gifticon-keeper/internal/config"
	"gifticon-keeper/internal/domain/model"
	"gifticon-keeper/internal/domain/ports/adapter"
)

var _ adapter.Notifier = (*Notifier)(nil)

// Notifier pushes expiry alerts to a Telegram chat via the Bot API.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewNotifier(cfg *config.BotConfig) (*Notifier, error) {
	if cfg == nil || cfg.Token == "" {
		return nil, errors.New("bot token is empty")
	}
	if cfg.ChatID == 0 {
		return nil, errors.New("bot chat id is empty")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	return &Notifier{bot: bot, chatID: cfg.ChatID}, nil
}

func (n *Notifier) NotifyExpiring(ctx context.Context, g *model.Gifticon, daysLeft int) error {
	var text string
	switch {
	case daysLeft <= 0:
		text = fmt.Sprintf("⏰ %s (%s) expires today. Use it now!", g.Name, g.Brand)
	case daysLeft == 1:
		text = fmt.Sprintf("⏰ %s (%s) expires tomorrow.", g.Name, g.Brand)
	default:
		text = fmt.Sprintf("⏰ %s (%s) expires in %d days.", g.Name, g.Brand, daysLeft)
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	_, err := n.bot.Send(msg)
	return err
}
