package service

import (
	"context"
	"fmt"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/telegram_bot/service/pg"
	"signal_bot/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// PositionSource — открытые позиции для команды /status.
type PositionSource interface {
	ActivePositions() []models.Position
}

// Telegram — канал уведомлений: карточки сигналов в админ-чат
// (с последующими правками) плюс рассылка подписчикам.
type Telegram struct {
	bot       *tgbot.BotAPI
	cfg       *config.Config
	repo      *pg.Subscribers
	positions PositionSource
}

func NewTelegram(cfg *config.Config, repo *pg.Subscribers, positions PositionSource) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}

	return &Telegram{
		bot:       b,
		cfg:       cfg,
		repo:      repo,
		positions: positions,
	}, nil
}

// SendSignal шлёт карточку в админ-чат и возвращает id сообщения —
// handle для будущих правок. 0 при неудаче.
func (t *Telegram) SendSignal(ctx context.Context, text string) (int, error) {
	sent, err := t.bot.Send(tgbot.NewMessage(t.cfg.Telegram.AdminChatID, text))
	if err != nil {
		return 0, fmt.Errorf("telegram send: %w", err)
	}
	return sent.MessageID, nil
}

func (t *Telegram) EditSignal(ctx context.Context, msgID int, text string) error {
	edit := tgbot.NewEditMessageText(t.cfg.Telegram.AdminChatID, msgID, text)
	if _, err := t.bot.Request(edit); err != nil {
		return fmt.Errorf("telegram edit: %w", err)
	}
	return nil
}

// Broadcast — копии карточек подписчикам, без отслеживания handle.
func (t *Telegram) Broadcast(ctx context.Context, text string) {
	for _, chatID := range t.repo.All() {
		if chatID == t.cfg.Telegram.AdminChatID {
			continue
		}
		if _, err := t.bot.Send(tgbot.NewMessage(chatID, text)); err != nil {
			logger.Error("[TG] broadcast %d: %v", chatID, err)
		}
	}
}

// SendService — служебные сообщения в админ-чат (старт/стоп и т.п.).
func (t *Telegram) SendService(ctx context.Context, format string, args ...any) {
	msg := tgbot.NewMessage(t.cfg.Telegram.AdminChatID, fmt.Sprintf(format, args...))
	if _, err := t.bot.Send(msg); err != nil {
		logger.Error("[TG] service: %v", err)
	}
}
