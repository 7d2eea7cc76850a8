package service

import (
	"context"
	"fmt"
	"strings"

	"signal_bot/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Start: long-polling за командами подписки.
func (t *Telegram) Start(ctx context.Context) {
	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message"}

	updates := t.bot.GetUpdatesChan(u)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd := <-updates:
				t.handleUpdate(ctx, upd)
			}
		}
	}()
}

func (t *Telegram) Stop() {
	t.bot.StopReceivingUpdates()
}

func (t *Telegram) handleUpdate(ctx context.Context, update tgbot.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || !msg.IsCommand() {
		return
	}
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		if err := t.handleSubscribe(ctx, chatID); err != nil {
			logger.Error("handleSubscribe error: %v", err)
		}
	case "stop":
		if err := t.handleUnsubscribe(ctx, chatID); err != nil {
			logger.Error("handleUnsubscribe error: %v", err)
		}
	case "status":
		t.handleStatus(ctx, chatID)
	default:
		// прочие команды игнорируем
	}
}

func (t *Telegram) handleSubscribe(ctx context.Context, chatID int64) error {
	if t.repo.Has(chatID) {
		_, err := t.bot.Send(tgbot.NewMessage(chatID, "Ты уже подписан. /stop — отписаться."))
		return err
	}
	if err := t.repo.Add(ctx, chatID); err != nil {
		return err
	}
	_, err := t.bot.Send(tgbot.NewMessage(chatID,
		"✅ Подписка оформлена: сюда будут приходить сигналы.\n/status — открытые позиции, /stop — отписка."))
	return err
}

func (t *Telegram) handleUnsubscribe(ctx context.Context, chatID int64) error {
	if err := t.repo.Remove(ctx, chatID); err != nil {
		return err
	}
	_, err := t.bot.Send(tgbot.NewMessage(chatID, "⏹ Подписка отключена. /start — вернуть."))
	return err
}

func (t *Telegram) handleStatus(ctx context.Context, chatID int64) {
	positions := t.positions.ActivePositions()
	if len(positions) == 0 {
		_, _ = t.bot.Send(tgbot.NewMessage(chatID, "📭 Открытых сигналов нет"))
		return
	}

	var b strings.Builder
	b.WriteString("📊 Открытые сигналы:\n")
	for _, p := range positions {
		fmt.Fprintf(&b, "- %s: входов %d, последний %.8f, цель %.8f, дно %.8f\n",
			p.Symbol, len(p.EntryPrices), p.LastEntry(), p.SellTarget, p.BottomPrice)
	}
	_, _ = t.bot.Send(tgbot.NewMessage(chatID, b.String()))
}
