// Package notifier шлёт операционные уведомления о прогонах сидера.
package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"winedeck/internal/domain/service/catalog"
)

type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// SendSeedReport отправляет итог прогона сидера.
func (b *TelegramBot) SendSeedReport(ctx context.Context, result catalog.SeedResult) error {
	text := fmt.Sprintf(
		"🍷 <b>Catalog seeded</b>\n\n"+
			"📥 <b>Collected:</b> %d\n"+
			"🎯 <b>Sampled:</b> %d\n"+
			"💾 <b>Upserted:</b> %d\n"+
			"⚠️ <b>Errors:</b> %d",
		result.Collected,
		result.Sampled,
		result.Upserted,
		result.Errors,
	)

	msg := tu.Message(
		tu.ID(b.chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendText отправляет простое текстовое сообщение.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	_, err := b.bot.SendMessage(ctx, msg)
	return err
}
