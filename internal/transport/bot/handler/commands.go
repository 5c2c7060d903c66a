package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"winedeck/internal/worker"
)

const startMessage = `🍷 <b>winedeck admin</b>

/seed [target] — запустить пересборку каталога
/status — статус последнего прогона сидера
/count — количество вин в каталоге`

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, startMessage)
}

// OnSeed ставит прогон сидера в очередь. Необязательный аргумент —
// целевой размер выборки.
func (h *Handler) OnSeed(ctx *th.Context, msg telego.Message) error {
	var payload worker.SeedTaskPayload

	parts := strings.Fields(msg.Text)
	if len(parts) > 1 {
		target, err := strconv.Atoi(parts[1])
		if err != nil || target < 1 {
			return h.sendHTML(ctx, msg.Chat.ID, "⚠️ target должен быть положительным числом")
		}

		payload.Target = target
	}

	if err := h.enqueuer.EnqueueSeed(ctx, payload); err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf("❌ не удалось поставить задачу: %v", err))
	}

	return h.sendHTML(ctx, msg.Chat.ID, "🚀 прогон сидера поставлен в очередь")
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	status, err := h.statusProvider.Status(ctx)
	if err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf("❌ не удалось получить статус: %v", err))
	}

	text := fmt.Sprintf(`📊 <b>Сидер:</b> %s

📥 <b>Собрано:</b> %d
🎯 <b>Отобрано:</b> %d
💾 <b>Залито:</b> %d
⚠️ <b>Ошибок:</b> %d`,
		stateToStatus(status.State),
		status.Result.Collected,
		status.Result.Sampled,
		status.Result.Upserted,
		status.Result.Errors,
	)

	if status.Error != "" {
		text += fmt.Sprintf("\n\n<b>Ошибка:</b> %s", status.Error)
	}

	return h.sendHTML(ctx, msg.Chat.ID, text)
}

func (h *Handler) OnCount(ctx *th.Context, msg telego.Message) error {
	count, err := h.catalogService.CatalogSize(ctx)
	if err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf("❌ не удалось посчитать каталог: %v", err))
	}

	return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf("🍷 в каталоге %d вин", count))
}

func stateToStatus(state string) string {
	switch state {
	case "running":
		return "🟢 работает"
	case "done":
		return "✅ завершён"
	case "failed":
		return "❌ упал"
	default:
		return "⚪ не запускался"
	}
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})

	return err
}
