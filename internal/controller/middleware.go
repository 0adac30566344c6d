package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// UpdateCounter учитывает входящие обновления
type UpdateCounter interface {
	IncUpdate(kind string)
}

// UpdateKind - тип обновления для метрик
func UpdateKind(update *models.Update) string {
	switch {
	case update.Message != nil:
		return "message"
	case update.CallbackQuery != nil:
		return "callback"
	default:
		return "other"
	}
}

// UpdateMetrics считает обновления до передачи обработчику
func UpdateMetrics(counter UpdateCounter) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			counter.IncUpdate(UpdateKind(update))
			next(ctx, b, update)
		}
	}
}
