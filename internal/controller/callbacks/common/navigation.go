package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/easestay_bot/internal/view"
)

// ========================
// Common Navigation Handlers
// ========================

// HandleHome возвращает пользователя к главному экрану его роли
func HandleHome(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithContext(ctx, b, callback, h, func(hc *HandlerContext) {
		hc.ClearState()
		hc.Handler.BookingService.Abandon(hc.TelegramID)
		hc.Handler.RoomStatusService.Cancel(hc.TelegramID)

		ShowOrLog(hc, hc.ShowScreen(HomeScreen(ctx, h, hc.TelegramID, hc.Session, 0)), "home")
		hc.Answer("")
	})
}

// HandleRefresh перезагружает номера и показывает главный экран
func HandleRefresh(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithContext(ctx, b, callback, h, func(hc *HandlerContext) {
		if _, err := h.RoomCache.Refresh(ctx); err != nil {
			h.Logger.Warn("Manual refresh failed",
				zap.Int64("telegram_id", hc.TelegramID),
				zap.Error(err))
			hc.AnswerAlert(ErrorMessage(err))
			return
		}

		ShowOrLog(hc, hc.ShowScreen(HomeScreen(ctx, h, hc.TelegramID, hc.Session, 0)), "home")
		hc.Answer("🔄 Обновлено")
	})
}

// HandleHelp показывает справку
func HandleHelp(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithContext(ctx, b, callback, h, func(hc *HandlerContext) {
		ShowOrLog(hc, hc.ShowScreen(view.Help(hc.Session)), "help")
		hc.Answer("")
	})
}
