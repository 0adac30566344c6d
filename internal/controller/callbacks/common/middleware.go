package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/easestay_bot/internal/model"
)

// WithContext создаёт HandlerContext и пытается загрузить сессию.
// Пользователь без сессии тоже проходит (публичные экраны).
func WithContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.LoadSession(); err != nil {
		h.Logger.Error("Failed to load session",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
	}

	handler(hc)
}

// WithSession создаёт HandlerContext и требует активную сессию
// При ошибке автоматически отвечает пользователю
func WithSession(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.RequireSession(); err != nil {
		h.Logger.Info("Session required",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// WithCapability требует сессию с правом на действие
func WithCapability(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	capability model.Capability,
	handler func(*HandlerContext),
) {
	WithSession(ctx, b, callback, h, func(hc *HandlerContext) {
		if !hc.Session.Can(capability) {
			h.Logger.Warn("Capability check failed",
				zap.Int64("telegram_id", hc.TelegramID),
				zap.String("role", string(hc.Session.Role)),
				zap.String("capability", string(capability)))
			hc.AnswerAlert("🚫 Это действие недоступно для вашей роли")
			return
		}
		handler(hc)
	})
}

// HandleError обрабатывает ошибку и отправляет ответ пользователю.
// Если сервер отклонил токен, сессия завершается и показывается публичный экран.
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))

	if dropRejectedSession(hc.Ctx, hc.Handler, hc.TelegramID, err) {
		hc.Session = nil
		if showErr := hc.ShowScreen(LandingScreen(hc.Ctx, hc.Handler)); showErr != nil {
			hc.Handler.Logger.Warn("Failed to show landing", zap.Error(showErr))
		}
	}

	hc.AnswerAlert(ErrorMessage(err))
}

// ShowOrLog показывает экран и логирует ошибку отображения
func ShowOrLog(hc *HandlerContext, screenErr error, screen string) {
	if screenErr != nil {
		hc.Handler.Logger.Error("Failed to render screen",
			zap.String("screen", screen),
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(screenErr))
	}
}

