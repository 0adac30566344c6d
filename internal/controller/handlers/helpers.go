package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/view"
)

// sendScreen отправляет экран новым сообщением
func (h *Handlers) sendScreen(ctx context.Context, b *bot.Bot, chatID int64, screen view.Screen) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      screen.Text,
		ParseMode: models.ParseModeHTML,
	}
	if screen.Keyboard != nil {
		params.ReplyMarkup = screen.Keyboard
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send screen",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendHome отправляет главный экран по роли
func (h *Handlers) sendHome(ctx context.Context, b *bot.Bot, chatID, telegramID int64, session *model.Session) {
	h.sendScreen(ctx, b, chatID, common.HomeScreen(ctx, h.deps, telegramID, session, 0))
}

// deleteUserMessage удаляет сообщение пользователя (пароль не должен оставаться в чате)
func (h *Handlers) deleteUserMessage(ctx context.Context, b *bot.Bot, msg *models.Message) {
	_, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})
	if err != nil {
		h.logger.Warn("Failed to delete user message",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.Error(err),
		)
	}
}

// restoreSession возвращает сессию пользователя (nil, если не вошёл)
func (h *Handlers) restoreSession(ctx context.Context, telegramID int64) *model.Session {
	session, err := h.deps.SessionService.Restore(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to restore session",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		return nil
	}
	return session
}

// handleFailure сообщает об ошибке. Отклонённый сервером токен завершает сессию.
func (h *Handlers) handleFailure(ctx context.Context, b *bot.Bot, chatID, telegramID int64, err error, operation string) {
	h.logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", telegramID),
		zap.Error(err))

	h.sendError(ctx, b, chatID, common.ErrorMessage(err))

	if common.IsSessionRejected(err) {
		if logoutErr := h.deps.SessionService.Invalidate(ctx, telegramID); logoutErr != nil {
			h.logger.Error("Failed to invalidate session",
				zap.Int64("telegram_id", telegramID),
				zap.Error(logoutErr))
		}
		h.sendScreen(ctx, b, chatID, common.LandingScreen(ctx, h.deps))
	}
}
