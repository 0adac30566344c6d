package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/easestay_bot/internal/controller/state"
	"github.com/Freeeeeet/easestay_bot/internal/view"
)

// HandleLogin обрабатывает команду /login - выбор роли
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.stateManager.ClearState(update.Message.From.ID)
	h.sendScreen(ctx, b, update.Message.Chat.ID, view.LoginRolePrompt())
}

// HandleRegister обрабатывает команду /register
func (h *Handlers) HandleRegister(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateRegisterFirstName)

	h.logger.Info("Registration started", zap.Int64("telegram_id", telegramID))

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"📝 <b>Регистрация</b>\n\n"+
			"Шаг 1 из 6: введите имя\n\n"+
			"Для отмены используйте /cancel")
}

// HandleLogout обрабатывает команду /logout
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	if err := h.deps.SessionService.Logout(ctx, telegramID); err != nil {
		h.logger.Error("Failed to logout",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "👋 Вы вышли из аккаунта")
	h.sendScreen(ctx, b, update.Message.Chat.ID, common.LandingScreen(ctx, h.deps))
}
