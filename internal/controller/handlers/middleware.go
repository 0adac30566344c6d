package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/model"
)

// requireSession проверяет что пользователь вошёл
// Возвращает session и true если OK, nil и false если нет
func (h *Handlers) requireSession(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Session, bool) {
	if update.Message == nil {
		return nil, false
	}

	session := h.restoreSession(ctx, update.Message.From.ID)
	if session == nil {
		h.sendError(ctx, b, update.Message.Chat.ID, "🔑 Сначала войдите: /login\n\nНет аккаунта? /register")
		return nil, false
	}

	return session, true
}

// requireCapability проверяет право роли на действие
func (h *Handlers) requireCapability(ctx context.Context, b *bot.Bot, update *models.Update, capability model.Capability) (*model.Session, bool) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return nil, false
	}

	if !session.Can(capability) {
		h.logger.Warn("Capability check failed",
			zap.Int64("telegram_id", update.Message.From.ID),
			zap.String("role", string(session.Role)),
			zap.String("capability", string(capability)))
		h.sendError(ctx, b, update.Message.Chat.ID, "🚫 Эта команда недоступна для вашей роли.\n\nСправка: /help")
		return nil, false
	}

	return session, true
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
