package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/apiclient"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/easestay_bot/internal/controller/state"
	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/service"
	"github.com/Freeeeeet/easestay_bot/internal/view"
)

// handleBookingDatesStep разбирает даты и проверяет доступность
func (h *Handlers) handleBookingDatesStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireCapability(ctx, b, update, model.CapBook)
	if !ok {
		h.stateManager.ClearState(update.Message.From.ID)
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	dates, err := model.ParseStayDates(update.Message.Text)
	if err != nil {
		h.logger.Debug("Invalid stay dates input",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendScreen(ctx, b, chatID, view.DatesPrompt(parseDatesMessage(err)))
		return
	}

	h.sendScreen(ctx, b, chatID, view.CheckingAvailability(dates))

	rooms, err := h.deps.BookingService.CheckAvailability(ctx, telegramID, session, dates)
	if err != nil {
		if errors.Is(err, service.ErrAttemptSuperseded) {
			h.logger.Info("Availability result dropped",
				zap.Int64("telegram_id", telegramID))
			return
		}
		if common.IsSessionRejected(err) {
			h.stateManager.ClearState(telegramID)
			h.handleFailure(ctx, b, chatID, telegramID, err, "check_availability")
			return
		}

		h.logger.Info("Availability check failed",
			zap.Int64("telegram_id", telegramID),
			zap.String("kind", string(apiclient.KindOf(err))),
			zap.Error(err))
		// Остаёмся на вводе дат
		h.sendScreen(ctx, b, chatID, view.DatesPrompt(apiclient.MessageOf(err)))
		return
	}

	h.stateManager.ClearState(telegramID)

	h.logger.Info("Availability checked",
		zap.Int64("telegram_id", telegramID),
		zap.String("check_in", dates.CheckIn.String()),
		zap.String("check_out", dates.CheckOut.String()),
		zap.Int("rooms", len(rooms)))

	h.sendScreen(ctx, b, chatID, view.AvailabilityResult(dates, rooms, 0))
}

// handleFeedbackCommentStep отправляет отзыв
func (h *Handlers) handleFeedbackCommentStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		h.stateManager.ClearState(update.Message.From.ID)
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	comment := strings.TrimSpace(update.Message.Text)

	if utf8.RuneCountInString(comment) > FeedbackCommentMaxLength {
		h.sendError(ctx, b, chatID,
			fmt.Sprintf("❌ Отзыв слишком длинный. Максимум %d символов.\n\nПопробуйте ещё раз:", FeedbackCommentMaxLength))
		return
	}

	ratingData, ok := h.stateManager.GetData(telegramID, state.DataRating)
	rating, isInt := ratingData.(int)
	if !ok || !isInt {
		h.logger.Error("Missing rating for feedback",
			zap.Int64("telegram_id", telegramID))
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ Ошибка: оценка не найдена. Начните заново: /feedback")
		return
	}

	_, err := h.deps.FeedbackService.Submit(ctx, session, service.FeedbackForm{
		Rating:  rating,
		Comment: comment,
	})
	if err != nil {
		if apiclient.IsKind(err, apiclient.KindValidation) {
			h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nПопробуйте ещё раз:")
			return
		}
		h.stateManager.ClearState(telegramID)
		h.handleFailure(ctx, b, chatID, telegramID, err, "submit_feedback")
		return
	}

	h.stateManager.ClearState(telegramID)

	h.sendMessage(ctx, b, chatID, "🙏 Спасибо за отзыв!")
	h.sendHome(ctx, b, chatID, telegramID, session)
}

// parseDatesMessage - текст ошибки разбора дат для повторного запроса
func parseDatesMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidDate):
		return "Не удалось разобрать дату. Используйте формат ДД.ММ.ГГГГ"
	case errors.Is(err, model.ErrInvalidGuests):
		return fmt.Sprintf("Количество гостей должно быть числом от 1 до %d", model.MaxGuests)
	default:
		return "Отправьте две даты и, при желании, число гостей"
	}
}
