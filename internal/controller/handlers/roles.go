package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/booking"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/easestay_bot/internal/controller/state"
	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/view"
)

// HandleBook обрабатывает команду /book - запрос дат
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireCapability(ctx, b, update, model.CapBook); !ok {
		return
	}

	telegramID := update.Message.From.ID
	h.deps.BookingService.Abandon(telegramID)
	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateBookingDates)

	h.sendScreen(ctx, b, update.Message.Chat.ID, view.DatesPrompt(""))
}

// HandleMyBookings обрабатывает команду /mybookings
// Администратор видит все брони, гость - свои
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	var (
		bookings []model.Booking
		err      error
		opts     view.BookingsListOptions
	)
	switch {
	case session.Can(model.CapViewAllBookings):
		bookings, err = h.deps.BookingService.ListAll(ctx, session)
		opts = booking.AllBookingsOptions
	case session.Can(model.CapViewOwnBookings):
		bookings, err = h.deps.BookingService.ListOwn(ctx, session)
		opts = booking.MyBookingsOptions
	default:
		h.sendError(ctx, b, chatID, "🚫 Эта команда недоступна для вашей роли.\n\nСправка: /help")
		return
	}

	if err != nil && common.IsSessionRejected(err) {
		h.handleFailure(ctx, b, chatID, telegramID, err, "list_bookings")
		return
	}
	if err != nil {
		h.logger.Warn("Failed to load bookings",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
	}

	h.sendScreen(ctx, b, chatID, view.BookingsList(view.SectionOf(bookings, err), 0, opts))
}

// HandleAdmin обрабатывает команду /admin - панель администратора
func (h *Handlers) HandleAdmin(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireCapability(ctx, b, update, model.CapChangeStatus)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	h.deps.RoomStatusService.Cancel(telegramID)
	h.sendScreen(ctx, b, update.Message.Chat.ID, common.AdminScreen(ctx, h.deps, telegramID, session, 0))
}

// HandleStaff обрабатывает команду /staff - задачи персонала
func (h *Handlers) HandleStaff(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireCapability(ctx, b, update, model.CapViewCleaningQueue)
	if !ok {
		return
	}

	h.sendScreen(ctx, b, update.Message.Chat.ID, common.StaffScreen(ctx, h.deps, update.Message.From.ID, session))
}

// HandleFeedback обрабатывает команду /feedback
func (h *Handlers) HandleFeedback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireSession(ctx, b, update); !ok {
		return
	}

	h.stateManager.ClearState(update.Message.From.ID)
	h.sendScreen(ctx, b, update.Message.Chat.ID, view.FeedbackRatingPrompt())
}
