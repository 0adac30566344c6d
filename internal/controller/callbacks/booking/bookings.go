package booking

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/view"
)

// MyBookingsOptions - список броней гостя
var MyBookingsOptions = view.BookingsListOptions{
	Title:       "Мои брони",
	PagePrefix:  view.CallbackMyBookings,
	AllowDelete: true,
}

// AllBookingsOptions - список всех броней (администратор)
var AllBookingsOptions = view.BookingsListOptions{
	Title:       "Все брони",
	PagePrefix:  view.CallbackAdminBookings,
	ShowGuest:   true,
	AllowDelete: true,
	DeleteAny:   true,
}

// HandleMyBookings показывает брони гостя
func HandleMyBookings(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, model.CapViewOwnBookings, func(hc *common.HandlerContext) {
		page := common.ParsePage(callback.Data, view.CallbackMyBookings)
		showBookings(hc, page)
		hc.Answer("")
	})
}

// HandleDeleteBooking спрашивает подтверждение удаления
func HandleDeleteBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		bookingID, err := common.ParseArg(callback.Data, view.CallbackDeleteBooking)
		if err != nil {
			common.HandleError(hc, err, "delete_booking")
			return
		}

		bookings, err := listFor(hc)
		if err != nil {
			common.HandleError(hc, err, "delete_booking")
			return
		}

		booking, ok := findBooking(bookings, bookingID)
		if !ok {
			hc.AnswerAlert(common.ErrorMessage(common.ErrBookingNotFound))
			return
		}

		opts := optionsFor(hc.Session)
		if !opts.DeleteAny && !booking.IsDeletable() {
			hc.AnswerAlert("❌ Удалить можно только неоплаченную бронь")
			return
		}

		common.ShowOrLog(hc, hc.ShowScreen(view.DeleteBookingConfirm(booking, opts.PagePrefix+"0")), "delete_confirm")
		hc.Answer("")
	})
}

// HandleDeleteConfirm удаляет бронь
func HandleDeleteConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		bookingID, err := common.ParseArg(callback.Data, view.CallbackDeleteConfirm)
		if err != nil {
			common.HandleError(hc, err, "delete_booking")
			return
		}

		if err := h.BookingService.Delete(ctx, hc.TelegramID, hc.Session, bookingID); err != nil {
			common.HandleError(hc, err, "delete_booking")
			return
		}

		h.Logger.Info("Booking deleted by user",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("booking_id", bookingID))

		showBookings(hc, 0)
		hc.Answer("🗑 Бронь удалена")
	})
}

// showBookings перезагружает список броней для роли
func showBookings(hc *common.HandlerContext, page int) {
	bookings, err := listFor(hc)
	if err != nil {
		hc.Handler.Logger.Warn("Failed to load bookings",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		if common.IsSessionRejected(err) {
			common.HandleError(hc, err, "list_bookings")
			return
		}
	}

	screen := view.BookingsList(view.SectionOf(bookings, err), page, optionsFor(hc.Session))
	common.ShowOrLog(hc, hc.ShowScreen(screen), "bookings")
}

func listFor(hc *common.HandlerContext) ([]model.Booking, error) {
	if hc.Session.Can(model.CapViewAllBookings) {
		return hc.Handler.BookingService.ListAll(hc.Ctx, hc.Session)
	}
	return hc.Handler.BookingService.ListOwn(hc.Ctx, hc.Session)
}

func optionsFor(session *model.Session) view.BookingsListOptions {
	if session.Can(model.CapViewAllBookings) {
		return AllBookingsOptions
	}
	return MyBookingsOptions
}

func findBooking(bookings []model.Booking, id string) (model.Booking, bool) {
	for _, b := range bookings {
		if b.ID == id {
			return b, true
		}
	}
	return model.Booking{}, false
}

// HandleAllBookings показывает все брони (администратор)
func HandleAllBookings(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, model.CapViewAllBookings, func(hc *common.HandlerContext) {
		page := common.ParsePage(callback.Data, view.CallbackAdminBookings)
		showBookings(hc, page)
		hc.Answer("")
	})
}
