package booking

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/apiclient"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/service"
	"github.com/Freeeeeet/easestay_bot/internal/view"
	"github.com/Freeeeeet/easestay_bot/internal/view/keyboard"
)

// HandleBook начинает бронирование: запрос дат
func HandleBook(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, model.CapBook, func(hc *common.HandlerContext) {
		h.BookingService.Abandon(hc.TelegramID)
		hc.ClearState()
		hc.SetState(callbacktypes.StateBookingDates)

		common.ShowOrLog(hc, hc.ShowScreen(view.DatesPrompt("")), "dates")
		hc.Answer("")
	})
}

// HandleAvailablePage листает результаты проверки доступности
func HandleAvailablePage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, model.CapBook, func(hc *common.HandlerContext) {
		attempt, ok := h.BookingService.Current(hc.TelegramID)
		if !ok || attempt.Stage == service.StageSelectingDates {
			hc.AnswerAlert(common.ErrorMessage(service.ErrNoActiveBooking))
			return
		}

		page := common.ParsePage(callback.Data, view.CallbackAvailablePage)
		common.ShowOrLog(hc, hc.ShowScreen(view.AvailabilityResult(attempt.Dates, attempt.Available, page)), "availability")
		hc.Answer("")
	})
}

// HandleBookRoom выбирает номер из списка доступных
func HandleBookRoom(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, model.CapBook, func(hc *common.HandlerContext) {
		roomID, err := common.ParseArg(callback.Data, view.CallbackBookRoom)
		if err != nil {
			common.HandleError(hc, err, "select_room")
			return
		}

		if _, err := h.BookingService.SelectRoom(hc.TelegramID, hc.Session, roomID); err != nil {
			common.HandleError(hc, err, "select_room")
			return
		}

		attempt, _ := h.BookingService.Current(hc.TelegramID)
		common.ShowOrLog(hc, hc.ShowScreen(view.BookingConfirm(attempt)), "booking_confirm")
		hc.Answer("")
	})
}

// HandleConfirmBooking создаёт бронь на сервере
func HandleConfirmBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, model.CapBook, func(hc *common.HandlerContext) {
		// Кнопки скрываются до ответа сервера
		common.ShowOrLog(hc, hc.EditMessage("⏳ Создаём бронь…", keyboard.Empty()), "booking_creating")

		booking, err := h.BookingService.ConfirmBooking(ctx, hc.TelegramID, hc.Session)
		if err != nil {
			handleBookingFailure(hc, err, "create_booking")
			return
		}

		common.ShowOrLog(hc, hc.ShowScreen(view.PaymentSummary(*booking)), "payment_summary")
		hc.Answer("✅ Бронь создана")
	})
}

// HandlePay оплачивает бронь
func HandlePay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		common.ShowOrLog(hc, hc.EditMessage("⏳ Проводим оплату…", keyboard.Empty()), "payment_processing")

		result, err := h.BookingService.Pay(ctx, hc.TelegramID, hc.Session)
		if err != nil {
			handleBookingFailure(hc, err, "pay")
			return
		}

		common.ShowOrLog(hc, hc.ShowScreen(view.PaymentDone(*result)), "payment_done")
		hc.Answer("✅ Оплачено")
	})
}

// HandleAbandon отменяет бронирование
func HandleAbandon(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		h.BookingService.Abandon(hc.TelegramID)
		hc.ClearState()

		common.ShowOrLog(hc, hc.ShowScreen(common.HomeScreen(ctx, h, hc.TelegramID, hc.Session, 0)), "home")
		hc.Answer("Бронирование отменено")
	})
}

// handleBookingFailure: отклонённая бронь или оплата возвращает к выбору дат
func handleBookingFailure(hc *common.HandlerContext, err error, operation string) {
	if common.IsSessionRejected(err) {
		common.HandleError(hc, err, operation)
		return
	}
	// Первый запрос ещё выполняется и сам обновит сообщение
	if common.IsInProgress(err) {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	hc.Handler.Logger.Info("Booking step failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.String("kind", string(apiclient.KindOf(err))),
		zap.Error(err))

	if errors.Is(err, service.ErrAttemptSuperseded) || errors.Is(err, service.ErrNoActiveBooking) {
		common.ShowOrLog(hc, hc.ShowScreen(common.HomeScreen(hc.Ctx, hc.Handler, hc.TelegramID, hc.Session, 0)), "home")
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	hc.SetState(callbacktypes.StateBookingDates)
	common.ShowOrLog(hc, hc.ShowScreen(view.DatesPrompt(apiclient.MessageOf(err))), "dates")
	hc.AnswerAlert(common.ErrorMessage(err))
}
