package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/account"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/booking"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/feedback"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/rooms"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/staff"
	"github.com/Freeeeeet/easestay_bot/internal/view"
)

type callbackFunc func(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler)

// exactRoutes - callbacks без аргументов
var exactRoutes = map[string]callbackFunc{
	view.CallbackHome:     common.HandleHome,
	view.CallbackHelp:     common.HandleHelp,
	view.CallbackRefresh:  common.HandleRefresh,
	view.CallbackLogin:    account.HandleLogin,
	view.CallbackRegister: account.HandleRegister,
	view.CallbackLogout:   account.HandleLogout,

	view.CallbackBook:           booking.HandleBook,
	view.CallbackConfirmBooking: booking.HandleConfirmBooking,
	view.CallbackPay:            booking.HandlePay,
	view.CallbackAbandonBooking: booking.HandleAbandon,

	view.CallbackAdminBoard:    admin.HandleBoard,
	view.CallbackStatusConfirm: admin.HandleConfirm,
	view.CallbackStatusCancel:  admin.HandleCancel,

	view.CallbackFeedback:     feedback.HandleFeedback,
	view.CallbackFeedbackList: feedback.HandleFeedbackList,
}

// prefixRoutes - callbacks с аргументом после префикса
var prefixRoutes = []struct {
	prefix  string
	handler callbackFunc
}{
	{view.CallbackLoginRole, account.HandleLoginRole},

	{view.CallbackRoomsPage, rooms.HandleRoomsPage},
	{view.CallbackRoom, rooms.HandleRoomDetails},

	{view.CallbackBookRoom, booking.HandleBookRoom},
	{view.CallbackAvailablePage, booking.HandleAvailablePage},
	{view.CallbackMyBookings, booking.HandleMyBookings},
	{view.CallbackDeleteConfirm, booking.HandleDeleteConfirm},
	{view.CallbackDeleteBooking, booking.HandleDeleteBooking},

	{view.CallbackAdminFilter, admin.HandleFilter},
	{view.CallbackAdminPage, admin.HandlePage},
	{view.CallbackAdminRoom, admin.HandleRoom},
	{view.CallbackAdminStatus, admin.HandleStatus},
	{view.CallbackAdminCleaning, admin.HandleCleaning},
	{view.CallbackAdminBookings, booking.HandleAllBookings},

	{view.CallbackStaffClean, staff.HandleClean},

	{view.CallbackFeedbackRate, feedback.HandleFeedbackRate},
}

// resolve находит обработчик: сначала точное совпадение, потом префикс
func resolve(data string) (callbackFunc, bool) {
	if handler, ok := exactRoutes[data]; ok {
		return handler, true
	}
	for _, route := range prefixRoutes {
		if strings.HasPrefix(data, route.prefix) {
			return route.handler, true
		}
	}
	return nil, false
}

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	if data == view.CallbackNoop {
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	handler, ok := resolve(data)
	if !ok {
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
		return
	}

	handler(ctx, b, callback, h)
}
