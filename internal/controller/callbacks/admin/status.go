package admin

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

// HandleRoom показывает номер с действиями администратора
func HandleRoom(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, model.CapChangeStatus, func(hc *common.HandlerContext) {
		roomID, err := common.ParseArg(callback.Data, view.CallbackAdminRoom)
		if err != nil {
			common.HandleError(hc, err, "admin_room")
			return
		}

		room, ok := h.RoomCache.Find(roomID)
		if !ok {
			hc.AnswerAlert(common.ErrorMessage(common.ErrRoomNotFound))
			return
		}

		common.ShowOrLog(hc, hc.ShowScreen(view.AdminRoom(room)), "admin_room")
		hc.Answer("")
	})
}

// HandleStatus - первая фаза смены статуса: запоминаем и просим подтвердить
func HandleStatus(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, model.CapChangeStatus, func(hc *common.HandlerContext) {
		roomID, status, err := common.ParsePair(callback.Data, view.CallbackAdminStatus)
		if err != nil {
			common.HandleError(hc, err, "begin_status_change")
			return
		}

		change, err := h.RoomStatusService.Begin(hc.TelegramID, hc.Session, roomID, model.IntentStatus, model.RoomStatus(status))
		if err != nil {
			common.HandleError(hc, err, "begin_status_change")
			return
		}

		common.ShowOrLog(hc, hc.ShowScreen(view.StatusChangeConfirm(*change)), "status_confirm")
		hc.Answer("")
	})
}

// HandleCleaning - первая фаза пометки "нужна уборка"
func HandleCleaning(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, model.CapChangeStatus, func(hc *common.HandlerContext) {
		roomID, err := common.ParseArg(callback.Data, view.CallbackAdminCleaning)
		if err != nil {
			common.HandleError(hc, err, "begin_cleaning")
			return
		}

		change, err := h.RoomStatusService.Begin(hc.TelegramID, hc.Session, roomID, model.IntentCleaning, "")
		if err != nil {
			common.HandleError(hc, err, "begin_cleaning")
			return
		}

		common.ShowOrLog(hc, hc.ShowScreen(view.StatusChangeConfirm(*change)), "status_confirm")
		hc.Answer("")
	})
}

// HandleConfirm - вторая фаза: ровно один запрос к API.
// Повторное нажатие во время запроса отклоняется сервисом.
func HandleConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, model.CapChangeStatus, func(hc *common.HandlerContext) {
		if pending, ok := h.RoomStatusService.Pending(hc.TelegramID); ok {
			applying := view.StatusChangeApplying(pending)
			common.ShowOrLog(hc, hc.EditMessage(applying.Text, applying.Keyboard), "status_applying")
		}

		change, err := h.RoomStatusService.Confirm(ctx, hc.TelegramID, hc.Session)
		if err != nil {
			if common.IsSessionRejected(err) {
				common.HandleError(hc, err, "confirm_status_change")
				return
			}
			// Первый запрос ещё выполняется и сам перерисует панель
			if common.IsInProgress(err) {
				hc.AnswerAlert(common.ErrorMessage(err))
				return
			}
			h.Logger.Info("Status change failed",
				zap.Int64("telegram_id", hc.TelegramID),
				zap.Error(err))
			// Изменение сброшено, возвращаем актуальную панель
			common.ShowOrLog(hc, hc.ShowScreen(common.AdminScreen(ctx, h, hc.TelegramID, hc.Session, 0)), "admin")
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		answer := "✅ Статус обновлён"
		if change.Intent == model.IntentCleaning {
			answer = "✅ Номер отправлен на уборку"
		}
		common.ShowOrLog(hc, hc.ShowScreen(common.AdminScreen(ctx, h, hc.TelegramID, hc.Session, 0)), "admin")
		hc.Answer(answer)
	})
}

// HandleCancel отбрасывает изменение без запроса к API
func HandleCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, model.CapChangeStatus, func(hc *common.HandlerContext) {
		pending, ok := h.RoomStatusService.Pending(hc.TelegramID)
		h.RoomStatusService.Cancel(hc.TelegramID)

		if ok {
			if room, found := h.RoomCache.Find(pending.RoomID); found {
				common.ShowOrLog(hc, hc.ShowScreen(view.AdminRoom(room)), "admin_room")
				hc.Answer("Изменение отменено")
				return
			}
		}

		common.ShowOrLog(hc, hc.ShowScreen(common.AdminScreen(ctx, h, hc.TelegramID, hc.Session, 0)), "admin")
		hc.Answer("Изменение отменено")
	})
}
