package staff

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

// HandleClean отмечает номер убранным
func HandleClean(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, model.CapCompleteCleaning, func(hc *common.HandlerContext) {
		roomID, err := common.ParseArg(callback.Data, view.CallbackStaffClean)
		if err != nil {
			common.HandleError(hc, err, "complete_cleaning")
			return
		}

		room, err := h.RoomStatusService.CompleteCleaning(ctx, hc.Session, roomID)
		if err != nil {
			common.HandleError(hc, err, "complete_cleaning")
			return
		}

		h.Logger.Info("Room cleaned",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("room_id", room.ID))

		common.ShowOrLog(hc, hc.ShowScreen(common.StaffScreen(ctx, h, hc.TelegramID, hc.Session)), "staff")
		hc.Answer("✅ Номер " + room.RoomNumber + " убран")
	})
}
