package rooms

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/view"
)

// HandleRoomsPage показывает страницу свободных номеров
func HandleRoomsPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page := common.ParsePage(callback.Data, view.CallbackRoomsPage)
		common.ShowOrLog(hc, hc.ShowScreen(view.RoomsList(common.VisibleRooms(ctx, h), page)), "rooms")
		hc.Answer("")
	})
}

// HandleRoomDetails показывает карточку номера из кэша
func HandleRoomDetails(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		roomID, err := common.ParseArg(callback.Data, view.CallbackRoom)
		if err != nil {
			common.HandleError(hc, err, "room_details")
			return
		}

		room, ok := h.RoomCache.Find(roomID)
		if !ok {
			hc.AnswerAlert(common.ErrorMessage(common.ErrRoomNotFound))
			return
		}

		canBook := hc.Session.Can(model.CapBook)
		common.ShowOrLog(hc, hc.ShowScreen(view.RoomDetails(room, canBook)), "room_details")
		hc.Answer("")
	})
}
