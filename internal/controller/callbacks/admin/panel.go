package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/service"
	"github.com/Freeeeeet/easestay_bot/internal/view"
	"github.com/Freeeeeet/easestay_bot/internal/view/formatting"
	"github.com/Freeeeeet/easestay_bot/internal/view/keyboard"
)

// HandleFilter меняет фильтр списка номеров
func HandleFilter(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, model.CapChangeStatus, func(hc *common.HandlerContext) {
		filter, err := common.ParseArg(callback.Data, view.CallbackAdminFilter)
		if err != nil || !validFilter(filter) {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		h.StateManager.SetFilter(hc.TelegramID, filter)

		common.ShowOrLog(hc, hc.ShowScreen(common.AdminScreen(ctx, h, hc.TelegramID, hc.Session, 0)), "admin")
		hc.Answer(view.FilterLabel(filter))
	})
}

// HandlePage листает номера панели администратора
func HandlePage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, model.CapChangeStatus, func(hc *common.HandlerContext) {
		h.RoomStatusService.Cancel(hc.TelegramID)

		page := common.ParsePage(callback.Data, view.CallbackAdminPage)
		common.ShowOrLog(hc, hc.ShowScreen(common.AdminScreen(ctx, h, hc.TelegramID, hc.Session, page)), "admin")
		hc.Answer("")
	})
}

// HandleBoard отправляет доску номеров картинкой
func HandleBoard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCapability(ctx, b, callback, h, model.CapChangeStatus, func(hc *common.HandlerContext) {
		rooms := h.RoomCache.All()
		if !h.RoomCache.Loaded() {
			hc.AnswerAlert("⚠️ Номера ещё не загружены, попробуйте обновить")
			return
		}

		png, err := view.RenderRoomBoard(rooms, time.Now())
		if err != nil {
			common.HandleError(hc, err, "room_board")
			return
		}

		stats := h.RoomCache.Stats()
		caption := fmt.Sprintf("🗺 <b>Доска номеров</b>\n%d %s · заполняемость %d%%",
			stats.Total, formatting.PluralizeRooms(stats.Total), stats.OccupancyRate)
		kb := keyboard.NewBuilder().Row(keyboard.BackButton(view.CallbackAdminPage + "0")).Build()

		if err := hc.SendPhoto("rooms.png", png, caption, kb); err != nil {
			h.Logger.Error("Failed to send room board",
				zap.Int64("telegram_id", hc.TelegramID),
				zap.Error(err))
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		common.ShowOrLog(hc, hc.DeleteMessage(), "admin_page")
		hc.Answer("")
	})
}

func validFilter(filter string) bool {
	if filter == service.FilterAll {
		return true
	}
	_, ok := model.ParseRoomStatus(filter)
	return ok
}
