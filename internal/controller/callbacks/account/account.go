package account

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/view"
	"github.com/Freeeeeet/easestay_bot/internal/view/formatting"
	"github.com/Freeeeeet/easestay_bot/internal/view/keyboard"
)

// HandleLogin показывает выбор роли
func HandleLogin(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	hc.ClearState()

	common.ShowOrLog(hc, hc.ShowScreen(view.LoginRolePrompt()), "login_role")
	hc.Answer("")
}

// HandleLoginRole запоминает роль и запрашивает email
func HandleLoginRole(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	arg, err := common.ParseArg(callback.Data, view.CallbackLoginRole)
	role := model.Role(arg)
	if err != nil || !role.Valid() {
		hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	hc.ClearState()
	hc.SetState(callbacktypes.StateLoginEmail)
	hc.SetData(callbacktypes.DataRole, string(role))

	h.Logger.Info("Login started",
		zap.Int64("telegram_id", hc.TelegramID),
		zap.String("role", string(role)))

	text := "🔑 <b>Вход: " + formatting.GetRoleDisplay(role).String() + "</b>\n\n" +
		"Шаг 1 из 2: введите email\n\n" +
		"Для отмены используйте /cancel"
	common.ShowOrLog(hc, hc.EditMessage(text, keyboard.NewBuilder().Row(keyboard.CancelButton(view.CallbackHome)).Build()), "login_email")
	hc.Answer("")
}

// HandleRegister начинает регистрацию гостя
func HandleRegister(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	hc.ClearState()
	hc.SetState(callbacktypes.StateRegisterFirstName)

	text := "📝 <b>Регистрация</b>\n\n" +
		"Шаг 1 из 6: введите имя\n\n" +
		"Для отмены используйте /cancel"
	common.ShowOrLog(hc, hc.EditMessage(text, keyboard.NewBuilder().Row(keyboard.CancelButton(view.CallbackHome)).Build()), "register")
	hc.Answer("")
}

// HandleLogout завершает сессию
func HandleLogout(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	if err := h.SessionService.Logout(ctx, hc.TelegramID); err != nil {
		h.Logger.Error("Failed to logout",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
	}

	common.ShowOrLog(hc, hc.ShowScreen(common.LandingScreen(ctx, h)), "landing")
	hc.Answer("👋 Вы вышли из аккаунта")
}
