package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/easestay_bot/internal/controller/state"
	"github.com/Freeeeeet/easestay_bot/internal/view"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.ClearState(telegramID)

	session := h.restoreSession(ctx, telegramID)

	h.logger.Info("Start command",
		zap.Int64("telegram_id", telegramID),
		zap.Bool("logged_in", session != nil))

	h.sendHome(ctx, b, update.Message.Chat.ID, telegramID, session)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	session := h.restoreSession(ctx, update.Message.From.ID)
	h.sendScreen(ctx, b, update.Message.Chat.ID, view.Help(session))
}

// HandleRooms обрабатывает команду /rooms - список свободных номеров
func (h *Handlers) HandleRooms(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendScreen(ctx, b, update.Message.Chat.ID, view.RoomsList(common.VisibleRooms(ctx, h.deps), 0))
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	_, hadBooking := h.deps.BookingService.Current(telegramID)
	hadChange := h.deps.RoomStatusService.Cancel(telegramID)

	if currentState == state.StateNone && !hadBooking && !hadChange {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.")
		return
	}

	// Очищаем состояние
	h.stateManager.ClearState(telegramID)
	h.deps.BookingService.Abandon(telegramID)

	h.logger.Info("Operation cancelled",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.")
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.logger.Debug("HandleTextMessage called",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	// Если нет активного состояния, подсказываем команды
	if currentState == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "🤔 Не понимаю сообщение. Откройте меню: /start")
		return
	}

	switch currentState {
	case state.StateLoginEmail:
		h.handleLoginEmailStep(ctx, b, update)
	case state.StateLoginPassword:
		h.handleLoginPasswordStep(ctx, b, update)
	case state.StateRegisterFirstName:
		h.handleRegisterFirstNameStep(ctx, b, update)
	case state.StateRegisterLastName:
		h.handleRegisterLastNameStep(ctx, b, update)
	case state.StateRegisterEmail:
		h.handleRegisterEmailStep(ctx, b, update)
	case state.StateRegisterPhone:
		h.handleRegisterPhoneStep(ctx, b, update)
	case state.StateRegisterPassword:
		h.handleRegisterPasswordStep(ctx, b, update)
	case state.StateRegisterConfirm:
		h.handleRegisterConfirmStep(ctx, b, update)
	case state.StateBookingDates:
		h.handleBookingDatesStep(ctx, b, update)
	case state.StateFeedbackComment:
		h.handleFeedbackCommentStep(ctx, b, update)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
		h.stateManager.ClearState(telegramID)
	}
}
