package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/easestay_bot/internal/controller/handlers"
	"github.com/Freeeeeet/easestay_bot/internal/controller/state"
	"github.com/Freeeeeet/easestay_bot/internal/service"
)

// Services - сервисы, которыми пользуются обработчики
type Services struct {
	Sessions   *service.SessionService
	Rooms      *service.RoomCache
	Bookings   *service.BookingService
	RoomStatus *service.RoomStatusService
	Feedback   *service.FeedbackService
}

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	services Services,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний
	stateManager := state.NewManager()

	deps := &callbacktypes.Handler{
		SessionService:    services.Sessions,
		RoomCache:         services.Rooms,
		BookingService:    services.Bookings,
		RoomStatusService: services.RoomStatus,
		FeedbackService:   services.Feedback,
		StateManager:      state.NewAdapter(stateManager),
		Logger:            logger,
	}

	// Выход из аккаунта сбрасывает незавершённые сценарии пользователя
	services.Sessions.OnSessionEnded(services.Bookings.Abandon)
	services.Sessions.OnSessionEnded(func(telegramID int64) {
		services.RoomStatus.Cancel(telegramID)
	})
	services.Sessions.OnSessionEnded(stateManager.Forget)

	return &BotController{
		bot:             botInstance,
		handlers:        handlers.NewHandlers(deps, stateManager, logger),
		callbackHandler: callbacks.NewHandler(deps),
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Общие команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/rooms", bot.MatchTypeExact, c.handlers.HandleRooms)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Аккаунт
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypeExact, c.handlers.HandleLogin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/register", bot.MatchTypeExact, c.handlers.HandleRegister)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypeExact, c.handlers.HandleLogout)

	// Гость
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/book", bot.MatchTypeExact, c.handlers.HandleBook)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mybookings", bot.MatchTypeExact, c.handlers.HandleMyBookings)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/feedback", bot.MatchTypeExact, c.handlers.HandleFeedback)

	// Администратор и персонал
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/admin", bot.MatchTypeExact, c.handlers.HandleAdmin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/staff", bot.MatchTypeExact, c.handlers.HandleStaff)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🏨 Главное меню"},
		{Command: "rooms", Description: "🛏 Свободные номера"},
		{Command: "book", Description: "📅 Забронировать номер"},
		{Command: "mybookings", Description: "🧾 Мои брони"},
		{Command: "login", Description: "🔑 Войти"},
		{Command: "register", Description: "📝 Регистрация"},
		{Command: "logout", Description: "🚪 Выйти"},
		{Command: "admin", Description: "🛡 Панель администратора"},
		{Command: "staff", Description: "🧹 Задачи персонала"},
		{Command: "feedback", Description: "⭐ Оставить отзыв"},
		{Command: "cancel", Description: "❌ Отменить текущее действие"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
