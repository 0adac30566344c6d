package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/apiclient"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/easestay_bot/internal/controller/state"
	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/service"
)

const cancelHint = "\n\nДля отмены используйте /cancel"

// handleLoginEmailStep обрабатывает ввод email при входе
func (h *Handlers) handleLoginEmailStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	email := strings.TrimSpace(update.Message.Text)

	if !looksLikeEmail(email) {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Это не похоже на email.\n\nПопробуйте ещё раз:")
		return
	}

	h.stateManager.SetData(telegramID, state.DataEmail, email)
	h.stateManager.SetState(telegramID, state.StateLoginPassword)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		fmt.Sprintf("✅ Email: %s\n\nШаг 2 из 2: введите пароль%s", html.EscapeString(email), cancelHint))
}

// handleLoginPasswordStep завершает вход
func (h *Handlers) handleLoginPasswordStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	password := update.Message.Text

	h.deleteUserMessage(ctx, b, update.Message)

	form := service.LoginForm{
		Email:    h.stateManager.GetString(telegramID, state.DataEmail),
		Password: password,
		Role:     model.Role(h.stateManager.GetString(telegramID, state.DataRole)),
	}

	session, err := h.deps.SessionService.Login(ctx, telegramID, form)
	if err != nil {
		h.logger.Info("Login failed",
			zap.Int64("telegram_id", telegramID),
			zap.String("role", string(form.Role)),
			zap.String("kind", string(apiclient.KindOf(err))),
			zap.Error(err))

		// Роль сохраняется, повторяем с ввода email
		h.stateManager.SetState(telegramID, state.StateLoginEmail)
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nВведите email ещё раз или /cancel:")
		return
	}

	h.stateManager.ClearState(telegramID)

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Добро пожаловать, <b>%s</b>!", html.EscapeString(session.DisplayName)))
	h.sendHome(ctx, b, chatID, telegramID, session)
}

// handleRegisterFirstNameStep обрабатывает ввод имени
func (h *Handlers) handleRegisterFirstNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	name := strings.TrimSpace(update.Message.Text)

	if msg := nameError(name, "Имя"); msg != "" {
		h.sendError(ctx, b, update.Message.Chat.ID, msg)
		return
	}

	h.stateManager.SetData(telegramID, state.DataFirstName, name)
	h.stateManager.SetState(telegramID, state.StateRegisterLastName)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		fmt.Sprintf("✅ Имя: %s\n\nШаг 2 из 6: введите фамилию%s", html.EscapeString(name), cancelHint))
}

// handleRegisterLastNameStep обрабатывает ввод фамилии
func (h *Handlers) handleRegisterLastNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	name := strings.TrimSpace(update.Message.Text)

	if msg := nameError(name, "Фамилия"); msg != "" {
		h.sendError(ctx, b, update.Message.Chat.ID, msg)
		return
	}

	h.stateManager.SetData(telegramID, state.DataLastName, name)
	h.stateManager.SetState(telegramID, state.StateRegisterEmail)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		fmt.Sprintf("✅ Фамилия: %s\n\nШаг 3 из 6: введите email%s", html.EscapeString(name), cancelHint))
}

// handleRegisterEmailStep обрабатывает ввод email
func (h *Handlers) handleRegisterEmailStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	email := strings.TrimSpace(update.Message.Text)

	if !looksLikeEmail(email) {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Это не похоже на email.\n\nПопробуйте ещё раз:")
		return
	}

	h.stateManager.SetData(telegramID, state.DataEmail, email)
	h.stateManager.SetState(telegramID, state.StateRegisterPhone)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		fmt.Sprintf("✅ Email: %s\n\nШаг 4 из 6: введите телефон или «%s», чтобы пропустить%s",
			html.EscapeString(email), SkipInput, cancelHint))
}

// handleRegisterPhoneStep обрабатывает ввод телефона (необязательный)
func (h *Handlers) handleRegisterPhoneStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	phone := strings.TrimSpace(update.Message.Text)

	if phone == SkipInput {
		phone = ""
	}
	if utf8.RuneCountInString(phone) > PhoneMaxLength {
		h.sendError(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("❌ Телефон слишком длинный. Максимум %d символов.\n\nПопробуйте ещё раз:", PhoneMaxLength))
		return
	}

	h.stateManager.SetData(telegramID, state.DataPhone, phone)
	h.stateManager.SetState(telegramID, state.StateRegisterPassword)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		fmt.Sprintf("Шаг 5 из 6: придумайте пароль (минимум %d символов)%s", PasswordMinLength, cancelHint))
}

// handleRegisterPasswordStep обрабатывает ввод пароля
func (h *Handlers) handleRegisterPasswordStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	password := update.Message.Text

	h.deleteUserMessage(ctx, b, update.Message)

	if utf8.RuneCountInString(password) < PasswordMinLength {
		h.sendError(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("❌ Пароль слишком короткий. Минимум %d символов.\n\nПопробуйте ещё раз:", PasswordMinLength))
		return
	}

	h.stateManager.SetData(telegramID, state.DataPassword, password)
	h.stateManager.SetState(telegramID, state.StateRegisterConfirm)

	h.sendMessage(ctx, b, update.Message.Chat.ID, "Шаг 6 из 6: повторите пароль"+cancelHint)
}

// handleRegisterConfirmStep завершает регистрацию
func (h *Handlers) handleRegisterConfirmStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	h.deleteUserMessage(ctx, b, update.Message)

	form := service.RegisterForm{
		FirstName:       h.stateManager.GetString(telegramID, state.DataFirstName),
		LastName:        h.stateManager.GetString(telegramID, state.DataLastName),
		Email:           h.stateManager.GetString(telegramID, state.DataEmail),
		Phone:           h.stateManager.GetString(telegramID, state.DataPhone),
		Password:        h.stateManager.GetString(telegramID, state.DataPassword),
		ConfirmPassword: update.Message.Text,
	}

	if form.ConfirmPassword != form.Password {
		h.stateManager.SetState(telegramID, state.StateRegisterPassword)
		h.sendError(ctx, b, chatID, "❌ Пароли не совпадают.\n\nВведите пароль ещё раз:")
		return
	}

	session, err := h.deps.SessionService.Register(ctx, telegramID, form)
	if err != nil {
		h.logger.Info("Registration failed",
			zap.Int64("telegram_id", telegramID),
			zap.String("kind", string(apiclient.KindOf(err))),
			zap.Error(err))

		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nНачните заново: /register")
		return
	}

	h.stateManager.ClearState(telegramID)

	h.logger.Info("User registered",
		zap.Int64("telegram_id", telegramID),
		zap.String("user_id", session.UserID))

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("🎉 Аккаунт создан! Добро пожаловать, <b>%s</b>!", html.EscapeString(session.DisplayName)))
	h.sendHome(ctx, b, chatID, telegramID, session)
}

func nameError(name, field string) string {
	if name == "" {
		return fmt.Sprintf("❌ %s не может быть пустым.\n\nПопробуйте ещё раз:", field)
	}
	if utf8.RuneCountInString(name) > NameMaxLength {
		return fmt.Sprintf("❌ %s слишком длинное. Максимум %d символов.\n\nПопробуйте ещё раз:", field, NameMaxLength)
	}
	return ""
}

// looksLikeEmail - грубая проверка, точная делается при отправке формы
func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t\n")
}
