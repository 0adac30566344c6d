package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/easestay_bot/internal/apiclient"
	"github.com/Freeeeeet/easestay_bot/internal/model"
	"go.uber.org/zap"
)

type LoginForm struct {
	Email    string     `validate:"required,email"`
	Password string     `validate:"required"`
	Role     model.Role `validate:"required,oneof=guest admin staff"`
}

type RegisterForm struct {
	FirstName       string `validate:"required,max=50"`
	LastName        string `validate:"required,max=50"`
	Email           string `validate:"required,email"`
	Phone           string `validate:"omitempty,max=20"`
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// SessionListener вызывается при завершении сессии пользователя
type SessionListener func(telegramID int64)

// SessionService хранит сессии пользователей в памяти и в постоянном слоте
type SessionService struct {
	api        SessionAPI
	repo       SessionRepository
	background *Background
	logger     *zap.Logger

	mu        sync.RWMutex
	sessions  map[int64]*model.Session
	listeners []SessionListener
}

func NewSessionService(api SessionAPI, repo SessionRepository, background *Background, logger *zap.Logger) *SessionService {
	return &SessionService{
		api:        api,
		repo:       repo,
		background: background,
		logger:     logger,
		sessions:   make(map[int64]*model.Session),
	}
}

// OnSessionEnded регистрирует обработчик выхода
func (s *SessionService) OnSessionEnded(listener SessionListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Login авторизует пользователя и сохраняет сессию
func (s *SessionService) Login(ctx context.Context, telegramID int64, form LoginForm) (*model.Session, error) {
	form.Email = strings.TrimSpace(form.Email)
	if err := validateForm(form); err != nil {
		return nil, err
	}

	resp, err := s.api.Login(ctx, apiclient.LoginRequest{
		Email:    form.Email,
		Password: form.Password,
		Role:     form.Role,
	})
	if err != nil {
		return nil, err
	}

	session, err := sessionFromAuth(resp, form.Role)
	if err != nil {
		return nil, err
	}

	s.store(ctx, telegramID, session)

	s.logger.Info("User logged in",
		zap.Int64("telegram_id", telegramID),
		zap.String("user_id", session.UserID),
		zap.String("role", string(session.Role)))

	token := session.Token
	entry := apiclient.LoginLog{
		LoginTime: time.Now().UTC(),
		Email:     form.Email,
		Role:      form.Role,
	}
	s.background.Go("login_audit", func(ctx context.Context) error {
		return s.api.LogLogin(ctx, token, entry)
	})

	return cloneSession(session), nil
}

// Register создаёт аккаунт гостя и сохраняет сессию
func (s *SessionService) Register(ctx context.Context, telegramID int64, form RegisterForm) (*model.Session, error) {
	form.Email = strings.TrimSpace(form.Email)
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Phone = strings.TrimSpace(form.Phone)

	if err := validateForm(form); err != nil {
		return nil, err
	}

	resp, err := s.api.Register(ctx, apiclient.RegisterRequest{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Phone:     form.Phone,
		Password:  form.Password,
	})
	if err != nil {
		return nil, err
	}

	session, err := sessionFromAuth(resp, model.RoleGuest)
	if err != nil {
		return nil, err
	}

	s.store(ctx, telegramID, session)

	s.logger.Info("User registered",
		zap.Int64("telegram_id", telegramID),
		zap.String("user_id", session.UserID))

	return cloneSession(session), nil
}

// Restore возвращает сессию из памяти или из постоянного слота.
// Повреждённая запись удаляется, результат - nil без ошибки.
func (s *SessionService) Restore(ctx context.Context, telegramID int64) (*model.Session, error) {
	if session := s.Current(telegramID); session != nil {
		return session, nil
	}

	payload, err := s.repo.Load(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if payload == nil {
		return nil, nil
	}

	session, err := decodeSession(payload)
	if err != nil {
		s.logger.Warn("Discarding malformed session",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		if delErr := s.repo.Delete(ctx, telegramID); delErr != nil {
			s.logger.Error("Failed to delete malformed session",
				zap.Int64("telegram_id", telegramID),
				zap.Error(delErr))
		}
		return nil, nil
	}

	s.mu.Lock()
	s.sessions[telegramID] = session
	s.mu.Unlock()

	return cloneSession(session), nil
}

// Current возвращает сессию из памяти
func (s *SessionService) Current(telegramID int64) *model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSession(s.sessions[telegramID])
}

// Logout очищает сессию и уведомляет подписчиков (незавершённая бронь, изменение статуса)
func (s *SessionService) Logout(ctx context.Context, telegramID int64) error {
	s.mu.Lock()
	delete(s.sessions, telegramID)
	listeners := append([]SessionListener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(telegramID)
	}

	if err := s.repo.Delete(ctx, telegramID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.logger.Info("User logged out", zap.Int64("telegram_id", telegramID))
	return nil
}

// Invalidate завершает сессию, которую сервер отклонил (401)
func (s *SessionService) Invalidate(ctx context.Context, telegramID int64) error {
	s.logger.Info("Session rejected by API", zap.Int64("telegram_id", telegramID))
	return s.Logout(ctx, telegramID)
}

func (s *SessionService) store(ctx context.Context, telegramID int64, session *model.Session) {
	s.mu.Lock()
	s.sessions[telegramID] = session
	s.mu.Unlock()

	payload, err := json.Marshal(session)
	if err != nil {
		s.logger.Error("Failed to encode session", zap.Error(err))
		return
	}

	// Сессия в памяти продолжает работать, если хранилище недоступно
	if err := s.repo.Save(ctx, telegramID, payload); err != nil {
		s.logger.Error("Failed to persist session",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
	}
}

func sessionFromAuth(resp *apiclient.AuthResponse, fallbackRole model.Role) (*model.Session, error) {
	if resp == nil || resp.Token == "" {
		return nil, &apiclient.Error{Kind: apiclient.KindAuth, Message: "Сервер не выдал токен доступа"}
	}

	role := resp.User.Role
	if !role.Valid() {
		role = fallbackRole
	}

	return &model.Session{
		UserID:      resp.User.ID,
		Email:       resp.User.Email,
		FirstName:   resp.User.FirstName,
		LastName:    resp.User.LastName,
		Role:        role,
		Token:       resp.Token,
		DisplayName: model.BuildDisplayName(resp.User.FirstName, resp.User.LastName, resp.User.Email),
	}, nil
}

func decodeSession(payload []byte) (*model.Session, error) {
	var session model.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	if session.Token == "" {
		return nil, errors.New("session without token")
	}
	if !session.Role.Valid() {
		return nil, fmt.Errorf("unknown role %q", session.Role)
	}
	if session.DisplayName == "" {
		session.DisplayName = model.BuildDisplayName(session.FirstName, session.LastName, session.Email)
	}
	return &session, nil
}

func cloneSession(s *model.Session) *model.Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
