package apiclient

import (
	"context"
	"net/http"
	"time"

	"github.com/Freeeeeet/easestay_bot/internal/model"
)

type LoginRequest struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// AuthUser - пользователь в ответе login/register
type AuthUser struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      model.Role `json:"role"`
}

type AuthResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    AuthUser `json:"user"`
}

// LoginLog - запись аудита входа
type LoginLog struct {
	LoginTime time.Time  `json:"login_time"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
}

// Preferences - последние выбранные даты проживания
type Preferences struct {
	CheckIn   model.Date `json:"checkin_date"`
	CheckOut  model.Date `json:"checkout_date"`
	LoginTime *time.Time `json:"login_time,omitempty"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.call(ctx, "/login", "/login", http.MethodPost, req, false, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.call(ctx, "/register", "/register", http.MethodPost, req, false, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LogLogin отправляет аудит входа
func (c *Client) LogLogin(ctx context.Context, token string, entry LoginLog) error {
	return c.call(ctx, "/user/login-log", "/user/login-log", http.MethodPost, entry, true, token, nil)
}

// SavePreferences сохраняет выбранные даты
func (c *Client) SavePreferences(ctx context.Context, token string, prefs Preferences) error {
	return c.call(ctx, "/user/preferences", "/user/preferences", http.MethodPost, prefs, true, token, nil)
}
