package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://localhost:5000/api"
	DefaultTimeout = 10 * time.Second

	// RequestIDHeader передаётся в каждом запросе для сопоставления с логами сервера
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 64 << 10
)

// Observer получает результат каждого запроса (метрики)
type Observer interface {
	ObserveRequest(route, method string, status int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveRequest(string, string, int, time.Duration) {}

// Client - единственная точка обращения к API отеля
type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   Observer
	logger     *zap.Logger
}

type Option func(*Client)

// WithHTTPClient подменяет HTTP клиент (тесты, прокси)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

// New создаёт клиент API
func New(baseURL string, timeout time.Duration, logger *zap.Logger, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		observer:   nopObserver{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL возвращает адрес API
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Call выполняет запрос к endpoint относительно базового адреса.
// Тело сериализуется в JSON, ответ декодируется в out (если out != nil).
// Токен добавляется только при needsAuth и непустом token.
func (c *Client) Call(ctx context.Context, endpoint, method string, body any, needsAuth bool, token string, out any) error {
	return c.call(ctx, endpoint, endpoint, method, body, needsAuth, token, out)
}

// call - то же, что Call, но с шаблоном маршрута для метрик
func (c *Client) call(ctx context.Context, route, endpoint, method string, body any, needsAuth bool, token string, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if needsAuth && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observer.ObserveRequest(route, method, 0, time.Since(started))
		// Запрос отменён вызывающим (остановка бота), сервер тут ни при чём
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.logger.Debug("API request cancelled",
				zap.String("method", method),
				zap.String("endpoint", endpoint),
				zap.String("request_id", requestID),
				zap.Error(ctxErr))
			return ctxErr
		}
		c.logger.Warn("API request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.String("request_id", requestID),
			zap.Error(err))
		return &Error{
			Kind:    KindConnectivity,
			Message: fmt.Sprintf("Нет связи с сервером. Убедитесь, что API запущен по адресу %s", c.baseURL),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	c.observer.ObserveRequest(route, method, resp.StatusCode, time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp)
		c.logger.Info("API request rejected",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return &Error{
			Kind:    KindRemote,
			Status:  resp.StatusCode,
			Message: "Сервер вернул некорректный ответ",
			Err:     err,
		}
	}

	return nil
}

// decodeError извлекает поле error из тела ответа
func decodeError(resp *http.Response) *Error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	message := ""
	if json.Unmarshal(raw, &payload) == nil {
		message = payload.Error
		if message == "" {
			message = payload.Message
		}
	}
	if message == "" {
		message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return &Error{
		Kind:    kindForStatus(resp.StatusCode),
		Status:  resp.StatusCode,
		Message: message,
	}
}
