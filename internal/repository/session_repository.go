package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/easestay_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository хранит сериализованную сессию пользователя в Postgres.
// Одна запись на Telegram аккаунт, содержимое не разбирается.
type SessionRepository struct {
	*base.Repository
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{Repository: base.NewRepository(pool)}
}

// Save перезаписывает сессию пользователя
func (r *SessionRepository) Save(ctx context.Context, telegramID int64, payload []byte) error {
	query := `
		INSERT INTO sessions (telegram_id, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (telegram_id) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = NOW()
	`

	if _, err := r.ExecAffected(ctx, query, telegramID, string(payload)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load возвращает сохранённую сессию или nil, если её нет
func (r *SessionRepository) Load(ctx context.Context, telegramID int64) ([]byte, error) {
	query := `SELECT payload FROM sessions WHERE telegram_id = $1`

	var payload string
	err := r.QueryRow(ctx, query, telegramID).Scan(&payload)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Сессии нет
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	return []byte(payload), nil
}

// Delete удаляет сессию пользователя
func (r *SessionRepository) Delete(ctx context.Context, telegramID int64) error {
	query := `DELETE FROM sessions WHERE telegram_id = $1`

	if _, err := r.ExecAffected(ctx, query, telegramID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
