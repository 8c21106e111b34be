package postgres

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/gym_booking_bot/internal/model"
	"github.com/Freeeeeet/gym_booking_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

type SessionRepository struct {
	*base.Repository
}

func NewSessionRepository(b *base.Repository) *SessionRepository {
	return &SessionRepository{Repository: b}
}

// Current получает пользователя сессии
func (r *SessionRepository) Current(ctx context.Context, sessionKey string) (*model.User, error) {
	query := `
		SELECT u.id, u.email, u.name, u.role, u.created_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.session_key = $1
	`

	user, err := base.QueryOne(ctx, r.Repository, scanUser, query, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("get session user: %w", err)
	}

	return user, nil
}

// SetCurrent привязывает пользователя к сессии; nil удаляет сессию
func (r *SessionRepository) SetCurrent(ctx context.Context, sessionKey string, user *model.User) error {
	return r.InTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM sessions WHERE session_key = $1`, sessionKey); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		if user == nil {
			return nil
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO sessions (session_key, user_id, started_at) VALUES ($1, $2, now())`,
			sessionKey, user.ID,
		)
		if err != nil {
			return fmt.Errorf("start session: %w", err)
		}
		return nil
	})
}
