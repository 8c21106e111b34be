// Package postgres хранит записи зала построчно в PostgreSQL: каждая
// сущность вставляется, обновляется и удаляется отдельно.
package postgres

import (
	"github.com/Freeeeeet/gym_booking_bot/internal/repository"
	"github.com/Freeeeeet/gym_booking_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewStore собирает Store поверх пула. Пул закрывается вместе со Store.
func NewStore(pool *pgxpool.Pool) *repository.Store {
	b := base.NewRepository(pool)

	return repository.NewStore(
		NewUserRepository(b),
		NewSlotRepository(b),
		NewBookingRepository(b),
		NewSettingsRepository(b),
		NewSessionRepository(b),
		func() error {
			pool.Close()
			return nil
		},
	)
}
