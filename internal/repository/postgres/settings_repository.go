package postgres

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/gym_booking_bot/internal/model"
	"github.com/Freeeeeet/gym_booking_bot/internal/repository/base"
)

// SettingsRepository хранит настройки в единственной строке с id = 1
type SettingsRepository struct {
	*base.Repository
}

func NewSettingsRepository(b *base.Repository) *SettingsRepository {
	return &SettingsRepository{Repository: b}
}

// Get получает настройки или значения по умолчанию
func (r *SettingsRepository) Get(ctx context.Context) (*model.GymSettings, error) {
	query := `
		SELECT slot_duration, max_slots_per_day,
		       to_char(opening_time, 'HH24:MI'), to_char(closing_time, 'HH24:MI'),
		       days_in_advance
		FROM gym_settings
		WHERE id = 1
	`

	var s model.GymSettings
	err := r.QueryRow(ctx, query).Scan(
		&s.SlotDuration,
		&s.MaxSlotsPerDay,
		&s.OpeningTime,
		&s.ClosingTime,
		&s.DaysInAdvance,
	)
	if err != nil {
		if base.IsNotFound(err) {
			defaults := model.DefaultGymSettings()
			return &defaults, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &s, nil
}

// Save перезаписывает настройки целиком
func (r *SettingsRepository) Save(ctx context.Context, s *model.GymSettings) error {
	query := `
		INSERT INTO gym_settings (id, slot_duration, max_slots_per_day, opening_time, closing_time, days_in_advance)
		VALUES (1, $1, $2, $3::time, $4::time, $5)
		ON CONFLICT (id) DO UPDATE
		SET slot_duration = EXCLUDED.slot_duration,
		    max_slots_per_day = EXCLUDED.max_slots_per_day,
		    opening_time = EXCLUDED.opening_time,
		    closing_time = EXCLUDED.closing_time,
		    days_in_advance = EXCLUDED.days_in_advance
	`

	_, err := r.ExecAffected(ctx, query,
		s.SlotDuration,
		s.MaxSlotsPerDay,
		s.OpeningTime,
		s.ClosingTime,
		s.DaysInAdvance,
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	return nil
}
