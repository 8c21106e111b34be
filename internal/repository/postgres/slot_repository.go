package postgres

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/gym_booking_bot/internal/model"
	"github.com/Freeeeeet/gym_booking_bot/internal/repository"
	"github.com/Freeeeeet/gym_booking_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

// Дата и время хранятся как DATE/TIME и отдаются строками в формате модели
const slotColumns = `
	id,
	to_char(slot_date, 'YYYY-MM-DD'),
	to_char(start_time, 'HH24:MI'),
	to_char(end_time, 'HH24:MI'),
	capacity,
	is_available,
	teacher_id,
	created_at`

type SlotRepository struct {
	*base.Repository
}

func NewSlotRepository(b *base.Repository) *SlotRepository {
	return &SlotRepository{Repository: b}
}

func scanSlot(row pgx.Row) (*model.TimeSlot, error) {
	var slot model.TimeSlot
	err := row.Scan(
		&slot.ID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Capacity,
		&slot.IsAvailable,
		&slot.TeacherID,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// List получает все слоты
func (r *SlotRepository) List(ctx context.Context) ([]*model.TimeSlot, error) {
	slots, err := base.QueryList(ctx, r.Repository, scanSlot, `SELECT `+slotColumns+` FROM time_slots ORDER BY slot_date, start_time`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	slot, err := base.QueryOne(ctx, r.Repository, scanSlot, `SELECT `+slotColumns+` FROM time_slots WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get slot by id: %w", err)
	}
	return slot, nil
}

// ListByTeacher получает все слоты учителя
func (r *SlotRepository) ListByTeacher(ctx context.Context, teacherID string) ([]*model.TimeSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM time_slots
		WHERE teacher_id = $1
		ORDER BY slot_date, start_time
	`

	slots, err := base.QueryList(ctx, r.Repository, scanSlot, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get slots by teacher: %w", err)
	}
	return slots, nil
}

// Save создаёт слот или обновляет существующий по ID
func (r *SlotRepository) Save(ctx context.Context, slot *model.TimeSlot) error {
	query := `
		INSERT INTO time_slots (id, slot_date, start_time, end_time, capacity, is_available, teacher_id, created_at)
		VALUES ($1, $2::date, $3::time, $4::time, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET slot_date = EXCLUDED.slot_date,
		    start_time = EXCLUDED.start_time,
		    end_time = EXCLUDED.end_time,
		    capacity = EXCLUDED.capacity,
		    is_available = EXCLUDED.is_available
	`

	_, err := r.ExecAffected(ctx, query,
		slot.ID,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
		slot.Capacity,
		slot.IsAvailable,
		slot.TeacherID,
		slot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save slot: %w", err)
	}

	return nil
}

// Delete удаляет слот
func (r *SlotRepository) Delete(ctx context.Context, id string) error {
	err := r.DeleteByID(ctx, "time_slots", id)
	if base.IsNotFound(err) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	return nil
}
