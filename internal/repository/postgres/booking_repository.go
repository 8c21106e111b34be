package postgres

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/gym_booking_bot/internal/model"
	"github.com/Freeeeeet/gym_booking_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

const bookingColumns = `id, student_id, time_slot_id, status, created_at, cancelled_at`

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(b *base.Repository) *BookingRepository {
	return &BookingRepository{Repository: b}
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID,
		&booking.StudentID,
		&booking.TimeSlotID,
		&booking.Status,
		&booking.CreatedAt,
		&booking.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// List получает все бронирования в порядке создания
func (r *BookingRepository) List(ctx context.Context) ([]*model.Booking, error) {
	bookings, err := base.QueryList(ctx, r.Repository, scanBooking, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := base.QueryOne(ctx, r.Repository, scanBooking, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get booking by id: %w", err)
	}
	return booking, nil
}

// ListBySlot получает все бронирования слота, включая отменённые
func (r *BookingRepository) ListBySlot(ctx context.Context, slotID string) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE time_slot_id = $1
		ORDER BY created_at
	`

	bookings, err := base.QueryList(ctx, r.Repository, scanBooking, query, slotID)
	if err != nil {
		return nil, fmt.Errorf("get bookings by slot: %w", err)
	}
	return bookings, nil
}

// ListByStudent получает все бронирования студента
func (r *BookingRepository) ListByStudent(ctx context.Context, studentID string) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE student_id = $1
		ORDER BY created_at
	`

	bookings, err := base.QueryList(ctx, r.Repository, scanBooking, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("get bookings by student: %w", err)
	}
	return bookings, nil
}

// Save создаёт бронирование или обновляет его статус
func (r *BookingRepository) Save(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (id, student_id, time_slot_id, status, created_at, cancelled_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status,
		    cancelled_at = EXCLUDED.cancelled_at
	`

	_, err := r.ExecAffected(ctx, query,
		booking.ID,
		booking.StudentID,
		booking.TimeSlotID,
		booking.Status,
		booking.CreatedAt,
		booking.CancelledAt,
	)
	if err != nil {
		return fmt.Errorf("save booking: %w", err)
	}

	return nil
}
