// Package repository описывает хранилище записей зала. Методы Get* возвращают
// nil, nil когда запись не найдена.
package repository

import (
	"context"
	"errors"

	"github.com/Freeeeeet/gym_booking_bot/internal/model"
)

type UserRepository interface {
	List(ctx context.Context) ([]*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// Save вставляет или заменяет пользователя по ID
	Save(ctx context.Context, user *model.User) error
}

type TimeSlotRepository interface {
	List(ctx context.Context) ([]*model.TimeSlot, error)
	GetByID(ctx context.Context, id string) (*model.TimeSlot, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]*model.TimeSlot, error)
	Save(ctx context.Context, slot *model.TimeSlot) error
	Delete(ctx context.Context, id string) error
}

type BookingRepository interface {
	List(ctx context.Context) ([]*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListBySlot(ctx context.Context, slotID string) ([]*model.Booking, error)
	ListByStudent(ctx context.Context, studentID string) ([]*model.Booking, error)
	Save(ctx context.Context, booking *model.Booking) error
}

type SettingsRepository interface {
	// Get возвращает настройки по умолчанию, если их ещё не сохраняли
	Get(ctx context.Context) (*model.GymSettings, error)
	Save(ctx context.Context, settings *model.GymSettings) error
}

// SessionRepository хранит текущего пользователя сессии
type SessionRepository interface {
	Current(ctx context.Context, sessionKey string) (*model.User, error)
	// SetCurrent с nil завершает сессию
	SetCurrent(ctx context.Context, sessionKey string, user *model.User) error
}

// Store набор репозиториев одного хранилища
type Store struct {
	Users     UserRepository
	TimeSlots TimeSlotRepository
	Bookings  BookingRepository
	Settings  SettingsRepository
	Sessions  SessionRepository

	closer func() error
}

// NewStore собирает Store из готовых репозиториев
func NewStore(users UserRepository, slots TimeSlotRepository, bookings BookingRepository,
	settings SettingsRepository, sessions SessionRepository, closer func() error) *Store {
	return &Store{
		Users:     users,
		TimeSlots: slots,
		Bookings:  bookings,
		Settings:  settings,
		Sessions:  sessions,
		closer:    closer,
	}
}

// Close освобождает ресурсы бэкенда
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// ErrNotFound возвращают Delete-операции, когда записи нет
var ErrNotFound = errors.New("record not found")
