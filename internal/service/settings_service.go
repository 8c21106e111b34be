package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_booking_bot/internal/model"
)

// Имена полей настроек для SetField
const (
	FieldSlotDuration   = "duration"
	FieldMaxSlotsPerDay = "maxslots"
	FieldOpeningTime    = "opening"
	FieldClosingTime    = "closing"
	FieldDaysInAdvance  = "advance"
)

type SettingsService struct {
	*core
}

func (s *SettingsService) Get(ctx context.Context) (*model.GymSettings, error) {
	settings, err := s.store.Settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// Update проверяет и сохраняет настройки целиком
func (s *SettingsService) Update(ctx context.Context, settings model.GymSettings) (*model.GymSettings, error) {
	if err := s.check(settings); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveLocked(ctx, settings)
}

// SetField меняет одно поле настроек, значение передаётся строкой
func (s *SettingsService) SetField(ctx context.Context, field, value string) (*model.GymSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.Settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	updated := *current
	value = strings.TrimSpace(value)

	switch strings.ToLower(field) {
	case FieldSlotDuration:
		updated.SlotDuration, err = parseInt(field, value)
	case FieldMaxSlotsPerDay:
		updated.MaxSlotsPerDay, err = parseInt(field, value)
	case FieldDaysInAdvance:
		updated.DaysInAdvance, err = parseInt(field, value)
	case FieldOpeningTime:
		updated.OpeningTime = value
	case FieldClosingTime:
		updated.ClosingTime = value
	default:
		return nil, fmt.Errorf("%w: unknown settings field %q", ErrValidation, field)
	}
	if err != nil {
		return nil, err
	}

	if err := s.check(updated); err != nil {
		return nil, err
	}
	return s.saveLocked(ctx, updated)
}

func (s *SettingsService) check(settings model.GymSettings) error {
	if err := s.validate.Struct(settings); err != nil {
		return validationError(err)
	}

	opening, _ := time.Parse(model.TimeLayout, settings.OpeningTime)
	closing, _ := time.Parse(model.TimeLayout, settings.ClosingTime)
	if !opening.Before(closing) {
		return fmt.Errorf("%w: opening time must be before closing time", ErrValidation)
	}
	return nil
}

func (s *SettingsService) saveLocked(ctx context.Context, settings model.GymSettings) (*model.GymSettings, error) {
	if err := s.store.Settings.Save(ctx, &settings); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	s.logger.Info("Settings saved",
		zap.Int("slot_duration", settings.SlotDuration),
		zap.Int("max_slots_per_day", settings.MaxSlotsPerDay),
		zap.String("opening", settings.OpeningTime),
		zap.String("closing", settings.ClosingTime),
		zap.Int("days_in_advance", settings.DaysInAdvance),
	)
	return &settings, nil
}

func parseInt(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrValidation, field)
	}
	return n, nil
}
