package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Freeeeeet/gym_booking_bot/internal/model"
	"github.com/Freeeeeet/gym_booking_bot/internal/storage"
)

// NewKVStore строит Store поверх key-value бэкенда: каждая коллекция
// читается и записывается целиком одним документом
func NewKVStore(kv storage.KV) *Store {
	return NewStore(
		&kvUserRepository{kv: kv},
		&kvTimeSlotRepository{kv: kv},
		&kvBookingRepository{kv: kv},
		&kvSettingsRepository{kv: kv},
		&kvSessionRepository{kv: kv},
		kv.Close,
	)
}

func loadList[T any](ctx context.Context, kv storage.KV, key string) ([]*T, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return []*T{}, nil
	}

	var items []*T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if items == nil {
		items = []*T{}
	}
	return items, nil
}

func storeList[T any](ctx context.Context, kv storage.KV, key string, items []*T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// upsert заменяет элемент с тем же ID или добавляет новый в конец
func upsert[T any](ctx context.Context, kv storage.KV, key string, item *T, id func(*T) string) error {
	items, err := loadList[T](ctx, kv, key)
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range items {
		if id(existing) == id(item) {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}

	return storeList(ctx, kv, key, items)
}

func filter[T any](items []*T, keep func(*T) bool) []*T {
	out := make([]*T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func first[T any](items []*T, match func(*T) bool) *T {
	for _, item := range items {
		if match(item) {
			return item
		}
	}
	return nil
}

// ===== users =====

type kvUserRepository struct {
	kv storage.KV
}

func (r *kvUserRepository) List(ctx context.Context) ([]*model.User, error) {
	return loadList[model.User](ctx, r.kv, storage.KeyUsers)
}

func (r *kvUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return first(users, func(u *model.User) bool { return u.ID == id }), nil
}

func (r *kvUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return first(users, func(u *model.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *kvUserRepository) Save(ctx context.Context, user *model.User) error {
	return upsert(ctx, r.kv, storage.KeyUsers, user, func(u *model.User) string { return u.ID })
}

// ===== time slots =====

type kvTimeSlotRepository struct {
	kv storage.KV
}

func (r *kvTimeSlotRepository) List(ctx context.Context) ([]*model.TimeSlot, error) {
	return loadList[model.TimeSlot](ctx, r.kv, storage.KeyTimeSlots)
}

func (r *kvTimeSlotRepository) GetByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	slots, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return first(slots, func(s *model.TimeSlot) bool { return s.ID == id }), nil
}

func (r *kvTimeSlotRepository) ListByTeacher(ctx context.Context, teacherID string) ([]*model.TimeSlot, error) {
	slots, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter(slots, func(s *model.TimeSlot) bool { return s.TeacherID == teacherID }), nil
}

func (r *kvTimeSlotRepository) Save(ctx context.Context, slot *model.TimeSlot) error {
	return upsert(ctx, r.kv, storage.KeyTimeSlots, slot, func(s *model.TimeSlot) string { return s.ID })
}

func (r *kvTimeSlotRepository) Delete(ctx context.Context, id string) error {
	slots, err := r.List(ctx)
	if err != nil {
		return err
	}
	kept := filter(slots, func(s *model.TimeSlot) bool { return s.ID != id })
	if len(kept) == len(slots) {
		return ErrNotFound
	}
	return storeList(ctx, r.kv, storage.KeyTimeSlots, kept)
}

// ===== bookings =====

type kvBookingRepository struct {
	kv storage.KV
}

func (r *kvBookingRepository) List(ctx context.Context) ([]*model.Booking, error) {
	return loadList[model.Booking](ctx, r.kv, storage.KeyBookings)
}

func (r *kvBookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	bookings, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return first(bookings, func(b *model.Booking) bool { return b.ID == id }), nil
}

func (r *kvBookingRepository) ListBySlot(ctx context.Context, slotID string) ([]*model.Booking, error) {
	bookings, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter(bookings, func(b *model.Booking) bool { return b.TimeSlotID == slotID }), nil
}

func (r *kvBookingRepository) ListByStudent(ctx context.Context, studentID string) ([]*model.Booking, error) {
	bookings, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter(bookings, func(b *model.Booking) bool { return b.StudentID == studentID }), nil
}

func (r *kvBookingRepository) Save(ctx context.Context, booking *model.Booking) error {
	return upsert(ctx, r.kv, storage.KeyBookings, booking, func(b *model.Booking) string { return b.ID })
}

// ===== settings =====

type kvSettingsRepository struct {
	kv storage.KV
}

func (r *kvSettingsRepository) Get(ctx context.Context) (*model.GymSettings, error) {
	raw, ok, err := r.kv.Get(ctx, storage.KeySettings)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	settings := model.DefaultGymSettings()
	if !ok {
		return &settings, nil
	}
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &settings, nil
}

func (r *kvSettingsRepository) Save(ctx context.Context, settings *model.GymSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := r.kv.Set(ctx, storage.KeySettings, raw); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// ===== sessions =====

type kvSessionRepository struct {
	kv storage.KV
}

// sessionKey пустой ключ соответствует единственной сессии профиля
func sessionKey(key string) string {
	if key == "" {
		return storage.KeyCurrentUser
	}
	return storage.KeyCurrentUser + ":" + key
}

func (r *kvSessionRepository) Current(ctx context.Context, key string) (*model.User, error) {
	raw, ok, err := r.kv.Get(ctx, sessionKey(key))
	if err != nil {
		return nil, fmt.Errorf("read current user: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var user *model.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decode current user: %w", err)
	}
	return user, nil
}

func (r *kvSessionRepository) SetCurrent(ctx context.Context, key string, user *model.User) error {
	if user == nil {
		if err := r.kv.Delete(ctx, sessionKey(key)); err != nil {
			return fmt.Errorf("clear current user: %w", err)
		}
		return nil
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode current user: %w", err)
	}
	if err := r.kv.Set(ctx, sessionKey(key), raw); err != nil {
		return fmt.Errorf("write current user: %w", err)
	}
	return nil
}
