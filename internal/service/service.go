// Package service содержит бизнес-логику зала: слоты, бронирования,
// пользователей, сессии, настройки и сводки.
package service

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_booking_bot/internal/model"
	"github.com/Freeeeeet/gym_booking_bot/internal/repository"
)

// Services набор сервисов поверх одного хранилища
type Services struct {
	Users    *UserService
	Sessions *SessionService
	Slots    *SlotService
	Bookings *BookingService
	Settings *SettingsService
	Overview *OverviewService
}

type Option func(*core)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(c *core) {
		c.now = now
	}
}

// WithLocation задаёт зону, в которой интерпретируются даты слотов
func WithLocation(loc *time.Location) Option {
	return func(c *core) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// core общее состояние сервисов. Все изменения выполняются под mu,
// поэтому проверка вместимости и запись не перемежаются.
type core struct {
	store    *repository.Store
	mu       sync.Mutex
	now      func() time.Time
	loc      *time.Location
	validate *validator.Validate
	logger   *zap.Logger
}

func New(store *repository.Store, logger *zap.Logger, opts ...Option) *Services {
	c := &core{
		store:    store,
		now:      time.Now,
		loc:      time.Local,
		validate: newValidator(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	return &Services{
		Users:    &UserService{core: c},
		Sessions: &SessionService{core: c},
		Slots:    &SlotService{core: c},
		Bookings: &BookingService{core: c},
		Settings: &SettingsService{core: c},
		Overview: &OverviewService{core: c},
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// activeBookings активные бронирования слота
func (c *core) activeBookings(ctx context.Context, slotID string) ([]*model.Booking, error) {
	bookings, err := c.store.Bookings.ListBySlot(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("get slot bookings: %w", err)
	}

	active := make([]*model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			active = append(active, b)
		}
	}
	return active, nil
}

func (c *core) isUpcoming(slot *model.TimeSlot, now time.Time) bool {
	start, err := slot.StartsAt(c.loc)
	if err != nil {
		return false
	}
	return start.After(now)
}

// userNames индекс имён пользователей для сводок
func (c *core) userNames(ctx context.Context) (map[string]*model.User, error) {
	users, err := c.store.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	index := make(map[string]*model.User, len(users))
	for _, u := range users {
		index[u.ID] = u
	}
	return index, nil
}

func sortSlots(slots []*model.TimeSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].SortKey() < slots[j].SortKey()
	})
}
