package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_booking_bot/internal/model"
	"github.com/Freeeeeet/gym_booking_bot/internal/repository"
	"github.com/Freeeeeet/gym_booking_bot/internal/schedule"
)

// Допустимая вместимость слота
const (
	MinCapacity     = 1
	MaxCapacity     = 50
	DefaultCapacity = 10
)

type SlotService struct {
	*core
}

// SlotRequest создание (ID пустой) или редактирование слота учителя
type SlotRequest struct {
	ID             string
	TeacherID      string
	Date           string
	ScheduleSlotID int
	Capacity       int
}

// WeekView слоты рабочей недели
type WeekView struct {
	Days  []string // понедельник..пятница, YYYY-MM-DD
	Slots []*model.TimeSlot
}

// At слоты в указанный день и окно сетки
func (w *WeekView) At(date string, window model.ScheduleSlot) []*model.TimeSlot {
	var out []*model.TimeSlot
	for _, slot := range w.Slots {
		if slot.Date == date && slot.StartTime == window.StartTime && slot.EndTime == window.EndTime {
			out = append(out, slot)
		}
	}
	return out
}

func checkCapacity(capacity int) error {
	if capacity < MinCapacity || capacity > MaxCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d", ErrValidation, MinCapacity, MaxCapacity)
	}
	return nil
}

// CreateOrUpdateSlot создаёт слот учителя или редактирует существующий.
// Один учитель не может иметь два слота в одном окне одной даты.
func (s *SlotService) CreateOrUpdateSlot(ctx context.Context, req SlotRequest) (*model.TimeSlot, error) {
	window, ok := schedule.FindByID(req.ScheduleSlotID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown schedule slot %d", ErrValidation, req.ScheduleSlotID)
	}
	if !schedule.IsWeekday(req.Date) {
		return nil, fmt.Errorf("%w: %q is not a weekday", ErrValidation, req.Date)
	}
	if err := checkCapacity(req.Capacity); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTeacher(ctx, req.TeacherID); err != nil {
		return nil, err
	}

	var existing *model.TimeSlot
	if req.ID != "" {
		var err error
		existing, err = s.ownedSlot(ctx, req.TeacherID, req.ID)
		if err != nil {
			return nil, err
		}
	}

	slot := &model.TimeSlot{
		Date:      req.Date,
		StartTime: window.StartTime,
		EndTime:   window.EndTime,
		Capacity:  req.Capacity,
		TeacherID: req.TeacherID,
	}

	teacherSlots, err := s.store.TimeSlots.ListByTeacher(ctx, req.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("get teacher slots: %w", err)
	}
	for _, other := range teacherSlots {
		if other.ID != req.ID && other.SameWindow(slot) {
			return nil, fmt.Errorf("%w: slot %s %s already exists", ErrConflict, slot.Date, slot.StartTime)
		}
	}

	if existing != nil {
		active, err := s.activeBookings(ctx, existing.ID)
		if err != nil {
			return nil, err
		}
		if req.Capacity < len(active) {
			return nil, fmt.Errorf("%w: slot has %d active bookings", ErrConflict, len(active))
		}
		if len(active) > 0 && !existing.SameWindow(slot) {
			return nil, fmt.Errorf("%w: cannot move slot with active bookings", ErrConflict)
		}

		slot.ID = existing.ID
		slot.CreatedAt = existing.CreatedAt
		slot.IsAvailable = existing.IsAvailable
	} else {
		slot.ID = uuid.NewString()
		slot.CreatedAt = s.now().UTC()
		slot.IsAvailable = true
	}

	if err := s.store.TimeSlots.Save(ctx, slot); err != nil {
		return nil, fmt.Errorf("save slot: %w", err)
	}

	s.logger.Info("Slot saved",
		zap.String("slot_id", slot.ID),
		zap.String("teacher_id", slot.TeacherID),
		zap.String("date", slot.Date),
		zap.String("start", slot.StartTime),
		zap.Int("capacity", slot.Capacity),
		zap.Bool("created", existing == nil),
	)

	return slot, nil
}

// UpdateCapacity меняет только вместимость слота
func (s *SlotService) UpdateCapacity(ctx context.Context, teacherID, slotID string, capacity int) (*model.TimeSlot, error) {
	if err := checkCapacity(capacity); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slot, err := s.ownedSlot(ctx, teacherID, slotID)
	if err != nil {
		return nil, err
	}

	active, err := s.activeBookings(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if capacity < len(active) {
		return nil, fmt.Errorf("%w: slot has %d active bookings", ErrConflict, len(active))
	}

	slot.Capacity = capacity
	if err := s.store.TimeSlots.Save(ctx, slot); err != nil {
		return nil, fmt.Errorf("save slot: %w", err)
	}

	s.logger.Info("Slot capacity updated",
		zap.String("slot_id", slotID),
		zap.Int("capacity", capacity),
	)
	return slot, nil
}

// SetAvailability открывает или закрывает слот для новых записей.
// Существующие бронирования не меняются.
func (s *SlotService) SetAvailability(ctx context.Context, teacherID, slotID string, available bool) (*model.TimeSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, err := s.ownedSlot(ctx, teacherID, slotID)
	if err != nil {
		return nil, err
	}

	if slot.IsAvailable == available {
		return slot, nil
	}

	slot.IsAvailable = available
	if err := s.store.TimeSlots.Save(ctx, slot); err != nil {
		return nil, fmt.Errorf("save slot: %w", err)
	}

	s.logger.Info("Slot availability changed",
		zap.String("slot_id", slotID),
		zap.Bool("available", available),
	)
	return slot, nil
}

// DeleteSlot удаляет слот без активных бронирований
func (s *SlotService) DeleteSlot(ctx context.Context, teacherID, slotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedSlot(ctx, teacherID, slotID); err != nil {
		return err
	}

	active, err := s.activeBookings(ctx, slotID)
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return fmt.Errorf("%w: slot has %d active bookings", ErrConflict, len(active))
	}

	if err := s.store.TimeSlots.Delete(ctx, slotID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: slot %s", ErrNotFound, slotID)
		}
		return fmt.Errorf("delete slot: %w", err)
	}

	s.logger.Info("Slot deleted",
		zap.String("slot_id", slotID),
		zap.String("teacher_id", teacherID),
	)
	return nil
}

// GetSlot возвращает слот по ID
func (s *SlotService) GetSlot(ctx context.Context, slotID string) (*model.TimeSlot, error) {
	slot, err := s.store.TimeSlots.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil, fmt.Errorf("%w: slot %s", ErrNotFound, slotID)
	}
	return slot, nil
}

// TeacherSlots все слоты учителя по возрастанию даты и времени
func (s *SlotService) TeacherSlots(ctx context.Context, teacherID string) ([]*model.TimeSlot, error) {
	slots, err := s.store.TimeSlots.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get teacher slots: %w", err)
	}
	sortSlots(slots)
	return slots, nil
}

// PartitionSlots делит слоты на будущие (по возрастанию) и прошедшие (по убыванию)
func (s *SlotService) PartitionSlots(slots []*model.TimeSlot, now time.Time) (upcoming, past []*model.TimeSlot) {
	for _, slot := range slots {
		if s.isUpcoming(slot, now) {
			upcoming = append(upcoming, slot)
		} else {
			past = append(past, slot)
		}
	}

	sortSlots(upcoming)
	sort.SliceStable(past, func(i, j int) bool {
		return past[i].SortKey() > past[j].SortKey()
	})
	return upcoming, past
}

// SlotsForDate открытые для записи слоты всех учителей на дату
func (s *SlotService) SlotsForDate(ctx context.Context, date string) ([]*model.TimeSlot, error) {
	all, err := s.store.TimeSlots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("get slots: %w", err)
	}

	out := make([]*model.TimeSlot, 0)
	for _, slot := range all {
		if slot.Date == date && slot.IsAvailable {
			out = append(out, slot)
		}
	}
	sortSlots(out)
	return out, nil
}

// WeekSlots слоты недели, содержащей date. С teacherID - все слоты учителя,
// без него - только открытые для записи.
func (s *SlotService) WeekSlots(ctx context.Context, teacherID string, date time.Time) (*WeekView, error) {
	days := schedule.WeekDays(date)

	var (
		slots []*model.TimeSlot
		err   error
	)
	if teacherID != "" {
		slots, err = s.store.TimeSlots.ListByTeacher(ctx, teacherID)
	} else {
		slots, err = s.store.TimeSlots.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("get slots: %w", err)
	}

	inWeek := make(map[string]bool, len(days))
	for _, d := range days {
		inWeek[d] = true
	}

	view := &WeekView{Days: days, Slots: make([]*model.TimeSlot, 0)}
	for _, slot := range slots {
		if !inWeek[slot.Date] {
			continue
		}
		if teacherID == "" && !slot.IsAvailable {
			continue
		}
		view.Slots = append(view.Slots, slot)
	}
	sortSlots(view.Slots)
	return view, nil
}

// BookableDates рабочие дни, на которые студент может записаться
func (s *SlotService) BookableDates(ctx context.Context) ([]string, error) {
	settings, err := s.store.Settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return schedule.NextWeekdays(s.now().In(s.loc), settings.DaysInAdvance), nil
}

// HasEnded закончилось ли занятие по часам зала
func (s *SlotService) HasEnded(slot *model.TimeSlot) bool {
	return slot.HasEnded(s.now().In(s.loc))
}

// Today текущая дата в зоне зала
func (s *SlotService) Today() time.Time {
	return s.now().In(s.loc)
}

func (s *SlotService) checkTeacher(ctx context.Context, teacherID string) error {
	teacher, err := s.store.Users.GetByID(ctx, teacherID)
	if err != nil {
		return fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return fmt.Errorf("%w: user %s", ErrNotFound, teacherID)
	}
	if !teacher.IsTeacher() {
		return fmt.Errorf("%w: user %s is not a teacher", ErrForbidden, teacherID)
	}
	return nil
}

// ownedSlot загружает слот и проверяет, что он принадлежит учителю
func (s *SlotService) ownedSlot(ctx context.Context, teacherID, slotID string) (*model.TimeSlot, error) {
	slot, err := s.store.TimeSlots.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil, fmt.Errorf("%w: slot %s", ErrNotFound, slotID)
	}
	if slot.TeacherID != teacherID {
		return nil, fmt.Errorf("%w: slot %s belongs to another teacher", ErrForbidden, slotID)
	}
	return slot, nil
}
