package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/Freeeeeet/gym_booking_bot/internal/model"
)

const (
	recentActivityLimit  = 10
	teacherUpcomingLimit = 10

	UnknownTeacher = "Unknown Teacher"
	UnknownStudent = "Unknown Student"
)

type OverviewService struct {
	*core
}

// SystemOverview сводка администратора
type SystemOverview struct {
	UpcomingSlots  int
	ActiveBookings int
	TotalSlots     int
	TotalCapacity  int // вместимость будущих слотов
	BookedSpots    int // активные бронирования будущих слотов
	Utilization    int // процент, округлённый до целого
	UsersByRole    map[model.UserRole]int
	RecentBookings []*ActivityEntry
}

// ActivityEntry бронирование с именами для ленты активности
type ActivityEntry struct {
	Booking     *model.Booking
	StudentName string
	TeacherName string
}

// TeacherOverview сводка учителя по ближайшим занятиям
type TeacherOverview struct {
	TotalSlots     int
	UpcomingCount  int
	ActiveBookings int // активные бронирования будущих слотов
	Upcoming       []*SlotRoster
}

// SlotRoster слот со списком записавшихся
type SlotRoster struct {
	Slot     *model.TimeSlot
	Bookings []*model.Booking
	Students []string
}

// System считает сводку по всем слотам и бронированиям
func (s *OverviewService) System(ctx context.Context) (*SystemOverview, error) {
	slots, err := s.store.TimeSlots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("get slots: %w", err)
	}
	bookings, err := s.store.Bookings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}
	users, err := s.userNames(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	slotIndex := make(map[string]*model.TimeSlot, len(slots))
	overview := &SystemOverview{
		TotalSlots:  len(slots),
		UsersByRole: make(map[model.UserRole]int),
	}

	for _, slot := range slots {
		slotIndex[slot.ID] = slot
		if s.isUpcoming(slot, now) {
			overview.UpcomingSlots++
			overview.TotalCapacity += slot.Capacity
		}
	}

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		overview.ActiveBookings++
		if slot, ok := slotIndex[b.TimeSlotID]; ok && s.isUpcoming(slot, now) {
			overview.BookedSpots++
		}
	}

	overview.Utilization = utilization(overview.BookedSpots, overview.TotalCapacity)

	for _, u := range users {
		overview.UsersByRole[u.Role]++
	}

	recent := append([]*model.Booking(nil), bookings...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentActivityLimit {
		recent = recent[:recentActivityLimit]
	}

	overview.RecentBookings = make([]*ActivityEntry, 0, len(recent))
	for _, b := range recent {
		entry := &ActivityEntry{
			Booking:     b,
			StudentName: nameOr(users[b.StudentID], UnknownStudent),
			TeacherName: UnknownTeacher,
		}
		if slot, ok := slotIndex[b.TimeSlotID]; ok {
			b.Slot = slot
			entry.TeacherName = nameOr(users[slot.TeacherID], UnknownTeacher)
		}
		overview.RecentBookings = append(overview.RecentBookings, entry)
	}

	return overview, nil
}

// Teacher сводка учителя: ближайшие занятия со списками студентов
func (s *OverviewService) Teacher(ctx context.Context, teacherID string) (*TeacherOverview, error) {
	slots, err := s.store.TimeSlots.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get teacher slots: %w", err)
	}
	users, err := s.userNames(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	overview := &TeacherOverview{TotalSlots: len(slots)}

	upcoming := make([]*model.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if s.isUpcoming(slot, now) {
			upcoming = append(upcoming, slot)
		}
	}
	sortSlots(upcoming)
	overview.UpcomingCount = len(upcoming)

	for i, slot := range upcoming {
		active, err := s.activeBookings(ctx, slot.ID)
		if err != nil {
			return nil, err
		}
		overview.ActiveBookings += len(active)

		if i >= teacherUpcomingLimit {
			continue
		}
		roster := &SlotRoster{Slot: slot, Bookings: active, Students: make([]string, 0, len(active))}
		for _, b := range active {
			b.Student = users[b.StudentID]
			roster.Students = append(roster.Students, nameOr(b.Student, UnknownStudent))
		}
		overview.Upcoming = append(overview.Upcoming, roster)
	}

	return overview, nil
}

// TeacherName имя учителя слота или заглушка
func (s *OverviewService) TeacherName(ctx context.Context, teacherID string) string {
	user, err := s.store.Users.GetByID(ctx, teacherID)
	if err != nil {
		return UnknownTeacher
	}
	return nameOr(user, UnknownTeacher)
}

func utilization(booked, capacity int) int {
	if capacity <= 0 {
		return 0
	}
	return int(math.Round(float64(booked) / float64(capacity) * 100))
}

func nameOr(user *model.User, fallback string) string {
	if user == nil || user.Name == "" {
		return fallback
	}
	return user.Name
}
