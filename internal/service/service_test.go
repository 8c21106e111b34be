package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_booking_bot/internal/model"
	"github.com/Freeeeeet/gym_booking_bot/internal/repository"
	"github.com/Freeeeeet/gym_booking_bot/internal/storage"
)

// Среда, 3 января 2024, 10:00 UTC
var testNow = time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *Services
	store    *repository.Store
	teacher  *model.User
	students []*model.User
	admin    *model.User
}

func newFixture(t *testing.T, students int) *fixture {
	t.Helper()

	store := repository.NewKVStore(storage.NewMemory())
	svc := New(store, zap.NewNop(),
		WithClock(func() time.Time { return testNow }),
		WithLocation(time.UTC),
	)

	f := &fixture{svc: svc, store: store}
	f.teacher = f.createUser(t, "teacher@gym.test", "Coach", model.RoleTeacher)
	f.admin = f.createUser(t, "admin@gym.test", "Boss", model.RoleAdmin)
	for i := 0; i < students; i++ {
		email := string(rune('a'+i)) + "@gym.test"
		f.students = append(f.students, f.createUser(t, email, "Student "+string(rune('A'+i)), model.RoleStudent))
	}
	return f
}

func (f *fixture) createUser(t *testing.T, email, name string, role model.UserRole) *model.User {
	t.Helper()
	u, err := f.svc.Users.CreateUser(context.Background(), CreateUserRequest{Email: email, Name: name, Role: string(role)})
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func (f *fixture) createSlot(t *testing.T, date string, window, capacity int) *model.TimeSlot {
	t.Helper()
	slot, err := f.svc.Slots.CreateOrUpdateSlot(context.Background(), SlotRequest{
		TeacherID:      f.teacher.ID,
		Date:           date,
		ScheduleSlotID: window,
		Capacity:       capacity,
	})
	if err != nil {
		t.Fatalf("create slot %s #%d: %v", date, window, err)
	}
	return slot
}

func (f *fixture) countBookings(t *testing.T) int {
	t.Helper()
	all, err := f.store.Bookings.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return len(all)
}
