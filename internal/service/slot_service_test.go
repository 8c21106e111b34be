package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/gym_booking_bot/internal/model"
)

func TestCreateOrUpdateSlot_Create(t *testing.T) {
	f := newFixture(t, 0)

	slot := f.createSlot(t, "2024-01-08", 1, 10)

	if slot.ID == "" {
		t.Error("expected generated ID")
	}
	if slot.StartTime != "08:15" || slot.EndTime != "09:25" {
		t.Errorf("expected catalog window 08:15-09:25, got %s-%s", slot.StartTime, slot.EndTime)
	}
	if !slot.IsAvailable {
		t.Error("new slot must be available")
	}
	if !slot.CreatedAt.Equal(testNow) {
		t.Errorf("expected CreatedAt %s, got %s", testNow, slot.CreatedAt)
	}
}

func TestCreateOrUpdateSlot_Validation(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		window   int
		capacity int
	}{
		{"saturday", "2024-01-06", 1, 10},
		{"sunday", "2024-01-07", 1, 10},
		{"invalid date", "2024-13-01", 1, 10},
		{"unknown window", "2024-01-08", 9, 10},
		{"zero capacity", "2024-01-08", 1, 0},
		{"capacity too large", "2024-01-08", 1, MaxCapacity + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 0)

			_, err := f.svc.Slots.CreateOrUpdateSlot(context.Background(), SlotRequest{
				TeacherID:      f.teacher.ID,
				Date:           tt.date,
				ScheduleSlotID: tt.window,
				Capacity:       tt.capacity,
			})
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}

			slots, _ := f.store.TimeSlots.List(context.Background())
			if len(slots) != 0 {
				t.Errorf("expected no slots stored, got %d", len(slots))
			}
		})
	}
}

func TestCreateOrUpdateSlot_UniquePerTeacherWindow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	f.createSlot(t, "2024-01-08", 2, 10)

	_, err := f.svc.Slots.CreateOrUpdateSlot(ctx, SlotRequest{
		TeacherID: f.teacher.ID, Date: "2024-01-08", ScheduleSlotID: 2, Capacity: 5,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	other := f.createUser(t, "other@gym.test", "Other", model.RoleTeacher)
	if _, err := f.svc.Slots.CreateOrUpdateSlot(ctx, SlotRequest{
		TeacherID: other.ID, Date: "2024-01-08", ScheduleSlotID: 2, Capacity: 5,
	}); err != nil {
		t.Fatalf("another teacher may use the same window: %v", err)
	}

	slots, _ := f.store.TimeSlots.List(ctx)
	if len(slots) != 2 {
		t.Errorf("expected 2 slots, got %d", len(slots))
	}
}

func TestCreateOrUpdateSlot_Edit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	slot := f.createSlot(t, "2024-01-08", 1, 10)
	f.createSlot(t, "2024-01-08", 3, 10)

	edited, err := f.svc.Slots.CreateOrUpdateSlot(ctx, SlotRequest{
		ID: slot.ID, TeacherID: f.teacher.ID, Date: "2024-01-09", ScheduleSlotID: 2, Capacity: 15,
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.ID != slot.ID || !edited.CreatedAt.Equal(slot.CreatedAt) {
		t.Errorf("edit must keep ID and CreatedAt, got %+v", edited)
	}
	if edited.Date != "2024-01-09" || edited.StartTime != "09:40" || edited.Capacity != 15 {
		t.Errorf("unexpected edited slot %+v", edited)
	}

	// edit of a slot onto its own window is not a conflict
	if _, err := f.svc.Slots.CreateOrUpdateSlot(ctx, SlotRequest{
		ID: slot.ID, TeacherID: f.teacher.ID, Date: "2024-01-09", ScheduleSlotID: 2, Capacity: 20,
	}); err != nil {
		t.Fatalf("same window edit: %v", err)
	}

	_, err = f.svc.Slots.CreateOrUpdateSlot(ctx, SlotRequest{
		ID: slot.ID, TeacherID: f.teacher.ID, Date: "2024-01-08", ScheduleSlotID: 3, Capacity: 20,
	})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict moving onto an existing window, got %v", err)
	}

	slots, _ := f.store.TimeSlots.List(ctx)
	if len(slots) != 2 {
		t.Errorf("edit must not add records, got %d", len(slots))
	}
}

func TestCreateOrUpdateSlot_EditOwnershipAndMissing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	slot := f.createSlot(t, "2024-01-08", 1, 10)
	other := f.createUser(t, "other@gym.test", "Other", model.RoleTeacher)

	_, err := f.svc.Slots.CreateOrUpdateSlot(ctx, SlotRequest{
		ID: slot.ID, TeacherID: other.ID, Date: "2024-01-08", ScheduleSlotID: 1, Capacity: 5,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	_, err = f.svc.Slots.CreateOrUpdateSlot(ctx, SlotRequest{
		ID: "missing", TeacherID: f.teacher.ID, Date: "2024-01-08", ScheduleSlotID: 1, Capacity: 5,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	_, err = f.svc.Slots.CreateOrUpdateSlot(ctx, SlotRequest{
		TeacherID: f.admin.ID, Date: "2024-01-08", ScheduleSlotID: 4, Capacity: 5,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-teacher, got %v", err)
	}
}

func TestCreateOrUpdateSlot_EditKeepsCapacityInvariant(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 3)
	slot := f.createSlot(t, "2024-01-08", 1, 5)
	for _, s := range f.students {
		if _, err := f.svc.Bookings.Book(ctx, s.ID, slot.ID); err != nil {
			t.Fatal(err)
		}
	}

	_, err := f.svc.Slots.CreateOrUpdateSlot(ctx, SlotRequest{
		ID: slot.ID, TeacherID: f.teacher.ID, Date: "2024-01-08", ScheduleSlotID: 1, Capacity: 2,
	})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict lowering capacity below bookings, got %v", err)
	}

	if _, err := f.svc.Slots.UpdateCapacity(ctx, f.teacher.ID, slot.ID, 2); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict from UpdateCapacity, got %v", err)
	}

	_, err = f.svc.Slots.CreateOrUpdateSlot(ctx, SlotRequest{
		ID: slot.ID, TeacherID: f.teacher.ID, Date: "2024-01-09", ScheduleSlotID: 1, Capacity: 5,
	})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict moving booked slot, got %v", err)
	}

	updated, err := f.svc.Slots.UpdateCapacity(ctx, f.teacher.ID, slot.ID, 3)
	if err != nil {
		t.Fatalf("capacity equal to bookings must be allowed: %v", err)
	}
	if updated.Capacity != 3 {
		t.Errorf("expected capacity 3, got %d", updated.Capacity)
	}
}

func TestDeleteSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1)
	slot := f.createSlot(t, "2024-01-08", 1, 5)
	booking, err := f.svc.Bookings.Book(ctx, f.students[0].ID, slot.ID)
	if err != nil {
		t.Fatal(err)
	}

	if err := f.svc.Slots.DeleteSlot(ctx, f.teacher.ID, slot.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	stored, _ := f.store.TimeSlots.GetByID(ctx, slot.ID)
	if stored == nil || stored.Capacity != 5 {
		t.Fatalf("blocked delete must leave slot unchanged, got %+v", stored)
	}
	if f.countBookings(t) != 1 {
		t.Fatal("blocked delete must leave bookings unchanged")
	}

	if _, err := f.svc.Bookings.Cancel(ctx, f.students[0].ID, booking.ID); err != nil {
		t.Fatal(err)
	}
	if err := f.svc.Slots.DeleteSlot(ctx, f.teacher.ID, slot.ID); err != nil {
		t.Fatalf("delete after cancel: %v", err)
	}
	if _, err := f.svc.Slots.GetSlot(ctx, slot.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := f.svc.Slots.DeleteSlot(ctx, f.teacher.ID, slot.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestSetAvailability(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)
	slot := f.createSlot(t, "2024-01-08", 1, 5)
	if _, err := f.svc.Bookings.Book(ctx, f.students[0].ID, slot.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Slots.SetAvailability(ctx, f.teacher.ID, slot.ID, false); err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Bookings.Book(ctx, f.students[1].ID, slot.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation booking closed slot, got %v", err)
	}
	if n, _ := f.svc.Bookings.BookedCount(ctx, slot.ID); n != 1 {
		t.Errorf("existing booking must stay, got %d", n)
	}

	visible, _ := f.svc.Slots.SlotsForDate(ctx, "2024-01-08")
	if len(visible) != 0 {
		t.Errorf("closed slot must be hidden from students, got %d", len(visible))
	}
	own, _ := f.svc.Slots.TeacherSlots(ctx, f.teacher.ID)
	if len(own) != 1 {
		t.Errorf("closed slot must stay visible to its teacher, got %d", len(own))
	}

	if _, err := f.svc.Slots.SetAvailability(ctx, f.teacher.ID, slot.ID, true); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Bookings.Book(ctx, f.students[1].ID, slot.ID); err != nil {
		t.Errorf("reopened slot must accept bookings: %v", err)
	}
}

func TestPartitionSlots(t *testing.T) {
	f := newFixture(t, 0)
	slots := []*model.TimeSlot{
		{ID: "future-late", Date: "2024-01-05", StartTime: "12:30"},
		{ID: "past-old", Date: "2024-01-01", StartTime: "08:15"},
		{ID: "today-past", Date: "2024-01-03", StartTime: "09:40"},
		{ID: "today-future", Date: "2024-01-03", StartTime: "11:05"},
		{ID: "future-early", Date: "2024-01-04", StartTime: "08:15"},
	}

	upcoming, past := f.svc.Slots.PartitionSlots(slots, testNow)

	wantUpcoming := []string{"today-future", "future-early", "future-late"}
	wantPast := []string{"today-past", "past-old"}

	if len(upcoming) != len(wantUpcoming) || len(past) != len(wantPast) {
		t.Fatalf("unexpected partition sizes: %d upcoming, %d past", len(upcoming), len(past))
	}
	for i, id := range wantUpcoming {
		if upcoming[i].ID != id {
			t.Errorf("upcoming[%d]: expected %s, got %s", i, id, upcoming[i].ID)
		}
	}
	for i, id := range wantPast {
		if past[i].ID != id {
			t.Errorf("past[%d]: expected %s, got %s", i, id, past[i].ID)
		}
	}
}

func TestWeekSlots(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	mon := f.createSlot(t, "2024-01-08", 1, 5)
	f.createSlot(t, "2024-01-12", 8, 5)
	f.createSlot(t, "2024-01-15", 1, 5)
	closed := f.createSlot(t, "2024-01-10", 4, 5)
	if _, err := f.svc.Slots.SetAvailability(ctx, f.teacher.ID, closed.ID, false); err != nil {
		t.Fatal(err)
	}

	sunday := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)

	teacherWeek, err := f.svc.Slots.WeekSlots(ctx, f.teacher.ID, sunday)
	if err != nil {
		t.Fatal(err)
	}
	if len(teacherWeek.Days) != 5 || teacherWeek.Days[0] != "2024-01-08" {
		t.Fatalf("unexpected days %v", teacherWeek.Days)
	}
	if len(teacherWeek.Slots) != 3 {
		t.Errorf("teacher week must include closed slots, got %d", len(teacherWeek.Slots))
	}

	studentWeek, _ := f.svc.Slots.WeekSlots(ctx, "", sunday)
	if len(studentWeek.Slots) != 2 {
		t.Errorf("student week must hide closed slots, got %d", len(studentWeek.Slots))
	}

	window := model.ScheduleSlot{StartTime: "08:15", EndTime: "09:25"}
	at := studentWeek.At("2024-01-08", window)
	if len(at) != 1 || at[0].ID != mon.ID {
		t.Errorf("expected monday slot in first window, got %v", at)
	}
}

func TestBookableDates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)

	dates, err := f.svc.Slots.BookableDates(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2024-01-03", "2024-01-04", "2024-01-05", "2024-01-08", "2024-01-09", "2024-01-10", "2024-01-11"}
	if len(dates) != len(want) {
		t.Fatalf("expected %d dates, got %v", len(want), dates)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("dates[%d]: expected %s, got %s", i, want[i], dates[i])
		}
	}
}
