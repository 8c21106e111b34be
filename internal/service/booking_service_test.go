package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/gym_booking_bot/internal/model"
)

func TestBook_CapacityOneScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)
	a, b := f.students[0], f.students[1]
	slot := f.createSlot(t, "2024-01-08", 1, 1)

	booking, err := f.svc.Bookings.Book(ctx, a.ID, slot.ID)
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if booking.Status != model.BookingStatusActive || !booking.CreatedAt.Equal(testNow) {
		t.Errorf("unexpected booking %+v", booking)
	}

	if _, err := f.svc.Bookings.Book(ctx, b.ID, slot.ID); !errors.Is(err, ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got %v", err)
	}
	if f.countBookings(t) != 1 {
		t.Fatal("failed booking must not create a record")
	}
	if full, _ := f.svc.Bookings.IsFull(ctx, slot); !full {
		t.Error("slot must be full")
	}

	if _, err := f.svc.Bookings.Cancel(ctx, a.ID, booking.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := f.svc.Bookings.Book(ctx, b.ID, slot.ID); err != nil {
		t.Fatalf("booking after cancel: %v", err)
	}

	if ok, _ := f.svc.Bookings.IsBookedBy(ctx, slot.ID, b.ID); !ok {
		t.Error("expected b to hold the seat")
	}
	if ok, _ := f.svc.Bookings.IsBookedBy(ctx, slot.ID, a.ID); ok {
		t.Error("a must not hold the seat after cancelling")
	}
	if f.countBookings(t) != 2 {
		t.Errorf("cancelled bookings are kept, expected 2 records, got %d", f.countBookings(t))
	}
}

func TestBook_NoDoubleActiveBooking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1)
	slot := f.createSlot(t, "2024-01-08", 1, 10)

	if _, err := f.svc.Bookings.Book(ctx, f.students[0].ID, slot.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Bookings.Book(ctx, f.students[0].ID, slot.ID); !errors.Is(err, ErrAlreadyBooked) {
		t.Fatalf("expected ErrAlreadyBooked, got %v", err)
	}
	if n, _ := f.svc.Bookings.BookedCount(ctx, slot.ID); n != 1 {
		t.Errorf("expected 1 active booking, got %d", n)
	}
}

func TestBook_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1)
	slot := f.createSlot(t, "2024-01-08", 1, 10)

	tests := []struct {
		name      string
		studentID string
		slotID    string
		want      error
	}{
		{"missing slot", f.students[0].ID, "missing", ErrNotFound},
		{"missing student", "missing", slot.ID, ErrNotFound},
		{"teacher cannot book", f.teacher.ID, slot.ID, ErrForbidden},
		{"admin cannot book", f.admin.ID, slot.ID, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.Bookings.Book(ctx, tt.studentID, tt.slotID); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if f.countBookings(t) != 0 {
		t.Error("failed bookings must not create records")
	}
}

func TestBook_EndedSlotRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1)
	ended := f.createSlot(t, "2024-01-03", 1, 10)
	running := f.createSlot(t, "2024-01-03", 2, 10)

	if !f.svc.Slots.HasEnded(ended) {
		t.Fatal("08:15-09:25 must be over at 10:00")
	}
	if _, err := f.svc.Bookings.Book(ctx, f.students[0].ID, ended.ID); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if f.countBookings(t) != 0 {
		t.Fatal("rejected booking must not create a record")
	}

	if f.svc.Slots.HasEnded(running) {
		t.Fatal("09:40-10:50 is still running at 10:00")
	}
	if _, err := f.svc.Bookings.Book(ctx, f.students[0].ID, running.ID); err != nil {
		t.Fatalf("running slot is bookable: %v", err)
	}
}

func TestBook_ConcurrentNeverExceedsCapacity(t *testing.T) {
	ctx := context.Background()
	const students = 20
	const capacity = 5

	f := newFixture(t, students)
	slot := f.createSlot(t, "2024-01-08", 1, capacity)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for _, s := range f.students {
		wg.Add(1)
		go func(studentID string) {
			defer wg.Done()
			_, err := f.svc.Bookings.Book(ctx, studentID, slot.ID)
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			} else if !errors.Is(err, ErrCapacity) {
				t.Errorf("unexpected error: %v", err)
			}
		}(s.ID)
	}
	wg.Wait()

	if success != capacity {
		t.Errorf("expected %d successful bookings, got %d", capacity, success)
	}
	if n, _ := f.svc.Bookings.BookedCount(ctx, slot.ID); n != capacity {
		t.Errorf("expected %d active bookings, got %d", capacity, n)
	}
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)
	slot := f.createSlot(t, "2024-01-08", 1, 10)
	booking, err := f.svc.Bookings.Book(ctx, f.students[0].ID, slot.ID)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Bookings.Cancel(ctx, f.students[1].ID, booking.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden cancelling another student's booking, got %v", err)
	}

	cancelled, err := f.svc.Bookings.Cancel(ctx, f.students[0].ID, booking.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != model.BookingStatusCancelled || cancelled.CancelledAt == nil || !cancelled.CancelledAt.Equal(testNow) {
		t.Errorf("unexpected cancelled booking %+v", cancelled)
	}

	if _, err := f.svc.Bookings.Cancel(ctx, f.students[0].ID, booking.ID); !errors.Is(err, ErrAlreadyCancelled) {
		t.Errorf("expected ErrAlreadyCancelled, got %v", err)
	}
	if _, err := f.svc.Bookings.Cancel(ctx, f.students[0].ID, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCancelForSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1)
	slot := f.createSlot(t, "2024-01-08", 1, 10)

	if _, err := f.svc.Bookings.CancelForSlot(ctx, f.students[0].ID, slot.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound without booking, got %v", err)
	}

	booking, _ := f.svc.Bookings.Book(ctx, f.students[0].ID, slot.ID)
	cancelled, err := f.svc.Bookings.CancelForSlot(ctx, f.students[0].ID, slot.ID)
	if err != nil {
		t.Fatal(err)
	}
	if cancelled.ID != booking.ID {
		t.Errorf("expected booking %s cancelled, got %s", booking.ID, cancelled.ID)
	}
}

func TestActiveForSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)
	slot := f.createSlot(t, "2024-01-08", 1, 10)
	for _, s := range f.students {
		if _, err := f.svc.Bookings.Book(ctx, s.ID, slot.ID); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := f.svc.Bookings.CancelForSlot(ctx, f.students[1].ID, slot.ID); err != nil {
		t.Fatal(err)
	}

	active, err := f.svc.Bookings.ActiveForSlot(ctx, slot.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].Student == nil || active[0].Student.ID != f.students[0].ID {
		t.Errorf("expected only first student active, got %+v", active)
	}
}

func TestStudentBookings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1)
	student := f.students[0]
	later := f.createSlot(t, "2024-01-09", 1, 10)
	earlier := f.createSlot(t, "2024-01-08", 2, 10)
	cancelledSlot := f.createSlot(t, "2024-01-10", 1, 10)

	for _, s := range []*model.TimeSlot{later, earlier, cancelledSlot} {
		if _, err := f.svc.Bookings.Book(ctx, student.ID, s.ID); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := f.svc.Bookings.CancelForSlot(ctx, student.ID, cancelledSlot.ID); err != nil {
		t.Fatal(err)
	}

	// бронирование на слот, которого больше нет
	orphan := &model.Booking{ID: "orphan", StudentID: student.ID, TimeSlotID: "gone", Status: model.BookingStatusActive, CreatedAt: time.Now()}
	if err := f.store.Bookings.Save(ctx, orphan); err != nil {
		t.Fatal(err)
	}

	result, err := f.svc.Bookings.StudentBookings(ctx, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Active) != 2 || result.Active[0].Slot.ID != earlier.ID || result.Active[1].Slot.ID != later.ID {
		t.Errorf("expected active bookings ordered by slot time, got %+v", result.Active)
	}
	if len(result.Cancelled) != 1 || result.Cancelled[0].Slot.ID != cancelledSlot.ID {
		t.Errorf("expected one cancelled booking, got %+v", result.Cancelled)
	}
	if len(result.MissingSlotIDs) != 1 || result.MissingSlotIDs[0] != "gone" {
		t.Errorf("expected missing slot reported, got %v", result.MissingSlotIDs)
	}
}
