package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_booking_bot/internal/model"
)

type BookingService struct {
	*core
}

// StudentBookings бронирования студента, разделённые по статусу.
// У бронирований заполнено поле Slot; слоты, которых больше нет,
// перечислены в MissingSlotIDs.
type StudentBookings struct {
	Active         []*model.Booking
	Cancelled      []*model.Booking
	MissingSlotIDs []string
}

// Book записывает студента на слот
func (s *BookingService) Book(ctx context.Context, studentID, slotID string) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, err := s.store.Users.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, studentID)
	}
	if !student.IsStudent() {
		return nil, fmt.Errorf("%w: only students can book", ErrForbidden)
	}

	slot, err := s.store.TimeSlots.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil, fmt.Errorf("%w: slot %s", ErrNotFound, slotID)
	}
	if !slot.IsAvailable {
		return nil, fmt.Errorf("%w: slot is closed for booking", ErrValidation)
	}
	if slot.HasEnded(s.now().In(s.loc)) {
		return nil, fmt.Errorf("%w: slot has already ended", ErrValidation)
	}

	active, err := s.activeBookings(ctx, slotID)
	if err != nil {
		return nil, err
	}
	for _, b := range active {
		if b.StudentID == studentID {
			return nil, fmt.Errorf("%w: booking %s", ErrAlreadyBooked, b.ID)
		}
	}
	if len(active) >= slot.Capacity {
		return nil, fmt.Errorf("%w: %d of %d spots taken", ErrCapacity, len(active), slot.Capacity)
	}

	booking := &model.Booking{
		ID:         uuid.NewString(),
		StudentID:  studentID,
		TimeSlotID: slotID,
		Status:     model.BookingStatusActive,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.store.Bookings.Save(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.logger.Info("Slot booked",
		zap.String("booking_id", booking.ID),
		zap.String("student_id", studentID),
		zap.String("slot_id", slotID),
		zap.Int("booked", len(active)+1),
		zap.Int("capacity", slot.Capacity),
	)

	booking.Slot = slot
	booking.Student = student
	return booking, nil
}

// Cancel отменяет активное бронирование студента
func (s *BookingService) Cancel(ctx context.Context, studentID, bookingID string) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, err := s.store.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}
	if booking.StudentID != studentID {
		return nil, fmt.Errorf("%w: booking belongs to another student", ErrForbidden)
	}

	return s.cancelLocked(ctx, booking)
}

// CancelForSlot отменяет активное бронирование студента на слот
func (s *BookingService) CancelForSlot(ctx context.Context, studentID, slotID string) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.activeBookings(ctx, slotID)
	if err != nil {
		return nil, err
	}
	for _, b := range active {
		if b.StudentID == studentID {
			return s.cancelLocked(ctx, b)
		}
	}
	return nil, fmt.Errorf("%w: no active booking on slot %s", ErrNotFound, slotID)
}

func (s *BookingService) cancelLocked(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	if !booking.IsActive() {
		return nil, fmt.Errorf("%w: booking %s", ErrAlreadyCancelled, booking.ID)
	}

	cancelledAt := s.now().UTC()
	booking.Status = model.BookingStatusCancelled
	booking.CancelledAt = &cancelledAt

	if err := s.store.Bookings.Save(ctx, booking); err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	s.logger.Info("Booking cancelled",
		zap.String("booking_id", booking.ID),
		zap.String("student_id", booking.StudentID),
		zap.String("slot_id", booking.TimeSlotID),
	)
	return booking, nil
}

// ActiveForSlot активные бронирования слота с заполненным Student
func (s *BookingService) ActiveForSlot(ctx context.Context, slotID string) ([]*model.Booking, error) {
	active, err := s.activeBookings(ctx, slotID)
	if err != nil {
		return nil, err
	}

	users, err := s.userNames(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range active {
		b.Student = users[b.StudentID]
	}
	return active, nil
}

// BookedCount число занятых мест в слоте
func (s *BookingService) BookedCount(ctx context.Context, slotID string) (int, error) {
	active, err := s.activeBookings(ctx, slotID)
	if err != nil {
		return 0, err
	}
	return len(active), nil
}

func (s *BookingService) IsFull(ctx context.Context, slot *model.TimeSlot) (bool, error) {
	count, err := s.BookedCount(ctx, slot.ID)
	if err != nil {
		return false, err
	}
	return count >= slot.Capacity, nil
}

// IsBookedBy проверяет наличие активного бронирования студента на слот
func (s *BookingService) IsBookedBy(ctx context.Context, slotID, studentID string) (bool, error) {
	active, err := s.activeBookings(ctx, slotID)
	if err != nil {
		return false, err
	}
	for _, b := range active {
		if b.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

// StudentBookings бронирования студента: активные по времени занятия,
// отменённые начиная с последней отмены
func (s *BookingService) StudentBookings(ctx context.Context, studentID string) (*StudentBookings, error) {
	bookings, err := s.store.Bookings.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get student bookings: %w", err)
	}

	result := &StudentBookings{
		Active:    make([]*model.Booking, 0),
		Cancelled: make([]*model.Booking, 0),
	}

	for _, b := range bookings {
		slot, err := s.store.TimeSlots.GetByID(ctx, b.TimeSlotID)
		if err != nil {
			return nil, fmt.Errorf("get slot: %w", err)
		}
		if slot == nil {
			result.MissingSlotIDs = append(result.MissingSlotIDs, b.TimeSlotID)
			s.logger.Warn("Booking references missing slot",
				zap.String("booking_id", b.ID),
				zap.String("slot_id", b.TimeSlotID),
			)
			continue
		}
		b.Slot = slot

		if b.IsActive() {
			result.Active = append(result.Active, b)
		} else {
			result.Cancelled = append(result.Cancelled, b)
		}
	}

	sort.SliceStable(result.Active, func(i, j int) bool {
		return result.Active[i].Slot.SortKey() < result.Active[j].Slot.SortKey()
	})
	sort.SliceStable(result.Cancelled, func(i, j int) bool {
		return cancelledTime(result.Cancelled[i]).After(cancelledTime(result.Cancelled[j]))
	})

	return result, nil
}

func cancelledTime(b *model.Booking) time.Time {
	if b.CancelledAt != nil {
		return *b.CancelledAt
	}
	return b.CreatedAt
}
