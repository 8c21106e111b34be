package model

import "time"

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID          string        `json:"id"`
	StudentID   string        `json:"studentId"`
	TimeSlotID  string        `json:"timeSlotId"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	CancelledAt *time.Time    `json:"cancelledAt,omitempty"`

	// Дополнительные поля для удобства (не хранятся)
	Slot    *TimeSlot `json:"-"`
	Student *User     `json:"-"`
}

// IsActive проверяет что бронирование занимает место
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusActive
}
