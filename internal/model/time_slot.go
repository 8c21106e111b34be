package model

import "time"

// Форматы даты и времени слота
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// TimeSlot - конкретное занятие учителя на дату, привязанное к окну сетки
type TimeSlot struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`      // YYYY-MM-DD
	StartTime   string    `json:"startTime"` // HH:MM
	EndTime     string    `json:"endTime"`   // HH:MM
	Capacity    int       `json:"capacity"`
	IsAvailable bool      `json:"isAvailable"`
	TeacherID   string    `json:"teacherId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// StartsAt возвращает момент начала слота в указанной зоне
func (s *TimeSlot) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, s.Date+" "+s.StartTime, loc)
}

// EndsAt возвращает момент окончания слота в указанной зоне
func (s *TimeSlot) EndsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, s.Date+" "+s.EndTime, loc)
}

// HasEnded сообщает что занятие уже закончилось к моменту now
func (s *TimeSlot) HasEnded(now time.Time) bool {
	end, err := s.EndsAt(now.Location())
	if err != nil {
		return false
	}
	return end.Before(now)
}

// SortKey композитный ключ дата+время начала, сортируется лексикографически
func (s *TimeSlot) SortKey() string {
	return s.Date + "T" + s.StartTime
}

// SameWindow проверяет что слоты занимают одно и то же окно в один день
func (s *TimeSlot) SameWindow(other *TimeSlot) bool {
	return s.Date == other.Date && s.StartTime == other.StartTime && s.EndTime == other.EndTime
}
