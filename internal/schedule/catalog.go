// Package schedule описывает фиксированную дневную сетку зала.
package schedule

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/gym_booking_bot/internal/model"
)

// SlotsPerDay количество окон в дневной сетке
const SlotsPerDay = 8

// Сетка: понедельник-пятница, 08:15-20:05, окна по 70 минут с переменами
// и обеденным перерывом между 4 и 5 окном
var dailySchedule = [SlotsPerDay]model.ScheduleSlot{
	{ID: 1, StartTime: "08:15", EndTime: "09:25", Label: "1-2"},
	{ID: 2, StartTime: "09:40", EndTime: "10:50", Label: "3-4"},
	{ID: 3, StartTime: "11:05", EndTime: "12:15", Label: "5-6"},
	{ID: 4, StartTime: "12:30", EndTime: "13:40", Label: "7-8"},
	{ID: 5, StartTime: "14:40", EndTime: "15:50", Label: "9-10"},
	{ID: 6, StartTime: "16:05", EndTime: "17:15", Label: "11-12"},
	{ID: 7, StartTime: "17:30", EndTime: "18:40", Label: "13-14"},
	{ID: 8, StartTime: "18:55", EndTime: "20:05", Label: "15-16"},
}

// Daily возвращает копию всей сетки
func Daily() []model.ScheduleSlot {
	out := make([]model.ScheduleSlot, len(dailySchedule))
	copy(out, dailySchedule[:])
	return out
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(date string) (time.Time, error) {
	return time.Parse(model.DateLayout, date)
}

// IsWeekday проверяет что дата приходится на понедельник-пятницу.
// Некорректная дата считается выходным.
func IsWeekday(date string) bool {
	d, err := ParseDate(date)
	if err != nil {
		return false
	}
	wd := d.Weekday()
	return wd >= time.Monday && wd <= time.Friday
}

// SlotsForDate возвращает сетку для будней и пустой список для выходных
func SlotsForDate(date string) []model.ScheduleSlot {
	if !IsWeekday(date) {
		return []model.ScheduleSlot{}
	}
	return Daily()
}

// FindByID ищет окно по номеру 1..8
func FindByID(id int) (model.ScheduleSlot, bool) {
	if id < 1 || id > SlotsPerDay {
		return model.ScheduleSlot{}, false
	}
	return dailySchedule[id-1], true
}

// FindByTimes ищет окно по времени начала и конца
func FindByTimes(start, end string) (model.ScheduleSlot, bool) {
	for _, s := range dailySchedule {
		if s.StartTime == start && s.EndTime == end {
			return s, true
		}
	}
	return model.ScheduleSlot{}, false
}

// FormatSlotTime "08:15 - 09:25"
func FormatSlotTime(slot model.ScheduleSlot) string {
	return fmt.Sprintf("%s - %s", slot.StartTime, slot.EndTime)
}

// WeekDays возвращает даты понедельник-пятница недели, в которую попадает date
func WeekDays(date time.Time) []string {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	daysSinceMonday := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		daysSinceMonday = 6
	}
	monday := day.AddDate(0, 0, -daysSinceMonday)

	days := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		days = append(days, monday.AddDate(0, 0, i).Format(model.DateLayout))
	}
	return days
}

// NextWeekdays возвращает n ближайших будних дат начиная с from (включительно)
func NextWeekdays(from time.Time, n int) []string {
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)

	days := make([]string, 0, n)
	for len(days) < n {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days = append(days, day.Format(model.DateLayout))
		}
		day = day.AddDate(0, 0, 1)
	}
	return days
}
