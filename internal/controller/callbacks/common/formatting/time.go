package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/gym_booking_bot/internal/model"
)

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatSlotDate форматирует дату слота YYYY-MM-DD как "08.01.2024 (Пн)"
func FormatSlotDate(date string) string {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s (%s)", t.Format("02.01.2006"), GetWeekdayShortName(int(t.Weekday())))
}

// FormatDayButton короткая подпись дня для кнопки: "Пн 08.01"
func FormatDayButton(date string) string {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return GetWeekdayShortName(int(t.Weekday())) + " " + t.Format("02.01")
}

// FormatTimeRange форматирует диапазон времени слота
func FormatTimeRange(start, end string) string {
	return fmt.Sprintf("%s - %s", start, end)
}

// FormatSlot дата и время слота одной строкой
func FormatSlot(slot *model.TimeSlot) string {
	return FormatSlotDate(slot.Date) + ", " + FormatTimeRange(slot.StartTime, slot.EndTime)
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

// FormatWeekRange подпись недели по её рабочим дням: "08.01 - 12.01.2024"
func FormatWeekRange(days []string) string {
	if len(days) == 0 {
		return ""
	}
	first, err1 := time.Parse(model.DateLayout, days[0])
	last, err2 := time.Parse(model.DateLayout, days[len(days)-1])
	if err1 != nil || err2 != nil {
		return days[0]
	}
	return first.Format("02.01") + " - " + last.Format("02.01.2006")
}

// GetWeekdayShortName возвращает краткое название дня недели на русском
func GetWeekdayShortName(weekday int) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}

// GetMonthName возвращает название месяца на русском
func GetMonthName(month time.Month) string {
	names := map[time.Month]string{
		time.January:   "Январь",
		time.February:  "Февраль",
		time.March:     "Март",
		time.April:     "Апрель",
		time.May:       "Май",
		time.June:      "Июнь",
		time.July:      "Июль",
		time.August:    "Август",
		time.September: "Сентябрь",
		time.October:   "Октябрь",
		time.November:  "Ноябрь",
		time.December:  "Декабрь",
	}
	return names[month]
}
