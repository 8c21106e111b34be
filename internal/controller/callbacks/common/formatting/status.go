package formatting

import "github.com/Freeeeeet/gym_booking_bot/internal/model"

// SlotStatusDisplay представляет отображение состояния слота
type SlotStatusDisplay struct {
	Emoji string
	Text  string
}

// GetSlotStatusDisplay возвращает emoji и текст для заполненности слота
func GetSlotStatusDisplay(slot *model.TimeSlot, booked int) SlotStatusDisplay {
	switch {
	case !slot.IsAvailable:
		return SlotStatusDisplay{"🔒", "Закрыт для записи"}
	case booked >= slot.Capacity:
		return SlotStatusDisplay{"🔴", "Мест нет"}
	case booked > 0:
		return SlotStatusDisplay{"🟡", "Есть места"}
	default:
		return SlotStatusDisplay{"🟢", "Свободен"}
	}
}

// BookingStatusDisplay представляет отображение статуса бронирования
type BookingStatusDisplay struct {
	Emoji string
	Text  string
}

// GetBookingStatusDisplay возвращает emoji и текст для статуса бронирования
func GetBookingStatusDisplay(status model.BookingStatus) BookingStatusDisplay {
	displays := map[model.BookingStatus]BookingStatusDisplay{
		model.BookingStatusActive:    {"✅", "Активна"},
		model.BookingStatusCancelled: {"❌", "Отменена"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return BookingStatusDisplay{"❓", "Неизвестно"}
}

// GetRoleDisplay название роли для пользователя
func GetRoleDisplay(role model.UserRole) string {
	switch role {
	case model.RoleAdmin:
		return "👑 Администратор"
	case model.RoleTeacher:
		return "🎓 Тренер"
	case model.RoleStudent:
		return "🏃 Студент"
	default:
		return "❓ " + string(role)
	}
}
