package common

import (
	"errors"
	"strings"

	"github.com/Freeeeeet/gym_booking_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrWrongRole     = errors.New("command not available for role")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotLoggedIn):
		return "🔑 Сначала войдите: /login <email>"
	case errors.Is(err, ErrWrongRole):
		return "❌ Эта функция недоступна для вашей роли"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, service.ErrCapacity):
		return "❌ Свободных мест нет"
	case errors.Is(err, service.ErrAlreadyBooked):
		return "ℹ️ Вы уже записаны на это занятие"
	case errors.Is(err, service.ErrAlreadyCancelled):
		return "ℹ️ Запись уже отменена"
	case errors.Is(err, service.ErrNotFound):
		return "❌ Не найдено"
	case errors.Is(err, service.ErrForbidden):
		return "❌ Нет доступа"
	case errors.Is(err, service.ErrConflict):
		return "⚠️ Конфликт: " + detail(err)
	case errors.Is(err, service.ErrValidation):
		return "⚠️ Неверные данные: " + detail(err)
	default:
		return "❌ Произошла ошибка. Попробуйте позже."
	}
}

// detail текст после префикса sentinel-ошибки: "conflict: slot ..." -> "slot ..."
func detail(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{service.ErrConflict, service.ErrValidation} {
		prefix := sentinel.Error() + ": "
		if idx := strings.Index(msg, prefix); idx >= 0 {
			return msg[idx+len(prefix):]
		}
	}
	return msg
}

// IsUserError ошибки, вызванные действиями пользователя, а не сбоем
func IsUserError(err error) bool {
	for _, target := range []error{
		ErrNotLoggedIn, ErrWrongRole, ErrInvalidFormat,
		service.ErrValidation, service.ErrConflict, service.ErrCapacity,
		service.ErrAlreadyBooked, service.ErrAlreadyCancelled,
		service.ErrNotFound, service.ErrForbidden,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
