package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/gym_booking_bot/internal/model"
	"github.com/Freeeeeet/gym_booking_bot/internal/schedule"
)

// Форматы даты, которые принимают команды
var dateArgLayouts = []string{model.DateLayout, "02.01.2006"}

// parseCommand разбирает "/cmd@bot arg1 arg2" на имя команды и аргументы
func parseCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil
	}

	name := strings.ToLower(strings.TrimPrefix(fields[0], "/"))
	if idx := strings.Index(name, "@"); idx >= 0 {
		name = name[:idx]
	}
	return name, fields[1:]
}

// parseDateArg принимает ГГГГ-ММ-ДД или ДД.ММ.ГГГГ и возвращает ГГГГ-ММ-ДД
func parseDateArg(arg string) (string, error) {
	for _, layout := range dateArgLayouts {
		if t, err := time.Parse(layout, arg); err == nil {
			return t.Format(model.DateLayout), nil
		}
	}
	return "", common.ErrInvalidFormat
}

// parseWindowArg номер окна расписания 1..8
func parseWindowArg(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, common.ErrInvalidFormat
	}
	if _, ok := schedule.FindByID(id); !ok {
		return 0, common.ErrInvalidFormat
	}
	return id, nil
}

// parseIntArg целое число из текста пользователя, диапазон проверяет сервис
func parseIntArg(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, common.ErrInvalidFormat
	}
	return n, nil
}

// refDate дата из аргумента или сегодняшняя
func refDate(args []string, today time.Time) (time.Time, error) {
	if len(args) == 0 {
		return today, nil
	}
	date, err := parseDateArg(args[0])
	if err != nil {
		return time.Time{}, err
	}
	return time.ParseInLocation(model.DateLayout, date, today.Location())
}
