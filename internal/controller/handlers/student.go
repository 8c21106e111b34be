package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/gym_booking_bot/internal/model"
)

// handleSlots занятия на день: /slots [дата], по умолчанию ближайший день записи
func (h *Handlers) handleSlots(ctx context.Context, b *bot.Bot, msg *models.Message, args []string) {
	student, ok := h.requireRole(ctx, b, msg, model.RoleStudent)
	if !ok {
		return
	}

	var date string
	if len(args) > 0 {
		parsed, err := parseDateArg(args[0])
		if err != nil {
			h.sendMessage(ctx, b, msg.Chat.ID, "❌ Дата в формате ГГГГ-ММ-ДД или ДД.ММ.ГГГГ")
			return
		}
		date = parsed
	} else {
		dates, err := h.services.Slots.BookableDates(ctx)
		if err != nil {
			h.sendError(ctx, b, msg.Chat.ID, err)
			return
		}
		if len(dates) == 0 {
			h.sendMessage(ctx, b, msg.Chat.ID, "📅 Сейчас нет дней, открытых для записи.")
			return
		}
		date = dates[0]
	}

	text, kb, err := common.StudentDayScreen(ctx, h.services, student, date)
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}
	h.sendHTML(ctx, b, msg.Chat.ID, text, kb)
}

// handleWeek картинка недели с открытыми занятиями
func (h *Handlers) handleWeek(ctx context.Context, b *bot.Bot, msg *models.Message, args []string) {
	student, ok := h.requireRole(ctx, b, msg, model.RoleStudent)
	if !ok {
		return
	}
	h.sendWeek(ctx, b, msg, student, args)
}

// handleMyBookings активные и отменённые записи
func (h *Handlers) handleMyBookings(ctx context.Context, b *bot.Bot, msg *models.Message, _ []string) {
	student, ok := h.requireRole(ctx, b, msg, model.RoleStudent)
	if !ok {
		return
	}

	text, kb, err := common.StudentBookingsScreen(ctx, h.services, student)
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}
	h.sendHTML(ctx, b, msg.Chat.ID, text, kb)
}

// sendWeek общая отправка недельной сетки для студента и тренера
func (h *Handlers) sendWeek(ctx context.Context, b *bot.Bot, msg *models.Message, user *model.User, args []string) {
	ref, err := refDate(args, h.services.Slots.Today())
	if err != nil {
		h.sendMessage(ctx, b, msg.Chat.ID, "❌ Дата в формате ГГГГ-ММ-ДД или ДД.ММ.ГГГГ")
		return
	}

	image, caption, kb, err := common.WeekScreen(ctx, h.services, user, ref)
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}
	common.SendPhoto(ctx, b, h.logger, msg.Chat.ID, image, caption, kb)
}
