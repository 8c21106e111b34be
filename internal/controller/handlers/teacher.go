package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/gym_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/gym_booking_bot/internal/model"
	"github.com/Freeeeeet/gym_booking_bot/internal/schedule"
	"github.com/Freeeeeet/gym_booking_bot/internal/service"
)

// handleMySlots список занятий тренера
func (h *Handlers) handleMySlots(ctx context.Context, b *bot.Bot, msg *models.Message, _ []string) {
	teacher, ok := h.requireRole(ctx, b, msg, model.RoleTeacher)
	if !ok {
		return
	}

	text, kb, err := common.TeacherSlotsScreen(ctx, h.services, teacher)
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}
	h.sendHTML(ctx, b, msg.Chat.ID, text, kb)
}

// handleAddSlot /addslot <дата> <окно> [мест]; без аргументов - выбор кнопками
func (h *Handlers) handleAddSlot(ctx context.Context, b *bot.Bot, msg *models.Message, args []string) {
	teacher, ok := h.requireRole(ctx, b, msg, model.RoleTeacher)
	if !ok {
		return
	}

	if len(args) == 0 {
		h.stateManager.ClearState(msg.From.ID)
		text, kb := common.AddSlotDateScreen(h.services)
		h.sendHTML(ctx, b, msg.Chat.ID, text, kb)
		return
	}
	if len(args) < 2 {
		h.sendMessage(ctx, b, msg.Chat.ID, "Использование: /addslot <ГГГГ-ММ-ДД> <окно 1-8> [мест]\n\n"+windowsHelp())
		return
	}

	date, err := parseDateArg(args[0])
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}
	windowID, err := parseWindowArg(args[1])
	if err != nil {
		h.sendMessage(ctx, b, msg.Chat.ID, "❌ Неизвестное окно\n\n"+windowsHelp())
		return
	}
	capacity := service.DefaultCapacity
	if len(args) > 2 {
		if capacity, err = parseIntArg(args[2]); err != nil {
			h.sendError(ctx, b, msg.Chat.ID, err)
			return
		}
	}

	if err := h.createSlot(ctx, b, msg, service.SlotRequest{
		TeacherID:      teacher.ID,
		Date:           date,
		ScheduleSlotID: windowID,
		Capacity:       capacity,
	}); err != nil {
		h.logger.Debug("Slot not created",
			zap.Int64("teacher_tg_id", msg.From.ID),
			zap.Error(err),
		)
	}
}

// handleAddSlotCapacityStep последний шаг диалога создания слота
func (h *Handlers) handleAddSlotCapacityStep(ctx context.Context, b *bot.Bot, msg *models.Message, text string) {
	telegramID := msg.From.ID
	teacher, ok := h.requireRole(ctx, b, msg, model.RoleTeacher)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return
	}

	capacity, err := parseIntArg(text)
	if err != nil {
		h.sendMessage(ctx, b, msg.Chat.ID, "❌ Введите число мест или /cancel")
		return
	}

	date := h.stateManager.GetString(telegramID, state.KeySlotDate)
	windowID := h.stateManager.GetInt(telegramID, state.KeySlotWindow)
	if date == "" || windowID == 0 {
		h.logger.Error("Missing data for add slot dialog", zap.Int64("telegram_id", telegramID))
		h.stateManager.ClearState(telegramID)
		h.sendMessage(ctx, b, msg.Chat.ID, "❌ Данные диалога потеряны. Начните заново: /addslot")
		return
	}

	err = h.createSlot(ctx, b, msg, service.SlotRequest{
		TeacherID:      teacher.ID,
		Date:           date,
		ScheduleSlotID: windowID,
		Capacity:       capacity,
	})
	// при неверной вместимости даём ввести число ещё раз
	if err == nil || !errors.Is(err, service.ErrValidation) {
		h.stateManager.ClearState(telegramID)
	}
}

func (h *Handlers) createSlot(ctx context.Context, b *bot.Bot, msg *models.Message, req service.SlotRequest) error {
	slot, err := h.services.Slots.CreateOrUpdateSlot(ctx, req)
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return err
	}

	h.sendHTML(ctx, b, msg.Chat.ID, fmt.Sprintf(
		"✅ Занятие создано\n📅 %s\n👥 Мест: %d\n🆔 <code>%s</code>\n\nВсе занятия: /myslots",
		formatting.FormatSlot(slot), slot.Capacity, slot.ID,
	), nil)
	return nil
}

// handleEditSlot /editslot <id> <дата> <окно> <мест>
func (h *Handlers) handleEditSlot(ctx context.Context, b *bot.Bot, msg *models.Message, args []string) {
	teacher, ok := h.requireRole(ctx, b, msg, model.RoleTeacher)
	if !ok {
		return
	}
	if len(args) < 4 {
		h.sendMessage(ctx, b, msg.Chat.ID, "Использование: /editslot <id> <ГГГГ-ММ-ДД> <окно 1-8> <мест>")
		return
	}

	date, err := parseDateArg(args[1])
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}
	windowID, err := parseWindowArg(args[2])
	if err != nil {
		h.sendMessage(ctx, b, msg.Chat.ID, "❌ Неизвестное окно\n\n"+windowsHelp())
		return
	}
	capacity, err := parseIntArg(args[3])
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}

	slot, err := h.services.Slots.CreateOrUpdateSlot(ctx, service.SlotRequest{
		ID:             args[0],
		TeacherID:      teacher.ID,
		Date:           date,
		ScheduleSlotID: windowID,
		Capacity:       capacity,
	})
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}
	h.sendMessage(ctx, b, msg.Chat.ID, fmt.Sprintf("✅ Занятие обновлено: %s, мест: %d", formatting.FormatSlot(slot), slot.Capacity))
}

// handleCapacity /capacity <id> <мест>
func (h *Handlers) handleCapacity(ctx context.Context, b *bot.Bot, msg *models.Message, args []string) {
	teacher, ok := h.requireRole(ctx, b, msg, model.RoleTeacher)
	if !ok {
		return
	}
	if len(args) < 2 {
		h.sendMessage(ctx, b, msg.Chat.ID, "Использование: /capacity <id> <мест>")
		return
	}

	capacity, err := parseIntArg(args[1])
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}
	h.updateCapacity(ctx, b, msg, teacher, args[0], capacity)
}

// handleEditCapacityStep ввод вместимости после кнопки в карточке занятия
func (h *Handlers) handleEditCapacityStep(ctx context.Context, b *bot.Bot, msg *models.Message, text string) {
	telegramID := msg.From.ID
	teacher, ok := h.requireRole(ctx, b, msg, model.RoleTeacher)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return
	}

	capacity, err := parseIntArg(text)
	if err != nil {
		h.sendMessage(ctx, b, msg.Chat.ID, "❌ Введите число мест или /cancel")
		return
	}

	slotID := h.stateManager.GetString(telegramID, state.KeySlotID)
	if h.updateCapacity(ctx, b, msg, teacher, slotID, capacity) {
		h.stateManager.ClearState(telegramID)
	}
}

func (h *Handlers) updateCapacity(ctx context.Context, b *bot.Bot, msg *models.Message, teacher *model.User, slotID string, capacity int) bool {
	slot, err := h.services.Slots.UpdateCapacity(ctx, teacher.ID, slotID, capacity)
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return false
	}
	h.sendMessage(ctx, b, msg.Chat.ID, fmt.Sprintf("✅ Вместимость %s: %d", formatting.FormatSlot(slot), slot.Capacity))
	return true
}

// handleToggle /toggle <id> открывает или закрывает запись
func (h *Handlers) handleToggle(ctx context.Context, b *bot.Bot, msg *models.Message, args []string) {
	teacher, ok := h.requireRole(ctx, b, msg, model.RoleTeacher)
	if !ok {
		return
	}
	if len(args) < 1 {
		h.sendMessage(ctx, b, msg.Chat.ID, "Использование: /toggle <id>")
		return
	}

	slot, err := h.services.Slots.GetSlot(ctx, args[0])
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}
	slot, err = h.services.Slots.SetAvailability(ctx, teacher.ID, slot.ID, !slot.IsAvailable)
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}

	status := "🔒 Запись закрыта"
	if slot.IsAvailable {
		status = "🔓 Запись открыта"
	}
	h.sendMessage(ctx, b, msg.Chat.ID, fmt.Sprintf("%s: %s", status, formatting.FormatSlot(slot)))
}

// handleDeleteSlot /deleteslot <id>
func (h *Handlers) handleDeleteSlot(ctx context.Context, b *bot.Bot, msg *models.Message, args []string) {
	teacher, ok := h.requireRole(ctx, b, msg, model.RoleTeacher)
	if !ok {
		return
	}
	if len(args) < 1 {
		h.sendMessage(ctx, b, msg.Chat.ID, "Использование: /deleteslot <id>")
		return
	}

	if err := h.services.Slots.DeleteSlot(ctx, teacher.ID, args[0]); err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}
	h.sendMessage(ctx, b, msg.Chat.ID, "🗑 Занятие удалено")
}

// handleSchedule картинка недели с занятиями тренера
func (h *Handlers) handleSchedule(ctx context.Context, b *bot.Bot, msg *models.Message, args []string) {
	teacher, ok := h.requireRole(ctx, b, msg, model.RoleTeacher)
	if !ok {
		return
	}
	h.sendWeek(ctx, b, msg, teacher, args)
}

// handleRoster кто записан на ближайшие занятия
func (h *Handlers) handleRoster(ctx context.Context, b *bot.Bot, msg *models.Message, _ []string) {
	teacher, ok := h.requireRole(ctx, b, msg, model.RoleTeacher)
	if !ok {
		return
	}

	text, err := common.TeacherOverviewScreen(ctx, h.services, teacher)
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}
	h.sendHTML(ctx, b, msg.Chat.ID, text, nil)
}

// windowsHelp список окон дневной сетки
func windowsHelp() string {
	text := "Окна:\n"
	for _, window := range schedule.Daily() {
		text += fmt.Sprintf("%d. %s\n", window.ID, schedule.FormatSlotTime(window))
	}
	return text
}
