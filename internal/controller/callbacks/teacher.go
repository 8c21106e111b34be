package callbacks

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/gym_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/gym_booking_bot/internal/model"
	"github.com/Freeeeeet/gym_booking_bot/internal/schedule"
	"github.com/Freeeeeet/gym_booking_bot/internal/service"
)

// ========================
// Просмотр и управление слотами
// ========================

// handleMySlots показывает список занятий тренера
func handleMySlots(hc *common.HandlerContext) {
	if err := hc.LoadUser(model.RoleTeacher); err != nil {
		hc.Fail(err)
		return
	}
	if err := showTeacherSlots(hc); err != nil {
		hc.Fail(err)
		return
	}
	hc.Answer("")
}

// handleViewSlot открывает карточку занятия
func handleViewSlot(hc *common.HandlerContext) {
	slotID, err := common.ParseArgFromCallback(hc.Callback.Data, common.ViewSlot)
	if err != nil {
		hc.Fail(err)
		return
	}
	if err := hc.LoadUser(model.RoleTeacher); err != nil {
		hc.Fail(err)
		return
	}
	if err := showSlotCard(hc, slotID); err != nil {
		hc.Fail(err)
		return
	}
	hc.Answer("")
}

// handleToggleSlot открывает или закрывает запись на занятие
func handleToggleSlot(hc *common.HandlerContext) {
	slotID, err := common.ParseArgFromCallback(hc.Callback.Data, common.ToggleSlot)
	if err != nil {
		hc.Fail(err)
		return
	}
	if err := hc.LoadUser(model.RoleTeacher); err != nil {
		hc.Fail(err)
		return
	}

	svc := hc.Handler.Services
	slot, err := svc.Slots.GetSlot(hc.Ctx, slotID)
	if err != nil {
		hc.Fail(err)
		return
	}
	slot, err = svc.Slots.SetAvailability(hc.Ctx, hc.User.ID, slotID, !slot.IsAvailable)
	if err != nil {
		hc.Fail(err)
		return
	}

	if err := showSlotCard(hc, slotID); err != nil {
		hc.Fail(err)
		return
	}
	if slot.IsAvailable {
		hc.Answer("🔓 Запись открыта")
	} else {
		hc.Answer("🔒 Запись закрыта")
	}
}

// handleDeleteSlot спрашивает подтверждение удаления
func handleDeleteSlot(hc *common.HandlerContext) {
	slotID, err := common.ParseArgFromCallback(hc.Callback.Data, common.DeleteSlot)
	if err != nil {
		hc.Fail(err)
		return
	}
	if err := hc.LoadUser(model.RoleTeacher); err != nil {
		hc.Fail(err)
		return
	}

	slot, err := hc.Handler.Services.Slots.GetSlot(hc.Ctx, slotID)
	if err != nil {
		hc.Fail(err)
		return
	}
	if slot.TeacherID != hc.User.ID {
		hc.Fail(service.ErrForbidden)
		return
	}

	text, kb := common.DeleteConfirmScreen(slot)
	hc.Show(text, kb)
	hc.Answer("")
}

// handleConfirmDelete удаляет занятие без активных записей
func handleConfirmDelete(hc *common.HandlerContext) {
	slotID, err := common.ParseArgFromCallback(hc.Callback.Data, common.ConfirmDelete)
	if err != nil {
		hc.Fail(err)
		return
	}
	if err := hc.LoadUser(model.RoleTeacher); err != nil {
		hc.Fail(err)
		return
	}

	if err := hc.Handler.Services.Slots.DeleteSlot(hc.Ctx, hc.User.ID, slotID); err != nil {
		hc.Fail(err)
		return
	}

	if err := showTeacherSlots(hc); err != nil {
		hc.Fail(err)
		return
	}
	hc.Answer("🗑 Занятие удалено")
}

// handleEditCapacity переводит тренера в ввод новой вместимости
func handleEditCapacity(hc *common.HandlerContext) {
	slotID, err := common.ParseArgFromCallback(hc.Callback.Data, common.EditCapacity)
	if err != nil {
		hc.Fail(err)
		return
	}
	if err := hc.LoadUser(model.RoleTeacher); err != nil {
		hc.Fail(err)
		return
	}

	slot, err := hc.Handler.Services.Slots.GetSlot(hc.Ctx, slotID)
	if err != nil {
		hc.Fail(err)
		return
	}
	if slot.TeacherID != hc.User.ID {
		hc.Fail(service.ErrForbidden)
		return
	}

	sm := hc.Handler.StateManager
	sm.ClearState(hc.TelegramID)
	sm.SetState(hc.TelegramID, state.StateEditSlotCapacity)
	sm.SetData(hc.TelegramID, state.KeySlotID, slotID)

	text := fmt.Sprintf("✏️ Занятие %s, сейчас мест: %d.\n\nВведите новую вместимость (%d-%d):",
		formatting.FormatSlot(slot), slot.Capacity, service.MinCapacity, service.MaxCapacity)
	hc.Send(text, keyboard.NewBuilder().Row(keyboard.Button("✖️ Отмена", common.CancelDialog)).Build())
	hc.Answer("")
}

// handleTeacherOverview показывает списки записавшихся на ближайшие занятия
func handleTeacherOverview(hc *common.HandlerContext) {
	if err := hc.LoadUser(model.RoleTeacher); err != nil {
		hc.Fail(err)
		return
	}

	text, err := common.TeacherOverviewScreen(hc.Ctx, hc.Handler.Services, hc.User)
	if err != nil {
		hc.Fail(err)
		return
	}
	hc.Show(text, keyboard.NewBuilder().Row(keyboard.Button("⬅️ Мои занятия", common.MySlots)).Build())
	hc.Answer("")
}

// ========================
// Пошаговое создание слота
// ========================

// handleAddSlotStart первый шаг: выбор даты
func handleAddSlotStart(hc *common.HandlerContext) {
	if err := hc.LoadUser(model.RoleTeacher); err != nil {
		hc.Fail(err)
		return
	}
	hc.Handler.StateManager.ClearState(hc.TelegramID)

	text, kb := common.AddSlotDateScreen(hc.Handler.Services)
	hc.Show(text, kb)
	hc.Answer("")
}

// handleAddSlotDate второй шаг: выбор окна расписания
func handleAddSlotDate(hc *common.HandlerContext) {
	date, err := common.ParseArgFromCallback(hc.Callback.Data, common.AddSlotDate)
	if err != nil {
		hc.Fail(err)
		return
	}
	if err := hc.LoadUser(model.RoleTeacher); err != nil {
		hc.Fail(err)
		return
	}

	text, kb, err := common.AddSlotWindowScreen(hc.Ctx, hc.Handler.Services, hc.User, date)
	if err != nil {
		hc.Fail(err)
		return
	}
	hc.Show(text, kb)
	hc.Answer("")
}

// handleAddSlotWindow третий шаг: ждём вместимость текстом
func handleAddSlotWindow(hc *common.HandlerContext) {
	arg, err := common.ParseArgFromCallback(hc.Callback.Data, common.AddSlotWindow)
	if err != nil {
		hc.Fail(err)
		return
	}
	date, windowID, err := parseDateWindow(arg)
	if err != nil {
		hc.Fail(err)
		return
	}
	if err := hc.LoadUser(model.RoleTeacher); err != nil {
		hc.Fail(err)
		return
	}

	window, _ := schedule.FindByID(windowID)

	sm := hc.Handler.StateManager
	sm.ClearState(hc.TelegramID)
	sm.SetState(hc.TelegramID, state.StateAddSlotCapacity)
	sm.SetData(hc.TelegramID, state.KeySlotDate, date)
	sm.SetData(hc.TelegramID, state.KeySlotWindow, windowID)

	hc.Handler.Logger.Debug("Add slot dialog waits for capacity",
		zap.Int64("telegram_id", hc.TelegramID),
		zap.String("date", date),
		zap.Int("window", windowID),
	)

	text := fmt.Sprintf("➕ <b>Новое занятие</b>\n📅 %s, %s\n\nШаг 3 из 3: введите количество мест (%d-%d).",
		formatting.FormatSlotDate(date), schedule.FormatSlotTime(window), service.MinCapacity, service.MaxCapacity)
	hc.Show(text, keyboard.NewBuilder().Row(keyboard.Button("✖️ Отмена", common.CancelDialog)).Build())
	hc.Answer("")
}

// handleCancelDialog сбрасывает текущий диалог
func handleCancelDialog(hc *common.HandlerContext) {
	hc.Handler.StateManager.ClearState(hc.TelegramID)
	if hc.Message != nil {
		hc.Show("✖️ Действие отменено", nil)
	}
	hc.Answer("")
}

// parseDateWindow разбирает "2024-01-08:3"
func parseDateWindow(arg string) (string, int, error) {
	date, rawWindow, ok := strings.Cut(arg, ":")
	if !ok || !schedule.IsWeekday(date) {
		return "", 0, common.ErrInvalidFormat
	}
	windowID, err := strconv.Atoi(rawWindow)
	if err != nil {
		return "", 0, common.ErrInvalidFormat
	}
	if _, ok := schedule.FindByID(windowID); !ok {
		return "", 0, common.ErrInvalidFormat
	}
	return date, windowID, nil
}

func showTeacherSlots(hc *common.HandlerContext) error {
	text, kb, err := common.TeacherSlotsScreen(hc.Ctx, hc.Handler.Services, hc.User)
	if err != nil {
		return err
	}
	hc.Show(text, kb)
	return nil
}

func showSlotCard(hc *common.HandlerContext, slotID string) error {
	text, kb, err := common.SlotCardScreen(hc.Ctx, hc.Handler.Services, hc.User, slotID)
	if err != nil {
		return err
	}
	hc.Show(text, kb)
	return nil
}
