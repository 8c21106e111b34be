package callbacks

import (
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/gym_booking_bot/internal/model"
	"github.com/Freeeeeet/gym_booking_bot/internal/schedule"
)

// handleStudentDay показывает занятия выбранного дня
func handleStudentDay(hc *common.HandlerContext) {
	date, err := common.ParseArgFromCallback(hc.Callback.Data, common.StudentDay)
	if err != nil {
		hc.Fail(err)
		return
	}
	if err := hc.LoadUser(model.RoleStudent); err != nil {
		hc.Fail(err)
		return
	}

	if err := showStudentDay(hc, date); err != nil {
		hc.Fail(err)
		return
	}
	hc.Answer("")
}

// handleBookSlot записывает студента и обновляет экран дня
func handleBookSlot(hc *common.HandlerContext) {
	slotID, err := common.ParseArgFromCallback(hc.Callback.Data, common.BookSlot)
	if err != nil {
		hc.Fail(err)
		return
	}
	if err := hc.LoadUser(model.RoleStudent); err != nil {
		hc.Fail(err)
		return
	}

	booking, err := hc.Handler.Services.Bookings.Book(hc.Ctx, hc.User.ID, slotID)
	if err != nil {
		hc.Fail(err)
		return
	}

	hc.Handler.Logger.Info("Slot booked via callback",
		zap.String("booking_id", booking.ID),
		zap.String("slot_id", slotID),
		zap.Int64("telegram_id", hc.TelegramID),
	)

	refreshSlotDay(hc, slotID)
	hc.Answer("✅ Вы записаны")
}

// handleCancelSlot отменяет запись студента на слот из экрана дня
func handleCancelSlot(hc *common.HandlerContext) {
	slotID, err := common.ParseArgFromCallback(hc.Callback.Data, common.CancelSlot)
	if err != nil {
		hc.Fail(err)
		return
	}
	if err := hc.LoadUser(model.RoleStudent); err != nil {
		hc.Fail(err)
		return
	}

	if _, err := hc.Handler.Services.Bookings.CancelForSlot(hc.Ctx, hc.User.ID, slotID); err != nil {
		hc.Fail(err)
		return
	}

	refreshSlotDay(hc, slotID)
	hc.Answer("❌ Запись отменена")
}

// handleCancelBooking отменяет запись из списка "Мои записи"
func handleCancelBooking(hc *common.HandlerContext) {
	bookingID, err := common.ParseArgFromCallback(hc.Callback.Data, common.CancelBooking)
	if err != nil {
		hc.Fail(err)
		return
	}
	if err := hc.LoadUser(model.RoleStudent); err != nil {
		hc.Fail(err)
		return
	}

	if _, err := hc.Handler.Services.Bookings.Cancel(hc.Ctx, hc.User.ID, bookingID); err != nil {
		hc.Fail(err)
		return
	}

	text, kb, err := common.StudentBookingsScreen(hc.Ctx, hc.Handler.Services, hc.User)
	if err != nil {
		hc.Fail(err)
		return
	}
	hc.Show(text, kb)
	hc.Answer("❌ Запись отменена")
}

// handleMyBookings показывает записи студента
func handleMyBookings(hc *common.HandlerContext) {
	if err := hc.LoadUser(model.RoleStudent); err != nil {
		hc.Fail(err)
		return
	}

	text, kb, err := common.StudentBookingsScreen(hc.Ctx, hc.Handler.Services, hc.User)
	if err != nil {
		hc.Fail(err)
		return
	}
	hc.Show(text, kb)
	hc.Answer("")
}

// handleWeek листает недельную сетку: новое фото, старое удаляется
func handleWeek(hc *common.HandlerContext, prefix string) {
	date, err := common.ParseArgFromCallback(hc.Callback.Data, prefix)
	if err != nil {
		hc.Fail(err)
		return
	}
	ref, err := schedule.ParseDate(date)
	if err != nil {
		hc.Fail(common.ErrInvalidFormat)
		return
	}

	role := model.RoleStudent
	if prefix == common.TeacherWeek {
		role = model.RoleTeacher
	}
	if err := hc.LoadUser(role); err != nil {
		hc.Fail(err)
		return
	}

	image, caption, kb, err := common.WeekScreen(hc.Ctx, hc.Handler.Services, hc.User, ref)
	if err != nil {
		hc.Fail(err)
		return
	}

	common.SendPhoto(hc.Ctx, hc.Bot, hc.Handler.Logger, hc.ChatID, image, caption, kb)
	common.DeleteMessage(hc.Ctx, hc.Bot, hc.Handler.Logger, hc.Message)
	hc.Answer("")
}

func refreshSlotDay(hc *common.HandlerContext, slotID string) {
	slot, err := hc.Handler.Services.Slots.GetSlot(hc.Ctx, slotID)
	if err != nil {
		hc.Handler.Logger.Warn("Failed to reload slot", zap.String("slot_id", slotID), zap.Error(err))
		return
	}
	if err := showStudentDay(hc, slot.Date); err != nil {
		hc.Handler.Logger.Error("Failed to build day screen", zap.String("date", slot.Date), zap.Error(err))
	}
}

func showStudentDay(hc *common.HandlerContext, date string) error {
	text, kb, err := common.StudentDayScreen(hc.Ctx, hc.Handler.Services, hc.User, date)
	if err != nil {
		return err
	}
	hc.Show(text, kb)
	return nil
}
