package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/common"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	data := callback.Data

	switch {
	case data == common.Noop:
		hc.Answer("")

	// ===== Студент =====
	case strings.HasPrefix(data, common.StudentDay):
		handleStudentDay(hc)
	case strings.HasPrefix(data, common.StudentWeek):
		handleWeek(hc, common.StudentWeek)
	case strings.HasPrefix(data, common.BookSlot):
		handleBookSlot(hc)
	case strings.HasPrefix(data, common.CancelBooking):
		handleCancelBooking(hc)
	case strings.HasPrefix(data, common.CancelSlot):
		handleCancelSlot(hc)
	case data == common.MyBookings:
		handleMyBookings(hc)

	// ===== Тренер =====
	case strings.HasPrefix(data, common.TeacherWeek):
		handleWeek(hc, common.TeacherWeek)
	case data == common.MySlots:
		handleMySlots(hc)
	case strings.HasPrefix(data, common.ViewSlot):
		handleViewSlot(hc)
	case strings.HasPrefix(data, common.ToggleSlot):
		handleToggleSlot(hc)
	case strings.HasPrefix(data, common.DeleteSlot):
		handleDeleteSlot(hc)
	case strings.HasPrefix(data, common.ConfirmDelete):
		handleConfirmDelete(hc)
	case strings.HasPrefix(data, common.EditCapacity):
		handleEditCapacity(hc)
	case data == common.TeacherOverview:
		handleTeacherOverview(hc)

	// ===== Создание слота =====
	case data == common.AddSlotStart:
		handleAddSlotStart(hc)
	case strings.HasPrefix(data, common.AddSlotDate):
		handleAddSlotDate(hc)
	case strings.HasPrefix(data, common.AddSlotWindow):
		handleAddSlotWindow(hc)
	case data == common.CancelDialog:
		handleCancelDialog(hc)

	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("telegram_id", callback.From.ID))
		hc.Answer("❌ Неизвестная команда")
	}
}
