package common

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/gym_booking_bot/internal/model"
	"github.com/Freeeeeet/gym_booking_bot/internal/schedule"
	"github.com/Freeeeeet/gym_booking_bot/internal/service"
)

const (
	teacherSlotButtons = 10
	pastSlotsShown     = 5
	cancelledShown     = 5
	addSlotDaysShown   = 10
)

// StudentDayScreen занятия на дату с кнопками записи и отмены
func StudentDayScreen(ctx context.Context, svc *service.Services, student *model.User, date string) (string, *models.InlineKeyboardMarkup, error) {
	dates, err := svc.Slots.BookableDates(ctx)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	kb := keyboard.NewBuilder()
	fmt.Fprintf(&sb, "📅 <b>Занятия на %s</b>\n\n", formatting.FormatSlotDate(date))

	switch {
	case !schedule.IsWeekday(date):
		sb.WriteString("В выходные занятий нет.\n")
	case !contains(dates, date):
		fmt.Fprintf(&sb, "Запись открыта только на ближайшие %d рабочих дней.\n", len(dates))
	default:
		slots, err := svc.Slots.SlotsForDate(ctx, date)
		if err != nil {
			return "", nil, err
		}
		if len(slots) == 0 {
			sb.WriteString("На этот день занятий пока нет.\n")
		}

		for _, slot := range slots {
			booked, err := svc.Bookings.BookedCount(ctx, slot.ID)
			if err != nil {
				return "", nil, err
			}
			mine, err := svc.Bookings.IsBookedBy(ctx, slot.ID, student.ID)
			if err != nil {
				return "", nil, err
			}
			status := formatting.GetSlotStatusDisplay(slot, booked)
			teacher := svc.Overview.TeacherName(ctx, slot.TeacherID)
			ended := svc.Slots.HasEnded(slot)

			mark := status.Emoji
			switch {
			case ended:
				mark = "⌛"
			case mine:
				mark = "✅"
			}
			fmt.Fprintf(&sb, "%s <b>%s</b> · %s\n    👥 %d/%d",
				mark,
				formatting.FormatTimeRange(slot.StartTime, slot.EndTime),
				html.EscapeString(teacher),
				booked, slot.Capacity,
			)
			if ended {
				sb.WriteString(" · завершено")
			}
			sb.WriteString("\n")

			switch {
			case ended:
				// прошедшее занятие без кнопок
			case mine:
				kb.Row(keyboard.Button("❌ Отменить "+slot.StartTime, CancelSlot+slot.ID))
			case booked < slot.Capacity:
				kb.Row(keyboard.Button("✍️ Записаться "+slot.StartTime, BookSlot+slot.ID))
			}
		}
	}

	dayButtons := make([]models.InlineKeyboardButton, 0, len(dates))
	for _, d := range dates {
		label := formatting.FormatDayButton(d)
		if d == date {
			label = "• " + label
		}
		dayButtons = append(dayButtons, keyboard.Button(label, StudentDay+d))
	}
	kb.Grid(dayButtons, 4)
	kb.Row(
		keyboard.Button("🗓 Неделя", StudentWeek+date),
		keyboard.Button("📋 Мои записи", MyBookings),
	)

	return sb.String(), kb.Build(), nil
}

// StudentBookingsScreen активные и отменённые записи студента
func StudentBookingsScreen(ctx context.Context, svc *service.Services, student *model.User) (string, *models.InlineKeyboardMarkup, error) {
	result, err := svc.Bookings.StudentBookings(ctx, student.ID)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	kb := keyboard.NewBuilder()
	sb.WriteString("📋 <b>Мои записи</b>\n\n")

	if len(result.Active) == 0 {
		sb.WriteString("Активных записей нет. Посмотреть занятия: /slots\n")
	} else {
		fmt.Fprintf(&sb, "<b>Активные (%d):</b>\n", len(result.Active))
		for _, b := range result.Active {
			teacher := svc.Overview.TeacherName(ctx, b.Slot.TeacherID)
			fmt.Fprintf(&sb, "✅ %s · %s\n", formatting.FormatSlot(b.Slot), html.EscapeString(teacher))
			kb.Row(keyboard.Button(
				fmt.Sprintf("❌ Отменить %s %s", formatting.FormatDayButton(b.Slot.Date), b.Slot.StartTime),
				CancelBooking+b.ID,
			))
		}
	}

	if len(result.Cancelled) > 0 {
		fmt.Fprintf(&sb, "\n<b>Отменённые (%d):</b>\n", len(result.Cancelled))
		for i, b := range result.Cancelled {
			if i >= cancelledShown {
				fmt.Fprintf(&sb, "… и ещё %d\n", len(result.Cancelled)-cancelledShown)
				break
			}
			line := "❌ " + formatting.FormatSlot(b.Slot)
			if b.CancelledAt != nil {
				line += ", отменена " + formatting.FormatDateTime(b.CancelledAt.In(svc.Slots.Today().Location()))
			}
			sb.WriteString(line + "\n")
		}
	}

	if n := len(result.MissingSlotIDs); n > 0 {
		fmt.Fprintf(&sb, "\n⚠️ Записей на удалённые занятия: %d\n", n)
	}

	return sb.String(), kb.Build(), nil
}

// TeacherSlotsScreen предстоящие и прошедшие занятия тренера
func TeacherSlotsScreen(ctx context.Context, svc *service.Services, teacher *model.User) (string, *models.InlineKeyboardMarkup, error) {
	slots, err := svc.Slots.TeacherSlots(ctx, teacher.ID)
	if err != nil {
		return "", nil, err
	}
	upcoming, past := svc.Slots.PartitionSlots(slots, svc.Slots.Today())

	var sb strings.Builder
	kb := keyboard.NewBuilder()
	sb.WriteString("🗓 <b>Мои занятия</b>\n\n")

	if len(upcoming) == 0 {
		sb.WriteString("Предстоящих занятий нет.\n")
	} else {
		fmt.Fprintf(&sb, "<b>Предстоящие (%d):</b>\n", len(upcoming))
	}

	buttons := make([]models.InlineKeyboardButton, 0, teacherSlotButtons)
	for i, slot := range upcoming {
		booked, err := svc.Bookings.BookedCount(ctx, slot.ID)
		if err != nil {
			return "", nil, err
		}
		status := formatting.GetSlotStatusDisplay(slot, booked)
		fmt.Fprintf(&sb, "%s %s · %d/%d\n    <code>%s</code>\n",
			status.Emoji, formatting.FormatSlot(slot), booked, slot.Capacity, slot.ID)

		if i < teacherSlotButtons {
			buttons = append(buttons, keyboard.Button(
				formatting.FormatDayButton(slot.Date)+" "+slot.StartTime,
				ViewSlot+slot.ID,
			))
		}
	}
	kb.Grid(buttons, 2)

	if len(past) > 0 {
		fmt.Fprintf(&sb, "\n<b>Прошедшие (%d):</b>\n", len(past))
		for i, slot := range past {
			if i >= pastSlotsShown {
				fmt.Fprintf(&sb, "… и ещё %d\n", len(past)-pastSlotsShown)
				break
			}
			fmt.Fprintf(&sb, "▫️ %s\n", formatting.FormatSlot(slot))
		}
	}

	kb.Row(
		keyboard.Button("➕ Добавить", AddSlotStart),
		keyboard.Button("👥 Записи", TeacherOverview),
	)
	kb.Row(keyboard.Button("🗓 Неделя", TeacherWeek+svc.Slots.Today().Format(model.DateLayout)))

	return sb.String(), kb.Build(), nil
}

// SlotCardScreen карточка занятия для тренера
func SlotCardScreen(ctx context.Context, svc *service.Services, teacher *model.User, slotID string) (string, *models.InlineKeyboardMarkup, error) {
	slot, err := svc.Slots.GetSlot(ctx, slotID)
	if err != nil {
		return "", nil, err
	}
	if slot.TeacherID != teacher.ID {
		return "", nil, service.ErrForbidden
	}

	active, err := svc.Bookings.ActiveForSlot(ctx, slot.ID)
	if err != nil {
		return "", nil, err
	}
	status := formatting.GetSlotStatusDisplay(slot, len(active))

	var sb strings.Builder
	sb.WriteString("🏋️ <b>Занятие</b>\n\n")
	fmt.Fprintf(&sb, "📅 %s\n", formatting.FormatSlot(slot))
	fmt.Fprintf(&sb, "👥 %d/%d · %s %s\n", len(active), slot.Capacity, status.Emoji, status.Text)
	fmt.Fprintf(&sb, "🆔 <code>%s</code>\n", slot.ID)

	if len(active) > 0 {
		sb.WriteString("\n<b>Записаны:</b>\n")
		for i, b := range active {
			name := service.UnknownStudent
			if b.Student != nil {
				name = b.Student.Name
			}
			fmt.Fprintf(&sb, "%d. %s\n", i+1, html.EscapeString(name))
		}
	}

	toggle := keyboard.Button("🔒 Закрыть запись", ToggleSlot+slot.ID)
	if !slot.IsAvailable {
		toggle = keyboard.Button("🔓 Открыть запись", ToggleSlot+slot.ID)
	}

	kb := keyboard.NewBuilder().
		Row(toggle, keyboard.Button("✏️ Вместимость", EditCapacity+slot.ID)).
		Row(keyboard.Button("🗑 Удалить", DeleteSlot+slot.ID)).
		Row(keyboard.Button("⬅️ Назад", MySlots))

	return sb.String(), kb.Build(), nil
}

// DeleteConfirmScreen подтверждение удаления занятия
func DeleteConfirmScreen(slot *model.TimeSlot) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("🗑 Удалить занятие %s?", formatting.FormatSlot(slot))
	kb := keyboard.NewBuilder().Row(
		keyboard.Button("✅ Да, удалить", ConfirmDelete+slot.ID),
		keyboard.Button("⬅️ Нет", ViewSlot+slot.ID),
	)
	return text, kb.Build()
}

// TeacherOverviewScreen ближайшие занятия тренера со списками записавшихся
func TeacherOverviewScreen(ctx context.Context, svc *service.Services, teacher *model.User) (string, error) {
	overview, err := svc.Overview.Teacher(ctx, teacher.ID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("👥 <b>Записи на мои занятия</b>\n\n")
	fmt.Fprintf(&sb, "📚 Всего занятий: %d\n", overview.TotalSlots)
	fmt.Fprintf(&sb, "📅 Предстоящих: %d\n", overview.UpcomingCount)
	fmt.Fprintf(&sb, "✅ Активных записей: %d\n", overview.ActiveBookings)

	if len(overview.Upcoming) == 0 {
		sb.WriteString("\nПредстоящих занятий нет.")
		return sb.String(), nil
	}

	sb.WriteString("\n<b>Ближайшие занятия:</b>\n")
	for _, roster := range overview.Upcoming {
		fmt.Fprintf(&sb, "\n📅 %s · %d/%d\n", formatting.FormatSlot(roster.Slot), len(roster.Bookings), roster.Slot.Capacity)
		if len(roster.Students) == 0 {
			sb.WriteString("    пока никто не записан\n")
			continue
		}
		for _, name := range roster.Students {
			fmt.Fprintf(&sb, "    • %s\n", html.EscapeString(name))
		}
	}

	return sb.String(), nil
}

// AdminOverviewScreen сводка по залу для администратора
func AdminOverviewScreen(ctx context.Context, svc *service.Services) (string, error) {
	overview, err := svc.Overview.System(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("📊 <b>Обзор системы</b>\n\n")
	fmt.Fprintf(&sb, "📅 Предстоящих занятий: %d\n", overview.UpcomingSlots)
	fmt.Fprintf(&sb, "✅ Активных записей: %d\n", overview.ActiveBookings)
	fmt.Fprintf(&sb, "📈 Загрузка: %d%% (%d из %d мест)\n", overview.Utilization, overview.BookedSpots, overview.TotalCapacity)
	fmt.Fprintf(&sb, "📚 Всего занятий: %d\n", overview.TotalSlots)
	fmt.Fprintf(&sb, "👤 Пользователи: %d студентов, %d тренеров, %d администраторов\n",
		overview.UsersByRole[model.RoleStudent],
		overview.UsersByRole[model.RoleTeacher],
		overview.UsersByRole[model.RoleAdmin],
	)

	sb.WriteString("\n<b>Последние записи:</b>\n")
	if len(overview.RecentBookings) == 0 {
		sb.WriteString("Записей пока нет.\n")
	}
	loc := svc.Slots.Today().Location()
	for _, entry := range overview.RecentBookings {
		b := entry.Booking
		status := formatting.GetBookingStatusDisplay(b.Status)
		slotText := "занятие удалено"
		if b.Slot != nil {
			slotText = formatting.FormatSlot(b.Slot)
		}
		fmt.Fprintf(&sb, "%s %s → %s (%s)\n    %s\n",
			status.Emoji,
			html.EscapeString(entry.StudentName),
			html.EscapeString(entry.TeacherName),
			slotText,
			formatting.FormatDateTime(b.CreatedAt.In(loc)),
		)
	}

	return sb.String(), nil
}

// SettingsScreen текущие настройки зала
func SettingsScreen(settings *model.GymSettings) string {
	return fmt.Sprintf(
		"⚙️ <b>Настройки зала</b>\n\n"+
			"⏱ Длительность занятия: %s\n"+
			"📚 Занятий в день: %d\n"+
			"🕗 Открытие: %s\n"+
			"🕗 Закрытие: %s\n"+
			"📅 Запись вперёд: %d рабочих дней\n\n"+
			"Изменить: /set &lt;поле&gt; &lt;значение&gt;\n"+
			"Поля: %s (15-240), %s (1-20), %s, %s (ЧЧ:ММ), %s (1-30)",
		formatting.FormatDuration(settings.SlotDuration),
		settings.MaxSlotsPerDay,
		settings.OpeningTime,
		settings.ClosingTime,
		settings.DaysInAdvance,
		service.FieldSlotDuration,
		service.FieldMaxSlotsPerDay,
		service.FieldOpeningTime,
		service.FieldClosingTime,
		service.FieldDaysInAdvance,
	)
}

// UsersScreen пользователи, сгруппированные по ролям
func UsersScreen(users []*model.User) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "👤 <b>Пользователи (%d)</b>\n", len(users))

	for _, role := range []model.UserRole{model.RoleAdmin, model.RoleTeacher, model.RoleStudent} {
		fmt.Fprintf(&sb, "\n<b>%s</b>\n", formatting.GetRoleDisplay(role))
		count := 0
		for _, u := range users {
			if u.Role != role {
				continue
			}
			count++
			fmt.Fprintf(&sb, "• %s · %s\n", html.EscapeString(u.Name), html.EscapeString(u.Email))
		}
		if count == 0 {
			sb.WriteString("—\n")
		}
	}
	return sb.String()
}

// AddSlotDateScreen выбор даты нового занятия
func AddSlotDateScreen(svc *service.Services) (string, *models.InlineKeyboardMarkup) {
	dates := schedule.NextWeekdays(svc.Slots.Today(), addSlotDaysShown)

	buttons := make([]models.InlineKeyboardButton, 0, len(dates))
	for _, d := range dates {
		buttons = append(buttons, keyboard.Button(formatting.FormatDayButton(d), AddSlotDate+d))
	}

	kb := keyboard.NewBuilder().
		Grid(buttons, 5).
		Row(keyboard.Button("✖️ Отмена", CancelDialog))

	return "➕ <b>Новое занятие</b>\n\nШаг 1 из 3: выберите дату.\n" +
		"Другую дату можно указать командой /addslot &lt;ГГГГ-ММ-ДД&gt; &lt;окно&gt; [мест]", kb.Build()
}

// AddSlotWindowScreen выбор окна расписания; занятые тренером окна недоступны
func AddSlotWindowScreen(ctx context.Context, svc *service.Services, teacher *model.User, date string) (string, *models.InlineKeyboardMarkup, error) {
	slots, err := svc.Slots.TeacherSlots(ctx, teacher.ID)
	if err != nil {
		return "", nil, err
	}

	kb := keyboard.NewBuilder()
	for _, window := range schedule.SlotsForDate(date) {
		label := fmt.Sprintf("%d. %s", window.ID, schedule.FormatSlotTime(window))
		data := fmt.Sprintf("%s%s:%d", AddSlotWindow, date, window.ID)
		if takenBy(slots, date, window) {
			label = "✖️ " + label
			data = Noop
		}
		kb.Row(keyboard.Button(label, data))
	}
	kb.Row(
		keyboard.Button("⬅️ Другая дата", AddSlotStart),
		keyboard.Button("✖️ Отмена", CancelDialog),
	)

	text := fmt.Sprintf("➕ <b>Новое занятие</b> на %s\n\nШаг 2 из 3: выберите время.", formatting.FormatSlotDate(date))
	return text, kb.Build(), nil
}

// WeekScreen недельная сетка: для тренера его занятия, для студента открытые
func WeekScreen(ctx context.Context, svc *service.Services, user *model.User, ref time.Time) ([]byte, string, *models.InlineKeyboardMarkup, error) {
	teacherID := ""
	navPrefix := StudentWeek
	if user.IsTeacher() {
		teacherID = user.ID
		navPrefix = TeacherWeek
	}

	view, err := svc.Slots.WeekSlots(ctx, teacherID, ref)
	if err != nil {
		return nil, "", nil, err
	}

	cells := make([]SlotCell, 0, len(view.Slots))
	for _, slot := range view.Slots {
		window, ok := schedule.FindByTimes(slot.StartTime, slot.EndTime)
		if !ok {
			continue
		}
		booked, err := svc.Bookings.BookedCount(ctx, slot.ID)
		if err != nil {
			return nil, "", nil, err
		}

		cell := SlotCell{
			Date:      slot.Date,
			WindowID:  window.ID,
			Booked:    booked,
			Capacity:  slot.Capacity,
			Available: slot.IsAvailable,
			Past:      svc.Slots.HasEnded(slot),
		}
		if user.IsStudent() {
			if cell.Mine, err = svc.Bookings.IsBookedBy(ctx, slot.ID, user.ID); err != nil {
				return nil, "", nil, err
			}
		}
		if teacherID == "" {
			cell.Caption = svc.Overview.TeacherName(ctx, slot.TeacherID)
		}
		cells = append(cells, cell)
	}

	image, err := GenerateWeekImage(WeekImage{
		Days:  view.Days,
		Cells: cells,
		Today: svc.Slots.Today().Format(model.DateLayout),
	})
	if err != nil {
		return nil, "", nil, fmt.Errorf("render week: %w", err)
	}

	caption := fmt.Sprintf("🗓 <b>Неделя %s</b>\nЗанятий: %d", formatting.FormatWeekRange(view.Days), len(view.Slots))

	kb := keyboard.NewBuilder().Row(
		keyboard.Button("⬅️", navPrefix+ref.AddDate(0, 0, -7).Format(model.DateLayout)),
		keyboard.Button("Сегодня", navPrefix+svc.Slots.Today().Format(model.DateLayout)),
		keyboard.Button("➡️", navPrefix+ref.AddDate(0, 0, 7).Format(model.DateLayout)),
	)
	if user.IsStudent() {
		dayButtons := make([]models.InlineKeyboardButton, 0, len(view.Days))
		for _, d := range view.Days {
			dayButtons = append(dayButtons, keyboard.Button(formatting.FormatDayButton(d), StudentDay+d))
		}
		kb.Grid(dayButtons, 5)
	}

	return image, caption, kb.Build(), nil
}

func takenBy(slots []*model.TimeSlot, date string, window model.ScheduleSlot) bool {
	for _, s := range slots {
		if s.Date == date && s.StartTime == window.StartTime && s.EndTime == window.EndTime {
			return true
		}
	}
	return false
}

func contains(items []string, item string) bool {
	for _, v := range items {
		if v == item {
			return true
		}
	}
	return false
}
