package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/gym_booking_bot/internal/model"
	"github.com/Freeeeeet/gym_booking_bot/internal/repository"
	"github.com/Freeeeeet/gym_booking_bot/internal/service"
	"github.com/Freeeeeet/gym_booking_bot/internal/storage"
)

// Рисует недельные сетки тренера и студента на тестовых данных в памяти
func main() {
	ctx := context.Background()

	store := repository.NewKVStore(storage.NewMemory())
	defer store.Close()

	svc := service.New(store, zap.NewNop())
	if _, err := svc.Users.Seed(ctx); err != nil {
		fail("Ошибка создания пользователей", err)
	}

	teacher, err := svc.Users.GetByEmail(ctx, "teacher@gym.com")
	if err != nil {
		fail("Тренер не найден", err)
	}
	student, err := svc.Users.GetByEmail(ctx, "student@gym.com")
	if err != nil {
		fail("Студент не найден", err)
	}

	// Понедельник следующей недели, чтобы все занятия были в будущем
	monday := svc.Slots.Today().AddDate(0, 0, 7)
	for monday.Weekday() != time.Monday {
		monday = monday.AddDate(0, 0, -1)
	}

	samples := []struct {
		day, window, capacity, booked int
		closed                        bool
	}{
		{day: 0, window: 1, capacity: 10, booked: 1},
		{day: 0, window: 4, capacity: 1, booked: 1},
		{day: 1, window: 2, capacity: 5},
		{day: 2, window: 6, capacity: 8, closed: true},
		{day: 3, window: 3, capacity: 12, booked: 1},
		{day: 4, window: 8, capacity: 20},
	}

	for _, s := range samples {
		slot, err := svc.Slots.CreateOrUpdateSlot(ctx, service.SlotRequest{
			TeacherID:      teacher.ID,
			Date:           monday.AddDate(0, 0, s.day).Format(model.DateLayout),
			ScheduleSlotID: s.window,
			Capacity:       s.capacity,
		})
		if err != nil {
			fail("Ошибка создания занятия", err)
		}
		if s.booked > 0 {
			if _, err := svc.Bookings.Book(ctx, student.ID, slot.ID); err != nil {
				fail("Ошибка записи", err)
			}
		}
		if s.closed {
			if _, err := svc.Slots.SetAvailability(ctx, teacher.ID, slot.ID, false); err != nil {
				fail("Ошибка закрытия записи", err)
			}
		}
	}

	for _, user := range []*model.User{teacher, student} {
		image, caption, _, err := common.WeekScreen(ctx, svc, user, monday)
		if err != nil {
			fail("Ошибка генерации изображения", err)
		}

		filename := fmt.Sprintf("week_%s.png", user.Role)
		if err := os.WriteFile(filename, image, 0644); err != nil {
			fail("Ошибка сохранения файла", err)
		}
		fmt.Printf("✅ %s сохранено в %s\n%s\n", user.Name, filename, caption)
	}
}

func fail(msg string, err error) {
	fmt.Printf("%s: %v\n", msg, err)
	os.Exit(1)
}
