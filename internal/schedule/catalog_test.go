package schedule

import (
	"testing"
	"time"
)

func TestSlotsForDate_Weekday(t *testing.T) {
	// 2024-01-08 - понедельник
	slots := SlotsForDate("2024-01-08")
	if len(slots) != SlotsPerDay {
		t.Fatalf("expected %d slots, got %d", SlotsPerDay, len(slots))
	}
	if slots[0].StartTime != "08:15" || slots[7].EndTime != "20:05" {
		t.Errorf("unexpected grid bounds: %s .. %s", slots[0].StartTime, slots[7].EndTime)
	}
}

func TestSlotsForDate_WeekendAndInvalid(t *testing.T) {
	cases := []string{"2024-01-06", "2024-01-07", "not-a-date", "", "2024-13-01"}
	for _, date := range cases {
		if got := SlotsForDate(date); len(got) != 0 {
			t.Errorf("SlotsForDate(%q): expected empty, got %d slots", date, len(got))
		}
	}
}

func TestDaily_ReturnsCopy(t *testing.T) {
	slots := Daily()
	slots[0].StartTime = "00:00"

	if s, _ := FindByID(1); s.StartTime != "08:15" {
		t.Fatalf("catalog mutated through Daily(): %s", s.StartTime)
	}
}

func TestGrid_WindowsAreSeventyMinutesAndOrdered(t *testing.T) {
	prevEnd := ""
	for _, s := range Daily() {
		start, err := time.Parse("15:04", s.StartTime)
		if err != nil {
			t.Fatal(err)
		}
		end, err := time.Parse("15:04", s.EndTime)
		if err != nil {
			t.Fatal(err)
		}
		if end.Sub(start) != 70*time.Minute {
			t.Errorf("slot %d: expected 70 minutes, got %s", s.ID, end.Sub(start))
		}
		if prevEnd != "" && s.StartTime <= prevEnd {
			t.Errorf("slot %d overlaps previous window", s.ID)
		}
		prevEnd = s.EndTime
	}
}

func TestFindByIDAndTimes(t *testing.T) {
	if _, ok := FindByID(0); ok {
		t.Error("id 0 must not exist")
	}
	if _, ok := FindByID(9); ok {
		t.Error("id 9 must not exist")
	}

	s, ok := FindByTimes("14:40", "15:50")
	if !ok || s.ID != 5 || s.Label != "9-10" {
		t.Fatalf("unexpected slot: %+v ok=%v", s, ok)
	}
	if FormatSlotTime(s) != "14:40 - 15:50" {
		t.Errorf("unexpected format: %s", FormatSlotTime(s))
	}
}

func TestWeekDays(t *testing.T) {
	// воскресенье относится к неделе, начавшейся в предыдущий понедельник
	days := WeekDays(time.Date(2024, 1, 7, 15, 0, 0, 0, time.UTC))
	want := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"}
	if len(days) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(days))
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("day %d: expected %s, got %s", i, want[i], days[i])
		}
	}
}

func TestNextWeekdays_SkipsWeekend(t *testing.T) {
	// пятница 2024-01-05
	days := NextWeekdays(time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC), 3)
	want := []string{"2024-01-05", "2024-01-08", "2024-01-09"}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("day %d: expected %s, got %s", i, want[i], days[i])
		}
	}
}
