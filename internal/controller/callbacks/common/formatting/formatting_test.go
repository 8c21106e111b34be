package formatting

import (
	"testing"
	"time"

	"github.com/Freeeeeet/gym_booking_bot/internal/model"
)

func TestFormatSlotDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-08", "08.01.2024 (Пн)"},
		{"2024-01-12", "12.01.2024 (Пт)"},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		if got := FormatSlotDate(tt.in); got != tt.want {
			t.Errorf("FormatSlotDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDayButton(t *testing.T) {
	if got := FormatDayButton("2024-01-10"); got != "Ср 10.01" {
		t.Errorf("unexpected %q", got)
	}
}

func TestFormatWeekRange(t *testing.T) {
	days := []string{"2024-01-29", "2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"}
	if got := FormatWeekRange(days); got != "29.01 - 02.02.2024" {
		t.Errorf("unexpected %q", got)
	}
	if got := FormatWeekRange(nil); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[int]string{45: "45 мин", 60: "1 ч", 90: "1 ч 30 мин"}
	for in, want := range tests {
		if got := FormatDuration(in); got != want {
			t.Errorf("FormatDuration(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestGetSlotStatusDisplay(t *testing.T) {
	slot := &model.TimeSlot{Capacity: 2, IsAvailable: true}

	if d := GetSlotStatusDisplay(slot, 0); d.Emoji != "🟢" {
		t.Errorf("expected free, got %+v", d)
	}
	if d := GetSlotStatusDisplay(slot, 1); d.Emoji != "🟡" {
		t.Errorf("expected partial, got %+v", d)
	}
	if d := GetSlotStatusDisplay(slot, 2); d.Emoji != "🔴" {
		t.Errorf("expected full, got %+v", d)
	}
	slot.IsAvailable = false
	if d := GetSlotStatusDisplay(slot, 0); d.Emoji != "🔒" {
		t.Errorf("expected closed, got %+v", d)
	}
}

func TestGetMonthName(t *testing.T) {
	if GetMonthName(time.March) != "Март" {
		t.Error("unexpected month name")
	}
}
