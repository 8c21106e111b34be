package handlers

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/gym_booking_bot/internal/model"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text     string
		wantName string
		wantArgs []string
	}{
		{"/start", "start", []string{}},
		{"/slots 2024-01-08", "slots", []string{"2024-01-08"}},
		{"/adduser teacher t@gym.com Анна  Петрова", "adduser", []string{"teacher", "t@gym.com", "Анна", "Петрова"}},
		{"/Login@gym_bot a@gym.com", "login", []string{"a@gym.com"}},
		{"hello", "", nil},
		{"", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			name, args := parseCommand(tt.text)
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if len(args) != len(tt.wantArgs) || (len(args) > 0 && !reflect.DeepEqual(args, tt.wantArgs)) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestParseDateArg(t *testing.T) {
	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{arg: "2024-01-08", want: "2024-01-08"},
		{arg: "08.01.2024", want: "2024-01-08"},
		{arg: "2024-02-30", wantErr: true},
		{arg: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseDateArg(tt.arg)
		if tt.wantErr {
			if !errors.Is(err, common.ErrInvalidFormat) {
				t.Errorf("parseDateArg(%q) error = %v, want ErrInvalidFormat", tt.arg, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("parseDateArg(%q) = %q, %v; want %q", tt.arg, got, err, tt.want)
		}
	}
}

func TestParseWindowArg(t *testing.T) {
	if id, err := parseWindowArg("8"); err != nil || id != 8 {
		t.Errorf("parseWindowArg(8) = %d, %v", id, err)
	}
	for _, arg := range []string{"0", "9", "x", ""} {
		if _, err := parseWindowArg(arg); err == nil {
			t.Errorf("parseWindowArg(%q) expected error", arg)
		}
	}
}

func TestRefDate(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	today := time.Date(2024, 1, 3, 10, 0, 0, 0, loc)

	got, err := refDate(nil, today)
	if err != nil || !got.Equal(today) {
		t.Fatalf("refDate(nil) = %v, %v", got, err)
	}

	got, err = refDate([]string{"15.01.2024"}, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Format(model.DateLayout) != "2024-01-15" || got.Location() != loc {
		t.Errorf("refDate = %v", got)
	}

	if _, err := refDate([]string{"soon"}, today); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestHelpText(t *testing.T) {
	tests := []struct {
		name    string
		user    *model.User
		want    string
		notWant string
	}{
		{name: "anonymous", user: nil, want: "/login", notWant: "/slots"},
		{name: "student", user: &model.User{Role: model.RoleStudent}, want: "/mybookings", notWant: "/addslot"},
		{name: "teacher", user: &model.User{Role: model.RoleTeacher}, want: "/addslot", notWant: "/overview"},
		{name: "admin", user: &model.User{Role: model.RoleAdmin}, want: "/overview", notWant: "/mybookings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := helpText(tt.user)
			if !strings.Contains(text, tt.want) {
				t.Errorf("help should contain %s", tt.want)
			}
			if strings.Contains(text, tt.notWant) {
				t.Errorf("help should not contain %s", tt.notWant)
			}
		})
	}
}
