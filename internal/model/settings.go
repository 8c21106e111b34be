package model

// GymSettings глобальные настройки зала
type GymSettings struct {
	SlotDuration   int    `json:"slotDuration" validate:"min=15,max=240"` // в минутах
	MaxSlotsPerDay int    `json:"maxSlotsPerDay" validate:"min=1,max=20"`
	OpeningTime    string `json:"openingTime" validate:"required,datetime=15:04"`
	ClosingTime    string `json:"closingTime" validate:"required,datetime=15:04"`
	DaysInAdvance  int    `json:"daysInAdvance" validate:"min=1,max=30"` // на сколько дней вперёд можно записаться
}

// DefaultGymSettings настройки, если администратор ещё ничего не сохранял
func DefaultGymSettings() GymSettings {
	return GymSettings{
		SlotDuration:   60,
		MaxSlotsPerDay: 8,
		OpeningTime:    "08:00",
		ClosingTime:    "20:00",
		DaysInAdvance:  7,
	}
}
