package model

// ScheduleSlot - окно из фиксированной дневной сетки зала
type ScheduleSlot struct {
	ID        int    `json:"id"`
	StartTime string `json:"startTime"` // HH:MM
	EndTime   string `json:"endTime"`   // HH:MM
	Label     string `json:"label"`
}
