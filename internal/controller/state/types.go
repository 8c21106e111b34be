package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Вход по email
	StateLoginEmail UserState = "login_email"

	// Пошаговое создание слота: дата и окно выбираются кнопками, вместимость вводится текстом
	StateAddSlotCapacity UserState = "add_slot_capacity"

	// Изменение вместимости существующего слота
	StateEditSlotCapacity UserState = "edit_slot_capacity"
)

// Ключи временных данных диалога
const (
	KeySlotDate   = "slot_date"
	KeySlotWindow = "slot_window"
	KeySlotID     = "slot_id"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога
}
