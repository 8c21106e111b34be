package common

// Форматы callback data. ID слотов и бронирований - UUID,
// поэтому данные укладываются в лимит Telegram в 64 байта.
const (
	Noop = "noop"

	// Студент
	StudentDay    = "day:"         // day:2024-01-08
	StudentWeek   = "week:"        // week:2024-01-08
	BookSlot      = "book:"        // book:<slot_id>
	CancelBooking = "cancel:"      // cancel:<booking_id>
	CancelSlot    = "cancel_slot:" // cancel_slot:<slot_id>
	MyBookings    = "my_bookings"

	// Тренер
	TeacherWeek     = "tweek:"          // tweek:2024-01-08
	ViewSlot        = "view_slot:"      // view_slot:<slot_id>
	ToggleSlot      = "toggle_slot:"    // toggle_slot:<slot_id>
	DeleteSlot      = "delete_slot:"    // delete_slot:<slot_id>
	ConfirmDelete   = "confirm_delete:" // confirm_delete:<slot_id>
	EditCapacity    = "edit_capacity:"  // edit_capacity:<slot_id>
	MySlots         = "my_slots"
	AddSlotStart    = "add_slot"
	AddSlotDate     = "addslot_date:" // addslot_date:2024-01-08
	AddSlotWindow   = "addslot_win:"  // addslot_win:2024-01-08:3
	CancelDialog    = "cancel_dialog"
	TeacherOverview = "roster"
)
