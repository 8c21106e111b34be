package state

import "testing"

func TestManager_Dialog(t *testing.T) {
	sm := NewManager()
	const id = int64(42)

	if sm.GetState(id) != StateNone {
		t.Fatal("expected no state")
	}

	sm.SetData(id, KeySlotDate, "2024-01-08")
	sm.SetState(id, StateAddSlotCapacity)
	sm.SetData(id, KeySlotWindow, 3)

	if sm.GetState(id) != StateAddSlotCapacity {
		t.Errorf("expected %s, got %s", StateAddSlotCapacity, sm.GetState(id))
	}
	if v := sm.GetString(id, KeySlotDate); v != "2024-01-08" {
		t.Errorf("expected stored date, got %v", v)
	}

	data := sm.GetAllData(id)
	data[KeySlotWindow] = 7
	if sm.GetInt(id, KeySlotWindow) != 3 {
		t.Error("GetAllData must return a copy")
	}

	sm.SetState(id, StateNone)
	if _, ok := sm.GetData(id, KeySlotDate); ok {
		t.Error("StateNone must drop dialog data")
	}

	sm.SetState(id, StateLoginEmail)
	sm.ClearState(id)
	if sm.GetState(id) != StateNone {
		t.Error("expected cleared state")
	}
}
