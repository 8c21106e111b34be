package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, KeyUsers); err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}

	if err := kv.Set(ctx, KeyUsers, []byte(`[{"id":"u1"}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, ok, err := kv.Get(ctx, KeyUsers)
	if err != nil || !ok {
		t.Fatalf("Get after Set: ok=%v err=%v", ok, err)
	}
	if string(value) != `[{"id":"u1"}]` {
		t.Errorf("unexpected value: %s", value)
	}

	if err := kv.Set(ctx, KeyUsers, []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, _, _ = kv.Get(ctx, KeyUsers)
	if string(value) != `[]` {
		t.Errorf("expected overwritten value, got %s", value)
	}

	if err := kv.Delete(ctx, KeyUsers); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, KeyUsers); ok {
		t.Error("key still present after Delete")
	}

	if err := kv.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := kv.Set(ctx, KeySettings, []byte(`{}`)); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed after Close, got %v", err)
	}
}

func TestMemory(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if err := m.Set(ctx, KeyBookings, []byte(`[1]`)); err != nil {
		t.Fatal(err)
	}
	value, _, _ := m.Get(ctx, KeyBookings)
	value[1] = '2'

	again, _, _ := m.Get(ctx, KeyBookings)
	if string(again) != `[1]` {
		t.Fatalf("stored value mutated: %s", again)
	}
}

func TestFile(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "profile", "gym.json"))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	exerciseKV(t, f)
}

func TestFile_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "gym.json")

	first, err := NewFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Set(ctx, KeySettings, []byte(`{"slotDuration":45}`)); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := NewFile(path)
	if err != nil {
		t.Fatal(err)
	}
	value, ok, err := second.Get(ctx, KeySettings)
	if err != nil || !ok {
		t.Fatalf("expected persisted key, ok=%v err=%v", ok, err)
	}
	if string(value) != `{"slotDuration":45}` {
		t.Errorf("unexpected value: %s", value)
	}
}

func TestFile_ValuesSurviveRewrite(t *testing.T) {
	ctx := context.Background()
	f, err := NewFile(filepath.Join(t.TempDir(), "gym.json"))
	if err != nil {
		t.Fatal(err)
	}

	slots := `[{"id":"s1","date":"2024-01-08","capacity":10,"isAvailable":true}]`
	if err := f.Set(ctx, KeyTimeSlots, []byte(slots)); err != nil {
		t.Fatal(err)
	}
	// запись другого ключа перезаписывает весь файл
	if err := f.Set(ctx, KeySettings, []byte(`{"slotDuration":45}`)); err != nil {
		t.Fatal(err)
	}

	value, ok, err := f.Get(ctx, KeyTimeSlots)
	if err != nil || !ok {
		t.Fatalf("expected stored key, ok=%v err=%v", ok, err)
	}
	if string(value) != slots {
		t.Errorf("value changed after rewrite:\n got %s\nwant %s", value, slots)
	}
}

func TestFile_RejectsInvalidJSON(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "gym.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Set(context.Background(), KeyUsers, []byte(`{broken`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestFile_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gym.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := NewFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := f.Get(context.Background(), KeyUsers); err == nil {
		t.Fatal("expected decode error for corrupt file")
	}
}
