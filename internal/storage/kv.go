// Package storage содержит key-value бэкенды, в которых записи зала
// хранятся целыми JSON-документами.
package storage

import (
	"context"
	"errors"
)

// Имена записей
const (
	KeyUsers       = "gym_users"
	KeyTimeSlots   = "gym_timeslots"
	KeyBookings    = "gym_bookings"
	KeySettings    = "gym_settings"
	KeyCurrentUser = "gym_current_user"
)

// ErrClosed возвращается после Close
var ErrClosed = errors.New("storage closed")

// KV хранилище документов по ключу. Значение читается и пишется целиком.
type KV interface {
	// Get возвращает значение и false, если ключа нет
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
