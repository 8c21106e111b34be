package callbacktypes

import (
	"github.com/Freeeeeet/gym_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/gym_booking_bot/internal/service"
	"go.uber.org/zap"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	Services     *service.Services
	StateManager *state.Manager
	Logger       *zap.Logger
}
