package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/gym_booking_bot/internal/service"
)

// commandFunc обработчик команды; args - слова после имени команды
type commandFunc func(ctx context.Context, b *bot.Bot, msg *models.Message, args []string)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	services     *service.Services
	stateManager *state.Manager
	logger       *zap.Logger
	commands     map[string]commandFunc
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(services *service.Services, stateManager *state.Manager, logger *zap.Logger) *Handlers {
	h := &Handlers{
		services:     services,
		stateManager: stateManager,
		logger:       logger,
	}

	h.commands = map[string]commandFunc{
		// Общие
		"start":  h.handleStart,
		"help":   h.handleHelp,
		"login":  h.handleLogin,
		"logout": h.handleLogout,
		"whoami": h.handleWhoAmI,
		"cancel": h.handleCancel,

		// Студент
		"slots":      h.handleSlots,
		"week":       h.handleWeek,
		"mybookings": h.handleMyBookings,

		// Тренер
		"myslots":    h.handleMySlots,
		"addslot":    h.handleAddSlot,
		"editslot":   h.handleEditSlot,
		"capacity":   h.handleCapacity,
		"toggle":     h.handleToggle,
		"deleteslot": h.handleDeleteSlot,
		"schedule":   h.handleSchedule,
		"roster":     h.handleRoster,

		// Администратор
		"users":    h.handleUsers,
		"adduser":  h.handleAddUser,
		"settings": h.handleSettings,
		"set":      h.handleSet,
		"overview": h.handleOverview,
	}

	return h
}
