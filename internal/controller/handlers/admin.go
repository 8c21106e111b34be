package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/gym_booking_bot/internal/model"
	"github.com/Freeeeeet/gym_booking_bot/internal/service"
)

// handleUsers /users [роль]
func (h *Handlers) handleUsers(ctx context.Context, b *bot.Bot, msg *models.Message, args []string) {
	if _, ok := h.requireRole(ctx, b, msg, model.RoleAdmin); !ok {
		return
	}

	var (
		users []*model.User
		err   error
	)
	if len(args) > 0 {
		role := model.UserRole(strings.ToLower(args[0]))
		if !role.Valid() {
			h.sendMessage(ctx, b, msg.Chat.ID, "❌ Роль: student, teacher или admin")
			return
		}
		users, err = h.services.Users.ListByRole(ctx, role)
	} else {
		users, err = h.services.Users.List(ctx)
	}
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}

	h.sendHTML(ctx, b, msg.Chat.ID, common.UsersScreen(users), nil)
}

// handleAddUser /adduser <роль> <email> <имя>
func (h *Handlers) handleAddUser(ctx context.Context, b *bot.Bot, msg *models.Message, args []string) {
	admin, ok := h.requireRole(ctx, b, msg, model.RoleAdmin)
	if !ok {
		return
	}
	if len(args) < 3 {
		h.sendMessage(ctx, b, msg.Chat.ID, "Использование: /adduser <student|teacher|admin> <email> <имя>")
		return
	}

	user, err := h.services.Users.CreateUser(ctx, service.CreateUserRequest{
		Role:  strings.ToLower(args[0]),
		Email: args[1],
		Name:  strings.Join(args[2:], " "),
	})
	if errors.Is(err, service.ErrConflict) {
		h.sendMessage(ctx, b, msg.Chat.ID, "❌ Пользователь с таким email уже есть")
		return
	}
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}

	h.logger.Info("User added by admin",
		zap.String("admin_id", admin.ID),
		zap.String("user_id", user.ID),
	)
	h.sendMessage(ctx, b, msg.Chat.ID,
		"✅ Добавлен "+formatting.GetRoleDisplay(user.Role)+": "+user.Name+" ("+user.Email+")")
}

// handleSettings текущие настройки зала
func (h *Handlers) handleSettings(ctx context.Context, b *bot.Bot, msg *models.Message, _ []string) {
	if _, ok := h.requireRole(ctx, b, msg, model.RoleAdmin); !ok {
		return
	}

	settings, err := h.services.Settings.Get(ctx)
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}
	h.sendHTML(ctx, b, msg.Chat.ID, common.SettingsScreen(settings), nil)
}

// handleSet /set <поле> <значение>
func (h *Handlers) handleSet(ctx context.Context, b *bot.Bot, msg *models.Message, args []string) {
	if _, ok := h.requireRole(ctx, b, msg, model.RoleAdmin); !ok {
		return
	}
	if len(args) < 2 {
		h.sendMessage(ctx, b, msg.Chat.ID, "Использование: /set <поле> <значение>\nПоля смотрите в /settings")
		return
	}

	settings, err := h.services.Settings.SetField(ctx, strings.ToLower(args[0]), args[1])
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}
	h.sendHTML(ctx, b, msg.Chat.ID, "✅ Сохранено\n\n"+common.SettingsScreen(settings), nil)
}

// handleOverview обзор загрузки зала
func (h *Handlers) handleOverview(ctx context.Context, b *bot.Bot, msg *models.Message, _ []string) {
	if _, ok := h.requireRole(ctx, b, msg, model.RoleAdmin); !ok {
		return
	}

	text, err := common.AdminOverviewScreen(ctx, h.services)
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}
	h.sendHTML(ctx, b, msg.Chat.ID, text, nil)
}
