package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/gym_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/gym_booking_bot/internal/model"
	"github.com/Freeeeeet/gym_booking_bot/internal/service"
)

const (
	commonHelp = "Общие команды:\n" +
		"/login <email> - Войти\n" +
		"/logout - Выйти\n" +
		"/whoami - Кто я\n" +
		"/cancel - Отменить текущий диалог\n" +
		"/help - Справка"

	studentHelp = "Для студентов:\n" +
		"/slots [дата] - Занятия на день с записью\n" +
		"/week [дата] - Неделя открытых занятий\n" +
		"/mybookings - Мои записи"

	teacherHelp = "Для тренеров:\n" +
		"/myslots - Мои занятия\n" +
		"/addslot [дата] [окно 1-8] [мест] - Добавить занятие\n" +
		"/editslot <id> <дата> <окно> <мест> - Изменить занятие\n" +
		"/capacity <id> <мест> - Изменить вместимость\n" +
		"/toggle <id> - Открыть или закрыть запись\n" +
		"/deleteslot <id> - Удалить занятие\n" +
		"/schedule [дата] - Неделя моих занятий\n" +
		"/roster - Кто записан на ближайшие занятия"

	adminHelp = "Для администратора:\n" +
		"/users [роль] - Пользователи\n" +
		"/adduser <роль> <email> <имя> - Добавить пользователя\n" +
		"/settings - Настройки зала\n" +
		"/set <поле> <значение> - Изменить настройку\n" +
		"/overview - Обзор системы"
)

// HandleMessage единая точка входа для текстовых сообщений:
// команды разбираются здесь, остальной текст уходит в активный диалог
func (h *Handlers) HandleMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" || update.Message.From == nil {
		return
	}
	msg := update.Message

	if !strings.HasPrefix(msg.Text, "/") {
		h.HandleTextMessage(ctx, b, update)
		return
	}

	name, args := parseCommand(msg.Text)
	handler, ok := h.commands[name]
	if !ok {
		h.sendMessage(ctx, b, msg.Chat.ID, "❓ Неизвестная команда. Список команд: /help")
		return
	}

	h.logger.Debug("Command received",
		zap.String("command", name),
		zap.Int("args", len(args)),
		zap.Int64("telegram_id", msg.From.ID),
	)
	handler(ctx, b, msg, args)
}

// handleStart приветствие и подсказка по входу
func (h *Handlers) handleStart(ctx context.Context, b *bot.Bot, msg *models.Message, _ []string) {
	user, err := h.services.Sessions.Current(ctx, common.SessionKey(msg.From.ID))
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}

	if user != nil {
		h.sendMessage(ctx, b, msg.Chat.ID, fmt.Sprintf(
			"👋 С возвращением, %s!\n\n%s", user.Name, helpText(user)))
		return
	}

	h.sendMessage(ctx, b, msg.Chat.ID, fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это бот записи на занятия в спортзал.\n"+
			"Войдите по email, который выдал администратор: /login <email>",
		msg.From.FirstName,
	))
}

// handleHelp справка с командами роли
func (h *Handlers) handleHelp(ctx context.Context, b *bot.Bot, msg *models.Message, _ []string) {
	user, err := h.services.Sessions.Current(ctx, common.SessionKey(msg.From.ID))
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}
	h.sendMessage(ctx, b, msg.Chat.ID, "📚 Справка по командам\n\n"+helpText(user))
}

// handleLogin вход по email; без аргумента запускает диалог
func (h *Handlers) handleLogin(ctx context.Context, b *bot.Bot, msg *models.Message, args []string) {
	if len(args) == 0 {
		h.stateManager.ClearState(msg.From.ID)
		h.stateManager.SetState(msg.From.ID, state.StateLoginEmail)
		h.sendMessage(ctx, b, msg.Chat.ID, "📧 Введите ваш email:\n\nОтмена: /cancel")
		return
	}
	h.login(ctx, b, msg, args[0])
}

func (h *Handlers) login(ctx context.Context, b *bot.Bot, msg *models.Message, email string) bool {
	user, err := h.services.Sessions.Login(ctx, common.SessionKey(msg.From.ID), email)
	if errors.Is(err, service.ErrNotFound) {
		h.sendMessage(ctx, b, msg.Chat.ID, "❌ Пользователь с таким email не найден")
		return false
	}
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return false
	}

	h.sendMessage(ctx, b, msg.Chat.ID, fmt.Sprintf(
		"✅ Вы вошли как %s (%s)\n\n%s",
		user.Name, formatting.GetRoleDisplay(user.Role), helpText(user),
	))
	return true
}

// handleLogout завершает сессию
func (h *Handlers) handleLogout(ctx context.Context, b *bot.Bot, msg *models.Message, _ []string) {
	h.stateManager.ClearState(msg.From.ID)
	if err := h.services.Sessions.Logout(ctx, common.SessionKey(msg.From.ID)); err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}
	h.sendMessage(ctx, b, msg.Chat.ID, "👋 Вы вышли. Войти снова: /login <email>")
}

// handleWhoAmI показывает пользователя сессии
func (h *Handlers) handleWhoAmI(ctx context.Context, b *bot.Bot, msg *models.Message, _ []string) {
	user, ok := h.requireUser(ctx, b, msg)
	if !ok {
		return
	}
	h.sendMessage(ctx, b, msg.Chat.ID, fmt.Sprintf(
		"👤 %s\n📧 %s\n🎭 %s",
		user.Name, user.Email, formatting.GetRoleDisplay(user.Role),
	))
}

// handleCancel отмена текущего диалога
func (h *Handlers) handleCancel(ctx context.Context, b *bot.Bot, msg *models.Message, _ []string) {
	if h.stateManager.GetState(msg.From.ID) == state.StateNone {
		h.sendMessage(ctx, b, msg.Chat.ID, "❌ Нет активных операций для отмены.")
		return
	}

	h.stateManager.ClearState(msg.From.ID)
	h.sendMessage(ctx, b, msg.Chat.ID, "✅ Операция отменена.")
}

// HandleTextMessage обрабатывает текст в зависимости от состояния диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	telegramID := msg.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		h.logger.Debug("No active state, ignoring message", zap.Int64("telegram_id", telegramID))
		return
	}

	text := strings.TrimSpace(msg.Text)
	switch currentState {
	case state.StateLoginEmail:
		if h.login(ctx, b, msg, text) {
			h.stateManager.ClearState(telegramID)
		}
	case state.StateAddSlotCapacity:
		h.handleAddSlotCapacityStep(ctx, b, msg, text)
	case state.StateEditSlotCapacity:
		h.handleEditCapacityStep(ctx, b, msg, text)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
		h.stateManager.ClearState(telegramID)
	}
}

// helpText список команд, доступных пользователю
func helpText(user *model.User) string {
	sections := []string{commonHelp}
	switch {
	case user == nil:
		return commonHelp
	case user.IsStudent():
		sections = append(sections, studentHelp)
	case user.IsTeacher():
		sections = append(sections, teacherHelp)
	case user.IsAdmin():
		sections = append(sections, adminHelp)
	}
	return strings.Join(sections, "\n\n")
}
