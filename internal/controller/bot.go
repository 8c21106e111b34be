package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/gym_booking_bot/internal/controller/handlers"
	"github.com/Freeeeeet/gym_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/gym_booking_bot/internal/service"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(botInstance *bot.Bot, services *service.Services, logger *zap.Logger) *BotController {
	// Менеджер состояний общий для команд и кнопок
	stateManager := state.NewManager()

	return &BotController{
		bot:             botInstance,
		handlers:        handlers.NewHandlers(services, stateManager, logger),
		callbackHandler: callbacks.NewHandler(services, stateManager, logger),
		logger:          logger,
	}
}

// RegisterHandlers регистрирует обработчики и меню команд.
// Команды разбирает один обработчик текста, чтобы /set не перехватывал /settings.
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "login", Description: "🔑 Войти по email"},
		{Command: "slots", Description: "📅 Занятия на день (студент)"},
		{Command: "week", Description: "🗓 Неделя занятий (студент)"},
		{Command: "mybookings", Description: "📋 Мои записи (студент)"},
		{Command: "myslots", Description: "🏋️ Мои занятия (тренер)"},
		{Command: "addslot", Description: "➕ Добавить занятие (тренер)"},
		{Command: "schedule", Description: "🗓 Неделя моих занятий (тренер)"},
		{Command: "roster", Description: "👥 Кто записан (тренер)"},
		{Command: "overview", Description: "📊 Обзор системы (админ)"},
		{Command: "settings", Description: "⚙️ Настройки зала (админ)"},
		{Command: "users", Description: "👤 Пользователи (админ)"},
		{Command: "whoami", Description: "🙋 Кто я"},
		{Command: "logout", Description: "🚪 Выйти"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены контекста
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
