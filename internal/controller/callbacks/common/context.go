package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/gym_booking_bot/internal/model"
)

// HandlerContext содержит общие данные для обработки callback
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	User       *model.User
	TelegramID int64
	ChatID     int64
}

// NewHandlerContext создаёт новый контекст обработчика
func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// LoadUser загружает пользователя сессии и проверяет роль, если она указана
func (hc *HandlerContext) LoadUser(roles ...model.UserRole) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	user, err := hc.Handler.Services.Sessions.Current(hc.Ctx, SessionKey(hc.TelegramID))
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotLoggedIn
	}
	if len(roles) > 0 && !hasRole(user, roles) {
		return ErrWrongRole
	}

	hc.User = user
	return nil
}

// Fail отвечает alert-ом с текстом ошибки и логирует неожиданные ошибки
func (hc *HandlerContext) Fail(err error) {
	if IsUserError(err) {
		hc.Handler.Logger.Debug("Callback rejected",
			zap.String("data", hc.Callback.Data),
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err),
		)
	} else {
		hc.Handler.Logger.Error("Callback failed",
			zap.String("data", hc.Callback.Data),
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err),
		)
	}
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, ErrorMessage(err))
}

// Answer подтверждает callback коротким уведомлением
func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// Edit заменяет текст исходного сообщения
func (hc *HandlerContext) Edit(text string, keyboard *models.InlineKeyboardMarkup) {
	EditHTML(hc.Ctx, hc.Bot, hc.Handler.Logger, hc.Message, text, keyboard)
}

// Show показывает экран на месте исходного сообщения. Подпись фото
// текстом не заменить, поэтому под фото экран приходит новым сообщением.
func (hc *HandlerContext) Show(text string, keyboard *models.InlineKeyboardMarkup) {
	if len(hc.Message.Photo) > 0 {
		hc.Send(text, keyboard)
		return
	}
	hc.Edit(text, keyboard)
}

// Send отправляет новое сообщение в чат callback-а
func (hc *HandlerContext) Send(text string, keyboard *models.InlineKeyboardMarkup) {
	SendHTML(hc.Ctx, hc.Bot, hc.Handler.Logger, hc.ChatID, text, keyboard)
}

func hasRole(user *model.User, roles []model.UserRole) bool {
	for _, r := range roles {
		if user.Role == r {
			return true
		}
	}
	return false
}
