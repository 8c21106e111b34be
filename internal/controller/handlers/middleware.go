package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/gym_booking_bot/internal/model"
)

// requireUser возвращает пользователя сессии
// Возвращает user и true если OK, nil и false если нет (сообщение уже отправлено)
func (h *Handlers) requireUser(ctx context.Context, b *bot.Bot, msg *models.Message) (*model.User, bool) {
	user, err := h.services.Sessions.Current(ctx, common.SessionKey(msg.From.ID))
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, err)
		return nil, false
	}

	if user == nil {
		h.sendError(ctx, b, msg.Chat.ID, common.ErrNotLoggedIn)
		return nil, false
	}

	return user, true
}

// requireRole проверяет что пользователь сессии имеет одну из ролей
func (h *Handlers) requireRole(ctx context.Context, b *bot.Bot, msg *models.Message, roles ...model.UserRole) (*model.User, bool) {
	user, ok := h.requireUser(ctx, b, msg)
	if !ok {
		return nil, false
	}

	for _, role := range roles {
		if user.Role == role {
			return user, true
		}
	}

	h.logger.Debug("Command rejected by role",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	h.sendError(ctx, b, msg.Chat.ID, common.ErrWrongRole)
	return nil, false
}

// sendError отправляет сообщение об ошибке, сбои логирует
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	if !common.IsUserError(err) {
		h.logger.Error("Command failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	h.sendMessage(ctx, b, chatID, common.ErrorMessage(err))
}

// sendMessage отправляет сообщение без разметки и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendHTML отправляет сообщение с HTML-разметкой
func (h *Handlers) sendHTML(ctx context.Context, b *bot.Bot, chatID int64, text string, keyboard *models.InlineKeyboardMarkup) {
	common.SendHTML(ctx, b, h.logger, chatID, text, keyboard)
}
