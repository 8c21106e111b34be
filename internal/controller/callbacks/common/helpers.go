package common

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Helper functions для всех callback handlers

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseArgFromCallback извлекает аргумент после префикса
// Например: "book:abc" с префиксом "book:" -> "abc"
func ParseArgFromCallback(data, prefix string) (string, error) {
	if !strings.HasPrefix(data, prefix) {
		return "", ErrInvalidFormat
	}
	arg := strings.TrimPrefix(data, prefix)
	if arg == "" {
		return "", ErrInvalidFormat
	}
	return arg, nil
}

// SessionKey ключ сессии Telegram-пользователя в хранилище
func SessionKey(telegramID int64) string {
	return fmt.Sprintf("tg:%d", telegramID)
}

// SendHTML отправляет сообщение с HTML-разметкой и логирует если не удалось
func SendHTML(ctx context.Context, b *bot.Bot, logger *zap.Logger, chatID int64, text string, keyboard *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// EditHTML заменяет текст сообщения, к которому привязан callback
func EditHTML(ctx context.Context, b *bot.Bot, logger *zap.Logger, msg *models.Message, text string, keyboard *models.InlineKeyboardMarkup) {
	params := &bot.EditMessageTextParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	if _, err := b.EditMessageText(ctx, params); err != nil {
		logger.Warn("Failed to edit message",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.Int("message_id", msg.ID),
			zap.Error(err),
		)
	}
}

// SendPhoto отправляет PNG с подписью и клавиатурой
func SendPhoto(ctx context.Context, b *bot.Bot, logger *zap.Logger, chatID int64, image []byte, caption string, keyboard *models.InlineKeyboardMarkup) {
	params := &bot.SendPhotoParams{
		ChatID:    chatID,
		Photo:     &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(image)},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	if _, err := b.SendPhoto(ctx, params); err != nil {
		logger.Error("Failed to send photo",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// DeleteMessage удаляет сообщение, ошибку только логирует
func DeleteMessage(ctx context.Context, b *bot.Bot, logger *zap.Logger, msg *models.Message) {
	if _, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	}); err != nil {
		logger.Warn("Failed to delete message", zap.Int("message_id", msg.ID), zap.Error(err))
	}
}
