package common

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
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

// ParseArg извлекает аргумент после префикса
// Например: "room:abc" -> "abc"
func ParseArg(data, prefix string) (string, error) {
	arg, ok := strings.CutPrefix(data, prefix)
	if !ok || arg == "" {
		return "", ErrInvalidFormat
	}
	return arg, nil
}

// ParsePage извлекает номер страницы, при ошибке - первая страница
func ParsePage(data, prefix string) int {
	arg, err := ParseArg(data, prefix)
	if err != nil {
		return 0
	}
	page, err := strconv.Atoi(arg)
	if err != nil || page < 0 {
		return 0
	}
	return page
}

// ParsePair извлекает два аргумента через ":"
// Например: "admin_status:abc:occupied" -> "abc", "occupied"
func ParsePair(data, prefix string) (string, string, error) {
	arg, err := ParseArg(data, prefix)
	if err != nil {
		return "", "", err
	}
	first, second, ok := strings.Cut(arg, ":")
	if !ok || first == "" || second == "" {
		return "", "", ErrInvalidFormat
	}
	return first, second, nil
}

// IsMessageNotModifiedError - Telegram отклонил редактирование без изменений
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
