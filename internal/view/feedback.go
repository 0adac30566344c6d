package view

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/view/formatting"
	"github.com/Freeeeeet/easestay_bot/internal/view/keyboard"
)

const feedbackShown = 10

// FeedbackRatingPrompt - выбор оценки
func FeedbackRatingPrompt() Screen {
	buttons := make([]models.InlineKeyboardButton, 0, model.FeedbackMaxRating)
	for rating := model.FeedbackMinRating; rating <= model.FeedbackMaxRating; rating++ {
		buttons = append(buttons, keyboard.Button(fmt.Sprintf("%d ⭐", rating), fmt.Sprintf("%s%d", CallbackFeedbackRate, rating)))
	}

	kb := keyboard.NewBuilder().
		Row(buttons...).
		Row(keyboard.CancelButton(CallbackHome))

	return Screen{Text: "⭐ <b>Отзыв</b>\n\nОцените пребывание:", Keyboard: kb.Build()}
}

// FeedbackCommentPrompt - запрос текста отзыва
func FeedbackCommentPrompt(rating int) Screen {
	return Screen{
		Text:     fmt.Sprintf("⭐ Оценка: %s\n\nНапишите пару слов о пребывании:", formatting.Stars(rating)),
		Keyboard: keyboard.NewBuilder().Row(keyboard.CancelButton(CallbackHome)).Build(),
	}
}

// FeedbackList - последние отзывы гостей
func FeedbackList(items Section[model.Feedback]) Screen {
	var b strings.Builder
	b.WriteString("⭐ <b>Отзывы гостей</b>\n\n")

	switch {
	case items.Failed():
		b.WriteString(errorState("отзывы"))
	case items.Empty():
		b.WriteString(emptyState("Отзывов пока нет"))
	default:
		shown := items.Items
		if len(shown) > feedbackShown {
			shown = shown[:feedbackShown]
		}
		entries := make([]string, len(shown))
		for i, f := range shown {
			entries[i] = fmt.Sprintf("%s <i>%s</i>\n%s",
				formatting.Stars(f.Rating),
				formatting.FormatDateTime(f.CreatedAt.Time),
				esc(f.Comment),
			)
		}
		b.WriteString(strings.Join(entries, "\n\n"))
	}

	return Screen{Text: b.String(), Keyboard: keyboard.NewBuilder().AddHomeButton().Build()}
}
