package keyboard

import "github.com/go-telegram/bot/models"

// Общие callback'и навигации
const (
	HomeCallback = "home"
	NoopCallback = "noop"
)

// BackButton создаёт кнопку "Назад"
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Назад", callbackData)
}

// HomeButton создаёт кнопку "В главное меню"
func HomeButton() models.InlineKeyboardButton {
	return Button("🏠 В главное меню", HomeCallback)
}

// CancelButton создаёт кнопку "Отмена"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Отмена", callbackData)
}

// ConfirmButton создаёт кнопку "Подтвердить"
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Подтвердить", callbackData)
}

// DeleteButton создаёт кнопку "Удалить"
func DeleteButton(callbackData string) models.InlineKeyboardButton {
	return Button("🗑 Удалить", callbackData)
}

// RefreshButton создаёт кнопку "Обновить"
func RefreshButton(callbackData string) models.InlineKeyboardButton {
	return Button("🔄 Обновить", callbackData)
}

// ConfirmCancelButtons создаёт ряд с кнопками Подтвердить/Отмена
func ConfirmCancelButtons(confirmCallback, cancelCallback string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			ConfirmButton(confirmCallback),
			CancelButton(cancelCallback),
		},
	}
}

// YesNoButtons создаёт ряд с кнопками Да/Нет
func YesNoButtons(yesCallback, noCallback string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			Button("✅ Да", yesCallback),
			Button("❌ Нет", noCallback),
		},
	}
}

// AddBackButton добавляет кнопку "Назад" к builder
func (b *Builder) AddBackButton(callbackData string) *Builder {
	return b.Row(BackButton(callbackData))
}

// AddHomeButton добавляет кнопку "В главное меню" к builder
func (b *Builder) AddHomeButton() *Builder {
	return b.Row(HomeButton())
}
