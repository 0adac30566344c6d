package handlers

// Ограничения ввода в диалогах
const (
	// Имя и фамилия при регистрации
	NameMaxLength = 50

	// Телефон необязателен, "-" пропускает шаг
	PhoneMaxLength = 20
	SkipInput      = "-"

	// Пароль
	PasswordMinLength = 6

	// Текст отзыва
	FeedbackCommentMaxLength = 1000
)
