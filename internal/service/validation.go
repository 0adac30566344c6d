package service

import (
	"errors"
	"fmt"

	"github.com/Freeeeeet/easestay_bot/internal/apiclient"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Подписи полей форм для сообщений об ошибках
var fieldLabels = map[string]string{
	"Email":           "Email",
	"Password":        "Пароль",
	"ConfirmPassword": "Подтверждение пароля",
	"Role":            "Роль",
	"FirstName":       "Имя",
	"LastName":        "Фамилия",
	"Phone":           "Телефон",
	"Rating":          "Оценка",
	"Comment":         "Комментарий",
}

// validateForm проверяет структуру по тегам validate и возвращает ошибку вида validation
func validateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apiclient.WrapValidation("Проверьте введённые данные", err)
	}

	return apiclient.WrapValidation(fieldMessage(fieldErrs[0]), err)
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Поле «%s» обязательно", label)
	case "email":
		return "Некорректный email"
	case "eqfield":
		return "Пароли не совпадают"
	case "oneof":
		return fmt.Sprintf("Недопустимое значение поля «%s»", label)
	case "min", "gte":
		return fmt.Sprintf("Поле «%s»: значение слишком маленькое или короткое (минимум %s)", label, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("Поле «%s»: значение слишком большое или длинное (максимум %s)", label, fe.Param())
	default:
		return fmt.Sprintf("Поле «%s» заполнено неверно", label)
	}
}
