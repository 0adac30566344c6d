package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind - категория ошибки, по которой контроллер выбирает сообщение пользователю
type Kind string

const (
	KindValidation    Kind = "validation"
	KindConnectivity  Kind = "connectivity"
	KindAuth          Kind = "auth"
	KindAuthorization Kind = "authorization"
	KindNotFound      Kind = "not_found"
	KindBooking       Kind = "booking"
	KindPayment       Kind = "payment"
	KindRemote        Kind = "remote"
)

// Error - единая форма ошибок API и локальных проверок
type Error struct {
	Kind    Kind
	Status  int // 0 для локальных ошибок и ошибок транспорта
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError создаёт локальную ошибку заданного вида
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation - ошибка проверки ввода, сеть не затрагивается
func Validation(message string) error {
	return NewError(KindValidation, message)
}

// WrapValidation сохраняет исходную ошибку для errors.Is
func WrapValidation(message string, err error) error {
	return &Error{Kind: KindValidation, Message: message, Err: err}
}

func Authorization(message string) error {
	return NewError(KindAuthorization, message)
}

func NotFound(message string) error {
	return NewError(KindNotFound, message)
}

// KindOf возвращает вид ошибки или пустую строку для посторонних ошибок
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// IsKind проверяет вид ошибки
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf возвращает текст ошибки без служебного префикса
func MessageOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized:
		return KindAuth
	case http.StatusForbidden:
		return KindAuthorization
	case http.StatusNotFound:
		return KindNotFound
	default:
		return KindRemote
	}
}

// rekind переводит клиентские ошибки сервера (4xx, кроме 401/403) в вид операции
func rekind(err error, kind Kind) error {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return err
	}
	if apiErr.Status < 400 || apiErr.Status >= 500 {
		return err
	}
	if apiErr.Kind == KindAuth || apiErr.Kind == KindAuthorization {
		return err
	}
	return &Error{Kind: kind, Status: apiErr.Status, Message: apiErr.Message, Err: apiErr.Err}
}
