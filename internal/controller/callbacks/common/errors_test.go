package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/easestay_bot/internal/apiclient"
	"github.com/Freeeeeet/easestay_bot/internal/service"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"sentinel wrapped", fmt.Errorf("confirm: %w", service.ErrStatusChangeInProgress), "⏳ Изменение уже применяется, дождитесь ответа"},
		{"booking in progress", service.ErrBookingInProgress, "⏳ Запрос уже выполняется, дождитесь ответа"},
		{"no session", &apiclient.Error{Kind: apiclient.KindAuth, Message: "x", Err: service.ErrNoSession}, "🔑 Войдите в аккаунт: /login"},
		{"expired token", &apiclient.Error{Kind: apiclient.KindAuth, Status: 401, Message: "Token has expired"}, "🔑 Сессия истекла, войдите снова: /login"},
		{"booking", apiclient.NewError(apiclient.KindBooking, "Room not available"), "❌ Room not available"},
		{"forbidden", apiclient.Authorization("Admin access required"), "🚫 Admin access required"},
		{"connectivity", apiclient.NewError(apiclient.KindConnectivity, "Нет связи"), "📡 Нет связи"},
		{"foreign", errors.New("boom"), "❌ Произошла ошибка"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}

func TestIsSessionRejected(t *testing.T) {
	assert.True(t, IsSessionRejected(&apiclient.Error{Kind: apiclient.KindAuth, Status: 401, Message: "expired"}))
	assert.False(t, IsSessionRejected(&apiclient.Error{Kind: apiclient.KindAuth, Err: service.ErrNoSession}))
	assert.False(t, IsSessionRejected(apiclient.Authorization("nope")))
	assert.False(t, IsSessionRejected(nil))
}

func TestIsInProgress(t *testing.T) {
	assert.True(t, IsInProgress(service.ErrBookingInProgress))
	assert.True(t, IsInProgress(fmt.Errorf("confirm: %w", service.ErrStatusChangeInProgress)))
	assert.False(t, IsInProgress(service.ErrNoActiveBooking))
	assert.False(t, IsInProgress(nil))
}
