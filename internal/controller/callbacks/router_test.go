package callbacks

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/booking"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/rooms"
	"github.com/Freeeeeet/easestay_bot/internal/view"
)

func sameFunc(a, b callbackFunc) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func TestResolve(t *testing.T) {
	tests := []struct {
		data string
		want callbackFunc
	}{
		{view.CallbackBook, booking.HandleBook},
		{view.CallbackBookRoom + "r1", booking.HandleBookRoom},
		{view.CallbackDeleteBooking + "b1", booking.HandleDeleteBooking},
		{view.CallbackDeleteConfirm + "b1", booking.HandleDeleteConfirm},
		{view.CallbackRoom + "r1", rooms.HandleRoomDetails},
		{view.CallbackRoomsPage + "2", rooms.HandleRoomsPage},
		{view.CallbackAdminRoom + "r1", admin.HandleRoom},
		{view.CallbackAdminStatus + "r1:occupied", admin.HandleStatus},
		{view.CallbackAdminBookings + "0", booking.HandleAllBookings},
		{view.CallbackStatusConfirm, admin.HandleConfirm},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			got, ok := resolve(tt.data)
			require.True(t, ok)
			assert.True(t, sameFunc(got, tt.want))
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	_, ok := resolve("something_else")
	assert.False(t, ok)

	_, ok = resolve("booking")
	assert.False(t, ok)
}
