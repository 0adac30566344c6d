package formatting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/easestay_bot/internal/model"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{2500, "₹2 500"},
		{1234567, "₹1 234 567"},
		{99.5, "₹99.50"},
		{-1500, "-₹1 500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.amount))
	}
	assert.Equal(t, "₹3 000 / ночь", FormatPricePerNight(3000))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "ночь", PluralizeNights(1))
	assert.Equal(t, "ночи", PluralizeNights(3))
	assert.Equal(t, "ночей", PluralizeNights(11))
	assert.Equal(t, "ночь", PluralizeNights(21))
	assert.Equal(t, "гостя", PluralizeGuests(2))
	assert.Equal(t, "номеров", PluralizeRooms(0))
	assert.Equal(t, "брони", PluralizeBookings(24))
}

func TestFormatStay(t *testing.T) {
	in, err := model.ParseDate("2026-10-20")
	assert.NoError(t, err)
	out, err := model.ParseDate("2026-10-23")
	assert.NoError(t, err)

	assert.Equal(t, "20.10.2026 → 23.10.2026 (3 ночи)", FormatStay(in, out))
	assert.Equal(t, "—", FormatDate(model.Date{}))
}

func TestStatusDisplays(t *testing.T) {
	assert.Equal(t, "🟢 Свободен", GetRoomStatusDisplay(model.RoomStatusAvailable).String())
	assert.Equal(t, unknownStatus, GetRoomStatusDisplay("broken"))
	assert.Equal(t, "⏳", GetBookingStatusDisplay(model.BookingStatusPending).Emoji)
	assert.Equal(t, "★★★☆☆", Stars(3))
	assert.Equal(t, "★★★★★", Stars(9))
}
