package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-10-20")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2026, time.October, 20), d)

	d, err = ParseDate("20.10.2026")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-20", d.String())

	_, err = ParseDate("20/10/2026")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestStayDatesValidate(t *testing.T) {
	in := NewDate(2026, time.October, 20)

	t.Run("missing dates", func(t *testing.T) {
		err := StayDates{CheckIn: in, Guests: 2}.Validate()
		assert.ErrorIs(t, err, ErrDatesRequired)
	})

	t.Run("same day", func(t *testing.T) {
		err := StayDates{CheckIn: in, CheckOut: in, Guests: 2}.Validate()
		assert.ErrorIs(t, err, ErrCheckoutNotAfter)
	})

	t.Run("checkout before checkin", func(t *testing.T) {
		err := StayDates{CheckIn: in, CheckOut: in.AddDays(-1), Guests: 2}.Validate()
		assert.ErrorIs(t, err, ErrCheckoutNotAfter)
	})

	t.Run("no guests", func(t *testing.T) {
		err := StayDates{CheckIn: in, CheckOut: in.AddDays(1)}.Validate()
		assert.ErrorIs(t, err, ErrInvalidGuests)
	})

	t.Run("ok", func(t *testing.T) {
		s := StayDates{CheckIn: in, CheckOut: in.AddDays(3), Guests: 1}
		assert.NoError(t, s.Validate())
		assert.Equal(t, 3, s.Nights())
	})
}

func TestParseStayDates(t *testing.T) {
	s, err := ParseStayDates("2026-10-20 2026-10-23")
	require.NoError(t, err)
	assert.Equal(t, DefaultGuests, s.Guests)
	assert.Equal(t, 3, s.Nights())

	s, err = ParseStayDates("20.10.2026 - 22.10.2026, 4")
	require.NoError(t, err)
	assert.Equal(t, 4, s.Guests)
	assert.Equal(t, "2026-10-22", s.CheckOut.String())

	_, err = ParseStayDates("2026-10-20")
	assert.ErrorIs(t, err, ErrUnexpectedDateInput)

	_, err = ParseStayDates("2026-10-20 2026-10-23 two")
	assert.ErrorIs(t, err, ErrInvalidGuests)
}

func TestBookingDatesJSON(t *testing.T) {
	raw := `{"_id":"b1","checkin_date":"2026-10-20T00:00:00.000Z","checkout_date":"2026-10-22","total_price":300}`

	var b Booking
	require.NoError(t, json.Unmarshal([]byte(raw), &b))
	assert.Equal(t, 2, b.Nights())
	assert.Equal(t, "Номер", b.DisplayRoomName())

	out, err := json.Marshal(struct {
		CheckIn Date `json:"checkin_date"`
	}{b.CheckIn})
	require.NoError(t, err)
	assert.JSONEq(t, `{"checkin_date":"2026-10-20"}`, string(out))
}

func TestFeedbackTimestamp(t *testing.T) {
	var f Feedback
	raw := `{"_id":"f1","rating":5,"comment":"ok","created_at":"Fri, 16 Oct 2026 10:00:00 GMT"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &f))
	assert.Equal(t, 2026, f.CreatedAt.Year())
	assert.Equal(t, 10, f.CreatedAt.Hour())

	raw = `{"created_at":"2026-10-16T10:00:00Z"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &f))
	assert.Equal(t, time.October, f.CreatedAt.Month())
}
