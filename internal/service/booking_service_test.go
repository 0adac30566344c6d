package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/easestay_bot/internal/apiclient"
	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type bookingFixture struct {
	api       *fakeAPI
	cache     *RoomCache
	svc       *BookingService
	bg        *Background
	publisher *recordingPublisher
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	rooms := scenarioRooms()
	api := &fakeAPI{
		rooms:      rooms,
		available:  []model.Room{rooms[0], rooms[1]},
		createResp: &model.Booking{ID: "b1", TotalPrice: 300, Status: model.BookingStatusPending},
		bookings:   []model.Booking{{ID: "b1", Status: model.BookingStatusConfirmed}},
	}
	cache := NewRoomCache(api, nil, zap.NewNop())
	_, err := cache.Refresh(context.Background())
	require.NoError(t, err)

	bg := NewBackground(time.Second, zap.NewNop())
	pub := &recordingPublisher{}
	svc := NewBookingService(api, cache, pub, bg, nil, zap.NewNop())

	return &bookingFixture{api: api, cache: cache, svc: svc, bg: bg, publisher: pub}
}

func stay(nights int) model.StayDates {
	in := model.NewDate(2026, time.November, 10)
	return model.StayDates{CheckIn: in, CheckOut: in.AddDays(nights), Guests: 2}
}

func TestBookingFlowHappyPath(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	session := guestSession()
	refreshesBefore := f.api.count(&f.api.listRoomsCalls)

	rooms, err := f.svc.CheckAvailability(ctx, 1, session, stay(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, roomIDs(rooms), "rooms waiting for cleaning are not offered")

	_, err = f.svc.SelectRoom(1, session, "1")
	require.NoError(t, err)

	booking, err := f.svc.ConfirmBooking(ctx, 1, session)
	require.NoError(t, err)
	assert.Equal(t, "b1", booking.ID)
	assert.Equal(t, refreshesBefore+1, f.api.count(&f.api.listRoomsCalls))

	attempt, ok := f.svc.Current(1)
	require.True(t, ok)
	assert.Equal(t, StageAwaitingPayment, attempt.Stage)

	result, err := f.svc.Pay(ctx, 1, session)
	require.NoError(t, err)
	f.bg.Wait()

	assert.Equal(t, refreshesBefore+2, f.api.count(&f.api.listRoomsCalls))
	assert.Equal(t, model.BookingStatusConfirmed, result.Booking.Status)
	assert.Len(t, result.Bookings, 1)
	assert.Equal(t, 1, f.api.listBookingsCalls)
	assert.Equal(t, 1, f.api.count(&f.api.payCalls))

	_, ok = f.svc.Current(1)
	assert.False(t, ok, "in-flight booking is cleared after payment")

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "b1", f.publisher.events[0].BookingID)
	assert.Equal(t, 1, f.api.count(&f.api.prefsCalls))
}

func TestBookingDoubleTap(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	session := guestSession()

	_, err := f.svc.CheckAvailability(ctx, 1, session, stay(2))
	require.NoError(t, err)
	_, err = f.svc.SelectRoom(1, session, "1")
	require.NoError(t, err)

	f.api.bookingBlock = make(chan struct{})
	f.api.bookingEntered = make(chan struct{}, 1)

	created := make(chan error, 1)
	go func() {
		_, err := f.svc.ConfirmBooking(ctx, 1, session)
		created <- err
	}()
	<-f.api.bookingEntered

	_, err = f.svc.ConfirmBooking(ctx, 1, session)
	assert.ErrorIs(t, err, ErrBookingInProgress)
	_, err = f.svc.SelectRoom(1, session, "1")
	assert.ErrorIs(t, err, ErrBookingInProgress)

	f.api.bookingBlock <- struct{}{}
	require.NoError(t, <-created)
	assert.Equal(t, 1, f.api.count(&f.api.createCalls))

	attempt, ok := f.svc.Current(1)
	require.True(t, ok)
	assert.Equal(t, StageAwaitingPayment, attempt.Stage)
	assert.False(t, attempt.InFlight)

	paid := make(chan error, 1)
	go func() {
		_, err := f.svc.Pay(ctx, 1, session)
		paid <- err
	}()
	<-f.api.bookingEntered

	_, err = f.svc.Pay(ctx, 1, session)
	assert.ErrorIs(t, err, ErrBookingInProgress)

	close(f.api.bookingBlock)
	require.NoError(t, <-paid)
	f.bg.Wait()

	assert.Equal(t, 1, f.api.count(&f.api.payCalls))
	require.Len(t, f.publisher.events, 1)
}

func TestBookingFailureClearsInFlight(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	session := guestSession()
	f.api.createErr = apiclient.NewError(apiclient.KindBooking, "Room not available")

	_, err := f.svc.CheckAvailability(ctx, 1, session, stay(2))
	require.NoError(t, err)
	_, err = f.svc.SelectRoom(1, session, "1")
	require.NoError(t, err)

	_, err = f.svc.ConfirmBooking(ctx, 1, session)
	assert.Equal(t, apiclient.KindBooking, apiclient.KindOf(err))

	attempt, ok := f.svc.Current(1)
	require.True(t, ok)
	assert.Equal(t, StageSelectingDates, attempt.Stage)
	assert.False(t, attempt.InFlight)
}

func TestBookingDateValidation(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)

	for _, nights := range []int{0, -1, -5} {
		_, err := f.svc.CheckAvailability(ctx, 1, guestSession(), stay(nights))
		require.Error(t, err)
		assert.Equal(t, apiclient.KindValidation, apiclient.KindOf(err))
	}

	_, err := f.svc.CheckAvailability(ctx, 1, nil, model.StayDates{})
	assert.Equal(t, apiclient.KindValidation, apiclient.KindOf(err))

	assert.Equal(t, 0, f.api.availableCalls)

	attempt, ok := f.svc.Current(1)
	require.True(t, ok)
	assert.Equal(t, StageSelectingDates, attempt.Stage)
}

func TestBookingGuestsDefault(t *testing.T) {
	f := newBookingFixture(t)
	dates := stay(2)
	dates.Guests = 0

	_, err := f.svc.CheckAvailability(context.Background(), 1, nil, dates)
	require.NoError(t, err)

	attempt, _ := f.svc.Current(1)
	assert.Equal(t, model.DefaultGuests, attempt.Dates.Guests)
}

func TestBookingSelectRoomRules(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)

	_, err := f.svc.CheckAvailability(ctx, 1, nil, stay(2))
	require.NoError(t, err)

	t.Run("staff cannot book", func(t *testing.T) {
		_, err := f.svc.SelectRoom(1, staffSession(), "1")
		assert.Equal(t, apiclient.KindAuthorization, apiclient.KindOf(err))
	})

	t.Run("anonymous must log in", func(t *testing.T) {
		_, err := f.svc.SelectRoom(1, nil, "1")
		assert.Equal(t, apiclient.KindAuth, apiclient.KindOf(err))
	})

	t.Run("unknown room", func(t *testing.T) {
		_, err := f.svc.SelectRoom(1, guestSession(), "404")
		assert.Equal(t, apiclient.KindNotFound, apiclient.KindOf(err))
	})

	t.Run("occupied room", func(t *testing.T) {
		_, err := f.svc.SelectRoom(1, adminSession(), "3")
		assert.Equal(t, apiclient.KindBooking, apiclient.KindOf(err))
	})

	t.Run("admin can book", func(t *testing.T) {
		_, err := f.svc.SelectRoom(1, adminSession(), "1")
		assert.NoError(t, err)
	})
}

func TestBookingRejectedReturnsToDates(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	f.api.createErr = &apiclient.Error{Kind: apiclient.KindBooking, Status: 400, Message: "Room is already booked for these dates"}
	session := guestSession()

	_, err := f.svc.CheckAvailability(ctx, 1, session, stay(2))
	require.NoError(t, err)
	_, err = f.svc.SelectRoom(1, session, "1")
	require.NoError(t, err)

	refreshes := f.api.count(&f.api.listRoomsCalls)
	_, err = f.svc.ConfirmBooking(ctx, 1, session)

	assert.Equal(t, apiclient.KindBooking, apiclient.KindOf(err))
	assert.Equal(t, refreshes, f.api.count(&f.api.listRoomsCalls), "failed booking leaves cache untouched")

	attempt, ok := f.svc.Current(1)
	require.True(t, ok)
	assert.Equal(t, StageSelectingDates, attempt.Stage)
	assert.Nil(t, attempt.Booking)
}

func TestBookingPayWithoutBooking(t *testing.T) {
	f := newBookingFixture(t)
	_, err := f.svc.Pay(context.Background(), 1, guestSession())
	assert.ErrorIs(t, err, ErrNoActiveBooking)
	assert.Equal(t, 0, f.api.payCalls)
}

func TestBookingAbandon(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	session := guestSession()

	_, err := f.svc.CheckAvailability(ctx, 1, session, stay(2))
	require.NoError(t, err)
	_, err = f.svc.SelectRoom(1, session, "1")
	require.NoError(t, err)

	f.svc.Abandon(1)

	_, err = f.svc.ConfirmBooking(ctx, 1, session)
	assert.ErrorIs(t, err, ErrNoActiveBooking)
	assert.Equal(t, 0, f.api.createCalls)
}

func TestBookingLists(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	f.api.bookings = []model.Booking{
		{ID: "b1", Status: model.BookingStatusPending},
		{ID: "b2", Status: model.BookingStatusConfirmed},
	}

	booked, err := f.svc.ListBookedRooms(ctx, staffSession())
	require.NoError(t, err)
	require.Len(t, booked, 1)
	assert.Equal(t, "b2", booked[0].ID)

	_, err = f.svc.ListAll(ctx, guestSession())
	assert.Equal(t, apiclient.KindAuthorization, apiclient.KindOf(err))

	own, err := f.svc.ListOwn(ctx, guestSession())
	require.NoError(t, err)
	assert.Len(t, own, 2)

	refreshes := f.api.count(&f.api.listRoomsCalls)
	require.NoError(t, f.svc.Delete(ctx, 1, guestSession(), "b1"))
	assert.Equal(t, refreshes+1, f.api.count(&f.api.listRoomsCalls))

	err = f.svc.Delete(ctx, 1, staffSession(), "b1")
	assert.Equal(t, apiclient.KindAuthorization, apiclient.KindOf(err))
}
