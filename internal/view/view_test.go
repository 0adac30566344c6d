package view

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/service"
)

func sampleRooms() []model.Room {
	return []model.Room{
		{ID: "r1", Name: "Deluxe", Type: "Deluxe", Price: 2500, Capacity: 2, RoomNumber: "101", Status: model.RoomStatusAvailable, Amenities: []string{"WiFi", "TV", "AC", "Minibar"}},
		{ID: "r2", Name: "Suite", Price: 5000, Capacity: 4, RoomNumber: "102", Status: model.RoomStatusAvailable, NeedsCleaning: true},
		{ID: "r3", Name: "Standard", Price: 1500, Capacity: 2, RoomNumber: "103", Status: model.RoomStatusOccupied},
	}
}

func callbacks(kb *models.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			out = append(out, btn.CallbackData)
		}
	}
	return out
}

func TestLanding_EmptyAndErrorStatesDiffer(t *testing.T) {
	empty := Landing(SectionOf[model.Room](nil, nil))
	failed := Landing(SectionOf[model.Room](nil, errors.New("boom")))

	assert.Contains(t, empty.Text, EmptyMarker)
	assert.NotContains(t, empty.Text, ErrorMarker)
	assert.Contains(t, failed.Text, ErrorMarker)
	assert.NotContains(t, failed.Text, EmptyMarker)

	loaded := Landing(SectionOf(sampleRooms()[:1], nil))
	assert.Contains(t, loaded.Text, "₹2 500")
	assert.Contains(t, callbacks(loaded.Keyboard), CallbackLogin)
}

func TestRoomsList_Pagination(t *testing.T) {
	var rooms []model.Room
	for i := 0; i < RoomsPageSize+2; i++ {
		rooms = append(rooms, model.Room{ID: string(rune('a' + i)), Name: "Room", Status: model.RoomStatusAvailable})
	}

	first := RoomsList(SectionOf(rooms, nil), 0)
	cbs := callbacks(first.Keyboard)
	assert.Contains(t, cbs, CallbackRoom+"a")
	assert.NotContains(t, cbs, CallbackRoom+string(rune('a'+RoomsPageSize)))
	assert.Contains(t, cbs, CallbackRoomsPage+"1")

	second := RoomsList(SectionOf(rooms, nil), 1)
	assert.Contains(t, callbacks(second.Keyboard), CallbackRoom+string(rune('a'+RoomsPageSize)))
}

func TestRoomDetails_BookOnlyWhenAvailable(t *testing.T) {
	rooms := sampleRooms()

	available := RoomDetails(rooms[0], true)
	assert.Contains(t, callbacks(available.Keyboard), CallbackBook)
	assert.Contains(t, available.Text, "Minibar")

	occupied := RoomDetails(rooms[2], true)
	assert.NotContains(t, callbacks(occupied.Keyboard), CallbackBook)

	anonymous := RoomDetails(rooms[0], false)
	assert.NotContains(t, callbacks(anonymous.Keyboard), CallbackBook)
}

func TestRoomCard_EscapesHTML(t *testing.T) {
	card := roomCard(model.Room{Name: "<b>Hack</b>", Status: model.RoomStatusAvailable})
	assert.Contains(t, card, "&lt;b&gt;Hack&lt;/b&gt;")
}

func TestAdminHome(t *testing.T) {
	rooms := sampleRooms()
	screen := AdminHome(AdminHomeData{
		Session:  &model.Session{DisplayName: "Admin", Role: model.RoleAdmin},
		Filter:   string(model.RoomStatusOccupied),
		Rooms:    SectionOf(service.ByStatus(rooms, string(model.RoomStatusOccupied)), nil),
		Stats:    service.Stats(rooms),
		Bookings: SectionOf[model.Booking](nil, errors.New("forbidden")),
	})

	assert.Contains(t, screen.Text, "Заполняемость: <b>33%</b>")
	assert.Contains(t, screen.Text, ErrorMarker)

	cbs := callbacks(screen.Keyboard)
	assert.Contains(t, cbs, CallbackAdminRoom+"r3")
	assert.NotContains(t, cbs, CallbackAdminRoom+"r1")

	var marked string
	for _, btn := range screen.Keyboard.InlineKeyboard[0] {
		if strings.HasPrefix(btn.Text, "• ") {
			marked = btn.CallbackData
		}
	}
	assert.Equal(t, CallbackAdminFilter+string(model.RoomStatusOccupied), marked)
}

func TestAdminRoom_OffersOtherStatuses(t *testing.T) {
	screen := AdminRoom(sampleRooms()[0])
	cbs := callbacks(screen.Keyboard)

	assert.Contains(t, cbs, CallbackAdminStatus+"r1:occupied")
	assert.Contains(t, cbs, CallbackAdminStatus+"r1:maintenance")
	assert.NotContains(t, cbs, CallbackAdminStatus+"r1:available")
	assert.Contains(t, cbs, CallbackAdminCleaning+"r1")

	flagged := AdminRoom(sampleRooms()[1])
	assert.NotContains(t, callbacks(flagged.Keyboard), CallbackAdminCleaning+"r2")
}

func TestStatusChangeScreens(t *testing.T) {
	change := model.PendingStatusChange{
		RoomID:        "r1",
		RoomName:      "Deluxe",
		RoomNumber:    "101",
		CurrentStatus: model.RoomStatusAvailable,
		Intent:        model.IntentStatus,
		NewStatus:     model.RoomStatusMaintenance,
	}

	confirm := StatusChangeConfirm(change)
	assert.Contains(t, confirm.Text, "🟢 Свободен → 🛠 На обслуживании")
	assert.Equal(t, []string{CallbackStatusConfirm, CallbackStatusCancel}, callbacks(confirm.Keyboard))

	applying := StatusChangeApplying(change)
	assert.Empty(t, callbacks(applying.Keyboard))
}

func TestBookingsList_DeleteOnlyPending(t *testing.T) {
	bookings := []model.Booking{
		{ID: "b1", RoomName: "Deluxe", Status: model.BookingStatusPending, TotalPrice: 5000},
		{ID: "b2", RoomName: "Suite", Status: model.BookingStatusConfirmed, TotalPrice: 9000},
	}
	screen := BookingsList(SectionOf(bookings, nil), 0, BookingsListOptions{
		Title:       "Мои брони",
		PagePrefix:  CallbackMyBookings,
		AllowDelete: true,
	})

	cbs := callbacks(screen.Keyboard)
	assert.Contains(t, cbs, CallbackDeleteBooking+"b1")
	assert.NotContains(t, cbs, CallbackDeleteBooking+"b2")
	assert.Contains(t, screen.Text, "₹9 000")

	empty := BookingsList(SectionOf[model.Booking](nil, nil), 0, BookingsListOptions{Title: "Брони", PagePrefix: CallbackMyBookings})
	assert.Contains(t, empty.Text, EmptyMarker)
}

func TestStaffHome(t *testing.T) {
	rooms := sampleRooms()
	screen := StaffHome(
		&model.Session{DisplayName: "Staff", Role: model.RoleStaff},
		SectionOf(service.CleaningTasks(rooms), nil),
		SectionOf[model.Booking](nil, errors.New("forbidden")),
	)

	assert.Contains(t, callbacks(screen.Keyboard), CallbackStaffClean+"r2")
	assert.NotContains(t, callbacks(screen.Keyboard), CallbackStaffClean+"r1")
	assert.Contains(t, screen.Text, ErrorMarker)
}

func TestAvailabilityResult(t *testing.T) {
	dates := model.StayDates{
		CheckIn:  model.NewDate(2026, time.October, 20),
		CheckOut: model.NewDate(2026, time.October, 22),
		Guests:   2,
	}

	screen := AvailabilityResult(dates, sampleRooms()[:1], 0)
	assert.Contains(t, callbacks(screen.Keyboard), CallbackBookRoom+"r1")
	assert.Contains(t, screen.Text, "2 ночи")

	none := AvailabilityResult(dates, nil, 0)
	assert.Contains(t, none.Text, EmptyMarker)
	assert.Contains(t, callbacks(none.Keyboard), CallbackAbandonBooking)
}

func TestRenderRoomBoard(t *testing.T) {
	png, err := RenderRoomBoard(sampleRooms(), time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	empty, err := RenderRoomBoard(nil, time.Time{})
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}
