package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Freeeeeet/easestay_bot/internal/model"
)

type CreateBookingRequest struct {
	RoomID   string     `json:"room_id"`
	CheckIn  model.Date `json:"checkin_date"`
	CheckOut model.Date `json:"checkout_date"`
	Guests   int        `json:"guests"`
	Rooms    int        `json:"rooms"`
}

type PaymentRequest struct {
	BookingID     string  `json:"booking_id"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
}

type bookingResponse struct {
	Message string        `json:"message"`
	Booking model.Booking `json:"booking"`
}

type bookingsResponse struct {
	Bookings []model.Booking `json:"bookings"`
	Count    int             `json:"count"`
}

type paymentResponse struct {
	Message string        `json:"message"`
	Payment model.Payment `json:"payment"`
}

// CreateBooking создаёт бронь в статусе pending.
// Отказ сервера (4xx) возвращается как ошибка вида booking.
func (c *Client) CreateBooking(ctx context.Context, token string, req CreateBookingRequest) (*model.Booking, error) {
	if req.Rooms == 0 {
		req.Rooms = 1
	}

	var out bookingResponse
	if err := c.call(ctx, "/book", "/book", http.MethodPost, req, true, token, &out); err != nil {
		return nil, rekind(err, KindBooking)
	}
	return &out.Booking, nil
}

// Pay оплачивает бронь. Отказ сервера (4xx) возвращается как ошибка вида payment.
func (c *Client) Pay(ctx context.Context, token string, req PaymentRequest) (*model.Payment, error) {
	if req.PaymentMethod == "" {
		req.PaymentMethod = model.PaymentMethodCard
	}

	var out paymentResponse
	if err := c.call(ctx, "/payment", "/payment", http.MethodPost, req, true, token, &out); err != nil {
		return nil, rekind(err, KindPayment)
	}
	return &out.Payment, nil
}

// ListBookings возвращает брони текущего пользователя
func (c *Client) ListBookings(ctx context.Context, token string) ([]model.Booking, error) {
	var out bookingsResponse
	if err := c.call(ctx, "/bookings", "/bookings", http.MethodGet, nil, true, token, &out); err != nil {
		return nil, err
	}
	return out.Bookings, nil
}

// ListAllBookings возвращает все брони (администратор, персонал)
func (c *Client) ListAllBookings(ctx context.Context, token string) ([]model.Booking, error) {
	var out bookingsResponse
	if err := c.call(ctx, "/bookings/all", "/bookings/all", http.MethodGet, nil, true, token, &out); err != nil {
		return nil, err
	}
	return out.Bookings, nil
}

// DeleteBooking удаляет неоплаченную бронь
func (c *Client) DeleteBooking(ctx context.Context, token, bookingID string) error {
	return c.call(ctx, "/booking/{id}", "/booking/"+url.PathEscape(bookingID), http.MethodDelete, nil, true, token, nil)
}
