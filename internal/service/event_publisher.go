package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Freeeeeet/easestay_bot/internal/model"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// BookingConfirmedQueue - очередь событий об оплаченных бронях
const BookingConfirmedQueue = "booking.confirmed"

type BookingConfirmedEvent struct {
	BookingID  string     `json:"booking_id"`
	UserID     string     `json:"user_id"`
	Email      string     `json:"email"`
	RoomID     string     `json:"room_id"`
	RoomNumber string     `json:"room_number"`
	CheckIn    model.Date `json:"checkin_date"`
	CheckOut   model.Date `json:"checkout_date"`
	TotalPrice float64    `json:"total_price"`
	PaidAt     time.Time  `json:"paid_at"`
}

// EventPublisher публикует доменные события
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error
}

// NopPublisher используется когда брокер не настроен
type NopPublisher struct{}

func (NopPublisher) PublishBookingConfirmed(context.Context, BookingConfirmedEvent) error {
	return nil
}

// AMQPPublisher публикует события в RabbitMQ, соединение на каждое событие
type AMQPPublisher struct {
	url    string
	logger *zap.Logger
}

func NewAMQPPublisher(url string, logger *zap.Logger) *AMQPPublisher {
	return &AMQPPublisher{url: url, logger: logger}
}

func (p *AMQPPublisher) PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Очередь durable
	if _, err := ch.QueueDeclare(BookingConfirmedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = ch.PublishWithContext(ctx, "", BookingConfirmedQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}

	p.logger.Debug("Booking event published", zap.String("booking_id", event.BookingID))
	return nil
}
