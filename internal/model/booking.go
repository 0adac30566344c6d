package model

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"   // Создана, ждёт оплаты
	BookingStatusConfirmed BookingStatus = "confirmed" // Оплачена
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// UserDetails заполняется сервером в списке всех бронирований
type UserDetails struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// RoomDetails заполняется сервером в списках бронирований
type RoomDetails struct {
	Name       string `json:"name"`
	Image      string `json:"image"`
	RoomNumber string `json:"roomNumber"`
}

type Booking struct {
	ID            string        `json:"_id"`
	UserID        string        `json:"user_id"`
	RoomID        string        `json:"room_id"`
	RoomName      string        `json:"room_name"`
	RoomNumber    string        `json:"room_number"`
	CheckIn       Date          `json:"checkin_date"`
	CheckOut      Date          `json:"checkout_date"`
	Guests        int           `json:"guests"`
	Rooms         int           `json:"rooms"`
	PricePerNight float64       `json:"price_per_night"`
	TotalPrice    float64       `json:"total_price"`
	Status        BookingStatus `json:"status"`
	PaymentStatus string        `json:"payment_status"`
	CreatedAt     Timestamp     `json:"created_at"`

	// Дополнительные поля для списков (не всегда присутствуют)
	UserDetails *UserDetails `json:"user_details,omitempty"`
	RoomDetails *RoomDetails `json:"room_details,omitempty"`
}

// Nights возвращает количество ночей бронирования
func (b *Booking) Nights() int {
	if b.CheckIn.IsZero() || b.CheckOut.IsZero() {
		return 0
	}
	return DaysBetween(b.CheckIn, b.CheckOut)
}

// DisplayRoomName возвращает название номера с запасными вариантами
func (b *Booking) DisplayRoomName() string {
	if b.RoomName != "" {
		return b.RoomName
	}
	if b.RoomDetails != nil && b.RoomDetails.Name != "" {
		return b.RoomDetails.Name
	}
	return "Номер"
}

// DisplayRoomNumber возвращает номер комнаты с запасными вариантами
func (b *Booking) DisplayRoomNumber() string {
	if b.RoomNumber != "" {
		return b.RoomNumber
	}
	if b.RoomDetails != nil {
		return b.RoomDetails.RoomNumber
	}
	return ""
}

// DisplayGuestName возвращает имя гостя для списка администратора
func (b *Booking) DisplayGuestName() string {
	if b.UserDetails != nil {
		if b.UserDetails.FirstName != "" && b.UserDetails.LastName != "" {
			return b.UserDetails.FirstName + " " + b.UserDetails.LastName
		}
		if b.UserDetails.Email != "" {
			return b.UserDetails.Email
		}
	}
	return ShortID(b.UserID)
}

// IsDeletable - гость может удалить только неоплаченную бронь
func (b *Booking) IsDeletable() bool {
	return b.Status == BookingStatusPending
}

// ShortID сокращает идентификатор для отображения
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "…"
}

// Payment - результат оплаты
type Payment struct {
	BookingID     string  `json:"booking_id"`
	UserID        string  `json:"user_id"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	Status        string  `json:"status"`
}

const PaymentMethodCard = "card"
