package service

import (
	"context"
	"sync"

	"github.com/Freeeeeet/easestay_bot/internal/apiclient"
	"github.com/Freeeeeet/easestay_bot/internal/model"
)

// fakeAPI реализует все интерфейсы API, которые используют сервисы
type fakeAPI struct {
	mu sync.Mutex

	rooms          []model.Room
	listRoomsErr   error
	listRoomsCalls int

	available      []model.Room
	availableCalls int

	authResp      *apiclient.AuthResponse
	authErr       error
	loginCalls    int
	registerCalls int
	loginLogs     int
	loginLogErr   error

	prefsCalls int

	createResp  *model.Booking
	createErr   error
	createCalls int

	payErr   error
	payCalls int

	bookingBlock   chan struct{} // блокирует CreateBooking/Pay до закрытия
	bookingEntered chan struct{}

	bookings          []model.Booking
	listBookingsCalls int
	listAllCalls      int
	cleaningCalls     int
	deleteCalls       int

	statusCalls   int
	cleaningFlags int
	cleanedCalls  int
	statusErr     error
	statusBlock   chan struct{} // блокирует SetRoomStatus/FlagForCleaning до закрытия
	statusEntered chan struct{}

	feedbackCalls int
}

func (f *fakeAPI) ListRooms(context.Context) ([]model.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listRoomsCalls++
	if f.listRoomsErr != nil {
		return nil, f.listRoomsErr
	}
	return cloneRooms(f.rooms), nil
}

func (f *fakeAPI) CleaningQueue(context.Context, string) ([]model.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleaningCalls++
	return CleaningTasks(f.rooms), nil
}

func (f *fakeAPI) Login(context.Context, apiclient.LoginRequest) (*apiclient.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	return f.authResp, f.authErr
}

func (f *fakeAPI) Register(context.Context, apiclient.RegisterRequest) (*apiclient.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerCalls++
	return f.authResp, f.authErr
}

func (f *fakeAPI) LogLogin(context.Context, string, apiclient.LoginLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginLogs++
	return f.loginLogErr
}

func (f *fakeAPI) AvailableRooms(context.Context, model.Date, model.Date) ([]model.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.availableCalls++
	return cloneRooms(f.available), nil
}

func (f *fakeAPI) SavePreferences(context.Context, string, apiclient.Preferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefsCalls++
	return nil
}

func (f *fakeAPI) waitBooking() {
	if f.bookingEntered != nil {
		f.bookingEntered <- struct{}{}
	}
	if f.bookingBlock != nil {
		<-f.bookingBlock
	}
}

func (f *fakeAPI) CreateBooking(_ context.Context, _ string, req apiclient.CreateBookingRequest) (*model.Booking, error) {
	f.waitBooking()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	b := *f.createResp
	b.RoomID = req.RoomID
	return &b, nil
}

func (f *fakeAPI) Pay(_ context.Context, _ string, req apiclient.PaymentRequest) (*model.Payment, error) {
	f.waitBooking()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payCalls++
	if f.payErr != nil {
		return nil, f.payErr
	}
	return &model.Payment{BookingID: req.BookingID, Amount: req.Amount, PaymentMethod: req.PaymentMethod, Status: "completed"}, nil
}

func (f *fakeAPI) ListBookings(context.Context, string) ([]model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listBookingsCalls++
	return f.bookings, nil
}

func (f *fakeAPI) ListAllBookings(context.Context, string) ([]model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listAllCalls++
	return f.bookings, nil
}

func (f *fakeAPI) DeleteBooking(context.Context, string, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	return nil
}

func (f *fakeAPI) waitStatus() {
	if f.statusEntered != nil {
		f.statusEntered <- struct{}{}
	}
	if f.statusBlock != nil {
		<-f.statusBlock
	}
}

func (f *fakeAPI) SetRoomStatus(_ context.Context, _ string, roomID string, status model.RoomStatus) error {
	f.waitStatus()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.statusErr != nil {
		return f.statusErr
	}
	for i := range f.rooms {
		if f.rooms[i].ID == roomID {
			f.rooms[i].Status = status
		}
	}
	return nil
}

func (f *fakeAPI) FlagForCleaning(_ context.Context, _ string, roomID string) error {
	f.waitStatus()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleaningFlags++
	if f.statusErr != nil {
		return f.statusErr
	}
	for i := range f.rooms {
		if f.rooms[i].ID == roomID {
			f.rooms[i].NeedsCleaning = true
		}
	}
	return nil
}

func (f *fakeAPI) MarkCleaned(_ context.Context, _ string, roomID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleanedCalls++
	for i := range f.rooms {
		if f.rooms[i].ID == roomID {
			f.rooms[i].NeedsCleaning = false
		}
	}
	return nil
}

func (f *fakeAPI) SubmitFeedback(_ context.Context, _ string, req apiclient.FeedbackRequest) (*model.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feedbackCalls++
	return &model.Feedback{ID: "f1", Rating: req.Rating, Comment: req.Comment}, nil
}

func (f *fakeAPI) ListFeedback(context.Context) ([]model.Feedback, error) {
	return []model.Feedback{{ID: "f1", Rating: 5}}, nil
}

func (f *fakeAPI) count(field *int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *field
}

// memoryRepo - постоянный слот сессии в памяти
type memoryRepo struct {
	mu      sync.Mutex
	data    map[int64][]byte
	deletes int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{data: make(map[int64][]byte)}
}

func (r *memoryRepo) Save(_ context.Context, id int64, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[id] = append([]byte(nil), payload...)
	return nil
}

func (r *memoryRepo) Load(_ context.Context, id int64) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data[id], nil
}

func (r *memoryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes++
	delete(r.data, id)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []BookingConfirmedEvent
}

func (p *recordingPublisher) PublishBookingConfirmed(_ context.Context, e BookingConfirmedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func scenarioRooms() []model.Room {
	return []model.Room{
		{ID: "1", Name: "Deluxe", RoomNumber: "101", Status: model.RoomStatusAvailable, Price: 100},
		{ID: "2", Name: "Suite", RoomNumber: "102", Status: model.RoomStatusAvailable, NeedsCleaning: true, Price: 200},
		{ID: "3", Name: "Standard", RoomNumber: "103", Status: model.RoomStatusOccupied, Price: 80},
	}
}

func guestSession() *model.Session {
	return &model.Session{UserID: "u1", Email: "guest@example.com", Role: model.RoleGuest, Token: "tok-guest"}
}

func adminSession() *model.Session {
	return &model.Session{UserID: "a1", Email: "admin@example.com", Role: model.RoleAdmin, Token: "tok-admin"}
}

func staffSession() *model.Session {
	return &model.Session{UserID: "s1", Email: "staff@example.com", Role: model.RoleStaff, Token: "tok-staff"}
}
