package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Freeeeeet/easestay_bot/internal/model"
)

// HealthStatus - ответ /health
type HealthStatus struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Database string `json:"database"`
}

type roomsResponse struct {
	Rooms []model.Room `json:"rooms"`
	Count int          `json:"count"`
}

type roomStatusRequest struct {
	Status model.RoomStatus `json:"status"`
}

// Health проверяет доступность API
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.call(ctx, "/health", "/health", http.MethodGet, nil, false, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRooms возвращает все номера в порядке сервера
func (c *Client) ListRooms(ctx context.Context) ([]model.Room, error) {
	var out roomsResponse
	if err := c.call(ctx, "/rooms", "/rooms", http.MethodGet, nil, false, "", &out); err != nil {
		return nil, err
	}
	return out.Rooms, nil
}

// AvailableRooms возвращает номера, свободные на даты
func (c *Client) AvailableRooms(ctx context.Context, checkIn, checkOut model.Date) ([]model.Room, error) {
	query := url.Values{}
	query.Set("checkin", checkIn.String())
	query.Set("checkout", checkOut.String())

	var out roomsResponse
	err := c.call(ctx, "/rooms/available", "/rooms/available?"+query.Encode(), http.MethodGet, nil, false, "", &out)
	if err != nil {
		return nil, err
	}
	return out.Rooms, nil
}

// CleaningQueue возвращает номера, требующие уборки или на обслуживании
func (c *Client) CleaningQueue(ctx context.Context, token string) ([]model.Room, error) {
	var out roomsResponse
	if err := c.call(ctx, "/rooms/cleaning", "/rooms/cleaning", http.MethodGet, nil, true, token, &out); err != nil {
		return nil, err
	}
	return out.Rooms, nil
}

// SetRoomStatus меняет статус номера (администратор)
func (c *Client) SetRoomStatus(ctx context.Context, token, roomID string, status model.RoomStatus) error {
	return c.call(ctx, "/room/{id}/status", roomPath(roomID, "status"), http.MethodPut,
		roomStatusRequest{Status: status}, true, token, nil)
}

// FlagForCleaning помечает номер как требующий уборки
func (c *Client) FlagForCleaning(ctx context.Context, token, roomID string) error {
	return c.call(ctx, "/room/{id}/cleaning", roomPath(roomID, "cleaning"), http.MethodPut,
		struct{}{}, true, token, nil)
}

// MarkCleaned снимает пометку уборки (персонал)
func (c *Client) MarkCleaned(ctx context.Context, token, roomID string) error {
	return c.call(ctx, "/room/{id}/clean", roomPath(roomID, "clean"), http.MethodPut,
		struct{}{}, true, token, nil)
}

func roomPath(roomID, action string) string {
	return "/room/" + url.PathEscape(roomID) + "/" + action
}
