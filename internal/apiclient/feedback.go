package apiclient

import (
	"context"
	"net/http"

	"github.com/Freeeeeet/easestay_bot/internal/model"
)

type FeedbackRequest struct {
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	BookingID string `json:"booking_id,omitempty"`
}

type feedbackResponse struct {
	Message  string         `json:"message"`
	Feedback model.Feedback `json:"feedback"`
}

type feedbackListResponse struct {
	Feedback []model.Feedback `json:"feedback"`
	Count    int              `json:"count"`
}

func (c *Client) SubmitFeedback(ctx context.Context, token string, req FeedbackRequest) (*model.Feedback, error) {
	var out feedbackResponse
	if err := c.call(ctx, "/feedback", "/feedback", http.MethodPost, req, true, token, &out); err != nil {
		return nil, err
	}
	return &out.Feedback, nil
}

// ListFeedback возвращает последние отзывы, новые первыми
func (c *Client) ListFeedback(ctx context.Context) ([]model.Feedback, error) {
	var out feedbackListResponse
	if err := c.call(ctx, "/feedback", "/feedback", http.MethodGet, nil, false, "", &out); err != nil {
		return nil, err
	}
	return out.Feedback, nil
}
