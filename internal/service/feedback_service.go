package service

import (
	"context"
	"strings"

	"github.com/Freeeeeet/easestay_bot/internal/apiclient"
	"github.com/Freeeeeet/easestay_bot/internal/model"
	"go.uber.org/zap"
)

type FeedbackForm struct {
	Rating    int    `validate:"min=1,max=5"`
	Comment   string `validate:"required,max=1000"`
	BookingID string
}

type FeedbackService struct {
	api    FeedbackAPI
	logger *zap.Logger
}

func NewFeedbackService(api FeedbackAPI, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{api: api, logger: logger}
}

// Submit отправляет отзыв, проверка оценки и текста локальная
func (s *FeedbackService) Submit(ctx context.Context, session *model.Session, form FeedbackForm) (*model.Feedback, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	form.Comment = strings.TrimSpace(form.Comment)
	if err := validateForm(form); err != nil {
		return nil, err
	}

	feedback, err := s.api.SubmitFeedback(ctx, session.Token, apiclient.FeedbackRequest{
		Rating:    form.Rating,
		Comment:   form.Comment,
		BookingID: form.BookingID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Feedback submitted",
		zap.String("user_id", session.UserID),
		zap.Int("rating", form.Rating))

	return feedback, nil
}

// Recent возвращает последние отзывы
func (s *FeedbackService) Recent(ctx context.Context) ([]model.Feedback, error) {
	return s.api.ListFeedback(ctx)
}
