package service

import (
	"context"
	"strings"
	"testing"

	"github.com/Freeeeeet/easestay_bot/internal/apiclient"
	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFeedbackSubmit(t *testing.T) {
	ctx := context.Background()
	guest := &model.Session{UserID: "u1", Role: model.RoleGuest, Token: "tok"}

	t.Run("success", func(t *testing.T) {
		api := &fakeAPI{}
		svc := NewFeedbackService(api, zap.NewNop())

		fb, err := svc.Submit(ctx, guest, FeedbackForm{Rating: 5, Comment: "  Чисто и уютно  "})
		require.NoError(t, err)
		assert.Equal(t, 5, fb.Rating)
		assert.Equal(t, "Чисто и уютно", fb.Comment)
		assert.Equal(t, 1, api.count(&api.feedbackCalls))
	})

	t.Run("rating out of range is rejected locally", func(t *testing.T) {
		api := &fakeAPI{}
		svc := NewFeedbackService(api, zap.NewNop())

		_, err := svc.Submit(ctx, guest, FeedbackForm{Rating: 6, Comment: "ok"})
		require.Error(t, err)
		assert.True(t, apiclient.IsKind(err, apiclient.KindValidation))
		assert.Zero(t, api.count(&api.feedbackCalls))
	})

	t.Run("empty comment is rejected locally", func(t *testing.T) {
		api := &fakeAPI{}
		svc := NewFeedbackService(api, zap.NewNop())

		_, err := svc.Submit(ctx, guest, FeedbackForm{Rating: 4, Comment: "   "})
		require.Error(t, err)
		assert.True(t, apiclient.IsKind(err, apiclient.KindValidation))
	})

	t.Run("too long comment", func(t *testing.T) {
		svc := NewFeedbackService(&fakeAPI{}, zap.NewNop())

		_, err := svc.Submit(ctx, guest, FeedbackForm{Rating: 4, Comment: strings.Repeat("a", 1001)})
		assert.True(t, apiclient.IsKind(err, apiclient.KindValidation))
	})

	t.Run("requires session", func(t *testing.T) {
		svc := NewFeedbackService(&fakeAPI{}, zap.NewNop())

		_, err := svc.Submit(ctx, nil, FeedbackForm{Rating: 4, Comment: "ok"})
		assert.True(t, apiclient.IsKind(err, apiclient.KindAuth))
		assert.ErrorIs(t, err, ErrNoSession)
	})
}

func TestFeedbackRecent(t *testing.T) {
	svc := NewFeedbackService(&fakeAPI{}, zap.NewNop())

	items, err := svc.Recent(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
