package feedback

import (
	"context"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/view"
)

// HandleFeedback начинает отзыв: выбор оценки
func HandleFeedback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		common.ShowOrLog(hc, hc.ShowScreen(view.FeedbackRatingPrompt()), "feedback_rating")
		hc.Answer("")
	})
}

// HandleFeedbackRate запоминает оценку и просит текст
func HandleFeedbackRate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		arg, err := common.ParseArg(callback.Data, view.CallbackFeedbackRate)
		if err != nil {
			common.HandleError(hc, err, "feedback_rate")
			return
		}
		rating, err := strconv.Atoi(arg)
		if err != nil || rating < model.FeedbackMinRating || rating > model.FeedbackMaxRating {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		hc.SetState(callbacktypes.StateFeedbackComment)
		hc.SetData(callbacktypes.DataRating, rating)

		h.Logger.Debug("Feedback rating selected",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Int("rating", rating))

		common.ShowOrLog(hc, hc.ShowScreen(view.FeedbackCommentPrompt(rating)), "feedback_comment")
		hc.Answer("")
	})
}

// HandleFeedbackList показывает последние отзывы
func HandleFeedbackList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	items, err := h.FeedbackService.Recent(ctx)
	if err != nil {
		h.Logger.Warn("Failed to load feedback", zap.Error(err))
	}

	common.ShowOrLog(hc, hc.ShowScreen(view.FeedbackList(view.SectionOf(items, err))), "feedback_list")
	hc.Answer("")
}
