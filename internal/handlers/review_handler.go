// internal/handlers/review_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"go_4_vocab_sync/internal/middleware"
	"go_4_vocab_sync/internal/model"
	"go_4_vocab_sync/internal/service"
	"go_4_vocab_sync/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type ReviewHandler struct {
	service      service.ReviewService
	statsService service.StatisticsService
	reviewLimit  int
}

func NewReviewHandler(s service.ReviewService, stats service.StatisticsService, reviewLimit int) *ReviewHandler {
	return &ReviewHandler{
		service:      s,
		statsService: stats,
		reviewLimit:  reviewLimit,
	}
}

// SubmitReviewResult は1単語の復習結果（正解/不正解）を登録します
// 成功時はその日の学習実績も記録する（失敗してもレスポンスには影響させない）
func (h *ReviewHandler) SubmitReviewResult(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	wordIDStr := chi.URLParam(r, "word_id")
	wordID, err := strconv.ParseInt(wordIDStr, 10, 64)
	if err != nil || wordID <= 0 {
		logger.Warn("Invalid word ID in path", "word_id", wordIDStr)
		appErr := model.NewAppError("INVALID_REQUEST", "単語IDの形式が正しくありません。", "word_id", model.ErrInvalidInput)
		webutil.HandleError(w, appErr)
		return
	}

	var req model.SubmitReviewRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed for review result", "errors", validationErrors.Error())
			webutil.HandleError(w, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			logger.Error("Unexpected error during validation for review result", "error", err)
			webutil.HandleError(w, err)
		}
		return
	}

	result, err := h.service.SubmitReview(r.Context(), userID, wordID, &req)
	if err != nil {
		logger.Error("Submitting review result failed in service", "error", err, "word_id", wordID)
		webutil.HandleError(w, err)
		return
	}

	// 日次学習記録の更新。本体の結果は確定済みなので失敗はログのみ
	today := time.Now().Format(model.LearnDateLayout)
	newCount, reviewCount := 0, 1
	if result.FirstLearn {
		newCount, reviewCount = 1, 0
	}
	if _, recErr := h.statsService.RecordDailyLearning(r.Context(), userID, today, newCount, reviewCount); recErr != nil {
		logger.Warn("Failed to record daily learning after review", "error", recErr)
	}

	webutil.RespondWithJSON(w, http.StatusOK, result.Progress)
}

// GetDueReviews は復習期限が到来している単語の進捗一覧を返します
func (h *ReviewHandler) GetDueReviews(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	listID, err := parseListIDQuery(r)
	if err != nil {
		logger.Warn("Invalid list_id query parameter")
		webutil.HandleError(w, err)
		return
	}

	progresses, err := h.service.GetDueReviews(r.Context(), userID, listID, h.reviewLimit)
	if err != nil {
		logger.Error("Getting due reviews failed in service", "error", err)
		webutil.HandleError(w, err)
		return
	}

	if progresses == nil {
		progresses = []*model.WordProgress{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, progresses)
}

// GetWrongWords は間違えたことのある単語を間違い回数の多い順に返します
func (h *ReviewHandler) GetWrongWords(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	listID, err := parseListIDQuery(r)
	if err != nil {
		logger.Warn("Invalid list_id query parameter")
		webutil.HandleError(w, err)
		return
	}

	progresses, err := h.service.GetWrongWords(r.Context(), userID, listID, h.reviewLimit)
	if err != nil {
		logger.Error("Getting wrong words failed in service", "error", err)
		webutil.HandleError(w, err)
		return
	}

	if progresses == nil {
		progresses = []*model.WordProgress{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, progresses)
}

// GetListSummary は単語帳単位の進捗サマリを返します
func (h *ReviewHandler) GetListSummary(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	listIDStr := chi.URLParam(r, "list_id")
	listID, err := strconv.ParseInt(listIDStr, 10, 64)
	if err != nil || listID <= 0 {
		logger.Warn("Invalid list ID in path", "list_id", listIDStr)
		appErr := model.NewAppError("INVALID_REQUEST", "単語帳IDの形式が正しくありません。", "list_id", model.ErrInvalidInput)
		webutil.HandleError(w, appErr)
		return
	}

	summary, err := h.service.GetListSummary(r.Context(), userID, listID)
	if err != nil {
		logger.Error("Getting list summary failed in service", "error", err, "list_id", listID)
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, summary)
}

// parseListIDQuery は必須の list_id クエリパラメータを取り出します
func parseListIDQuery(r *http.Request) (int64, error) {
	listIDStr := r.URL.Query().Get("list_id")
	if listIDStr == "" {
		return 0, model.NewAppError("INVALID_REQUEST", "単語帳IDが指定されていません。", "list_id", model.ErrInvalidInput)
	}
	listID, err := strconv.ParseInt(listIDStr, 10, 64)
	if err != nil || listID <= 0 {
		return 0, model.NewAppError("INVALID_REQUEST", "単語帳IDの形式が正しくありません。", "list_id", model.ErrInvalidInput)
	}
	return listID, nil
}
