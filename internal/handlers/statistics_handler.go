// internal/handlers/statistics_handler.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"go_4_vocab_sync/internal/middleware"
	"go_4_vocab_sync/internal/model"
	"go_4_vocab_sync/internal/service"
	"go_4_vocab_sync/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type StatisticsHandler struct {
	service service.StatisticsService
}

func NewStatisticsHandler(s service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{service: s}
}

// GetStatistics はユーザーの学習統計と直近30日分の日次記録を返します
func (h *StatisticsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	stats, err := h.service.GetStatistics(r.Context(), userID)
	if err != nil {
		logger.Error("Getting statistics failed in service", "error", err)
		webutil.HandleError(w, err)
		return
	}

	if stats.DailyRecords == nil {
		stats.DailyRecords = []*model.DailyLearningRecord{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, stats)
}

// UpdateStatistics はクライアントからの統計アップロードを受け付けます
func (h *StatisticsHandler) UpdateStatistics(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	var req model.UpdateStatisticsRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed for statistics upload", "errors", validationErrors.Error())
			webutil.HandleError(w, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			logger.Error("Unexpected error during validation for statistics upload", "error", err)
			webutil.HandleError(w, err)
		}
		return
	}

	merged, err := h.service.UpdateStatistics(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Updating statistics failed in service", "error", err)
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, merged)
}

// RecordDailyLearning は1日分の学習実績を記録します
// learn_date 省略時はサーバーの当日として扱う
func (h *StatisticsHandler) RecordDailyLearning(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	var req model.RecordDailyLearningRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed for daily learning record", "errors", validationErrors.Error())
			webutil.HandleError(w, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			logger.Error("Unexpected error during validation for daily learning record", "error", err)
			webutil.HandleError(w, err)
		}
		return
	}

	learnDate := time.Now().Format(model.LearnDateLayout)
	if req.LearnDate != nil {
		learnDate = *req.LearnDate
	}

	stats, err := h.service.RecordDailyLearning(r.Context(), userID, learnDate, req.NewWordsCount, req.ReviewWordsCount)
	if err != nil {
		logger.Error("Recording daily learning failed in service", "error", err)
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, stats)
}

// CheckContinuousDays は連続学習日数の途切れ確認を行います
func (h *StatisticsHandler) CheckContinuousDays(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	stats, err := h.service.CheckContinuousDays(r.Context(), userID)
	if err != nil {
		logger.Error("Checking continuous days failed in service", "error", err)
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, stats)
}
