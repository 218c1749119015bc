// internal/handlers/sync_handler.go
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

type SyncHandler struct {
	service service.SyncService
}

func NewSyncHandler(s service.SyncService) *SyncHandler {
	return &SyncHandler{service: s}
}

// SyncProgress は学習進捗のバッチ同期を受け付けます
// 全件が1トランザクションで処理され、部分的な成功はない
func (h *SyncHandler) SyncProgress(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	var req model.SyncProgressRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed for progress sync", "errors", validationErrors.Error())
			webutil.HandleError(w, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			logger.Error("Unexpected error during validation for progress sync", "error", err)
			webutil.HandleError(w, err)
		}
		return
	}

	result, err := h.service.SyncProgress(r.Context(), userID, req.Progress)
	if err != nil {
		logger.Error("Progress sync failed in service", "error", err)
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, result)
}

// GetProgress は学習進捗のダウンロードを提供します
// list_id と since (RFC3339) はどちらも任意の絞り込み条件
func (h *SyncHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	listID, err := parseOptionalListIDQuery(r)
	if err != nil {
		logger.Warn("Invalid list_id query parameter")
		webutil.HandleError(w, err)
		return
	}

	var since *time.Time
	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		parsed, parseErr := time.Parse(time.RFC3339, sinceStr)
		if parseErr != nil {
			logger.Warn("Invalid since query parameter", "since", sinceStr)
			appErr := model.NewAppError("INVALID_REQUEST", "sinceはRFC3339形式で指定してください。", "since", model.ErrInvalidInput)
			webutil.HandleError(w, appErr)
			return
		}
		since = &parsed
	}

	progresses, err := h.service.GetProgress(r.Context(), userID, listID, since)
	if err != nil {
		logger.Error("Getting progress failed in service", "error", err)
		webutil.HandleError(w, err)
		return
	}

	if progresses == nil {
		progresses = []*model.WordProgress{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, progresses)
}

// SyncExclusions は排除単語マーカーのバッチ同期を受け付けます
func (h *SyncHandler) SyncExclusions(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	var req model.SyncExclusionsRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed for exclusion sync", "errors", validationErrors.Error())
			webutil.HandleError(w, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			logger.Error("Unexpected error during validation for exclusion sync", "error", err)
			webutil.HandleError(w, err)
		}
		return
	}

	result, err := h.service.SyncExclusions(r.Context(), userID, req.Exclusions)
	if err != nil {
		logger.Error("Exclusion sync failed in service", "error", err)
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, result)
}

// GetExclusions は排除単語マーカーのダウンロードを提供します
func (h *SyncHandler) GetExclusions(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	listID, err := parseOptionalListIDQuery(r)
	if err != nil {
		logger.Warn("Invalid list_id query parameter")
		webutil.HandleError(w, err)
		return
	}

	exclusions, err := h.service.GetExclusions(r.Context(), userID, listID)
	if err != nil {
		logger.Error("Getting exclusions failed in service", "error", err)
		webutil.HandleError(w, err)
		return
	}

	if exclusions == nil {
		exclusions = []*model.WordExclusion{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, exclusions)
}

// RestoreExclusion は排除マーカーを削除して単語を復元します
func (h *SyncHandler) RestoreExclusion(w http.ResponseWriter, r *http.Request) {
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

	wordIDStr := chi.URLParam(r, "word_id")
	wordID, err := strconv.ParseInt(wordIDStr, 10, 64)
	if err != nil || wordID <= 0 {
		logger.Warn("Invalid word ID in path", "word_id", wordIDStr)
		appErr := model.NewAppError("INVALID_REQUEST", "単語IDの形式が正しくありません。", "word_id", model.ErrInvalidInput)
		webutil.HandleError(w, appErr)
		return
	}

	if err := h.service.RestoreExclusion(r.Context(), userID, wordID, listID); err != nil {
		logger.Error("Restoring exclusion failed in service", "error", err, "word_id", wordID, "list_id", listID)
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseOptionalListIDQuery は任意の list_id クエリパラメータを取り出します
// 未指定なら nil を返す
func parseOptionalListIDQuery(r *http.Request) (*int64, error) {
	listIDStr := r.URL.Query().Get("list_id")
	if listIDStr == "" {
		return nil, nil
	}
	listID, err := strconv.ParseInt(listIDStr, 10, 64)
	if err != nil || listID <= 0 {
		return nil, model.NewAppError("INVALID_REQUEST", "単語帳IDの形式が正しくありません。", "list_id", model.ErrInvalidInput)
	}
	return &listID, nil
}
