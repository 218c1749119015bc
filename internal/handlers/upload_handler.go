// internal/handlers/upload_handler.go
package handlers

import (
	"errors"
	"net/http"

	"go_4_vocab_sync/internal/middleware"
	"go_4_vocab_sync/internal/model"
	"go_4_vocab_sync/internal/service"
	"go_4_vocab_sync/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type UploadHandler struct {
	signer service.ObjectStorageSigner
}

func NewUploadHandler(signer service.ObjectStorageSigner) *UploadHandler {
	return &UploadHandler{signer: signer}
}

// SignUpload はクライアント直接アップロード用の署名付きURLを発行します
func (h *UploadHandler) SignUpload(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	var req model.SignUploadRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed for upload signing", "errors", validationErrors.Error())
			webutil.HandleError(w, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			logger.Error("Unexpected error during validation for upload signing", "error", err)
			webutil.HandleError(w, err)
		}
		return
	}

	signature, err := h.signer.SignUpload(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Signing upload failed", "error", err)
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, signature)
}
