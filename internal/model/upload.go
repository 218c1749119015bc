// internal/model/upload.go
package model

// SignUploadRequest はアップロード署名リクエストのDTO
type SignUploadRequest struct {
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
}

// UploadSignature は署名済みアップロード先の情報
// クライアントはこのURLへ直接PUTする
type UploadSignature struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
	ExpiresIn int    `json:"expires_in"` // 秒
}
