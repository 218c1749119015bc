// internal/service/storage.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"go_4_vocab_sync/internal/config"
	"go_4_vocab_sync/internal/middleware"
	"go_4_vocab_sync/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ObjectStorageSigner はクライアント直接アップロード用の署名付きURLを発行する境界です
type ObjectStorageSigner interface {
	SignUpload(ctx context.Context, userID int64, req *model.SignUploadRequest) (*model.UploadSignature, error)
}

// --- S3Signer ---
type S3Signer struct {
	presigner *s3.PresignClient
	cfg       *config.StorageConfig
}

func NewS3Signer(cfg *config.Config) ObjectStorageSigner {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Storage.Region),
	)
	if err != nil {
		slog.Error("Failed to load AWS config for S3", "error", err)
		panic(err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Signer{
		presigner: s3.NewPresignClient(client),
		cfg:       &cfg.Storage,
	}
}

// SignUpload はPUT用の署名付きURLを発行します
// オブジェクトキーはユーザーID配下にUUIDで採番し、元のファイル名は拡張子のみ残す
func (s *S3Signer) SignUpload(ctx context.Context, userID int64, req *model.SignUploadRequest) (*model.UploadSignature, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	key := fmt.Sprintf("uploads/%d/%s%s", userID, uuid.New().String(), path.Ext(req.FileName))
	expiry := time.Duration(s.cfg.PresignExpiry) * time.Second

	presigned, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(req.ContentType),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		logger.Error("Failed to presign S3 upload", "error", err, "key", key)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "アップロードURLの発行に失敗しました。", "", model.ErrInternalServer)
	}

	logger.Info("Upload URL signed", "key", key, "expires_in", s.cfg.PresignExpiry)
	return &model.UploadSignature{
		UploadURL: presigned.URL,
		ObjectKey: key,
		ExpiresIn: s.cfg.PresignExpiry,
	}, nil
}

// --- LogSigner ---
// S3未設定の開発環境用。ダミーURLを返すだけで実際のストレージには接続しない
type LogSigner struct {
	cfg *config.StorageConfig
}

func (s *LogSigner) SignUpload(ctx context.Context, userID int64, req *model.SignUploadRequest) (*model.UploadSignature, error) {
	logger := middleware.GetLogger(ctx)

	key := fmt.Sprintf("uploads/%d/%s%s", userID, uuid.New().String(), path.Ext(req.FileName))
	logger.Info("--- Signing upload (LogSigner) ---", "user_id", userID, "key", key, "content_type", req.ContentType)

	return &model.UploadSignature{
		UploadURL: "http://localhost/dev-upload/" + key,
		ObjectKey: key,
		ExpiresIn: s.cfg.PresignExpiry,
	}, nil
}

// NewObjectStorageSigner はストレージ設定に応じた署名実装を返します
func NewObjectStorageSigner(cfg *config.Config) ObjectStorageSigner {
	logger := slog.Default()
	switch cfg.Storage.Type {
	case "s3":
		logger.Info("Initializing S3 storage signer...")
		return NewS3Signer(cfg)
	case "log":
		logger.Info("Initializing Log storage signer...")
		return &LogSigner{cfg: &cfg.Storage}
	default:
		logger.Warn("Unknown storage type, defaulting to LogSigner", "type", cfg.Storage.Type)
		return &LogSigner{cfg: &cfg.Storage}
	}
}
