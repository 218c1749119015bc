// internal/model/auth.go
package model

import "github.com/golang-jwt/jwt/v5"

type ContextKey string

const (
	// UserIDKey はリクエストコンテキストに検証済みユーザーIDを格納するキー
	UserIDKey ContextKey = "userID"
)

// JWTCustomClaims はJWTに含めるカスタムクレーム（ペイロード）
// 認証基盤は外部の責務のため、ここでは標準クレームのみを検証に使う
// (sub に数値のユーザーIDが入る想定)
type JWTCustomClaims struct {
	jwt.RegisteredClaims
}
