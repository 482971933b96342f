// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/knrbokhari/warehouse-management-server-side/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// identityContextKey はリクエストコンテキストに検証済みクレームを格納するためのキー。
var identityContextKey = contextKey("identity")

// TokenVerifier はトークン検証に必要なインターフェース。
// token.Codecの部分集合として定義する。
type TokenVerifier interface {
	Verify(tokenString string) (model.IdentityClaim, error)
}

// NewAuthMiddleware はAuthorizationヘッダーのBearerトークンを検証する
// ミドルウェアを返す。検証済みクレームをリクエストコンテキストに注入する。
//
// ヘッダーが無いリクエストには401、トークンの抽出や検証に失敗した
// リクエストには403を返し、いずれの場合もハンドラーには到達させない。
// トークンとクレームは変更しない純粋なゲートであり、クレームに依存する
// ハンドラーより前に必ず配置すること。
func NewAuthMiddleware(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Authorizationヘッダーの存在確認
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewMissingCredentialError())
				return
			}

			// 2. スキームプレフィックスに続くトークン部を抽出
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				WriteErrorResponse(w, http.StatusForbidden, model.NewInvalidTokenError())
				return
			}

			// 3. トークンの検証
			claim, err := verifier.Verify(parts[1])
			if err != nil {
				slog.Warn("token verification failed",
					slog.String("error", err.Error()),
					slog.String("path", r.URL.Path),
				)
				WriteErrorResponse(w, http.StatusForbidden, model.NewInvalidTokenError())
				return
			}

			// 4. 検証済みクレームをコンテキストに注入
			ctx := context.WithValue(r.Context(), identityContextKey, claim)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext はリクエストコンテキストから検証済みクレームを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func IdentityFromContext(ctx context.Context) (model.IdentityClaim, error) {
	claim, ok := ctx.Value(identityContextKey).(model.IdentityClaim)
	if !ok || claim == nil {
		return nil, fmt.Errorf("identity claim not found in context")
	}
	return claim, nil
}

// ContextWithIdentity はコンテキストに検証済みクレームを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithIdentity(ctx context.Context, claim model.IdentityClaim) context.Context {
	return context.WithValue(ctx, identityContextKey, claim)
}
