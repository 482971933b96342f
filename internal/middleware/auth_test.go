package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/knrbokhari/warehouse-management-server-side/internal/model"
)

// mockVerifier はTokenVerifierのモック実装。
type mockVerifier struct {
	verifyFn func(tokenString string) (model.IdentityClaim, error)
}

func (m *mockVerifier) Verify(tokenString string) (model.IdentityClaim, error) {
	if m.verifyFn != nil {
		return m.verifyFn(tokenString)
	}
	return nil, errors.New("not implemented")
}

// okHandler は到達したことを記録して200を返すテスト用ハンドラー。
func okHandler(reached *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		w.WriteHeader(http.StatusOK)
	})
}

// decodeErrorBody はエラーレスポンスのボディをデコードするヘルパー。
func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) ErrorResponseBody {
	t.Helper()
	var body ErrorResponseBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return body
}

// Authorizationヘッダーが無いリクエストは401で止まることを検証
func TestAuthMiddleware_MissingHeader_Returns401(t *testing.T) {
	reached := false
	mw := NewAuthMiddleware(&mockVerifier{})
	handler := mw(okHandler(&reached))

	req := httptest.NewRequest(http.MethodGet, "/product", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if reached {
		t.Error("handler should not be reached without Authorization header")
	}
	if body := decodeErrorBody(t, w); body.Code != model.ErrCodeMissingCredential {
		t.Errorf("error code = %q, want %q", body.Code, model.ErrCodeMissingCredential)
	}
}

// Bearerスキームでないヘッダーは403で止まることを検証
func TestAuthMiddleware_NonBearerScheme_Returns403(t *testing.T) {
	reached := false
	mw := NewAuthMiddleware(&mockVerifier{})
	handler := mw(okHandler(&reached))

	for _, header := range []string{"Basic dXNlcjpwYXNz", "token-without-scheme"} {
		req := httptest.NewRequest(http.MethodGet, "/product", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("Authorization=%q: status = %d, want %d", header, w.Code, http.StatusForbidden)
		}
	}
	if reached {
		t.Error("handler should not be reached with malformed Authorization header")
	}
}

// トークン検証失敗は403で止まることを検証
func TestAuthMiddleware_InvalidToken_Returns403(t *testing.T) {
	reached := false
	mw := NewAuthMiddleware(&mockVerifier{
		verifyFn: func(tokenString string) (model.IdentityClaim, error) {
			return nil, errors.New("signature mismatch")
		},
	})
	handler := mw(okHandler(&reached))

	req := httptest.NewRequest(http.MethodGet, "/product", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
	if reached {
		t.Error("handler should not be reached with an invalid token")
	}
	if body := decodeErrorBody(t, w); body.Code != model.ErrCodeInvalidToken {
		t.Errorf("error code = %q, want %q", body.Code, model.ErrCodeInvalidToken)
	}
}

// 有効なトークンで検証済みクレームがコンテキストに注入されることを検証
func TestAuthMiddleware_ValidToken_InjectsClaim(t *testing.T) {
	var gotClaim model.IdentityClaim
	mw := NewAuthMiddleware(&mockVerifier{
		verifyFn: func(tokenString string) (model.IdentityClaim, error) {
			if tokenString != "good-token" {
				t.Errorf("token = %q, want %q", tokenString, "good-token")
			}
			return model.IdentityClaim{"email": "a@x.com"}, nil
		},
	})
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claim, err := IdentityFromContext(r.Context())
		if err != nil {
			t.Errorf("IdentityFromContext returned error: %v", err)
		}
		gotClaim = claim
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/product", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotClaim.Email() != "a@x.com" {
		t.Errorf("claim email = %q, want %q", gotClaim.Email(), "a@x.com")
	}
}

// IdentityFromContext がクレーム未設定のコンテキストでエラーを返すことを検証
func TestIdentityFromContext_MissingClaim_ReturnsError(t *testing.T) {
	if _, err := IdentityFromContext(context.Background()); err == nil {
		t.Error("expected error for context without identity claim")
	}
}

// ContextWithIdentity で注入したクレームが取得できることを検証
func TestContextWithIdentity_RoundTrip(t *testing.T) {
	claim := model.IdentityClaim{"email": "b@x.com"}
	ctx := ContextWithIdentity(context.Background(), claim)

	got, err := IdentityFromContext(ctx)
	if err != nil {
		t.Fatalf("IdentityFromContext returned error: %v", err)
	}
	if got.Email() != "b@x.com" {
		t.Errorf("email = %q, want %q", got.Email(), "b@x.com")
	}
}
