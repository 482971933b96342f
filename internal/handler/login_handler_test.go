package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/knrbokhari/warehouse-management-server-side/internal/model"
)

// mockLoginService はテスト用のLoginServiceInterfaceモック。
type mockLoginService struct {
	loginFn func(claim model.IdentityClaim) (string, error)
}

func (m *mockLoginService) Login(claim model.IdentityClaim) (string, error) {
	if m.loginFn != nil {
		return m.loginFn(claim)
	}
	return "token", nil
}

// decodeErrorResponse はエラーレスポンスのボディをデコードするテストヘルパー。
func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) errorResponseBody {
	t.Helper()
	var body errorResponseBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return body
}

// ログイン成功時にaccessTokenが返ることを検証
func TestLogin_ReturnsAccessToken(t *testing.T) {
	var gotClaim model.IdentityClaim
	h := NewLoginHandler(&mockLoginService{
		loginFn: func(claim model.IdentityClaim) (string, error) {
			gotClaim = claim
			return "signed-token", nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@x.com","name":"Aki"}`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["accessToken"] != "signed-token" {
		t.Errorf("accessToken = %q, want %q", resp["accessToken"], "signed-token")
	}
	if gotClaim.Email() != "a@x.com" {
		t.Errorf("claim email = %q, want a@x.com", gotClaim.Email())
	}
}

// 不正なJSONボディで400が返ることを検証
func TestLogin_InvalidBodyReturns400(t *testing.T) {
	h := NewLoginHandler(&mockLoginService{})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	body := decodeErrorResponse(t, w)
	if body.Code != model.ErrCodeInvalidBody {
		t.Errorf("code = %q, want %q", body.Code, model.ErrCodeInvalidBody)
	}
}

// 署名失敗時に500が返ることを検証
func TestLogin_SignerFailureReturns500(t *testing.T) {
	h := NewLoginHandler(&mockLoginService{
		loginFn: func(_ model.IdentityClaim) (string, error) {
			return "", errors.New("sign failed")
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@x.com"}`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
