package handler

import (
	"encoding/json"
	"net/http"

	"github.com/knrbokhari/warehouse-management-server-side/internal/model"
)

// LoginServiceInterface はログインハンドラーが必要とするサービスインターフェース。
type LoginServiceInterface interface {
	// Login はクレームに署名してアクセストークンを返す。
	Login(claim model.IdentityClaim) (string, error)
}

// LoginHandler はトークン発行のHTTPハンドラー。
type LoginHandler struct {
	service LoginServiceInterface
}

// NewLoginHandler はLoginHandlerを生成する。
func NewLoginHandler(service LoginServiceInterface) *LoginHandler {
	return &LoginHandler{service: service}
}

// loginResponse はログインのレスポンス。
type loginResponse struct {
	AccessToken string `json:"accessToken"`
}

// Login はリクエストボディのJSONオブジェクトをそのままクレームとして受け取り、
// 署名済みアクセストークンを返す。
// POST /login
func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var claim model.IdentityClaim
	if err := json.NewDecoder(r.Body).Decode(&claim); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidBodyError())
		return
	}

	token, err := h.service.Login(claim)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(loginResponse{AccessToken: token})
}
