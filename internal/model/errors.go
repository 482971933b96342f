// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeMissingCredential = "MISSING_CREDENTIAL"
	ErrCodeInvalidToken      = "INVALID_TOKEN"
	ErrCodeOwnershipMismatch = "OWNERSHIP_MISMATCH"
	ErrCodeInvalidBody       = "INVALID_BODY"
	ErrCodeStoreFailure      = "STORE_FAILURE"
)

// NewMissingCredentialError はAuthorizationヘッダー欠落エラーを生成する。
func NewMissingCredentialError() *APIError {
	return &APIError{
		Code:     ErrCodeMissingCredential,
		Message:  "Authorizationヘッダーがありません。",
		Category: "auth",
		Action:   "Authorization: Bearer <token> ヘッダーを付けて再度お試しください。",
	}
}

// NewInvalidTokenError はトークン検証失敗エラーを生成する。
// 署名不一致・形式不正・期限切れはすべてこのエラーに正規化する。
func NewInvalidTokenError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidToken,
		Message:  "トークンが無効です。",
		Category: "auth",
		Action:   "再度ログインして新しいトークンを取得してください。",
	}
}

// NewOwnershipMismatchError は所有者不一致エラーを生成する。
// クエリで指定されたemailとトークン内のemailが一致しない場合に返す。
func NewOwnershipMismatchError() *APIError {
	return &APIError{
		Code:     ErrCodeOwnershipMismatch,
		Message:  "指定されたemailはトークンの所有者と一致しません。",
		Category: "auth",
		Action:   "自分のemailを指定してください。",
	}
}

// NewInvalidBodyError はリクエストボディ不正エラーを生成する。
func NewInvalidBodyError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidBody,
		Message:  "リクエストボディを解析できませんでした。",
		Category: "validation",
		Action:   "正しいJSON形式で送信してください。",
	}
}
