// Package model はドメインモデルを定義する。
package model

// IdentityClaim はトークンに埋め込むアイデンティティクレームを表す。
// ログイン時にリクエストボディをそのまま取り込むため任意のキーを持てるが、
// 所有権判定には最低限 "email" キーが必要となる。
// トークンに埋め込まれた後は不変として扱う。
type IdentityClaim map[string]any

// Email はクレームに埋め込まれたemail値を返す。
// 未設定または文字列以外の場合は空文字列を返す。
func (c IdentityClaim) Email() string {
	email, _ := c["email"].(string)
	return email
}
