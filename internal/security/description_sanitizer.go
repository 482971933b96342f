// Package security はアプリケーションのセキュリティ機能を提供する。
//
// DescriptionSanitizer は在庫レコードのdescriptionフィールドを保存前に
// サニタイズし、ストアに格納されたHTMLが閲覧側でXSSにならないようにする。
// bluemondayの許可リストベースのポリシーで、安全なタグのみを通過させる。
package security

import "github.com/microcosm-cc/bluemonday"

// DescriptionSanitizer はdescriptionのサニタイズ機能のインターフェースを定義する。
// 在庫レコードの作成時および部分更新時に使用される。
type DescriptionSanitizer interface {
	// Sanitize はdescriptionをサニタイズして安全な文字列を返す。
	// 許可タグ（p, br, ul, ol, li, strong, em, code）のみを通過させ、
	// script, iframe, styleタグおよびon*イベント属性を除去する。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// descriptionSanitizer はDescriptionSanitizerの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type descriptionSanitizer struct {
	policy *bluemonday.Policy
}

// NewDescriptionSanitizer はDescriptionSanitizerの新しいインスタンスを生成する。
// 商品説明は軽い整形のみを想定するため、リンクや画像は許可しない。
// script等の危険なタグは許可リストに含めないことで自動的に除去される。
func NewDescriptionSanitizer() *descriptionSanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "ul", "ol", "li",
		"strong", "em", "code",
	)

	return &descriptionSanitizer{
		policy: p,
	}
}

// Sanitize はdescriptionをサニタイズして安全な文字列を返す。
func (s *descriptionSanitizer) Sanitize(raw string) string {
	return s.policy.Sanitize(raw)
}
