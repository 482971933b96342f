// Package token はアイデンティティクレームの署名付きトークンへの変換を提供する。
//
// トークンはHS256で署名したJWTで、発行時刻と有効期限を含む。
// サーバー側には発行済みトークンを一切保存しない（ステートレスセッション）。
// 署名シークレットはプロセス起動時に1回だけ注入され、ローテーションすると
// 発行済みの全トークンが無効になる。
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/knrbokhari/warehouse-management-server-side/internal/model"
)

// ErrInvalidToken は署名不一致・形式不正・期限切れのトークンを表す。
// 呼び出し側はerrors.Isで判定する。
var ErrInvalidToken = errors.New("invalid token")

// Codec はクレームの署名と検証を行う。
// クロックを注入可能にすることで、有効期限のテストを決定的に行える。
type Codec struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewCodec はCodecを生成する。validityは発行時刻からの有効期間。
func NewCodec(secret string, validity time.Duration) *Codec {
	return NewCodecWithClock(secret, validity, time.Now)
}

// NewCodecWithClock はクロックを指定してCodecを生成する。テスト用。
func NewCodecWithClock(secret string, validity time.Duration, now func() time.Time) *Codec {
	return &Codec{
		secret:   []byte(secret),
		validity: validity,
		now:      now,
	}
}

// Sign はクレームを署名付きトークンに変換する。
// クレームの内容は検証しない。発行時刻と有効期限を付与して署名する。
func (c *Codec) Sign(claim model.IdentityClaim) (string, error) {
	now := c.now()

	claims := jwt.MapClaims{}
	for k, v := range claim {
		claims[k] = v
	}
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(c.validity))

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify はトークンを検証し、埋め込まれたクレームを変更せずに返す。
// 署名不一致・形式不正・期限切れはすべてErrInvalidTokenにラップする。
// 署名比較はHMACの定数時間比較に委譲される。
func (c *Codec) Verify(tokenString string) (model.IdentityClaim, error) {
	claims := jwt.MapClaims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	// 署名時に付与した時刻クレームを除き、ログイン時のクレームを復元する
	claim := model.IdentityClaim{}
	for k, v := range claims {
		if k == "iat" || k == "exp" {
			continue
		}
		claim[k] = v
	}

	return claim, nil
}
