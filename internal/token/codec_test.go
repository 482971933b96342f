package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/knrbokhari/warehouse-management-server-side/internal/model"
)

const testSecret = "test-secret-32bytes-long!!!!!!!!"

// 固定クロックでCodecを生成するテストヘルパー。
func newTestCodec(t *testing.T, at time.Time) *Codec {
	t.Helper()
	return NewCodecWithClock(testSecret, 24*time.Hour, func() time.Time { return at })
}

// TestSignVerify_RoundTrip は sign → verify でクレームが完全に往復することを検証する。
func TestSignVerify_RoundTrip(t *testing.T) {
	codec := newTestCodec(t, time.Now())

	claim := model.IdentityClaim{"email": "a@x.com"}
	signed, err := codec.Sign(claim)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}
	if signed == "" {
		t.Fatal("expected non-empty token")
	}

	got, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if got.Email() != "a@x.com" {
		t.Errorf("email = %q, want %q", got.Email(), "a@x.com")
	}
	if len(got) != len(claim) {
		t.Errorf("claim keys = %d, want %d (iat/exp must not leak into the claim)", len(got), len(claim))
	}
}

// TestSignVerify_ExtraClaimKeys は任意の追加キーを持つクレームがそのまま往復することを検証する。
// ログインはボディを検証せずに取り込むため、email以外のキーも保持される必要がある。
func TestSignVerify_ExtraClaimKeys(t *testing.T) {
	codec := newTestCodec(t, time.Now())

	claim := model.IdentityClaim{"email": "a@x.com", "name": "Alice", "plan": "pro"}
	signed, err := codec.Sign(claim)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	got, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if got["name"] != "Alice" {
		t.Errorf(`claim["name"] = %v, want "Alice"`, got["name"])
	}
	if got["plan"] != "pro" {
		t.Errorf(`claim["plan"] = %v, want "pro"`, got["plan"])
	}
}

// TestVerify_TamperedPayload は署名済みペイロードを1文字でも改ざんすると
// ErrInvalidTokenになることを検証する。
func TestVerify_TamperedPayload(t *testing.T) {
	codec := newTestCodec(t, time.Now())

	signed, err := codec.Sign(model.IdentityClaim{"email": "a@x.com"})
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 JWT segments, got %d", len(parts))
	}

	// ペイロード部の先頭文字を別の文字に差し替える
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := codec.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(tampered) error = %v, want ErrInvalidToken", err)
	}
}

// TestVerify_Malformed はJWT形式でない文字列がErrInvalidTokenになることを検証する。
func TestVerify_Malformed(t *testing.T) {
	codec := newTestCodec(t, time.Now())

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := codec.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q) error = %v, want ErrInvalidToken", tok, err)
		}
	}
}

// TestVerify_WrongSecret は別シークレットで署名されたトークンが拒否されることを検証する。
// シークレットをローテーションすると発行済みトークンがすべて無効になる性質のテストでもある。
func TestVerify_WrongSecret(t *testing.T) {
	now := time.Now()
	signer := NewCodecWithClock("another-secret-32bytes-long!!!!!", 24*time.Hour, func() time.Time { return now })
	verifier := newTestCodec(t, now)

	signed, err := signer.Sign(model.IdentityClaim{"email": "a@x.com"})
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	if _, err := verifier.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify with wrong secret error = %v, want ErrInvalidToken", err)
	}
}

// TestVerify_Expired は有効期限を過ぎたトークンがErrInvalidTokenになることを検証する。
func TestVerify_Expired(t *testing.T) {
	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	signer := newTestCodec(t, issued)
	signed, err := signer.Sign(model.IdentityClaim{"email": "a@x.com"})
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	// 24時間+1秒後のクロックで検証する
	verifier := newTestCodec(t, issued.Add(24*time.Hour+time.Second))
	if _, err := verifier.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(expired) error = %v, want ErrInvalidToken", err)
	}
}

// TestVerify_JustBeforeExpiry は有効期限直前のトークンがまだ有効なことを検証する。
func TestVerify_JustBeforeExpiry(t *testing.T) {
	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	signer := newTestCodec(t, issued)
	signed, err := signer.Sign(model.IdentityClaim{"email": "a@x.com"})
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	verifier := newTestCodec(t, issued.Add(24*time.Hour-time.Second))
	claim, err := verifier.Verify(signed)
	if err != nil {
		t.Fatalf("Verify just before expiry returned error: %v", err)
	}
	if claim.Email() != "a@x.com" {
		t.Errorf("email = %q, want %q", claim.Email(), "a@x.com")
	}
}

// TestVerify_NoneAlgorithmRejected はalg=noneのトークンが拒否されることを検証する。
func TestVerify_NoneAlgorithmRejected(t *testing.T) {
	codec := newTestCodec(t, time.Now())

	// {"alg":"none","typ":"JWT"}.{"email":"a@x.com"}. のunsecured JWT
	unsecured := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJlbWFpbCI6ImFAeC5jb20ifQ."
	if _, err := codec.Verify(unsecured); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(alg=none) error = %v, want ErrInvalidToken", err)
	}
}
