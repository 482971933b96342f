package security

import "testing"

// インターフェースを満たすことを検証
func TestDescriptionSanitizer_ImplementsInterface(t *testing.T) {
	var _ DescriptionSanitizer = NewDescriptionSanitizer()
}

// 許可タグが通過することを検証
func TestSanitize_AllowedTagsPass(t *testing.T) {
	s := NewDescriptionSanitizer()

	in := "<p>軽量ノートPC <strong>新品</strong> <em>人気</em></p>"
	out := s.Sanitize(in)

	if out != in {
		t.Errorf("Sanitize(%q) = %q, want unchanged", in, out)
	}
}

// scriptタグとイベント属性が除去されることを検証
func TestSanitize_StripsScriptAndEventHandlers(t *testing.T) {
	s := NewDescriptionSanitizer()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"script tag", `hello<script>alert(1)</script>`, "hello"},
		{"iframe tag", `<iframe src="https://evil.example"></iframe>ok`, "ok"},
		{"event attr", `<p onclick="alert(1)">text</p>`, "<p>text</p>"},
		{"anchor stripped", `<a href="javascript:alert(1)">link</a>`, "link"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Sanitize(tc.in); got != tc.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

// 空文字列は空文字列のまま返ることを検証
func TestSanitize_EmptyInput(t *testing.T) {
	s := NewDescriptionSanitizer()
	if got := s.Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q, want empty", got)
	}
}

// 同一入力に対し常に同一出力を返すこと（冪等性）を検証
func TestSanitize_Idempotent(t *testing.T) {
	s := NewDescriptionSanitizer()

	in := `<p>desc<script>x()</script></p>`
	once := s.Sanitize(in)
	twice := s.Sanitize(once)

	if once != twice {
		t.Errorf("Sanitize is not idempotent: %q -> %q", once, twice)
	}
}
