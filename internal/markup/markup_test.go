package markup

import (
	"strings"
	"testing"
)

func TestFormat_BulletAndBold(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"**word**", "*word*"},
		{"*item", "• item"},
		{"*first\n*second", "• first\n• second"},
		{"plain text", "plain text"},
		{"", ""},
		{"mix **bold** and *bullet", "mix *bold* and • bullet"},
		{"dangling **bold", "dangling **bold"},
		{"a**b**c**d**e", "a*b*c*d*e"},
	}
	for _, c := range cases {
		if got := Format(c.in); got != c.want {
			t.Errorf("Format(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormat_IsTotal(t *testing.T) {
	inputs := []string{
		"",
		"*",
		"**",
		"***",
		"****",
		strings.Repeat("*", 101),
		"_*[]()~`>#+-=|{}.!",
		"\\already\\escaped",
		"юникод и *списки",
	}
	for _, in := range inputs {
		// must not panic and must return a string for any input
		_ = Format(in)
		_ = Escape(in)
	}
}

func TestEscape_EveryReservedCharEscaped(t *testing.T) {
	in := "a_b*c[d]e(f)g~h`i>j#k+l-m=n|o{p}q.r!s"
	out := Escape(in)
	assertFullyEscaped(t, out)
}

func TestEscape_PerReservedChar(t *testing.T) {
	for _, r := range reserved {
		out := Escape("x" + string(r) + "y")
		assertFullyEscaped(t, out)
		if r != '*' && !strings.Contains(out, "\\"+string(r)) {
			t.Errorf("Escape of %q lost the character: %q", string(r), out)
		}
	}
}

func TestEscape_CollapsesLinks(t *testing.T) {
	in := `see <a href="https://example.com/page">this page</a> for more`
	out := Escape(in)
	if strings.Contains(out, "<a") || strings.Contains(out, "</a>") {
		t.Fatalf("anchor markup survived: %q", out)
	}
	if !strings.Contains(out, "this page") || !strings.Contains(out, "example") {
		t.Fatalf("label or url lost: %q", out)
	}
	assertFullyEscaped(t, out)
}

func TestEscape_AppliesFormattingFirst(t *testing.T) {
	// the fallback runs on the already bullet/bold-substituted text
	out := Escape("**bold** and *bullet")
	if !strings.Contains(out, `\*bold\*`) {
		t.Errorf("bold not substituted before escaping: %q", out)
	}
	if !strings.Contains(out, "• bullet") {
		t.Errorf("bullet not substituted before escaping: %q", out)
	}
}

// assertFullyEscaped fails unless every reserved character in s is
// immediately preceded by a backslash.
func assertFullyEscaped(t *testing.T, s string) {
	t.Helper()
	prev := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 128 && strings.ContainsRune(reserved, rune(c)) && prev != '\\' {
			t.Fatalf("unescaped %q at %d in %q", string(c), i, s)
		}
		prev = c
	}
}
