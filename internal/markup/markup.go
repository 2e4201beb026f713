// Package markup rewrites the model's lightweight markup into Telegram
// Markdown. The passes are ordered so that no pass ever reprocesses output
// of a later one: bullets, then bold, then (fallback only) link collapsing
// and reserved-character escaping. Escaping runs last, so the backslashes
// it inserts are never themselves escaped.
package markup

import (
	"regexp"
	"strings"
)

// reserved is Telegram's MarkdownV2 reserved set, escaped wholesale on the
// fallback path.
const reserved = "_*[]()~`>#+-=|{}.!"

var anchorRe = regexp.MustCompile(`(?s)<a\s[^>]*?href=['"]([^'"]*)['"][^>]*?>(.*?)</a>`)

// Format converts the model's emphasis markers to Telegram Markdown: a
// lone '*' becomes a bullet glyph, a '**span**' pair becomes '*span*'.
// Total over any input, including empty strings.
func Format(text string) string {
	return boldPass(bulletPass(text))
}

// Escape is the fallback transform used when Telegram rejects the primary
// rendering: bullet/bold substitution, anchor-tag collapsing to
// "label (URL)", then a backslash before every reserved character.
func Escape(text string) string {
	out := Format(text)
	out = collapseLinks(out)
	return escapeReserved(out)
}

// bulletPass replaces each run of exactly one '*' with a bullet glyph.
// Longer runs are left for the bold pass.
func bulletPass(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		if text[i] != '*' {
			b.WriteByte(text[i])
			i++
			continue
		}
		j := i
		for j < len(text) && text[j] == '*' {
			j++
		}
		if j-i == 1 {
			b.WriteString("• ")
		} else {
			b.WriteString(text[i:j])
		}
		i = j
	}
	return b.String()
}

// boldPass rewrites '**span**' to '*span*'. An unpaired '**' is passed
// through untouched.
func boldPass(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for {
		open := strings.Index(text, "**")
		if open < 0 {
			b.WriteString(text)
			return b.String()
		}
		end := strings.Index(text[open+2:], "**")
		if end < 0 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:open])
		b.WriteByte('*')
		b.WriteString(text[open+2 : open+2+end])
		b.WriteByte('*')
		text = text[open+2+end+2:]
	}
}

func collapseLinks(text string) string {
	return anchorRe.ReplaceAllString(text, "$2 ($1)")
}

func escapeReserved(text string) string {
	var b strings.Builder
	b.Grow(len(text) * 2)
	for _, r := range text {
		if r < 128 && strings.ContainsRune(reserved, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
