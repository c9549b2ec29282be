// Package glob compiles the key-matching pattern syntax into reusable
// predicates: literal characters, '*' for any run, '?' for any single
// character, '[...]' character classes and '\x' escapes.
package glob

import (
	"regexp"
	"strings"
)

// Pattern is a compiled key pattern. Compile once, match many keys.
type Pattern struct {
	re      *regexp.Regexp
	literal string // used only when the translation failed to compile
}

// Compile translates a glob-style pattern into a Pattern. It never fails:
// an unterminated bracket expression, or a class the matching engine rejects
// (for example "[z-a]"), is matched literally instead.
func Compile(pattern string) *Pattern {
	var sb strings.Builder
	sb.WriteString(`\A`)

	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteByte('.')
		case '\\':
			if i+1 < len(pattern) {
				i++
				sb.WriteString(regexp.QuoteMeta(pattern[i : i+1]))
			} else {
				sb.WriteString(regexp.QuoteMeta(`\`))
			}
		case '[':
			class, ok := scanClass(pattern[i:])
			if ok && validClass(class) {
				// class contents pass through structurally
				sb.WriteString(class)
				i += len(class) - 1
			} else {
				sb.WriteString(regexp.QuoteMeta("["))
			}
		default:
			sb.WriteString(regexp.QuoteMeta(pattern[i : i+1]))
		}
	}

	sb.WriteString(`\z`)

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return &Pattern{literal: pattern}
	}
	return &Pattern{re: re}
}

// Match reports whether key matches the compiled pattern.
func (p *Pattern) Match(key string) bool {
	if p.re == nil {
		return key == p.literal
	}
	return p.re.MatchString(key)
}

// scanClass returns the bracket expression starting at s[0] == '[' including
// both brackets, honoring '\x' escapes inside. ok is false when the class is
// never terminated.
func scanClass(s string) (string, bool) {
	for j := 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case ']':
			if j > 1 {
				return s[:j+1], true
			}
		}
	}
	return "", false
}

// validClass checks a bracket expression against the matching engine on its
// own, so a malformed class degrades to literal characters instead of
// poisoning the whole pattern.
func validClass(class string) bool {
	_, err := regexp.Compile(class)
	return err == nil
}
