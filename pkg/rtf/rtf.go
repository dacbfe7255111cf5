// Package rtf converts DartConnect RTF exports to plain line-oriented text.
//
// The exporter wraps a tab-delimited report in a thin RTF shell: a handful
// of leading control groups (font table, color table, generator comment),
// \par and \tab for structure, and \u8709? (the empty-set mark) as the
// "no throw" placeholder.
// ToText walks that structure with an explicit scanner instead of chained
// substitutions, so only well-formed control groups are stripped and body
// text containing braces survives.
package rtf

import (
	"regexp"
	"strings"
)

// Control groups whose entire content is document metadata, not body text.
var skippedGroups = map[string]bool{
	"fonttbl":    true,
	"colortbl":   true,
	"generator":  true,
	"mmathPr":    true,
	"info":       true,
	"stylesheet": true,
}

// The exporter's line wrapping splits tokens that must stay contiguous:
// "Game 2 . 1" for "Game 2.1", "00 : 22" for a duration. Runs of spaces
// collapse to one; tabs and newlines are column/row structure and stay.
var (
	spacedDotRe   = regexp.MustCompile(`(\d)\s+\.\s+(\d)`)
	spacedColonRe = regexp.MustCompile(`(\d)\s+:\s+(\d)`)
	multiSpaceRe  = regexp.MustCompile(`  +`)
)

// ToText converts raw RTF to plain text: paragraph breaks become newlines,
// tab codes become tabs, formatting control words are dropped. Input that
// does not look like RTF passes through untouched apart from the whitespace
// repairs. ToText never fails; malformed markup simply yields text with no
// recognizable report lines in it.
func ToText(src string) string {
	if strings.HasPrefix(strings.TrimSpace(src), `{\rtf`) {
		src = scanBody(src)
	}
	src = spacedDotRe.ReplaceAllString(src, "$1.$2")
	src = spacedColonRe.ReplaceAllString(src, "$1:$2")
	src = multiSpaceRe.ReplaceAllString(src, " ")
	return strings.TrimSpace(src)
}

func scanBody(src string) string {
	var out strings.Builder
	out.Grow(len(src) / 2)

	i := 0
	for i < len(src) {
		switch c := src[i]; c {
		case '{':
			if name, ok := groupName(src, i); ok && (name == "*" || skippedGroups[name]) {
				i = skipGroup(src, i)
				continue
			}
			// Transparent group: drop the delimiter, keep scanning its body.
			i++
		case '}':
			i++
		case '\r', '\n':
			// Raw line breaks in an RTF file are file formatting, not content.
			i++
		case '\\':
			i = control(src, i, &out)
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// groupName returns the control word opening the group at src[i] == '{'.
// "*" stands for the {\*\...} ignorable-destination form.
func groupName(src string, i int) (string, bool) {
	j := i + 1
	if j >= len(src) || src[j] != '\\' {
		return "", false
	}
	j++
	if j < len(src) && src[j] == '*' {
		return "*", true
	}
	start := j
	for j < len(src) && isAlpha(src[j]) {
		j++
	}
	if j == start {
		return "", false
	}
	return src[start:j], true
}

// skipGroup advances past the balanced group starting at src[i] == '{'.
// Escaped braces do not affect nesting depth.
func skipGroup(src string, i int) int {
	depth := 0
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
		i++
	}
	return i
}

// control handles the escape at src[i] == '\\' and returns the index after it.
func control(src string, i int, out *strings.Builder) int {
	j := i + 1
	if j >= len(src) {
		return j
	}

	switch c := src[j]; {
	case c == '\\', c == '{', c == '}':
		out.WriteByte(c)
		return j + 1
	case c == '\'':
		// \'hh hex escape; the exporter uses it for apostrophes in names.
		if j+2 < len(src) {
			if b, ok := hexByte(src[j+1], src[j+2]); ok {
				out.WriteRune(rune(b))
				return j + 3
			}
		}
		return j + 1
	case c == '~':
		out.WriteByte(' ')
		return j + 1
	case !isAlpha(c):
		// Other control symbols (\*, \-, ...) carry no body text.
		return j + 1
	}

	start := j
	for j < len(src) && isAlpha(src[j]) {
		j++
	}
	word := src[start:j]

	// Optional signed numeric parameter.
	param, hasParam := 0, false
	k := j
	neg := false
	if k < len(src) && src[k] == '-' {
		neg = true
		k++
	}
	for k < len(src) && src[k] >= '0' && src[k] <= '9' {
		param = param*10 + int(src[k]-'0')
		hasParam = true
		k++
	}
	if hasParam {
		j = k
		if neg {
			param = -param
		}
	}

	switch word {
	case "par", "line":
		out.WriteByte('\n')
	case "tab":
		out.WriteByte('\t')
	case "u":
		// \uN? unicode escape with a one-character fallback. The only one
		// this exporter emits is \u8709? for the empty-set "no throw" mark.
		if hasParam && param > 0 {
			out.WriteRune(rune(param))
		}
		if j < len(src) && src[j] == '?' {
			j++
		}
	default:
		// Formatting word (\pard, \fs22, \lang9, \viewkind4, ...): no content.
	}

	// A single space after a control word is its delimiter, not body text.
	if j < len(src) && src[j] == ' ' {
		j++
	}
	return j
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func hexByte(hi, lo byte) (byte, bool) {
	h, ok1 := hexVal(hi)
	l, ok2 := hexVal(lo)
	return h<<4 | l, ok1 && ok2
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
