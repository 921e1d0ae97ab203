package keyforms

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	tagRe          = regexp.MustCompile(`(?s)<(script|style)\b.*?</(script|style)>|<[^>]*>`)
	slugSeparators = strings.NewReplacer("-", " ", "_", " ")
)

// StripTags replaces HTML tags (and script/style bodies) with spaces.
func StripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	return tagRe.ReplaceAllString(s, " ")
}

// Words splits text into word tokens. Letters, marks, digits and
// apostrophes belong to words; hyphens only inside a word.
func Words(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r) && r != '-'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return r == '-' || isApostrophe(r)
		})
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// slugWords tokenizes the last path segment of a URL.
func slugWords(url string) []string {
	url = strings.TrimSuffix(url, "/")
	if i := strings.LastIndexByte(url, '/'); i >= 0 {
		url = url[i+1:]
	}
	return Words(slugSeparators.Replace(url))
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || isApostrophe(r)
}

func isApostrophe(r rune) bool {
	switch r {
	case '\'', '’', '‘', '‛', 'ʼ', '`':
		return true
	}
	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// isAbbreviation reports whether w has at least two letters, all upper case.
func isAbbreviation(w string) bool {
	letters := 0
	for _, r := range w {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters >= 2
}
