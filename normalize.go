package keyforms

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultLocale is used for documents that carry no locale.
const DefaultLocale = "en_US"

// singleQuoteReplacer folds the typographic single quotes and apostrophes
// to a plain ASCII apostrophe.
var singleQuoteReplacer = strings.NewReplacer(
	"\u2018", "'", // ‘
	"\u2019", "'", // ’
	"\u201b", "'", // ‛
	"\u2039", "'", // ‹
	"\u203a", "'", // ›
	"\u02bc", "'", // ʼ
	"`", "'",
)

// NormalizeSingleQuotes replaces every single-quote variant in s with "'".
func NormalizeSingleQuotes(s string) string {
	return singleQuoteReplacer.Replace(s)
}

// doubleQuotes mark a keyphrase that must match exactly.
var doubleQuotes = []rune{
	'\u201c', // “
	'\u201d', // ”
	'\u301d', // 〝
	'\u301e', // 〞
	'\u301f', // 〟
	'\u201f', // ‟
	'\u201e', // „
	'"',
	'\u300c', // 「
	'\u300d', // 」
	'\u300e', // 『
	'\u300f', // 』
}

func isDoubleQuote(r rune) bool {
	for _, q := range doubleQuotes {
		if q == r {
			return true
		}
	}
	return false
}

// LanguageCode returns the language part of a locale ("en_US" → "en").
// An empty locale resolves through DefaultLocale.
func LanguageCode(locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}
	code, _, _ := strings.Cut(strings.ReplaceAll(locale, "-", "_"), "_")
	return strings.ToLower(code)
}

// localeTag parses a locale such as "tr_TR" into a BCP 47 tag.
// Unparsable locales yield language.Und, which lower-cases with the
// default Unicode rules.
func localeTag(locale string) language.Tag {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}

// lowerer lower-cases text using the rules of one locale.
// A cases.Caser keeps state, so a lowerer must not be shared between goroutines.
type lowerer struct {
	caser cases.Caser
}

func newLowerer(locale string) *lowerer {
	return &lowerer{caser: cases.Lower(localeTag(locale))}
}

func (l *lowerer) lower(s string) string {
	return l.caser.String(s)
}

// LowerLocale lower-cases s with the casing rules of locale
// (e.g. the dotless i for "tr_TR").
func LowerLocale(s, locale string) string {
	return newLowerer(locale).lower(s)
}

// StripMarks removes combining marks from s after canonical decomposition,
// so "άέΐ" becomes "αει".
func StripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// EscapeForm prepares a literal token for use inside a regular expression:
// it is escaped and its single quotes are normalised.
func EscapeForm(s string) string {
	return NormalizeSingleQuotes(regexp.QuoteMeta(s))
}
