// Package keyforms finds the word forms of a keyphrase in a document and
// ranks the most prominent words of that document. Stemming and form
// generation are driven by per-language rule tables loaded once into an
// Engine; languages without tables fall back to literal matching.
package keyforms

import (
	"io"
	"log/slog"
	"sort"
)

const (
	// AttributeWeight multiplies occurrences found in the title,
	// description, keyword and synonyms.
	AttributeWeight = 3
	// DefaultMinOccurrences is the weighted count below which a word is
	// not prominent.
	DefaultMinOccurrences = 2
	// DefaultMaxProminentWords caps the prominent word list.
	DefaultMaxProminentWords = 100
)

// Language is one registry entry.
type Language struct {
	Code       string
	Name       string
	Stemmer    *Stemmer
	Morphology *Morphology
	// FunctionWords holds lower-cased closed-class words.
	FunctionWords map[string]struct{}
}

// IsFunctionWord reports whether the lower-cased word w is a function word.
func (l *Language) IsFunctionWord(w string) bool {
	_, ok := l.FunctionWords[NormalizeSingleQuotes(w)]
	return ok
}

// Supported reports whether the language stems words at all.
func (l *Language) Supported() bool {
	return l.Stemmer.Kind() != KindNone
}

// Engine holds the language registry. It is read-only after construction
// and safe for concurrent use.
type Engine struct {
	languages map[string]*Language
	logger    *slog.Logger

	minOccurrences    int
	maxProminentWords int
	defaultLocale     string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used while loading. Analysis never logs.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMinOccurrences sets the weighted count a word needs to be prominent.
func WithMinOccurrences(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.minOccurrences = n
		}
	}
}

// WithMaxProminentWords caps the prominent word list. Zero means no cap.
func WithMaxProminentWords(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.maxProminentWords = n
		}
	}
}

// WithDefaultLocale sets the locale used for documents without one.
func WithDefaultLocale(locale string) Option {
	return func(e *Engine) {
		if locale != "" {
			e.defaultLocale = locale
		}
	}
}

func newEngine(opts []Option) *Engine {
	e := &Engine{
		languages:         make(map[string]*Language),
		logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		minOccurrences:    DefaultMinOccurrences,
		maxProminentWords: DefaultMaxProminentWords,
		defaultLocale:     DefaultLocale,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewEngine builds an Engine from languages that were constructed in code.
func NewEngine(languages []*Language, opts ...Option) *Engine {
	e := newEngine(opts)
	for _, l := range languages {
		if l.Stemmer == nil {
			l.Stemmer = IdentityStemmer()
		}
		e.languages[l.Code] = l
	}
	return e
}

// Language returns the registry entry for a locale or language code.
// Unknown languages get an identity entry without function words.
func (e *Engine) Language(locale string) *Language {
	if locale == "" {
		locale = e.defaultLocale
	}
	code := LanguageCode(locale)
	if l, ok := e.languages[code]; ok {
		return l
	}
	return &Language{Code: code, Stemmer: IdentityStemmer()}
}

// Registered reports whether the language of locale is in the registry.
func (e *Engine) Registered(locale string) bool {
	if locale == "" {
		locale = e.defaultLocale
	}
	_, ok := e.languages[LanguageCode(locale)]
	return ok
}

// Languages returns language code → name for every registered language.
func (e *Engine) Languages() map[string]string {
	out := make(map[string]string, len(e.languages))
	for code, l := range e.languages {
		out[code] = l.Name
	}
	return out
}

// Codes returns the registered language codes, sorted.
func (e *Engine) Codes() []string {
	codes := make([]string, 0, len(e.languages))
	for code := range e.languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Stem lower-cases word with the locale and stems it.
func (e *Engine) Stem(word, locale string) string {
	lang := e.Language(locale)
	return lang.Stemmer.Stem(NormalizeSingleQuotes(newLowerer(lang.Code).lower(word)))
}

// Inflect stems word and regenerates its forms from the form groups of
// the locale's language.
func (e *Engine) Inflect(word, locale string) *InflectionTable {
	return inflectionTable(e.Language(locale), word)
}

// Analyze runs the form matcher and the prominent-word scorer on doc.
func (e *Engine) Analyze(doc Document) Analysis {
	return Analysis{
		Forms:          e.MatchForms(doc),
		ProminentWords: e.ProminentWords(doc),
	}
}
