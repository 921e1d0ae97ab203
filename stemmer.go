package keyforms

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kljensen/snowball"
	"github.com/surgebase/porter2"
)

// StemmerKind selects how a language reduces words to stems.
type StemmerKind string

const (
	// KindNone is the identity transform used for unsupported languages.
	KindNone StemmerKind = "none"
	// KindTables runs the rule tables of the language's Morphology.
	KindTables StemmerKind = "tables"
	// KindSnowball runs a named Snowball algorithm.
	KindSnowball StemmerKind = "snowball"
	// KindPorter2 runs the Porter2 English algorithm.
	KindPorter2 StemmerKind = "porter2"
)

// snowballAlgorithms lists the algorithms github.com/kljensen/snowball ships.
var snowballAlgorithms = map[string]bool{
	"english":   true,
	"french":    true,
	"spanish":   true,
	"russian":   true,
	"swedish":   true,
	"norwegian": true,
	"hungarian": true,
}

const (
	exceptionWord   = "word"
	exceptionEnding = "ending"
)

// ParseStemmerKind validates a registry value. An empty string means none.
func ParseStemmerKind(s string) (StemmerKind, error) {
	switch k := StemmerKind(strings.ToLower(s)); k {
	case "":
		return KindNone, nil
	case KindNone, KindTables, KindSnowball, KindPorter2:
		return k, nil
	default:
		return "", fmt.Errorf("%w: kind %q", ErrUnknownStemmer, s)
	}
}

// Stemmer reduces words of one language to their stems.
// The zero value and a nil *Stemmer are identity stemmers.
type Stemmer struct {
	kind      StemmerKind
	tables    *StemmerTables
	algorithm string
}

// IdentityStemmer returns words unchanged.
func IdentityStemmer() *Stemmer {
	return &Stemmer{kind: KindNone}
}

// TableStemmer stems with the rule tables of m. A nil m gives the identity.
func TableStemmer(m *Morphology) *Stemmer {
	if m == nil {
		return IdentityStemmer()
	}
	return &Stemmer{kind: KindTables, tables: &m.Stemmer}
}

// SnowballStemmer stems with a Snowball algorithm such as "spanish".
func SnowballStemmer(algorithm string) (*Stemmer, error) {
	if !snowballAlgorithms[algorithm] {
		return nil, fmt.Errorf("%w: snowball algorithm %q", ErrUnknownStemmer, algorithm)
	}
	return &Stemmer{kind: KindSnowball, algorithm: algorithm}, nil
}

// Porter2Stemmer stems English with the Porter2 algorithm.
func Porter2Stemmer() *Stemmer {
	return &Stemmer{kind: KindPorter2}
}

// Kind reports the stemmer variant.
func (s *Stemmer) Kind() StemmerKind {
	if s == nil || s.kind == "" {
		return KindNone
	}
	return s.kind
}

// Stem returns the stem of word. It never fails: a word the stemmer
// cannot handle is returned unchanged.
func (s *Stemmer) Stem(word string) string {
	if s == nil {
		return word
	}
	switch s.kind {
	case KindTables:
		return stemWithTables(word, s.tables)
	case KindSnowball:
		stem, err := snowball.Stem(word, s.algorithm, true)
		if err != nil || stem == "" {
			return word
		}
		return stem
	case KindPorter2:
		if word == "" {
			return word
		}
		return porter2.Stem(word)
	default:
		return word
	}
}

// Stem reduces word with the stemming tables of m.
// A nil or empty Morphology leaves the word unchanged.
func Stem(word string, m *Morphology) string {
	if m == nil {
		return word
	}
	return stemWithTables(word, &m.Stemmer)
}

func stemWithTables(word string, t *StemmerTables) string {
	if t == nil || t.empty() {
		return word
	}
	n := utf8.RuneCountInString(word)
	if n < 2 || n < t.MinLength {
		return word
	}

	w := t.normalize(word)
	for i := range t.Steps {
		step := &t.Steps[i]
		out, applied := step.apply(w)
		if !applied {
			continue
		}
		w = out
		if !step.Continue {
			break
		}
	}
	return w
}

func (t *StemmerTables) empty() bool {
	return len(t.Steps) == 0 && len(t.CharacterMap) == 0 && !t.StripMarks
}

func (t *StemmerTables) normalize(w string) string {
	if t.StripMarks {
		w = StripMarks(w)
	}
	switch {
	case t.replacer != nil:
		w = t.replacer.Replace(w)
	case len(t.CharacterMap) > 0:
		w = characterReplacer(t.CharacterMap).Replace(w)
	}
	return w
}

// characterReplacer builds a replacer with keys in a fixed order so that
// overlapping keys always resolve the same way.
func characterReplacer(m map[string]string) *strings.Replacer {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, m[k])
	}
	return strings.NewReplacer(pairs...)
}

// apply runs one step on w. Exceptions are checked first; otherwise the
// first rule that matches wins.
func (s *Step) apply(w string) (string, bool) {
	if out, ok := s.exception(w); ok {
		return out, true
	}
	for i := range s.Rules {
		if out, ok := s.Rules[i].apply(w); ok {
			return out, true
		}
	}
	return w, false
}

func (s *Step) exception(w string) (string, bool) {
	for _, e := range s.Exceptions {
		if s.ExceptionMode == exceptionEnding {
			if strings.HasSuffix(w, e.Match) {
				return w[:len(w)-len(e.Match)] + e.Replace, true
			}
			continue
		}
		if w == e.Match {
			return e.Replace, true
		}
	}
	return "", false
}

func (r *Rule) apply(w string) (string, bool) {
	stem := w
	if len(r.Prefixes) > 0 {
		i := matchingPrefix(stem, r.Prefixes)
		if i < 0 {
			return w, false
		}
		stem = stem[len(r.Prefixes[i]):]
	}
	if len(r.Endings) > 0 {
		i := matchingSuffix(stem, r.Endings)
		if i < 0 {
			return w, false
		}
		stem = stem[:len(stem)-len(r.Endings[i])]
	}
	if stem == "" || !r.When.Holds(stem) {
		return w, false
	}

	var restored string
	for i := range r.Restore {
		if r.Restore[i].When.Holds(stem) {
			restored = r.Restore[i].Append
			break
		}
	}
	return stem + r.Replace + restored, true
}

// matchingSuffix returns the index of the first entry of list that s ends
// with, or -1.
func matchingSuffix(s string, list []string) int {
	for i, suf := range list {
		if strings.HasSuffix(s, suf) {
			return i
		}
	}
	return -1
}

func matchingPrefix(s string, list []string) int {
	for i, pre := range list {
		if strings.HasPrefix(s, pre) {
			return i
		}
	}
	return -1
}
