package keyforms

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Morphology is the rule-table bundle for one language.
// It is immutable once loaded and safe for concurrent use.
type Morphology struct {
	// Language is the language code the tables belong to (e.g. "el").
	Language string `json:"language"`
	// Stemmer holds the ordered stemming steps.
	Stemmer StemmerTables `json:"stemmer"`
	// Forms lists the form groups used to regenerate inflected forms.
	Forms []FormGroup `json:"forms"`
	// Checksum is the xxhash64 of the source bytes; it versions the tables.
	Checksum uint64 `json:"-"`
}

// StemmerTables drives the table stemmer.
type StemmerTables struct {
	// MinLength is the minimum token length, in runes, that gets stemmed.
	MinLength int `json:"minLength"`
	// CharacterMap replaces single characters before any step runs
	// (final sigma, ligatures, ...).
	CharacterMap map[string]string `json:"characterMap"`
	// StripMarks removes combining marks (accents, diaeresis) after NFD.
	StripMarks bool `json:"stripMarks"`
	// Steps run in order; see Step.
	Steps []Step `json:"steps"`

	replacer *strings.Replacer
}

// Step is one stemming stage.
type Step struct {
	Name string `json:"name"`
	// ExceptionMode is "word" (default) or "ending".
	ExceptionMode string `json:"exceptionMode"`
	// Exceptions are checked before Rules. A hit replaces the matched
	// word (or ending) and short-circuits the step.
	Exceptions []Exception `json:"exceptions"`
	Rules      []Rule      `json:"rules"`
	// Continue lets later steps run after this one applied.
	Continue bool `json:"continue"`
}

// Exception maps a word or ending to its replacement.
// It is encoded as a two-element JSON array.
type Exception struct {
	Match   string
	Replace string
}

// UnmarshalJSON decodes ["match", "replace"].
func (e *Exception) UnmarshalJSON(b []byte) error {
	var pair []string
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: exception needs 2 elements, got %d", ErrInvalidRule, len(pair))
	}
	e.Match, e.Replace = pair[0], pair[1]
	return nil
}

// Rule strips an ending (and optionally a prefix) when the remaining
// stem satisfies When.
type Rule struct {
	Endings  []string  `json:"endings"`
	Prefixes []string  `json:"prefixes"`
	Replace  string    `json:"replace"`
	When     Condition `json:"when"`
	// Restore is evaluated after stripping; the first entry whose
	// condition holds appends its text to the stem.
	Restore []Restore `json:"restore"`
}

// Restore conditionally appends material to a stripped stem.
type Restore struct {
	When   Condition `json:"when"`
	Append string    `json:"append"`
}

// Condition is a conjunction of tests on a stem. The zero value always holds.
type Condition struct {
	In          []string `json:"in"`
	NotIn       []string `json:"notIn"`
	EndsWith    []string `json:"endsWith"`
	NotEndsWith []string `json:"notEndsWith"`
	Matches     string   `json:"matches"`
	MinLength   int      `json:"minLength"`
	MaxLength   int      `json:"maxLength"`

	re *regexp.Regexp
}

// Holds reports whether stem satisfies every test of c.
func (c *Condition) Holds(stem string) bool {
	n := utf8.RuneCountInString(stem)
	if c.MinLength > 0 && n < c.MinLength {
		return false
	}
	if c.MaxLength > 0 && n > c.MaxLength {
		return false
	}
	if len(c.In) > 0 && !contains(c.In, stem) {
		return false
	}
	if contains(c.NotIn, stem) {
		return false
	}
	if len(c.EndsWith) > 0 && matchingSuffix(stem, c.EndsWith) < 0 {
		return false
	}
	if matchingSuffix(stem, c.NotEndsWith) >= 0 {
		return false
	}
	if c.Matches != "" {
		re := c.re
		if re == nil {
			var err error
			if re, err = regexp.Compile(c.Matches); err != nil {
				return false
			}
		}
		if !re.MatchString(stem) {
			return false
		}
	}
	return true
}

func (c *Condition) compile() error {
	if c.Matches == "" {
		return nil
	}
	re, err := regexp.Compile(c.Matches)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	c.re = re
	return nil
}

// FormGroup describes one family of inflected forms.
type FormGroup struct {
	Name     string   `json:"name"`
	Suffixes []string `json:"suffixes"`
	Infix    string   `json:"infix"`
	// Deletions drop suffixes for stems with certain endings.
	Deletions map[string]SuffixDeletion `json:"deletions"`
	// Modifications adjust the stem before suffixes are added.
	Modifications []Modification `json:"modifications"`
	// RequireModification skips the group when no modification matched.
	RequireModification bool `json:"requireModification"`
	// KeepStem also applies the suffixes to the unmodified stem.
	KeepStem    bool     `json:"keepStem"`
	Participle  *Affixes `json:"participle"`
	ExtraPrefix string   `json:"extraPrefix"`
}

// SuffixDeletion removes Suffixes when the stem ends with one of Endings.
// It is encoded as [[endings...], [suffixes...]].
type SuffixDeletion struct {
	Endings  []string
	Suffixes []string
}

// UnmarshalJSON decodes [[endings...], [suffixes...]].
func (d *SuffixDeletion) UnmarshalJSON(b []byte) error {
	var pair [][]string
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: suffix deletion needs 2 lists, got %d", ErrInvalidRule, len(pair))
	}
	d.Endings, d.Suffixes = pair[0], pair[1]
	return nil
}

// Modification replaces the first match of Pattern with Replacement.
// It is encoded as ["pattern", "replacement"].
type Modification struct {
	Pattern     string
	Replacement string

	re *regexp.Regexp
}

// NewModification compiles pattern.
func NewModification(pattern, replacement string) (Modification, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Modification{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	return Modification{Pattern: pattern, Replacement: replacement, re: re}, nil
}

// MustModification is like NewModification but panics on a bad pattern.
func MustModification(pattern, replacement string) Modification {
	m, err := NewModification(pattern, replacement)
	if err != nil {
		panic(err)
	}
	return m
}

// UnmarshalJSON decodes ["pattern", "replacement"] and compiles the pattern.
func (m *Modification) UnmarshalJSON(b []byte) error {
	var pair []string
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: modification needs 2 elements, got %d", ErrInvalidRule, len(pair))
	}
	mod, err := NewModification(pair[0], pair[1])
	if err != nil {
		return err
	}
	*m = mod
	return nil
}

// Affixes is a prefix/suffix pair used for participles.
type Affixes struct {
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
}

// compile precompiles every regexp condition in the tables.
func (m *Morphology) compile() error {
	if len(m.Stemmer.CharacterMap) > 0 {
		m.Stemmer.replacer = characterReplacer(m.Stemmer.CharacterMap)
	}
	for si := range m.Stemmer.Steps {
		step := &m.Stemmer.Steps[si]
		switch step.ExceptionMode {
		case "", exceptionWord, exceptionEnding:
		default:
			return fmt.Errorf("%w: step %q: unknown exception mode %q", ErrInvalidRule, step.Name, step.ExceptionMode)
		}
		for ri := range step.Rules {
			rule := &step.Rules[ri]
			if len(rule.Endings) == 0 && len(rule.Prefixes) == 0 {
				return fmt.Errorf("%w: step %q rule %d has no endings or prefixes", ErrInvalidRule, step.Name, ri)
			}
			if err := rule.When.compile(); err != nil {
				return fmt.Errorf("step %q rule %d: %w", step.Name, ri, err)
			}
			for i := range rule.Restore {
				if err := rule.Restore[i].When.compile(); err != nil {
					return fmt.Errorf("step %q rule %d restore %d: %w", step.Name, ri, i, err)
				}
			}
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
