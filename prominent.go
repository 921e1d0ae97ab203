package keyforms

import (
	"regexp"
	"sort"
	"strings"
)

// subheadingRe matches h2 and h3 elements of the body text.
var subheadingRe = regexp.MustCompile(`(?is)<h2\b[^>]*>(.*?)</h2>|<h3\b[^>]*>(.*?)</h3>`)

// ProminentWords ranks the stems of doc by weighted occurrences: each use
// in the body text counts once, each use in the title, description,
// keyword, synonyms or an h2/h3 subheading counts AttributeWeight times.
// Ties keep the order in which the stems were first seen.
func (e *Engine) ProminentWords(doc Document) []ProminentWord {
	lang := e.Language(doc.Locale)
	s := newScorer(lang)

	text, subheadings := splitSubheadings(doc.Text)
	s.count(Words(StripTags(text)), 1)
	attributes := append([]string{doc.Title, doc.Description, doc.Keyword, doc.Synonyms}, subheadings...)
	s.count(Words(strings.Join(attributes, " ")), AttributeWeight)

	return s.result(e.minOccurrences, e.maxProminentWords)
}

// splitSubheadings removes the h2 and h3 elements from text and returns
// their tag-free contents separately.
func splitSubheadings(text string) (string, []string) {
	if !strings.Contains(text, "<") {
		return text, nil
	}
	var subheadings []string
	for _, m := range subheadingRe.FindAllStringSubmatch(text, -1) {
		subheadings = append(subheadings, StripTags(m[1]+m[2]))
	}
	if len(subheadings) == 0 {
		return text, nil
	}
	return subheadingRe.ReplaceAllString(text, " "), subheadings
}

type scorer struct {
	lang  *Language
	lower *lowerer
	order []string
	words map[string]*ProminentWord
}

func newScorer(lang *Language) *scorer {
	return &scorer{
		lang:  lang,
		lower: newLowerer(lang.Code),
		words: make(map[string]*ProminentWord),
	}
}

func (s *scorer) count(tokens []string, weight int) {
	for _, tok := range tokens {
		if !hasLetter(tok) {
			continue
		}
		lower := NormalizeSingleQuotes(s.lower.lower(tok))
		if s.lang.IsFunctionWord(lower) {
			continue
		}
		word, stem := lower, lower
		if isAbbreviation(tok) {
			word = tok
		} else {
			stem = s.lang.Stemmer.Stem(lower)
		}

		pw, ok := s.words[stem]
		if !ok {
			pw = &ProminentWord{Word: word, Stem: stem}
			s.words[stem] = pw
			s.order = append(s.order, stem)
		} else if !strings.EqualFold(pw.Word, stem) && strings.EqualFold(word, stem) {
			pw.Word = word
		}
		pw.Occurrences += weight
	}
}

func (s *scorer) result(minOccurrences, limit int) []ProminentWord {
	out := make([]ProminentWord, 0, len(s.order))
	for _, stem := range s.order {
		if pw := s.words[stem]; pw.Occurrences >= minOccurrences {
			out = append(out, *pw)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Occurrences > out[j].Occurrences
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
