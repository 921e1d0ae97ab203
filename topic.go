package keyforms

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// CollectStems stems the keyphrase and every comma-separated synonym
// phrase with the stemmer of lang. Empty input yields empty phrases.
func CollectStems(keyphrase, synonyms string, lang *Language) TopicStems {
	if lang == nil {
		lang = &Language{Stemmer: IdentityStemmer()}
	}
	lower := newLowerer(lang.Code)

	out := TopicStems{
		KeyphraseStems: topicPhrase(keyphrase, lang, lower),
		SynonymsStems:  []TopicPhrase{},
	}
	for _, s := range SplitSynonyms(synonyms) {
		out.SynonymsStems = append(out.SynonymsStems, topicPhrase(s, lang, lower))
	}
	return out
}

// SplitSynonyms splits a synonyms field on commas and drops blank entries.
func SplitSynonyms(synonyms string) []string {
	var out []string
	for _, s := range strings.Split(synonyms, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func topicPhrase(phrase string, lang *Language, lower *lowerer) TopicPhrase {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return TopicPhrase{}
	}
	if inner, ok := exactMatchPhrase(phrase); ok {
		return TopicPhrase{
			Pairs:      []StemOriginalPair{{Original: inner, Stem: regexp.QuoteMeta(inner)}},
			ExactMatch: true,
		}
	}

	words := contentWords(Words(phrase), lang, lower)
	p := TopicPhrase{Pairs: make([]StemOriginalPair, 0, len(words))}
	for _, w := range words {
		p.Pairs = append(p.Pairs, StemOriginalPair{
			Original: w,
			Stem:     lang.Stemmer.Stem(NormalizeSingleQuotes(lower.lower(w))),
		})
	}
	return p
}

// exactMatchPhrase strips the double quotes around an exact-match phrase.
func exactMatchPhrase(phrase string) (string, bool) {
	first, n := utf8.DecodeRuneInString(phrase)
	last, m := utf8.DecodeLastRuneInString(phrase)
	if len(phrase) <= n || !isDoubleQuote(first) || !isDoubleQuote(last) {
		return "", false
	}
	inner := strings.TrimSpace(phrase[n : len(phrase)-m])
	if inner == "" {
		return "", false
	}
	return inner, true
}

// contentWords drops function words unless nothing would remain.
func contentWords(words []string, lang *Language, lower *lowerer) []string {
	if len(lang.FunctionWords) == 0 {
		return words
	}
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !lang.IsFunctionWord(lower.lower(w)) {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return words
	}
	return out
}
