package keyforms

// MatchForms finds, for every token of the keyphrase and synonyms of doc,
// the word forms that occur in the document. A token whose stem never
// occurs falls back to its own lower-cased, escaped spelling.
func (e *Engine) MatchForms(doc Document) Result {
	lang := e.Language(doc.Locale)
	topic := CollectStems(doc.Keyword, doc.Synonyms, lang)
	if topic.Empty() {
		return emptyResult()
	}
	lower := newLowerer(lang.Code)

	targets := make(map[string]struct{})
	for _, s := range topic.KeyphraseStems.Stems() {
		targets[s] = struct{}{}
	}
	for _, p := range topic.SynonymsStems {
		for _, s := range p.Stems() {
			targets[s] = struct{}{}
		}
	}

	found := newStemIndex()
	for _, w := range documentWords(doc, lower) {
		if lang.IsFunctionWord(w) {
			continue
		}
		stem := lang.Stemmer.Stem(NormalizeSingleQuotes(w))
		if _, ok := targets[stem]; ok {
			found.add(stem, w)
		}
	}

	res := emptyResult()
	res.KeyphraseForms = phraseForms(topic.KeyphraseStems, found, lower)
	for _, p := range topic.SynonymsStems {
		res.SynonymsForms = append(res.SynonymsForms, phraseForms(p, found, lower))
	}
	return res
}

// FormsForStems groups the lower-cased words of doc by stem, keeping only
// the given stems. When stems is nil or empty, every group is returned.
// Function words are never grouped. Groups come out in discovery order.
func (e *Engine) FormsForStems(doc Document, stems []string) []StemWithForms {
	lang := e.Language(doc.Locale)
	lower := newLowerer(lang.Code)
	targets := make(map[string]struct{}, len(stems))
	for _, s := range stems {
		targets[s] = struct{}{}
	}
	found := newStemIndex()
	for _, w := range documentWords(doc, lower) {
		if lang.IsFunctionWord(w) {
			continue
		}
		if stem := lang.Stemmer.Stem(NormalizeSingleQuotes(w)); len(targets) == 0 || has(targets, stem) {
			found.add(stem, w)
		}
	}
	return found.groups()
}

func has(set map[string]struct{}, k string) bool {
	_, ok := set[k]
	return ok
}

func phraseForms(p TopicPhrase, found *stemIndex, lower *lowerer) [][]string {
	out := make([][]string, 0, p.Len())
	if p.Len() == 0 {
		return out
	}
	if p.ExactMatch {
		return append(out, []string{p.Pairs[0].Stem})
	}
	for _, pair := range p.Pairs {
		if forms := found.forms(pair.Stem); len(forms) > 0 {
			out = append(out, forms)
			continue
		}
		out = append(out, []string{EscapeForm(lower.lower(pair.Original))})
	}
	return out
}

// documentWords collects the lower-cased, deduplicated words of the text,
// title, slug and description of doc, in that order.
func documentWords(doc Document, lower *lowerer) []string {
	var words []string
	words = append(words, Words(StripTags(doc.Text))...)
	words = append(words, Words(doc.Title)...)
	words = append(words, slugWords(doc.URL)...)
	words = append(words, Words(doc.Description)...)

	out := make([]string, 0, len(words))
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		w = lower.lower(w)
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

// stemIndex is an insertion-ordered map from stem to its forms.
type stemIndex struct {
	order []string
	byKey map[string]*StemWithForms
}

func newStemIndex() *stemIndex {
	return &stemIndex{byKey: make(map[string]*StemWithForms)}
}

func (x *stemIndex) add(stem, form string) {
	g, ok := x.byKey[stem]
	if !ok {
		g = &StemWithForms{Stem: stem}
		x.byKey[stem] = g
		x.order = append(x.order, stem)
	}
	if !contains(g.Forms, form) {
		g.Forms = append(g.Forms, form)
	}
}

func (x *stemIndex) forms(stem string) []string {
	if g, ok := x.byKey[stem]; ok {
		return g.Forms
	}
	return nil
}

func (x *stemIndex) groups() []StemWithForms {
	out := make([]StemWithForms, 0, len(x.order))
	for _, s := range x.order {
		out = append(out, *x.byKey[s])
	}
	return out
}
