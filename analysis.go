package keyforms

// Document is the unit of analysis.
type Document struct {
	Text        string `json:"text"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	// Keyword is the focus keyphrase. Surrounding double quotes ask for
	// an exact match.
	Keyword string `json:"keyword"`
	// Synonyms is a comma-separated list of phrases.
	Synonyms string `json:"synonyms"`
	// Locale such as "en_US". Empty means the engine's default locale.
	Locale string `json:"locale"`
}

// StemOriginalPair holds a phrase token and its stem.
type StemOriginalPair struct {
	Original string `json:"original"`
	Stem     string `json:"stem"`
}

// TopicPhrase is a keyphrase or one synonym phrase.
type TopicPhrase struct {
	Pairs      []StemOriginalPair `json:"pairs"`
	ExactMatch bool               `json:"exactMatch"`
}

// Len is the number of tokens in the phrase. Zero means an empty phrase.
func (p TopicPhrase) Len() int {
	return len(p.Pairs)
}

// Stems returns the stems of the phrase in order.
func (p TopicPhrase) Stems() []string {
	out := make([]string, 0, len(p.Pairs))
	for _, pair := range p.Pairs {
		out = append(out, pair.Stem)
	}
	return out
}

// TopicStems is the stemmed keyphrase plus one TopicPhrase per synonym.
type TopicStems struct {
	KeyphraseStems TopicPhrase   `json:"keyphraseStems"`
	SynonymsStems  []TopicPhrase `json:"synonymsStems"`
}

// Empty reports whether neither the keyphrase nor any synonym has tokens.
func (t TopicStems) Empty() bool {
	return t.KeyphraseStems.Len() == 0 && len(t.SynonymsStems) == 0
}

// StemWithForms maps a stem to the literal forms seen for it,
// in discovery order.
type StemWithForms struct {
	Stem  string   `json:"stem"`
	Forms []string `json:"forms"`
}

// Result holds the form groups found in a document: one group per
// keyphrase token, and one list of groups per synonym phrase.
type Result struct {
	KeyphraseForms [][]string   `json:"keyphraseForms"`
	SynonymsForms  [][][]string `json:"synonymsForms"`
}

func emptyResult() Result {
	return Result{
		KeyphraseForms: [][]string{},
		SynonymsForms:  [][][]string{},
	}
}

// ProminentWord is a stem ranked by its weighted number of occurrences.
type ProminentWord struct {
	// Word is the representative surface form.
	Word        string `json:"word"`
	Stem        string `json:"stem"`
	Occurrences int    `json:"occurrences"`
}

// InflectionTable holds the forms generated for a word.
type InflectionTable struct {
	Word     string           `json:"word"`
	Language string           `json:"language"`
	Stem     string           `json:"stem"`
	Cells    []InflectionCell `json:"cells"`
}

// InflectionCell holds the forms contributed by one form group.
type InflectionCell struct {
	Group string   `json:"group"`
	Forms []string `json:"forms"`
}

// Forms returns the stem followed by every generated form, without duplicates.
func (t *InflectionTable) Forms() []string {
	if t == nil {
		return nil
	}
	all := []string{t.Stem}
	for _, c := range t.Cells {
		all = append(all, c.Forms...)
	}
	return unique(all)
}

// Analysis is the output of Engine.Analyze for one document.
type Analysis struct {
	Forms          Result          `json:"forms"`
	ProminentWords []ProminentWord `json:"prominentWords"`
}
