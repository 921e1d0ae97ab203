package keyforms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProminentWords(t *testing.T) {
	e := newTestEngine(t)

	cases := []struct {
		name string
		doc  Document
		want []ProminentWord
	}{
		{
			name: "no morphology",
			doc:  Document{Text: "texte et texte", Locale: "fr_FR"},
			want: []ProminentWord{{Word: "texte", Stem: "texte", Occurrences: 2}},
		},
		{
			name: "syllables",
			doc: Document{
				Text: "Here are a ton of syllables. Syllables are very important. I think the syllable " +
					"combinations are even more important. Syllable combinations for the win!",
				Locale: "en_US",
			},
			want: []ProminentWord{
				{Word: "syllable", Stem: "syllable", Occurrences: 4},
				{Word: "combinations", Stem: "combination", Occurrences: 2},
			},
		},
		{
			name: "text and attributes",
			doc: Document{
				Text: "As we announced at YoastCon, we’re working together with Bing and Google to allow live indexing for " +
					"everyone who uses Yoast SEO — free and premium. " +
					"<h2>Subheading!</h2>" +
					"In an update currently planned for the end of March, we’ll " +
					"allow users to connect their sites to MyYoast, our customer portal. After that we’ll roll out live indexing, " +
					"which means every time you publish, update, or delete a post, that will be reflected almost instantly into " +
					"Bing and Google’s indices. How does this work? When you connect your site to MyYoast...",
				Keyword:     "live indexing Yoast SEO",
				Synonyms:    "live index",
				Title:       "Amazing title",
				Description: "Awesome metadescription",
				Locale:      "en_EN",
			},
			// text occurrences + 3 * attribute occurrences
			want: []ProminentWord{
				{Word: "index", Stem: "index", Occurrences: 9},
				{Word: "live", Stem: "live", Occurrences: 8},
				{Word: "yoast", Stem: "yoast", Occurrences: 4},
				{Word: "SEO", Stem: "seo", Occurrences: 4},
				{Word: "amazing", Stem: "amaze", Occurrences: 3},
				{Word: "title", Stem: "title", Occurrences: 3},
				{Word: "metadescription", Stem: "metadescription", Occurrences: 3},
				{Word: "subheading", Stem: "subhead", Occurrences: 3},
				{Word: "work", Stem: "work", Occurrences: 2},
				{Word: "bing", Stem: "bing", Occurrences: 2},
				{Word: "google", Stem: "google", Occurrences: 2},
				{Word: "allow", Stem: "allow", Occurrences: 2},
				{Word: "update", Stem: "update", Occurrences: 2},
				{Word: "connect", Stem: "connect", Occurrences: 2},
				{Word: "site", Stem: "site", Occurrences: 2},
				{Word: "myyoast", Stem: "myyoast", Occurrences: 2},
			},
		},
		{
			name: "apostrophes",
			doc:  Document{Text: "Google and Google’s indices. We’ll go, we’ll stay. We'll see.", Locale: "en_US"},
			want: []ProminentWord{{Word: "google", Stem: "google", Occurrences: 2}},
		},
		{
			name: "abbreviations keep their case",
			doc:  Document{Text: "SEO tips. More SEO, better seo.", Locale: "en_US"},
			want: []ProminentWord{{Word: "SEO", Stem: "seo", Occurrences: 3}},
		},
		{
			name: "empty",
			doc:  Document{Locale: "en_US"},
			want: []ProminentWord{},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, e.ProminentWords(c.doc))
		})
	}
}

func TestProminentWordsTies(t *testing.T) {
	got := newTestEngine(t).ProminentWords(Document{
		Text:   "zebra apple zebra apple mango mango mango",
		Locale: "nl_NL",
	})
	assert.Equal(t, []ProminentWord{
		{Word: "mango", Stem: "mango", Occurrences: 3},
		{Word: "zebra", Stem: "zebra", Occurrences: 2},
		{Word: "apple", Stem: "apple", Occurrences: 2},
	}, got)
}

func TestProminentWordsIgnoresNumbersAndMarkup(t *testing.T) {
	got := newTestEngine(t).ProminentWords(Document{
		Text:   `<a href="working.html">2024</a> 2024 working <img alt="x"> works`,
		Locale: "en_US",
	})
	assert.Equal(t, []ProminentWord{{Word: "working", Stem: "work", Occurrences: 2}}, got)
}

func TestProminentWordsOptions(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta ", 2) + "epsilon"

	e := newTestEngine(t, WithMinOccurrences(1), WithMaxProminentWords(3))
	got := e.ProminentWords(Document{Text: text, Locale: "nl"})
	assert.Equal(t, []ProminentWord{
		{Word: "alpha", Stem: "alpha", Occurrences: 2},
		{Word: "beta", Stem: "beta", Occurrences: 2},
		{Word: "gamma", Stem: "gamma", Occurrences: 2},
	}, got)

	e = newTestEngine(t, WithMinOccurrences(1), WithMaxProminentWords(0))
	assert.Len(t, e.ProminentWords(Document{Text: text, Locale: "nl"}), 5)
}

func TestProminentWordsGreek(t *testing.T) {
	got := newTestEngine(t).ProminentWords(Document{
		Text:   "Τα παιδιά παίζουν. Το παιδί και τα παιδιά.",
		Title:  "Παιδιά",
		Locale: "el_GR",
	})
	assert.Equal(t, []ProminentWord{{Word: "παιδιά", Stem: "παιδ", Occurrences: 6}}, got)
}

func TestProminentWordsSubheadings(t *testing.T) {
	got := newTestEngine(t).ProminentWords(Document{
		Text:   "<h2>Grows <em>fast</em></h2><p>It grows.</p><H3 class=\"x\">Fast</H3><h4>grows</h4>",
		Locale: "en_US",
	})
	assert.Equal(t, []ProminentWord{
		{Word: "fast", Stem: "fast", Occurrences: 6},
		{Word: "grows", Stem: "grow", Occurrences: 5},
	}, got)
}
