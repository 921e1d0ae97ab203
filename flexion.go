package keyforms

import "strings"

// RemoveSuffixesBeforeAdding drops the suffixes that must not be attached
// to stem. Every deletion whose endings match stem removes its suffixes;
// deletions are cumulative. The order of the remaining suffixes is kept.
func RemoveSuffixesBeforeAdding(deletions map[string]SuffixDeletion, suffixes []string, stem string) []string {
	if len(deletions) == 0 {
		return suffixes
	}
	drop := make(map[string]bool)
	for _, d := range deletions {
		if matchingSuffix(stem, d.Endings) < 0 {
			continue
		}
		for _, s := range d.Suffixes {
			drop[s] = true
		}
	}
	if len(drop) == 0 {
		return suffixes
	}
	out := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		if !drop[s] {
			out = append(out, s)
		}
	}
	return out
}

// ModifyStem applies the first modification whose pattern matches stem.
// Only the first occurrence of the pattern is replaced. It reports false
// when no pattern matches; the caller then keeps the original stem.
func ModifyStem(stem string, group []Modification) (string, bool) {
	for i := range group {
		m := &group[i]
		re := m.re
		if re == nil {
			compiled, err := NewModification(m.Pattern, m.Replacement)
			if err != nil {
				continue
			}
			re = compiled.re
		}
		loc := re.FindStringSubmatchIndex(stem)
		if loc == nil {
			continue
		}
		var b strings.Builder
		b.WriteString(stem[:loc[0]])
		b.Write(re.ExpandString(nil, m.Replacement, stem, loc))
		b.WriteString(stem[loc[1]:])
		return b.String(), true
	}
	return "", false
}

// ApplySuffixesToStem returns stem+infix+suffix for every suffix, in order.
func ApplySuffixesToStem(stem string, suffixes []string, infix string) []string {
	forms := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		forms = append(forms, stem+infix+s)
	}
	return forms
}

// ApplySuffixesToStems is the stem-major cross product of stems and suffixes.
func ApplySuffixesToStems(stems, suffixes []string, infix string) []string {
	forms := make([]string, 0, len(stems)*len(suffixes))
	for _, stem := range stems {
		forms = append(forms, ApplySuffixesToStem(stem, suffixes, infix)...)
	}
	return forms
}

// AddParticipleAffixes returns extraPrefix+prefix+stem+suffix.
func AddParticipleAffixes(stem string, affixes Affixes, extraPrefix string) string {
	return extraPrefix + affixes.Prefix + stem + affixes.Suffix
}

// inflectionTable stems word and generates the forms of every form group
// of lang. Groups that produce nothing are left out.
func inflectionTable(lang *Language, word string) *InflectionTable {
	lower := newLowerer(lang.Code).lower(word)
	table := &InflectionTable{
		Word:     word,
		Language: lang.Code,
		Stem:     lang.Stemmer.Stem(lower),
	}
	if lang.Morphology == nil {
		return table
	}
	for i := range lang.Morphology.Forms {
		forms := groupForms(table.Stem, &lang.Morphology.Forms[i])
		if len(forms) > 0 {
			table.Cells = append(table.Cells, InflectionCell{
				Group: lang.Morphology.Forms[i].Name,
				Forms: forms,
			})
		}
	}
	return table
}

// groupForms builds the forms one group contributes for stem.
func groupForms(stem string, g *FormGroup) []string {
	stems := []string{stem}
	if len(g.Modifications) > 0 {
		modified, ok := ModifyStem(stem, g.Modifications)
		switch {
		case ok && g.KeepStem:
			stems = append(stems, modified)
		case ok:
			stems = []string{modified}
		case g.RequireModification:
			return nil
		}
	}

	suffixes := RemoveSuffixesBeforeAdding(g.Deletions, g.Suffixes, stem)
	forms := ApplySuffixesToStems(stems, suffixes, g.Infix)
	if g.Participle != nil {
		for _, s := range stems {
			forms = append(forms, AddParticipleAffixes(s, *g.Participle, g.ExtraPrefix))
		}
	}
	return unique(forms)
}

// unique returns a deduplicated slice preserving order.
func unique(ss []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range ss {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
