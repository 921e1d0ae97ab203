package keyforms

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	registryFile      = "languages.toml"
	morphologyFile    = "morphology.json"
	functionWordsFile = "function-words.yaml"
)

// registry mirrors languages.toml.
type registry struct {
	Languages []registryEntry `toml:"languages"`
}

type registryEntry struct {
	Code    string `toml:"code"`
	Name    string `toml:"name"`
	Stemmer string `toml:"stemmer"`
	// Algorithm names the Snowball algorithm for stemmer = "snowball".
	Algorithm string `toml:"algorithm"`
}

// New loads the language data found in dataDir.
func New(dataDir string, opts ...Option) (*Engine, error) {
	return NewFS(os.DirFS(dataDir), opts...)
}

// NewFS loads the language data from fsys. The registry languages.toml
// sits at the root, each language keeps its tables in a directory named
// after its code.
func NewFS(fsys fs.FS, opts ...Option) (*Engine, error) {
	e := newEngine(opts)

	reg, err := loadRegistry(fsys)
	if err != nil {
		return nil, err
	}
	for _, entry := range reg.Languages {
		lang, err := e.loadLanguage(fsys, entry)
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", entry.Code, err)
		}
		e.languages[lang.Code] = lang
	}
	return e, nil
}

// loadRegistry reads languages.toml.
func loadRegistry(fsys fs.FS) (*registry, error) {
	b, err := fs.ReadFile(fsys, registryFile)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", registryFile, err)
	}
	var reg registry
	if err := toml.Unmarshal(b, &reg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", registryFile, err)
	}
	if len(reg.Languages) == 0 {
		return nil, fmt.Errorf("%s: %w", registryFile, ErrNoLanguages)
	}
	return &reg, nil
}

func (e *Engine) loadLanguage(fsys fs.FS, entry registryEntry) (*Language, error) {
	code := strings.ToLower(strings.TrimSpace(entry.Code))
	if code == "" {
		return nil, errors.New("missing language code")
	}
	kind, err := ParseStemmerKind(entry.Stemmer)
	if err != nil {
		return nil, err
	}

	lang := &Language{Code: code, Name: entry.Name}
	if lang.Morphology, err = e.loadMorphology(fsys, code); err != nil {
		return nil, err
	}
	if lang.FunctionWords, err = e.loadFunctionWords(fsys, code); err != nil {
		return nil, err
	}

	switch kind {
	case KindTables:
		lang.Stemmer = TableStemmer(lang.Morphology)
	case KindSnowball:
		if lang.Stemmer, err = SnowballStemmer(entry.Algorithm); err != nil {
			return nil, err
		}
	case KindPorter2:
		lang.Stemmer = Porter2Stemmer()
	default:
		lang.Stemmer = IdentityStemmer()
	}

	attrs := []any{
		"language", code,
		"stemmer", lang.Stemmer.Kind(),
		"function_words", len(lang.FunctionWords),
	}
	if lang.Morphology != nil {
		attrs = append(attrs, "checksum", fmt.Sprintf("%016x", lang.Morphology.Checksum))
	}
	e.logger.Debug("language loaded", attrs...)
	return lang, nil
}

// loadMorphology reads <code>/morphology.json. A missing file is not an error.
func (e *Engine) loadMorphology(fsys fs.FS, code string) (*Morphology, error) {
	name := path.Join(code, morphologyFile)
	b, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		e.logger.Debug("no morphology tables", "language", code)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	m, err := ParseMorphology(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if m.Language == "" {
		m.Language = code
	}
	return m, nil
}

// ParseMorphology decodes and validates JSON rule tables.
func ParseMorphology(b []byte) (*Morphology, error) {
	var m Morphology
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	if err := m.compile(); err != nil {
		return nil, err
	}
	m.Checksum = xxhash.Sum64(b)
	return &m, nil
}

// loadFunctionWords reads <code>/function-words.yaml, a mapping of
// category to word list. A missing file is not an error.
func (e *Engine) loadFunctionWords(fsys fs.FS, code string) (map[string]struct{}, error) {
	name := path.Join(code, functionWordsFile)
	b, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		e.logger.Debug("no function words", "language", code)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	var categories map[string][]string
	if err := yaml.Unmarshal(b, &categories); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	lower := newLowerer(code)
	words := make(map[string]struct{})
	for _, list := range categories {
		for _, w := range list {
			if w = strings.TrimSpace(w); w != "" {
				words[NormalizeSingleQuotes(lower.lower(w))] = struct{}{}
			}
		}
	}
	return words, nil
}
