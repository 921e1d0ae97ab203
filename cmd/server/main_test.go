package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cours-de-latin/keyforms"
)

func newTestHandler(t *testing.T, cfg Config) http.Handler {
	t.Helper()
	engine, err := keyforms.Default()
	require.NoError(t, err)
	if cfg.CORS.AllowedOrigins == nil {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	return newHandler(engine, slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)
}

func do(t *testing.T, h http.Handler, req *http.Request, out any) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec
}

func TestStemEndpoint(t *testing.T) {
	h := newTestHandler(t, Config{})

	var got stemResponse
	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/api/stem?word=Syllables&locale=en_US", nil), &got)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, stemResponse{Word: "Syllables", Language: "en", Stem: "syllable"}, got)

	rec = do(t, h, httptest.NewRequest(http.MethodGet, "/api/stem?word=gespielt", nil), &got)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "en", got.Language)
}

func TestQueryErrors(t *testing.T) {
	h := newTestHandler(t, Config{})

	cases := []struct {
		name, target string
		status       int
		message      string
	}{
		{"missing word", "/api/stem?locale=en_US", http.StatusBadRequest, "missing 'word' query parameter"},
		{"unknown language", "/api/stem?word=fietsen&locale=nl_NL", http.StatusNotFound, `language of locale "nl_NL" not found`},
		{"inflection without word", "/api/inflection", http.StatusBadRequest, "missing 'word' query parameter"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got errorResponse
			rec := do(t, h, httptest.NewRequest(http.MethodGet, c.target, nil), &got)
			assert.Equal(t, c.status, rec.Code)
			assert.Equal(t, c.message, got.Error)
		})
	}
}

func TestInflectionEndpoint(t *testing.T) {
	h := newTestHandler(t, Config{})

	var got keyforms.InflectionTable
	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/api/inflection?word=tries&locale=en", nil), &got)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "try", got.Stem)
	assert.Equal(t, []keyforms.InflectionCell{
		{Group: "regular", Forms: []string{"trying"}},
		{Group: "consonantY", Forms: []string{"tries", "tried"}},
	}, got.Cells)
}

func TestFormsEndpoint(t *testing.T) {
	h := newTestHandler(t, Config{})

	body := `{"text":"Indexing live pages. The index grows.","keyword":"live indexing","locale":"en_US"}`
	var got keyforms.Result
	rec := do(t, h, httptest.NewRequest(http.MethodPost, "/api/forms", strings.NewReader(body)), &got)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, [][]string{{"live"}, {"indexing", "index"}}, got.KeyphraseForms)
	assert.Equal(t, [][][]string{}, got.SynonymsForms)
}

func TestFormsForStemsEndpoint(t *testing.T) {
	h := newTestHandler(t, Config{})

	body := `{"document":{"text":"Indexing the index. Living is live.","locale":"en_US"},"stems":["index"]}`
	var got formsForStemsResponse
	rec := do(t, h, httptest.NewRequest(http.MethodPost, "/api/forms/stems", strings.NewReader(body)), &got)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []keyforms.StemWithForms{{Stem: "index", Forms: []string{"indexing", "index"}}}, got.Groups)
}

func TestProminentWordsEndpoint(t *testing.T) {
	h := newTestHandler(t, Config{})

	var got prominentWordsResponse
	rec := do(t, h, httptest.NewRequest(http.MethodPost, "/api/prominent-words",
		strings.NewReader(`{"text":"texte et texte","locale":"fr_FR"}`)), &got)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []keyforms.ProminentWord{{Word: "texte", Stem: "texte", Occurrences: 2}}, got.ProminentWords)
}

func TestAnalyzeEndpoint(t *testing.T) {
	h := newTestHandler(t, Config{Workers: 2})

	body := `{"documents":[
		{"text":"texte et texte","locale":"fr_FR"},
		{"text":"Indexing live pages. The index grows.","keyword":"live indexing","locale":"en_US"}
	]}`
	var got analyzeResponse
	rec := do(t, h, httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body)), &got)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "texte", got.Results[0].ProminentWords[0].Word)
	assert.Equal(t, [][]string{{"live"}, {"indexing", "index"}}, got.Results[1].Forms.KeyphraseForms)
}

func TestAnalyzeCancelled(t *testing.T) {
	h := newTestHandler(t, Config{Workers: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze",
		strings.NewReader(`{"documents":[{"text":"one"}]}`)).WithContext(ctx)

	var got errorResponse
	rec := do(t, h, req, &got)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "analysis interrupted", got.Error)
}

func TestBodyErrors(t *testing.T) {
	h := newTestHandler(t, Config{MaxBodyBytes: 64})

	var got errorResponse
	rec := do(t, h, httptest.NewRequest(http.MethodPost, "/api/forms", strings.NewReader("{not json")), &got)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "body must be valid JSON", got.Error)

	big := `{"text":"` + strings.Repeat("word ", 100) + `"}`
	rec = do(t, h, httptest.NewRequest(http.MethodPost, "/api/prominent-words", strings.NewReader(big)), &got)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "request body too large", got.Error)
}

func TestLanguagesEndpoint(t *testing.T) {
	h := newTestHandler(t, Config{})

	var got languagesResponse
	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/api/languages", nil), &got)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, got.Languages, 6)
	assert.Equal(t, "Greek", got.Languages["el"])
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, Config{})

	rec := do(t, h, httptest.NewRequest(http.MethodPost, "/api/languages", nil), nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORS(t *testing.T) {
	h := newTestHandler(t, Config{CORS: CORSConfig{AllowedOrigins: []string{"https://example.com"}}})

	req := httptest.NewRequest(http.MethodGet, "/api/languages", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := do(t, h, req, nil)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/languages", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = do(t, h, req, nil)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = do(t, h, req, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMustMakeLogger(t *testing.T) {
	assert.NotNil(t, mustMakeLogger("DEBUG", "json"))
	assert.NotNil(t, mustMakeLogger("ERROR", ""))
	assert.NotPanics(t, func() { mustMakeLogger("info", "text") })
	assert.NotPanics(t, func() { mustMakeLogger(" Warn ", "json") })
	assert.True(t, mustMakeLogger("debug", "text").Enabled(context.Background(), slog.LevelDebug))
	assert.Panics(t, func() { mustMakeLogger("LOUD", "text") })
	assert.Panics(t, func() { mustMakeLogger("INFO", "xml") })
}
