package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/cours-de-latin/keyforms"
)

type stemOutput struct {
	Word string `json:"word"`
	Stem string `json:"stem"`
}

func stemCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("stem: at least one word required")
	}
	engine, err := loadEngine(c)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	out := make([]stemOutput, 0, c.NArg())
	for _, word := range c.Args().Slice() {
		out = append(out, stemOutput{Word: word, Stem: engine.Stem(word, c.String("locale"))})
	}
	if c.Bool("json") {
		return writeJSON(c.App.Writer, out)
	}
	for _, s := range out {
		fmt.Fprintf(c.App.Writer, "%s\t%s\n", s.Word, s.Stem)
	}
	return nil
}

func inflectCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("inflect: exactly one word required")
	}
	engine, err := loadEngine(c)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	table := engine.Inflect(c.Args().First(), c.String("locale"))
	if c.Bool("json") {
		return writeJSON(c.App.Writer, table)
	}
	fmt.Fprintf(c.App.Writer, "%s (%s): stem %s\n", table.Word, table.Language, table.Stem)
	for _, cell := range table.Cells {
		fmt.Fprintf(c.App.Writer, "  %s: %s\n", cell.Group, strings.Join(cell.Forms, ", "))
	}
	return nil
}

func matchCommand(c *cli.Context) error {
	doc, err := readDocument(c)
	if err != nil {
		return err
	}
	engine, err := loadEngine(c)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	return writeJSON(c.App.Writer, engine.MatchForms(doc))
}

func prominentCommand(c *cli.Context) error {
	doc, err := readDocument(c)
	if err != nil {
		return err
	}
	engine, err := loadEngine(c)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	words := engine.ProminentWords(doc)
	if c.Bool("json") {
		return writeJSON(c.App.Writer, words)
	}
	for _, w := range words {
		fmt.Fprintf(c.App.Writer, "%d\t%s\t%s\n", w.Occurrences, w.Word, w.Stem)
	}
	return nil
}

func analyzeCommand(c *cli.Context) error {
	in, err := readInput(c)
	if err != nil {
		return err
	}
	var docs []keyforms.Document
	if err := json.Unmarshal(in, &docs); err != nil {
		return fmt.Errorf("analyze: input must be a JSON array of documents: %w", err)
	}
	for i := range docs {
		if docs[i].Locale == "" {
			docs[i].Locale = c.String("locale")
		}
	}
	engine, err := loadEngine(c)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	results, err := engine.AnalyzeAll(c.Context, docs, c.Int("workers"))
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	return writeJSON(c.App.Writer, results)
}

func languagesCommand(c *cli.Context) error {
	engine, err := loadEngine(c)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	names := engine.Languages()
	for _, code := range engine.Codes() {
		fmt.Fprintf(c.App.Writer, "%s\t%s\n", code, names[code])
	}
	return nil
}

// readInput reads the file named by the first argument, or standard input
// when there is none or it is "-".
func readInput(c *cli.Context) ([]byte, error) {
	path := c.Args().First()
	if path == "" || path == "-" {
		return io.ReadAll(c.App.Reader)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return b, nil
}

func readDocument(c *cli.Context) (keyforms.Document, error) {
	text, err := readInput(c)
	if err != nil {
		return keyforms.Document{}, err
	}
	return keyforms.Document{
		Text:        string(text),
		Title:       c.String("title"),
		URL:         c.String("url"),
		Description: c.String("description"),
		Keyword:     c.String("keyword"),
		Synonyms:    c.String("synonyms"),
		Locale:      c.String("locale"),
	}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
