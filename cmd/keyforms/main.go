// Command keyforms stems words, prints inflection tables and runs the form
// matcher and the prominent-word scorer on documents from the command line.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/cours-de-latin/keyforms"
)

func documentFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Usage: "Document title"},
		&cli.StringFlag{Name: "url", Usage: "Document URL; its slug is searched too"},
		&cli.StringFlag{Name: "description", Usage: "Meta description"},
		&cli.StringFlag{Name: "keyword", Aliases: []string{"k"}, Usage: "Focus keyphrase; wrap in double quotes for an exact match"},
		&cli.StringFlag{Name: "synonyms", Aliases: []string{"s"}, Usage: "Comma-separated synonym phrases"},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "keyforms",
		Usage: "Find keyphrase word forms and prominent words in text",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Language data directory (default: data embedded in the binary)",
				EnvVars: []string{"KEYFORMS_DATA_DIR"},
			},
			&cli.StringFlag{
				Name:    "locale",
				Aliases: []string{"l"},
				Usage:   "Locale of the input, e.g. en_US or el_GR",
				Value:   keyforms.DefaultLocale,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log while loading language data",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "stem",
				Usage:     "Print the stem of each word",
				ArgsUsage: "WORD...",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
				},
				Action: stemCommand,
			},
			{
				Name:      "inflect",
				Aliases:   []string{"i"},
				Usage:     "Print the forms generated for a word",
				ArgsUsage: "WORD",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
				},
				Action: inflectCommand,
			},
			{
				Name:      "match",
				Aliases:   []string{"m"},
				Usage:     "Find the forms of the keyphrase and synonyms in a text",
				ArgsUsage: "[FILE|-]",
				Flags:     documentFlags(),
				Action:    matchCommand,
			},
			{
				Name:      "prominent",
				Aliases:   []string{"p"},
				Usage:     "List the prominent words of a text",
				ArgsUsage: "[FILE|-]",
				Flags: append([]cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
				}, documentFlags()...),
				Action: prominentCommand,
			},
			{
				Name:      "analyze",
				Usage:     "Analyze a JSON array of documents",
				ArgsUsage: "[FILE|-]",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "Concurrent documents (0: one per CPU)"},
				},
				Action: analyzeCommand,
			},
			{
				Name:   "languages",
				Usage:  "List the registered languages",
				Action: languagesCommand,
			},
		},
	}
}

func loadEngine(c *cli.Context) (*keyforms.Engine, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if c.Bool("verbose") {
		logger = slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	opts := []keyforms.Option{
		keyforms.WithLogger(logger),
		keyforms.WithDefaultLocale(c.String("locale")),
	}
	if dir := c.String("data"); dir != "" {
		return keyforms.New(dir, opts...)
	}
	return keyforms.Default(opts...)
}

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
