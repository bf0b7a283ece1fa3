package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	footnotesmodule "github.com/goliatone/go-cms-footnotes"
	"github.com/goliatone/go-cms-footnotes/internal/footnotes"
	"github.com/goliatone/go-cms-footnotes/internal/logging"
	"github.com/goliatone/go-cms-footnotes/internal/markdown"
	"github.com/goliatone/go-cms-footnotes/pkg/interfaces"
)

// options holds the parsed command line.
type options struct {
	file      string
	format    string
	logLevel  string
	logFormat string
	driver    string
	dsn       string
	noList    bool
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "footnotes: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("footnotes", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVarP(&opts.file, "file", "f", "", "Markdown document whose front matter declares footnotes")
	fs.StringVar(&opts.format, "format", "markdown", "Body format: markdown or html")
	fs.StringVar(&opts.logLevel, "log-level", "", "Enable logging at level (debug, info, warn, error)")
	fs.StringVar(&opts.logFormat, "log-format", "console", "Log format: json, console or pretty")
	fs.StringVar(&opts.driver, "driver", "sqlite", "Storage driver when --dsn is set: sqlite or postgres")
	fs.StringVar(&opts.dsn, "dsn", "", "Persist declared footnotes to this database before rendering")
	fs.BoolVar(&opts.noList, "no-list", false, "Omit the footnote list after the body")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if strings.TrimSpace(opts.file) == "" {
		return opts, fmt.Errorf("--file is required")
	}
	return opts, nil
}

func buildConfig(opts options) footnotesmodule.Config {
	cfg := footnotesmodule.DefaultConfig()
	cfg.Renderer.DefaultFormat = opts.format
	if level := strings.TrimSpace(opts.logLevel); level != "" {
		cfg.Features.Logger = true
		cfg.Logging.Level = level
		cfg.Logging.Format = opts.logFormat
	}
	if strings.TrimSpace(opts.dsn) != "" {
		cfg.Storage.Provider = "bun"
		cfg.Storage.Driver = opts.driver
		cfg.Storage.DSN = opts.dsn
	}
	return cfg
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	source, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	module, err := footnotesmodule.New(buildConfig(opts))
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	doc, err := markdown.ParseDocument(source)
	if err != nil {
		return err
	}
	logging.MarkdownLogger(module.Container().LoggerProvider()).Debug("footnotes.markdown.document_parsed",
		"file", opts.file,
		"page_id", doc.PageID,
		"footnotes", len(doc.Footnotes),
	)

	input := footnotes.RenderPageInput{
		PageID: doc.PageID,
		Fields: []interfaces.RichText{{Source: string(doc.Body), Format: opts.format}},
	}
	if opts.dsn != "" {
		if err := storeFootnotes(ctx, module.Footnotes(), doc); err != nil {
			return err
		}
	} else {
		input.Page = footnotes.NewStaticPage(doc.Footnotes...)
	}

	result, err := module.Footnotes().RenderPage(ctx, input)
	if err != nil {
		return fmt.Errorf("render document: %w", err)
	}

	for _, field := range result.Fields {
		fmt.Fprintln(stdout, strings.TrimSpace(string(field)))
	}
	if !opts.noList && result.FootnotesHTML != "" {
		fmt.Fprintln(stdout, string(result.FootnotesHTML))
	}
	return nil
}

// storeFootnotes creates declared footnotes missing from storage. Existing
// ones keep their stored text.
func storeFootnotes(ctx context.Context, svc footnotes.Service, doc *markdown.Document) error {
	existing, err := svc.ListFootnotes(ctx, doc.PageID)
	if err != nil {
		return fmt.Errorf("list stored footnotes: %w", err)
	}
	seen := make(map[string]struct{}, len(existing))
	for _, item := range existing {
		seen[item.UUID] = struct{}{}
	}
	for _, item := range doc.Footnotes {
		if _, ok := seen[item.UUID]; ok {
			continue
		}
		if _, err := svc.CreateFootnote(ctx, footnotes.CreateFootnoteInput{
			PageID: doc.PageID,
			UUID:   item.UUID,
			Text:   item.Text,
		}); err != nil {
			return fmt.Errorf("store footnote %s: %w", item.UUID, err)
		}
	}
	return nil
}
