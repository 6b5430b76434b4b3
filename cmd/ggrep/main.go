// Package main implements ggrep, a grep whose match positions are grapheme
// cluster indices rather than byte offsets, so the reported columns line up
// with what a reader sees.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"runtime"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/dshills/grapheme"
	"github.com/dshills/grapheme/internal/conf"
	"github.com/dshills/grapheme/internal/log"
	"github.com/dshills/grapheme/internal/luahook"
	"github.com/dshills/grapheme/internal/report"
	"github.com/dshills/grapheme/internal/watch"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes follow the grep convention.
const (
	exitMatched   = 0
	exitNoMatch   = 1
	exitUsageFail = 2
)

type options struct {
	configPath  string
	patternFile string
	filterPath  string
	format      string
	color       string
	logLevel    string
	count       bool
	validate    bool
	watchMode   bool
	jsonOut     bool
	tableOut    bool
	set         map[string]bool
	args        []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := conf.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return exitUsageFail
	}
	applyFlags(cfg, opts)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsageFail
	}

	logger := log.New(log.Config{
		Level:  log.ParseLevel(cfg.Log.Level),
		Output: os.Stderr,
		Prefix: "ggrep",
	})

	patterns, files, err := resolveInput(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		return exitUsageFail
	}

	var filter *luahook.Filter
	if cfg.Hooks.Filter != "" {
		filter, err = luahook.Load(cfg.Hooks.Filter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitUsageFail
		}
		defer filter.Close()
		logger.Debug("loaded filter script %s", cfg.Hooks.Filter)
	}

	sc := &scanner{
		cfg:      cfg,
		patterns: patterns,
		files:    files,
		filter:   filter,
		logger:   logger,
		color:    resolveColor(cfg.Output.Color, os.Stdout),
		count:    opts.count,
	}

	if opts.watchMode {
		return runWatch(sc, cfg)
	}
	return sc.scanOnce()
}

// scanner holds everything one scan pass needs, so watch mode can re-run
// passes without rethreading arguments.
type scanner struct {
	cfg      *conf.Config
	patterns []conf.NamedPattern
	files    []string
	filter   *luahook.Filter
	logger   *log.Logger
	color    bool
	count    bool
}

type fileResult struct {
	file    string
	entries []report.Entry
	err     error
}

// scanOnce runs one full pass over all files and emits the results.
func (sc *scanner) scanOnce() int {
	em, err := report.New(sc.cfg.Output.Format, os.Stdout, sc.color)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsageFail
	}

	start := time.Now()
	results := sc.scanAll()

	total := 0
	failed := false
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(os.Stderr, "ggrep: %v\n", r.err)
			failed = true
			continue
		}
		if sc.count {
			if err := em.Count(r.file, len(r.entries)); err != nil {
				fmt.Fprintf(os.Stderr, "ggrep: %v\n", err)
				return exitUsageFail
			}
		} else {
			for _, e := range r.entries {
				if err := em.Match(e); err != nil {
					fmt.Fprintf(os.Stderr, "ggrep: %v\n", err)
					return exitUsageFail
				}
			}
		}
		total += len(r.entries)
	}

	summary := report.Summary{
		RunID:   uuid.NewString(),
		Files:   len(sc.files),
		Matches: total,
		Elapsed: time.Since(start),
	}
	if err := em.Close(summary); err != nil {
		fmt.Fprintf(os.Stderr, "ggrep: %v\n", err)
		return exitUsageFail
	}
	sc.logger.Debug("run %s: %d matches in %d files (%s)",
		summary.RunID, summary.Matches, summary.Files, summary.Elapsed)

	switch {
	case failed:
		return exitUsageFail
	case total > 0:
		return exitMatched
	default:
		return exitNoMatch
	}
}

// scanAll scans every file concurrently. Results land in input order.
func (sc *scanner) scanAll() []fileResult {
	results := make([]fileResult, len(sc.files))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range sc.files {
		i, path := i, path
		g.Go(func() error {
			results[i] = sc.scanFile(path)
			return results[i].err
		})
	}
	_ = g.Wait() // per-file errors are reported from results

	return results
}

// scanFile searches one file with every pattern.
func (sc *scanner) scanFile(path string) fileResult {
	res := fileResult{file: path}

	text, err := readInput(path)
	if err != nil {
		res.err = err
		return res
	}
	src := grapheme.New(text)

	for _, p := range sc.patterns {
		it := src.FindAll(p.Re)
		for it.Next() {
			m := it.Match()

			if sc.cfg.Search.Validate {
				if err := m.EnsureValid(src); err != nil {
					res.err = fmt.Errorf("%s: %w", path, err)
					return res
				}
			}

			name := p.Name
			text := m.String()
			if sc.filter != nil {
				hm := luahook.Match{
					File:    path,
					Pattern: name,
					Start:   m.Start,
					Stop:    m.End,
					Text:    text,
				}
				keep, err := sc.filter.Keep(hm)
				if err != nil {
					res.err = fmt.Errorf("%s: %w", path, err)
					return res
				}
				if !keep {
					continue
				}
				if label := sc.filter.Options().Label; label != "" {
					name = label
				}
				rendered, ok, err := sc.filter.Render(hm)
				if err != nil {
					res.err = fmt.Errorf("%s: %w", path, err)
					return res
				}
				if ok {
					text = rendered
				}
			}

			res.entries = append(res.entries, report.Entry{
				File:    path,
				Pattern: name,
				Start:   m.Start,
				End:     m.End,
				Text:    text,
			})
		}
	}
	return res
}

// runWatch scans once, then rescans whenever a watched file changes.
func runWatch(sc *scanner, cfg *conf.Config) int {
	if len(sc.files) == 1 && sc.files[0] == "-" {
		fmt.Fprintln(os.Stderr, "Error: -watch needs files, not stdin")
		return exitUsageFail
	}

	w, err := watch.New(sc.files, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsageFail
	}
	defer w.Close()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	code := sc.scanOnce()
	for {
		select {
		case ev, ok := <-w.Changes():
			if !ok {
				return code
			}
			sc.logger.Info("%s changed, rescanning", ev.Path)
			code = sc.scanOnce()
		case werr, ok := <-w.Errors():
			if ok {
				sc.logger.Warn("watch: %v", werr)
			}
		case <-signals:
			return code
		}
	}
}

// resolveInput turns the positional arguments into patterns and files.
// With -patterns every argument is a file; otherwise the first argument is
// the pattern expression.
func resolveInput(opts options) ([]conf.NamedPattern, []string, error) {
	var patterns []conf.NamedPattern
	var files []string

	if opts.patternFile != "" {
		pats, err := conf.LoadPatterns(opts.patternFile)
		if err != nil {
			return nil, nil, err
		}
		patterns = pats
		files = opts.args
	} else {
		if len(opts.args) == 0 {
			return nil, nil, fmt.Errorf("missing pattern argument")
		}
		expr := opts.args[0]
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, nil, fmt.Errorf("pattern %q: %w", expr, err)
		}
		patterns = []conf.NamedPattern{{Name: expr, Expr: expr, Re: re}}
		files = opts.args[1:]
	}

	if len(files) == 0 {
		files = []string{"-"}
	}
	return patterns, files, nil
}

// readInput reads a file, or stdin for "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// resolveColor maps the color mode onto a concrete decision for f.
func resolveColor(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(f.Fd()))
	}
}

// applyFlags lays explicitly set flags over the loaded config.
func applyFlags(cfg *conf.Config, opts options) {
	if opts.jsonOut {
		cfg.Output.Format = "json"
	}
	if opts.tableOut {
		cfg.Output.Format = "table"
	}
	if opts.set["format"] {
		cfg.Output.Format = opts.format
	}
	if opts.set["color"] {
		cfg.Output.Color = opts.color
	}
	if opts.set["log-level"] {
		cfg.Log.Level = opts.logLevel
	}
	if opts.set["validate"] {
		cfg.Search.Validate = opts.validate
	}
	if opts.set["filter"] {
		cfg.Hooks.Filter = opts.filterPath
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to TOML configuration file")
	flag.StringVar(&opts.patternFile, "patterns", "", "Path to JSON file of named patterns")
	flag.StringVar(&opts.filterPath, "filter", "", "Path to Lua filter script")
	flag.StringVar(&opts.format, "format", "text", "Output format (text, json, table)")
	flag.BoolVar(&opts.jsonOut, "json", false, "Shorthand for -format json")
	flag.BoolVar(&opts.tableOut, "table", false, "Shorthand for -format table")
	flag.StringVar(&opts.color, "color", "auto", "Color mode (auto, always, never)")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.count, "count", false, "Print per-file match counts only")
	flag.BoolVar(&opts.validate, "validate", false, "Re-validate every match against its source")
	flag.BoolVar(&opts.watchMode, "watch", false, "Re-run the search when files change")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ggrep - search with match positions in grapheme clusters\n\n")
		fmt.Fprintf(os.Stderr, "Usage: ggrep [options] PATTERN [files...]\n")
		fmt.Fprintf(os.Stderr, "       ggrep [options] -patterns file.json [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ggrep 'é' poem.txt            Search one file\n")
		fmt.Fprintf(os.Stderr, "  ggrep -count '♪' *.txt        Per-file totals only\n")
		fmt.Fprintf(os.Stderr, "  ggrep -json 'x́' notes.md      JSON lines output\n")
		fmt.Fprintf(os.Stderr, "  cat doc.txt | ggrep '🇫🇷'      Search stdin\n")
		fmt.Fprintf(os.Stderr, "  ggrep -watch 'TODO' main.go   Re-run when the file changes\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("ggrep %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	opts.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	opts.args = flag.Args()

	return opts
}
