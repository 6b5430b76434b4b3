// Package main implements gview, an interactive inspector that shows how a
// text splits into grapheme clusters: per-cluster byte ranges, code points,
// widths, normalization forms, and pattern match spans.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/dshills/grapheme/internal/report"
	"github.com/dshills/grapheme/internal/scope"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	text string
	dump bool
	args []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	text, err := loadText(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	m := scope.NewInspector(text)

	if opts.dump {
		dump(m)
		return 0
	}
	return interact(m)
}

// loadText resolves the inspected text: -text flag, file argument, or
// piped stdin, in that order.
func loadText(opts options) (string, error) {
	if opts.text != "" {
		return opts.text, nil
	}
	if len(opts.args) > 0 {
		data, err := os.ReadFile(opts.args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no input: pass a file, -text, or pipe stdin")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// dump prints the cluster table and exits; it needs no terminal.
func dump(m *scope.Inspector) {
	rows := make([]report.Cluster, 0, m.Len())
	for i := 0; i < m.Len(); i++ {
		r, _ := m.Row(i)
		rows = append(rows, report.Cluster{
			Index:      r.Index,
			ByteOff:    r.ByteOff,
			ByteLen:    r.ByteLen,
			Text:       r.Text,
			CodePoints: r.CodePoints,
			Width:      r.Width,
		})
	}
	report.WriteClusterTable(os.Stdout, rows)
}

// interact runs the tcell event loop.
func interact(m *scope.Inspector) int {
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()

	view := scope.NewView()
	var prompting bool
	var prompt []rune
	var status string

	for {
		screen.Clear()
		view.Draw(screen, m)
		switch {
		case prompting:
			scope.DrawStatus(screen, "/"+string(prompt))
		case status != "":
			scope.DrawStatus(screen, status)
		}
		screen.Show()

		ev := screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()

		case *tcell.EventKey:
			if prompting {
				switch e.Key() {
				case tcell.KeyEscape:
					prompting = false
					prompt = nil
				case tcell.KeyEnter:
					prompting = false
					n, err := m.Highlight(string(prompt))
					switch {
					case err != nil:
						status = err.Error()
					case n == 0:
						status = "no matches"
					}
					prompt = nil
				case tcell.KeyBackspace, tcell.KeyBackspace2:
					if len(prompt) > 0 {
						prompt = prompt[:len(prompt)-1]
					}
				case tcell.KeyRune:
					prompt = append(prompt, e.Rune())
				}
				continue
			}

			status = ""
			switch e.Key() {
			case tcell.KeyEscape:
				// First Esc clears highlights, second quits.
				if m.Pattern() != "" {
					m.ClearHighlights()
					continue
				}
				return 0
			case tcell.KeyCtrlC:
				return 0
			case tcell.KeyLeft:
				m.MoveCursor(-1)
			case tcell.KeyRight:
				m.MoveCursor(1)
			case tcell.KeyHome:
				m.MoveTo(0)
			case tcell.KeyEnd:
				m.MoveTo(m.Len() - 1)
			case tcell.KeyRune:
				switch e.Rune() {
				case 'q':
					return 0
				case 'h':
					m.MoveCursor(-1)
				case 'l':
					m.MoveCursor(1)
				case 'g':
					m.MoveTo(0)
				case 'G':
					m.MoveTo(m.Len() - 1)
				case '/':
					prompting = true
				case 'n':
					if !m.NextMatch() {
						status = "no next match"
					}
				case 'N':
					if !m.PrevMatch() {
						status = "no previous match"
					}
				}
			}
		}
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.text, "text", "", "Inspect the given text instead of a file")
	flag.BoolVar(&opts.dump, "dump", false, "Print the cluster table and exit (no terminal needed)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gview - interactive grapheme cluster inspector\n\n")
		fmt.Fprintf(os.Stderr, "Usage: gview [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  ←/→ h/l    move the cluster cursor\n")
		fmt.Fprintf(os.Stderr, "  home/end   jump to the first/last cluster\n")
		fmt.Fprintf(os.Stderr, "  /          highlight a pattern\n")
		fmt.Fprintf(os.Stderr, "  n/N        jump between matches\n")
		fmt.Fprintf(os.Stderr, "  esc        clear highlights, then quit\n")
		fmt.Fprintf(os.Stderr, "  q          quit\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  gview -text 'née 🇫🇷'          Inspect a literal\n")
		fmt.Fprintf(os.Stderr, "  gview poem.txt                Inspect a file\n")
		fmt.Fprintf(os.Stderr, "  gview -dump poem.txt          Print the cluster table\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("gview %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	opts.args = flag.Args()
	return opts
}
