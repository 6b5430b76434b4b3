package conf

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/tidwall/gjson"
)

var (
	// ErrNotJSON indicates a pattern file that is not valid JSON.
	ErrNotJSON = errors.New("pattern file is not valid JSON")
	// ErrNoPatterns indicates a pattern file without a patterns array.
	ErrNoPatterns = errors.New("pattern file has no patterns array")
	// ErrEmptyPattern indicates a pattern entry with an empty expression.
	ErrEmptyPattern = errors.New("empty pattern expression")
)

// NamedPattern is one compiled entry from a pattern file.
type NamedPattern struct {
	// Name labels the pattern in output; defaults to the expression.
	Name string
	// Expr is the regular expression source text.
	Expr string
	// Re is the compiled pattern.
	Re *regexp.Regexp
}

// LoadPatterns reads a JSON pattern file of the form
//
//	{
//	  "patterns": [
//	    {"name": "pipes", "pattern": "\\|"},
//	    {"pattern": "𝆔♪"}
//	  ]
//	}
//
// and compiles every entry. Order is preserved.
func LoadPatterns(path string) ([]NamedPattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pattern file %s: %w", path, err)
	}
	return ParsePatterns(path, data)
}

// ParsePatterns compiles pattern entries from raw JSON.
func ParsePatterns(source string, data []byte) ([]NamedPattern, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s", ErrNotJSON, source)
	}

	list := gjson.GetBytes(data, "patterns")
	if !list.Exists() || !list.IsArray() {
		return nil, fmt.Errorf("%w: %s", ErrNoPatterns, source)
	}

	var patterns []NamedPattern
	var ferr error
	list.ForEach(func(_, entry gjson.Result) bool {
		expr := entry.Get("pattern").String()
		if expr == "" {
			ferr = fmt.Errorf("%w: entry %d in %s", ErrEmptyPattern, len(patterns), source)
			return false
		}

		re, err := regexp.Compile(expr)
		if err != nil {
			ferr = fmt.Errorf("compiling pattern %q in %s: %w", expr, source, err)
			return false
		}

		name := entry.Get("name").String()
		if name == "" {
			name = expr
		}
		patterns = append(patterns, NamedPattern{Name: name, Expr: expr, Re: re})
		return true
	})
	if ferr != nil {
		return nil, ferr
	}

	return patterns, nil
}
