package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// maxIncludeDepth limits nested @include directives.
const maxIncludeDepth = 8

// LoadTOML reads the TOML file at path and resolves @include directives.
// A missing file yields an empty (nil) map, not an error.
func LoadTOML(path string) (map[string]any, error) {
	return loadTOML(path, maxIncludeDepth)
}

func loadTOML(path string, depth int) (map[string]any, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("include depth exceeded for %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	config, err := parseTOML(path, data)
	if err != nil {
		return nil, err
	}

	includes, hasIncludes := config["@include"]
	if !hasIncludes {
		return config, nil
	}
	delete(config, "@include")

	baseDir := filepath.Dir(path)
	var includeList []string

	switch v := includes.(type) {
	case string:
		includeList = []string{v}
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("@include must be string or array of strings, got %T", item)
			}
			includeList = append(includeList, s)
		}
	default:
		return nil, fmt.Errorf("@include must be string or array of strings, got %T", includes)
	}

	// Includes are lower priority than the including file.
	for _, inc := range includeList {
		incPath := inc
		if !filepath.IsAbs(inc) {
			incPath = filepath.Join(baseDir, inc)
		}

		incConfig, err := loadTOML(incPath, depth-1)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", incPath, err)
		}
		config = DeepMerge(incConfig, config)
	}

	return config, nil
}

// parseTOML parses TOML data into a map.
func parseTOML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := toml.Unmarshal(data, &config); err != nil {
		perr := &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	return config, nil
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
