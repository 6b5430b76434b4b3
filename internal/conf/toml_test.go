package conf

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadTOMLMissingFile(t *testing.T) {
	cfg, err := LoadTOML("/nonexistent/config.toml")
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if cfg != nil {
		t.Errorf("missing file should yield nil map, got %v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `
[log]
level = "debug"

[hooks]
filter = "hooks/drop_short.lua"
`)

	cfg, err := LoadTOML(path)
	if err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}

	logSec, ok := cfg["log"].(map[string]any)
	if !ok {
		t.Fatalf("log section missing: %v", cfg)
	}
	if logSec["level"] != "debug" {
		t.Errorf("level = %v, want debug", logSec["level"])
	}
}

func TestLoadTOMLParseError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.toml", "[output\nformat = \"text\"\n")

	_, err := LoadTOML(path)
	if err == nil {
		t.Fatal("malformed TOML should error")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if perr.Path != path {
		t.Errorf("Path = %q, want %q", perr.Path, path)
	}
	if perr.Line <= 0 {
		t.Errorf("Line = %d, want positive", perr.Line)
	}
	if !strings.Contains(perr.Error(), "parse error") {
		t.Errorf("message = %q", perr.Error())
	}
}

func TestLoadTOMLIncludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.toml", `
[output]
format = "json"
color = "never"
`)
	main := writeFile(t, dir, "config.toml", `
"@include" = "base.toml"

[output]
color = "always"
`)

	cfg, err := LoadTOML(main)
	if err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}

	out := cfg["output"].(map[string]any)
	if out["format"] != "json" {
		t.Errorf("included format = %v, want json", out["format"])
	}
	if out["color"] != "always" {
		t.Errorf("color = %v, want always (main file wins)", out["color"])
	}
}

func TestLoadTOMLIncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.toml", `"@include" = "b.toml"`)
	path := writeFile(t, dir, "b.toml", `"@include" = "a.toml"`)

	if _, err := LoadTOML(path); err == nil {
		t.Fatal("include cycle should error via depth limit")
	}
}

func TestLoadTOMLBadIncludeType(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `"@include" = 42`)

	if _, err := LoadTOML(path); err == nil {
		t.Fatal("non-string include should error")
	}
}
