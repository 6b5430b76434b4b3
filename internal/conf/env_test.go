package conf

import "testing"

func TestEnvLoader(t *testing.T) {
	t.Setenv("GGREP_LOG_LEVEL", "debug")
	t.Setenv("GGREP_DEBOUNCE_MS", "75")
	t.Setenv("GGREP_VALIDATE", "true")

	cfg, err := NewEnvLoader("GGREP_").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := cfg["log"].(map[string]any)["level"]; got != "debug" {
		t.Errorf("log.level = %v, want debug", got)
	}
	if got := cfg["watch"].(map[string]any)["debounce_ms"]; got != int64(75) {
		t.Errorf("watch.debounce_ms = %v (%T), want int64 75", got, got)
	}
	if got := cfg["search"].(map[string]any)["validate"]; got != true {
		t.Errorf("search.validate = %v, want true", got)
	}
}

func TestEnvLoaderUnsetVarsIgnored(t *testing.T) {
	cfg, err := NewEnvLoader("GGREP_TEST_UNSET_").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg) != 0 {
		t.Errorf("expected empty map, got %v", cfg)
	}
}

func TestEnvLoaderAddMapping(t *testing.T) {
	t.Setenv("GGREP_CUSTOM", "hello")

	l := NewEnvLoader("GGREP_")
	l.AddMapping("GGREP_CUSTOM", "custom.value")

	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg["custom"].(map[string]any)["value"]; got != "hello" {
		t.Errorf("custom.value = %v", got)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"true", true},
		{"YES", true},
		{"off", false},
		{"42", int64(42)},
		{"-3", int64(-3)},
		{"text", "text"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := parseValue(tt.input); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.input, got, got, tt.want, tt.want)
		}
	}
}

func TestSetByPath(t *testing.T) {
	m := make(map[string]any)
	setByPath(m, "a.b.c", 1)
	setByPath(m, "a.b.d", 2)
	setByPath(m, "top", "v")

	b := m["a"].(map[string]any)["b"].(map[string]any)
	if b["c"] != 1 || b["d"] != 2 {
		t.Errorf("nested set failed: %v", m)
	}
	if m["top"] != "v" {
		t.Errorf("top-level set failed: %v", m)
	}
}
