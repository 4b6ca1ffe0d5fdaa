package loader

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestTOMLLoader_Load(t *testing.T) {
	fsys := FSAdapter{FS: fstest.MapFS{
		"patternlab.toml": {Data: []byte(`
[logging]
level = "debug"

[history]
max_entries = 50

[market]
base_fare = 1.5
debounce = "250ms"
`)},
	}}

	cfg, err := NewTOMLLoaderWithFS(fsys, "patternlab.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"logging.level", "debug"},
		{"history.max_entries", int64(50)},
		{"market.base_fare", 1.5},
		{"market.debounce", "250ms"},
	}
	for _, tt := range tests {
		got, ok := Lookup(cfg, tt.path)
		if !ok || got != tt.want {
			t.Errorf("%s = %v (%T), want %v", tt.path, got, got, tt.want)
		}
	}
}

func TestTOMLLoader_Missing(t *testing.T) {
	cfg, err := NewTOMLLoaderWithFS(FSAdapter{FS: fstest.MapFS{}}, "absent.toml").Load()
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != nil {
		t.Errorf("cfg = %v, want nil", cfg)
	}

	cfg, err = NewTOMLLoader("").Load()
	if err != nil || cfg != nil {
		t.Errorf("empty path: Load() = %v, %v, want nil, nil", cfg, err)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	_, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("[logging\nlevel = 1\n"))
	if err == nil {
		t.Fatal("expected parse error")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error %T is not *ParseError", err)
	}
	if perr.Path != "<reader>" {
		t.Errorf("Path = %q, want %q", perr.Path, "<reader>")
	}
	if perr.Line < 1 {
		t.Errorf("Line = %d, want a position", perr.Line)
	}
	if !strings.Contains(perr.Error(), "line ") {
		t.Errorf("Error() = %q, want line information", perr.Error())
	}
}

func TestEnvLoader_Load(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)
	l.environ = func() []string {
		return []string{
			"PATTERNLAB_LOG_LEVEL=warn",
			"PATTERNLAB_HISTORY_MAX_ENTRIES=20",
			"PATTERNLAB_HEALTH_PROBE_DIR=/tmp/probe",
			"PATTERNLAB_MENU_PAUSE=false",
			"PATTERNLAB_MARKET_BASE_FARE=2.5",
			"PATTERNLAB_CONFIG=/etc/patternlab.toml",
			"HOME=/root",
		}
	}

	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"logging.level", "warn"},
		{"history.max_entries", int64(20)},
		{"health.probe_dir", "/tmp/probe"},
		{"menu.pause", false},
		{"market.base_fare", 2.5},
	}
	for _, tt := range tests {
		got, ok := Lookup(cfg, tt.path)
		if !ok || got != tt.want {
			t.Errorf("%s = %v (%T), want %v", tt.path, got, got, tt.want)
		}
	}

	if _, ok := cfg["config"]; ok {
		t.Error("PATTERNLAB_CONFIG should not produce a config key")
	}
	if _, ok := cfg["home"]; ok {
		t.Error("unprefixed variables should be ignored")
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)

	tests := []struct {
		env      string
		expected string
	}{
		{"PATTERNLAB_HISTORY_MAX_ENTRIES", "history.max_entries"},
		{"PATTERNLAB_IDGEN_WIDTH", "idgen.width"},
		{"PATTERNLAB_SIMPLE", ""},
	}

	for _, tt := range tests {
		if got := l.envToPath(tt.env); got != tt.expected {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.expected)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"", ""},
		{"true", true},
		{"OFF", false},
		{"42", int64(42)},
		{"1", int64(1)},
		{"0.5", 0.5},
		{"500ms", "500ms"},
		{"-", "-"},
	}

	for _, tt := range tests {
		if got := parseValue(tt.input); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v", tt.input, got, got, tt.want)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"logging": map[string]any{"level": "info", "format": "text"},
		"menu":    map[string]any{"pause": true},
	}
	src := map[string]any{
		"logging": map[string]any{"level": "debug"},
		"history": map[string]any{"max_entries": int64(5)},
	}

	got := DeepMerge(dst, src)

	tests := []struct {
		path string
		want any
	}{
		{"logging.level", "debug"},
		{"logging.format", "text"},
		{"menu.pause", true},
		{"history.max_entries", int64(5)},
	}
	for _, tt := range tests {
		if v, _ := Lookup(got, tt.path); v != tt.want {
			t.Errorf("%s = %v, want %v", tt.path, v, tt.want)
		}
	}

	if DeepMerge(nil, nil) == nil {
		t.Error("DeepMerge(nil, nil) should return an empty map")
	}
}
