package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func init() {
	// Force plain mode in tests so style functions return raw text (no ANSI codes).
	SetDefault(&Config{Mode: ModePlain})
}

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestOutputMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  OutputMode
		tty   bool
		plain bool
	}{
		{"ModeTTY", ModeTTY, true, false},
		{"ModePlain", ModePlain, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Mode: tt.mode}
			if got := cfg.IsTTY(); got != tt.tty {
				t.Errorf("IsTTY() = %v, want %v", got, tt.tty)
			}
			if got := cfg.IsPlain(); got != tt.plain {
				t.Errorf("IsPlain() = %v, want %v", got, tt.plain)
			}
		})
	}
}

func TestDetect_NotATerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	cfg := Detect(f, env(nil))
	if !cfg.IsPlain() {
		t.Errorf("regular file should be plain, got mode %d", cfg.Mode)
	}
	if cfg.Writer != f {
		t.Error("Writer should be the detected file")
	}
}

func TestDetect_Environment(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"no color", map[string]string{"NO_COLOR": "1"}},
		{"dumb terminal", map[string]string{"TERM": "dumb"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Detect(os.Stdout, env(tt.vars))
			if !cfg.IsPlain() {
				t.Errorf("expected plain mode, got %d", cfg.Mode)
			}
		})
	}
}

func TestDetect_NilFile(t *testing.T) {
	cfg := Detect(nil, env(nil))
	if !cfg.IsPlain() {
		t.Error("nil file should be plain")
	}
	if cfg.Writer == nil {
		t.Error("Writer should fall back to stdout")
	}
}

func TestSetDefault(t *testing.T) {
	saved := Default()
	defer SetDefault(saved)

	SetDefault(&Config{Mode: ModeTTY})
	if !EnableColors() {
		t.Error("EnableColors() should be true in TTY mode")
	}
	SetDefault(&Config{Mode: ModePlain})
	if EnableColors() {
		t.Error("EnableColors() should be false in plain mode")
	}
}

func TestPlainStyles(t *testing.T) {
	fns := map[string]func(string) string{
		"Error":    Error,
		"Warning":  Warning,
		"Note":     Note,
		"Help":     Help,
		"Success":  Success,
		"Code":     Code,
		"FilePath": FilePath,
		"Header":   Header,
		"Dim":      Dim,
	}
	for name, fn := range fns {
		if got := fn("text"); got != "text" {
			t.Errorf("%s(%q) = %q in plain mode", name, "text", got)
		}
	}
	if Pipe() != "|" || Arrow() != "-->" {
		t.Errorf("Pipe/Arrow = %q %q", Pipe(), Arrow())
	}
}

func TestBadges_Plain(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{RenderOKBadge(), "[OK]"},
		{RenderWarnBadge(), "[WARN]"},
		{RenderErrorBadge(), "[ERROR]"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("badge = %q, want %q", tt.got, tt.want)
		}
	}
}
