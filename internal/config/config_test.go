package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv(PathEnv, "")

	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
images:
  path: "/srv/images/"
  engine: "bild"
  blur: 0.8

log:
  level: "debug"
`
	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Images.Path != "/srv/images/" {
		t.Errorf("Expected images.path '/srv/images/', got '%s'", cfg.Images.Path)
	}
	if cfg.Images.Engine != "bild" {
		t.Errorf("Expected images.engine 'bild', got '%s'", cfg.Images.Engine)
	}
	if cfg.Images.Blur != 0.8 {
		t.Errorf("Expected images.blur 0.8, got %v", cfg.Images.Blur)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log.level 'debug', got '%s'", cfg.Log.Level)
	}
	if got := cfg.PathConfig().Path(); got != "/srv/images"+sep {
		t.Errorf("PathConfig().Path(): got %q", got)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(PathEnv, "")

	cfg, err := Parse([]byte("images:\n  path: /data\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Images.Engine != DefaultEngine {
		t.Errorf("engine: got %q, want %q", cfg.Images.Engine, DefaultEngine)
	}
	if cfg.Images.Blur != DefaultBlur {
		t.Errorf("blur: got %v, want %v", cfg.Images.Blur, DefaultBlur)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("log level: got %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv(PathEnv, "/override")

	cfg, err := Parse([]byte("images:\n  path: /data\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Images.Path != "/override" {
		t.Errorf("images.path: got %q, want /override", cfg.Images.Path)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv(PathEnv, "")

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing path", "images:\n  engine: imaging\n", "images.path is required"},
		{"unknown engine", "images:\n  path: /data\n  engine: magick\n", "images.engine"},
		{"negative blur", "images:\n  path: /data\n  blur: -1\n", "images.blur"},
		{"bad yaml", "images: [", "failed to parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
