package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Skryldev/grayscale/config"
)

func TestDefault_IsValid(t *testing.T) {
	if err := config.Validate(config.Default()); err != nil {
		t.Fatalf("Default() invalid: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]func(*config.Config){
		"quality-low":     func(c *config.Config) { c.DefaultQuality = 0 },
		"quality-high":    func(c *config.Config) { c.DefaultQuality = 101 },
		"chunk":           func(c *config.Config) { c.ChunkSize = 0 },
		"format":          func(c *config.Config) { c.OutputFormat = "webp" },
		"compression":     func(c *config.Config) { c.PNGCompression = "max" },
		"negative-bytes":  func(c *config.Config) { c.MaxImageBytes = -1 },
		"negative-pixels": func(c *config.Config) { c.MaxPixels = -1 },
		"log-level":       func(c *config.Config) { c.LogLevel = "trace" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := config.Default()
			mutate(&c)
			if err := config.Validate(c); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grayscale.yaml")
	yaml := "output_format: jpeg\ndefault_quality: 70\npreserve_alpha: true\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GRAYSCALE_DEFAULT_QUALITY", "60")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputFormat != "jpeg" {
		t.Errorf("OutputFormat: got %q, want jpeg", cfg.OutputFormat)
	}
	if cfg.DefaultQuality != 60 {
		t.Errorf("DefaultQuality: got %d, want 60 (env overrides file)", cfg.DefaultQuality)
	}
	if !cfg.PreserveAlpha {
		t.Error("PreserveAlpha: got false, want true")
	}
	if cfg.ChunkSize != config.Default().ChunkSize {
		t.Errorf("ChunkSize: got %d, want default", cfg.ChunkSize)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("GRAYSCALE_OUTPUT_FORMAT", "tga")
	if _, err := config.Load(""); err == nil {
		t.Error("expected validation error")
	}
}
