package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := DefaultConfig()
	cfg.OutputDir = "/tmp/renders"
	cfg.FFmpegPath = "/opt/ffmpeg/bin/ffmpeg"
	cfg.Encode.CRF = 23
	cfg.Notifications = false

	if err := saveTo(&cfg, path); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	loaded, err := loadFrom(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	if loaded.OutputDir != "/tmp/renders" {
		t.Errorf("expected output dir to round-trip, got %s", loaded.OutputDir)
	}
	if loaded.FFmpeg() != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("expected ffmpeg path to round-trip, got %s", loaded.FFmpeg())
	}
	if loaded.Encode.CRF != 23 {
		t.Errorf("expected CRF 23, got %d", loaded.Encode.CRF)
	}
	if loaded.Notifications {
		t.Error("expected notifications to stay disabled")
	}
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	loaded, err := loadFrom(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := DefaultConfig()
	if loaded.OutputDir != want.OutputDir {
		t.Errorf("expected default output dir, got %s", loaded.OutputDir)
	}
	if !loaded.Notifications {
		t.Error("expected notifications enabled by default")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.OutputDir == "" {
		t.Error("expected OutputDir to be set")
	}

	// Check encoder defaults
	if cfg.Encode.VideoCodec != "libx264" {
		t.Errorf("expected VideoCodec to be libx264, got %s", cfg.Encode.VideoCodec)
	}

	if cfg.Encode.CRF != 18 {
		t.Errorf("expected CRF to be 18, got %d", cfg.Encode.CRF)
	}

	if cfg.Encode.FPS != 30 {
		t.Errorf("expected FPS to be 30, got %d", cfg.Encode.FPS)
	}

	if !cfg.Notifications {
		t.Error("expected Notifications to be true by default")
	}
}

func TestFFmpegPathFallbacks(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.FFmpeg() != "ffmpeg" {
		t.Errorf("expected ffmpeg fallback, got %s", cfg.FFmpeg())
	}

	if cfg.FFprobe() != "ffprobe" {
		t.Errorf("expected ffprobe fallback, got %s", cfg.FFprobe())
	}

	cfg.FFmpegPath = "/opt/ffmpeg/bin/ffmpeg"
	if cfg.FFmpeg() != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("expected configured path, got %s", cfg.FFmpeg())
	}
}

func TestGetConfigDir(t *testing.T) {
	dir := GetConfigDir()

	if dir == "" {
		t.Error("expected non-empty config directory")
	}

	// Should contain the default config dir name
	if !containsPath(dir, DefaultConfigDir) {
		t.Errorf("expected config dir to contain %q, got %q", DefaultConfigDir, dir)
	}
}

func TestGetDefaultOutputDir(t *testing.T) {
	dir := GetDefaultOutputDir()

	if dir == "" {
		t.Error("expected non-empty output directory")
	}

	if !containsPath(dir, DefaultOutputDir) {
		t.Errorf("expected output dir to contain %q, got %q", DefaultOutputDir, dir)
	}
}

// containsPath checks whether path contains sub in platform form
func containsPath(path, sub string) bool {
	return strings.Contains(path, filepath.FromSlash(sub))
}
