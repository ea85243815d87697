package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	// DefaultConfigDir is the default configuration directory
	DefaultConfigDir = ".config/tilecast"
	// DefaultOutputDir is the default output directory for rendered compositions
	DefaultOutputDir = "Videos/Compositions"
	// ConfigFileName is the name of the configuration file
	ConfigFileName = "config.json"
)

// EncodeOptions holds the ffmpeg encoder settings applied to rendered output
type EncodeOptions struct {
	VideoCodec  string `json:"video_codec"`
	Preset      string `json:"preset"`
	CRF         int    `json:"crf"`
	FPS         int    `json:"fps"`
	PixelFormat string `json:"pixel_format"`
}

// DefaultEncodeOptions returns the default encoder settings
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		VideoCodec:  "libx264",
		Preset:      "medium",
		CRF:         18,
		FPS:         30,
		PixelFormat: "yuv420p",
	}
}

// Config holds the application configuration
type Config struct {
	OutputDir     string        `json:"output_dir"`
	FFmpegPath    string        `json:"ffmpeg_path,omitempty"`
	FFprobePath   string        `json:"ffprobe_path,omitempty"`
	Encode        EncodeOptions `json:"encode"`
	Notifications bool          `json:"notifications"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		OutputDir:     GetDefaultOutputDir(),
		Encode:        DefaultEncodeOptions(),
		Notifications: true,
	}
}

// FFmpeg returns the ffmpeg binary to invoke
func (c *Config) FFmpeg() string {
	if c.FFmpegPath != "" {
		return c.FFmpegPath
	}
	return "ffmpeg"
}

// FFprobe returns the ffprobe binary to invoke
func (c *Config) FFprobe() string {
	if c.FFprobePath != "" {
		return c.FFprobePath
	}
	return "ffprobe"
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigDir
	}
	return filepath.Join(home, DefaultConfigDir)
}

// GetDefaultOutputDir returns the default output directory path
func GetDefaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultOutputDir
	}
	return filepath.Join(home, DefaultOutputDir)
}

// EnsureDirectories creates the necessary directories
func EnsureDirectories() error {
	dirs := []string{
		GetConfigDir(),
		GetDefaultOutputDir(),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return nil
}

// ConfigPath returns the full path of the configuration file
func ConfigPath() string {
	return filepath.Join(GetConfigDir(), ConfigFileName)
}

// Load loads the configuration from disk
func Load() (*Config, error) {
	return loadFrom(ConfigPath())
}

func loadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return default config if file doesn't exist
			cfg := DefaultConfig()
			return &cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save saves the configuration to disk
func Save(cfg *Config) error {
	if err := EnsureDirectories(); err != nil {
		return err
	}
	return saveTo(cfg, ConfigPath())
}

func saveTo(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
