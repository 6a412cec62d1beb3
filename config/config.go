package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config is the top-level configuration struct. Start from Default() and
// override only what you need.
type Config struct {
	// Input limits.
	MaxImageBytes int64 `koanf:"max_image_bytes" validate:"gte=0"` // 0 = no limit
	MaxPixels     int64 `koanf:"max_pixels" validate:"gte=0"`      // 0 = no limit
	ChunkSize     int   `koanf:"chunk_size" validate:"gt=0"`       // read chunk size in bytes

	// Output encoding.
	OutputFormat   string `koanf:"output_format" validate:"oneof=png jpeg"`
	DefaultQuality int    `koanf:"default_quality" validate:"min=1,max=100"` // JPEG only
	PNGCompression string `koanf:"png_compression" validate:"oneof=default none speed best"`

	// Transform.
	PreserveAlpha bool `koanf:"preserve_alpha"`
	AutoOrient    bool `koanf:"auto_orient"`

	// Logging.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogJSON  bool   `koanf:"log_json"`
}

// Default returns a Config populated with sensible production defaults.
func Default() Config {
	return Config{
		MaxImageBytes:  64 << 20,
		MaxPixels:      100_000_000,
		ChunkSize:      32 * 1024,
		OutputFormat:   "png",
		DefaultQuality: 85,
		PNGCompression: "default",
		LogLevel:       "info",
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate returns an error if the configuration is inconsistent.
func Validate(c Config) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
