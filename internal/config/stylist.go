package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvStylistAPIKey         = "GEMINI_API_KEY"
	EnvStylistVisionModel    = "OUTFITLY_STYLIST_VISION_MODEL"
	EnvStylistTextModel      = "OUTFITLY_STYLIST_TEXT_MODEL"
	EnvStylistRequestTimeout = "OUTFITLY_STYLIST_REQUEST_TIMEOUT"
)

// StylistConfig holds Gemini model parameters for classification and
// outfit composition. The API key is environment-only and never read
// from config files.
type StylistConfig struct {
	VisionModel    string `toml:"vision_model"`
	TextModel      string `toml:"text_model"`
	RequestTimeout string `toml:"request_timeout"`

	apiKey string
}

// APIKey returns the Gemini API key loaded from the environment.
func (c *StylistConfig) APIKey() string {
	return c.apiKey
}

// RequestTimeoutDuration returns RequestTimeout as a time.Duration.
func (c *StylistConfig) RequestTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *StylistConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *StylistConfig) Merge(overlay *StylistConfig) {
	if overlay.VisionModel != "" {
		c.VisionModel = overlay.VisionModel
	}
	if overlay.TextModel != "" {
		c.TextModel = overlay.TextModel
	}
	if overlay.RequestTimeout != "" {
		c.RequestTimeout = overlay.RequestTimeout
	}
}

func (c *StylistConfig) loadDefaults() {
	if c.VisionModel == "" {
		c.VisionModel = "gemini-1.5-pro"
	}
	if c.TextModel == "" {
		c.TextModel = "gemini-1.5-flash"
	}
	if c.RequestTimeout == "" {
		c.RequestTimeout = "30s"
	}
}

func (c *StylistConfig) loadEnv() {
	c.apiKey = os.Getenv(EnvStylistAPIKey)

	if v := os.Getenv(EnvStylistVisionModel); v != "" {
		c.VisionModel = v
	}
	if v := os.Getenv(EnvStylistTextModel); v != "" {
		c.TextModel = v
	}
	if v := os.Getenv(EnvStylistRequestTimeout); v != "" {
		c.RequestTimeout = v
	}
}

func (c *StylistConfig) validate() error {
	if _, err := time.ParseDuration(c.RequestTimeout); err != nil {
		return fmt.Errorf("invalid request_timeout: %w", err)
	}
	return nil
}
