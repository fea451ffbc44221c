package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/outfitly/outfitly/pkg/formatting"
)

const (
	EnvChatBulkCapacity  = "OUTFITLY_CHAT_BULK_CAPACITY"
	EnvChatSessionTTL    = "OUTFITLY_CHAT_SESSION_TTL"
	EnvChatSweepInterval = "OUTFITLY_CHAT_SWEEP_INTERVAL"
	EnvChatMaxPhotoSize  = "OUTFITLY_CHAT_MAX_PHOTO_SIZE"
	EnvChatPhotoFormats  = "OUTFITLY_CHAT_PHOTO_FORMATS"
	EnvChatPhotoSource   = "OUTFITLY_CHAT_PHOTO_SOURCE_URL"
)

// ChatConfig holds conversation session and photo intake parameters.
// PhotoSourceURL is the base URL of the transport adapter's file
// endpoint; photo file handles are resolved against it.
type ChatConfig struct {
	BulkCapacity   int      `toml:"bulk_capacity"`
	SessionTTL     string   `toml:"session_ttl"`
	SweepInterval  string   `toml:"sweep_interval"`
	MaxPhotoSize   string   `toml:"max_photo_size"`
	PhotoFormats   []string `toml:"photo_formats"`
	PhotoSourceURL string   `toml:"photo_source_url"`
}

// SessionTTLDuration returns SessionTTL as a time.Duration.
func (c *ChatConfig) SessionTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.SessionTTL)
	return d
}

// SweepIntervalDuration returns SweepInterval as a time.Duration.
func (c *ChatConfig) SweepIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.SweepInterval)
	return d
}

// MaxPhotoSizeBytes returns MaxPhotoSize as a byte count.
func (c *ChatConfig) MaxPhotoSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxPhotoSize)
	if err != nil {
		return 10 * 1024 * 1024 // 10MB fallback
	}
	return size
}

// AllowsFormat reports whether ext (without leading dot) is an accepted
// photo format. Comparison is case-insensitive.
func (c *ChatConfig) AllowsFormat(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return slices.Contains(c.PhotoFormats, ext)
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ChatConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ChatConfig) Merge(overlay *ChatConfig) {
	if overlay.BulkCapacity != 0 {
		c.BulkCapacity = overlay.BulkCapacity
	}
	if overlay.SessionTTL != "" {
		c.SessionTTL = overlay.SessionTTL
	}
	if overlay.SweepInterval != "" {
		c.SweepInterval = overlay.SweepInterval
	}
	if overlay.MaxPhotoSize != "" {
		c.MaxPhotoSize = overlay.MaxPhotoSize
	}
	if len(overlay.PhotoFormats) > 0 {
		c.PhotoFormats = overlay.PhotoFormats
	}
	if overlay.PhotoSourceURL != "" {
		c.PhotoSourceURL = overlay.PhotoSourceURL
	}
}

func (c *ChatConfig) loadDefaults() {
	if c.BulkCapacity == 0 {
		c.BulkCapacity = 10
	}
	if c.SessionTTL == "" {
		c.SessionTTL = "30m"
	}
	if c.SweepInterval == "" {
		c.SweepInterval = "5m"
	}
	if c.MaxPhotoSize == "" {
		c.MaxPhotoSize = "10MB"
	}
	if len(c.PhotoFormats) == 0 {
		c.PhotoFormats = []string{"jpg", "jpeg", "png", "webp"}
	}
	if c.PhotoSourceURL == "" {
		c.PhotoSourceURL = "http://localhost:8081/files"
	}
}

func (c *ChatConfig) loadEnv() {
	if v := os.Getenv(EnvChatBulkCapacity); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BulkCapacity = n
		}
	}
	if v := os.Getenv(EnvChatSessionTTL); v != "" {
		c.SessionTTL = v
	}
	if v := os.Getenv(EnvChatSweepInterval); v != "" {
		c.SweepInterval = v
	}
	if v := os.Getenv(EnvChatMaxPhotoSize); v != "" {
		c.MaxPhotoSize = v
	}
	if v := os.Getenv(EnvChatPhotoFormats); v != "" {
		var formats []string
		for _, f := range strings.Split(v, ",") {
			if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
				formats = append(formats, f)
			}
		}
		if len(formats) > 0 {
			c.PhotoFormats = formats
		}
	}
	if v := os.Getenv(EnvChatPhotoSource); v != "" {
		c.PhotoSourceURL = v
	}
}

func (c *ChatConfig) validate() error {
	if c.BulkCapacity < 1 {
		return fmt.Errorf("bulk_capacity must be positive")
	}
	if _, err := time.ParseDuration(c.SessionTTL); err != nil {
		return fmt.Errorf("invalid session_ttl: %w", err)
	}
	if _, err := time.ParseDuration(c.SweepInterval); err != nil {
		return fmt.Errorf("invalid sweep_interval: %w", err)
	}
	if _, err := formatting.ParseBytes(c.MaxPhotoSize); err != nil {
		return fmt.Errorf("invalid max_photo_size: %w", err)
	}
	return nil
}
