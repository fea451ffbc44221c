// Package formatting provides human-readable formatting and parsing utilities
// for common value types such as byte sizes, plus JSON extraction from model output.
package formatting

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var units = []string{
	"B", "KB", "MB",
	"GB", "TB", "PB",
	"EB", "ZB", "YB",
}

var bytesPattern = regexp.MustCompile(`^(\d+\.?\d*)\s*([A-Za-z]*)$`)

// FormatBytes converts a byte count to a human-readable string using base-1024 units.
// Negative precision values are clamped to zero.
func FormatBytes(n int64, precision int) string {
	if n == 0 {
		return "0 B"
	}

	if precision < 0 {
		precision = 0
	}

	f := float64(n)
	k := 1024.0
	i := int(math.Floor(math.Log(f) / math.Log(k)))

	if i >= len(units) {
		i = len(units) - 1
	}

	value := f / math.Pow(k, float64(i))
	return fmt.Sprintf("%.*f %s", precision, value, units[i])
}

// ParseBytes converts a human-readable size string ("10MB", "512 KB", "42")
// to a byte count. A missing unit means bytes.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	matches := bytesPattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	unit := strings.ToUpper(matches[2])
	if unit == "" {
		unit = "B"
	}

	i := slices.Index(units, unit)
	if i < 0 {
		return 0, fmt.Errorf("unknown byte unit: %q", matches[2])
	}

	return int64(value * math.Pow(1024, float64(i))), nil
}
