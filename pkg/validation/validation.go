// Package validation checks the values that cross into the game from the
// host: key names, mouse deltas, frame times and configuration values.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Limits for host-supplied values
const (
	MaxKeyNameLen    = 32
	MaxScriptNameLen = 32
	MaxHUDTextLen    = 128
	MaxMouseDelta    = 10000.0
	MaxSensitivity   = 1.0
)

// Regular expressions for input validation
var (
	// Key names as reported by the hosts: letters, digits and a few separators
	validKeyNameChars = regexp.MustCompile(`^[a-zA-Z0-9_\-+]+$`)

	// Script names are lower-case identifiers
	validScriptName = regexp.MustCompile(`^[a-z][a-z0-9_\-]*$`)
)

// ValidateKeyName validates a host key name such as "W" or "LShift"
func ValidateKeyName(name string) error {
	if name == "" {
		return fmt.Errorf("key name cannot be empty")
	}

	if len(name) > MaxKeyNameLen {
		return fmt.Errorf("key name too long: %d characters (max %d)", len(name), MaxKeyNameLen)
	}

	if !utf8.ValidString(name) {
		return fmt.Errorf("key name contains invalid UTF-8 characters")
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("key name cannot be only whitespace")
	}

	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return fmt.Errorf("key name contains control characters")
		}
	}

	if !validKeyNameChars.MatchString(trimmed) {
		return fmt.Errorf("key name %q contains invalid characters", trimmed)
	}

	return nil
}

// ValidateScriptName validates and normalizes a script name
func ValidateScriptName(name string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return "", fmt.Errorf("script name cannot be empty")
	}

	if len(trimmed) > MaxScriptNameLen {
		return "", fmt.Errorf("script name too long: %d characters (max %d)", len(trimmed), MaxScriptNameLen)
	}

	if !validScriptName.MatchString(trimmed) {
		return "", fmt.Errorf("script name %q must start with a letter and contain only a-z, 0-9, '-' and '_'", trimmed)
	}

	return trimmed, nil
}

// ValidateMouseDelta rejects non-finite or absurdly large relative motion
func ValidateMouseDelta(dx, dy float64) error {
	for _, d := range []float64{dx, dy} {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return fmt.Errorf("mouse delta must be finite: (%v, %v)", dx, dy)
		}
		if math.Abs(d) > MaxMouseDelta {
			return fmt.Errorf("mouse delta too large: (%v, %v) (max %v)", dx, dy, MaxMouseDelta)
		}
	}
	return nil
}

// ValidateDeltaTime validates a frame time in seconds
func ValidateDeltaTime(dt float64) error {
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("delta time must be finite: %v", dt)
	}
	if dt < 0 {
		return fmt.Errorf("delta time cannot be negative: %v", dt)
	}
	return nil
}

// ValidateSensitivity validates a mouse sensitivity in radians per unit
func ValidateSensitivity(s float64) error {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return fmt.Errorf("sensitivity must be finite: %v", s)
	}
	if s <= 0 || s > MaxSensitivity {
		return fmt.Errorf("invalid sensitivity: %v (must be in (0, %v])", s, MaxSensitivity)
	}
	return nil
}

// ValidatePositive validates a named strictly positive finite value
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%s must be a positive finite number: %v", name, v)
	}
	return nil
}

// ValidateNonNegative validates a named non-negative finite value
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%s must be a non-negative finite number: %v", name, v)
	}
	return nil
}

// SanitizeHUDText strips control characters and truncates text shown on
// the HUD line.
func SanitizeHUDText(text string) string {
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "?")
	}

	filtered := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)

	if utf8.RuneCountInString(filtered) > MaxHUDTextLen {
		runes := []rune(filtered)
		filtered = string(runes[:MaxHUDTextLen])
	}
	return filtered
}
