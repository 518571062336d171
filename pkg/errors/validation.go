package errors

import (
	"slices"
	"strings"
)

// DefaultMaxDimension bounds maze width and height for untrusted input.
const DefaultMaxDimension = 100

// ValidateDimensions checks that width and height are in [1, max].
// A max of zero or less disables the upper bound.
func ValidateDimensions(width, height, max int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidDimensions, "width and height must be positive, got %dx%d", width, height)
	}
	if max > 0 && (width > max || height > max) {
		return New(ErrCodeInvalidDimensions, "width and height must be at most %d, got %dx%d", max, width, height)
	}
	return nil
}

// ValidateChoice checks that value is one of allowed and returns an error
// with the given code otherwise. kind names the option in the message.
func ValidateChoice(code Code, kind, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return New(code, "invalid %s: %q (must be one of: %s)", kind, value, strings.Join(allowed, ", "))
}

// ValidateMongoURI checks that uri uses a MongoDB connection scheme.
func ValidateMongoURI(uri string) error {
	if uri == "" {
		return New(ErrCodeInvalidConfig, "MongoDB URI cannot be empty")
	}
	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		return New(ErrCodeInvalidConfig, "MongoDB URI must use mongodb:// or mongodb+srv:// scheme")
	}
	return nil
}

// ValidateRedisAddr checks that addr looks like host:port.
func ValidateRedisAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidConfig, "redis address cannot be empty")
	}
	i := strings.LastIndex(addr, ":")
	if i <= 0 || i == len(addr)-1 {
		return New(ErrCodeInvalidConfig, "redis address must be host:port, got %q", addr)
	}
	return nil
}

// ValidateFormat checks an output format name against the supported set.
func ValidateFormat(format string, supported []string) error {
	return ValidateChoice(ErrCodeInvalidFormat, "format", format, supported)
}

// ValidateStyle checks a render style name against the supported set.
func ValidateStyle(style string, supported []string) error {
	return ValidateChoice(ErrCodeInvalidStyle, "style", style, supported)
}
