package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateNodeName checks that a ROS node or topic name is usable as a
// graph key. Names must be non-empty, start with a slash and contain no
// control characters or double quotes (quotes are reserved for node keys).
func ValidateNodeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}
	if !strings.HasPrefix(name, "/") {
		return New(ErrCodeInvalidName, "name must start with '/': %q", name)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name contains invalid control characters: %q", name)
		}
		if r == '"' {
			return New(ErrCodeInvalidName, "name contains a double quote: %q", name)
		}
	}
	return nil
}

// CompilePattern compiles an ignore pattern as a full-string match.
// The pattern is anchored so "/t" matches "/t" but not "/t2".
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, Wrap(ErrCodeInvalidSetting, err, "invalid pattern %q", pattern)
	}
	return re, nil
}

// ValidateDirection checks a group layout direction.
func ValidateDirection(direction string) error {
	switch direction {
	case "horizontal", "vertical":
		return nil
	default:
		return New(ErrCodeInvalidSetting, "direction must be horizontal or vertical, got %q", direction)
	}
}

// ValidateColor checks that every RGB component lies in 0..255.
func ValidateColor(rgb [3]int) error {
	for _, c := range rgb {
		if c < 0 || c > 255 {
			return New(ErrCodeInvalidSetting, "color component out of range 0..255: %v", rgb)
		}
	}
	return nil
}

// ValidateOffset checks a group rectangle [x, y, w, h]. Width and height
// must not be negative.
func ValidateOffset(offset []float64) error {
	if len(offset) != 4 {
		return New(ErrCodeInvalidSetting, "offset must have 4 values [x, y, w, h], got %d", len(offset))
	}
	if offset[2] < 0 || offset[3] < 0 {
		return New(ErrCodeInvalidSetting, "offset width and height must not be negative: %v", offset)
	}
	return nil
}
