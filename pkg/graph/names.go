package graph

import (
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

// Quote returns the canonical node key for a ROS name: the name wrapped in
// double quotes. Names that are already quoted are returned unchanged, so
// Quote(Quote(x)) == Quote(x).
func Quote(name string) string {
	return `"` + Unquote(name) + `"`
}

// Unquote strips surrounding double quotes from a node key or DOT attribute
// value. Any number of leading and trailing quote characters is removed.
func Unquote(key string) string {
	return strings.Trim(key, `"`)
}

// Omit selects how much of a ROS name is shown in a label.
type Omit int

const (
	// OmitFull shows the whole name, wrapped at 60 columns.
	OmitFull Omit = iota
	// OmitFirstLast shows "/first/last", wrapped at 50 columns.
	OmitFirstLast
	// OmitLast shows "/last" only, wrapped at 40 columns.
	OmitLast
)

// ParseOmit converts a flag value ("full", "first_last", "last") to an Omit.
// Unknown values fall back to OmitFull.
func ParseOmit(s string) Omit {
	switch strings.ToLower(s) {
	case "first_last", "firstlast", "first-last":
		return OmitFirstLast
	case "last":
		return OmitLast
	default:
		return OmitFull
	}
}

// String returns the flag spelling of the mode.
func (o Omit) String() string {
	switch o {
	case OmitFirstLast:
		return "first_last"
	case OmitLast:
		return "last"
	default:
		return "full"
	}
}

// DisplayName shortens and wraps a node key or topic name for display.
func DisplayName(name string, omit Omit) string {
	s := Unquote(name)
	switch omit {
	case OmitFirstLast:
		parts := nonEmpty(strings.Split(s, "/"))
		switch len(parts) {
		case 0:
			s = "/"
		case 1:
			s = "/" + parts[0]
		default:
			s = "/" + parts[0] + "/" + parts[len(parts)-1]
		}
		return wordwrap.WrapString(s, 50)
	case OmitLast:
		parts := strings.Split(s, "/")
		return wordwrap.WrapString("/"+parts[len(parts)-1], 40)
	default:
		return wordwrap.WrapString(s, 60)
	}
}

func nonEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
