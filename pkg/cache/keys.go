package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey returns the key for a layout of the DOT text with the given hash.
	LayoutKey(dotHash string, opts LayoutKeyOpts) string
}

// LayoutKeyOpts holds the layout parameters that affect the result.
type LayoutKeyOpts struct {
	Program string `json:"program"`
}

// DefaultKeyer produces "layout:<sha256 of hash and options>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey hashes the DOT hash together with the options.
func (DefaultKeyer) LayoutKey(dotHash string, opts LayoutKeyOpts) string {
	data, _ := json.Marshal([]any{dotHash, opts})
	return "layout:" + Hash(data)
}

// ScopedKeyer prefixes another Keyer, so the CLI and several server
// instances can share one redis database.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default scheme if inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(dotHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(dotHash, opts)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
