package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashURL creates a SHA256 hash of a URL string.
// This is useful for creating consistent, safe keys for Redis.
func HashURL(rawURL string) string {
	h := sha256.New()
	h.Write([]byte(rawURL))
	return hex.EncodeToString(h.Sum(nil))
}

// NormalizeBase trims whitespace and the trailing slash from a blog base
// URL so path suffixes can be appended safely.
func NormalizeBase(rawURL string) string {
	return strings.TrimRight(strings.TrimSpace(rawURL), "/")
}
