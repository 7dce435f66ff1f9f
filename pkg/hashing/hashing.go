// Package hashing provides the deterministic hash primitives used by the
// build-output layer: a full content digest for the write cache and two
// string-identifier hashes for chunk naming.
//
// All three functions are pure functions of their input. Chunk names must be
// byte-identical across builds and across processes, otherwise the write
// cache above them would see "changed" content on every rebuild.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const (
	longHashSlugCap = 32
	longHashSuffix  = 3
)

// Digest returns the lowercase hex sha256 of content. It is the cache
// identity of a build artifact.
func Digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// ShortHash returns a deterministic lowercase alphanumeric hash of s with
// the requested length. Length is capped at 16 (one xxhash64 word in hex).
func ShortHash(s string, length int) string {
	h := fmt.Sprintf("%016x", xxhash.Sum64String(s))
	if length < 1 || length > len(h) {
		return h
	}
	return h[:length]
}

// LongHash returns a readable, deterministic identifier for s: a sanitized
// slug of its trailing path segments plus a 3-char hash suffix. The suffix
// keeps two inputs that slug identically (e.g. "/docs/intro" and
// "/Docs/intro") from colliding.
func LongHash(s string) string {
	slug := slugify(s)
	if slug == "" {
		return ShortHash(s, 8)
	}
	return slug + "-" + ShortHash(s, longHashSuffix)
}

// slugify lowercases s and collapses every run of non-alphanumeric bytes
// into a single '-', keeping at most the last longHashSlugCap chars so that
// deeply nested module paths stay readable.
func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > longHashSlugCap {
		slug = strings.Trim(slug[len(slug)-longHashSlugCap:], "-")
	}
	return slug
}
