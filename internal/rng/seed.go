package rng

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// Seed is the normalized form of any user supplied seed.
type Seed uint64

// DefaultSeed is used at startup and whenever a seed cannot be normalized.
const DefaultSeed Seed = 120398471023

// MaxSeedLen bounds the accepted seed text in bytes.
const MaxSeedLen = 1024

// ErrInvalidSeed indicates seed input that cannot be normalized.
var ErrInvalidSeed = errors.New("rng: invalid seed")

// ParseSeed normalizes raw. It always returns a usable seed; the error is
// informational and wraps ErrInvalidSeed.
func ParseSeed(raw string) (Seed, error) {
	if !utf8.ValidString(raw) {
		return DefaultSeed, fmt.Errorf("%w: not valid utf-8", ErrInvalidSeed)
	}
	if len(raw) > MaxSeedLen {
		return DefaultSeed, fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidSeed, len(raw), MaxSeedLen)
	}

	s := strings.TrimSpace(raw)
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Seed(n), nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Seed(uint64(n)), nil
	}
	return Seed(xxhash.Sum64String(s)), nil
}

// FromString is ParseSeed without the diagnostic.
func FromString(raw string) Seed {
	s, _ := ParseSeed(raw)
	return s
}

func (s Seed) String() string {
	return strconv.FormatUint(uint64(s), 10)
}
