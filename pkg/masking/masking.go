// Package masking holds the privacy helpers applied to connection exports:
// accent folding, identifier hashing, name obfuscation and log masking.
package masking

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Masker hides personal values before they are logged. A nil *Masker
// returns values unchanged.
type Masker struct {
	policy Policy
}

// NewMasker creates a Masker for policy.
func NewMasker(policy Policy) *Masker {
	return &Masker{policy: policy}
}

// Mask hides value according to the strategy for kind.
func (m *Masker) Mask(value string, kind FieldType) string {
	if m == nil || value == "" {
		return value
	}
	strategy, ok := m.policy.Strategies[kind]
	if !ok {
		strategy = m.policy.Fallback
	}

	switch strategy {
	case StrategyNone:
		return value
	case StrategyDigest:
		return hashHex(value)[:DigestLength]
	case StrategyPartial:
		return m.partial(value)
	default:
		return "[REDACTED]"
	}
}

func (m *Masker) partial(value string) string {
	runes := []rune(value)
	keep := m.policy.KeepFirst + m.policy.KeepLast
	if len(runes) <= keep {
		return strings.Repeat(string(m.policy.MaskRune), len(runes))
	}
	hidden := strings.Repeat(string(m.policy.MaskRune), len(runes)-keep)
	return string(runes[:m.policy.KeepFirst]) + hidden + string(runes[len(runes)-m.policy.KeepLast:])
}

func hashHex(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// StripAccents removes diacritics through NFKD decomposition, drops
// newlines and trims surrounding whitespace.
func StripAccents(name string) string {
	decomposed := norm.NFKD.String(name)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) || r == '\n' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// HashIdentifier returns the hex SHA-256 of "first_last_company", lowercased.
// The same person at the same company always hashes identically.
func HashIdentifier(first, last, company string) string {
	raw := strings.ToLower(first) + "_" + strings.ToLower(last) + "_" + strings.ToLower(company)
	return hashHex(raw)
}

// PlaceholderFirstName returns the synthetic first name for the 0-based row index.
func PlaceholderFirstName(row int) string {
	return fmt.Sprintf("Person%d", row+1)
}

// PlaceholderLastName is the synthetic last name used for every obfuscated row.
const PlaceholderLastName = "Demo"
