// Package obfuscate implements the legacy credential-at-rest encoding used
// for database credentials stored in environment variables.
//
// This is NOT encryption. The scheme splits a string into the characters at
// even and odd positions and joins the halves with a fixed marker. It only
// keeps credentials from being readable at a glance in process listings and
// .env files; treat any value passed through it as effectively plaintext.
package obfuscate

import (
	"fmt"
	"strings"
)

const marker = "rku"

// Encode obfuscates a credential for storage.
func Encode(plain string) string {
	var evens, odds strings.Builder
	for i, r := range []rune(plain) {
		if i%2 == 0 {
			evens.WriteRune(r)
		} else {
			odds.WriteRune(r)
		}
	}
	return evens.String() + marker + odds.String()
}

// Decode reverses Encode. It fails when the marker is missing or the two
// halves cannot be interleaved back into a single string.
func Decode(stored string) (string, error) {
	idx := strings.Index(stored, marker)
	if idx < 0 {
		return "", fmt.Errorf("obfuscate: marker not found in stored credential")
	}

	evens := []rune(stored[:idx])
	odds := []rune(stored[idx+len(marker):])
	if len(evens) < len(odds) || len(evens)-len(odds) > 1 {
		return "", fmt.Errorf("obfuscate: malformed credential halves (%d/%d)", len(evens), len(odds))
	}

	var out strings.Builder
	for i := range evens {
		out.WriteRune(evens[i])
		if i < len(odds) {
			out.WriteRune(odds[i])
		}
	}
	return out.String(), nil
}
