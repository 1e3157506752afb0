package embedding

import (
	"crypto/sha256"
	"strings"
)

// MockEmbed produces a deterministic stand-in vector for the given text.
// The hash of the lower-cased text is expanded cyclically into dimensions
// scalar values in [-1,1], then unit-normalized. The same input always
// yields the same output, which keeps fallback scoring stable and tests
// reproducible.
func MockEmbed(text string, dimensions int) []float64 {
	if dimensions <= 0 {
		return nil
	}

	hash := sha256.Sum256([]byte(strings.ToLower(text)))

	vec := make([]float64, dimensions)
	for i := 0; i < dimensions; i++ {
		b := hash[i%len(hash)]
		vec[i] = float64(b)/127.5 - 1.0
	}

	normalize(vec)
	return vec
}
