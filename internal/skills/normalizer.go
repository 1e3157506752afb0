// Package skills provides skill canonicalization and fuzzy skill-set matching.
package skills

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Thresholds holds the tunable cutoffs used by the normalizer.
// They are configuration, not behavior, so tests can exercise the
// bands independently.
type Thresholds struct {
	// MaxEditDistance is the exclusive cutoff for accepting a fuzzy
	// dictionary match (distance < MaxEditDistance).
	MaxEditDistance int
	// UnrelatedFloor is the edit-similarity value below which two
	// skills are treated as unrelated (similarity 0).
	UnrelatedFloor float64
	// ExactCutoff is the similarity at or above which a required
	// skill counts as fully matched.
	ExactCutoff float64
	// MatchThreshold is the default lower bound for a partial match.
	MatchThreshold float64
	// AmbiguousLow and AmbiguousHigh bound the similarity band that is
	// too uncertain for automatic classification.
	AmbiguousLow  float64
	AmbiguousHigh float64
}

// DefaultThresholds returns the standard normalizer cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxEditDistance: 3,
		UnrelatedFloor:  0.7,
		ExactCutoff:     0.95,
		MatchThreshold:  0.75,
		AmbiguousLow:    0.5,
		AmbiguousHigh:   0.7,
	}
}

// Normalizer canonicalizes free-text skill tokens and fuzzy-matches skill sets.
type Normalizer struct {
	dict       *Dictionary
	thresholds Thresholds
}

// NewNormalizer creates a Normalizer over the given dictionary with default thresholds.
func NewNormalizer(dict *Dictionary) *Normalizer {
	return NewNormalizerWithThresholds(dict, DefaultThresholds())
}

// NewNormalizerWithThresholds creates a Normalizer with explicit thresholds.
func NewNormalizerWithThresholds(dict *Dictionary, thresholds Thresholds) *Normalizer {
	return &Normalizer{dict: dict, thresholds: thresholds}
}

// Canonicalize maps a raw skill token to its canonical name.
// Lookup order: exact dictionary match on the lower-cased trimmed token,
// then the closest dictionary key within the edit-distance cutoff, then
// a title-cased copy of the original token. Returns ok=false only for
// empty input.
func (n *Normalizer) Canonicalize(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	lower := strings.ToLower(trimmed)
	if canonical, ok := n.dict.Lookup(lower); ok {
		return canonical, true
	}

	// Fuzzy fallback: closest dictionary key under the distance cutoff.
	// Ties break to the lexicographically smaller key so map iteration
	// order never changes the result.
	bestKey := ""
	bestDistance := 0
	for _, key := range n.dict.Keys() {
		distance := levenshteinDistance(lower, key)
		if distance >= n.thresholds.MaxEditDistance {
			continue
		}
		if bestKey == "" || distance < bestDistance || (distance == bestDistance && key < bestKey) {
			bestKey = key
			bestDistance = distance
		}
	}
	if bestKey != "" {
		canonical, _ := n.dict.Lookup(bestKey)
		return canonical, true
	}

	return titleCase(trimmed), true
}

// CanonicalizeSet canonicalizes and de-duplicates a list of raw skills.
// First-seen order is preserved.
func (n *Normalizer) CanonicalizeSet(raws []string) []string {
	result := make([]string, 0, len(raws))
	seen := make(map[string]bool, len(raws))
	for _, raw := range raws {
		canonical, ok := n.Canonicalize(raw)
		if !ok {
			continue
		}
		key := strings.ToLower(canonical)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, canonical)
	}
	return result
}

// Similarity returns a similarity score in [0,1] for two skills.
// Identical canonical forms return 1.0; related pairs come from the
// similarity table; everything else falls back to normalized edit
// distance, clamped to 0 below the unrelated floor.
func (n *Normalizer) Similarity(skillA, skillB string) float64 {
	a := n.canonicalLower(skillA)
	b := n.canonicalLower(skillB)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}

	if score, ok := n.dict.RelatedScore(a, b); ok {
		return score
	}

	sim := editSimilarity(a, b)
	if sim < n.thresholds.UnrelatedFloor {
		return 0
	}
	return sim
}

// IsAmbiguous reports whether a similarity value falls in the band too
// uncertain for automatic classification, flagging it for external
// adjudication.
func (n *Normalizer) IsAmbiguous(similarity float64) bool {
	return similarity >= n.thresholds.AmbiguousLow && similarity <= n.thresholds.AmbiguousHigh
}

// MatchSetResult classifies required skills against a candidate's skills.
type MatchSetResult struct {
	Matched []string `json:"matched"`
	Partial []string `json:"partial"`
	Missing []string `json:"missing"`
}

// MatchSets classifies every required skill against the candidate set.
// A required skill is matched when its best candidate similarity is at
// least the exact cutoff, partial when in [threshold, cutoff), and
// missing otherwise. threshold <= 0 uses the default. The first
// candidate achieving the maximum similarity wins ties.
func (n *Normalizer) MatchSets(required, candidate []string, threshold float64) MatchSetResult {
	if threshold <= 0 {
		threshold = n.thresholds.MatchThreshold
	}

	requiredSet := n.CanonicalizeSet(required)
	candidateSet := n.CanonicalizeSet(candidate)

	result := MatchSetResult{
		Matched: make([]string, 0, len(requiredSet)),
		Partial: make([]string, 0),
		Missing: make([]string, 0),
	}

	for _, req := range requiredSet {
		best := 0.0
		for _, cand := range candidateSet {
			if sim := n.Similarity(req, cand); sim > best {
				best = sim
			}
		}

		switch {
		case best >= n.thresholds.ExactCutoff:
			result.Matched = append(result.Matched, req)
		case best >= threshold:
			result.Partial = append(result.Partial, req)
		default:
			result.Missing = append(result.Missing, req)
		}
	}

	return result
}

// canonicalLower canonicalizes a skill and lower-cases it for comparison.
func (n *Normalizer) canonicalLower(skill string) string {
	canonical, ok := n.Canonicalize(skill)
	if !ok {
		return ""
	}
	return strings.ToLower(canonical)
}

// titleCase capitalizes the first rune of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
	}
	return strings.Join(words, " ")
}
