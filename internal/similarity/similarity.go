// Package similarity detects near-duplicate generated content with
// character n-gram Jaccard similarity. Fallback templates make repeated
// generations of the same topic nearly identical; the pipeline uses this
// check to flag them.
package similarity

import (
	"strings"
	"unicode"
)

type Checker struct {
	threshold float64
	ngramSize int
}

// New creates a checker. threshold is the Jaccard score at or above
// which two texts count as duplicates; ngramSize is the character n-gram
// width (3 works well for prose).
func New(threshold float64, ngramSize int) *Checker {
	return &Checker{threshold: threshold, ngramSize: ngramSize}
}

// normalize lowercases, removes punctuation, and collapses whitespace.
func (c *Checker) normalize(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevSpace = false
		} else if !prevSpace {
			sb.WriteRune(' ')
			prevSpace = true
		}
	}
	return strings.TrimSpace(sb.String())
}

// ngrams extracts all character n-grams from the text.
func (c *Checker) ngrams(text string) map[string]struct{} {
	normalized := c.normalize(text)
	set := make(map[string]struct{})
	runes := []rune(normalized)
	for i := 0; i <= len(runes)-c.ngramSize; i++ {
		set[string(runes[i:i+c.ngramSize])] = struct{}{}
	}
	return set
}

// Similarity computes the Jaccard similarity of two texts in [0, 1].
func (c *Checker) Similarity(a, b string) float64 {
	return jaccard(c.ngrams(a), c.ngrams(b))
}

// IsDuplicate reports whether candidate is too similar to any of the
// existing texts.
func (c *Checker) IsDuplicate(candidate string, existing []string) bool {
	candidateGrams := c.ngrams(candidate)
	for _, text := range existing {
		if jaccard(candidateGrams, c.ngrams(text)) >= c.threshold {
			return true
		}
	}
	return false
}

// jaccard computes |A intersection B| / |A union B|.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
