package retrieval

import (
	"math"
	"strings"
	"unicode"
)

// Blend weights for the final score. Fixed policy, not user-tunable per call.
const (
	vectorWeight  = 0.7
	keywordWeight = 0.3
)

// cosineSimilarity computes the cosine of the angle between two equal-length
// vectors, accumulating in float64 for stability.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// clamp01 maps a cosine value into [0,1]: negative similarity carries no
// useful ranking signal here and clamps to zero.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "for": true, "to": true,
	"is": true, "are": true, "was": true, "with": true, "at": true,
	"by": true, "this": true, "that": true, "it": true, "as": true,
}

// tokenize lowercases text and splits it into a set of content tokens.
func tokenize(text string) map[string]bool {
	tokens := make(map[string]bool)
	for _, field := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len(field) < 2 || stopwords[field] {
			continue
		}
		tokens[field] = true
	}
	return tokens
}

// keywordOverlap is the Jaccard index of two token sets.
func keywordOverlap(query, doc map[string]bool) float64 {
	if len(query) == 0 || len(doc) == 0 {
		return 0
	}

	intersection := 0
	for token := range query {
		if doc[token] {
			intersection++
		}
	}

	union := len(query) + len(doc) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
