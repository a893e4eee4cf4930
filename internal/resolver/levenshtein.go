package resolver

import "strings"

// levenshtein calculates the edit distance between two strings.
// Uses two rows instead of a full matrix for efficiency.
func levenshtein(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}
	if s1 == s2 {
		return 0
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	len1, len2 := len(r1), len(r2)

	prev := make([]int, len2+1)
	curr := make([]int, len2+1)

	for j := 0; j <= len2; j++ {
		prev[j] = j
	}

	for i := 1; i <= len1; i++ {
		curr[0] = i
		for j := 1; j <= len2; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len2]
}

// distanceRatio is the edit distance normalized by the longer length,
// so 0 is identical and 1 is completely different.
func distanceRatio(a, b string) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 0
	}
	return float64(levenshtein(a, b)) / float64(maxLen)
}

// containmentRatio scores two strings where one contains the other: the
// unshared length relative to the longer string. A substring relationship
// is stronger evidence than edit distance for truncated or padded
// transcriptions, so callers try this before distanceRatio.
func containmentRatio(a, b string) (float64, bool) {
	if a == "" || b == "" {
		return 0, false
	}
	if !strings.Contains(a, b) && !strings.Contains(b, a) {
		return 0, false
	}
	diff := len(a) - len(b)
	if diff < 0 {
		diff = -diff
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return float64(diff) / float64(maxLen), true
}
