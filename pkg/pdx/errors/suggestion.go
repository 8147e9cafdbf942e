package errors

import "fmt"

// SuggestIdentifier suggests the closest known identifier for an unknown one.
// It returns an empty string when nothing is reasonably close.
func SuggestIdentifier(unknown string, known []string) string {
	if len(known) == 0 || unknown == "" {
		return ""
	}

	minDistance := 1000
	var bestMatch string

	for _, candidate := range known {
		dist := levenshteinDistance(unknown, candidate)
		if dist < minDistance {
			minDistance = dist
			bestMatch = candidate
		}
	}

	// Only suggest if the distance is reasonable (< 5 edits and shorter
	// than the identifier itself)
	if minDistance < 5 && minDistance < len(unknown) {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}
	return ""
}

// levenshteinDistance calculates the edit distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	// Single row of the distance matrix
	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}
