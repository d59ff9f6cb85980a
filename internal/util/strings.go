package util

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// LevenshteinDistance calculates the Levenshtein distance between two strings
func LevenshteinDistance(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	prev := make([]int, len(r2)+1)
	cur := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		cur[0] = i
		for j := 1; j <= len(r2); j++ {
			if r1[i-1] == r2[j-1] {
				cur[j] = prev[j-1]
			} else {
				cur[j] = min(prev[j], cur[j-1], prev[j-1]) + 1
			}
		}
		prev, cur = cur, prev
	}

	return prev[len(r2)]
}

// DefaultSuggestionThreshold is the largest edit distance still considered a typo.
const DefaultSuggestionThreshold = 2

type suggestion struct {
	name     string
	distance int
}

// Suggest returns the candidates closest to input, best first. A candidate
// qualifies when its edit distance is within threshold and shorter than
// input, or when input is a case-insensitive fuzzy match of it (for example
// "verb" against "verbose").
func Suggest(input string, candidates []string, threshold int) []string {
	if input == "" || len(candidates) == 0 {
		return nil
	}

	byName := make(map[string]suggestion)
	for _, c := range candidates {
		if c == input {
			continue
		}
		if d := LevenshteinDistance(input, c); d <= threshold && d < utf8.RuneCountInString(input) {
			byName[c] = suggestion{name: c, distance: d}
		}
	}

	if len([]rune(input)) > 1 {
		for _, rank := range fuzzy.RankFindFold(input, candidates) {
			if rank.Target == input {
				continue
			}
			if _, ok := byName[rank.Target]; !ok {
				byName[rank.Target] = suggestion{name: rank.Target, distance: LevenshteinDistance(input, rank.Target)}
			}
		}
	}

	found := make([]suggestion, 0, len(byName))
	for _, s := range byName {
		found = append(found, s)
	}
	slices.SortFunc(found, func(a, b suggestion) int {
		if a.distance != b.distance {
			return a.distance - b.distance
		}
		return strings.Compare(a.name, b.name)
	})

	names := make([]string, len(found))
	for i, s := range found {
		names[i] = s.name
	}

	return names
}

// Closest returns the best suggestion for input, if any.
func Closest(input string, candidates []string) (string, bool) {
	s := Suggest(input, candidates, DefaultSuggestionThreshold)
	if len(s) == 0 {
		return "", false
	}

	return s[0], true
}

// Truncate truncates a string to the specified length
func Truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	if length <= 3 {
		return "..."
	}
	return string(r[:length-3]) + "..."
}
