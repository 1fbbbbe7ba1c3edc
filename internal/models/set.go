// ABOUTME: Structured per-set records and the legacy comma-joined column codec.
// ABOUTME: Older rows only carry "10,10,8" style strings; ParseSets rebuilds them.
package models

import (
	"strconv"
	"strings"
)

const setDelimiter = ","

// Set is one performance unit within an exercise.
type Set struct {
	Reps      int     `json:"reps"`
	Weight    float64 `json:"weight"`
	Completed bool    `json:"completed"`
}

// JoinReps serializes the reps of each set, one value per set.
func JoinReps(sets []Set) string {
	parts := make([]string, len(sets))
	for i, s := range sets {
		parts[i] = strconv.Itoa(s.Reps)
	}
	return strings.Join(parts, setDelimiter)
}

// JoinWeights serializes the weight of each set, positionally aligned with JoinReps.
func JoinWeights(sets []Set) string {
	parts := make([]string, len(sets))
	for i, s := range sets {
		parts[i] = strconv.FormatFloat(s.Weight, 'f', -1, 64)
	}
	return strings.Join(parts, setDelimiter)
}

// ParseSets rebuilds sets from legacy columns. The result has max(count, len(parts))
// entries; missing or malformed values read as zero.
func ParseSets(count int, reps, weights string) []Set {
	repParts := splitColumn(reps)
	weightParts := splitColumn(weights)

	n := count
	if len(repParts) > n {
		n = len(repParts)
	}
	if len(weightParts) > n {
		n = len(weightParts)
	}

	sets := make([]Set, n)
	for i := range sets {
		if i < len(repParts) {
			sets[i].Reps, _ = strconv.Atoi(repParts[i])
		}
		if i < len(weightParts) {
			sets[i].Weight, _ = strconv.ParseFloat(weightParts[i], 64)
		}
	}
	return sets
}

func splitColumn(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, setDelimiter)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
