package service

import (
	"math"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// reusable metric instance; Compare yields 1 - distance/maxLen
var lev = metrics.NewLevenshtein()

func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	return strutil.Similarity(a, b, lev)
}

// tokenSort reorders tokens alphabetically so word order stops mattering
// ("oncology journal" == "journal oncology").
func tokenSort(s string) string {
	if s == "" {
		return s
	}
	f := strings.Fields(s)
	sort.Strings(f)
	return strings.Join(f, " ")
}

func tokenSortSimilarity(a, b string) float64 {
	return similarity(tokenSort(a), tokenSort(b))
}

func bestSimilarity(a, b string) float64 {
	x := similarity(a, b)
	if y := tokenSortSimilarity(a, b); y > x {
		return y
	}
	return x
}

// Score maps the best similarity of two normalized strings onto the
// integer 0..100 confidence scale.
func Score(a, b string) int {
	s := int(math.Round(bestSimilarity(a, b) * ScoreMax))
	if s < 0 {
		return 0
	}
	if s > ScoreMax {
		return ScoreMax
	}
	return s
}
