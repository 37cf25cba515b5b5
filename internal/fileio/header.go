package fileio

import (
	"regexp"
	"strings"
)

var reHeaderJunk = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// NormHeaderKey folds a column header for comparison: lowercase, NBSP
// variants to plain spaces, punctuation stripped, spaces collapsed.
func NormHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", " ", " ", " ").Replace(s)
	s = reHeaderJunk.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// ResolveKey finds the real column key in a record for the wanted name.
// Alternatives go through "|" ("Journal|Journal Name|Source Title").
// Exact match wins, then normalized equality, then the longest
// containment either way.
func ResolveKey(rec map[string]string, want string) string {
	want = strings.TrimSpace(want)
	if want == "" {
		return ""
	}
	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}

	// as-is
	for _, a := range alts {
		if _, ok := rec[a]; ok {
			return a
		}
	}

	nWantAll := make([]string, 0, len(alts))
	for _, a := range alts {
		nWantAll = append(nWantAll, NormHeaderKey(a))
	}

	bestKey := ""
	bestScore := 0
	for k := range rec {
		nk := NormHeaderKey(k)
		for _, n := range nWantAll {
			if nk == n {
				return k
			}
		}
		score := 0
		for _, n := range nWantAll {
			if n == "" || nk == "" {
				continue
			}
			if strings.Contains(nk, n) || strings.Contains(n, nk) {
				if len(n) > score {
					score = len(n)
				}
			}
		}
		if score > bestScore {
			bestScore, bestKey = score, k
		}
	}
	return bestKey
}
