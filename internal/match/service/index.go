package service

import (
	"sort"

	"jifmatch-service/internal/match/model"
)

// Index holds the reference set in load order plus two lookup structures:
// an exact map over normalized names and a trigram inverted index used to
// preselect fuzzy candidates.
type Index struct {
	entries []model.ReferenceEntry
	exact   map[string]int   // normalized name -> first entry position
	inv     map[string][]int // trigram -> entry positions, ascending
}

func NewIndex(entries []model.ReferenceEntry) *Index {
	idx := &Index{
		entries: entries,
		exact:   make(map[string]int, len(entries)),
		inv:     make(map[string][]int),
	}
	for i := range entries {
		nn := entries[i].NameNorm
		if nn == "" {
			continue
		}
		if _, ok := idx.exact[nn]; !ok {
			idx.exact[nn] = i
		}
		for g := range trigramSet(nn) {
			idx.inv[g] = append(idx.inv[g], i)
		}
	}
	return idx
}

// Size reports how many reference entries the index covers.
func (idx *Index) Size() int { return len(idx.entries) }

func trigramSet(s string) map[string]struct{} {
	m := make(map[string]struct{})
	if s == "" {
		return m
	}
	p := " " + s + " "
	r := []rune(p)
	if len(r) < 3 {
		m[p] = struct{}{}
		return m
	}
	for i := 0; i <= len(r)-3; i++ {
		m[string(r[i:i+3])] = struct{}{}
	}
	return m
}

// candidates returns the positions of entries sharing at least one trigram
// with the query, ascending so iteration keeps reference order. A nil result
// means the caller must fall back to a full scan.
func (idx *Index) candidates(norm string) []int {
	if norm == "" {
		return nil
	}
	seen := make(map[int]struct{})
	for g := range trigramSet(norm) {
		for _, p := range idx.inv[g] {
			seen[p] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]int, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}
