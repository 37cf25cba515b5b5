package service

import (
	"sort"
	"strings"

	"jifmatch-service/internal/match/model"
)

// Threshold policy: 100 is a perfect match, anything at or above
// DefaultAcceptScore is taken, anything below is rejected outright.
// The accept score is adjustable per request; 100 is the scale itself.
const (
	ScoreMax           = 100
	DefaultAcceptScore = 80
)

// Match normalizes raw and scores it against every reference entry.
// Rejected queries (empty input or best score under the accept threshold)
// come back as score 0, "No match found" and a nil impact factor, whatever
// the nominal best candidate was. Ties go to the earliest reference entry.
func (idx *Index) Match(raw string, opt model.Options) model.MatchResult {
	res := model.MatchResult{
		RawName:   raw,
		BestMatch: model.NoMatch,
		Method:    model.MethodNone,
	}

	q := Normalize(raw)
	if q == "" {
		return res
	}

	accept := opt.AcceptScore
	if accept <= 0 || accept > ScoreMax {
		accept = DefaultAcceptScore
	}

	// (1) exact hit on the normalized name
	if p, ok := idx.exact[q]; ok {
		e := idx.entries[p]
		f := e.ImpactFactor
		return model.MatchResult{
			RawName:      raw,
			BestMatch:    e.CanonicalName,
			Score:        ScoreMax,
			ImpactFactor: &f,
			Method:       model.MethodExact,
		}
	}

	// (2) fuzzy over trigram-preselected candidates; an empty preselection
	// degrades to the full scan so blocking stays a pure optimization
	cands := idx.candidates(q)
	if cands == nil {
		cands = make([]int, len(idx.entries))
		for i := range idx.entries {
			cands[i] = i
		}
	}

	best, bestPos := -1, -1
	for _, p := range cands {
		if idx.entries[p].NameNorm == "" {
			continue
		}
		if s := Score(q, idx.entries[p].NameNorm); s > best {
			best, bestPos = s, p
		}
	}

	if bestPos < 0 || best < accept {
		return res
	}

	e := idx.entries[bestPos]
	f := e.ImpactFactor
	return model.MatchResult{
		RawName:      raw,
		BestMatch:    e.CanonicalName,
		Score:        best,
		ImpactFactor: &f,
		Method:       model.MethodFuzzy,
	}
}

// ProcessRows runs the normalize+match pipeline over every row of one file
// and returns the rows sorted ascending by score, poorest matches first.
// Original cells pass through untouched.
func ProcessRows(rows []map[string]string, nameKey string, idx *Index, opt model.Options) []model.RowResult {
	out := make([]model.RowResult, 0, len(rows))
	for _, rec := range rows {
		raw := strings.TrimSpace(rec[nameKey])
		out = append(out, model.RowResult{
			Cells: rec,
			Match: idx.Match(raw, opt),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Match.Score < out[j].Match.Score
	})
	return out
}
