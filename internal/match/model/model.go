package model

// NoMatch is reported when no candidate clears the accept threshold.
const NoMatch = "No match found"

// Match methods.
const (
	MethodExact = "exact"
	MethodFuzzy = "fuzzy"
	MethodNone  = "none"
)

// ReferenceEntry is one row of the reference table: a canonical journal
// name and its impact factor. Order is the load position; ties between
// equally scored candidates go to the earliest entry.
type ReferenceEntry struct {
	CanonicalName string  `json:"canonicalName"`
	NameNorm      string  `json:"-"`
	ImpactFactor  float64 `json:"impactFactor"`
	Order         int     `json:"-"`
}

// Options are the per-request matching knobs.
type Options struct {
	AcceptScore int // candidates scoring below this are rejected (0..100)
}

// MatchResult is the outcome of matching a single raw journal name.
// ImpactFactor is nil exactly when the match was rejected.
type MatchResult struct {
	RawName      string   `json:"journalName"`
	BestMatch    string   `json:"bestMatch"`
	Score        int      `json:"matchScore"`
	ImpactFactor *float64 `json:"impactFactor"`
	Method       string   `json:"method"`
}

// RowResult pairs the original row cells with its match result.
type RowResult struct {
	Cells map[string]string `json:"cells"`
	Match MatchResult       `json:"match"`
}

// ProcessedFile is one uploaded file after matching, rows sorted
// ascending by score so the poorest matches come first.
type ProcessedFile struct {
	Name          string      `json:"name"`
	JournalColumn string      `json:"journalColumn,omitempty"`
	Headers       []string    `json:"headers,omitempty"`
	Rows          []RowResult `json:"rows,omitempty"`
	Err           string      `json:"error,omitempty"`
}
