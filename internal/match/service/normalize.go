package service

import (
	"regexp"
	"strings"
)

// Identifier noise that must never count as title text.

// "(ISSN 0028-0836)", "eISSN: 1476-4687", with or without the brackets
var reISSN = regexp.MustCompile(`(?i)[\(\[]?\b(?:e-?)?issn\b[:\s]*\d{4}[-\s]?\d{3}[\dxX][\)\]]?`)

// bare "0028-0836" style codes
var reBareISSN = regexp.MustCompile(`\b\d{4}-\d{3}[\dxX]\b`)

// "doi:10.1038/nature12373", "https://doi.org/10.1038/..." or a bare 10.x/y
var reDOI = regexp.MustCompile(`(?i)[\(\[]?\b(?:(?:https?://)?(?:dx\.)?doi(?:\.org)?[:/\s]*)?10\.\d{4,9}/[^\s\)\]]+[\)\]]?`)

// everything that is not a letter, digit or space becomes a space
var rePunct = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)

// Normalize is the one canonicalization pipeline every compared string goes
// through, queries and reference names alike. Pure and idempotent; empty or
// whitespace-only input yields "".
func Normalize(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	out := s

	// 1) Strip identifiers before punctuation handling, while the
	//    digit groups are still intact.
	out = reDOI.ReplaceAllString(out, " ")
	out = reISSN.ReplaceAllString(out, " ")
	out = reBareISSN.ReplaceAllString(out, " ")

	// 2) Case fold.
	out = strings.ToLower(out)

	// 3) "&" carries meaning, the rest of the punctuation does not.
	out = strings.ReplaceAll(out, "&", " and ")
	out = rePunct.ReplaceAllString(out, " ")

	// 4) Token-level abbreviation expansion.
	out = expandTokens(out)

	return collapseSpaces(out)
}

func expandTokens(s string) string {
	f := strings.Fields(s)
	for i, t := range f {
		if full, ok := abbrev[t]; ok {
			f[i] = full
		}
	}
	return strings.Join(f, " ")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
