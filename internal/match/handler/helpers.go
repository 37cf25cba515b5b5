package handler

import (
	"strconv"
	"strings"
)

// Header aliases tried when the caller does not name the journal column.
const journalColumns = "Journal Name|Journal|Full Journal Title|Source Title|Journal Title|Publication"

// Result columns appended to the output file.
var resultHeaders = []string{"Journal Name", "Best Match", "Match Score", "Impact Factor"}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

// uniqueHeader avoids clobbering an input column that already carries one
// of the result names.
func uniqueHeader(existing []string, name string) string {
	taken := make(map[string]struct{}, len(existing))
	for _, h := range existing {
		taken[strings.ToLower(h)] = struct{}{}
	}
	out := name
	for i := 2; ; i++ {
		if _, ok := taken[strings.ToLower(out)]; !ok {
			return out
		}
		out = name + " " + strconv.Itoa(i)
	}
}

func formatFactor(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
