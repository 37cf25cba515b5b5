// Package refdata owns the reference table of journal impact factors.
// It is loaded once at startup and held as an immutable snapshot; a refresh
// builds a complete new snapshot and swaps the pointer, never mutating the
// one in use.
package refdata

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"jifmatch-service/internal/fileio"
	"jifmatch-service/internal/match/model"
	"jifmatch-service/internal/match/service"
	"jifmatch-service/internal/utils"
)

// Column aliases accepted in the reference file header.
const (
	nameColumns   = "Journal Name|Journal|Full Journal Title|Source Title|Title"
	factorColumns = "Impact Factor|JIF|IF|Journal Impact Factor|2023 JIF"
)

// Snapshot is one immutable generation of the reference set with its
// prebuilt lookup index.
type Snapshot struct {
	Entries  []model.ReferenceEntry
	Index    *service.Index
	Source   string
	LoadedAt time.Time
}

// Store hands out the current snapshot and performs whole-table replaces.
type Store struct {
	path string
	log  zerolog.Logger
	cur  atomic.Pointer[Snapshot]
}

// Open loads the reference file and fails hard when it cannot; the caller
// treats that as fatal before any processing begins.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	s := &Store{path: path, log: logger}
	snap, err := load(path, logger)
	if err != nil {
		return nil, err
	}
	s.cur.Store(snap)
	return s, nil
}

// Snapshot returns the current generation. Never nil after Open succeeds.
func (s *Store) Snapshot() *Snapshot { return s.cur.Load() }

// Reload builds a fresh snapshot and swaps it in. On failure the previous
// snapshot stays live.
func (s *Store) Reload() (*Snapshot, error) {
	snap, err := load(s.path, s.log)
	if err != nil {
		return nil, err
	}
	s.cur.Store(snap)
	s.log.Info().Str("source", snap.Source).Int("entries", len(snap.Entries)).Msg("reference reloaded")
	return snap, nil
}

func load(path string, logger zerolog.Logger) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reference data: %w", err)
	}
	defer f.Close()

	recs, err := fileio.ReadAnyMaps(f, path, 1)
	if err != nil {
		return nil, fmt.Errorf("reference data %s: %w", path, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("reference data %s: no rows", path)
	}

	nameKey := fileio.ResolveKey(recs[0], nameColumns)
	factorKey := fileio.ResolveKey(recs[0], factorColumns)
	if nameKey == "" || factorKey == "" {
		return nil, fmt.Errorf("reference data %s: journal/impact-factor columns not found", path)
	}

	entries := make([]model.ReferenceEntry, 0, len(recs))
	seen := make(map[string]struct{}, len(recs))
	skipped := 0
	for _, rec := range recs {
		name := strings.TrimSpace(rec[nameKey])
		nn := service.Normalize(name)
		if nn == "" {
			skipped++
			continue
		}
		// duplicates: first occurrence wins
		if _, dup := seen[nn]; dup {
			skipped++
			continue
		}
		factor, ok := utils.ParseFloat(rec[factorKey])
		if !ok {
			skipped++
			continue
		}
		seen[nn] = struct{}{}
		entries = append(entries, model.ReferenceEntry{
			CanonicalName: name,
			NameNorm:      nn,
			ImpactFactor:  factor,
			Order:         len(entries),
		})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("reference data %s: no usable rows", path)
	}
	if skipped > 0 {
		logger.Warn().Int("skipped", skipped).Str("source", path).Msg("reference rows skipped")
	}

	return &Snapshot{
		Entries:  entries,
		Index:    service.NewIndex(entries),
		Source:   path,
		LoadedAt: time.Now().UTC(),
	}, nil
}
