package handler

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"jifmatch-service/internal/refdata"
)

type referenceInfo struct {
	Source   string    `json:"source"`
	Entries  int       `json:"entries"`
	LoadedAt time.Time `json:"loadedAt"`
}

// ReferenceInfo reports the current reference snapshot.
func ReferenceInfo(store *refdata.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := store.Snapshot()
		writeJSON(w, http.StatusOK, referenceInfo{
			Source:   snap.Source,
			Entries:  len(snap.Entries),
			LoadedAt: snap.LoadedAt,
		})
	}
}

// ReferenceReload replaces the reference table from its configured source.
// On failure the previous snapshot stays live and the error is surfaced.
func ReferenceReload(store *refdata.Store, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := store.Reload()
		if err != nil {
			logger.Error().Err(err).Msg("reference reload failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, referenceInfo{
			Source:   snap.Source,
			Entries:  len(snap.Entries),
			LoadedAt: snap.LoadedAt,
		})
	}
}
