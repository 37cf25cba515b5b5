package handler

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"jifmatch-service/internal/config"
	"jifmatch-service/internal/fileio"
	"jifmatch-service/internal/match/model"
	"jifmatch-service/internal/match/service"
	"jifmatch-service/internal/metrics"
	"jifmatch-service/internal/refdata"
)

type matchResponse struct {
	Files []model.ProcessedFile `json:"files"`
}

// Match accepts one or more tabular files under the "files" multipart field
// and returns per-file match results as JSON, rows sorted poorest-first.
// A file that fails to parse is reported in place and does not abort the
// others.
func Match(cfg config.Config, store *refdata.Store, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(logger, r)

		defer r.Body.Close()
		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}

		files := uploads(r)
		if len(files) == 0 {
			http.Error(w, "missing files", http.StatusBadRequest)
			return
		}

		opt := options(cfg, r)
		headerRow := atoi(r.FormValue("header_row"), 1)
		journalCol := r.FormValue("journal_column")
		snap := store.Snapshot()

		resp := matchResponse{Files: make([]model.ProcessedFile, 0, len(files))}
		for _, fh := range files {
			resp.Files = append(resp.Files, processOne(fh, headerRow, journalCol, snap, opt, log))
		}

		writeJSON(w, http.StatusOK, resp)

		rows := 0
		for _, f := range resp.Files {
			rows += len(f.Rows)
		}
		log.Info().
			Int("files", len(resp.Files)).
			Int("rows", rows).
			Int("threshold", opt.AcceptScore).
			Dur("elapsed", time.Since(start)).
			Msg("match done")
	}
}

// Download accepts a single file and streams it back in its own format with
// the four result columns appended; .xls comes back as .xlsx.
func Download(cfg config.Config, store *refdata.Store, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := requestLogger(logger, r)

		defer r.Body.Close()
		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}

		files := uploads(r)
		if len(files) != 1 {
			http.Error(w, "exactly one file is required", http.StatusBadRequest)
			return
		}

		opt := options(cfg, r)
		headerRow := atoi(r.FormValue("header_row"), 1)
		pf := processOne(files[0], headerRow, r.FormValue("journal_column"), store.Snapshot(), opt, log)
		if pf.Err != "" {
			http.Error(w, pf.Err, http.StatusBadRequest)
			return
		}

		headers, rows := outputTable(pf)
		ext := strings.ToLower(filepath.Ext(pf.Name))
		base := strings.TrimSuffix(filepath.Base(pf.Name), filepath.Ext(pf.Name))
		outName := base + "_matched" + fileio.OutExt(ext)

		w.Header().Set("Content-Type", fileio.ContentType(ext))
		w.Header().Set("Content-Disposition", `attachment; filename="`+outName+`"`)
		if err := fileio.WriteAny(w, ext, headers, rows); err != nil {
			log.Error().Err(err).Str("file", pf.Name).Msg("write output")
		}
	}
}

// processOne runs the whole pipeline for one uploaded file. Failures are
// reported in the result, never returned.
func processOne(fh *multipart.FileHeader, headerRow int, journalCol string, snap *refdata.Snapshot, opt model.Options, log zerolog.Logger) model.ProcessedFile {
	metrics.FilesProcessed.Inc()
	out := model.ProcessedFile{Name: fh.Filename}

	f, err := fh.Open()
	if err != nil {
		out.Err = "failed to open: " + err.Error()
		metrics.FileErrors.Inc()
		return out
	}
	defer f.Close()

	headers, rows, err := fileio.ReadAnyTable(f, fh.Filename, headerRow)
	if err != nil {
		out.Err = "failed to read: " + err.Error()
		metrics.FileErrors.Inc()
		log.Warn().Err(err).Str("file", fh.Filename).Msg("unreadable upload")
		return out
	}
	out.Headers = headers
	if len(rows) == 0 {
		return out
	}

	want := journalCol
	if want == "" {
		want = journalColumns
	}
	key := fileio.ResolveKey(rows[0], want)
	if key == "" {
		out.Err = "journal name column not found"
		metrics.FileErrors.Inc()
		return out
	}
	out.JournalColumn = key

	start := time.Now()
	out.Rows = service.ProcessRows(rows, key, snap.Index, opt)
	metrics.MatchDuration.Observe(time.Since(start).Seconds())
	metrics.RowsProcessed.Add(float64(len(out.Rows)))
	for _, rr := range out.Rows {
		metrics.MatchOutcomes.WithLabelValues(rr.Match.Method).Inc()
	}
	return out
}

// outputTable appends the four result columns after the original ones,
// keeping the file's column order.
func outputTable(pf model.ProcessedFile) ([]string, [][]string) {
	headers := make([]string, 0, len(pf.Headers)+len(resultHeaders))
	headers = append(headers, pf.Headers...)
	for _, h := range resultHeaders {
		headers = append(headers, uniqueHeader(headers, h))
	}

	rows := make([][]string, 0, len(pf.Rows))
	for _, rr := range pf.Rows {
		row := make([]string, 0, len(headers))
		for _, h := range pf.Headers {
			row = append(row, rr.Cells[h])
		}
		row = append(row,
			rr.Match.RawName,
			rr.Match.BestMatch,
			strconv.Itoa(rr.Match.Score),
			formatFactor(rr.Match.ImpactFactor),
		)
		rows = append(rows, row)
	}
	return headers, rows
}

func uploads(r *http.Request) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	if fhs := r.MultipartForm.File["files"]; len(fhs) > 0 {
		return fhs
	}
	return r.MultipartForm.File["file"]
}

func options(cfg config.Config, r *http.Request) model.Options {
	t := atoi(r.FormValue("threshold"), cfg.MatchThreshold)
	if t <= 0 || t > service.ScoreMax {
		t = service.DefaultAcceptScore
	}
	return model.Options{AcceptScore: t}
}

func requestLogger(logger zerolog.Logger, r *http.Request) zerolog.Logger {
	if rid := r.Header.Get("X-Request-ID"); rid != "" {
		return logger.With().Str("req_id", rid).Logger()
	}
	return logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
