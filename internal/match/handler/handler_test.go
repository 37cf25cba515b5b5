package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jifmatch-service/internal/config"
	"jifmatch-service/internal/match/model"
	"jifmatch-service/internal/refdata"
)

const inputCSV = "Title,Journal,Year\n" +
	"paper a,Nature (ISSN 0028-0836),2021\n" +
	"paper b,Scince,2020\n" +
	"paper c,Unknown Obscure Gazette,2019\n" +
	"paper d,,2018\n"

func testStore(t *testing.T) *refdata.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ref.csv")
	require.NoError(t, os.WriteFile(path,
		[]byte("Journal Name,Impact Factor\nNature,49.96\nScience,47.73\n"), 0o644))
	store, err := refdata.Open(path, zerolog.Nop())
	require.NoError(t, err)
	return store
}

func testConfig() config.Config {
	return config.Config{MaxUploadMB: 16, MatchThreshold: 80}
}

type upload struct {
	field, name, content string
}

func multipartRequest(t *testing.T, target string, files []upload, form map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	for k, v := range form {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func doMatch(t *testing.T, files []upload, form map[string]string) matchResponse {
	t.Helper()
	w := httptest.NewRecorder()
	Match(testConfig(), testStore(t), zerolog.Nop())(w, multipartRequest(t, "/match", files, form))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp matchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestMatchEndpoint(t *testing.T) {
	resp := doMatch(t, []upload{{"files", "input.csv", inputCSV}}, nil)

	require.Len(t, resp.Files, 1)
	pf := resp.Files[0]
	assert.Empty(t, pf.Err)
	assert.Equal(t, "Journal", pf.JournalColumn)
	require.Len(t, pf.Rows, 4)

	// ascending by score, poorest first
	for i := 1; i < len(pf.Rows); i++ {
		assert.LessOrEqual(t, pf.Rows[i-1].Match.Score, pf.Rows[i].Match.Score)
	}

	first, last := pf.Rows[0].Match, pf.Rows[3].Match
	assert.Equal(t, model.NoMatch, first.BestMatch)
	assert.Equal(t, 0, first.Score)
	assert.Nil(t, first.ImpactFactor)

	assert.Equal(t, "Nature", last.BestMatch)
	assert.Equal(t, 100, last.Score)
	require.NotNil(t, last.ImpactFactor)
	assert.Equal(t, 49.96, *last.ImpactFactor)

	// original columns pass through
	assert.Equal(t, "2021", pf.Rows[3].Cells["Year"])
}

func TestMatchEndpointThresholdOverride(t *testing.T) {
	resp := doMatch(t, []upload{{"files", "input.csv", "Journal\nScince\n"}},
		map[string]string{"threshold": "95"})

	require.Len(t, resp.Files, 1)
	require.Len(t, resp.Files[0].Rows, 1)
	m := resp.Files[0].Rows[0].Match
	assert.Equal(t, model.NoMatch, m.BestMatch)
	assert.Equal(t, 0, m.Score)
}

func TestMatchEndpointBadFileDoesNotAbortOthers(t *testing.T) {
	resp := doMatch(t, []upload{
		{"files", "broken.pdf", "%PDF-1.4 not a spreadsheet"},
		{"files", "good.csv", "Journal\nNature\n"},
	}, nil)

	require.Len(t, resp.Files, 2)
	assert.NotEmpty(t, resp.Files[0].Err)
	assert.Empty(t, resp.Files[1].Err)
	require.Len(t, resp.Files[1].Rows, 1)
	assert.Equal(t, "Nature", resp.Files[1].Rows[0].Match.BestMatch)
}

func TestMatchEndpointMissingJournalColumn(t *testing.T) {
	resp := doMatch(t, []upload{{"files", "input.csv", "Foo,Bar\nx,y\n"}}, nil)
	require.Len(t, resp.Files, 1)
	assert.Equal(t, "journal name column not found", resp.Files[0].Err)
}

func TestMatchEndpointNoFiles(t *testing.T) {
	w := httptest.NewRecorder()
	Match(testConfig(), testStore(t), zerolog.Nop())(w, multipartRequest(t, "/match", nil, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadEndpointCSV(t *testing.T) {
	w := httptest.NewRecorder()
	Download(testConfig(), testStore(t), zerolog.Nop())(w,
		multipartRequest(t, "/match/download", []upload{{"file", "input.csv", inputCSV}}, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "input_matched.csv")

	recs, err := csv.NewReader(bytes.NewReader(w.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 5) // header + 4 rows

	assert.Equal(t, []string{
		"Title", "Journal", "Year",
		"Journal Name", "Best Match", "Match Score", "Impact Factor",
	}, recs[0])

	// last row is the perfect match
	last := recs[4]
	assert.Equal(t, "paper a", last[0])
	assert.Equal(t, "Nature", last[4])
	assert.Equal(t, "100", last[5])
	assert.Equal(t, "49.96", last[6])

	// rejected rows carry score 0 and no impact factor
	assert.Equal(t, "0", recs[1][5])
	assert.Equal(t, "", recs[1][6])
}

func TestDownloadEndpointRequiresSingleFile(t *testing.T) {
	w := httptest.NewRecorder()
	Download(testConfig(), testStore(t), zerolog.Nop())(w,
		multipartRequest(t, "/match/download", []upload{
			{"files", "a.csv", "Journal\nNature\n"},
			{"files", "b.csv", "Journal\nScience\n"},
		}, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadEndpointBadFile(t *testing.T) {
	w := httptest.NewRecorder()
	Download(testConfig(), testStore(t), zerolog.Nop())(w,
		multipartRequest(t, "/match/download", []upload{{"file", "x.pdf", "nope"}}, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReferenceEndpoints(t *testing.T) {
	store := testStore(t)

	w := httptest.NewRecorder()
	ReferenceInfo(store)(w, httptest.NewRequest(http.MethodGet, "/reference", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var info referenceInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, 2, info.Entries)

	w = httptest.NewRecorder()
	ReferenceReload(store, zerolog.Nop())(w, httptest.NewRequest(http.MethodPost, "/reference/reload", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
