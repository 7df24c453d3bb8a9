package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dealerhub/invsync/internal/domain"
	"github.com/dealerhub/invsync/internal/usecase"
)

type failingFetcher struct{}

func (failingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return "", domain.ErrIncompatibleFileType
}

func newTestHandler() http.Handler {
	uc := usecase.NewImportUC(usecase.ImportDeps{
		Fetcher:      failingFetcher{},
		Extractor:    usecase.ExtractorFunc(func(t, d string) (string, error) { return t, nil }),
		OpenFeed:     func(path string) (usecase.FeedSource, error) { return nil, domain.ErrNotFound },
		InventoryURL: "https://vendor.example.com/inv.zip",
	})
	return New(uc)
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestLastImportBeforeAnyRun(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/import/last", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRunImportJobLevelFailure(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/import", nil))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}

	var rep usecase.ImportReport
	if err := json.NewDecoder(rec.Body).Decode(&rep); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if rep.Error == "" {
		t.Error("report should carry the job-level cause")
	}

	// The failed run is still the last run.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/import/last", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("last-import status = %d, want 200", rec.Code)
	}
}
