package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dealerhub/invsync/internal/domain"
)

// Fetcher downloads a remote resource to local scratch storage.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Extractor turns a fetched artifact into the path of the data file.
type Extractor interface {
	Extract(tempPath, destDir string) (string, error)
}

// ExtractorFunc adapts a plain function to the Extractor interface.
type ExtractorFunc func(tempPath, destDir string) (string, error)

func (f ExtractorFunc) Extract(tempPath, destDir string) (string, error) {
	return f(tempPath, destDir)
}

// FeedSource is a lazy, finite sequence of feed records.
type FeedSource interface {
	Next() bool
	Record() domain.FeedRecord
	Line() int
	Skipped() int
	Err() error
	Close() error
}

// ImportReport summarizes one import run. Per-record failures are counted
// here instead of aborting the batch; Error is only set for job-level aborts
// (nothing fetched or extracted, so nothing to process).
type ImportReport struct {
	Processed      int               `json:"processed"`
	Created        int               `json:"created"`
	Updated        int               `json:"updated"`
	SkippedLines   int               `json:"skipped_lines"`
	Failed         int               `json:"failed"`
	MediaAttached  int               `json:"media_attached"`
	CreatedSKUs    []string          `json:"created_skus,omitempty"`
	FailureReasons map[string]string `json:"failure_reasons,omitempty"`
	Error          string            `json:"error,omitempty"`
	StartedAt      time.Time         `json:"started_at"`
	FinishedAt     time.Time         `json:"finished_at"`
}

// ImportDeps wires the pipeline stages into the import use case.
type ImportDeps struct {
	Fetcher      Fetcher
	Extractor    Extractor
	OpenFeed     func(path string) (FeedSource, error)
	Products     domain.ProductRepo
	Media        domain.MediaResolver // nil disables image attachment
	InventoryURL string
}

// ImportUC runs the inventory synchronization pipeline: fetch the vendor
// archive, extract, stream records, and reconcile each against the catalog.
type ImportUC struct {
	deps ImportDeps

	jobMu sync.Mutex // only one import may run at a time

	mu   sync.Mutex
	last *ImportReport
}

func NewImportUC(deps ImportDeps) *ImportUC {
	return &ImportUC{deps: deps}
}

// Last returns the report of the most recent run, or nil.
func (uc *ImportUC) Last() *ImportReport {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.last
}

// Run executes one full import. A second call while a run is active fails
// fast with ErrImportRunning rather than racing the first on the same SKUs.
func (uc *ImportUC) Run(ctx context.Context) (*ImportReport, error) {
	if !uc.jobMu.TryLock() {
		return nil, domain.ErrImportRunning
	}
	defer uc.jobMu.Unlock()

	rep := &ImportReport{
		StartedAt:      time.Now(),
		FailureReasons: make(map[string]string),
	}
	defer func() {
		rep.FinishedAt = time.Now()
		uc.mu.Lock()
		uc.last = rep
		uc.mu.Unlock()
	}()

	err := uc.run(ctx, rep)
	if err != nil {
		rep.Error = err.Error()
		log.Error().Err(err).Msg("inventory import aborted")
		return rep, err
	}

	log.Info().
		Int("processed", rep.Processed).
		Int("created", rep.Created).
		Int("updated", rep.Updated).
		Int("skipped_lines", rep.SkippedLines).
		Int("failed", rep.Failed).
		Int("media_attached", rep.MediaAttached).
		Msg("inventory import finished")
	return rep, nil
}

func (uc *ImportUC) run(ctx context.Context, rep *ImportReport) error {
	tempPath, err := uc.deps.Fetcher.Fetch(ctx, uc.deps.InventoryURL)
	if err != nil {
		return fmt.Errorf("fetch inventory: %w", err)
	}
	scratchDir := filepath.Dir(tempPath)
	if scratchDir != "." && scratchDir != string(os.PathSeparator) {
		defer os.RemoveAll(scratchDir)
	}

	dataPath, err := uc.deps.Extractor.Extract(tempPath, scratchDir)
	if err != nil {
		return fmt.Errorf("extract inventory: %w", err)
	}

	src, err := uc.deps.OpenFeed(dataPath)
	if err != nil {
		return fmt.Errorf("open feed: %w", err)
	}
	defer src.Close()

	for src.Next() {
		// Cooperative cancellation point between records so an overrunning
		// job can stop cleanly before the next scheduled run.
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rec := src.Record()
		rep.Processed++

		created, err := uc.reconcile(ctx, rec, rep)
		if err != nil {
			rep.Failed++
			rep.FailureReasons[rec.SKU] = err.Error()
			log.Warn().Err(err).Str("sku", rec.SKU).Int("line", src.Line()).Msg("record reconcile failed")
			continue
		}
		if created {
			rep.Created++
			rep.CreatedSKUs = append(rep.CreatedSKUs, rec.SKU)
		} else {
			rep.Updated++
		}
	}

	rep.SkippedLines = src.Skipped()
	if err := src.Err(); err != nil {
		return fmt.Errorf("read feed: %w", err)
	}
	return nil
}

// reconcile upserts one feed record. Creation seeds lifecycle status, title,
// description, tag and baseline visibility; every run unconditionally rewrites
// the operational fields and refreshes prices so the catalog tracks the feed.
func (uc *ImportUC) reconcile(ctx context.Context, rec domain.FeedRecord, rep *ImportReport) (bool, error) {
	matches, err := uc.deps.Products.ListBySKU(ctx, rec.SKU)
	if err != nil {
		return false, fmt.Errorf("lookup sku: %w", err)
	}
	if len(matches) > 1 {
		log.Warn().Str("sku", rec.SKU).Int("matches", len(matches)).Msg("ambiguous sku lookup, using first match")
	}

	var p *domain.Product
	created := false
	if len(matches) == 0 {
		created = true
		p = &domain.Product{
			ID:             uuid.New(),
			SKU:            rec.SKU,
			Name:           rec.Title,
			Description:    rec.Description,
			Status:         domain.StatusFor(rec.Status),
			Tag:            rec.Tag,
			CategoryID:     rec.CategoryID,
			ManufacturerID: rec.ManufacturerID,
			Manufacturer:   rec.Manufacturer,
			Visibility:     "visible",
		}
	} else {
		p = &matches[0]
	}

	p.SKU = rec.SKU
	p.StockStatus = domain.StockInStock
	p.Weight = parseDecimal(rec.Weight)
	p.StockQty = parseInt(rec.Quantity)
	p.RegularPrice = parseDecimal(rec.RegularPrice)
	p.VendorPrice = parseDecimal(rec.VendorPrice)
	p.VendorUPC = rec.UPC
	p.VendorPartNum = rec.VendorPartNum

	if err := uc.deps.Products.Save(ctx, p); err != nil {
		return created, fmt.Errorf("save product: %w", err)
	}

	if uc.deps.Media != nil && rec.ImageFile != "" {
		if _, err := uc.deps.Media.ResolveAndAttach(ctx, p.ID, rec.ImageFile, rec.Title); err != nil {
			// Media is best effort: the product import itself succeeded.
			log.Warn().Err(err).Str("sku", rec.SKU).Str("image", rec.ImageFile).Msg("media attach failed")
		} else {
			rep.MediaAttached++
		}
	}

	return created, nil
}

func parseDecimal(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}
