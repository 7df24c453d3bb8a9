package app

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/dealerhub/invsync/internal/adapters/feed"
	"github.com/dealerhub/invsync/internal/adapters/httpserver"
	"github.com/dealerhub/invsync/internal/adapters/media"
	"github.com/dealerhub/invsync/internal/adapters/repo/postgres"
	"github.com/dealerhub/invsync/internal/config"
	"github.com/dealerhub/invsync/internal/domain"
	"github.com/dealerhub/invsync/internal/scheduler"
	"github.com/dealerhub/invsync/internal/usecase"
)

type App struct {
	DB        *gorm.DB
	ImportUC  *usecase.ImportUC
	Scheduler *scheduler.Cron
	MediaURLs domain.MediaURLResolver
}

func New(cfg config.Config, db *gorm.DB) (*App, error) {
	products := postgres.NewProductRepo(db)

	// One limiter shared by all outbound vendor traffic (feed + image store).
	limiter := rate.NewLimiter(rate.Every(500*time.Millisecond), 2)

	var resolver domain.MediaResolver
	if cfg.Feed.LoadImages {
		resolver = media.NewResolver(products, cfg.Feed.RemoteImageBaseURL, limiter)
	}

	openFeed := func(path string) (usecase.FeedSource, error) {
		return feed.OpenFeed(path)
	}

	importUC := usecase.NewImportUC(usecase.ImportDeps{
		Fetcher:      feed.NewFetcher(limiter),
		Extractor:    usecase.ExtractorFunc(feed.Extract),
		OpenFeed:     openFeed,
		Products:     products,
		Media:        resolver,
		InventoryURL: cfg.Feed.RemoteInventoryURL,
	})

	return &App{
		DB:        db,
		ImportUC:  importUC,
		Scheduler: scheduler.New(cfg.Scheduler.CronExpression, cfg.Scheduler.Location(), importUC),
		MediaURLs: media.NewURLResolver("/media"),
	}, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.ImportUC)
}

// Migrate applies the schema. Index statements are idempotent so the binary
// can run them on every boot, same as the rest of the platform's services.
func (a *App) Migrate() error {
	if err := a.DB.AutoMigrate(&domain.Product{}, &domain.MediaAsset{}); err != nil {
		return err
	}

	_ = a.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_products_sku_unique ON products (sku) WHERE sku IS NOT NULL AND sku <> ''").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_media_assets_product_id ON media_assets (product_id)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_media_assets_externally_hosted ON media_assets (externally_hosted)").Error
	_ = a.DB.Exec("UPDATE products SET stock_status = 'instock' WHERE stock_status IS NULL OR stock_status = ''").Error

	return nil
}
