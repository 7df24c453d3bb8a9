package domain

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepo is the catalog store boundary. Lookups are exact-match on the
// normalized SKU; ListBySKU returns every row so the caller can flag
// data-integrity duplicates instead of silently picking one.
type ProductRepo interface {
	ListBySKU(ctx context.Context, sku string) ([]Product, error)
	Save(ctx context.Context, p *Product) error
	Images(ctx context.Context, productID uuid.UUID) ([]MediaAsset, error)
	SaveImage(ctx context.Context, img *MediaAsset) error
}

// MediaResolver derives the remote image location for a feed image and
// attaches it to a product, reusing an existing attachment when present.
type MediaResolver interface {
	ResolveAndAttach(ctx context.Context, productID uuid.UUID, imageFile, title string) (uuid.UUID, error)
}

// MediaURLResolver is the read-path hook: the platform asks it for an asset's
// URL (or a size variant) and externally hosted assets answer with the stored
// remote path instead of local media storage.
type MediaURLResolver interface {
	URLFor(asset MediaAsset, width int) string
}
