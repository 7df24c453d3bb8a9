package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealerhub/invsync/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

var _ domain.ProductRepo = (*ProductRepo)(nil)

// ListBySKU returns every product matching the normalized SKU. SKUs carry a
// unique index so more than one row means imported data predating the index;
// the caller decides how loudly to complain.
func (r *ProductRepo) ListBySKU(ctx context.Context, sku string) ([]domain.Product, error) {
	var list []domain.Product
	if err := r.db.WithContext(ctx).Where("sku = ?", domain.NormalizeSKU(sku)).Order("created_at asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ProductRepo) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, "sku = ?", domain.NormalizeSKU(sku)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Save(ctx context.Context, p *domain.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepo) Images(ctx context.Context, productID uuid.UUID) ([]domain.MediaAsset, error) {
	var list []domain.MediaAsset
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("created_at asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ProductRepo) SaveImage(ctx context.Context, img *domain.MediaAsset) error {
	if img.ID == uuid.Nil {
		img.ID = uuid.New()
	}
	if img.CreatedAt.IsZero() {
		img.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Save(img).Error
}
