package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProductStatus is the catalog lifecycle state a product is published under.
type ProductStatus string

const (
	StatusPending ProductStatus = "pending"
	StatusPublish ProductStatus = "publish"
)

const (
	StockInStock    = "instock"
	StockOutOfStock = "outofstock"
)

type Product struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey"`
	SKU            string        `gorm:"uniqueIndex;size:64"`
	Name           string        `gorm:"size:180"`
	Description    string        `gorm:"type:text"`
	Status         ProductStatus `gorm:"type:varchar(20);index"`
	Tag            string        `gorm:"size:100"`
	RegularPrice   float64       `gorm:"type:decimal(12,2);default:0"`
	Weight         float64       `gorm:"type:decimal(8,2);default:0"`
	StockQty       int           `gorm:"type:int;default:0"`
	StockStatus    string        `gorm:"size:20"`
	CategoryID     string        `gorm:"size:40"`
	ManufacturerID string        `gorm:"size:40"`
	Manufacturer   string        `gorm:"size:140"`
	VendorUPC      string        `gorm:"size:40"`
	VendorPartNum  string        `gorm:"size:80"`
	VendorPrice    float64       `gorm:"type:decimal(12,2);default:0"`
	Visibility     string        `gorm:"size:20"`
	Featured       bool          `gorm:"default:false"`
	Images         []MediaAsset
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MediaAsset is a product image record. Assets imported from the vendor feed
// keep their bytes on the remote image store; only metadata lives locally.
type MediaAsset struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID        uuid.UUID `gorm:"type:uuid;index"`
	FileName         string    `gorm:"size:140"`
	RemoteURL        string    `gorm:"size:255"`
	ExternallyHosted bool      `gorm:"default:false;index"`
	Width            int       `gorm:"type:int;default:0"`
	Height           int       `gorm:"type:int;default:0"`
	Alt              string    `gorm:"size:180"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
