package domain

import "strings"

// FeedRecord is one line of the vendor inventory feed. The feed is positional:
// fifteen semicolon-separated fields, no quoting. Numeric fields stay as the
// raw feed strings; the reconciler converts them when writing the catalog.
type FeedRecord struct {
	SKU            string
	UPC            string
	Title          string
	CategoryID     string
	ManufacturerID string
	RegularPrice   string
	VendorPrice    string
	Weight         string
	Quantity       string
	Tag            string
	Manufacturer   string
	VendorPartNum  string
	Status         string
	Description    string
	ImageFile      string
}

// FeedFieldCount is the fixed arity of a well-formed feed line.
const FeedFieldCount = 15

// NormalizeSKU trims and upper-cases a feed SKU so lookups are exact-match.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// NormalizeImageFile fixes the vendor's ".JPG" suffix; the rest of the name is
// kept as shipped so derived URLs match the remote store layout.
func NormalizeImageFile(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasSuffix(name, ".JPG") {
		name = strings.TrimSuffix(name, ".JPG") + ".jpg"
	}
	return name
}

// StatusFor maps a vendor feed status code to a catalog lifecycle state.
// "deleted" mapping to publish looks inverted but matches the vendor's
// long-observed behavior; do not change without confirmation from them.
func StatusFor(feedStatus string) ProductStatus {
	switch strings.ToLower(strings.TrimSpace(feedStatus)) {
	case "allocated":
		return StatusPending
	default:
		return StatusPublish
	}
}
