package models

// CatalogOrigin identifies which backing catalog an item was loaded from
type CatalogOrigin string

const (
	// OriginPrincipal is the store's own product catalog
	OriginPrincipal CatalogOrigin = "principal"
	// OriginProveedor is the external supplier catalog
	OriginProveedor CatalogOrigin = "proveedor"
)

// Item represents a product loaded from one of the two backing catalogs.
// Items are immutable once loaded for a session.
type Item struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	Category      string        `json:"category,omitempty"`
	Price         int64         `json:"price"`                   // in COP
	OriginalPrice int64         `json:"originalPrice,omitempty"` // 0 = no base original price
	DiscountPct   int           `json:"discountPct,omitempty"`
	ImageURL      string        `json:"imageUrl,omitempty"`
	Available     bool          `json:"available"`
	Origin        CatalogOrigin `json:"origin"`
}

// EffectiveItem is an Item with price overrides applied. It is derived on
// demand and never stored.
type EffectiveItem struct {
	Item
	EffectivePrice    int64 `json:"effectivePrice"`
	EffectiveOriginal int64 `json:"effectiveOriginal"`
}

// HasDiscount reports whether the item should show a discount badge
func (e EffectiveItem) HasDiscount() bool {
	return e.EffectiveOriginal > e.EffectivePrice
}
