package pricing

import (
	"math"
	"sync"

	"catalogo-tienda/models"
)

// Override is a per-item price adjustment. OriginalPrice is optional;
// when nil the item's own base values stand in for it.
type Override struct {
	Price         int64
	OriginalPrice *int64
}

// OverrideStore holds per-item price/original-price overrides. At most one
// override exists per item. Overrides for items no longer selected are kept
// on purpose: re-adding the item restores its custom pricing.
type OverrideStore struct {
	mu        sync.Mutex
	overrides map[string]Override
}

// NewOverrideStore creates an empty OverrideStore
func NewOverrideStore() *OverrideStore {
	return &OverrideStore{overrides: make(map[string]Override)}
}

// SetOverride replaces any prior override for the item. Negative prices are
// clamped to zero.
func (s *OverrideStore) SetOverride(itemID string, price int64, originalPrice *int64) {
	if price < 0 {
		price = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[itemID] = Override{Price: price, OriginalPrice: originalPrice}
}

// ResetOverride removes the override for the item; the effective price
// reverts to the item's base values.
func (s *OverrideStore) ResetOverride(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overrides, itemID)
}

// ResetAll clears every override
func (s *OverrideStore) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = make(map[string]Override)
}

// ApplyMarkup sets, for every given item, price = round(base × (1+percent/100))
// and originalPrice = base. Negative percents are permitted (a discount);
// validating sane ranges is the caller's concern.
func (s *OverrideStore) ApplyMarkup(items []models.Item, percent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		price := int64(math.Round(float64(item.Price) * (1 + percent/100)))
		if price < 0 {
			price = 0
		}
		base := item.Price
		s.overrides[item.ID] = Override{Price: price, OriginalPrice: &base}
	}
}

// Get returns the override for the item, if any
func (s *OverrideStore) Get(itemID string) (Override, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.overrides[itemID]
	return o, ok
}

// Len returns the number of stored overrides
func (s *OverrideStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.overrides)
}

// Snapshot returns a copy of the override map, detached from the store
func (s *OverrideStore) Snapshot() map[string]Override {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Override, len(s.overrides))
	for id, o := range s.overrides {
		if o.OriginalPrice != nil {
			orig := *o.OriginalPrice
			o.OriginalPrice = &orig
		}
		out[id] = o
	}
	return out
}

// Effective derives the EffectiveItem for item: the override value if
// present, else the item's base value. An item without a base original
// price falls back to its own price.
func Effective(item models.Item, overrides map[string]Override) models.EffectiveItem {
	eff := models.EffectiveItem{
		Item:              item,
		EffectivePrice:    item.Price,
		EffectiveOriginal: item.OriginalPrice,
	}
	if eff.EffectiveOriginal == 0 {
		eff.EffectiveOriginal = item.Price
	}
	if o, ok := overrides[item.ID]; ok {
		eff.EffectivePrice = o.Price
		if o.OriginalPrice != nil {
			eff.EffectiveOriginal = *o.OriginalPrice
		}
	}
	return eff
}

// EffectiveAll maps Effective over a slice, preserving order
func EffectiveAll(items []models.Item, overrides map[string]Override) []models.EffectiveItem {
	out := make([]models.EffectiveItem, len(items))
	for i, item := range items {
		out[i] = Effective(item, overrides)
	}
	return out
}

// DiscountPercent is the badge value shown when originalPrice > price:
// round((originalPrice - price) / originalPrice × 100).
func DiscountPercent(price, originalPrice int64) int {
	if originalPrice <= 0 {
		return 0
	}
	return int(math.Round(float64(originalPrice-price) / float64(originalPrice) * 100))
}
