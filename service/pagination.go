package service

import "catalogo-tienda/models"

// TotalPages returns ceil(selectionSize / itemsPerPage), or 0 for an empty
// selection
func TotalPages(selectionSize, itemsPerPage int) int {
	if selectionSize <= 0 || itemsPerPage <= 0 {
		return 0
	}
	return (selectionSize + itemsPerPage - 1) / itemsPerPage
}

// PageItems slices the effective items for one page. The last page may hold
// fewer than itemsPerPage items; out-of-range indices yield an empty slice.
func PageItems(items []models.EffectiveItem, pageIndex, itemsPerPage int) []models.EffectiveItem {
	if pageIndex < 0 || itemsPerPage <= 0 {
		return nil
	}
	start := pageIndex * itemsPerPage
	if start >= len(items) {
		return nil
	}
	end := start + itemsPerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ClampPageIndex keeps an interactive page index inside
// [0, max(totalPages, 1)).
func ClampPageIndex(index, totalPages int) int {
	if totalPages < 1 {
		return 0
	}
	if index < 0 {
		return 0
	}
	if index >= totalPages {
		return totalPages - 1
	}
	return index
}
