package repository

import (
	"context"

	"catalogo-tienda/models"
)

// ItemRepositoryInterface defines the contract for the item source. Items
// come merged from the two backing catalogs; the generator never writes back.
type ItemRepositoryInterface interface {
	FetchAllItems(ctx context.Context) ([]models.Item, error)
}
