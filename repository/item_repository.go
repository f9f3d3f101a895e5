package repository

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"catalogo-tienda/db"
	"catalogo-tienda/models"
)

// ItemRepository reads the merged item source: the store's own product
// table plus the supplier feed table, which carries a different shape.
type ItemRepository struct{}

// NewItemRepository creates a new ItemRepository
func NewItemRepository() *ItemRepository {
	return &ItemRepository{}
}

// Ensure ItemRepository implements ItemRepositoryInterface
var _ ItemRepositoryInterface = (*ItemRepository)(nil)

// FetchAllItems retrieves active items from both backing catalogs, each
// tagged with its origin. Results keep the per-catalog ordering with the
// principal catalog first.
func (r *ItemRepository) FetchAllItems(ctx context.Context) ([]models.Item, error) {
	principal, err := r.fetchPrincipal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch principal catalog: %w", err)
	}

	proveedor, err := r.fetchProveedor(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch supplier catalog: %w", err)
	}

	items := append(principal, proveedor...)
	log.Printf("✓ FetchAllItems: %d items (%d principal, %d proveedor)", len(items), len(principal), len(proveedor))
	return items, nil
}

// fetchPrincipal reads the store's own product table
func (r *ItemRepository) fetchPrincipal(ctx context.Context) ([]models.Item, error) {
	query := `
		SELECT p.id, p.nombre,
		       COALESCE(p.descripcion, '') AS descripcion,
		       COALESCE(p.categoria, '') AS categoria,
		       p.precio,
		       COALESCE(p.precio_original, 0) AS precio_original,
		       COALESCE(p.descuento_pct, 0) AS descuento_pct,
		       COALESCE(p.imagen_url, '') AS imagen_url,
		       p.disponible
		FROM productos p
		WHERE p.activo = true
		ORDER BY p.nombre ASC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query productos: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		var id int64
		if err := rows.Scan(
			&id,
			&item.Name,
			&item.Description,
			&item.Category,
			&item.Price,
			&item.OriginalPrice,
			&item.DiscountPct,
			&item.ImageURL,
			&item.Available,
		); err != nil {
			log.Printf("❌ Error scanning producto: %v", err)
			continue
		}
		item.ID = "p-" + strconv.FormatInt(id, 10)
		item.Origin = models.OriginPrincipal
		items = append(items, item)
	}

	return items, rows.Err()
}

// fetchProveedor reads the supplier feed table. It has a different shape:
// prices come as unit values with a separate list price, and availability
// is a stock count rather than a flag.
func (r *ItemRepository) fetchProveedor(ctx context.Context) ([]models.Item, error) {
	query := `
		SELECT a.codigo, a.titulo,
		       COALESCE(a.detalle, '') AS detalle,
		       COALESCE(a.linea, '') AS linea,
		       a.precio_unitario,
		       COALESCE(a.precio_lista, 0) AS precio_lista,
		       COALESCE(a.foto_url, '') AS foto_url,
		       a.existencias
		FROM articulos_proveedor a
		WHERE a.vigente = true
		ORDER BY a.titulo ASC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query articulos_proveedor: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		var codigo string
		var existencias int
		if err := rows.Scan(
			&codigo,
			&item.Name,
			&item.Description,
			&item.Category,
			&item.Price,
			&item.OriginalPrice,
			&item.ImageURL,
			&existencias,
		); err != nil {
			log.Printf("❌ Error scanning articulo proveedor: %v", err)
			continue
		}
		item.ID = "s-" + codigo
		item.Available = existencias > 0
		item.Origin = models.OriginProveedor
		items = append(items, item)
	}

	return items, rows.Err()
}
