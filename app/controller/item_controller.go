package controller

import (
	"encoding/json"
	"log"
	"net/http"

	"catalogo-tienda/repository"
)

// ItemController handles HTTP requests for the merged item source
type ItemController struct {
	repository repository.ItemRepositoryInterface
}

// NewItemController creates a new ItemController
func NewItemController(repo repository.ItemRepositoryInterface) *ItemController {
	return &ItemController{repository: repo}
}

// ListItems handles GET /admin/items: all items from both catalogs,
// tagged with their origin
func (c *ItemController) ListItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	items, err := c.repository.FetchAllItems(r.Context())
	if err != nil {
		log.Printf("❌ ListItems: %v", err)
		http.Error(w, "Failed to fetch items", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(items); err != nil {
		log.Printf("❌ ListItems: failed to encode response: %v", err)
	}
}
