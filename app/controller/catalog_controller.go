package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"strings"

	"catalogo-tienda/models"
	"catalogo-tienda/repository"
	"catalogo-tienda/service"
)

// CatalogController handles HTTP requests for the catalog document
// generator: selection and pricing edits, style/template/element edits,
// the interactive preview, and the export lifecycle.
type CatalogController struct {
	repository repository.ItemRepositoryInterface
	session    *service.CatalogSession
	preview    *service.PreviewService
	exporter   *service.ExportService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(
	repo repository.ItemRepositoryInterface,
	session *service.CatalogSession,
	preview *service.PreviewService,
	exporter *service.ExportService,
) *CatalogController {
	return &CatalogController{
		repository: repo,
		session:    session,
		preview:    preview,
		exporter:   exporter,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}

// GetTemplates handles GET /admin/catalogo/templates
func (c *CatalogController) GetTemplates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, models.Templates())
}

// SetTemplate handles PUT /admin/catalogo/plantilla
func (c *CatalogController) SetTemplate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	template, ok := models.TemplateByID(body.ID)
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown template: %s", body.ID), http.StatusBadRequest)
		return
	}

	c.session.SetTemplate(template)
	c.preview.Invalidate()
	writeJSON(w, http.StatusOK, template)
}

// SetStyle handles PUT /admin/catalogo/estilo
func (c *CatalogController) SetStyle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var style models.StyleConfig
	if err := json.NewDecoder(r.Body).Decode(&style); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	c.session.SetStyle(style)
	c.preview.Invalidate()
	writeJSON(w, http.StatusOK, style)
}

// GetSelection handles GET /admin/catalogo/seleccion
func (c *CatalogController) GetSelection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":      c.session.EffectiveItems(),
		"totalPages": c.session.TotalPages(),
	})
}

// AddToSelection handles POST /admin/catalogo/seleccion
func (c *CatalogController) AddToSelection(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ItemID string `json:"itemId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ItemID == "" {
		http.Error(w, "itemId is required", http.StatusBadRequest)
		return
	}

	items, err := c.repository.FetchAllItems(r.Context())
	if err != nil {
		log.Printf("❌ AddToSelection: %v", err)
		http.Error(w, "Failed to fetch items", http.StatusInternalServerError)
		return
	}

	var found *models.Item
	for i := range items {
		if items[i].ID == body.ItemID {
			found = &items[i]
			break
		}
	}
	if found == nil {
		http.Error(w, fmt.Sprintf("Unknown item: %s", body.ItemID), http.StatusNotFound)
		return
	}

	if err := c.session.AddItem(*found); err != nil {
		if errors.Is(err, service.ErrSelectionFull) || errors.Is(err, service.ErrDuplicateItem) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c.preview.Invalidate()
	writeJSON(w, http.StatusOK, map[string]int{"size": c.session.Size()})
}

// RemoveFromSelection handles DELETE /admin/catalogo/seleccion/{itemId}
func (c *CatalogController) RemoveFromSelection(w http.ResponseWriter, r *http.Request) {
	itemID := strings.TrimPrefix(r.URL.Path, "/admin/catalogo/seleccion/")
	if itemID == "" {
		http.Error(w, "Item id is required", http.StatusBadRequest)
		return
	}
	if !c.session.RemoveItem(itemID) {
		http.Error(w, "Item not in selection", http.StatusNotFound)
		return
	}
	c.preview.Invalidate()
	writeJSON(w, http.StatusOK, map[string]int{"size": c.session.Size()})
}

// SetPriceOverride handles PUT /admin/catalogo/precios
func (c *CatalogController) SetPriceOverride(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ItemID        string `json:"itemId"`
		Price         int64  `json:"price"`
		OriginalPrice *int64 `json:"originalPrice,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ItemID == "" {
		http.Error(w, "itemId is required", http.StatusBadRequest)
		return
	}

	c.session.Overrides().SetOverride(body.ItemID, body.Price, body.OriginalPrice)
	c.preview.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

// ResetPriceOverride handles DELETE /admin/catalogo/precios/{itemId};
// the special id "all" clears every override.
func (c *CatalogController) ResetPriceOverride(w http.ResponseWriter, r *http.Request) {
	itemID := strings.TrimPrefix(r.URL.Path, "/admin/catalogo/precios/")
	if itemID == "" {
		http.Error(w, "Item id is required", http.StatusBadRequest)
		return
	}
	if itemID == "all" {
		c.session.Overrides().ResetAll()
	} else {
		c.session.Overrides().ResetOverride(itemID)
	}
	c.preview.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

// ApplyMarkup handles POST /admin/catalogo/precios/margen
func (c *CatalogController) ApplyMarkup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ItemIDs []string `json:"itemIds"`
		Percent float64  `json:"percent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(body.ItemIDs) == 0 {
		http.Error(w, "itemIds must not be empty", http.StatusBadRequest)
		return
	}

	wanted := make(map[string]bool, len(body.ItemIDs))
	for _, id := range body.ItemIDs {
		wanted[id] = true
	}
	var targets []models.Item
	for _, item := range c.session.Items() {
		if wanted[item.ID] {
			targets = append(targets, item)
		}
	}
	if len(targets) == 0 {
		http.Error(w, "No selected items match the given ids", http.StatusBadRequest)
		return
	}

	c.session.Overrides().ApplyMarkup(targets, body.Percent)
	c.preview.Invalidate()
	writeJSON(w, http.StatusOK, map[string]int{"applied": len(targets)})
}

// AddElement handles POST /admin/catalogo/elementos
func (c *CatalogController) AddElement(w http.ResponseWriter, r *http.Request) {
	var el models.CustomElement
	if err := json.NewDecoder(r.Body).Decode(&el); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	stored := c.session.AddElement(el)
	c.preview.Invalidate()
	writeJSON(w, http.StatusCreated, stored)
}

// UpdateElement handles PUT /admin/catalogo/elementos/{id}
func (c *CatalogController) UpdateElement(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/admin/catalogo/elementos/")
	var el models.CustomElement
	if err := json.NewDecoder(r.Body).Decode(&el); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	el.ID = id
	if !c.session.UpdateElement(el) {
		http.Error(w, "Element not found", http.StatusNotFound)
		return
	}
	c.preview.Invalidate()
	writeJSON(w, http.StatusOK, el)
}

// RemoveElement handles DELETE /admin/catalogo/elementos/{id}
func (c *CatalogController) RemoveElement(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/admin/catalogo/elementos/")
	if !c.session.RemoveElement(id) {
		http.Error(w, "Element not found", http.StatusNotFound)
		return
	}
	c.preview.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

// GetPreview handles GET /admin/catalogo/preview?page=N and returns a PNG
// of the indicated page at preview resolution. An empty selection yields 204.
func (c *CatalogController) GetPreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			http.Error(w, "Invalid page index", http.StatusBadRequest)
			return
		}
		c.preview.SetPage(page)
	}

	img := c.preview.Render(r.Context())
	if img == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		log.Printf("❌ GetPreview: failed to encode PNG: %v", err)
	}
}

// StartExport handles POST /admin/catalogo/export: snapshots the session
// and begins the export
func (c *CatalogController) StartExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// The export outlives this request, so it must not inherit its context
	snap := c.session.Snapshot()
	if err := c.exporter.Start(context.Background(), snap); err != nil {
		if errors.Is(err, service.ErrExportInProgress) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("📦 StartExport: %d items, %d pages", len(snap.Items), snap.TotalPages())
	writeJSON(w, http.StatusAccepted, c.exporter.Status())
}

// GetExportStatus handles GET /admin/catalogo/export/status
func (c *CatalogController) GetExportStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.exporter.Status())
}

// DownloadExport handles GET /admin/catalogo/export/download
func (c *CatalogController) DownloadExport(w http.ResponseWriter, r *http.Request) {
	pdf, filename, err := c.exporter.Result()
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(pdf); err != nil {
		log.Printf("❌ DownloadExport: %v", err)
	}
}

// ResetExport handles POST /admin/catalogo/export/reset
func (c *CatalogController) ResetExport(w http.ResponseWriter, r *http.Request) {
	if err := c.exporter.Reset(); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
