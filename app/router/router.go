package router

import (
	"net/http"
	"strings"

	"catalogo-tienda/app/controller"
)

type Controllers struct {
	Item    *controller.ItemController
	Catalog *controller.CatalogController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Item source
	http.HandleFunc("/admin/items", controllers.Item.ListItems)

	// Layout templates
	http.HandleFunc("/admin/catalogo/templates", controllers.Catalog.GetTemplates)
	http.HandleFunc("/admin/catalogo/plantilla", controllers.Catalog.SetTemplate)

	// Style
	http.HandleFunc("/admin/catalogo/estilo", controllers.Catalog.SetStyle)

	// Selection - handles both GET (list) and POST (add)
	http.HandleFunc("/admin/catalogo/seleccion", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Catalog.GetSelection(w, r)
		} else if r.Method == http.MethodPost {
			controllers.Catalog.AddToSelection(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Remove one item from the selection
	http.HandleFunc("/admin/catalogo/seleccion/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			controllers.Catalog.RemoveFromSelection(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	// Price overrides
	http.HandleFunc("/admin/catalogo/precios", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			controllers.Catalog.SetPriceOverride(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
	http.HandleFunc("/admin/catalogo/precios/margen", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Catalog.ApplyMarkup(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
	http.HandleFunc("/admin/catalogo/precios/", func(w http.ResponseWriter, r *http.Request) {
		// The markup route is more specific and registered above
		if strings.HasSuffix(r.URL.Path, "/margen") {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if r.Method == http.MethodDelete {
			controllers.Catalog.ResetPriceOverride(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	// Custom elements
	http.HandleFunc("/admin/catalogo/elementos", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Catalog.AddElement(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
	http.HandleFunc("/admin/catalogo/elementos/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut, http.MethodPatch:
			controllers.Catalog.UpdateElement(w, r)
		case http.MethodDelete:
			controllers.Catalog.RemoveElement(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Preview and export
	http.HandleFunc("/admin/catalogo/preview", controllers.Catalog.GetPreview)
	http.HandleFunc("/admin/catalogo/export", controllers.Catalog.StartExport)
	http.HandleFunc("/admin/catalogo/export/status", controllers.Catalog.GetExportStatus)
	http.HandleFunc("/admin/catalogo/export/download", controllers.Catalog.DownloadExport)
	http.HandleFunc("/admin/catalogo/export/reset", controllers.Catalog.ResetExport)
}
