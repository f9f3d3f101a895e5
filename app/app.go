package app

import (
	"fmt"
	"log"
	"os"

	"catalogo-tienda/app/controller"
	"catalogo-tienda/app/router"
	"catalogo-tienda/db"
	"catalogo-tienda/repository"
	"catalogo-tienda/service"
)

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Drive is optional: without credentials, product photos are fetched
	// over plain HTTP only
	var driveService service.DriveServiceInterface
	if credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credentialsPath != "" {
		ds, err := service.NewDriveService(credentialsPath)
		if err != nil {
			return err
		}
		driveService = ds
		log.Printf("✓ Drive image source enabled")
	} else {
		log.Printf("⚠️  GOOGLE_APPLICATION_CREDENTIALS not set, Drive image source disabled")
	}

	// Initialize repository
	itemRepo := repository.NewItemRepository()

	// Catalog generator services
	imageCache := service.NewImageCache(0, driveService)
	composer := service.NewPageComposer(imageCache)
	session := service.NewCatalogSession(0)
	preview := service.NewPreviewService(session, composer, 0)
	exporter := service.NewExportService(composer)

	// Create controllers
	controllers := &router.Controllers{
		Item:    controller.NewItemController(itemRepo),
		Catalog: controller.NewCatalogController(itemRepo, session, preview, exporter),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
