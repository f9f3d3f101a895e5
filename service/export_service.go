package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"log"
	"math"
	"sync"
	"time"

	"github.com/phpdave11/gofpdf"
)

// ExportState is one stage of the exporter's state machine:
// Idle → Generating → Complete | Failed → Idle.
type ExportState string

const (
	ExportIdle       ExportState = "idle"
	ExportGenerating ExportState = "generating"
	ExportComplete   ExportState = "complete"
	ExportFailed     ExportState = "failed"
)

// ErrExportInProgress is returned when Start is called while Generating
var ErrExportInProgress = errors.New("an export is already in progress")

// ErrEmptySelection is returned when an export is started with no items
var ErrEmptySelection = errors.New("selection is empty")

// A4 page size in points; the export raster is embedded full-bleed
const (
	pdfPageWidth      = 595.28
	pdfPageHeight     = 841.89
	exportJPEGQuality = 90
)

// ExportStatus is the externally visible exporter state
type ExportStatus struct {
	State    ExportState `json:"state"`
	Progress int         `json:"progress"` // 0..100 while Generating
	Pages    int         `json:"pages"`
	Filename string      `json:"filename,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// ExportService renders every page of a snapshot at export resolution and
// assembles them into one multi-page PDF, reporting progress. The snapshot
// is taken at Start, so concurrent session edits are never observed by an
// in-flight export.
type ExportService struct {
	composer *PageComposer
	scale    float64

	mu     sync.Mutex
	status ExportStatus
	pdf    []byte
}

// NewExportService creates an idle ExportService
func NewExportService(composer *PageComposer) *ExportService {
	return &ExportService{
		composer: composer,
		scale:    ExportScale,
		status:   ExportStatus{State: ExportIdle},
	}
}

// Status returns the current exporter status
func (e *ExportService) Status() ExportStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Result returns the finished artifact and its filename. It fails unless
// the exporter is in the Complete state.
func (e *ExportService) Result() ([]byte, string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status.State != ExportComplete {
		return nil, "", fmt.Errorf("no completed export available (state=%s)", e.status.State)
	}
	return e.pdf, e.status.Filename, nil
}

// Reset returns a terminal exporter to Idle, dropping the artifact. It is
// rejected while Generating.
func (e *ExportService) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status.State == ExportGenerating {
		return ErrExportInProgress
	}
	e.status = ExportStatus{State: ExportIdle}
	e.pdf = nil
	return nil
}

// Start begins an asynchronous export of snap. It is rejected while another
// export is Generating, and synchronously for an empty selection.
func (e *ExportService) Start(ctx context.Context, snap CatalogSnapshot) error {
	if len(snap.Items) == 0 {
		return ErrEmptySelection
	}

	e.mu.Lock()
	if e.status.State == ExportGenerating {
		e.mu.Unlock()
		return ErrExportInProgress
	}
	total := snap.TotalPages()
	e.status = ExportStatus{State: ExportGenerating, Progress: 0, Pages: total}
	e.pdf = nil
	e.mu.Unlock()

	go e.run(ctx, snap)
	return nil
}

func (e *ExportService) run(ctx context.Context, snap CatalogSnapshot) {
	pdf, err := e.Generate(ctx, snap, func(done, total int) {
		progress := int(math.Round(float64(done) / float64(total) * 100))
		e.mu.Lock()
		e.status.Progress = progress
		e.mu.Unlock()
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		log.Printf("❌ Export failed: %v", err)
		e.status.State = ExportFailed
		e.status.Error = err.Error()
		e.pdf = nil
		return
	}

	filename := fmt.Sprintf("catalogo_profesional_%d.pdf", time.Now().UnixMilli())
	e.status.State = ExportComplete
	e.status.Progress = 100
	e.status.Filename = filename
	e.pdf = pdf
	log.Printf("✓ Export complete: %s (%d pages, %d bytes)", filename, e.status.Pages, len(pdf))
}

// Generate is the synchronous export core: every page of the snapshot is
// composed at export scale, JPEG-encoded, and embedded as one full-bleed
// PDF page. Control yields between pages, which is the cancellation point:
// a cancelled context aborts cleanly and no partial artifact is delivered.
func (e *ExportService) Generate(ctx context.Context, snap CatalogSnapshot, progress func(done, total int)) ([]byte, error) {
	total := snap.TotalPages()
	if total == 0 {
		return nil, ErrEmptySelection
	}

	doc := gofpdf.New("P", "pt", "A4", "")
	opts := gofpdf.ImageOptions{ImageType: "JPG"}

	for pageIndex := 0; pageIndex < total; pageIndex++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("export aborted: %w", ctx.Err())
		default:
		}

		pageItems := PageItems(snap.Items, pageIndex, snap.Template.ItemsPerPage)
		surface := e.composer.Compose(ctx, pageItems, snap.Template, snap.Style, snap.Elements, e.scale)

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, surface.Image(), &jpeg.Options{Quality: exportJPEGQuality}); err != nil {
			return nil, fmt.Errorf("failed to encode page %d: %w", pageIndex+1, err)
		}

		name := fmt.Sprintf("page-%d", pageIndex)
		doc.RegisterImageOptionsReader(name, opts, &buf)
		doc.AddPage()
		doc.ImageOptions(name, 0, 0, pdfPageWidth, pdfPageHeight, false, opts, 0, "")
		if doc.Err() {
			return nil, fmt.Errorf("failed to assemble page %d: %w", pageIndex+1, doc.Error())
		}

		if progress != nil {
			progress(pageIndex+1, total)
		}
		log.Printf("📄 Export: page %d/%d rendered", pageIndex+1, total)
	}

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		return nil, fmt.Errorf("failed to produce document: %w", err)
	}
	return out.Bytes(), nil
}
