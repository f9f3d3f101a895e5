package service

import (
	"context"
	"image"
	"sync"
	"time"
)

// defaultPreviewDelay is the debounce window after the last edit before the
// preview recomposes
const defaultPreviewDelay = 200 * time.Millisecond

// PreviewService keeps a low-resolution render of the currently indicated
// page. Edits invalidate it; the recompose runs debounced so bursts of
// rapid edits cost one render.
type PreviewService struct {
	session  *CatalogSession
	composer *PageComposer
	delay    time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	pageIndex int
	latest    image.Image
}

// NewPreviewService creates a PreviewService. delay <= 0 selects the
// default debounce window.
func NewPreviewService(session *CatalogSession, composer *PageComposer, delay time.Duration) *PreviewService {
	if delay <= 0 {
		delay = defaultPreviewDelay
	}
	return &PreviewService{
		session:  session,
		composer: composer,
		delay:    delay,
	}
}

// Invalidate schedules a recompose once edits settle. Repeated calls within
// the debounce window collapse into one render.
func (p *PreviewService) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.delay, func() {
		img := p.Render(context.Background())
		p.mu.Lock()
		p.latest = img
		p.mu.Unlock()
	})
}

// SetPage moves the preview to pageIndex, clamped into the valid range,
// and invalidates.
func (p *PreviewService) SetPage(pageIndex int) {
	total := p.session.TotalPages()
	p.mu.Lock()
	p.pageIndex = ClampPageIndex(pageIndex, total)
	p.mu.Unlock()
	p.Invalidate()
}

// Page returns the current (clamped) preview page index
func (p *PreviewService) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pageIndex
}

// Latest returns the most recent debounced render, or nil when none exists
func (p *PreviewService) Latest() image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest
}

// Render composes the current page immediately at the fixed preview scale.
// An empty selection yields nil rather than an error.
func (p *PreviewService) Render(ctx context.Context) image.Image {
	snap := p.session.Snapshot()
	if len(snap.Items) == 0 {
		return nil
	}

	total := snap.TotalPages()
	p.mu.Lock()
	pageIndex := ClampPageIndex(p.pageIndex, total)
	p.pageIndex = pageIndex
	p.mu.Unlock()

	pageItems := PageItems(snap.Items, pageIndex, snap.Template.ItemsPerPage)
	surface := p.composer.Compose(ctx, pageItems, snap.Template, snap.Style, snap.Elements, PreviewScale)
	return surface.Image()
}
