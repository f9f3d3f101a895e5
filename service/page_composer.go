package service

import (
	"context"
	"math"
	"strings"

	"catalogo-tienda/models"
)

// Page geometry in design units (A4 at 72 dpi). Scaling by PreviewScale or
// ExportScale produces the pixel size of the corresponding raster.
const (
	PageWidth  = 595.0
	PageHeight = 842.0

	headerBand = 70.0 // excluded from the card grid
	footerBand = 40.0

	// PreviewScale is the fixed low resolution of the interactive view
	PreviewScale = 0.5
	// ExportScale is the high resolution used for print-fidelity export
	ExportScale = 4.0
)

// PageComposer draws one full page: gradient background, custom elements in
// list order, then the item grid. Composition is pure given its inputs:
// identical inputs produce identical pixels.
type PageComposer struct {
	cards *CardRenderer
}

// NewPageComposer creates a PageComposer backed by the given image cache
func NewPageComposer(cache *ImageCache) *PageComposer {
	return &PageComposer{cards: NewCardRenderer(cache)}
}

// Compose renders the given page items onto a fresh surface at scale.
// Later draws occlude earlier ones: z-order is draw order.
func (p *PageComposer) Compose(
	ctx context.Context,
	pageItems []models.EffectiveItem,
	template models.LayoutTemplate,
	style models.StyleConfig,
	elements []models.CustomElement,
	scale float64,
) Surface {
	surface := NewRasterSurface(
		int(math.Round(PageWidth*scale)),
		int(math.Round(PageHeight*scale)),
	)
	p.ComposeOn(ctx, surface, pageItems, template, style, elements, scale)
	return surface
}

// ComposeOn draws a page onto an existing surface
func (p *PageComposer) ComposeOn(
	ctx context.Context,
	surface Surface,
	pageItems []models.EffectiveItem,
	template models.LayoutTemplate,
	style models.StyleConfig,
	elements []models.CustomElement,
	scale float64,
) {
	full := Rect{X: 0, Y: 0, W: PageWidth * scale, H: PageHeight * scale}

	// The minimal kind trades the gradient for a flat background; every
	// other kind paints primary → secondary.
	if template.Kind == models.LayoutMinimal {
		surface.FillRect(full, style.BackgroundColor)
	} else {
		surface.FillGradient(full, style.PrimaryColor, style.SecondaryColor, style.Gradient)
	}

	for _, el := range elements {
		p.drawElement(surface, el, scale)
	}

	p.drawGrid(ctx, surface, pageItems, template, style, scale)
}

// drawElement renders one custom element at position × scale. Only text
// elements are fully rendered; other kinds appear as outlined placeholders.
func (p *PageComposer) drawElement(surface Surface, el models.CustomElement, scale float64) {
	rect := Rect{X: el.X * scale, Y: el.Y * scale, W: el.Width * scale, H: el.Height * scale}

	if el.Kind != models.ElementText {
		surface.StrokeRoundedRect(rect, 2*scale, 1*scale, el.Color)
		surface.DrawText(strings.ToUpper(string(el.Kind)), rect.X+rect.W/2, rect.Y+rect.H/2,
			8*scale, el.Color, false, models.AlignCenter)
		return
	}

	var x float64
	switch el.Align {
	case models.AlignCenter:
		x = rect.X + rect.W/2
	case models.AlignRight:
		x = rect.X + rect.W
	default:
		x = rect.X
	}
	surface.DrawText(el.Content, x, rect.Y+rect.H/2, el.FontSize*scale, el.Color, el.Bold, el.Align)
}

// drawGrid lays out columns × rows cells inside the content area and hands
// each page item to the card renderer, row-major.
func (p *PageComposer) drawGrid(ctx context.Context, surface Surface, pageItems []models.EffectiveItem, template models.LayoutTemplate, style models.StyleConfig, scale float64) {
	cols, rows := template.Columns, template.Rows
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	spacing := style.Spacing * scale
	margin := spacing

	// Showcase pages give the single card more air.
	if template.Kind == models.LayoutShowcase {
		margin = spacing * 4
	}

	content := Rect{
		X: margin,
		Y: headerBand*scale + margin,
		W: PageWidth*scale - 2*margin,
		H: (PageHeight-headerBand-footerBand)*scale - 2*margin,
	}

	cellW := (content.W - float64(cols-1)*spacing) / float64(cols)
	cellH := (content.H - float64(rows-1)*spacing) / float64(rows)

	for i, item := range pageItems {
		if i >= cols*rows {
			break
		}
		col := i % cols
		row := i / cols
		cell := Rect{
			X: content.X + float64(col)*(cellW+spacing),
			Y: content.Y + float64(row)*(cellH+spacing),
			W: cellW,
			H: cellH,
		}
		p.cards.Draw(ctx, surface, item, style, cell, scale)
	}
}
