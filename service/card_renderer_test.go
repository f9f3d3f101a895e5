package service

import (
	"context"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo-tienda/models"
)

// surfaceOp records one primitive call against the stub surface
type surfaceOp struct {
	kind  string
	text  string
	rect  Rect
	size  float64
	color string
	bold  bool
	align models.TextAlign
}

// stubSurface records draw calls and measures text as a fixed width per
// rune, which keeps wrap behavior deterministic without real fonts.
type stubSurface struct {
	w, h int
	ops  []surfaceOp
}

var _ Surface = (*stubSurface)(nil)

func newStubSurface(w, h int) *stubSurface { return &stubSurface{w: w, h: h} }

func (s *stubSurface) Size() (int, int) { return s.w, s.h }

func (s *stubSurface) FillRect(r Rect, hex string) {
	s.ops = append(s.ops, surfaceOp{kind: "fillRect", rect: r, color: hex})
}

func (s *stubSurface) FillRoundedRect(r Rect, radius float64, hex string) {
	s.ops = append(s.ops, surfaceOp{kind: "fillRounded", rect: r, color: hex})
}

func (s *stubSurface) StrokeRoundedRect(r Rect, radius, width float64, hex string) {
	s.ops = append(s.ops, surfaceOp{kind: "strokeRounded", rect: r, color: hex})
}

func (s *stubSurface) FillGradient(r Rect, from, to string, kind models.GradientKind) {
	s.ops = append(s.ops, surfaceOp{kind: "gradient", rect: r, color: from + ">" + to})
}

func (s *stubSurface) DrawImageFit(img image.Image, r Rect) {
	s.ops = append(s.ops, surfaceOp{kind: "image", rect: r})
}

func (s *stubSurface) DrawText(text string, x, y, size float64, hex string, bold bool, align models.TextAlign) {
	s.ops = append(s.ops, surfaceOp{kind: "text", text: text, size: size, color: hex, bold: bold, align: align})
}

func (s *stubSurface) MeasureText(text string, size float64, bold bool) float64 {
	return float64(len([]rune(text))) * size * 0.6
}

func (s *stubSurface) Line(x1, y1, x2, y2, width float64, hex string) {
	s.ops = append(s.ops, surfaceOp{kind: "line", color: hex})
}

func (s *stubSurface) Image() image.Image { return image.NewRGBA(image.Rect(0, 0, s.w, s.h)) }

func (s *stubSurface) texts() []surfaceOp {
	var out []surfaceOp
	for _, op := range s.ops {
		if op.kind == "text" {
			out = append(out, op)
		}
	}
	return out
}

func (s *stubSurface) findText(substr string) (surfaceOp, bool) {
	for _, op := range s.texts() {
		if strings.Contains(op.text, substr) {
			return op, true
		}
	}
	return surfaceOp{}, false
}

func cardItem(price, original int64) models.EffectiveItem {
	return models.EffectiveItem{
		Item: models.Item{
			ID: "it-1", Name: "Buso capota para perro",
			Description: "Tejido suave y abrigado, ideal para paseos en clima frío de montaña",
			Category:    "ropa",
			Price:       price,
		},
		EffectivePrice:    price,
		EffectiveOriginal: original,
	}
}

func drawCard(t *testing.T, item models.EffectiveItem, style models.StyleConfig, w float64) *stubSurface {
	t.Helper()
	s := newStubSurface(int(w), 300)
	renderer := NewCardRenderer(NewImageCache(0, nil))
	renderer.Draw(context.Background(), s, item, style, Rect{X: 0, Y: 0, W: w, H: 300}, 1)
	return s
}

func TestCardDiscountBadge(t *testing.T) {
	style := models.DefaultStyle()
	s := drawCard(t, cardItem(7500, 10000), style, 200)

	badge, ok := s.findText("-25%")
	require.True(t, ok, "badge text must be drawn")
	assert.True(t, badge.bold)
	assert.Equal(t, models.AlignCenter, badge.align)

	// Struck-through original price appears with a line over it
	_, ok = s.findText("$10.000")
	assert.True(t, ok, "original price must be drawn")
	var hasLine bool
	for _, op := range s.ops {
		if op.kind == "line" {
			hasLine = true
		}
	}
	assert.True(t, hasLine, "strikethrough line expected")
}

func TestCardBadgeOmittedWithoutDiscount(t *testing.T) {
	style := models.DefaultStyle()

	// originalPrice == price
	s := drawCard(t, cardItem(10000, 10000), style, 200)
	_, ok := s.findText("%")
	assert.False(t, ok)

	// toggle off suppresses the badge even with a real discount
	style.ShowDiscountBadge = false
	s = drawCard(t, cardItem(7500, 10000), style, 200)
	_, ok = s.findText("%")
	assert.False(t, ok)
}

func TestCardNameWrapsToTwoLines(t *testing.T) {
	style := models.DefaultStyle()
	// Card narrow enough that the four-word name cannot fit on one line
	s := drawCard(t, cardItem(10000, 0), style, 140)

	var nameLines []string
	for _, op := range s.texts() {
		if op.size == nameSize && op.bold && op.align == models.AlignLeft {
			nameLines = append(nameLines, op.text)
		}
	}
	require.NotEmpty(t, nameLines)
	assert.LessOrEqual(t, len(nameLines), 2)

	// No word was split: every rendered word is a word of the name
	words := map[string]bool{}
	for _, w := range strings.Fields("Buso capota para perro") {
		words[w] = true
	}
	for _, line := range nameLines {
		for _, w := range strings.Fields(strings.TrimSuffix(line, "…")) {
			if w == "" {
				continue
			}
			assert.True(t, words[w] || strings.HasSuffix(line, "…"), "unexpected fragment %q", w)
		}
	}
}

func TestCardLongNameEllipsized(t *testing.T) {
	style := models.DefaultStyle()
	item := cardItem(10000, 0)
	item.Name = "Buso capota de lana merino tejido a mano para perro salchicha extra largo"
	s := drawCard(t, item, style, 140)

	var nameLines []string
	for _, op := range s.texts() {
		if op.size == nameSize && op.bold {
			nameLines = append(nameLines, op.text)
		}
	}
	require.Len(t, nameLines, 2)
	assert.True(t, strings.HasSuffix(nameLines[1], "…"), "second line must end in an ellipsis")
}

func TestCardDescriptionToggle(t *testing.T) {
	style := models.DefaultStyle()
	s := drawCard(t, cardItem(10000, 0), style, 300)
	_, ok := s.findText("Tejido suave")
	assert.True(t, ok)

	// Over ~50 runes the description is truncated with an ellipsis
	desc, _ := s.findText("Tejido suave")
	assert.True(t, strings.HasSuffix(desc.text, "…"))
	assert.LessOrEqual(t, len([]rune(desc.text)), descMaxRunes+1)

	style.ShowDescription = false
	s = drawCard(t, cardItem(10000, 0), style, 300)
	_, ok = s.findText("Tejido suave")
	assert.False(t, ok)
}

func TestCardCategoryToggle(t *testing.T) {
	style := models.DefaultStyle()
	s := drawCard(t, cardItem(10000, 0), style, 200)
	op, ok := s.findText("ROPA")
	require.True(t, ok, "category label drawn uppercased")
	assert.Equal(t, style.AccentColor, op.color)

	style.ShowCategory = false
	s = drawCard(t, cardItem(10000, 0), style, 200)
	_, ok = s.findText("ROPA")
	assert.False(t, ok)
}

func TestCardPlaceholderLabels(t *testing.T) {
	style := models.DefaultStyle()

	// No image URL at all
	s := drawCard(t, cardItem(10000, 0), style, 200)
	_, ok := s.findText(labelNoImage)
	assert.True(t, ok)

	// A failing URL resolves to the failure label
	item := cardItem(10000, 0)
	item.ImageURL = "http://127.0.0.1:1/nope.png"
	s = drawCard(t, item, style, 200)
	_, ok = s.findText(labelImageFailed)
	assert.True(t, ok)
}

func TestCardPriceUsesEffectiveValue(t *testing.T) {
	style := models.DefaultStyle()
	s := drawCard(t, cardItem(12500, 0), style, 200)

	op, ok := s.findText("$12.500")
	require.True(t, ok)
	assert.True(t, op.bold)
	assert.Equal(t, style.AccentColor, op.color)
}
