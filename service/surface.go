package service

import (
	"image"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"catalogo-tienda/models"
)

// Rect is an axis-aligned rectangle in surface pixels
type Rect struct {
	X, Y, W, H float64
}

// Surface abstracts the mutable drawing context behind the primitive
// operations the composer and card renderer need. Implementations must be
// deterministic: identical call sequences produce identical pixels.
type Surface interface {
	Size() (width, height int)
	FillRect(r Rect, hexColor string)
	FillRoundedRect(r Rect, radius float64, hexColor string)
	StrokeRoundedRect(r Rect, radius, strokeWidth float64, hexColor string)
	FillGradient(r Rect, fromHex, toHex string, kind models.GradientKind)
	// DrawImageFit scales img to fit inside r preserving aspect ratio
	// (letterboxed, centered). It never crops or distorts.
	DrawImageFit(img image.Image, r Rect)
	// DrawText draws one line anchored at x according to align; y is the
	// vertical center of the rendered line.
	DrawText(text string, x, y, size float64, hexColor string, bold bool, align models.TextAlign)
	MeasureText(text string, size float64, bold bool) float64
	Line(x1, y1, x2, y2, strokeWidth float64, hexColor string)
	Image() image.Image
}

var (
	regularFont = mustParseFont(goregular.TTF)
	boldFont    = mustParseFont(gobold.TTF)
)

func mustParseFont(ttf []byte) *truetype.Font {
	f, err := truetype.Parse(ttf)
	if err != nil {
		panic(err)
	}
	return f
}

type faceKey struct {
	size float64
	bold bool
}

// rasterSurface implements Surface on a gg raster context
type rasterSurface struct {
	dc *gg.Context

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// NewRasterSurface creates a raster drawing surface of the given pixel size
func NewRasterSurface(width, height int) Surface {
	return &rasterSurface{
		dc:    gg.NewContext(width, height),
		faces: make(map[faceKey]font.Face),
	}
}

var _ Surface = (*rasterSurface)(nil)

func (s *rasterSurface) face(size float64, bold bool) font.Face {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := faceKey{size: size, bold: bold}
	if f, ok := s.faces[key]; ok {
		return f
	}
	src := regularFont
	if bold {
		src = boldFont
	}
	f := truetype.NewFace(src, &truetype.Options{Size: size})
	s.faces[key] = f
	return f
}

func (s *rasterSurface) Size() (int, int) {
	return s.dc.Width(), s.dc.Height()
}

func (s *rasterSurface) FillRect(r Rect, hexColor string) {
	s.dc.SetHexColor(hexColor)
	s.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	s.dc.Fill()
}

func (s *rasterSurface) FillRoundedRect(r Rect, radius float64, hexColor string) {
	s.dc.SetHexColor(hexColor)
	s.dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, radius)
	s.dc.Fill()
}

func (s *rasterSurface) StrokeRoundedRect(r Rect, radius, strokeWidth float64, hexColor string) {
	s.dc.SetHexColor(hexColor)
	s.dc.SetLineWidth(strokeWidth)
	s.dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, radius)
	s.dc.Stroke()
}

func (s *rasterSurface) FillGradient(r Rect, fromHex, toHex string, kind models.GradientKind) {
	from := parseHexColor(fromHex)
	to := parseHexColor(toHex)

	var grad gg.Gradient
	switch kind {
	case models.GradientHorizontal:
		grad = gg.NewLinearGradient(r.X, r.Y, r.X+r.W, r.Y)
	case models.GradientDiagonal:
		grad = gg.NewLinearGradient(r.X, r.Y, r.X+r.W, r.Y+r.H)
	case models.GradientRadial:
		cx, cy := r.X+r.W/2, r.Y+r.H/2
		radius := r.W
		if r.H > r.W {
			radius = r.H
		}
		grad = gg.NewRadialGradient(cx, cy, 0, cx, cy, radius/2)
	default: // vertical
		grad = gg.NewLinearGradient(r.X, r.Y, r.X, r.Y+r.H)
	}

	grad.AddColorStop(0, from)
	grad.AddColorStop(1, to)
	s.dc.SetFillStyle(grad)
	s.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	s.dc.Fill()
}

func (s *rasterSurface) DrawImageFit(img image.Image, r Rect) {
	if img == nil || r.W < 1 || r.H < 1 {
		return
	}
	fitted := imaging.Fit(img, int(r.W), int(r.H), imaging.Lanczos)
	ox := int(r.X) + (int(r.W)-fitted.Bounds().Dx())/2
	oy := int(r.Y) + (int(r.H)-fitted.Bounds().Dy())/2
	s.dc.DrawImage(fitted, ox, oy)
}

func (s *rasterSurface) DrawText(text string, x, y, size float64, hexColor string, bold bool, align models.TextAlign) {
	if text == "" {
		return
	}
	s.dc.SetFontFace(s.face(size, bold))
	s.dc.SetHexColor(hexColor)

	var ax float64
	switch align {
	case models.AlignCenter:
		ax = 0.5
	case models.AlignRight:
		ax = 1
	}
	s.dc.DrawStringAnchored(text, x, y, ax, 0.35)
}

func (s *rasterSurface) MeasureText(text string, size float64, bold bool) float64 {
	s.dc.SetFontFace(s.face(size, bold))
	w, _ := s.dc.MeasureString(text)
	return w
}

func (s *rasterSurface) Line(x1, y1, x2, y2, strokeWidth float64, hexColor string) {
	s.dc.SetHexColor(hexColor)
	s.dc.SetLineWidth(strokeWidth)
	s.dc.DrawLine(x1, y1, x2, y2)
	s.dc.Stroke()
}

func (s *rasterSurface) Image() image.Image {
	return s.dc.Image()
}

// parseHexColor parses "#RRGGBB" (or "#RGB"); unparseable input yields black
func parseHexColor(hex string) color.Color {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	var r, g, b uint8
	switch len(hex) {
	case 3:
		r = dupNibble(hexByte(hex[0]))
		g = dupNibble(hexByte(hex[1]))
		b = dupNibble(hexByte(hex[2]))
	case 6:
		r = hexByte(hex[0])<<4 | hexByte(hex[1])
		g = hexByte(hex[2])<<4 | hexByte(hex[3])
		b = hexByte(hex[4])<<4 | hexByte(hex[5])
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func dupNibble(n uint8) uint8 {
	return n<<4 | n
}

func hexByte(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
