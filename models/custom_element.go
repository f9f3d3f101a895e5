package models

// ElementKind is the kind of a user-placed overlay element. Only text
// elements are fully rendered; the rest are drawn as placeholders.
type ElementKind string

const (
	ElementText       ElementKind = "text"
	ElementLogo       ElementKind = "logo"
	ElementQR         ElementKind = "qr"
	ElementDecoration ElementKind = "decoration"
)

// TextAlign is the horizontal anchoring of element text inside its rectangle
type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// CustomElement is a user-authored overlay rendered identically on every
// page. Position and size are in page-design units, not pixels.
type CustomElement struct {
	ID      string      `json:"id"`
	Kind    ElementKind `json:"kind"`
	Content string      `json:"content"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	FontSize float64   `json:"fontSize"`
	Color    string    `json:"color"`
	Bold     bool      `json:"bold"`
	Align    TextAlign `json:"align"`
}
