package models

// GradientKind selects how the page background gradient is painted
type GradientKind string

const (
	GradientVertical   GradientKind = "vertical"
	GradientHorizontal GradientKind = "horizontal"
	GradientDiagonal   GradientKind = "diagonal"
	GradientRadial     GradientKind = "radial"
)

// StyleConfig holds the visual configuration applied to every page of the
// catalog. Colors are hex strings ("#RRGGBB").
type StyleConfig struct {
	PrimaryColor    string       `json:"primaryColor"`
	SecondaryColor  string       `json:"secondaryColor"`
	AccentColor     string       `json:"accentColor"`
	TextColor       string       `json:"textColor"`
	BackgroundColor string       `json:"backgroundColor"`
	CardBackground  string       `json:"cardBackground"`
	FontFamily      string       `json:"fontFamily"`
	CornerRadius    float64      `json:"cornerRadius"` // in design units
	Spacing         float64      `json:"spacing"`      // inter-element gutter, design units
	Gradient        GradientKind `json:"gradient"`

	ShowDiscountBadge bool `json:"showDiscountBadge"`
	ShowDescription   bool `json:"showDescription"`
	ShowCategory      bool `json:"showCategory"`
}

// DefaultStyle returns the style a fresh session starts with
func DefaultStyle() StyleConfig {
	return StyleConfig{
		PrimaryColor:      "#1f3a5f",
		SecondaryColor:    "#4a7fb5",
		AccentColor:       "#e8a33d",
		TextColor:         "#2b2b2b",
		BackgroundColor:   "#f5f0e8",
		CardBackground:    "#ffffff",
		FontFamily:        "sans",
		CornerRadius:      8,
		Spacing:           12,
		Gradient:          GradientVertical,
		ShowDiscountBadge: true,
		ShowDescription:   true,
		ShowCategory:      true,
	}
}
