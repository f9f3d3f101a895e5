package service

import (
	"context"
	"fmt"
	"strings"

	"catalogo-tienda/models"
	"catalogo-tienda/pricing"
	"catalogo-tienda/utils"
)

// Card layout metrics, in design units. Everything is multiplied by the
// render scale so the same routine serves preview and export resolutions.
const (
	cardPadding    = 8.0
	imageFraction  = 0.60 // image region = top 60% of the card
	categorySize   = 9.0
	nameSize       = 13.0
	nameLineHeight = 16.0
	descSize       = 10.0
	descMaxRunes   = 50
	priceSize      = 15.0
	origPriceSize  = 11.0
	badgeTextSize  = 10.0
	strokeWidth    = 2.0

	placeholderFill  = "#ececec"
	placeholderText  = "#8a8a8a"
	strickenGray     = "#9b9b9b"
	badgeTextColor   = "#ffffff"
	labelNoImage     = "Sin imagen"
	labelImageFailed = "Imagen no disponible"
)

// CardRenderer draws one item's card (image, title, description, price,
// discount badge) into a rectangular region of a Surface.
type CardRenderer struct {
	cache *ImageCache
}

// NewCardRenderer creates a CardRenderer backed by the given image cache
func NewCardRenderer(cache *ImageCache) *CardRenderer {
	return &CardRenderer{cache: cache}
}

// Draw renders item into rect on s. All geometry and text scales linearly
// with scale.
func (r *CardRenderer) Draw(ctx context.Context, s Surface, item models.EffectiveItem, style models.StyleConfig, rect Rect, scale float64) {
	radius := style.CornerRadius * scale
	pad := cardPadding * scale

	// Card background and accent stroke
	s.FillRoundedRect(rect, radius, style.CardBackground)
	s.StrokeRoundedRect(rect, radius, strokeWidth*scale, style.AccentColor)

	// Image region: top 60% of the card, inset by padding
	imgRect := Rect{
		X: rect.X + pad,
		Y: rect.Y + pad,
		W: rect.W - 2*pad,
		H: rect.H*imageFraction - 2*pad,
	}
	r.drawImage(ctx, s, item, imgRect, scale)

	textX := rect.X + pad
	textW := rect.W - 2*pad
	y := rect.Y + rect.H*imageFraction + pad

	// Bottom-anchored price block bounds the flowing text above it
	priceCenterY := rect.Y + rect.H - pad - (priceSize/2)*scale
	textLimit := priceCenterY - (priceSize/2+4)*scale

	if style.ShowCategory && item.Category != "" {
		s.DrawText(strings.ToUpper(item.Category), textX, y+categorySize*scale/2, categorySize*scale, style.AccentColor, true, models.AlignLeft)
		y += (categorySize + 4) * scale
	}

	lines := utils.WrapWords(item.Name, 2, textW, func(t string) float64 {
		return s.MeasureText(t, nameSize*scale, true)
	})
	for _, line := range lines {
		s.DrawText(line, textX, y+nameSize*scale/2, nameSize*scale, style.TextColor, true, models.AlignLeft)
		y += nameLineHeight * scale
	}

	if style.ShowDescription && item.Description != "" && y+descSize*scale <= textLimit {
		desc := utils.TruncateWithEllipsis(item.Description, descMaxRunes)
		s.DrawText(desc, textX, y+descSize*scale/2, descSize*scale, style.TextColor, false, models.AlignLeft)
	}

	r.drawPriceBlock(s, item, style, rect, priceCenterY, textX, scale)
}

func (r *CardRenderer) drawImage(ctx context.Context, s Surface, item models.EffectiveItem, imgRect Rect, scale float64) {
	cached := r.cache.Get(ctx, item.ImageURL)
	if cached.Image != nil {
		s.DrawImageFit(cached.Image, imgRect)
		return
	}

	// Placeholder: neutral fill plus a centered fallback label
	s.FillRect(imgRect, placeholderFill)
	label := labelNoImage
	if cached.Failed {
		label = labelImageFailed
	}
	s.DrawText(label, imgRect.X+imgRect.W/2, imgRect.Y+imgRect.H/2, descSize*scale, placeholderText, false, models.AlignCenter)
}

func (r *CardRenderer) drawPriceBlock(s Surface, item models.EffectiveItem, style models.StyleConfig, rect Rect, centerY, textX float64, scale float64) {
	price := utils.FormatCOP(item.EffectivePrice)
	s.DrawText(price, textX, centerY, priceSize*scale, style.AccentColor, true, models.AlignLeft)

	if !item.HasDiscount() || !style.ShowDiscountBadge {
		return
	}

	// Struck-through original price to the right of the effective price
	orig := utils.FormatCOP(item.EffectiveOriginal)
	origX := textX + s.MeasureText(price, priceSize*scale, true) + 8*scale
	s.DrawText(orig, origX, centerY, origPriceSize*scale, strickenGray, false, models.AlignLeft)
	origW := s.MeasureText(orig, origPriceSize*scale, false)
	s.Line(origX, centerY, origX+origW, centerY, 1*scale, strickenGray)

	// Discount badge in the card's top-right corner
	pct := pricing.DiscountPercent(item.EffectivePrice, item.EffectiveOriginal)
	badge := fmt.Sprintf("-%d%%", pct)
	badgeW := s.MeasureText(badge, badgeTextSize*scale, true) + 10*scale
	badgeH := (badgeTextSize + 8) * scale
	badgeRect := Rect{
		X: rect.X + rect.W - badgeW - 6*scale,
		Y: rect.Y + 6*scale,
		W: badgeW,
		H: badgeH,
	}
	s.FillRoundedRect(badgeRect, 3*scale, style.AccentColor)
	s.DrawText(badge, badgeRect.X+badgeRect.W/2, badgeRect.Y+badgeRect.H/2, badgeTextSize*scale, badgeTextColor, true, models.AlignCenter)
}
