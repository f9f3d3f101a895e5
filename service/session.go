package service

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"catalogo-tienda/models"
	"catalogo-tienda/pricing"
)

// DefaultMaxSelection bounds the selection when no explicit limit is given
const DefaultMaxSelection = 20

var (
	// ErrSelectionFull is returned when adding past the selection maximum
	ErrSelectionFull = errors.New("selection is full")
	// ErrDuplicateItem is returned when adding an item already selected
	ErrDuplicateItem = errors.New("item is already in the selection")
)

// CatalogSession holds the session-scoped editing state: the ordered
// selection, price overrides, the active template and style, and the
// custom element list. All mutations are rejected or applied whole,
// never partially.
type CatalogSession struct {
	mu        sync.Mutex
	maxItems  int
	items     []models.Item
	overrides *pricing.OverrideStore
	template  models.LayoutTemplate
	style     models.StyleConfig
	elements  []models.CustomElement
}

// CatalogSnapshot is an atomic copy of all render-relevant state, detached
// from the live session. Exports run against a snapshot so concurrent edits
// are never observed mid-export.
type CatalogSnapshot struct {
	Items    []models.EffectiveItem
	Template models.LayoutTemplate
	Style    models.StyleConfig
	Elements []models.CustomElement
}

// TotalPages returns the page count of the snapshot
func (s CatalogSnapshot) TotalPages() int {
	return TotalPages(len(s.Items), s.Template.ItemsPerPage)
}

// NewCatalogSession creates a session with the default template and style.
// maxItems <= 0 selects DefaultMaxSelection.
func NewCatalogSession(maxItems int) *CatalogSession {
	if maxItems <= 0 {
		maxItems = DefaultMaxSelection
	}
	return &CatalogSession{
		maxItems:  maxItems,
		overrides: pricing.NewOverrideStore(),
		template:  models.DefaultTemplate(),
		style:     models.DefaultStyle(),
	}
}

// AddItem appends item to the selection. Adding beyond the maximum or
// re-adding a selected item is rejected without mutating the list.
func (s *CatalogSession) AddItem(item models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if existing.ID == item.ID {
			return ErrDuplicateItem
		}
	}
	if len(s.items) >= s.maxItems {
		return ErrSelectionFull
	}
	s.items = append(s.items, item)
	return nil
}

// RemoveItem drops the item from the selection. Its price override, if any,
// is kept: re-adding the item restores its custom pricing.
func (s *CatalogSession) RemoveItem(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.ID == itemID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// ClearSelection empties the selection. Overrides stay.
func (s *CatalogSession) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Items returns a copy of the current selection in order
func (s *CatalogSession) Items() []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Size returns the current selection size
func (s *CatalogSession) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Overrides exposes the session's price override store
func (s *CatalogSession) Overrides() *pricing.OverrideStore {
	return s.overrides
}

// SetTemplate switches the active layout template
func (s *CatalogSession) SetTemplate(t models.LayoutTemplate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.template = t
}

// Template returns the active layout template
func (s *CatalogSession) Template() models.LayoutTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.template
}

// SetStyle replaces the style configuration
func (s *CatalogSession) SetStyle(style models.StyleConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = style
}

// Style returns the current style configuration
func (s *CatalogSession) Style() models.StyleConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.style
}

// AddElement appends a custom element, assigning an id when absent, and
// returns the stored element.
func (s *CatalogSession) AddElement(el models.CustomElement) models.CustomElement {
	if el.ID == "" {
		el.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elements = append(s.elements, el)
	return el
}

// UpdateElement replaces the element with the same id, keeping list order
func (s *CatalogSession) UpdateElement(el models.CustomElement) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.elements {
		if s.elements[i].ID == el.ID {
			s.elements[i] = el
			return true
		}
	}
	return false
}

// RemoveElement drops the element with the given id
func (s *CatalogSession) RemoveElement(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.elements {
		if s.elements[i].ID == id {
			s.elements = append(s.elements[:i], s.elements[i+1:]...)
			return true
		}
	}
	return false
}

// Elements returns a copy of the custom element list in draw order
func (s *CatalogSession) Elements() []models.CustomElement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CustomElement, len(s.elements))
	copy(out, s.elements)
	return out
}

// EffectiveItems derives the selection with overrides applied, in order
func (s *CatalogSession) EffectiveItems() []models.EffectiveItem {
	s.mu.Lock()
	items := make([]models.Item, len(s.items))
	copy(items, s.items)
	s.mu.Unlock()
	return pricing.EffectiveAll(items, s.overrides.Snapshot())
}

// TotalPages returns the page count under the active template
func (s *CatalogSession) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TotalPages(len(s.items), s.template.ItemsPerPage)
}

// Snapshot captures selection, overrides, template, style and elements
// atomically. The copy is deep: later session mutations can never leak
// into it.
func (s *CatalogSession) Snapshot() CatalogSnapshot {
	s.mu.Lock()
	items := make([]models.Item, len(s.items))
	copy(items, s.items)
	template := s.template
	style := s.style
	elements := make([]models.CustomElement, len(s.elements))
	copy(elements, s.elements)
	s.mu.Unlock()

	return CatalogSnapshot{
		Items:    pricing.EffectiveAll(items, s.overrides.Snapshot()),
		Template: template,
		Style:    style,
		Elements: elements,
	}
}
