package cart

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"temple-eats/internal/models"
)

// Option is one chosen sub-option within an option group. Price is the
// incremental surcharge for the choice, already folded into the owning
// line's unit price.
type Option struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Line is one configured purchase of a menu item. UnitPrice includes all
// selected-option surcharges, flattened in at add time.
type Line struct {
	ItemID    string            `json:"item_id"`
	Name      string            `json:"name"`
	UnitPrice float64           `json:"unit_price"`
	Quantity  int               `json:"quantity"`
	Options   map[string]Option `json:"options,omitempty"`
	ImageURL  string            `json:"image_url,omitempty"`
}

// optionsKey serializes the selected options into a canonical form so that
// structurally equal choices compare equal regardless of map iteration order.
func optionsKey(options map[string]Option) string {
	if len(options) == 0 {
		return ""
	}

	groups := make([]string, 0, len(options))
	for group := range options {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	var b strings.Builder
	for i, group := range groups {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(group)
		b.WriteByte('=')
		b.WriteString(options[group].ID)
	}
	return b.String()
}

// SameLine reports whether two lines represent the same configured item
func SameLine(a, b Line) bool {
	return a.ItemID == b.ItemID && optionsKey(a.Options) == optionsKey(b.Options)
}

// Totals is the priced breakdown of a cart
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`
}

// Pricing is the tax and delivery fee policy applied when totalling a cart
type Pricing struct {
	TaxRate     float64
	DeliveryFee float64
}

// ErrAmbiguousLine is returned when an item id matches several option
// variants and the caller did not say which one it meant.
var ErrAmbiguousLine = fmt.Errorf("multiple option variants match, options required to disambiguate")

// Ledger is the authoritative set of items a customer intends to purchase.
// A ledger belongs to a single session; its own mutex makes concurrent
// handler access safe without any cross-session coordination.
type Ledger struct {
	mu    sync.Mutex
	lines []Line
}

// New creates an empty cart ledger
func New() *Ledger {
	return &Ledger{}
}

// AddItem merges the line into an existing line with the same item id and
// structurally equal options, or appends it. The line must already be fully
// resolved: quantity >= 1 and unit price inclusive of option surcharges.
func (c *Ledger) AddItem(line Line) error {
	if line.ItemID == "" {
		return models.ValidationError{Field: "item_id", Message: "item id is required"}
	}
	if line.Quantity < 1 {
		return models.ValidationError{Field: "quantity", Message: "quantity must be at least 1"}
	}
	if line.UnitPrice < 0 {
		return models.ValidationError{Field: "unit_price", Message: "unit price must not be negative"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if SameLine(c.lines[i], line) {
			c.lines[i].Quantity += line.Quantity
			return nil
		}
	}

	if line.Options != nil {
		copied := make(map[string]Option, len(line.Options))
		for group, opt := range line.Options {
			copied[group] = opt
		}
		line.Options = copied
	}
	c.lines = append(c.lines, line)
	return nil
}

// RemoveItem deletes the matching line entirely. With nil options the item id
// must match exactly one line; if several option variants exist the caller has
// to disambiguate and ErrAmbiguousLine is returned. Removing an absent line is
// a no-op.
func (c *Ledger) RemoveItem(itemID string, options map[string]Option) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, err := c.findLine(itemID, options)
	if err != nil {
		return err
	}
	if idx < 0 {
		return nil
	}

	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
	return nil
}

// UpdateQuantity sets the quantity of the matching line. A quantity of zero
// or less removes the line; negative quantities never persist. Updating an
// absent line is a no-op.
func (c *Ledger) UpdateQuantity(itemID string, quantity int, options map[string]Option) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, err := c.findLine(itemID, options)
	if err != nil {
		return err
	}
	if idx < 0 {
		return nil
	}

	if quantity <= 0 {
		c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
		return nil
	}

	c.lines[idx].Quantity = quantity
	return nil
}

// findLine locates a line by item id and optional options, returning -1 when
// absent. Must be called with the mutex held.
func (c *Ledger) findLine(itemID string, options map[string]Option) (int, error) {
	if options != nil {
		key := optionsKey(options)
		for i := range c.lines {
			if c.lines[i].ItemID == itemID && optionsKey(c.lines[i].Options) == key {
				return i, nil
			}
		}
		return -1, nil
	}

	found := -1
	for i := range c.lines {
		if c.lines[i].ItemID != itemID {
			continue
		}
		if found >= 0 {
			return -1, ErrAmbiguousLine
		}
		found = i
	}
	return found, nil
}

// Clear empties the cart; used after a successful checkout
func (c *Ledger) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines returns a copy of the cart contents in insertion order
func (c *Ledger) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// TotalItems returns the summed quantity across all lines
func (c *Ledger) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice returns the cart subtotal rounded to cents
func (c *Ledger) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return roundCents(c.subtotalLocked())
}

// Totals computes the full pricing breakdown. The delivery fee applies only
// when delivery is selected. Pure: recomputed fresh on every call.
func (c *Ledger) Totals(pricing Pricing, delivery bool) Totals {
	c.mu.Lock()
	defer c.mu.Unlock()

	subtotal := roundCents(c.subtotalLocked())
	tax := roundCents(subtotal * pricing.TaxRate)

	fee := 0.0
	if delivery {
		fee = pricing.DeliveryFee
	}

	return Totals{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: fee,
		Total:       roundCents(subtotal + tax + fee),
	}
}

func (c *Ledger) subtotalLocked() float64 {
	subtotal := 0.0
	for _, line := range c.lines {
		subtotal += line.UnitPrice * float64(line.Quantity)
	}
	return subtotal
}

func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
