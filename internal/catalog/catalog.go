package catalog

import (
	"temple-eats/internal/cart"
	"temple-eats/internal/models"
)

// OptionItem is one selectable choice within an option group. Price is the
// incremental surcharge added to the item's base price.
type OptionItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// OptionGroup is a named set of choices for an item. Required groups must be
// resolved before the item can go into a cart.
type OptionGroup struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Required bool         `json:"required"`
	Items    []OptionItem `json:"items"`
}

// Item is one entry in the menu catalog
type Item struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	ImageURL    string        `json:"image_url"`
	CategoryID  string        `json:"category_id"`
	Options     []OptionGroup `json:"options,omitempty"`
}

// Category groups menu items for browsing
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Catalog is the read-only menu the order service serves and resolves
// cart lines against.
type Catalog struct {
	categories []Category
	items      []Item
	byID       map[string]*Item
}

// New builds a catalog from a fixed item list
func New(categories []Category, items []Item) *Catalog {
	c := &Catalog{
		categories: categories,
		items:      items,
		byID:       make(map[string]*Item, len(items)),
	}
	for i := range c.items {
		c.byID[c.items[i].ID] = &c.items[i]
	}
	return c
}

// Categories returns the browsing categories
func (c *Catalog) Categories() []Category {
	return c.categories
}

// Items returns all menu items, optionally filtered by category
func (c *Catalog) Items(categoryID string) []Item {
	if categoryID == "" || categoryID == "all" {
		return c.items
	}
	var filtered []Item
	for _, item := range c.items {
		if item.CategoryID == categoryID {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// ItemByID looks up a single menu item
func (c *Catalog) ItemByID(id string) (*Item, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// ResolveLine validates the chosen options against the item's option groups
// and produces a fully-resolved cart line: every required group chosen, every
// choice valid, and all option surcharges flattened into the unit price.
func (c *Catalog) ResolveLine(itemID string, choices map[string]string, quantity int) (cart.Line, error) {
	item, ok := c.byID[itemID]
	if !ok {
		return cart.Line{}, models.ValidationError{Field: "item_id", Message: "unknown menu item"}
	}
	if quantity < 1 {
		return cart.Line{}, models.ValidationError{Field: "quantity", Message: "quantity must be at least 1"}
	}

	unitPrice := item.Price
	selected := make(map[string]cart.Option)

	for _, group := range item.Options {
		choiceID, chosen := choices[group.ID]
		if !chosen {
			if group.Required {
				return cart.Line{}, models.ValidationError{
					Field:   "options." + group.ID,
					Message: group.Name + " selection is required",
				}
			}
			continue
		}

		option, ok := findOption(group, choiceID)
		if !ok {
			return cart.Line{}, models.ValidationError{
				Field:   "options." + group.ID,
				Message: "unknown choice for " + group.Name,
			}
		}

		unitPrice += option.Price
		selected[group.ID] = cart.Option{ID: option.ID, Name: option.Name, Price: option.Price}
	}

	for groupID := range choices {
		if !hasGroup(item, groupID) {
			return cart.Line{}, models.ValidationError{
				Field:   "options." + groupID,
				Message: "item has no such option group",
			}
		}
	}

	return cart.Line{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		Options:   selected,
		ImageURL:  item.ImageURL,
	}, nil
}

func findOption(group OptionGroup, id string) (OptionItem, bool) {
	for _, option := range group.Items {
		if option.ID == id {
			return option, true
		}
	}
	return OptionItem{}, false
}

func hasGroup(item *Item, groupID string) bool {
	for _, group := range item.Options {
		if group.ID == groupID {
			return true
		}
	}
	return false
}
