package catalog

import (
	"math"
	"testing"
)

func TestResolveLine(t *testing.T) {
	c := Default()

	line, err := c.ResolveLine("1", map[string]string{
		"size":     "12pc",
		"sauce":    "hot",
		"dressing": "ranch",
	}, 2)
	if err != nil {
		t.Fatalf("ResolveLine returned error: %v", err)
	}

	if line.ItemID != "1" || line.Name != "Buffalo Wings" {
		t.Errorf("unexpected line identity: %+v", line)
	}
	if line.Quantity != 2 {
		t.Errorf("quantity = %d, want 2", line.Quantity)
	}
	// 12.99 base + 10.99 for the 12pc upgrade
	if math.Abs(line.UnitPrice-23.98) > 1e-9 {
		t.Errorf("unit price = %v, want 23.98", line.UnitPrice)
	}
	if len(line.Options) != 3 {
		t.Errorf("expected 3 resolved options, got %d", len(line.Options))
	}
	if line.Options["size"].Name != "12 Pieces" {
		t.Errorf("size option = %+v", line.Options["size"])
	}
}

func TestResolveLine_OptionalGroupMayBeOmitted(t *testing.T) {
	c := Default()

	line, err := c.ResolveLine("1", map[string]string{
		"size":     "6pc",
		"sauce":    "mild",
		"dressing": "ranch",
	}, 1)
	if err != nil {
		t.Fatalf("ResolveLine returned error: %v", err)
	}
	if line.UnitPrice != 12.99 {
		t.Errorf("unit price = %v, want base 12.99", line.UnitPrice)
	}
	if _, ok := line.Options["extras"]; ok {
		t.Error("omitted optional group must not appear in resolved options")
	}
}

func TestResolveLine_Errors(t *testing.T) {
	c := Default()

	valid := map[string]string{"size": "6pc", "sauce": "mild", "dressing": "ranch"}

	tests := []struct {
		name     string
		itemID   string
		choices  map[string]string
		quantity int
	}{
		{"unknown item", "999", valid, 1},
		{"zero quantity", "1", valid, 0},
		{"missing required group", "1", map[string]string{"size": "6pc"}, 1},
		{"unknown choice", "1", map[string]string{"size": "24pc", "sauce": "mild", "dressing": "ranch"}, 1},
		{"unknown group", "1", map[string]string{"size": "6pc", "sauce": "mild", "dressing": "ranch", "toppings": "cheese"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.ResolveLine(tt.itemID, tt.choices, tt.quantity); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestItemsByCategory(t *testing.T) {
	c := Default()

	if got := len(c.Items("")); got != len(defaultItems) {
		t.Errorf("Items(\"\") returned %d items, want %d", got, len(defaultItems))
	}
	if got := len(c.Items("all")); got != len(defaultItems) {
		t.Errorf("Items(\"all\") returned %d items, want %d", got, len(defaultItems))
	}

	for _, item := range c.Items("1") {
		if item.CategoryID != "1" {
			t.Errorf("item %s leaked into category 1", item.ID)
		}
	}

	if got := c.Items("nope"); len(got) != 0 {
		t.Errorf("unknown category returned %d items", len(got))
	}
}

func TestItemByID(t *testing.T) {
	c := Default()

	item, ok := c.ItemByID("4")
	if !ok || item.Name != "Seasoned Fries" {
		t.Errorf("ItemByID(4) = %+v, %v", item, ok)
	}
	if _, ok := c.ItemByID("999"); ok {
		t.Error("unknown item id must not resolve")
	}
}
