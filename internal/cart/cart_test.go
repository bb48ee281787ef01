package cart

import (
	"errors"
	"testing"
)

var testPricing = Pricing{TaxRate: 0.0825, DeliveryFee: 3.99}

func wingsLine(quantity int) Line {
	return Line{
		ItemID:    "1",
		Name:      "Buffalo Wings",
		UnitPrice: 11.00,
		Quantity:  quantity,
		Options: map[string]Option{
			"size":  {ID: "6pc", Name: "6 Pieces", Price: 0},
			"sauce": {ID: "hot", Name: "Hot", Price: 0},
		},
	}
}

func TestAddItem_MergesIdenticalConfigurations(t *testing.T) {
	c := New()

	if err := c.AddItem(wingsLine(1)); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	if err := c.AddItem(wingsLine(1)); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Errorf("expected merged quantity 2, got %d", lines[0].Quantity)
	}
	if got := c.Totals(testPricing, false).Subtotal; got != 22.00 {
		t.Errorf("expected subtotal 22.00, got %v", got)
	}
}

func TestAddItem_OptionOrderIrrelevant(t *testing.T) {
	c := New()

	a := wingsLine(1)
	b := Line{
		ItemID:    "1",
		Name:      "Buffalo Wings",
		UnitPrice: 11.00,
		Quantity:  3,
		Options: map[string]Option{
			"sauce": {ID: "hot", Name: "Hot", Price: 0},
			"size":  {ID: "6pc", Name: "6 Pieces", Price: 0},
		},
	}

	if err := c.AddItem(a); err != nil {
		t.Fatal(err)
	}
	if err := c.AddItem(b); err != nil {
		t.Fatal(err)
	}

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("structurally equal options must merge, got %d lines", len(lines))
	}
	if lines[0].Quantity != 4 {
		t.Errorf("expected quantity 4, got %d", lines[0].Quantity)
	}
}

func TestAddItem_DifferentOptionsStaySeparate(t *testing.T) {
	c := New()

	a := wingsLine(1)
	b := wingsLine(1)
	b.Options = map[string]Option{
		"size":  {ID: "12pc", Name: "12 Pieces", Price: 10.99},
		"sauce": {ID: "hot", Name: "Hot", Price: 0},
	}
	b.UnitPrice = 21.99

	if err := c.AddItem(a); err != nil {
		t.Fatal(err)
	}
	if err := c.AddItem(b); err != nil {
		t.Fatal(err)
	}

	if len(c.Lines()) != 2 {
		t.Fatalf("different option variants must not merge, got %d lines", len(c.Lines()))
	}
}

func TestAddItem_Validation(t *testing.T) {
	tests := []struct {
		name string
		line Line
	}{
		{"missing item id", Line{Name: "Wings", UnitPrice: 11.00, Quantity: 1}},
		{"zero quantity", Line{ItemID: "1", Name: "Wings", UnitPrice: 11.00, Quantity: 0}},
		{"negative quantity", Line{ItemID: "1", Name: "Wings", UnitPrice: 11.00, Quantity: -2}},
		{"negative price", Line{ItemID: "1", Name: "Wings", UnitPrice: -1.00, Quantity: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			if err := c.AddItem(tt.line); err == nil {
				t.Error("expected validation error")
			}
			if len(c.Lines()) != 0 {
				t.Error("rejected add must not mutate the cart")
			}
		})
	}
}

func TestRemoveItem(t *testing.T) {
	c := New()
	if err := c.AddItem(wingsLine(2)); err != nil {
		t.Fatal(err)
	}

	if err := c.RemoveItem("1", wingsLine(1).Options); err != nil {
		t.Fatalf("RemoveItem returned error: %v", err)
	}
	if len(c.Lines()) != 0 {
		t.Error("expected line to be removed entirely")
	}

	// Removing an absent line is a no-op
	if err := c.RemoveItem("1", nil); err != nil {
		t.Errorf("removing absent line must be a no-op, got %v", err)
	}
}

func TestRemoveItem_AmbiguousWithoutOptions(t *testing.T) {
	c := New()

	a := wingsLine(1)
	b := wingsLine(1)
	b.Options = map[string]Option{
		"size":  {ID: "12pc", Name: "12 Pieces", Price: 10.99},
		"sauce": {ID: "hot", Name: "Hot", Price: 0},
	}
	if err := c.AddItem(a); err != nil {
		t.Fatal(err)
	}
	if err := c.AddItem(b); err != nil {
		t.Fatal(err)
	}

	err := c.RemoveItem("1", nil)
	if !errors.Is(err, ErrAmbiguousLine) {
		t.Fatalf("expected ErrAmbiguousLine, got %v", err)
	}
	if len(c.Lines()) != 2 {
		t.Error("ambiguous remove must not mutate the cart")
	}

	// Unique id match works without options
	if err := c.RemoveItem("1", a.Options); err != nil {
		t.Fatal(err)
	}
	if err := c.RemoveItem("1", nil); err != nil {
		t.Fatalf("unique match without options must succeed, got %v", err)
	}
	if len(c.Lines()) != 0 {
		t.Error("expected empty cart")
	}
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	if err := c.AddItem(wingsLine(1)); err != nil {
		t.Fatal(err)
	}

	if err := c.UpdateQuantity("1", 5, nil); err != nil {
		t.Fatal(err)
	}
	if got := c.Lines()[0].Quantity; got != 5 {
		t.Errorf("expected quantity 5, got %d", got)
	}

	// Zero and below removes the line
	if err := c.UpdateQuantity("1", 0, nil); err != nil {
		t.Fatal(err)
	}
	if len(c.Lines()) != 0 {
		t.Error("quantity 0 must remove the line")
	}

	if err := c.AddItem(wingsLine(1)); err != nil {
		t.Fatal(err)
	}
	if err := c.UpdateQuantity("1", -3, nil); err != nil {
		t.Fatal(err)
	}
	if len(c.Lines()) != 0 {
		t.Error("negative quantity must remove the line")
	}

	// Updating an absent line is a no-op
	if err := c.UpdateQuantity("unknown", 2, nil); err != nil {
		t.Errorf("updating absent line must be a no-op, got %v", err)
	}
}

func TestTotals(t *testing.T) {
	c := New()
	if err := c.AddItem(Line{ItemID: "1", Name: "Buffalo Wings", UnitPrice: 11.00, Quantity: 1}); err != nil {
		t.Fatal(err)
	}
	if err := c.AddItem(Line{ItemID: "7", Name: "Family Feast", UnitPrice: 19.00, Quantity: 1}); err != nil {
		t.Fatal(err)
	}

	delivery := c.Totals(testPricing, true)
	if delivery.Subtotal != 30.00 {
		t.Errorf("subtotal = %v, want 30.00", delivery.Subtotal)
	}
	if delivery.Tax != 2.48 {
		t.Errorf("tax = %v, want 2.48", delivery.Tax)
	}
	if delivery.DeliveryFee != 3.99 {
		t.Errorf("delivery fee = %v, want 3.99", delivery.DeliveryFee)
	}
	if delivery.Total != 36.47 {
		t.Errorf("total = %v, want 36.47", delivery.Total)
	}

	pickup := c.Totals(testPricing, false)
	if pickup.DeliveryFee != 0 {
		t.Errorf("pickup delivery fee = %v, want 0", pickup.DeliveryFee)
	}
	if pickup.Total != 32.48 {
		t.Errorf("pickup total = %v, want 32.48", pickup.Total)
	}
}

func TestTotalsIdentity(t *testing.T) {
	carts := [][]Line{
		{},
		{{ItemID: "1", UnitPrice: 12.99, Quantity: 3}},
		{{ItemID: "1", UnitPrice: 12.99, Quantity: 1}, {ItemID: "2", UnitPrice: 9.49, Quantity: 2}},
		{{ItemID: "1", UnitPrice: 0.99, Quantity: 7}, {ItemID: "2", UnitPrice: 45.97, Quantity: 1}},
	}

	for _, lines := range carts {
		c := New()
		for _, line := range lines {
			if err := c.AddItem(line); err != nil {
				t.Fatal(err)
			}
		}
		for _, delivery := range []bool{true, false} {
			got := c.Totals(testPricing, delivery)
			want := roundCents(got.Subtotal + got.Tax + got.DeliveryFee)
			if got.Total != want {
				t.Errorf("total %v != subtotal+tax+fee %v (delivery=%v)", got.Total, want, delivery)
			}
			if got.Subtotal < 0 {
				t.Error("subtotal must never be negative")
			}
		}
	}
}

func TestClearAndCounters(t *testing.T) {
	c := New()
	if err := c.AddItem(wingsLine(2)); err != nil {
		t.Fatal(err)
	}
	if err := c.AddItem(Line{ItemID: "4", Name: "Loaded Fries", UnitPrice: 8.99, Quantity: 1}); err != nil {
		t.Fatal(err)
	}

	if got := c.TotalItems(); got != 3 {
		t.Errorf("TotalItems() = %d, want 3", got)
	}
	if got := c.TotalPrice(); got != 30.99 {
		t.Errorf("TotalPrice() = %v, want 30.99", got)
	}

	c.Clear()
	if len(c.Lines()) != 0 || c.TotalItems() != 0 {
		t.Error("expected empty cart after Clear")
	}
	if got := c.Totals(testPricing, false); got.Total != 0 {
		t.Errorf("empty cart total = %v, want 0", got.Total)
	}
}

func TestManagerSessions(t *testing.T) {
	m := NewManager()

	id := m.NewSession()
	ledger, ok := m.Get(id)
	if !ok || ledger == nil {
		t.Fatal("expected session ledger to exist")
	}

	if _, ok := m.Get("unknown"); ok {
		t.Error("unknown session must not resolve")
	}

	same := m.GetOrCreate(id)
	if same != ledger {
		t.Error("GetOrCreate must return the existing ledger")
	}

	m.Drop(id)
	if _, ok := m.Get(id); ok {
		t.Error("dropped session must not resolve")
	}
}
