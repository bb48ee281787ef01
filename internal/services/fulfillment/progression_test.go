package fulfillment

import (
	"testing"

	"temple-eats/internal/models"
)

func TestNextAdvanceWalksToDelivered(t *testing.T) {
	expected := []models.Status{
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusReady,
		models.StatusOutForDelivery,
		models.StatusDelivered,
	}

	status := models.StatusPlaced
	for i, want := range expected {
		next, ok := NextAdvance(status)
		if !ok {
			t.Fatalf("progression stopped at %s, expected advance %d to %s", status, i, want)
		}
		if next != want {
			t.Fatalf("advance %d: expected %s, got %s", i, want, next)
		}
		if !status.CanAdvanceTo(next) {
			t.Fatalf("advance %s -> %s is not a single step", status, next)
		}
		status = next
	}

	if _, ok := NextAdvance(status); ok {
		t.Errorf("expected no advance past %s", status)
	}
}

func TestNextAdvanceHaltsOnCancelled(t *testing.T) {
	// A cancellation observed mid-progression must end the run; the stored
	// status is never advanced past it.
	if next, ok := NextAdvance(models.StatusCancelled); ok {
		t.Errorf("expected no advance from cancelled, got %s", next)
	}
}

func TestNextAdvanceTerminalAndUnknown(t *testing.T) {
	for _, status := range []models.Status{models.StatusDelivered, models.Status("bogus")} {
		if next, ok := NextAdvance(status); ok {
			t.Errorf("expected no advance from %s, got %s", status, next)
		}
	}
}

func TestAssignDriverDeterministic(t *testing.T) {
	first := AssignDriver("TMP_20260314_001")
	second := AssignDriver("TMP_20260314_001")

	if first != second {
		t.Errorf("same order got different drivers: %+v vs %+v", first, second)
	}
	if first.Name == "" || first.Vehicle == "" || first.Phone == "" {
		t.Errorf("assigned driver has empty fields: %+v", first)
	}
}
