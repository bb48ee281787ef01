package fulfillment

import (
	"time"

	"temple-eats/internal/models"
)

// DefaultStepInterval is how long an order sits in each status before the
// worker advances it.
const DefaultStepInterval = 10 * time.Second

var drivers = []models.Driver{
	{Name: "Marcus Webb", Vehicle: "Honda Civic", Phone: "(555) 304-9912"},
	{Name: "Dana Ruiz", Vehicle: "Toyota Corolla", Phone: "(555) 771-2048"},
	{Name: "Kofi Mensah", Vehicle: "Ford Transit", Phone: "(555) 618-5530"},
}

// NextAdvance returns the advance to attempt given the stored status. The
// second return is false when no further advance is possible: the order is
// cancelled, delivered, or outside the progression.
func NextAdvance(stored models.Status) (models.Status, bool) {
	if stored == models.StatusCancelled {
		return stored, false
	}
	return stored.Next()
}

// AssignDriver picks a driver for an order. The pick is deterministic per
// order number so retries land on the same driver.
func AssignDriver(orderNumber string) models.Driver {
	sum := 0
	for _, r := range orderNumber {
		sum += int(r)
	}
	return drivers[sum%len(drivers)]
}
