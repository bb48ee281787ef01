package loyalty

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"temple-eats/internal/models"
)

// TransactionType marks a ledger entry as earning or spending points
type TransactionType string

const (
	Earned   TransactionType = "earned"
	Redeemed TransactionType = "redeemed"
)

// Transaction is one append-only entry in the point ledger. Points are
// signed: earned entries carry positive points, redeemed entries negative.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Points      int             `json:"points"`
	Description string          `json:"description"`
	Timestamp   time.Time       `json:"timestamp"`
	OrderNumber string          `json:"order_number,omitempty"`
}

// Account is a single customer's point balance plus its transaction history,
// newest first. The balance always equals the seed plus the sum of the deltas
// recorded after construction.
type Account struct {
	mu           sync.Mutex
	balance      int
	transactions []Transaction
}

// NewAccount creates an account with a seed balance and an optional seeded
// history, given newest first. The seed is the balance standing after that
// history, so seeded entries do not move it.
func NewAccount(seed int, history ...Transaction) *Account {
	if seed < 0 {
		seed = 0
	}
	return &Account{balance: seed, transactions: history}
}

// StarterHistory is the backdated transaction history a returning customer
// arrives with: two recent orders and one reward redemption.
func StarterHistory(now time.Time) []Transaction {
	today := models.GenerateOrderNumber(now, 1)
	yesterday := models.GenerateOrderNumber(now.Add(-24*time.Hour), 2)

	return []Transaction{
		{
			ID:          uuid.NewString(),
			Type:        Earned,
			Points:      50,
			Description: "Order #" + today,
			Timestamp:   now.Add(-6 * time.Hour),
			OrderNumber: today,
		},
		{
			ID:          uuid.NewString(),
			Type:        Earned,
			Points:      32,
			Description: "Order #" + yesterday,
			Timestamp:   now.Add(-24 * time.Hour),
			OrderNumber: yesterday,
		},
		{
			ID:          uuid.NewString(),
			Type:        Redeemed,
			Points:      -100,
			Description: "Free Side Reward",
			Timestamp:   now.Add(-48 * time.Hour),
		},
	}
}

// Balance returns the current point balance
func (a *Account) Balance() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// AwardPoints appends an earned transaction and increments the balance.
// Non-positive awards are rejected with no state change.
func (a *Account) AwardPoints(points int, description, orderNumber string) (Transaction, error) {
	if points <= 0 {
		return Transaction{}, models.ValidationError{Field: "points", Message: "points to award must be positive"}
	}

	txn := Transaction{
		ID:          uuid.NewString(),
		Type:        Earned,
		Points:      points,
		Description: description,
		Timestamp:   time.Now().UTC(),
		OrderNumber: orderNumber,
	}

	a.mu.Lock()
	a.transactions = append([]Transaction{txn}, a.transactions...)
	a.balance += points
	a.mu.Unlock()

	return txn, nil
}

// RedeemPoints spends points against the balance. An insufficient balance is
// an expected outcome, not an error: the ledger is left untouched and ok is
// false. Non-positive amounts are a validation error.
func (a *Account) RedeemPoints(points int, description string) (Transaction, bool, error) {
	if points <= 0 {
		return Transaction{}, false, models.ValidationError{Field: "points", Message: "points to redeem must be positive"}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.balance < points {
		return Transaction{}, false, nil
	}

	txn := Transaction{
		ID:          uuid.NewString(),
		Type:        Redeemed,
		Points:      -points,
		Description: description,
		Timestamp:   time.Now().UTC(),
	}

	a.transactions = append([]Transaction{txn}, a.transactions...)
	a.balance -= points
	return txn, true, nil
}

// Transactions returns the full history, newest first
func (a *Account) Transactions() []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()

	history := make([]Transaction, len(a.transactions))
	copy(history, a.transactions)
	return history
}

// TransactionsByOrder filters the history for one order, preserving the
// ledger's newest-first order.
func (a *Account) TransactionsByOrder(orderNumber string) []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()

	var matched []Transaction
	for _, txn := range a.transactions {
		if txn.OrderNumber == orderNumber {
			matched = append(matched, txn)
		}
	}
	return matched
}

// CalculateOrderPoints derives the points earned from a completed order:
// one point per whole currency unit, floored.
func CalculateOrderPoints(orderTotal float64) int {
	if orderTotal <= 0 {
		return 0
	}
	return int(math.Floor(orderTotal))
}
