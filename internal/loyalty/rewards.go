package loyalty

import (
	"sync"
	"time"
)

// Reward is a redeemable item in the rewards catalog
type Reward struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PointsCost  int    `json:"points_cost"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Rewards is the catalog customers redeem points against
var Rewards = []Reward{
	{
		ID:          "1",
		Name:        "Free 6pc Wings",
		Description: "Get a free 6-piece wings with any purchase",
		PointsCost:  1000,
		ImageURL:    "https://images.pexels.com/photos/7627440/pexels-photo-7627440.jpeg",
	},
	{
		ID:          "2",
		Name:        "Free Side",
		Description: "Choose any side for free with your order",
		PointsCost:  800,
		ImageURL:    "https://images.pexels.com/photos/1893556/pexels-photo-1893556.jpeg",
	},
	{
		ID:          "3",
		Name:        "$10 Off Order",
		Description: "Get $10 off your next order of $30 or more",
		PointsCost:  1200,
		ImageURL:    "https://images.pexels.com/photos/60616/fried-chicken-chicken-fried-crunchy-60616.jpeg",
	},
}

// RewardByID looks up a catalog reward
func RewardByID(id string) (Reward, bool) {
	for _, reward := range Rewards {
		if reward.ID == id {
			return reward, true
		}
	}
	return Reward{}, false
}

// Manager hands out one loyalty account per customer. Accounts are created on
// first use with the configured seed balance and the starter history behind it.
type Manager struct {
	mu       sync.RWMutex
	seed     int
	accounts map[string]*Account
}

// NewManager creates a manager whose new accounts start at seed points
func NewManager(seed int) *Manager {
	return &Manager{
		seed:     seed,
		accounts: make(map[string]*Account),
	}
}

// Account returns the customer's account, creating it on first use
func (m *Manager) Account(customerID string) *Account {
	m.mu.RLock()
	account, ok := m.accounts[customerID]
	m.mu.RUnlock()
	if ok {
		return account
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if account, ok = m.accounts[customerID]; ok {
		return account
	}
	account = NewAccount(m.seed, StarterHistory(time.Now().UTC())...)
	m.accounts[customerID] = account
	return account
}
