package loyalty

import (
	"testing"
	"time"
)

func TestAwardPoints(t *testing.T) {
	a := NewAccount(0)

	txn, err := a.AwardPoints(45, "Order #TMP_20260314_001", "TMP_20260314_001")
	if err != nil {
		t.Fatalf("AwardPoints returned error: %v", err)
	}
	if txn.Type != Earned || txn.Points != 45 {
		t.Errorf("unexpected transaction %+v", txn)
	}
	if a.Balance() != 45 {
		t.Errorf("balance = %d, want 45", a.Balance())
	}
}

func TestAwardPoints_RejectsNonPositive(t *testing.T) {
	a := NewAccount(100)

	for _, points := range []int{0, -10} {
		if _, err := a.AwardPoints(points, "bad award", ""); err == nil {
			t.Errorf("expected validation error for %d points", points)
		}
	}
	if a.Balance() != 100 {
		t.Errorf("rejected award must not change balance, got %d", a.Balance())
	}
	if len(a.Transactions()) != 0 {
		t.Error("rejected award must not append a transaction")
	}
}

func TestRedeemPoints(t *testing.T) {
	a := NewAccount(740)

	txn, ok, err := a.RedeemPoints(500, "Free Side")
	if err != nil {
		t.Fatalf("RedeemPoints returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected redemption to succeed")
	}
	if txn.Type != Redeemed || txn.Points != -500 {
		t.Errorf("unexpected transaction %+v", txn)
	}
	if a.Balance() != 240 {
		t.Errorf("balance = %d, want 240", a.Balance())
	}
	if len(a.Transactions()) != 1 {
		t.Errorf("expected 1 transaction, got %d", len(a.Transactions()))
	}
}

func TestRedeemPoints_InsufficientBalance(t *testing.T) {
	a := NewAccount(740)

	_, ok, err := a.RedeemPoints(1000, "Free 6pc Wings")
	if err != nil {
		t.Fatalf("RedeemPoints returned error: %v", err)
	}
	if ok {
		t.Fatal("expected redemption to be refused")
	}
	if a.Balance() != 740 {
		t.Errorf("refused redemption must leave balance unchanged, got %d", a.Balance())
	}
	if len(a.Transactions()) != 0 {
		t.Error("refused redemption must not append a transaction")
	}
}

func TestRedeemPoints_RejectsNonPositive(t *testing.T) {
	a := NewAccount(740)

	for _, points := range []int{0, -50} {
		if _, _, err := a.RedeemPoints(points, "bad redeem"); err == nil {
			t.Errorf("expected validation error for %d points", points)
		}
	}
	if a.Balance() != 740 {
		t.Errorf("balance = %d, want 740", a.Balance())
	}
}

func TestBalanceConservation(t *testing.T) {
	const seed = 740
	a := NewAccount(seed)

	earned := 0
	redeemed := 0

	ops := []struct {
		award  bool
		points int
	}{
		{true, 45}, {true, 32}, {false, 500}, {true, 12}, {false, 5000}, {false, 100},
	}

	for _, op := range ops {
		if op.award {
			if _, err := a.AwardPoints(op.points, "order", ""); err != nil {
				t.Fatal(err)
			}
			earned += op.points
		} else {
			if _, ok, err := a.RedeemPoints(op.points, "reward"); err != nil {
				t.Fatal(err)
			} else if ok {
				redeemed += op.points
			}
		}
	}

	want := seed + earned - redeemed
	if a.Balance() != want {
		t.Errorf("balance = %d, want %d", a.Balance(), want)
	}

	// The balance must also equal the seed plus the sum of transaction deltas
	sum := seed
	for _, txn := range a.Transactions() {
		sum += txn.Points
	}
	if a.Balance() != sum {
		t.Errorf("balance %d != seed + transaction deltas %d", a.Balance(), sum)
	}
}

func TestTransactionsNewestFirst(t *testing.T) {
	a := NewAccount(1000)

	if _, err := a.AwardPoints(10, "first", "TMP_1"); err != nil {
		t.Fatal(err)
	}
	if _, err := a.AwardPoints(20, "second", "TMP_2"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := a.RedeemPoints(30, "third"); err != nil {
		t.Fatal(err)
	}

	history := a.Transactions()
	if len(history) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(history))
	}
	if history[0].Description != "third" || history[2].Description != "first" {
		t.Error("expected history to be newest first")
	}
}

func TestTransactionsByOrder(t *testing.T) {
	a := NewAccount(0)

	if _, err := a.AwardPoints(45, "Order A", "TMP_A"); err != nil {
		t.Fatal(err)
	}
	if _, err := a.AwardPoints(30, "Order B", "TMP_B"); err != nil {
		t.Fatal(err)
	}
	if _, err := a.AwardPoints(5, "Order A adjustment", "TMP_A"); err != nil {
		t.Fatal(err)
	}

	matched := a.TransactionsByOrder("TMP_A")
	if len(matched) != 2 {
		t.Fatalf("expected 2 transactions for TMP_A, got %d", len(matched))
	}
	// Newest first, same as the underlying ledger
	if matched[0].Description != "Order A adjustment" {
		t.Errorf("expected newest transaction first, got %q", matched[0].Description)
	}

	if got := a.TransactionsByOrder("TMP_MISSING"); len(got) != 0 {
		t.Errorf("expected no transactions for unknown order, got %d", len(got))
	}
}

func TestCalculateOrderPoints(t *testing.T) {
	tests := []struct {
		total float64
		want  int
	}{
		{45.97, 45},
		{36.47, 36},
		{0.99, 0},
		{0, 0},
		{-5, 0},
		{100.00, 100},
	}

	for _, tt := range tests {
		if got := CalculateOrderPoints(tt.total); got != tt.want {
			t.Errorf("CalculateOrderPoints(%v) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

func TestAccountSeededHistory(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	a := NewAccount(740, StarterHistory(now)...)

	// The seed is the balance standing after the seeded history
	if a.Balance() != 740 {
		t.Errorf("balance = %d, want 740", a.Balance())
	}

	history := a.Transactions()
	if len(history) != 3 {
		t.Fatalf("expected 3 seeded transactions, got %d", len(history))
	}
	if history[0].Type != Earned || history[0].Points != 50 {
		t.Errorf("unexpected newest seeded entry %+v", history[0])
	}
	if history[2].Type != Redeemed || history[2].Points != -100 {
		t.Errorf("unexpected oldest seeded entry %+v", history[2])
	}
	for i := 1; i < len(history); i++ {
		if history[i].Timestamp.After(history[i-1].Timestamp) {
			t.Errorf("seeded history not newest first at index %d", i)
		}
	}

	// New activity lands on top of the seeded history
	if _, err := a.AwardPoints(36, "Order #TMP_20260314_004", "TMP_20260314_004"); err != nil {
		t.Fatal(err)
	}
	if a.Balance() != 776 {
		t.Errorf("balance = %d, want 776", a.Balance())
	}
	if got := a.Transactions(); len(got) != 4 || got[0].Points != 36 {
		t.Errorf("expected the new award first in history, got %+v", got[0])
	}
}

func TestManagerSeedsHistory(t *testing.T) {
	m := NewManager(740)

	a := m.Account("walk.in@email.com")
	if len(a.Transactions()) != 3 {
		t.Errorf("expected starter history on first use, got %d entries", len(a.Transactions()))
	}
	if a.Balance() != 740 {
		t.Errorf("seeded history must not move the seed balance, got %d", a.Balance())
	}
}

func TestManagerAccounts(t *testing.T) {
	m := NewManager(740)

	a := m.Account("john.doe@email.com")
	if a.Balance() != 740 {
		t.Errorf("new account balance = %d, want seed 740", a.Balance())
	}

	if m.Account("john.doe@email.com") != a {
		t.Error("expected the same account on repeated lookup")
	}

	b := m.Account("jane.roe@email.com")
	if b == a {
		t.Error("expected distinct accounts per customer")
	}
}

func TestRewardByID(t *testing.T) {
	reward, ok := RewardByID("2")
	if !ok || reward.Name != "Free Side" {
		t.Errorf("RewardByID(2) = %+v, %v", reward, ok)
	}
	if _, ok := RewardByID("missing"); ok {
		t.Error("unknown reward id must not resolve")
	}
}
