package entity

import (
	"testing"
	"time"
)

func TestPurchaseStatusTransitions(t *testing.T) {
	tests := []struct {
		from    PurchaseStatus
		to      PurchaseStatus
		allowed bool
	}{
		{PurchaseStatusInitiated, PurchaseStatusCreated, true},
		{PurchaseStatusCreated, PurchaseStatusExecuted, true},
		{PurchaseStatusInitiated, PurchaseStatusExecuted, false},
		{PurchaseStatusCreated, PurchaseStatusInitiated, false},
		{PurchaseStatusExecuted, PurchaseStatusCreated, false},
		{PurchaseStatusExecuted, PurchaseStatusExecuted, false},
	}

	for _, tc := range tests {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestHoldExpired(t *testing.T) {
	now := time.Now()

	initiated := Purchase{Status: PurchaseStatusInitiated, ExpiredSeatSelectionAt: now.Add(-time.Second)}
	if !initiated.HoldExpired(now) {
		t.Error("initiated purchase past its window should be expired")
	}

	fresh := Purchase{Status: PurchaseStatusInitiated, ExpiredSeatSelectionAt: now.Add(time.Minute)}
	if fresh.HoldExpired(now) {
		t.Error("initiated purchase inside its window should not be expired")
	}

	// Only initiated purchases expire
	created := Purchase{Status: PurchaseStatusCreated, ExpiredSeatSelectionAt: now.Add(-time.Hour)}
	if created.HoldExpired(now) {
		t.Error("created purchase should never expire")
	}
}

func TestFinalAmount(t *testing.T) {
	tests := []struct {
		name     string
		purchase Purchase
		want     float64
	}{
		{"no discount", Purchase{OriginalAmount: 100000}, 100000},
		{"flat discount", Purchase{OriginalAmount: 100000, DiscountType: DiscountTypeFlat, DiscountAmount: 25000}, 75000},
		{"percent discount", Purchase{OriginalAmount: 100000, DiscountType: DiscountTypePercent, DiscountAmount: 10}, 90000},
		{"flat exceeding total floors at zero", Purchase{OriginalAmount: 100000, DiscountType: DiscountTypeFlat, DiscountAmount: 200000}, 0},
		{"full percent discount", Purchase{OriginalAmount: 100000, DiscountType: DiscountTypePercent, DiscountAmount: 100}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.purchase.FinalAmount(); got != tc.want {
				t.Errorf("FinalAmount() = %v, want %v", got, tc.want)
			}
		})
	}
}
