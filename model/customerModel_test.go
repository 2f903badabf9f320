package model

import (
	"testing"

	"carrental/util/datex"
)

func testCustomer() *Customer {
	return NewCustomer("CUST1", "Marie", "Dupont",
		datex.NewDate(1995, 6, 15), "123456789",
		[]string{"b"}, datex.NewDate(2015, 9, 1),
		"marie.dupont@example.com", "0601020304", "31000 Toulouse")
}

func TestAge_Anniversary(t *testing.T) {
	c := testCustomer()

	if got := c.Age(datex.NewDate(2026, 6, 14)); got != 30 {
		t.Fatalf("age the day before the birthday = %d, want 30", got)
	}
	if got := c.Age(datex.NewDate(2026, 6, 15)); got != 31 {
		t.Fatalf("age on the birthday = %d, want 31", got)
	}
}

func TestYearsOfLicense(t *testing.T) {
	c := testCustomer()
	if got := c.YearsOfLicense(datex.NewDate(2016, 8, 31)); got != 0 {
		t.Fatalf("years before anniversary = %d, want 0", got)
	}
	if got := c.YearsOfLicense(datex.NewDate(2026, 9, 1)); got != 11 {
		t.Fatalf("years = %d, want 11", got)
	}
}

func TestLicenseTypes_CaseInsensitive(t *testing.T) {
	c := testCustomer()
	if !c.HasLicense("b") || !c.HasLicense("B") {
		t.Fatal("license B should be held regardless of case")
	}
	c.AddLicenseType("a1")
	c.AddLicenseType("A1") // duplicate, ignored
	if len(c.LicenseTypes) != 2 {
		t.Fatalf("license types = %v, want 2 entries", c.LicenseTypes)
	}
	if !c.HasLicense("A1") {
		t.Fatal("license A1 should be held")
	}
}

func TestRentalTracking(t *testing.T) {
	c := testCustomer()

	c.AddRental("R1")
	c.AddRental("R2")
	if c.TotalRentals() != 2 || len(c.ActiveRentals) != 2 {
		t.Fatalf("history=%d active=%d, want 2/2", c.TotalRentals(), len(c.ActiveRentals))
	}

	if !c.CompleteRental("R1") {
		t.Fatal("complete of active rental failed")
	}
	if c.CompleteRental("R1") {
		t.Fatal("double complete should fail")
	}
	// history keeps everything, only the active set shrinks
	if c.TotalRentals() != 2 || len(c.ActiveRentals) != 1 {
		t.Fatalf("history=%d active=%d, want 2/1", c.TotalRentals(), len(c.ActiveRentals))
	}
}

func TestLoyaltyTiers(t *testing.T) {
	cases := []struct {
		rentals  int
		loyal    bool
		discount float64
	}{
		{0, false, 0},
		{4, false, 0},
		{5, true, 0.05},
		{9, true, 0.05},
		{10, true, 0.10},
		{20, true, 0.15},
		{35, true, 0.15},
	}
	for _, tc := range cases {
		c := testCustomer()
		for i := 0; i < tc.rentals; i++ {
			c.AddRental("R")
		}
		if c.IsLoyal() != tc.loyal {
			t.Fatalf("%d rentals: loyal = %v, want %v", tc.rentals, c.IsLoyal(), tc.loyal)
		}
		if got := c.LoyaltyDiscount(); got != tc.discount {
			t.Fatalf("%d rentals: discount = %v, want %v", tc.rentals, got, tc.discount)
		}
	}
}

func TestBlockUnblock(t *testing.T) {
	c := testCustomer()
	c.Block("impayé")
	if !c.Blocked || c.BlockedReason != "impayé" {
		t.Fatal("block did not stick")
	}
	c.Unblock()
	if c.Blocked || c.BlockedReason != "" {
		t.Fatal("unblock did not clear")
	}
}
