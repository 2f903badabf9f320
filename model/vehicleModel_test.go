package model

import (
	"testing"

	"carrental/util/datex"

	"github.com/stretchr/testify/require"
)

func testCar(t *testing.T, category VehicleCategory, rate float64) *Vehicle {
	t.Helper()
	v, err := NewCar("CAR1", "Renault", "Clio", category, rate, 2021, "AB-123-CD", 15000,
		CarSpec{Doors: 5, Seats: 5, FuelType: "essence", Transmission: "manuelle"})
	require.NoError(t, err)
	return v
}

func TestNewVehicle_Validation(t *testing.T) {
	if _, err := NewCar("", "Renault", "Clio", CategoryEconomy, -1, 2021, "AB-123-CD", 0, CarSpec{}); err == nil {
		t.Fatal("expected error for negative rate")
	}
	if _, err := NewCar("", "Renault", "Clio", CategoryEconomy, 30, 2021, "AB-123-CD", -5, CarSpec{}); err == nil {
		t.Fatal("expected error for negative mileage")
	}
	v, err := NewCar("", "Renault", "Clio", CategoryEconomy, 30, 2021, "AB-123-CD", 0, CarSpec{})
	require.NoError(t, err)
	if v.ID == "" {
		t.Fatal("expected generated id")
	}
	if v.State != VehicleAvailable {
		t.Fatalf("new vehicle state = %s, want AVAILABLE", v.State)
	}
}

func TestRentalCost_Tiers(t *testing.T) {
	v := testCar(t, CategoryEconomy, 50)

	got, err := v.RentalCost(3)
	require.NoError(t, err)
	require.InDelta(t, 150, got, 1e-9)

	got, err = v.RentalCost(7)
	require.NoError(t, err)
	require.InDelta(t, 315, got, 1e-9) // 50*7 minus 10%

	got, err = v.RentalCost(30)
	require.NoError(t, err)
	require.InDelta(t, 1200, got, 1e-9) // 50*30 minus 20%

	if _, err := v.RentalCost(0); err == nil {
		t.Fatal("expected error for zero days")
	}
}

func TestRentalCost_MotorcycleSupplement(t *testing.T) {
	m, err := NewMotorcycle("MOTO1", "Yamaha", "MT-07", CategoryStandard, 35, 2022, "EF-456-GH", 8000,
		MotorcycleSpec{EngineSize: 689, Style: "roadster"})
	require.NoError(t, err)

	got, err := m.RentalCost(3)
	require.NoError(t, err)
	require.InDelta(t, 120.75, got, 1e-9) // 35*3 times 1.15
}

func TestRequiredLicenseAndMinimumAge(t *testing.T) {
	cases := []struct {
		name    string
		vehicle *Vehicle
		license string
		minAge  int
	}{
		{"economy car", mustCar(t, CategoryEconomy), "B", 21},
		{"premium car", mustCar(t, CategoryPremium), "B", 23},
		{"luxury car", mustCar(t, CategoryLuxury), "B", 25},
		{"sport car", mustCar(t, CategorySport), "B", 25},
		{"small motorcycle", mustMoto(t, 125), "A1", 18},
		{"large motorcycle", mustMoto(t, 600), "A", 21},
		{"light truck", mustTruck(t, 3500), "B", 21},
		{"medium truck", mustTruck(t, 5000), "C1", 21},
		{"heavy truck", mustTruck(t, 12000), "C", 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.vehicle.RequiredLicense(); got != tc.license {
				t.Fatalf("license = %s, want %s", got, tc.license)
			}
			if got := tc.vehicle.MinimumDriverAge(); got != tc.minAge {
				t.Fatalf("min age = %d, want %d", got, tc.minAge)
			}
		})
	}
}

func mustCar(t *testing.T, category VehicleCategory) *Vehicle {
	t.Helper()
	v, err := NewCar("", "Peugeot", "208", category, 40, 2020, "XX-000-XX", 0, CarSpec{})
	require.NoError(t, err)
	return v
}

func mustMoto(t *testing.T, engine int) *Vehicle {
	t.Helper()
	v, err := NewMotorcycle("", "Honda", "CB", CategoryStandard, 30, 2020, "YY-111-YY", 0, MotorcycleSpec{EngineSize: engine})
	require.NoError(t, err)
	return v
}

func mustTruck(t *testing.T, maxWeight float64) *Vehicle {
	t.Helper()
	v, err := NewTruck("", "Iveco", "Daily", CategoryUtility, 80, 2019, "ZZ-222-ZZ", 0, TruckSpec{MaxWeight: maxWeight})
	require.NoError(t, err)
	return v
}

func TestSetMileage_Monotonic(t *testing.T) {
	v := testCar(t, CategoryEconomy, 50)
	require.NoError(t, v.SetMileage(15500))
	if err := v.SetMileage(15000); err == nil {
		t.Fatal("expected error for decreasing mileage")
	}
	require.InDelta(t, 15500, v.Mileage, 1e-9)
}

func TestRentAndReturn(t *testing.T) {
	v := testCar(t, CategoryEconomy, 50)

	if !v.Rent() {
		t.Fatal("rent of available vehicle failed")
	}
	if v.Rent() {
		t.Fatal("rent of rented vehicle should fail")
	}

	lower := 14000.0
	if err := v.Return(&lower); err == nil {
		t.Fatal("expected mileage error on return")
	}

	end := 15800.0
	require.NoError(t, v.Return(&end))
	if v.State != VehicleAvailable {
		t.Fatalf("state after return = %s, want AVAILABLE", v.State)
	}
	require.InDelta(t, 15800, v.Mileage, 1e-9)

	if err := v.Return(nil); err == nil {
		t.Fatal("expected error returning a vehicle that is not rented")
	}
}

func TestMaintenanceFlow(t *testing.T) {
	today := datex.NewDate(2026, 3, 1)
	v := testCar(t, CategoryEconomy, 50)

	v.Rent()
	if v.SendToMaintenance("vidange", today) {
		t.Fatal("maintenance on rented vehicle should fail")
	}
	require.NoError(t, v.Return(nil))

	if !v.SendToMaintenance("vidange", today) {
		t.Fatal("maintenance on available vehicle failed")
	}
	if v.State != VehicleMaintenance {
		t.Fatalf("state = %s, want MAINTENANCE", v.State)
	}
	if v.Rent() {
		t.Fatal("rent of vehicle in maintenance should fail")
	}

	if !v.CompleteMaintenance("vidange faite", 120, today) {
		t.Fatal("complete maintenance failed")
	}
	if v.State != VehicleAvailable {
		t.Fatalf("state = %s, want AVAILABLE", v.State)
	}
	if len(v.MaintenanceLog) != 2 {
		t.Fatalf("log length = %d, want 2", len(v.MaintenanceLog))
	}
	if v.LastMaintenance == nil || !v.LastMaintenance.Equal(today) {
		t.Fatal("last maintenance date not recorded")
	}
}

func TestNeedsMaintenance(t *testing.T) {
	v := testCar(t, CategoryEconomy, 50) // odometer 15000, no log
	if !v.NeedsMaintenance(0) {
		t.Fatal("15000 km since new should need maintenance")
	}

	today := datex.NewDate(2026, 3, 1)
	v.SendToMaintenance("revision", today)
	v.CompleteMaintenance("revision faite", 200, today)
	if v.NeedsMaintenance(0) {
		t.Fatal("freshly serviced vehicle should not need maintenance")
	}

	require.NoError(t, v.SetMileage(25500))
	if !v.NeedsMaintenance(0) {
		t.Fatal("10500 km since service should need maintenance")
	}
}
