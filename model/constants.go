package model

// Long-rental discount tiers. The tiers apply to every vehicle type.
const (
	WeeklyRentalMinDays   = 7
	WeeklyRentalDiscount  = 0.10
	MonthlyRentalMinDays  = 30
	MonthlyRentalDiscount = 0.20
)

// Penalties.
const (
	LateReturnPenaltyPerDay = 50.0
	CancellationFeePercent  = 0.20
)

// MaintenanceKmThreshold is the default mileage between maintenances.
const MaintenanceKmThreshold = 10000.0

// Minimum driver ages per car category.
const (
	MinAgeEconomy = 21
	MinAgePremium = 23
	MinAgeLuxury  = 25
	MinAgeSport   = 25
)

// Motorcycle rules. Engines at or below the small limit take the small
// license and age; the insurance supplement multiplies the rental cost.
const (
	MinAgeMotorcycleSmall         = 18
	MinAgeMotorcycleLarge         = 21
	MotorcycleSmallEngineLimit    = 125
	MotorcycleInsuranceSupplement = 1.15
)

// Truck rules, keyed on maximum authorized weight in kg.
const (
	MinAgeTruckLight       = 21
	MinAgeTruckMedium      = 21
	MinAgeTruckHeavy       = 25
	TruckLightWeightLimit  = 3500.0
	TruckMediumWeightLimit = 7500.0
)

// License category codes.
const (
	LicenseCar             = "B"
	LicenseMotorcycleSmall = "A1"
	LicenseMotorcycleLarge = "A"
	LicenseTruckLight      = "B"
	LicenseTruckMedium     = "C1"
	LicenseTruckHeavy      = "C"
)

// Loyalty tiers, keyed on cumulative booking count.
const (
	LoyaltyTier1Rentals  = 5
	LoyaltyTier1Discount = 0.05
	LoyaltyTier2Rentals  = 10
	LoyaltyTier2Discount = 0.10
	LoyaltyTier3Rentals  = 20
	LoyaltyTier3Discount = 0.15
)

// MinLicenseYears is how long a license must be held before renting.
const MinLicenseYears = 1

// DurationDiscount returns the long-rental discount fraction for a
// rental of the given number of days.
func DurationDiscount(days int) float64 {
	switch {
	case days >= MonthlyRentalMinDays:
		return MonthlyRentalDiscount
	case days >= WeeklyRentalMinDays:
		return WeeklyRentalDiscount
	default:
		return 0.0
	}
}
