// model/customer.go
package model

import (
	"strings"
	"time"

	"carrental/util/datex"
)

// Customer is a registered renter. ActiveRentals is always a subset of
// RentalHistory; bookings are referenced by id, never owned.
type Customer struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	BirthDate     time.Time `json:"birth_date"`
	LicenseNumber string    `json:"license_number"`
	LicenseTypes  []string  `json:"license_types"`
	LicenseDate   time.Time `json:"license_date"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address,omitempty"`
	RentalHistory []string  `json:"rental_history"`
	ActiveRentals []string  `json:"active_rentals"`
	Blocked       bool      `json:"blocked"`
	BlockedReason string    `json:"blocked_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewCustomer(id, firstName, lastName string, birthDate time.Time, licenseNumber string, licenseTypes []string, licenseDate time.Time, email, phone, address string) *Customer {
	if id == "" {
		id = NewID()
	}
	types := make([]string, 0, len(licenseTypes))
	for _, t := range licenseTypes {
		types = append(types, strings.ToUpper(t))
	}
	return &Customer{
		ID:            id,
		FirstName:     firstName,
		LastName:      lastName,
		BirthDate:     birthDate,
		LicenseNumber: licenseNumber,
		LicenseTypes:  types,
		LicenseDate:   licenseDate,
		Email:         email,
		Phone:         phone,
		Address:       address,
		CreatedAt:     time.Now().UTC(),
	}
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Age in whole years as of the reference date.
func (c *Customer) Age(today time.Time) int {
	return datex.WholeYears(c.BirthDate, today)
}

// YearsOfLicense is how long the license has been held, in whole years.
func (c *Customer) YearsOfLicense(today time.Time) int {
	return datex.WholeYears(c.LicenseDate, today)
}

func (c *Customer) AddLicenseType(licenseType string) {
	if !c.HasLicense(licenseType) {
		c.LicenseTypes = append(c.LicenseTypes, strings.ToUpper(licenseType))
	}
}

func (c *Customer) HasLicense(licenseType string) bool {
	want := strings.ToUpper(licenseType)
	for _, t := range c.LicenseTypes {
		if t == want {
			return true
		}
	}
	return false
}

// AddRental records a booking reference in both the history and the
// active set.
func (c *Customer) AddRental(rentalID string) {
	c.RentalHistory = append(c.RentalHistory, rentalID)
	c.ActiveRentals = append(c.ActiveRentals, rentalID)
}

// CompleteRental drops a booking from the active set only; the history
// keeps it.
func (c *Customer) CompleteRental(rentalID string) bool {
	for i, id := range c.ActiveRentals {
		if id == rentalID {
			c.ActiveRentals = append(c.ActiveRentals[:i], c.ActiveRentals[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Customer) TotalRentals() int {
	return len(c.RentalHistory)
}

func (c *Customer) Block(reason string) {
	c.Blocked = true
	c.BlockedReason = reason
}

func (c *Customer) Unblock() {
	c.Blocked = false
	c.BlockedReason = ""
}

func (c *Customer) IsLoyal() bool {
	return c.TotalRentals() >= LoyaltyTier1Rentals
}

// LoyaltyDiscount returns the discount fraction earned by the
// customer's cumulative booking count.
func (c *Customer) LoyaltyDiscount() float64 {
	switch n := c.TotalRentals(); {
	case n >= LoyaltyTier3Rentals:
		return LoyaltyTier3Discount
	case n >= LoyaltyTier2Rentals:
		return LoyaltyTier2Discount
	case n >= LoyaltyTier1Rentals:
		return LoyaltyTier1Discount
	default:
		return 0.0
	}
}
