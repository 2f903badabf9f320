// model/rental.go
package model

import (
	"errors"
	"fmt"
	"time"

	"carrental/util/datex"
)

type RentalStatus string

const (
	RentalReserved  RentalStatus = "RESERVED"
	RentalActive    RentalStatus = "ACTIVE"
	RentalCompleted RentalStatus = "COMPLETED"
	RentalCancelled RentalStatus = "CANCELLED"
)

var (
	ErrEndBeforeStart = errors.New("end date cannot be before start date")
	ErrNotCompletable = errors.New("rental cannot be completed from its current status")
	ErrNotCancellable = errors.New("rental cannot be cancelled from its current status")
)

// Rental is one booking of one vehicle by one customer over a date
// window. The daily rate and start odometer are frozen in at creation;
// later catalog changes never affect an existing booking. Costs are
// always recomputed from the stored primitives, never cached.
type Rental struct {
	ID           string       `json:"id"`
	CustomerID   string       `json:"customer_id"`
	VehicleID    string       `json:"vehicle_id"`
	StartDate    time.Time    `json:"start_date"`
	EndDate      time.Time    `json:"end_date"`
	ReturnDate   *time.Time   `json:"return_date,omitempty"`
	Status       RentalStatus `json:"status"`
	DailyRate    float64      `json:"daily_rate"`
	StartMileage float64      `json:"start_mileage"`
	EndMileage   *float64     `json:"end_mileage,omitempty"`
	Penalty      float64      `json:"penalty"`
	Discount     float64      `json:"discount"`
	Notes        string       `json:"notes,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// NewRental builds a RESERVED booking. An end date before the start
// date or a negative daily rate is a caller bug, not a business
// rejection, and fails hard.
func NewRental(id, customerID, vehicleID string, start, end time.Time, dailyRate, startMileage float64) (*Rental, error) {
	if end.Before(start) {
		return nil, ErrEndBeforeStart
	}
	if dailyRate < 0 {
		return nil, fmt.Errorf("%w (%.2f)", ErrNegativeRate, dailyRate)
	}
	if id == "" {
		id = NewID()
	}
	return &Rental{
		ID:           id,
		CustomerID:   customerID,
		VehicleID:    vehicleID,
		StartDate:    datex.Day(start),
		EndDate:      datex.Day(end),
		Status:       RentalReserved,
		DailyRate:    dailyRate,
		StartMileage: startMileage,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// PlannedDuration is the booked window in days, boundary dates included.
func (r *Rental) PlannedDuration() int {
	return datex.DaysBetween(r.StartDate, r.EndDate) + 1
}

// ActualDuration is the realized duration once the vehicle came back.
func (r *Rental) ActualDuration() (int, bool) {
	if r.ReturnDate == nil {
		return 0, false
	}
	return datex.DaysBetween(r.StartDate, *r.ReturnDate) + 1, true
}

// durationUsed is the duration costs are computed over: actual once
// known, planned before that.
func (r *Rental) durationUsed() int {
	if d, ok := r.ActualDuration(); ok {
		return d
	}
	return r.PlannedDuration()
}

func (r *Rental) DaysLate() int {
	if r.ReturnDate != nil && r.ReturnDate.After(r.EndDate) {
		return datex.DaysBetween(r.EndDate, *r.ReturnDate)
	}
	return 0
}

func (r *Rental) DistanceTraveled() (float64, bool) {
	if r.EndMileage == nil {
		return 0, false
	}
	return *r.EndMileage - r.StartMileage, true
}

// BaseCost is the frozen rate times the duration in use, after the
// long-rental discount tier.
func (r *Rental) BaseCost() float64 {
	days := r.durationUsed()
	return r.DailyRate * float64(days) * (1 - DurationDiscount(days))
}

// TotalCost is the base cost after the loyalty discount, plus any
// penalty.
func (r *Rental) TotalCost() float64 {
	return r.BaseCost()*(1-r.Discount) + r.Penalty
}

// ApplyDiscount freezes a loyalty discount fraction into the booking.
// Fractions outside [0, 1] are ignored.
func (r *Rental) ApplyDiscount(fraction float64) {
	if fraction >= 0 && fraction <= 1 {
		r.Discount = fraction
	}
}

// Start flips RESERVED to ACTIVE once the start date has been reached.
// Anything else is a no-op returning false.
func (r *Rental) Start(today time.Time) bool {
	if r.Status != RentalReserved {
		return false
	}
	if datex.Day(today).Before(r.StartDate) {
		return false
	}
	r.Status = RentalActive
	return true
}

// Complete closes the booking, recording the return date and odometer
// and charging the late penalty. Legal from ACTIVE, and from RESERVED
// to cover a same-day start and finish. Returns the total cost.
func (r *Rental) Complete(returnDate time.Time, endMileage *float64) (float64, error) {
	if r.Status != RentalActive && r.Status != RentalReserved {
		return 0, fmt.Errorf("%w (%s)", ErrNotCompletable, r.Status)
	}
	day := datex.Day(returnDate)
	r.ReturnDate = &day
	r.EndMileage = endMileage
	if late := datex.DaysBetween(r.EndDate, day); late > 0 {
		r.Penalty = float64(late) * LateReturnPenaltyPerDay
	}
	r.Status = RentalCompleted
	return r.TotalCost(), nil
}

// Cancel closes the booking and charges a fee tiered on how close the
// start date is: within a day 100% of the base cost, within three days
// 50%, within seven the standard fee fraction, free beyond that.
// Terminal bookings cannot be cancelled.
func (r *Rental) Cancel(today time.Time) (float64, error) {
	if r.Status == RentalCompleted || r.Status == RentalCancelled {
		return 0, fmt.Errorf("%w (%s)", ErrNotCancellable, r.Status)
	}

	fee := 0.0
	switch daysUntil := datex.DaysBetween(today, r.StartDate); {
	case daysUntil <= 1:
		fee = r.BaseCost()
	case daysUntil <= 3:
		fee = r.BaseCost() * 0.50
	case daysUntil <= 7:
		fee = r.BaseCost() * CancellationFeePercent
	}

	r.Penalty = fee
	r.Status = RentalCancelled
	return fee, nil
}

// Extend moves the end date later. Only live bookings can be extended,
// and only to a strictly later date; otherwise a no-op returning false.
func (r *Rental) Extend(newEnd time.Time) bool {
	if r.Status != RentalActive && r.Status != RentalReserved {
		return false
	}
	day := datex.Day(newEnd)
	if !day.After(r.EndDate) {
		return false
	}
	r.EndDate = day
	return true
}

func (r *Rental) IsOverdue(today time.Time) bool {
	return r.Status == RentalActive && datex.Day(today).After(r.EndDate)
}

// DaysRemaining is signed: negative means overdue. Zero for bookings
// that are not active.
func (r *Rental) DaysRemaining(today time.Time) int {
	if r.Status != RentalActive {
		return 0
	}
	return datex.DaysBetween(today, r.EndDate)
}
