// model/vehicle.go
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type VehicleType string

const (
	VehicleCar        VehicleType = "CAR"
	VehicleTruck      VehicleType = "TRUCK"
	VehicleMotorcycle VehicleType = "MOTORCYCLE"
)

type VehicleState string

const (
	VehicleAvailable    VehicleState = "AVAILABLE"
	VehicleRented       VehicleState = "RENTED"
	VehicleMaintenance  VehicleState = "MAINTENANCE"
	VehicleOutOfService VehicleState = "OUT_OF_SERVICE"
)

type VehicleCategory string

const (
	CategoryEconomy  VehicleCategory = "ECONOMY"
	CategoryStandard VehicleCategory = "STANDARD"
	CategoryPremium  VehicleCategory = "PREMIUM"
	CategoryLuxury   VehicleCategory = "LUXURY"
	CategoryUtility  VehicleCategory = "UTILITY"
	CategorySport    VehicleCategory = "SPORT"
)

// Maintenance log entry kinds.
const (
	MaintenanceStarted   = "STARTED"
	MaintenanceCompleted = "COMPLETED"
)

type MaintenanceEntry struct {
	Date        time.Time `json:"date"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	Cost        float64   `json:"cost,omitempty"`
	Mileage     float64   `json:"mileage"`
}

// CarSpec, TruckSpec and MotorcycleSpec are the per-variant payloads.
// Exactly one of them is set on a Vehicle, selected by Type.
type CarSpec struct {
	Doors        int    `json:"doors"`
	Seats        int    `json:"seats"`
	FuelType     string `json:"fuel_type"`
	Transmission string `json:"transmission"`
}

type TruckSpec struct {
	CargoVolume float64 `json:"cargo_volume"`
	MaxWeight   float64 `json:"max_weight"`
	TailLift    bool    `json:"tail_lift"`
}

type MotorcycleSpec struct {
	EngineSize int    `json:"engine_size"`
	Style      string `json:"style"`
}

// Vehicle is a fleet record. Variant-specific rules (required license,
// minimum driver age, pricing supplements) dispatch on Type, keeping
// the rule tables in one place instead of spread over a hierarchy.
//
// Mutate DailyRate and Mileage through their setters: the rate may
// never go negative and the odometer may never decrease.
type Vehicle struct {
	ID              string             `json:"id"`
	Type            VehicleType        `json:"type"`
	Brand           string             `json:"brand"`
	Model           string             `json:"model"`
	Category        VehicleCategory    `json:"category"`
	DailyRate       float64            `json:"daily_rate"`
	State           VehicleState       `json:"state"`
	Year            int                `json:"year"`
	Plate           string             `json:"plate"`
	Mileage         float64            `json:"mileage"`
	MaintenanceLog  []MaintenanceEntry `json:"maintenance_log,omitempty"`
	LastMaintenance *time.Time         `json:"last_maintenance,omitempty"`

	Car        *CarSpec        `json:"car,omitempty"`
	Truck      *TruckSpec      `json:"truck,omitempty"`
	Motorcycle *MotorcycleSpec `json:"motorcycle,omitempty"`
}

var (
	ErrNegativeRate     = errors.New("daily rate cannot be negative")
	ErrMileageDecrease  = errors.New("mileage cannot decrease")
	ErrInvalidDuration  = errors.New("rental duration must be positive")
	ErrMissingVariant   = errors.New("vehicle carries no variant payload")
	ErrVehicleNotRented = errors.New("vehicle is not rented")
)

// NewID produces a short opaque identifier. Callers may pre-assign
// their own ids instead (e.g. when reloading from storage).
func NewID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

func newVehicle(id string, typ VehicleType, brand, model string, category VehicleCategory, dailyRate float64, year int, plate string, mileage float64) (*Vehicle, error) {
	if dailyRate < 0 {
		return nil, fmt.Errorf("%w (%.2f)", ErrNegativeRate, dailyRate)
	}
	if mileage < 0 {
		return nil, fmt.Errorf("%w (%.1f)", ErrMileageDecrease, mileage)
	}
	if id == "" {
		id = NewID()
	}
	return &Vehicle{
		ID:        id,
		Type:      typ,
		Brand:     brand,
		Model:     model,
		Category:  category,
		DailyRate: dailyRate,
		State:     VehicleAvailable,
		Year:      year,
		Plate:     plate,
		Mileage:   mileage,
	}, nil
}

func NewCar(id, brand, model string, category VehicleCategory, dailyRate float64, year int, plate string, mileage float64, spec CarSpec) (*Vehicle, error) {
	v, err := newVehicle(id, VehicleCar, brand, model, category, dailyRate, year, plate, mileage)
	if err != nil {
		return nil, err
	}
	v.Car = &spec
	return v, nil
}

func NewTruck(id, brand, model string, category VehicleCategory, dailyRate float64, year int, plate string, mileage float64, spec TruckSpec) (*Vehicle, error) {
	v, err := newVehicle(id, VehicleTruck, brand, model, category, dailyRate, year, plate, mileage)
	if err != nil {
		return nil, err
	}
	v.Truck = &spec
	return v, nil
}

func NewMotorcycle(id, brand, model string, category VehicleCategory, dailyRate float64, year int, plate string, mileage float64, spec MotorcycleSpec) (*Vehicle, error) {
	v, err := newVehicle(id, VehicleMotorcycle, brand, model, category, dailyRate, year, plate, mileage)
	if err != nil {
		return nil, err
	}
	v.Motorcycle = &spec
	return v, nil
}

func (v *Vehicle) SetDailyRate(rate float64) error {
	if rate < 0 {
		return fmt.Errorf("%w (%.2f)", ErrNegativeRate, rate)
	}
	v.DailyRate = rate
	return nil
}

// SetMileage enforces a monotonically non-decreasing odometer.
func (v *Vehicle) SetMileage(mileage float64) error {
	if mileage < v.Mileage {
		return fmt.Errorf("%w (%.1f -> %.1f)", ErrMileageDecrease, v.Mileage, mileage)
	}
	v.Mileage = mileage
	return nil
}

func (v *Vehicle) IsAvailable() bool {
	return v.State == VehicleAvailable
}

// Rent marks the vehicle rented. Returns false if it is not available.
func (v *Vehicle) Rent() bool {
	if !v.IsAvailable() {
		return false
	}
	v.State = VehicleRented
	return true
}

// Return puts a rented vehicle back in service, updating the odometer
// when a reading is supplied.
func (v *Vehicle) Return(endMileage *float64) error {
	if v.State != VehicleRented {
		return ErrVehicleNotRented
	}
	if endMileage != nil {
		if err := v.SetMileage(*endMileage); err != nil {
			return err
		}
	}
	v.State = VehicleAvailable
	return nil
}

// SendToMaintenance is legal from any non-rented state.
func (v *Vehicle) SendToMaintenance(description string, today time.Time) bool {
	if v.State == VehicleRented {
		return false
	}
	v.State = VehicleMaintenance
	v.MaintenanceLog = append(v.MaintenanceLog, MaintenanceEntry{
		Date:        today,
		Kind:        MaintenanceStarted,
		Description: description,
		Mileage:     v.Mileage,
	})
	return true
}

func (v *Vehicle) CompleteMaintenance(description string, cost float64, today time.Time) bool {
	if v.State != VehicleMaintenance {
		return false
	}
	v.State = VehicleAvailable
	d := today
	v.LastMaintenance = &d
	v.MaintenanceLog = append(v.MaintenanceLog, MaintenanceEntry{
		Date:        today,
		Kind:        MaintenanceCompleted,
		Description: description,
		Cost:        cost,
		Mileage:     v.Mileage,
	})
	return true
}

// NeedsMaintenance reports whether the distance since the last
// completed maintenance (or since zero, if none) reached the
// threshold. A non-positive threshold takes the default.
func (v *Vehicle) NeedsMaintenance(threshold float64) bool {
	if threshold <= 0 {
		threshold = MaintenanceKmThreshold
	}
	lastMileage := 0.0
	for i := len(v.MaintenanceLog) - 1; i >= 0; i-- {
		if v.MaintenanceLog[i].Kind == MaintenanceCompleted {
			lastMileage = v.MaintenanceLog[i].Mileage
			break
		}
	}
	return v.Mileage-lastMileage >= threshold
}

// RequiredLicense returns the license category code a renter must hold.
func (v *Vehicle) RequiredLicense() string {
	switch v.Type {
	case VehicleTruck:
		switch {
		case v.Truck != nil && v.Truck.MaxWeight > TruckMediumWeightLimit:
			return LicenseTruckHeavy
		case v.Truck != nil && v.Truck.MaxWeight > TruckLightWeightLimit:
			return LicenseTruckMedium
		default:
			return LicenseTruckLight
		}
	case VehicleMotorcycle:
		if v.Motorcycle != nil && v.Motorcycle.EngineSize > MotorcycleSmallEngineLimit {
			return LicenseMotorcycleLarge
		}
		return LicenseMotorcycleSmall
	default:
		return LicenseCar
	}
}

// MinimumDriverAge returns the minimum renter age for this vehicle.
func (v *Vehicle) MinimumDriverAge() int {
	switch v.Type {
	case VehicleTruck:
		switch {
		case v.Truck != nil && v.Truck.MaxWeight > TruckMediumWeightLimit:
			return MinAgeTruckHeavy
		case v.Truck != nil && v.Truck.MaxWeight > TruckLightWeightLimit:
			return MinAgeTruckMedium
		default:
			return MinAgeTruckLight
		}
	case VehicleMotorcycle:
		if v.Motorcycle != nil && v.Motorcycle.EngineSize > MotorcycleSmallEngineLimit {
			return MinAgeMotorcycleLarge
		}
		return MinAgeMotorcycleSmall
	default:
		switch v.Category {
		case CategoryLuxury:
			return MinAgeLuxury
		case CategorySport:
			return MinAgeSport
		case CategoryPremium:
			return MinAgePremium
		default:
			return MinAgeEconomy
		}
	}
}

// RentalCost quotes the cost of renting this vehicle for the given
// number of days: daily rate times days, with the long-rental discount
// tiers, plus the insurance supplement for motorcycles.
func (v *Vehicle) RentalCost(days int) (float64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("%w (%d)", ErrInvalidDuration, days)
	}
	cost := v.DailyRate * float64(days) * (1 - DurationDiscount(days))
	if v.Type == VehicleMotorcycle {
		cost *= MotorcycleInsuranceSupplement
	}
	return cost, nil
}

// Label is the human-readable one-liner used in reports.
func (v *Vehicle) Label() string {
	return fmt.Sprintf("%s %s %s (%d) - %s", v.Type, v.Brand, v.Model, v.Year, v.Plate)
}
