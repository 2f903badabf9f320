package vehicle

import (
	"carrental/model"
)

type CreateVehicleReq struct {
	ID        string  `json:"id"`
	Type      string  `json:"type" validate:"required,oneof=CAR TRUCK MOTORCYCLE"`
	Brand     string  `json:"brand" validate:"required"`
	Model     string  `json:"model" validate:"required"`
	Category  string  `json:"category" validate:"required,oneof=ECONOMY STANDARD PREMIUM LUXURY UTILITY SPORT"`
	DailyRate float64 `json:"daily_rate" validate:"gte=0"`
	Year      int     `json:"year" validate:"required,gte=1950"`
	Plate     string  `json:"plate" validate:"required"`
	Mileage   float64 `json:"mileage" validate:"gte=0"`

	// Variant payload, one of them depending on Type.
	Car        *model.CarSpec        `json:"car,omitempty"`
	Truck      *model.TruckSpec      `json:"truck,omitempty"`
	Motorcycle *model.MotorcycleSpec `json:"motorcycle,omitempty"`
}

type UpdateRateReq struct {
	DailyRate float64 `json:"daily_rate" validate:"gte=0"`
}

type MaintenanceReq struct {
	Description string  `json:"description" validate:"required"`
	Cost        float64 `json:"cost" validate:"gte=0"`
}

// VehicleResp is the display projection: the stored fields plus the
// derived capabilities.
type VehicleResp struct {
	ID              string  `json:"id"`
	Type            string  `json:"type"`
	Brand           string  `json:"brand"`
	Model           string  `json:"model"`
	Category        string  `json:"category"`
	DailyRate       float64 `json:"daily_rate"`
	State           string  `json:"state"`
	Year            int     `json:"year"`
	Plate           string  `json:"plate"`
	Mileage         float64 `json:"mileage"`
	RequiredLicense string  `json:"required_license"`
	MinimumAge      int     `json:"minimum_age"`
	NeedsService    bool    `json:"needs_maintenance"`

	Car        *model.CarSpec        `json:"car,omitempty"`
	Truck      *model.TruckSpec      `json:"truck,omitempty"`
	Motorcycle *model.MotorcycleSpec `json:"motorcycle,omitempty"`
}

func toResp(v *model.Vehicle) VehicleResp {
	return VehicleResp{
		ID:              v.ID,
		Type:            string(v.Type),
		Brand:           v.Brand,
		Model:           v.Model,
		Category:        string(v.Category),
		DailyRate:       v.DailyRate,
		State:           string(v.State),
		Year:            v.Year,
		Plate:           v.Plate,
		Mileage:         v.Mileage,
		RequiredLicense: v.RequiredLicense(),
		MinimumAge:      v.MinimumDriverAge(),
		NeedsService:    v.NeedsMaintenance(model.MaintenanceKmThreshold),
		Car:             v.Car,
		Truck:           v.Truck,
		Motorcycle:      v.Motorcycle,
	}
}

func toRespList(vs []*model.Vehicle) []VehicleResp {
	out := make([]VehicleResp, 0, len(vs))
	for _, v := range vs {
		out = append(out, toResp(v))
	}
	return out
}
