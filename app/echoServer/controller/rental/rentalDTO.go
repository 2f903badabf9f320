package rental

import (
	"carrental/model"
	"carrental/util/datex"
)

type CreateRentalReq struct {
	CustomerID string `json:"customer_id" validate:"required"`
	VehicleID  string `json:"vehicle_id" validate:"required"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type CompleteRentalReq struct {
	ReturnDate string   `json:"return_date" validate:"omitempty,datetime=2006-01-02"`
	EndMileage *float64 `json:"end_mileage" validate:"omitempty,gte=0"`
}

type ExtendRentalReq struct {
	EndDate string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type NotesReq struct {
	Notes string `json:"notes"`
}

// RentalResp carries the stored booking plus every cost figure the
// desk needs, recomputed at render time.
type RentalResp struct {
	ID              string   `json:"id"`
	CustomerID      string   `json:"customer_id"`
	VehicleID       string   `json:"vehicle_id"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	ReturnDate      string   `json:"return_date,omitempty"`
	Status          string   `json:"status"`
	DailyRate       float64  `json:"daily_rate"`
	StartMileage    float64  `json:"start_mileage"`
	EndMileage      *float64 `json:"end_mileage,omitempty"`
	PlannedDuration int      `json:"planned_duration"`
	ActualDuration  *int     `json:"actual_duration,omitempty"`
	Distance        *float64 `json:"distance_traveled,omitempty"`
	DaysLate        int      `json:"days_late"`
	Discount        float64  `json:"discount"`
	Penalty         float64  `json:"penalty"`
	BaseCost        float64  `json:"base_cost"`
	TotalCost       float64  `json:"total_cost"`
	Notes           string   `json:"notes,omitempty"`
}

func toResp(r *model.Rental) RentalResp {
	resp := RentalResp{
		ID:              r.ID,
		CustomerID:      r.CustomerID,
		VehicleID:       r.VehicleID,
		StartDate:       datex.Format(r.StartDate),
		EndDate:         datex.Format(r.EndDate),
		Status:          string(r.Status),
		DailyRate:       r.DailyRate,
		StartMileage:    r.StartMileage,
		EndMileage:      r.EndMileage,
		PlannedDuration: r.PlannedDuration(),
		DaysLate:        r.DaysLate(),
		Discount:        r.Discount,
		Penalty:         r.Penalty,
		BaseCost:        r.BaseCost(),
		TotalCost:       r.TotalCost(),
		Notes:           r.Notes,
	}
	if r.ReturnDate != nil {
		resp.ReturnDate = datex.Format(*r.ReturnDate)
	}
	if d, ok := r.ActualDuration(); ok {
		resp.ActualDuration = &d
	}
	if km, ok := r.DistanceTraveled(); ok {
		resp.Distance = &km
	}
	return resp
}

func toRespList(rs []*model.Rental) []RentalResp {
	out := make([]RentalResp, 0, len(rs))
	for _, r := range rs {
		out = append(out, toResp(r))
	}
	return out
}
