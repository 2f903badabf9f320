package fleet

import (
	"sort"
	"time"

	"carrental/model"
	"carrental/util/datex"
)

// Reports are pure folds over the three collections: they read under
// the same lock as everything else and never mutate.

type AvailabilityReport struct {
	GeneratedAt    time.Time      `json:"generated_at"`
	TotalAvailable int            `json:"total_available"`
	TotalFleet     int            `json:"total_fleet"`
	AvailableRate  float64        `json:"available_rate"`
	ByType         map[string]int `json:"by_type"`
	ByCategory     map[string]int `json:"by_category"`
	VehicleIDs     []string       `json:"vehicle_ids"`
}

func (s *Service) AvailabilityReport() AvailabilityReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	available := s.availableVehicles("", "", time.Time{}, time.Time{})
	rep := AvailabilityReport{
		GeneratedAt:    s.now().UTC(),
		TotalAvailable: len(available),
		TotalFleet:     s.store.VehicleCount(),
		ByType:         make(map[string]int),
		ByCategory:     make(map[string]int),
	}
	if rep.TotalFleet > 0 {
		rep.AvailableRate = float64(rep.TotalAvailable) / float64(rep.TotalFleet) * 100
	}
	for _, v := range available {
		rep.ByType[string(v.Type)]++
		rep.ByCategory[string(v.Category)]++
		rep.VehicleIDs = append(rep.VehicleIDs, v.ID)
	}
	return rep
}

type ActiveRentalRow struct {
	RentalID      string  `json:"rental_id"`
	CustomerName  string  `json:"customer_name"`
	VehicleLabel  string  `json:"vehicle_label"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	DaysRemaining int     `json:"days_remaining"`
	Overdue       bool    `json:"overdue"`
	TotalCost     float64 `json:"total_cost"`
}

type ActiveRentalsReport struct {
	GeneratedAt  time.Time         `json:"generated_at"`
	TotalActive  int               `json:"total_active"`
	TotalOverdue int               `json:"total_overdue"`
	Rentals      []ActiveRentalRow `json:"rentals"`
}

func (s *Service) ActiveRentalsReport() ActiveRentalsReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	rep := ActiveRentalsReport{
		GeneratedAt:  s.now().UTC(),
		TotalOverdue: len(s.overdueRentals()),
	}
	for _, r := range s.activeRentals() {
		row := ActiveRentalRow{
			RentalID:      r.ID,
			CustomerName:  "unknown",
			VehicleLabel:  "unknown",
			StartDate:     datex.Format(r.StartDate),
			EndDate:       datex.Format(r.EndDate),
			DaysRemaining: r.DaysRemaining(today),
			Overdue:       r.IsOverdue(today),
			TotalCost:     r.TotalCost(),
		}
		if c, ok := s.store.Customer(r.CustomerID); ok {
			row.CustomerName = c.FullName()
		}
		if v, ok := s.store.Vehicle(r.VehicleID); ok {
			row.VehicleLabel = v.Label()
		}
		rep.Rentals = append(rep.Rentals, row)
	}
	rep.TotalActive = len(rep.Rentals)
	return rep
}

type RevenueReport struct {
	GeneratedAt      time.Time          `json:"generated_at"`
	PeriodStart      string             `json:"period_start"`
	PeriodEnd        string             `json:"period_end"`
	TotalRevenue     float64            `json:"total_revenue"`
	TotalBaseRevenue float64            `json:"total_base_revenue"`
	TotalPenalties   float64            `json:"total_penalties"`
	CompletedCount   int                `json:"completed_count"`
	AverageValue     float64            `json:"average_value"`
	ByVehicleType    map[string]float64 `json:"by_vehicle_type"`
	ByMonth          map[string]float64 `json:"by_month"`
}

// RevenueReportFor sums total cost over bookings completed with a
// return date inside the period. Zero bounds default to the current
// month up to today.
func (s *Service) RevenueReportFor(start, end time.Time) RevenueReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	if start.IsZero() {
		start = datex.NewDate(today.Year(), today.Month(), 1)
	}
	if end.IsZero() {
		end = today
	}
	start, end = datex.Day(start), datex.Day(end)

	rep := RevenueReport{
		GeneratedAt:   s.now().UTC(),
		PeriodStart:   datex.Format(start),
		PeriodEnd:     datex.Format(end),
		ByVehicleType: make(map[string]float64),
		ByMonth:       make(map[string]float64),
	}
	for _, r := range s.store.Rentals() {
		if r.Status != model.RentalCompleted || r.ReturnDate == nil {
			continue
		}
		ret := *r.ReturnDate
		if ret.Before(start) || ret.After(end) {
			continue
		}
		total := r.TotalCost()
		rep.TotalRevenue += total
		rep.TotalBaseRevenue += r.BaseCost()
		rep.TotalPenalties += r.Penalty
		rep.CompletedCount++
		if v, ok := s.store.Vehicle(r.VehicleID); ok {
			rep.ByVehicleType[string(v.Type)] += total
		}
		rep.ByMonth[ret.Format("2006-01")] += total
	}
	if rep.CompletedCount > 0 {
		rep.AverageValue = rep.TotalRevenue / float64(rep.CompletedCount)
	}
	return rep
}

type TopCustomer struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Rentals    int    `json:"rentals"`
}

type StatisticsReport struct {
	GeneratedAt        time.Time      `json:"generated_at"`
	TotalVehicles      int            `json:"total_vehicles"`
	VehiclesByState    map[string]int `json:"vehicles_by_state"`
	VehiclesByType     map[string]int `json:"vehicles_by_type"`
	NeedingMaintenance []string       `json:"needing_maintenance"`
	UtilizationRate    float64        `json:"utilization_rate"`
	TotalCustomers     int            `json:"total_customers"`
	LoyalCustomers     int            `json:"loyal_customers"`
	BlockedCustomers   int            `json:"blocked_customers"`
	TopCustomers       []TopCustomer  `json:"top_customers"`
	TotalRentals       int            `json:"total_rentals"`
	RentalsByStatus    map[string]int `json:"rentals_by_status"`
	ActiveRentals      int            `json:"active_rentals"`
	OverdueRentals     int            `json:"overdue_rentals"`
}

func (s *Service) StatisticsReport() StatisticsReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	rep := StatisticsReport{
		GeneratedAt:     s.now().UTC(),
		TotalVehicles:   s.store.VehicleCount(),
		VehiclesByState: make(map[string]int),
		VehiclesByType:  make(map[string]int),
		TotalCustomers:  s.store.CustomerCount(),
		TotalRentals:    s.store.RentalCount(),
		RentalsByStatus: make(map[string]int),
	}

	for _, v := range s.store.Vehicles() {
		rep.VehiclesByState[string(v.State)]++
		rep.VehiclesByType[string(v.Type)]++
		if v.NeedsMaintenance(0) {
			rep.NeedingMaintenance = append(rep.NeedingMaintenance, v.ID)
		}
	}

	for _, c := range s.store.Customers() {
		if c.IsLoyal() {
			rep.LoyalCustomers++
		}
		if c.Blocked {
			rep.BlockedCustomers++
		}
		if n := c.TotalRentals(); n > 0 {
			rep.TopCustomers = append(rep.TopCustomers, TopCustomer{
				CustomerID: c.ID,
				Name:       c.FullName(),
				Rentals:    n,
			})
		}
	}
	sort.Slice(rep.TopCustomers, func(i, j int) bool {
		if rep.TopCustomers[i].Rentals != rep.TopCustomers[j].Rentals {
			return rep.TopCustomers[i].Rentals > rep.TopCustomers[j].Rentals
		}
		return rep.TopCustomers[i].CustomerID < rep.TopCustomers[j].CustomerID
	})
	if len(rep.TopCustomers) > 5 {
		rep.TopCustomers = rep.TopCustomers[:5]
	}

	for _, r := range s.store.Rentals() {
		rep.RentalsByStatus[string(r.Status)]++
	}
	rep.ActiveRentals = len(s.activeRentals())
	rep.OverdueRentals = len(s.overdueRentals())
	if rep.TotalVehicles > 0 {
		rep.UtilizationRate = float64(rep.ActiveRentals) / float64(rep.TotalVehicles) * 100
	}
	return rep
}

type Summary struct {
	TotalVehicles     int `json:"total_vehicles"`
	AvailableVehicles int `json:"available_vehicles"`
	TotalCustomers    int `json:"total_customers"`
	ActiveRentals     int `json:"active_rentals"`
	OverdueRentals    int `json:"overdue_rentals"`
}

func (s *Service) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Summary{
		TotalVehicles:     s.store.VehicleCount(),
		AvailableVehicles: len(s.availableVehicles("", "", time.Time{}, time.Time{})),
		TotalCustomers:    s.store.CustomerCount(),
		ActiveRentals:     len(s.activeRentals()),
		OverdueRentals:    len(s.overdueRentals()),
	}
}
