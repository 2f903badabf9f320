// Package fleet holds the in-memory store for the three collections:
// vehicles, customers and rentals, each keyed by id. Relationships
// between them are referential; the store never cascades.
//
// The store does no locking. Serialization of access is the job of the
// service embedding it.
package fleet

import (
	"sort"

	"carrental/model"
)

type Store struct {
	vehicles  map[string]*model.Vehicle
	customers map[string]*model.Customer
	rentals   map[string]*model.Rental
}

func NewStore() *Store {
	return &Store{
		vehicles:  make(map[string]*model.Vehicle),
		customers: make(map[string]*model.Customer),
		rentals:   make(map[string]*model.Rental),
	}
}

// --- vehicles ---

func (s *Store) Vehicle(id string) (*model.Vehicle, bool) {
	v, ok := s.vehicles[id]
	return v, ok
}

func (s *Store) PutVehicle(v *model.Vehicle) {
	s.vehicles[v.ID] = v
}

func (s *Store) DeleteVehicle(id string) {
	delete(s.vehicles, id)
}

func (s *Store) Vehicles() []*model.Vehicle {
	out := make([]*model.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) VehicleCount() int { return len(s.vehicles) }

// --- customers ---

func (s *Store) Customer(id string) (*model.Customer, bool) {
	c, ok := s.customers[id]
	return c, ok
}

func (s *Store) PutCustomer(c *model.Customer) {
	s.customers[c.ID] = c
}

func (s *Store) DeleteCustomer(id string) {
	delete(s.customers, id)
}

func (s *Store) Customers() []*model.Customer {
	out := make([]*model.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) CustomerCount() int { return len(s.customers) }

// --- rentals ---

func (s *Store) Rental(id string) (*model.Rental, bool) {
	r, ok := s.rentals[id]
	return r, ok
}

func (s *Store) PutRental(r *model.Rental) {
	s.rentals[r.ID] = r
}

func (s *Store) Rentals() []*model.Rental {
	out := make([]*model.Rental, 0, len(s.rentals))
	for _, r := range s.rentals {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) RentalCount() int { return len(s.rentals) }

func (s *Store) RentalsForVehicle(vehicleID string) []*model.Rental {
	var out []*model.Rental
	for _, r := range s.Rentals() {
		if r.VehicleID == vehicleID {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) RentalsForCustomer(customerID string) []*model.Rental {
	var out []*model.Rental
	for _, r := range s.Rentals() {
		if r.CustomerID == customerID {
			out = append(out, r)
		}
	}
	return out
}

// Replace swaps in a full state, used when reloading a snapshot.
func (s *Store) Replace(vehicles []*model.Vehicle, customers []*model.Customer, rentals []*model.Rental) {
	s.vehicles = make(map[string]*model.Vehicle, len(vehicles))
	for _, v := range vehicles {
		s.vehicles[v.ID] = v
	}
	s.customers = make(map[string]*model.Customer, len(customers))
	for _, c := range customers {
		s.customers[c.ID] = c
	}
	s.rentals = make(map[string]*model.Rental, len(rentals))
	for _, r := range rentals {
		s.rentals[r.ID] = r
	}
}
