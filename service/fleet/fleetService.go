// Package fleet is the scheduler over the vehicle catalog, the
// customer registry and the bookings: it owns the three collections
// through the store and runs every create/start/complete/cancel/extend
// decision.
//
// The domain logic itself is single-threaded and non-reentrant; the
// service mutex is the serialization boundary the HTTP layer relies
// on, so at most one operation is in flight at a time.
package fleet

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"carrental/model"
	fleetrepo "carrental/repository/fleet"
	"carrental/util/datex"
)

type Service struct {
	mu    sync.Mutex
	store *fleetrepo.Store
	now   func() time.Time
}

func New(store *fleetrepo.Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) today() time.Time {
	return datex.Day(s.now())
}

// --- vehicle catalog ---

func (s *Service) AddVehicle(v *model.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.Vehicle(v.ID); ok {
		return makeErr(ErrVehicleExists, fmt.Sprintf("vehicle %q already exists", v.ID))
	}
	s.store.PutVehicle(v)
	return nil
}

// RemoveVehicle refuses while the vehicle is out on a rental.
func (s *Service) RemoveVehicle(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.store.Vehicle(id)
	if !ok {
		return makeErr(ErrVehicleNotFound, fmt.Sprintf("vehicle %q not found", id))
	}
	if v.State == model.VehicleRented {
		return makeErr(ErrVehicleRented, fmt.Sprintf("vehicle %q is rented", id))
	}
	s.store.DeleteVehicle(id)
	return nil
}

func (s *Service) Vehicle(id string) (*model.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.store.Vehicle(id)
	if !ok {
		return nil, makeErr(ErrVehicleNotFound, fmt.Sprintf("vehicle %q not found", id))
	}
	return v, nil
}

func (s *Service) Vehicles() []*model.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Vehicles()
}

// AvailableVehicles lists vehicles in AVAILABLE state matching the
// optional type and category filters. When a date window is given,
// vehicles with any live booking intersecting it are excluded too.
func (s *Service) AvailableVehicles(typ model.VehicleType, category model.VehicleCategory, start, end time.Time) []*model.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.availableVehicles(typ, category, start, end)
}

func (s *Service) availableVehicles(typ model.VehicleType, category model.VehicleCategory, start, end time.Time) []*model.Vehicle {
	var out []*model.Vehicle
	for _, v := range s.store.Vehicles() {
		if !v.IsAvailable() {
			continue
		}
		if typ != "" && v.Type != typ {
			continue
		}
		if category != "" && v.Category != category {
			continue
		}
		if !start.IsZero() && !end.IsZero() && !s.vehicleFreeForWindow(v.ID, start, end) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// vehicleFreeForWindow checks the requested window against every
// non-cancelled, non-completed booking of the vehicle. Intervals are
// closed on both ends: sharing a boundary date is a conflict, so a
// same-day handover is never treated as safe.
func (s *Service) vehicleFreeForWindow(vehicleID string, start, end time.Time) bool {
	start, end = datex.Day(start), datex.Day(end)
	for _, r := range s.store.RentalsForVehicle(vehicleID) {
		if r.Status == model.RentalCancelled || r.Status == model.RentalCompleted {
			continue
		}
		if !(end.Before(r.StartDate) || start.After(r.EndDate)) {
			return false
		}
	}
	return true
}

type VehicleSearch struct {
	Brand        string
	Model        string
	MaxDailyRate float64
	MinYear      int
}

// SearchVehicles matches brand/model substrings case-insensitively and
// filters on maximum rate and minimum year when set.
func (s *Service) SearchVehicles(q VehicleSearch) []*model.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.Vehicle
	for _, v := range s.store.Vehicles() {
		if q.Brand != "" && !strings.Contains(strings.ToLower(v.Brand), strings.ToLower(q.Brand)) {
			continue
		}
		if q.Model != "" && !strings.Contains(strings.ToLower(v.Model), strings.ToLower(q.Model)) {
			continue
		}
		if q.MaxDailyRate > 0 && v.DailyRate > q.MaxDailyRate {
			continue
		}
		if q.MinYear > 0 && v.Year < q.MinYear {
			continue
		}
		out = append(out, v)
	}
	return out
}

// UpdateVehicleRate changes the catalog rate. Existing bookings keep
// the rate frozen at their creation.
func (s *Service) UpdateVehicleRate(id string, rate float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.store.Vehicle(id)
	if !ok {
		return makeErr(ErrVehicleNotFound, fmt.Sprintf("vehicle %q not found", id))
	}
	if err := v.SetDailyRate(rate); err != nil {
		return makeErr(ErrInvalidRate, err.Error())
	}
	return nil
}

func (s *Service) SendToMaintenance(id, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.store.Vehicle(id)
	if !ok {
		return makeErr(ErrVehicleNotFound, fmt.Sprintf("vehicle %q not found", id))
	}
	if !v.SendToMaintenance(description, s.today()) {
		return makeErr(ErrVehicleRented, fmt.Sprintf("vehicle %q is rented", id))
	}
	return nil
}

func (s *Service) CompleteMaintenance(id, description string, cost float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.store.Vehicle(id)
	if !ok {
		return makeErr(ErrVehicleNotFound, fmt.Sprintf("vehicle %q not found", id))
	}
	if !v.CompleteMaintenance(description, cost, s.today()) {
		return makeErr(ErrInvalidStatus, fmt.Sprintf("vehicle %q is not in maintenance", id))
	}
	return nil
}

// --- customer registry ---

func (s *Service) RegisterCustomer(c *model.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.Customer(c.ID); ok {
		return makeErr(ErrCustomerExists, fmt.Sprintf("customer %q already exists", c.ID))
	}
	s.store.PutCustomer(c)
	return nil
}

// RemoveCustomer refuses while the customer has active bookings.
func (s *Service) RemoveCustomer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.store.Customer(id)
	if !ok {
		return makeErr(ErrCustomerNotFound, fmt.Sprintf("customer %q not found", id))
	}
	if len(c.ActiveRentals) > 0 {
		return makeErr(ErrCustomerHasRentals, fmt.Sprintf("customer %q has active rentals", id))
	}
	s.store.DeleteCustomer(id)
	return nil
}

func (s *Service) Customer(id string) (*model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.store.Customer(id)
	if !ok {
		return nil, makeErr(ErrCustomerNotFound, fmt.Sprintf("customer %q not found", id))
	}
	return c, nil
}

func (s *Service) Customers() []*model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Customers()
}

// SearchCustomers matches a name substring against first or last name,
// and a contact substring against email or phone.
func (s *Service) SearchCustomers(name, contact string) []*model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, contact = strings.ToLower(name), strings.ToLower(contact)
	var out []*model.Customer
	for _, c := range s.store.Customers() {
		if name != "" &&
			!strings.Contains(strings.ToLower(c.FirstName), name) &&
			!strings.Contains(strings.ToLower(c.LastName), name) {
			continue
		}
		if contact != "" &&
			!strings.Contains(strings.ToLower(c.Email), contact) &&
			!strings.Contains(strings.ToLower(c.Phone), contact) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s *Service) BlockCustomer(id, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.store.Customer(id)
	if !ok {
		return makeErr(ErrCustomerNotFound, fmt.Sprintf("customer %q not found", id))
	}
	c.Block(reason)
	return nil
}

func (s *Service) UnblockCustomer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.store.Customer(id)
	if !ok {
		return makeErr(ErrCustomerNotFound, fmt.Sprintf("customer %q not found", id))
	}
	c.Unblock()
	return nil
}

// CheckEligibility runs the gate a customer must pass before booking a
// vehicle, short-circuiting on the first failure: standing, age,
// license held, license seniority — in that order.
func CheckEligibility(c *model.Customer, v *model.Vehicle, today time.Time) error {
	if c.Blocked {
		return makeErr(ErrCustomerBlocked, fmt.Sprintf("customer is blocked: %s", c.BlockedReason))
	}
	if minAge := v.MinimumDriverAge(); c.Age(today) < minAge {
		return makeErr(ErrAgeTooYoung, fmt.Sprintf("customer is %d, minimum age is %d", c.Age(today), minAge))
	}
	if lic := v.RequiredLicense(); !c.HasLicense(lic) {
		return makeErr(ErrLicenseNotHeld, fmt.Sprintf("license %s required", lic))
	}
	if c.YearsOfLicense(today) < model.MinLicenseYears {
		return makeErr(ErrLicenseTooRecent, fmt.Sprintf("license must be held for at least %d year(s)", model.MinLicenseYears))
	}
	return nil
}

// --- booking lifecycle ---

// CreateBooking validates the customer, the vehicle, the window and
// the eligibility gate, then books. Either the booking plus both
// cross-references exist afterwards, or nothing was created. A booking
// starting today is activated on the spot.
func (s *Service) CreateBooking(customerID, vehicleID string, start, end time.Time) (*model.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.store.Customer(customerID)
	if !ok {
		return nil, makeErr(ErrCustomerNotFound, fmt.Sprintf("customer %q not found", customerID))
	}
	v, ok := s.store.Vehicle(vehicleID)
	if !ok {
		return nil, makeErr(ErrVehicleNotFound, fmt.Sprintf("vehicle %q not found", vehicleID))
	}

	today := s.today()
	start, end = datex.Day(start), datex.Day(end)
	if end.Before(start) {
		return nil, makeErr(ErrInvalidDates, "end date cannot be before start date")
	}
	if start.Before(today) {
		return nil, makeErr(ErrInvalidDates, "start date cannot be in the past")
	}

	if err := CheckEligibility(c, v, today); err != nil {
		return nil, err
	}
	if !s.vehicleFreeForWindow(vehicleID, start, end) {
		return nil, makeErr(ErrVehicleNotAvailable, fmt.Sprintf("vehicle %q is not available for this period", vehicleID))
	}

	r, err := model.NewRental("", customerID, vehicleID, start, end, v.DailyRate, v.Mileage)
	if err != nil {
		return nil, err
	}
	r.ApplyDiscount(c.LoyaltyDiscount())

	s.store.PutRental(r)
	c.AddRental(r.ID)

	// Same-day bookings go straight to the road.
	if start.Equal(today) && v.Rent() {
		r.Start(today)
	}
	return r, nil
}

// StartBooking hands the vehicle over for a RESERVED booking whose
// start date has arrived.
func (s *Service) StartBooking(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.store.Rental(id)
	if !ok {
		return makeErr(ErrRentalNotFound, fmt.Sprintf("rental %q not found", id))
	}
	if r.Status != model.RentalReserved {
		return makeErr(ErrInvalidStatus, fmt.Sprintf("rental %q is not reserved (%s)", id, r.Status))
	}
	v, ok := s.store.Vehicle(r.VehicleID)
	if !ok {
		return makeErr(ErrVehicleNotFound, fmt.Sprintf("vehicle %q not found", r.VehicleID))
	}
	if !v.IsAvailable() {
		return makeErr(ErrVehicleNotAvailable, fmt.Sprintf("vehicle %q is not available (%s)", v.ID, v.State))
	}
	if !r.Start(s.today()) {
		return makeErr(ErrInvalidDates, fmt.Sprintf("rental %q has not reached its start date", id))
	}
	v.Rent()
	return nil
}

// CompleteBooking closes the rental, returns the vehicle to the fleet
// (updating its odometer when a reading is given) and moves the
// booking out of the customer's active set. A zero returnDate means
// today. Returns the total cost.
func (s *Service) CompleteBooking(id string, returnDate time.Time, endMileage *float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.store.Rental(id)
	if !ok {
		return 0, makeErr(ErrRentalNotFound, fmt.Sprintf("rental %q not found", id))
	}
	v, ok := s.store.Vehicle(r.VehicleID)
	if !ok {
		return 0, makeErr(ErrVehicleNotFound, fmt.Sprintf("vehicle %q not found", r.VehicleID))
	}
	c, ok := s.store.Customer(r.CustomerID)
	if !ok {
		return 0, makeErr(ErrCustomerNotFound, fmt.Sprintf("customer %q not found", r.CustomerID))
	}
	if endMileage != nil && *endMileage < v.Mileage {
		return 0, makeErr(ErrInvalidMileage, fmt.Sprintf("mileage cannot decrease (%.1f -> %.1f)", v.Mileage, *endMileage))
	}

	if returnDate.IsZero() {
		returnDate = s.today()
	}
	total, err := r.Complete(returnDate, endMileage)
	if err != nil {
		return 0, makeErr(ErrInvalidStatus, err.Error())
	}

	// Return ignores vehicles never handed over (same-day finishes of
	// a booking that stayed RESERVED).
	_ = v.Return(endMileage)
	c.CompleteRental(id)
	return total, nil
}

// CancelBooking charges the cancellation fee, frees the vehicle if it
// had been handed over for this booking and updates the customer's
// active set. Returns the fee.
func (s *Service) CancelBooking(id string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.store.Rental(id)
	if !ok {
		return 0, makeErr(ErrRentalNotFound, fmt.Sprintf("rental %q not found", id))
	}
	wasActive := r.Status == model.RentalActive

	fee, err := r.Cancel(s.today())
	if err != nil {
		return 0, makeErr(ErrInvalidStatus, err.Error())
	}

	if v, ok := s.store.Vehicle(r.VehicleID); ok && wasActive && v.State == model.VehicleRented {
		_ = v.Return(nil)
	}
	if c, ok := s.store.Customer(r.CustomerID); ok {
		c.CompleteRental(id)
	}
	return fee, nil
}

// ExtendBooking re-runs the overlap test over the delta window only
// (the original window is already held by this booking).
func (s *Service) ExtendBooking(id string, newEnd time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.store.Rental(id)
	if !ok {
		return makeErr(ErrRentalNotFound, fmt.Sprintf("rental %q not found", id))
	}
	if r.Status != model.RentalActive && r.Status != model.RentalReserved {
		return makeErr(ErrInvalidStatus, fmt.Sprintf("rental %q is not live (%s)", id, r.Status))
	}
	newEnd = datex.Day(newEnd)
	if !newEnd.After(r.EndDate) {
		return makeErr(ErrInvalidDates, "new end date must be later than the current end date")
	}
	if !s.vehicleFreeForWindow(r.VehicleID, r.EndDate.AddDate(0, 0, 1), newEnd) {
		return makeErr(ErrVehicleNotAvailable, fmt.Sprintf("vehicle %q is not available for the extension period", r.VehicleID))
	}
	r.Extend(newEnd)
	return nil
}

func (s *Service) Rental(id string) (*model.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.store.Rental(id)
	if !ok {
		return nil, makeErr(ErrRentalNotFound, fmt.Sprintf("rental %q not found", id))
	}
	return r, nil
}

// SetRentalNotes updates the free-text notes. Notes stay editable even
// after the booking is terminal.
func (s *Service) SetRentalNotes(id, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.store.Rental(id)
	if !ok {
		return makeErr(ErrRentalNotFound, fmt.Sprintf("rental %q not found", id))
	}
	r.Notes = notes
	return nil
}

func (s *Service) Rentals() []*model.Rental {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Rentals()
}

func (s *Service) ActiveRentals() []*model.Rental {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeRentals()
}

func (s *Service) activeRentals() []*model.Rental {
	var out []*model.Rental
	for _, r := range s.store.Rentals() {
		if r.Status == model.RentalActive {
			out = append(out, r)
		}
	}
	return out
}

func (s *Service) OverdueRentals() []*model.Rental {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overdueRentals()
}

func (s *Service) overdueRentals() []*model.Rental {
	today := s.today()
	var out []*model.Rental
	for _, r := range s.store.Rentals() {
		if r.IsOverdue(today) {
			out = append(out, r)
		}
	}
	return out
}

func (s *Service) CustomerRentals(customerID string) []*model.Rental {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.RentalsForCustomer(customerID)
}

func (s *Service) VehicleRentals(vehicleID string) []*model.Rental {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.RentalsForVehicle(vehicleID)
}

// --- sweep & persistence hooks ---

// PromoteDueBookings activates every RESERVED booking whose start date
// has arrived, when its vehicle is free to go. Meant to be invoked
// periodically by the embedding caller. Returns how many were started.
func (s *Service) PromoteDueBookings() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	started := 0
	for _, r := range s.store.Rentals() {
		if r.Status != model.RentalReserved || r.StartDate.After(today) {
			continue
		}
		v, ok := s.store.Vehicle(r.VehicleID)
		if !ok || !v.IsAvailable() {
			continue
		}
		v.Rent()
		r.Start(today)
		started++
	}
	return started
}

// Export copies out the three collections for the persistence layer.
func (s *Service) Export() ([]*model.Vehicle, []*model.Customer, []*model.Rental) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Vehicles(), s.store.Customers(), s.store.Rentals()
}

// Import replaces the full state, used when loading a snapshot at
// startup.
func (s *Service) Import(vehicles []*model.Vehicle, customers []*model.Customer, rentals []*model.Rental) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Replace(vehicles, customers, rentals)
}
