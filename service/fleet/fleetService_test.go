package fleet

import (
	"testing"
	"time"

	"carrental/model"
	fleetrepo "carrental/repository/fleet"
	"carrental/util/datex"

	"github.com/stretchr/testify/require"
)

func testService(today time.Time) *Service {
	s := New(fleetrepo.NewStore())
	s.now = func() time.Time { return today }
	return s
}

func seedCar(t *testing.T, s *Service, id string) *model.Vehicle {
	t.Helper()
	v, err := model.NewCar(id, "Renault", "Clio", model.CategoryEconomy, 50, 2021, "AB-123-CD", 15000,
		model.CarSpec{Doors: 5, Seats: 5, FuelType: "essence", Transmission: "manuelle"})
	require.NoError(t, err)
	require.NoError(t, s.AddVehicle(v))
	return v
}

func seedCustomer(t *testing.T, s *Service, id string) *model.Customer {
	t.Helper()
	c := model.NewCustomer(id, "Marie", "Dupont",
		datex.NewDate(1990, 4, 2), "123456789",
		[]string{"B"}, datex.NewDate(2010, 4, 2),
		"marie.dupont@example.com", "0601020304", "31000 Toulouse")
	require.NoError(t, s.RegisterCustomer(c))
	return c
}

func TestCreateBooking_Reserved(t *testing.T) {
	s := testService(datex.NewDate(2026, 1, 1))
	v := seedCar(t, s, "CAR1")
	c := seedCustomer(t, s, "CUST1")

	r, err := s.CreateBooking("CUST1", "CAR1", datex.NewDate(2026, 1, 5), datex.NewDate(2026, 1, 9))
	require.NoError(t, err)
	require.Equal(t, model.RentalReserved, r.Status)
	require.Equal(t, model.VehicleAvailable, v.State)
	require.Equal(t, []string{r.ID}, c.ActiveRentals)

	// the rate is frozen at creation
	require.NoError(t, s.UpdateVehicleRate("CAR1", 80))
	require.InDelta(t, 50, r.DailyRate, 1e-9)
	require.InDelta(t, 250, r.BaseCost(), 1e-9)
}

func TestCreateBooking_SameDayActivates(t *testing.T) {
	s := testService(datex.NewDate(2026, 1, 1))
	v := seedCar(t, s, "CAR1")
	seedCustomer(t, s, "CUST1")

	r, err := s.CreateBooking("CUST1", "CAR1", datex.NewDate(2026, 1, 1), datex.NewDate(2026, 1, 3))
	require.NoError(t, err)
	require.Equal(t, model.RentalActive, r.Status)
	require.Equal(t, model.VehicleRented, v.State)
}

func TestCreateBooking_Rejections(t *testing.T) {
	day := func(d int) time.Time { return datex.NewDate(2026, 1, d) }

	cases := []struct {
		name       string
		setup      func(t *testing.T, s *Service)
		customerID string
		start, end time.Time
		code       ErrCode
	}{
		{
			name:       "unknown customer",
			customerID: "NOBODY",
			start:      day(5), end: day(9),
			code: ErrCustomerNotFound,
		},
		{
			name:       "end before start",
			customerID: "CUST1",
			start:      day(9), end: day(5),
			code: ErrInvalidDates,
		},
		{
			name:       "start in the past",
			customerID: "CUST1",
			start:      datex.NewDate(2025, 12, 28), end: day(5),
			code: ErrInvalidDates,
		},
		{
			name: "blocked customer",
			setup: func(t *testing.T, s *Service) {
				require.NoError(t, s.BlockCustomer("CUST1", "impayé"))
			},
			customerID: "CUST1",
			start:      day(5), end: day(9),
			code: ErrCustomerBlocked,
		},
		{
			name: "too young",
			setup: func(t *testing.T, s *Service) {
				c := model.NewCustomer("KID", "Théo", "Petit",
					datex.NewDate(2007, 6, 1), "987654321",
					[]string{"B"}, datex.NewDate(2024, 6, 1),
					"theo@example.com", "0605060708", "")
				require.NoError(t, s.RegisterCustomer(c))
			},
			customerID: "KID",
			start:      day(5), end: day(9),
			code: ErrAgeTooYoung,
		},
		{
			name: "license not held",
			setup: func(t *testing.T, s *Service) {
				c := model.NewCustomer("RIDER", "Luc", "Moto",
					datex.NewDate(1990, 1, 1), "111222333",
					[]string{"A"}, datex.NewDate(2010, 1, 1),
					"luc@example.com", "0601010101", "")
				require.NoError(t, s.RegisterCustomer(c))
			},
			customerID: "RIDER",
			start:      day(5), end: day(9),
			code: ErrLicenseNotHeld,
		},
		{
			name: "license too recent",
			setup: func(t *testing.T, s *Service) {
				c := model.NewCustomer("NOVICE", "Emma", "Neuve",
					datex.NewDate(1995, 1, 1), "444555666",
					[]string{"B"}, datex.NewDate(2025, 9, 1),
					"emma@example.com", "0602020202", "")
				require.NoError(t, s.RegisterCustomer(c))
			},
			customerID: "NOVICE",
			start:      day(5), end: day(9),
			code: ErrLicenseTooRecent,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := testService(day(1))
			seedCar(t, s, "CAR1")
			seedCustomer(t, s, "CUST1")
			if tc.setup != nil {
				tc.setup(t, s)
			}
			_, err := s.CreateBooking(tc.customerID, "CAR1", tc.start, tc.end)
			require.Error(t, err)
			require.Equal(t, tc.code, Code(err))
		})
	}
}

func TestCreateBooking_UnknownVehicle(t *testing.T) {
	s := testService(datex.NewDate(2026, 1, 1))
	seedCustomer(t, s, "CUST1")
	_, err := s.CreateBooking("CUST1", "GHOST", datex.NewDate(2026, 1, 5), datex.NewDate(2026, 1, 9))
	require.Equal(t, ErrVehicleNotFound, Code(err))
}

func TestCreateBooking_RejectionLeavesNothing(t *testing.T) {
	s := testService(datex.NewDate(2026, 1, 1))
	seedCar(t, s, "CAR1")
	c := seedCustomer(t, s, "CUST1")
	require.NoError(t, s.BlockCustomer("CUST1", "litige"))

	_, err := s.CreateBooking("CUST1", "CAR1", datex.NewDate(2026, 1, 5), datex.NewDate(2026, 1, 9))
	require.Error(t, err)
	require.Empty(t, s.Rentals())
	require.Empty(t, c.ActiveRentals)
	require.Empty(t, c.RentalHistory)
}

func TestCreateBooking_SharedBoundaryConflicts(t *testing.T) {
	s := testService(datex.NewDate(2026, 1, 1))
	seedCar(t, s, "CAR1")
	seedCustomer(t, s, "CUST1")

	_, err := s.CreateBooking("CUST1", "CAR1", datex.NewDate(2026, 1, 5), datex.NewDate(2026, 1, 10))
	require.NoError(t, err)

	// same end/start date is a conflict, no same-day handover
	_, err = s.CreateBooking("CUST1", "CAR1", datex.NewDate(2026, 1, 10), datex.NewDate(2026, 1, 15))
	require.Equal(t, ErrVehicleNotAvailable, Code(err))

	_, err = s.CreateBooking("CUST1", "CAR1", datex.NewDate(2026, 1, 11), datex.NewDate(2026, 1, 15))
	require.NoError(t, err)
}

func TestCreateBooking_CancelledWindowIsFree(t *testing.T) {
	s := testService(datex.NewDate(2026, 1, 1))
	seedCar(t, s, "CAR1")
	seedCustomer(t, s, "CUST1")

	r, err := s.CreateBooking("CUST1", "CAR1", datex.NewDate(2026, 1, 20), datex.NewDate(2026, 1, 25))
	require.NoError(t, err)
	_, err = s.CancelBooking(r.ID)
	require.NoError(t, err)

	_, err = s.CreateBooking("CUST1", "CAR1", datex.NewDate(2026, 1, 20), datex.NewDate(2026, 1, 25))
	require.NoError(t, err)
}

func TestCreateBooking_LoyaltyDiscount(t *testing.T) {
	s := testService(datex.NewDate(2026, 1, 1))
	seedCar(t, s, "CAR1")
	c := seedCustomer(t, s, "CUST1")
	c.RentalHistory = []string{"R1", "R2", "R3", "R4", "R5"}

	r, err := s.CreateBooking("CUST1", "CAR1", datex.NewDate(2026, 1, 5), datex.NewDate(2026, 1, 9))
	require.NoError(t, err)
	require.InDelta(t, 0.05, r.Discount, 1e-9)
	require.InDelta(t, 237.5, r.TotalCost(), 1e-9)
}

func TestStartBooking(t *testing.T) {
	s := testService(datex.NewDate(2026, 1, 1))
	v := seedCar(t, s, "CAR1")
	seedCustomer(t, s, "CUST1")

	r, err := s.CreateBooking("CUST1", "CAR1", datex.NewDate(2026, 1, 5), datex.NewDate(2026, 1, 9))
	require.NoError(t, err)

	require.Equal(t, ErrInvalidDates, Code(s.StartBooking(r.ID)))
	require.Equal(t, model.RentalReserved, r.Status)

	s.now = func() time.Time { return datex.NewDate(2026, 1, 5) }
	require.NoError(t, s.StartBooking(r.ID))
	require.Equal(t, model.RentalActive, r.Status)
	require.Equal(t, model.VehicleRented, v.State)

	require.Equal(t, ErrInvalidStatus, Code(s.StartBooking(r.ID)))
	require.Equal(t, ErrRentalNotFound, Code(s.StartBooking("GHOST")))
}

func TestCompleteBooking(t *testing.T) {
	s := testService(datex.NewDate(2026, 1, 1))
	v := seedCar(t, s, "CAR1")
	c := seedCustomer(t, s, "CUST1")

	r, err := s.CreateBooking("CUST1", "CAR1", datex.NewDate(2026, 1, 1), datex.NewDate(2026, 1, 5))
	require.NoError(t, err)
	require.Equal(t, model.RentalActive, r.Status)

	lower := 14000.0
	_, err = s.CompleteBooking(r.ID, time.Time{}, &lower)
	require.Equal(t, ErrInvalidMileage, Code(err))
	require.Equal(t, model.RentalActive, r.Status)

	s.now = func() time.Time { return datex.NewDate(2026, 1, 5) }
	end := 15600.0
	total, err := s.CompleteBooking(r.ID, time.Time{}, &end)
	require.NoError(t, err)
	require.InDelta(t, 250, total, 1e-9) // 5 days at 50

	require.Equal(t, model.RentalCompleted, r.Status)
	require.Equal(t, model.VehicleAvailable, v.State)
	require.InDelta(t, 15600, v.Mileage, 1e-9)
	require.Empty(t, c.ActiveRentals)
	require.Len(t, c.RentalHistory, 1)
	require.NotNil(t, r.ReturnDate)
	require.Equal(t, datex.NewDate(2026, 1, 5), *r.ReturnDate)
}

func TestCompleteBooking_LateReturn(t *testing.T) {
	s := testService(datex.NewDate(2026, 1, 1))
	seedCar(t, s, "CAR1")
	seedCustomer(t, s, "CUST1")

	r, err := s.CreateBooking("CUST1", "CAR1", datex.NewDate(2026, 1, 1), datex.NewDate(2026, 1, 3))
	require.NoError(t, err)

	s.now = func() time.Time { return datex.NewDate(2026, 1, 5) }
	total, err := s.CompleteBooking(r.ID, time.Time{}, nil)
	require.NoError(t, err)
	// 5 realized days at 50, plus 2 late days at 50
	require.InDelta(t, 350, total, 1e-9)
	require.Equal(t, 2, r.DaysLate())
}

func TestCancelBooking_ReservedFeeBand(t *testing.T) {
	s := testService(datex.NewDate(2026, 1, 1))
	v := seedCar(t, s, "CAR1")
	c := seedCustomer(t, s, "CUST1")

	r, err := s.CreateBooking("CUST1", "CAR1", datex.NewDate(2026, 1, 5), datex.NewDate(2026, 1, 9))
	require.NoError(t, err)

	fee, err := s.CancelBooking(r.ID)
	require.NoError(t, err)
	require.InDelta(t, 50, fee, 1e-9) // four days out, 20% of 250
	require.Equal(t, model.RentalCancelled, r.Status)
	require.Equal(t, model.VehicleAvailable, v.State)
	require.Empty(t, c.ActiveRentals)

	_, err = s.CancelBooking(r.ID)
	require.Equal(t, ErrInvalidStatus, Code(err))
}

func TestCancelBooking_ActiveFreesVehicle(t *testing.T) {
	s := testService(datex.NewDate(2026, 1, 1))
	v := seedCar(t, s, "CAR1")
	seedCustomer(t, s, "CUST1")

	r, err := s.CreateBooking("CUST1", "CAR1", datex.NewDate(2026, 1, 1), datex.NewDate(2026, 1, 5))
	require.NoError(t, err)
	require.Equal(t, model.VehicleRented, v.State)

	fee, err := s.CancelBooking(r.ID)
	require.NoError(t, err)
	require.InDelta(t, 250, fee, 1e-9) // start already reached, full base cost
	require.Equal(t, model.VehicleAvailable, v.State)
}

func TestExtendBooking(t *testing.T) {
	s := testService(datex.NewDate(2026, 1, 1))
	seedCar(t, s, "CAR1")
	seedCustomer(t, s, "CUST1")

	a, err := s.CreateBooking("CUST1", "CAR1", datex.NewDate(2026, 1, 5), datex.NewDate(2026, 1, 9))
	require.NoError(t, err)
	_, err = s.CreateBooking("CUST1", "CAR1", datex.NewDate(2026, 1, 12), datex.NewDate(2026, 1, 14))
	require.NoError(t, err)

	require.Equal(t, ErrInvalidDates, Code(s.ExtendBooking(a.ID, datex.NewDate(2026, 1, 9))))

	require.NoError(t, s.ExtendBooking(a.ID, datex.NewDate(2026, 1, 10)))
	require.Equal(t, datex.NewDate(2026, 1, 10), a.EndDate)

	// the extension delta would collide with the next booking
	require.Equal(t, ErrVehicleNotAvailable, Code(s.ExtendBooking(a.ID, datex.NewDate(2026, 1, 12))))
	require.Equal(t, datex.NewDate(2026, 1, 10), a.EndDate)

	require.NoError(t, s.ExtendBooking(a.ID, datex.NewDate(2026, 1, 11)))
}

func TestRemoveVehicle_Guards(t *testing.T) {
	s := testService(datex.NewDate(2026, 1, 1))
	seedCar(t, s, "CAR1")
	seedCustomer(t, s, "CUST1")

	r, err := s.CreateBooking("CUST1", "CAR1", datex.NewDate(2026, 1, 1), datex.NewDate(2026, 1, 3))
	require.NoError(t, err)

	require.Equal(t, ErrVehicleRented, Code(s.RemoveVehicle("CAR1")))
	require.Equal(t, ErrCustomerHasRentals, Code(s.RemoveCustomer("CUST1")))

	_, err = s.CompleteBooking(r.ID, time.Time{}, nil)
	require.NoError(t, err)
	require.NoError(t, s.RemoveVehicle("CAR1"))
	require.NoError(t, s.RemoveCustomer("CUST1"))
}

func TestAvailableVehicles_WindowFilter(t *testing.T) {
	s := testService(datex.NewDate(2026, 1, 1))
	seedCar(t, s, "CAR1")
	seedCustomer(t, s, "CUST1")

	_, err := s.CreateBooking("CUST1", "CAR1", datex.NewDate(2026, 1, 5), datex.NewDate(2026, 1, 10))
	require.NoError(t, err)

	free := s.AvailableVehicles("", "", datex.NewDate(2026, 1, 10), datex.NewDate(2026, 1, 12))
	require.Empty(t, free)

	free = s.AvailableVehicles("", "", datex.NewDate(2026, 1, 11), datex.NewDate(2026, 1, 12))
	require.Len(t, free, 1)

	free = s.AvailableVehicles(model.VehicleTruck, "", time.Time{}, time.Time{})
	require.Empty(t, free)
}

func TestSearchVehicles(t *testing.T) {
	s := testService(datex.NewDate(2026, 1, 1))
	seedCar(t, s, "CAR1")

	require.Len(t, s.SearchVehicles(VehicleSearch{Brand: "ren"}), 1)
	require.Empty(t, s.SearchVehicles(VehicleSearch{Brand: "peugeot"}))
	require.Empty(t, s.SearchVehicles(VehicleSearch{MaxDailyRate: 40}))
	require.Len(t, s.SearchVehicles(VehicleSearch{Model: "CLIO", MinYear: 2020}), 1)
}

func TestSearchCustomers(t *testing.T) {
	s := testService(datex.NewDate(2026, 1, 1))
	seedCustomer(t, s, "CUST1")

	require.Len(t, s.SearchCustomers("dup", ""), 1)
	require.Len(t, s.SearchCustomers("", "0601"), 1)
	require.Empty(t, s.SearchCustomers("martin", ""))
}

func TestPromoteDueBookings(t *testing.T) {
	s := testService(datex.NewDate(2026, 1, 1))
	v1 := seedCar(t, s, "CAR1")
	v2, err := model.NewCar("CAR2", "Peugeot", "208", model.CategoryEconomy, 45, 2022, "EF-456-GH", 8000, model.CarSpec{})
	require.NoError(t, err)
	require.NoError(t, s.AddVehicle(v2))
	seedCustomer(t, s, "CUST1")

	due, err := s.CreateBooking("CUST1", "CAR1", datex.NewDate(2026, 1, 2), datex.NewDate(2026, 1, 5))
	require.NoError(t, err)
	future, err := s.CreateBooking("CUST1", "CAR2", datex.NewDate(2026, 1, 10), datex.NewDate(2026, 1, 12))
	require.NoError(t, err)

	require.Equal(t, 0, s.PromoteDueBookings())

	s.now = func() time.Time { return datex.NewDate(2026, 1, 2) }
	require.Equal(t, 1, s.PromoteDueBookings())
	require.Equal(t, model.RentalActive, due.Status)
	require.Equal(t, model.VehicleRented, v1.State)
	require.Equal(t, model.RentalReserved, future.Status)
	require.Equal(t, model.VehicleAvailable, v2.State)

	// idempotent once promoted
	require.Equal(t, 0, s.PromoteDueBookings())
}

func TestSetRentalNotes(t *testing.T) {
	s := testService(datex.NewDate(2026, 1, 1))
	seedCar(t, s, "CAR1")
	seedCustomer(t, s, "CUST1")

	r, err := s.CreateBooking("CUST1", "CAR1", datex.NewDate(2026, 1, 5), datex.NewDate(2026, 1, 9))
	require.NoError(t, err)
	require.NoError(t, s.SetRentalNotes(r.ID, "siège bébé demandé"))
	require.Equal(t, "siège bébé demandé", r.Notes)
	require.Equal(t, ErrRentalNotFound, Code(s.SetRentalNotes("GHOST", "x")))
}
