package vehicle

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"carrental/model"
	fleetsvc "carrental/service/fleet"
	"carrental/util/datex"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc *fleetsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func statusFor(code fleetsvc.ErrCode) int {
	switch code {
	case fleetsvc.ErrVehicleNotFound, fleetsvc.ErrCustomerNotFound, fleetsvc.ErrRentalNotFound:
		return http.StatusNotFound
	case fleetsvc.ErrVehicleExists, fleetsvc.ErrCustomerExists,
		fleetsvc.ErrVehicleRented, fleetsvc.ErrCustomerHasRentals,
		fleetsvc.ErrVehicleNotAvailable, fleetsvc.ErrInvalidStatus:
		return http.StatusConflict
	case fleetsvc.ErrCustomerBlocked, fleetsvc.ErrAgeTooYoung,
		fleetsvc.ErrLicenseNotHeld, fleetsvc.ErrLicenseTooRecent:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func rejectJSON(c echo.Context, err error) error {
	code := fleetsvc.Code(err)
	return c.JSON(statusFor(code), echo.Map{"code": string(code), "message": err.Error()})
}

// POST /v1/vehicles
func (h *Controller) Create(c echo.Context) error {
	var req CreateVehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	id := strings.ToUpper(strings.TrimSpace(req.ID))
	if id == "" {
		id = model.NewID()
	}
	cat := model.VehicleCategory(req.Category)

	var v *model.Vehicle
	var err error
	switch model.VehicleType(req.Type) {
	case model.VehicleCar:
		spec := model.CarSpec{}
		if req.Car != nil {
			spec = *req.Car
		}
		v, err = model.NewCar(id, req.Brand, req.Model, cat, req.DailyRate, req.Year, req.Plate, req.Mileage, spec)
	case model.VehicleTruck:
		if req.Truck == nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "truck payload required"})
		}
		v, err = model.NewTruck(id, req.Brand, req.Model, cat, req.DailyRate, req.Year, req.Plate, req.Mileage, *req.Truck)
	case model.VehicleMotorcycle:
		if req.Motorcycle == nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "motorcycle payload required"})
		}
		v, err = model.NewMotorcycle(id, req.Brand, req.Model, cat, req.DailyRate, req.Year, req.Plate, req.Mileage, *req.Motorcycle)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown vehicle type"})
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	if err := h.Svc.AddVehicle(v); err != nil {
		return rejectJSON(c, err)
	}
	h.Log.Info("vehicle added", "id", v.ID, "type", v.Type)
	return c.JSON(http.StatusCreated, toResp(v))
}

// GET /v1/vehicles
func (h *Controller) List(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"data": toRespList(h.Svc.Vehicles())})
}

// GET /v1/vehicles/available?type=&category=&start=&end=
func (h *Controller) Available(c echo.Context) error {
	var start, end time.Time
	if s := c.QueryParam("start"); s != "" {
		d, err := datex.Parse(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid start date"})
		}
		start = d
	}
	if s := c.QueryParam("end"); s != "" {
		d, err := datex.Parse(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid end date"})
		}
		end = d
	}
	typ := model.VehicleType(strings.ToUpper(c.QueryParam("type")))
	cat := model.VehicleCategory(strings.ToUpper(c.QueryParam("category")))
	rows := h.Svc.AvailableVehicles(typ, cat, start, end)
	return c.JSON(http.StatusOK, echo.Map{"data": toRespList(rows)})
}

// GET /v1/vehicles/search?brand=&model=&max_rate=&min_year=
func (h *Controller) Search(c echo.Context) error {
	q := fleetsvc.VehicleSearch{
		Brand: c.QueryParam("brand"),
		Model: c.QueryParam("model"),
	}
	if s := c.QueryParam("max_rate"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid max_rate"})
		}
		q.MaxDailyRate = f
	}
	if s := c.QueryParam("min_year"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid min_year"})
		}
		q.MinYear = n
	}
	return c.JSON(http.StatusOK, echo.Map{"data": toRespList(h.Svc.SearchVehicles(q))})
}

// GET /v1/vehicles/:id
func (h *Controller) Detail(c echo.Context) error {
	v, err := h.Svc.Vehicle(c.Param("id"))
	if err != nil {
		return rejectJSON(c, err)
	}
	return c.JSON(http.StatusOK, toResp(v))
}

// DELETE /v1/vehicles/:id
func (h *Controller) Remove(c echo.Context) error {
	if err := h.Svc.RemoveVehicle(c.Param("id")); err != nil {
		return rejectJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "vehicle removed"})
}

// PUT /v1/vehicles/:id/rate
func (h *Controller) UpdateRate(c echo.Context) error {
	var req UpdateRateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": echo.Map{"daily_rate": "gte 0"}})
	}
	if err := h.Svc.UpdateVehicleRate(c.Param("id"), req.DailyRate); err != nil {
		return rejectJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "rate updated"})
}

// POST /v1/vehicles/:id/maintenance
func (h *Controller) StartMaintenance(c echo.Context) error {
	var req MaintenanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if req.Description == "" {
		req.Description = "scheduled maintenance"
	}
	if err := h.Svc.SendToMaintenance(c.Param("id"), req.Description); err != nil {
		return rejectJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "vehicle in maintenance"})
}

// POST /v1/vehicles/:id/maintenance/complete
func (h *Controller) CompleteMaintenance(c echo.Context) error {
	var req MaintenanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": echo.Map{"description": "required", "cost": "gte 0"}})
	}
	if err := h.Svc.CompleteMaintenance(c.Param("id"), req.Description, req.Cost); err != nil {
		return rejectJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "maintenance completed"})
}

// GET /v1/vehicles/:id/rentals
func (h *Controller) Rentals(c echo.Context) error {
	if _, err := h.Svc.Vehicle(c.Param("id")); err != nil {
		return rejectJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": h.Svc.VehicleRentals(c.Param("id"))})
}
