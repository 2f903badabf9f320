package rental

import (
	"log/slog"
	"net/http"
	"time"

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
	case fleetsvc.ErrRentalNotFound, fleetsvc.ErrCustomerNotFound, fleetsvc.ErrVehicleNotFound:
		return http.StatusNotFound
	case fleetsvc.ErrVehicleNotAvailable, fleetsvc.ErrInvalidStatus:
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

// POST /v1/rentals
func (h *Controller) Create(c echo.Context) error {
	var req CreateRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	start, err := datex.Parse(req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid start_date"})
	}
	end, err := datex.Parse(req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid end_date"})
	}

	r, err := h.Svc.CreateBooking(req.CustomerID, req.VehicleID, start, end)
	if err != nil {
		return rejectJSON(c, err)
	}
	h.Log.Info("booking created", "id", r.ID, "customer", r.CustomerID, "vehicle", r.VehicleID)
	return c.JSON(http.StatusCreated, toResp(r))
}

// GET /v1/rentals?status=active|overdue
func (h *Controller) List(c echo.Context) error {
	switch c.QueryParam("status") {
	case "active":
		return c.JSON(http.StatusOK, echo.Map{"data": toRespList(h.Svc.ActiveRentals())})
	case "overdue":
		return c.JSON(http.StatusOK, echo.Map{"data": toRespList(h.Svc.OverdueRentals())})
	default:
		return c.JSON(http.StatusOK, echo.Map{"data": toRespList(h.Svc.Rentals())})
	}
}

// GET /v1/rentals/:id
func (h *Controller) Detail(c echo.Context) error {
	r, err := h.Svc.Rental(c.Param("id"))
	if err != nil {
		return rejectJSON(c, err)
	}
	return c.JSON(http.StatusOK, toResp(r))
}

// POST /v1/rentals/:id/start
func (h *Controller) Start(c echo.Context) error {
	if err := h.Svc.StartBooking(c.Param("id")); err != nil {
		return rejectJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "rental started"})
}

// POST /v1/rentals/:id/complete
func (h *Controller) Complete(c echo.Context) error {
	var req CompleteRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	var returnDate time.Time
	if req.ReturnDate != "" {
		d, err := datex.Parse(req.ReturnDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid return_date"})
		}
		returnDate = d
	}

	total, err := h.Svc.CompleteBooking(c.Param("id"), returnDate, req.EndMileage)
	if err != nil {
		return rejectJSON(c, err)
	}
	h.Log.Info("booking completed", "id", c.Param("id"), "total", total)
	return c.JSON(http.StatusOK, echo.Map{"message": "rental completed", "total_cost": total})
}

// POST /v1/rentals/:id/cancel
func (h *Controller) Cancel(c echo.Context) error {
	fee, err := h.Svc.CancelBooking(c.Param("id"))
	if err != nil {
		return rejectJSON(c, err)
	}
	h.Log.Info("booking cancelled", "id", c.Param("id"), "fee", fee)
	return c.JSON(http.StatusOK, echo.Map{"message": "rental cancelled", "cancellation_fee": fee})
}

// POST /v1/rentals/:id/extend
func (h *Controller) Extend(c echo.Context) error {
	var req ExtendRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": echo.Map{"end_date": "required YYYY-MM-DD"}})
	}
	newEnd, err := datex.Parse(req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid end_date"})
	}
	if err := h.Svc.ExtendBooking(c.Param("id"), newEnd); err != nil {
		return rejectJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "rental extended"})
}

// PUT /v1/rentals/:id/notes
func (h *Controller) Notes(c echo.Context) error {
	var req NotesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.Svc.SetRentalNotes(c.Param("id"), req.Notes); err != nil {
		return rejectJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "notes updated"})
}
