package customer

import (
	"log/slog"
	"net/http"
	"strings"

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
	case fleetsvc.ErrCustomerNotFound:
		return http.StatusNotFound
	case fleetsvc.ErrCustomerExists, fleetsvc.ErrCustomerHasRentals:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func rejectJSON(c echo.Context, err error) error {
	code := fleetsvc.Code(err)
	return c.JSON(statusFor(code), echo.Map{"code": string(code), "message": err.Error()})
}

// POST /v1/customers
func (h *Controller) Register(c echo.Context) error {
	var req RegisterCustomerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	birth, err := datex.Parse(req.BirthDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid birth_date"})
	}
	licensed, err := datex.Parse(req.LicenseDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid license_date"})
	}

	id := strings.ToUpper(strings.TrimSpace(req.ID))
	cust := model.NewCustomer(id, req.FirstName, req.LastName, birth,
		req.LicenseNumber, req.LicenseTypes, licensed,
		strings.ToLower(req.Email), req.Phone, req.Address)

	if err := h.Svc.RegisterCustomer(cust); err != nil {
		return rejectJSON(c, err)
	}
	h.Log.Info("customer registered", "id", cust.ID)
	return c.JSON(http.StatusCreated, toResp(cust))
}

// GET /v1/customers?name=&contact=
func (h *Controller) List(c echo.Context) error {
	name, contact := c.QueryParam("name"), c.QueryParam("contact")
	if name != "" || contact != "" {
		return c.JSON(http.StatusOK, echo.Map{"data": toRespList(h.Svc.SearchCustomers(name, contact))})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": toRespList(h.Svc.Customers())})
}

// GET /v1/customers/:id
func (h *Controller) Detail(c echo.Context) error {
	cust, err := h.Svc.Customer(c.Param("id"))
	if err != nil {
		return rejectJSON(c, err)
	}
	return c.JSON(http.StatusOK, toResp(cust))
}

// DELETE /v1/customers/:id
func (h *Controller) Remove(c echo.Context) error {
	if err := h.Svc.RemoveCustomer(c.Param("id")); err != nil {
		return rejectJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "customer removed"})
}

// POST /v1/customers/:id/block
func (h *Controller) Block(c echo.Context) error {
	var req BlockReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": echo.Map{"reason": "required"}})
	}
	if err := h.Svc.BlockCustomer(c.Param("id"), req.Reason); err != nil {
		return rejectJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "customer blocked"})
}

// POST /v1/customers/:id/unblock
func (h *Controller) Unblock(c echo.Context) error {
	if err := h.Svc.UnblockCustomer(c.Param("id")); err != nil {
		return rejectJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "customer unblocked"})
}

// GET /v1/customers/:id/rentals
func (h *Controller) Rentals(c echo.Context) error {
	if _, err := h.Svc.Customer(c.Param("id")); err != nil {
		return rejectJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": h.Svc.CustomerRentals(c.Param("id"))})
}
