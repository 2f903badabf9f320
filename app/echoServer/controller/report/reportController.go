package report

import (
	"log/slog"
	"net/http"
	"time"

	fleetsvc "carrental/service/fleet"
	"carrental/util/datex"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc *fleetsvc.Service
	Log *slog.Logger
}

// GET /v1/reports/availability
func (h *Controller) Availability(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Svc.AvailabilityReport())
}

// GET /v1/reports/rentals
func (h *Controller) ActiveRentals(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Svc.ActiveRentalsReport())
}

// GET /v1/reports/revenue?start=&end=
func (h *Controller) Revenue(c echo.Context) error {
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
	return c.JSON(http.StatusOK, h.Svc.RevenueReportFor(start, end))
}

// GET /v1/reports/statistics
func (h *Controller) Statistics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Svc.StatisticsReport())
}

// GET /v1/summary
func (h *Controller) Summary(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Svc.Summary())
}
