package system

import (
	"log/slog"
	"net/http"

	"carrental/repository/snapshot"
	fleetsvc "carrental/service/fleet"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc  *fleetsvc.Service
	Snap *snapshot.Store
	Log  *slog.Logger
}

// POST /v1/system/sweep
//
// Promotes reserved bookings whose start date has arrived. The cron
// schedule does the same thing; this endpoint exists for manual runs.
func (h *Controller) Sweep(c echo.Context) error {
	n := h.Svc.PromoteDueBookings()
	if n > 0 {
		h.Log.Info("sweep promoted bookings", "count", n)
	}
	return c.JSON(http.StatusOK, echo.Map{"promoted": n})
}

// POST /v1/system/snapshot
func (h *Controller) Snapshot(c echo.Context) error {
	vs, cs, rs := h.Svc.Export()
	if err := h.Snap.SaveAll(vs, cs, rs); err != nil {
		h.Log.Error("snapshot save error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "snapshot failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "snapshot saved", "vehicles": len(vs), "customers": len(cs), "rentals": len(rs)})
}
