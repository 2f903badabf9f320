package echoServer

import (
	"net/http"

	"carrental/app/echoServer/controller/auth"
	"carrental/app/echoServer/controller/customer"
	"carrental/app/echoServer/controller/rental"
	"carrental/app/echoServer/controller/report"
	"carrental/app/echoServer/controller/system"
	"carrental/app/echoServer/controller/vehicle"
	"carrental/app/echoServer/jwtx"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth      *auth.Controller
	Vehicle   *vehicle.Controller
	Customer  *customer.Controller
	Rental    *rental.Controller
	Report    *report.Controller
	System    *system.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/auth/login", c.Auth.Login)

	// Operator API, JWT-protected
	api := e.Group("/v1")
	api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(c.JWTSecret),
		TokenLookup: "header:Authorization:Bearer ",
	}))
	api.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			role, err := jwtx.RoleFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			if role != "admin" {
				return ctx.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
			}
			return next(ctx)
		}
	})

	// Fleet
	api.POST("/vehicles", c.Vehicle.Create)
	api.GET("/vehicles", c.Vehicle.List)
	api.GET("/vehicles/available", c.Vehicle.Available)
	api.GET("/vehicles/search", c.Vehicle.Search)
	api.GET("/vehicles/:id", c.Vehicle.Detail)
	api.DELETE("/vehicles/:id", c.Vehicle.Remove)
	api.PUT("/vehicles/:id/rate", c.Vehicle.UpdateRate)
	api.POST("/vehicles/:id/maintenance", c.Vehicle.StartMaintenance)
	api.POST("/vehicles/:id/maintenance/complete", c.Vehicle.CompleteMaintenance)
	api.GET("/vehicles/:id/rentals", c.Vehicle.Rentals)

	// Customers
	api.POST("/customers", c.Customer.Register)
	api.GET("/customers", c.Customer.List)
	api.GET("/customers/:id", c.Customer.Detail)
	api.DELETE("/customers/:id", c.Customer.Remove)
	api.POST("/customers/:id/block", c.Customer.Block)
	api.POST("/customers/:id/unblock", c.Customer.Unblock)
	api.GET("/customers/:id/rentals", c.Customer.Rentals)

	// Bookings
	api.POST("/rentals", c.Rental.Create)
	api.GET("/rentals", c.Rental.List)
	api.GET("/rentals/:id", c.Rental.Detail)
	api.POST("/rentals/:id/start", c.Rental.Start)
	api.POST("/rentals/:id/complete", c.Rental.Complete)
	api.POST("/rentals/:id/cancel", c.Rental.Cancel)
	api.POST("/rentals/:id/extend", c.Rental.Extend)
	api.PUT("/rentals/:id/notes", c.Rental.Notes)

	// Reports
	api.GET("/reports/availability", c.Report.Availability)
	api.GET("/reports/rentals", c.Report.ActiveRentals)
	api.GET("/reports/revenue", c.Report.Revenue)
	api.GET("/reports/statistics", c.Report.Statistics)
	api.GET("/summary", c.Report.Summary)

	// Maintenance sweep + snapshot, also run on a schedule
	api.POST("/system/sweep", c.System.Sweep)
	api.POST("/system/snapshot", c.System.Snapshot)
}
