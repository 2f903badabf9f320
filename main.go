// Package main car rental API.
//
// @title           Car Rental Fleet API
// @version         1.0
// @description     fleet scheduling service (vehicles, customers, bookings, reports).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"log/slog"
	"os"

	"carrental/app/echoServer"
	authctrl "carrental/app/echoServer/controller/auth"
	customerctrl "carrental/app/echoServer/controller/customer"
	rentalctrl "carrental/app/echoServer/controller/rental"
	reportctrl "carrental/app/echoServer/controller/report"
	systemctrl "carrental/app/echoServer/controller/system"
	vehiclectrl "carrental/app/echoServer/controller/vehicle"
	"carrental/app/echoServer/validation"
	"carrental/config"
	fleetrepo "carrental/repository/fleet"
	"carrental/repository/snapshot"
	authsvc "carrental/service/auth"
	fleetsvc "carrental/service/fleet"
	"carrental/util/hash"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// snapshot dir + in-memory store
	snap, err := snapshot.New(cfg.DataDir)
	if err != nil {
		log.Error("snapshot dir init failed", "dir", cfg.DataDir, "err", err)
		os.Exit(1)
	}
	store := fleetrepo.NewStore()

	fleet := fleetsvc.New(store)
	if snap.Exists() {
		vs, cs, rs, err := snap.LoadAll()
		if err != nil {
			log.Error("snapshot load failed", "err", err)
			os.Exit(1)
		}
		fleet.Import(vs, cs, rs)
		log.Info("snapshot loaded", "vehicles", len(vs), "customers", len(cs), "rentals", len(rs))
	}

	adminHash, err := hash.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Error("admin password hash failed", "err", err)
		os.Exit(1)
	}
	auth := authsvc.New(cfg.AdminEmail, adminHash)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: auth, V: v, Log: log, JWTSecret: cfg.JWTSecret}
	vehicleC := &vehiclectrl.Controller{Svc: fleet, V: v, Log: log}
	customerC := &customerctrl.Controller{Svc: fleet, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: fleet, V: v, Log: log}
	reportC := &reportctrl.Controller{Svc: fleet, Log: log}
	systemC := &systemctrl.Controller{Svc: fleet, Snap: snap, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status": "ok",
			"agency": cfg.AgencyName,
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:     authC,
		Vehicle:  vehicleC,
		Customer: customerC,
		Rental:   rentalC,
		Report:   reportC,
		System:   systemC,

		JWTSecret: cfg.JWTSecret,
	})

	// hourly promotion of due bookings, snapshot every 10 minutes
	cr := cron.New()
	cr.AddFunc("@hourly", func() {
		if n := fleet.PromoteDueBookings(); n > 0 {
			log.Info("cron promoted bookings", "count", n)
		}
	})
	cr.AddFunc("@every 10m", func() {
		vs, cs, rs := fleet.Export()
		if err := snap.SaveAll(vs, cs, rs); err != nil {
			log.Error("cron snapshot failed", "err", err)
		}
	})
	cr.Start()
	defer cr.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
