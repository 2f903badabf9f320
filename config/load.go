package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

func Load() App {
	// Best-effort .env for local runs; real deployments set the env.
	_ = godotenv.Load()

	cfg := App{
		Port:          getenv("APP_PORT", "8080"),
		DataDir:       getenv("DATA_DIR", "data"),
		JWTSecret:     getenv("JWT_SECRET", "local_dev_secret"),
		AdminEmail:    getenv("ADMIN_EMAIL", "admin@carrental.local"),
		AdminPassword: must("ADMIN_PASSWORD"),
		AgencyName:    getenv("AGENCY_NAME", "ShopTaLoc31"),
		Env:           getenv("APP_ENV", "dev"),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
