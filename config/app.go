package config

type App struct {
	Port          string `env:"APP_PORT" default:"8080"`
	DataDir       string `env:"DATA_DIR" default:"data"`
	JWTSecret     string `env:"JWT_SECRET" default:"local_dev_secret"`
	AdminEmail    string `env:"ADMIN_EMAIL" default:"admin@carrental.local"`
	AdminPassword string `env:"ADMIN_PASSWORD,required"`
	AgencyName    string `env:"AGENCY_NAME" default:"ShopTaLoc31"`
	Env           string `env:"APP_ENV" default:"dev"`
}
