package config

type App struct {
	Port          string `env:"APP_PORT" default:"8080"`
	DatabaseURL   string `env:"DATABASE_URL,required"`
	AccessSecret  string `env:"ACCESS_TOKEN_SECRET,required"`
	RefreshSecret string `env:"REFRESH_TOKEN_SECRET,required"`
	Env           string `env:"APP_ENV" default:"dev"`
}
