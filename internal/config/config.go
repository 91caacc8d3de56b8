package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort        string `env:"HTTP_PORT" envDefault:"8080"`
	Env             string `env:"APP_ENV" envDefault:"development"`
	DatabaseURL     string `env:"DATABASE_URL,required"`
	JWTSecret       string `env:"JWT_SECRET_KEY,required"`
	DirectoryURL    string `env:"DIRECTORY_API_URL"`
	DirectoryKey    string `env:"DIRECTORY_API_KEY"`
	DirectorySecret string `env:"DIRECTORY_API_SECRET"`
	RedisAddr       string `env:"REDIS_ADDR"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisDB         int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction indica si el servicio corre en un ambiente productivo.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
