package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort         string        `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL      string        `env:"DATABASE_URL,required,notEmpty"`
	DBMaxConns       int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	DBQueryTimeout   time.Duration `env:"DB_QUERY_TIMEOUT" envDefault:"5s"`
	MigrateOnStart   bool          `env:"MIGRATE_ON_START" envDefault:"true"`
	BcryptCost       int           `env:"BCRYPT_COST" envDefault:"10"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFile          string        `env:"LOG_FILE"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MetricsNamespace string        `env:"METRICS_NAMESPACE" envDefault:"webapp"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
