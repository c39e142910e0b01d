package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	DataDir      string `env:"OLIST_DATA_DIR" envDefault:"data"`
	OutputFormat string `env:"OLIST_OUTPUT_FORMAT" envDefault:"table"`
	LogLevel     string `env:"OLIST_LOG_LEVEL" envDefault:"info"`
	NoColor      bool   `env:"OLIST_NO_COLOR" envDefault:"false"`
}

func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("config parse: %w", err)
	}
	return c, nil
}
