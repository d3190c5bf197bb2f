package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig lists the recognised environment variables. Unset variables
// leave the corresponding Config field untouched.
type envConfig struct {
	Port                        string        `env:"PORT"`
	DatabaseDSN                 string        `env:"DATABASE_URI"`
	SecretKey                   string        `env:"JWT_SECRET"`
	AccessTokenValidityDuration time.Duration `env:"TOKEN_TTL"`
	BcryptCost                  int           `env:"BCRYPT_COST"`
	ShutdownTimeout             time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

func parseEnv(config *Config, environ map[string]string) error {
	var e envConfig
	if err := env.ParseWithOptions(&e, env.Options{Environment: environ}); err != nil {
		return err
	}

	if e.Port != "" {
		config.EndpointAddr = ":" + e.Port
	}
	if e.DatabaseDSN != "" {
		config.DatabaseDSN = e.DatabaseDSN
	}
	if e.SecretKey != "" {
		config.SecretKey = e.SecretKey
	}
	if e.AccessTokenValidityDuration != 0 {
		config.AccessTokenValidityDuration = e.AccessTokenValidityDuration
	}
	if e.BcryptCost != 0 {
		config.BcryptCost = e.BcryptCost
	}
	if e.ShutdownTimeout != 0 {
		config.ShutdownTimeout = e.ShutdownTimeout
	}
	return nil
}
