package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings read from the process environment.
type Env struct {
	ConfigPath string `env:"DEVENV_CONFIG" envDefault:"devenv.yaml"`
	DryRun     bool   `env:"DEVENV_DRY_RUN"`
	Debug      bool   `env:"DEVENV_DEBUG"`
	LogLevel   string `env:"DEVENV_LOG_LEVEL" envDefault:"info"`
	SSHDir     string `env:"DEVENV_SSH_DIR"`
	AssumeYes  bool   `env:"DEVENV_YES"`
}

// ParseEnv loads Env from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
