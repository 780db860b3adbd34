package config

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Load reads config from the given YAML file (optional) with MINTVERDE_*
// environment variables taking precedence.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
