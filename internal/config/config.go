package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"info"`
	Game     Game    `yaml:"game"`
	Console  Console `yaml:"console"`
}

type Game struct {
	Mode       string        `yaml:"mode" env:"TTT_MODE" env-default:"pvsai"`
	Difficulty string        `yaml:"difficulty" env:"TTT_DIFFICULTY" env-default:"expert"`
	AIMark     int           `yaml:"ai-mark" env:"TTT_AI_MARK" env-default:"2"`
	Delay      time.Duration `yaml:"delay" env:"TTT_DELAY" env-default:"500ms"`
	// Rounds is the number of rounds to play, 0 plays until the input is closed.
	Rounds int `yaml:"rounds" env:"TTT_ROUNDS" env-default:"0"`
}

type Console struct {
	// Plain disables clearing the screen before each board.
	Plain bool `yaml:"plain" env:"TTT_PLAIN" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file, environment only when the file is absent.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return config, nil
}

// Usage - describes the environment variables, printed by -h.
func Usage() string {
	description, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return ""
	}

	return description
}
