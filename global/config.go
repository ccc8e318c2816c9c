package global

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/nathanieltooley/pokeduel/golurk"
	"github.com/rs/zerolog"
)

type Config struct {
	LogDir string
	Debug  bool
	// Turns a player has to wait after using an item
	ItemCooldown int
	// How many battles duelsim runs at once
	Battles int
	// 0 means a random seed
	Seed      uint64
	TeamFile  string
	Telemetry bool
	// Bytes
	MaxLogSize int64
	MaxLogs    int
}

const (
	mb = 1000000

	defaultBattles    = 4
	defaultMaxLogSize = 2.5 * mb
	defaultMaxLogs    = 2
)

const envPrefix = "POKEDUEL_"

func DefaultConfigDir() string {
	configDir, _ := os.UserConfigDir()
	return filepath.Join(configDir, "pokeduel")
}

func DefaultConfigLocation() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// LoadConfig reads the config file at path, creating it with default values if it doesn't exist.
// Variables from a .env file in the working directory and the environment are applied on top.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		initLogger.Warn().Err(err).Msg("could not load .env file")
	}

	config, err := readConfigFile(path)
	if err != nil {
		return Config{}, err
	}

	config, err = applyEnv(config)
	if err != nil {
		return Config{}, err
	}

	return populateConfig(config), nil
}

func readConfigFile(path string) (Config, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return Config{}, fmt.Errorf("creating config dir: %w", err)
	}

	configContents, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	// Missing or empty config file, write the defaults so the user has something to edit
	if len(configContents) == 0 {
		config := populateConfig(Config{})
		if err := SaveConfig(path, config); err != nil {
			return Config{}, err
		}

		initLogger.Info().Str("path", path).Msg("wrote default config")
		return config, nil
	}

	config := Config{}
	if err := json.Unmarshal(configContents, &config); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return config, nil
}

func SaveConfig(path string, config Config) error {
	jsonString, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, jsonString, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func applyEnv(config Config) (Config, error) {
	var err error

	if value, ok := lookupEnv("LOG_DIR"); ok {
		config.LogDir = value
	}
	if value, ok := lookupEnv("TEAM_FILE"); ok {
		config.TeamFile = value
	}
	if value, ok := lookupEnv("DEBUG"); ok {
		if config.Debug, err = strconv.ParseBool(value); err != nil {
			return config, envError("DEBUG", err)
		}
	}
	if value, ok := lookupEnv("TELEMETRY"); ok {
		if config.Telemetry, err = strconv.ParseBool(value); err != nil {
			return config, envError("TELEMETRY", err)
		}
	}
	if value, ok := lookupEnv("ITEM_COOLDOWN"); ok {
		if config.ItemCooldown, err = strconv.Atoi(value); err != nil {
			return config, envError("ITEM_COOLDOWN", err)
		}
	}
	if value, ok := lookupEnv("BATTLES"); ok {
		if config.Battles, err = strconv.Atoi(value); err != nil {
			return config, envError("BATTLES", err)
		}
	}
	if value, ok := lookupEnv("SEED"); ok {
		if config.Seed, err = strconv.ParseUint(value, 10, 64); err != nil {
			return config, envError("SEED", err)
		}
	}
	if value, ok := lookupEnv("MAX_LOG_SIZE"); ok {
		if config.MaxLogSize, err = strconv.ParseInt(value, 10, 64); err != nil {
			return config, envError("MAX_LOG_SIZE", err)
		}
	}
	if value, ok := lookupEnv("MAX_LOGS"); ok {
		if config.MaxLogs, err = strconv.Atoi(value); err != nil {
			return config, envError("MAX_LOGS", err)
		}
	}

	return config, nil
}

func lookupEnv(name string) (string, bool) {
	return os.LookupEnv(envPrefix + name)
}

func envError(name string, err error) error {
	return fmt.Errorf("bad value for %s%s: %w", envPrefix, name, err)
}

func populateConfig(config Config) Config {
	configDir := DefaultConfigDir()

	if config.LogDir == "" {
		config.LogDir = filepath.Join(configDir, "logs/")
	}
	if config.TeamFile == "" {
		config.TeamFile = filepath.Join(configDir, "saves/", "teams.json")
	}
	if config.ItemCooldown <= 0 {
		config.ItemCooldown = golurk.DEFAULT_ITEM_COOLDOWN
	}
	if config.Battles <= 0 {
		config.Battles = defaultBattles
	}
	if config.MaxLogSize <= 0 {
		config.MaxLogSize = defaultMaxLogSize
	}
	if config.MaxLogs <= 0 {
		config.MaxLogs = defaultMaxLogs
	}

	return config
}

// LogLevel is the level everything logs at for this config
func (c Config) LogLevel() zerolog.Level {
	if c.Debug {
		return zerolog.DebugLevel
	}

	return zerolog.InfoLevel
}
