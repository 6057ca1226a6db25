package config

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"holdemtables-server/internal/util"
)

// Config provides configuration for Hold'em Tables
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	RecaptchaSecret string `yaml:"recaptchaSecret" envconfig:"recaptcha_secret"`
	Log             struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Game struct {
		SmallBlind     int           `yaml:"smallBlind" envconfig:"small_blind"`
		BigBlind       int           `yaml:"bigBlind" envconfig:"big_blind"`
		BuyIn          int           `yaml:"buyIn" envconfig:"buy_in"`
		SeatsPerTable  int           `yaml:"seatsPerTable" envconfig:"seats_per_table"`
		MinPlayers     int           `yaml:"minPlayers" envconfig:"min_players"`
		TurnTimeout    time.Duration `yaml:"turnTimeout" envconfig:"turn_timeout"`
		StartHandDelay time.Duration `yaml:"startHandDelay" envconfig:"start_hand_delay"`
	}
}

// DefaultConfig returns a config suitable for local development
func DefaultConfig() Config {
	var c Config
	c.PGDSN = "postgres://localhost:5432/postgres?sslmode=disable"
	c.MigrationsPath = "./sql"
	c.JWT.PublicKey = ".keys/public.pem"
	c.JWT.PrivateKey = ".keys/private.key"
	c.Log.Level = "info"
	c.Game.SmallBlind = 1
	c.Game.BigBlind = 2
	c.Game.BuyIn = 200
	c.Game.SeatsPerTable = 9
	c.Game.MinPlayers = 2
	c.Game.TurnTimeout = time.Second * 30
	c.Game.StartHandDelay = time.Second * 5

	return c
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration. A missing config file is not an
// error; the defaults plus the environment still apply
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("HT_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("ht", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
