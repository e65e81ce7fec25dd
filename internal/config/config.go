package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the runtime settings for todio. Values load in priority
// order: built-in defaults, then the TOML config file, then TODIO_*
// environment variables.
type Config struct {
	DatabasePath         string `toml:"database_path"`
	StatePath            string `toml:"state_path"`
	PollIntervalSeconds  int    `toml:"poll_interval_seconds"`
	SchedulerBuffer      int    `toml:"scheduler_buffer"`
	DesktopNotifications bool   `toml:"desktop_notifications"`
	Theme                string `toml:"theme"`
	UpdateFeedURL        string `toml:"update_feed_url"`
}

func Default() Config {
	dir := dataDir()
	return Config{
		DatabasePath:         filepath.Join(dir, "todio.db"),
		StatePath:            filepath.Join(dir, "state.json"),
		PollIntervalSeconds:  10,
		SchedulerBuffer:      64,
		DesktopNotifications: false,
		Theme:                "dark",
		UpdateFeedURL:        "",
	}
}

// Load reads path on top of the defaults. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultConfigPath()
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FromEnv(cfg), nil
		}
		return Config{}, fmt.Errorf("stat config file %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return FromEnv(cfg), nil
}

func DefaultConfigPath() string {
	return filepath.Join(dataDir(), "config.toml")
}

func FromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("TODIO_DATABASE_PATH")); v != "" {
		cfg.DatabasePath = v
	}
	if v := strings.TrimSpace(os.Getenv("TODIO_STATE_PATH")); v != "" {
		cfg.StatePath = v
	}
	if v, ok := getEnvInt("TODIO_POLL_INTERVAL_SECONDS"); ok && v > 0 {
		cfg.PollIntervalSeconds = v
	}
	if v, ok := getEnvInt("TODIO_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvBool("TODIO_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v := strings.TrimSpace(os.Getenv("TODIO_THEME")); v != "" {
		cfg.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("TODIO_UPDATE_FEED_URL")); v != "" {
		cfg.UpdateFeedURL = v
	}
	return cfg
}

func dataDir() string {
	if v := strings.TrimSpace(os.Getenv("TODIO_HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".todio"
	}
	return filepath.Join(home, ".todio")
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
