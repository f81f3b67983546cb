package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"shiloassist/internal/app/assist"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Server struct {
	Addr          string
	DSN           string
	SQLitePath    string
	MigrationsDir string
	JournalDir    string
	LogLevel      string
	Assist        assist.Config
}

// Load reads an optional .env file, then the environment, then the optional assist YAML file.
// Variables already set in the environment win over .env entries.
func Load(envFiles ...string) (Server, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Server{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Server{
		Addr:          stringEnv("SHILOASSIST_ADDR", ":8080"),
		DSN:           stringEnv("SHILOASSIST_DB_DSN", ""),
		SQLitePath:    stringEnv("SHILOASSIST_SQLITE_PATH", ""),
		MigrationsDir: stringEnv("SHILOASSIST_MIGRATIONS_DIR", ""),
		JournalDir:    stringEnv("SHILOASSIST_JOURNAL_DIR", ""),
		LogLevel:      stringEnv("SHILOASSIST_LOG_LEVEL", "info"),
		Assist:        assist.DefaultConfig(),
	}
	if path := stringEnv("ASSIST_CONFIG", ""); path != "" {
		a, err := LoadAssist(path)
		if err != nil {
			return Server{}, err
		}
		cfg.Assist = a
	}

	a := &cfg.Assist
	a.MaxRadius = intEnv("SHILOASSIST_MAX_RADIUS", a.MaxRadius)
	a.InventoryCapacity = intEnv("SHILOASSIST_INVENTORY_CAPACITY", a.InventoryCapacity)
	a.Overlays.ShowPath = boolEnv("SHILOASSIST_SHOW_PATH", a.Overlays.ShowPath)
	a.Overlays.ShowInventoryCount = boolEnv("SHILOASSIST_SHOW_INVENTORY", a.Overlays.ShowInventoryCount)
	a.Overlays.ShowDepositPath = boolEnv("SHILOASSIST_SHOW_DEPOSIT_PATH", a.Overlays.ShowDepositPath)
	a.Overlays.ShowIdleTint = boolEnv("SHILOASSIST_SHOW_IDLE_TINT", a.Overlays.ShowIdleTint)
	return cfg, nil
}

// LoadAssist overlays the YAML file on the defaults; keys left out keep their default value.
func LoadAssist(path string) (assist.Config, error) {
	cfg := assist.DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Region.Empty() {
		return cfg, fmt.Errorf("%s: region bounds are empty", path)
	}
	return cfg, nil
}

func stringEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func boolEnv(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
