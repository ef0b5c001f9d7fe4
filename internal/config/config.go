package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"mail-route-service/internal/domain"
	"mail-route-service/internal/services"
)

// Config is the runtime configuration shared by the CLI, server and dbtool.
type Config struct {
	Grid         domain.Grid
	Policy       domain.Policy
	LocalCenters []domain.Point

	DBPath         string
	DatabaseURL    string
	RedisURL       string
	Port           string
	RateLimitRPS   float64
	RateLimitBurst int
}

// PolicyFile is the optional YAML document named by POLICY_PATH.
// Absent keys stay nil so an explicit zero is distinguishable from unset.
type PolicyFile struct {
	GridWidth           *int  `yaml:"grid_width"`
	GridHeight          *int  `yaml:"grid_height"`
	TravelUnitMinutes   *int  `yaml:"travel_unit_minutes"`
	LoadMinutes         *int  `yaml:"load_minutes"`
	SingleBudgetMinutes *int  `yaml:"single_budget_minutes"`
	LocalBudgetMinutes  *int  `yaml:"local_budget_minutes"`
	LocalCenters        []int `yaml:"local_centers"`
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer: %w", key, v, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a number: %w", key, v, err)
	}
	return f, nil
}

// Load reads .env (if present), then the YAML policy file, then environment
// overrides. Defaults reproduce the reference 32x32 layout.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := Config{
		Grid:   domain.Grid{Width: 32, Height: 32},
		Policy: domain.DefaultPolicy(),
	}

	if path := Get("POLICY_PATH", ""); path != "" {
		pf, err := LoadPolicyFile(path)
		if err != nil {
			return Config{}, err
		}
		pf.apply(&cfg)
	}

	var err error
	ints := []struct {
		key string
		dst *int
	}{
		{"GRID_WIDTH", &cfg.Grid.Width},
		{"GRID_HEIGHT", &cfg.Grid.Height},
		{"TRAVEL_UNIT_MINUTES", &cfg.Policy.TravelUnitMinutes},
		{"LOAD_MINUTES", &cfg.Policy.LoadMinutes},
		{"BUDGET_SINGLE_MINUTES", &cfg.Policy.SingleBudgetMinutes},
		{"BUDGET_LOCAL_MINUTES", &cfg.Policy.LocalBudgetMinutes},
		{"RATE_LIMIT_BURST", &cfg.RateLimitBurst},
	}
	cfg.RateLimitBurst = 10
	for _, it := range ints {
		if *it.dst, err = getInt(it.key, *it.dst); err != nil {
			return Config{}, err
		}
	}
	if cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 5); err != nil {
		return Config{}, err
	}

	cfg.DBPath = Get("DB_PATH", "data/app.db")
	cfg.DatabaseURL = Get("DATABASE_URL", "")
	cfg.RedisURL = Get("REDIS_URL", "")
	cfg.Port = Get("PORT", "8080")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadPolicyFile parses a YAML policy document.
func LoadPolicyFile(path string) (PolicyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PolicyFile{}, fmt.Errorf("config: read policy %q: %w", path, err)
	}

	var pf PolicyFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return PolicyFile{}, fmt.Errorf("config: parse policy %q: %w", path, err)
	}
	return pf, nil
}

// apply copies the fields present in the file over cfg.
func (pf PolicyFile) apply(cfg *Config) {
	set := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	set(&cfg.Grid.Width, pf.GridWidth)
	set(&cfg.Grid.Height, pf.GridHeight)
	set(&cfg.Policy.TravelUnitMinutes, pf.TravelUnitMinutes)
	set(&cfg.Policy.LoadMinutes, pf.LoadMinutes)
	set(&cfg.Policy.SingleBudgetMinutes, pf.SingleBudgetMinutes)
	set(&cfg.Policy.LocalBudgetMinutes, pf.LocalBudgetMinutes)
	if len(pf.LocalCenters) > 0 {
		cfg.LocalCenters = make([]domain.Point, 0, len(pf.LocalCenters))
		for _, c := range pf.LocalCenters {
			cfg.LocalCenters = append(cfg.LocalCenters, domain.Point(c))
		}
	}
}

func (c Config) Validate() error {
	if _, err := domain.NewGrid(c.Grid.Width, c.Grid.Height); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if len(c.LocalCenters) > 0 {
		if _, err := services.BuildCenters(c.Grid, domain.ModeLocal, c.LocalCenters); err != nil {
			return fmt.Errorf("config: local centers: %w", err)
		}
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("config: rate limit must be positive")
	}
	return nil
}
