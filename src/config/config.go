package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-yaml/yaml"
	"github.com/joho/godotenv"
)

const (
	DefaultMinFloor    = 1
	DefaultMaxFloor    = 10
	DefaultNumCars     = 3
	DefaultMaxCapacity = 5

	// DoorDwellTicks is how many logical ticks the doors stay open at a stop.
	DoorDwellTicks = 3

	// TickInterval is the wall-clock length of one logical tick in demo mode.
	TickInterval = 200 * time.Millisecond

	// EventBuffer bounds the channel event sink. Notify drops when full.
	EventBuffer = 64

	SelectionNearest     = "nearest"
	SelectionTimeToServe = "timetoserve"
)

type CarConfig struct {
	MaxCapacity int `yaml:"MaxCapacity"`
}

type FleetConfig struct {
	MinFloor       int           `yaml:"MinFloor"`
	MaxFloor       int           `yaml:"MaxFloor"`
	Cars           []CarConfig   `yaml:"Cars"`
	Selection      string        `yaml:"Selection"`
	DoorDwellTicks int           `yaml:"DoorDwellTicks"`
	TickInterval   time.Duration `yaml:"TickInterval"`
}

func Default() FleetConfig {
	cfg := FleetConfig{
		MinFloor:       DefaultMinFloor,
		MaxFloor:       DefaultMaxFloor,
		Selection:      SelectionNearest,
		DoorDwellTicks: DoorDwellTicks,
		TickInterval:   TickInterval,
	}
	for i := 0; i < DefaultNumCars; i++ {
		cfg.Cars = append(cfg.Cars, CarConfig{MaxCapacity: DefaultMaxCapacity})
	}
	return cfg
}

// Load reads a fleet config YAML file and applies .env / environment
// overrides on top. A missing file leaves the defaults untouched.
func Load(path string) (FleetConfig, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read fleet config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse fleet config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.MinFloor >= cfg.MaxFloor {
		return cfg, fmt.Errorf("invalid floor bounds [%d, %d]", cfg.MinFloor, cfg.MaxFloor)
	}
	if len(cfg.Cars) == 0 {
		return cfg, fmt.Errorf("fleet needs at least one car")
	}
	for i, car := range cfg.Cars {
		if car.MaxCapacity < 1 {
			return cfg, fmt.Errorf("car %d: capacity must be positive, got %d", i, car.MaxCapacity)
		}
	}
	if cfg.DoorDwellTicks < 1 {
		cfg.DoorDwellTicks = DoorDwellTicks
	}
	return cfg, nil
}

// applyEnv merges overrides from a .env file and the process environment.
// The .env file is optional.
func applyEnv(cfg *FleetConfig) {
	envFile, err := godotenv.Read(".env")
	if err != nil {
		envFile = map[string]string{}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := envFile[key]
		return v, ok
	}

	if v, ok := lookup("FLEET_MIN_FLOOR"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MinFloor = n
		}
	}
	if v, ok := lookup("FLEET_MAX_FLOOR"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxFloor = n
		}
	}
	if v, ok := lookup("FLEET_NUM_CARS"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cars := make([]CarConfig, n)
			for i := range cars {
				cars[i] = CarConfig{MaxCapacity: DefaultMaxCapacity}
				if i < len(cfg.Cars) {
					cars[i] = cfg.Cars[i]
				}
			}
			cfg.Cars = cars
		}
	}
	if v, ok := lookup("FLEET_SELECTION"); ok {
		cfg.Selection = v
	}
	if v, ok := lookup("FLEET_TICK_INTERVAL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TickInterval = d
		}
	}
}
