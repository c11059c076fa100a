package workload

import (
	"github.com/iotaledger/hive.go/ierrors"
)

// ErrInvalidConfig is returned if a workload can not be executed with the given settings.
var ErrInvalidConfig = ierrors.New("invalid workload config")

// Config holds the settings of a workload run.
type Config struct {
	// Workers is the number of goroutines that mutate the tracker concurrently.
	Workers int `json:"workers" koanf:"workers"`
	// Operations is the number of add/remove operations that every worker executes.
	Operations int `json:"operations" koanf:"operations"`
	// Slots is the number of pointer variables that are registered and unregistered.
	Slots int `json:"slots" koanf:"slots"`
	// Seed makes the generated operations reproducible.
	Seed int64 `json:"seed" koanf:"seed"`
}

// DefaultConfig returns the settings that are used if nothing else is configured.
func DefaultConfig() Config {
	return Config{
		Workers:    8,
		Operations: 10000,
		Slots:      64,
		Seed:       1,
	}
}

// Validate checks that the workload can be executed.
func (c Config) Validate() error {
	switch {
	case c.Workers <= 0:
		return ierrors.Wrapf(ErrInvalidConfig, "workers must be positive, got %d", c.Workers)
	case c.Operations < 0:
		return ierrors.Wrapf(ErrInvalidConfig, "operations must not be negative, got %d", c.Operations)
	case c.Slots < c.Workers:
		return ierrors.Wrapf(ErrInvalidConfig, "slots (%d) must be at least the number of workers (%d)", c.Slots, c.Workers)
	default:
		return nil
	}
}
