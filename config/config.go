// Package config loads runtime settings from defaults, an optional
// taquin.yml in the working directory, and TAQUIN_* environment variables,
// in increasing order of precedence.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Heuristic names the default estimator for solves: "manhattan" or
	// "misplaced".
	Heuristic string
	// MaxIterations bounds expansion iterations per solve; 0 is unbounded.
	MaxIterations uint64
	// SolveTimeout is the wall-clock budget per solve; 0 is unbounded.
	SolveTimeout time.Duration
	// ScrambleSteps is the random-walk length used to generate instances.
	ScrambleSteps int
	// Dim is the board width for generated instances.
	Dim int
	// BatchSize is the number of instances a batch run solves.
	BatchSize int
	// Threads caps concurrent solves in batch mode.
	Threads int
	Debug   bool
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("taquin")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("heuristic", "manhattan")
	v.SetDefault("max-iterations", uint64(0))
	v.SetDefault("solve-timeout", 30*time.Second)
	v.SetDefault("scramble-steps", 40)
	v.SetDefault("dim", 3)
	v.SetDefault("batch-size", 50)
	v.SetDefault("threads", 4)
	v.SetDefault("debug", false)

	v.SetConfigName("taquin")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Config{
		Heuristic:     v.GetString("heuristic"),
		MaxIterations: v.GetUint64("max-iterations"),
		SolveTimeout:  v.GetDuration("solve-timeout"),
		ScrambleSteps: v.GetInt("scramble-steps"),
		Dim:           v.GetInt("dim"),
		BatchSize:     v.GetInt("batch-size"),
		Threads:       v.GetInt("threads"),
		Debug:         v.GetBool("debug"),
	}, nil
}

// Default returns the built-in settings without consulting files or the
// environment. Tests use this.
func Default() *Config {
	return &Config{
		Heuristic:     "manhattan",
		SolveTimeout:  30 * time.Second,
		ScrambleSteps: 40,
		Dim:           3,
		BatchSize:     50,
		Threads:       4,
	}
}
