package cave

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrInvalidConfig wraps every configuration problem reported by Validate.
var ErrInvalidConfig = errors.New("invalid cave config")

// Config holds the inputs of the cellular cave generator.
type Config struct {
	Width  int
	Length int

	// FillPercent is the chance, in percent, that an interior tile starts
	// as wall. Values between 40 and 55 give usable caves.
	FillPercent  int
	SmoothPasses int

	// Wall specks and open pockets smaller than these are removed.
	MinWallRegion int
	MinCaveRegion int

	BrushRadius int
	BorderSize  int

	Seed       string
	RandomSeed bool

	Logger *slog.Logger
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		Width:         80,
		Length:        60,
		FillPercent:   47,
		SmoothPasses:  5,
		MinWallRegion: 50,
		MinCaveRegion: 50,
		BrushRadius:   5,
		BorderSize:    1,
	}
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	switch {
	case c.Width < 3 || c.Length < 3:
		return fmt.Errorf("%w: map %dx%d is smaller than 3x3", ErrInvalidConfig, c.Width, c.Length)
	case c.FillPercent < 0 || c.FillPercent > 100:
		return fmt.Errorf("%w: fill percent %d outside [0,100]", ErrInvalidConfig, c.FillPercent)
	case c.SmoothPasses < 0:
		return fmt.Errorf("%w: smoothing passes %d is negative", ErrInvalidConfig, c.SmoothPasses)
	case c.MinWallRegion < 0 || c.MinCaveRegion < 0:
		return fmt.Errorf("%w: region thresholds must not be negative", ErrInvalidConfig)
	case c.BrushRadius < 0:
		return fmt.Errorf("%w: brush radius %d is negative", ErrInvalidConfig, c.BrushRadius)
	case c.BorderSize < 0:
		return fmt.Errorf("%w: border size %d is negative", ErrInvalidConfig, c.BorderSize)
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
