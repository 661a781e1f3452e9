package generator

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrInvalidConfig wraps every configuration problem reported by Validate.
var ErrInvalidConfig = errors.New("invalid dungeon config")

// Config holds the inputs of the BSP dungeon pipeline.
type Config struct {
	Width  int
	Length int

	MinRoomWidth  int
	MinRoomLength int
	MaxIterations int
	CorridorWidth int

	// Rooms are inscribed by sampling the bottom-left corner in the lower
	// BottomCornerFactor of each leaf and the top-right corner above
	// TopCornerFactor.
	BottomCornerFactor float64
	TopCornerFactor    float64
	RoomOffset         int

	Seed       string
	RandomSeed bool

	Logger *slog.Logger
}

// DefaultConfig returns a 50x50 dungeon with 4x4 minimum rooms.
func DefaultConfig() Config {
	return Config{
		Width:              50,
		Length:             50,
		MinRoomWidth:       4,
		MinRoomLength:      4,
		MaxIterations:      50,
		CorridorWidth:      3,
		BottomCornerFactor: 0.1,
		TopCornerFactor:    0.9,
		RoomOffset:         1,
	}
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Length <= 0:
		return fmt.Errorf("%w: dungeon size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Length)
	case c.MinRoomWidth <= 0 || c.MinRoomLength <= 0:
		return fmt.Errorf("%w: minimum room size %dx%d must be positive", ErrInvalidConfig, c.MinRoomWidth, c.MinRoomLength)
	case c.MaxIterations < 0:
		return fmt.Errorf("%w: max iterations %d is negative", ErrInvalidConfig, c.MaxIterations)
	case c.CorridorWidth <= 0:
		return fmt.Errorf("%w: corridor width %d must be positive", ErrInvalidConfig, c.CorridorWidth)
	case c.RoomOffset < 0:
		return fmt.Errorf("%w: room offset %d is negative", ErrInvalidConfig, c.RoomOffset)
	case c.BottomCornerFactor < 0 || c.BottomCornerFactor >= 0.5:
		return fmt.Errorf("%w: bottom corner factor %.2f outside [0,0.5)", ErrInvalidConfig, c.BottomCornerFactor)
	case c.TopCornerFactor <= 0.5 || c.TopCornerFactor > 1:
		return fmt.Errorf("%w: top corner factor %.2f outside (0.5,1]", ErrInvalidConfig, c.TopCornerFactor)
	case c.MinRoomWidth < 2*c.RoomOffset+2 || c.MinRoomLength < 2*c.RoomOffset+2:
		return fmt.Errorf("%w: minimum room size %dx%d leaves no space inside offset %d",
			ErrInvalidConfig, c.MinRoomWidth, c.MinRoomLength, c.RoomOffset)
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
