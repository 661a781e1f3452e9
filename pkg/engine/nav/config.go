package nav

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidConfig wraps every configuration problem reported by Validate.
var ErrInvalidConfig = errors.New("invalid nav grid config")

// LayerMask is a bit set of geometry layers.
type LayerMask uint32

// Layer returns the mask holding only layer i.
func Layer(i int) LayerMask {
	return 1 << uint(i)
}

// Has reports whether layer i is in the mask.
func (m LayerMask) Has(i int) bool {
	return i >= 0 && i < 32 && m&Layer(i) != 0
}

// TerrainType assigns a movement penalty to the terrain layers in Mask.
type TerrainType struct {
	Mask    LayerMask
	Penalty int
}

// Config describes the world area covered by a grid and how cells are
// classified.
type Config struct {
	// Center is the middle of the covered area. The grid lies on the X/Z
	// plane at Center.Y.
	Center mgl32.Vec3
	// WorldSize is the covered extent along X and Z.
	WorldSize  mgl32.Vec2
	NodeRadius float32

	Unwalkable LayerMask
	Terrain    []TerrainType

	ObstacleProximityPenalty int
	BlurSize                 int
}

// DefaultConfig covers a size x size area centred on the origin with unit
// cells.
func DefaultConfig(size float32) Config {
	return Config{
		WorldSize:                mgl32.Vec2{size, size},
		NodeRadius:               0.5,
		ObstacleProximityPenalty: 10,
		BlurSize:                 3,
	}
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	switch {
	case c.NodeRadius <= 0:
		return fmt.Errorf("%w: node radius %v must be positive", ErrInvalidConfig, c.NodeRadius)
	case c.WorldSize.X() <= 0 || c.WorldSize.Y() <= 0:
		return fmt.Errorf("%w: world size %v must be positive", ErrInvalidConfig, c.WorldSize)
	case c.BlurSize < 0:
		return fmt.Errorf("%w: blur size %d is negative", ErrInvalidConfig, c.BlurSize)
	case c.ObstacleProximityPenalty < 0:
		return fmt.Errorf("%w: proximity penalty %d is negative", ErrInvalidConfig, c.ObstacleProximityPenalty)
	}
	for _, t := range c.Terrain {
		if t.Penalty < 0 {
			return fmt.Errorf("%w: terrain penalty %d is negative", ErrInvalidConfig, t.Penalty)
		}
	}
	return nil
}

// walkableMask is every layer with a terrain penalty.
func (c Config) walkableMask() LayerMask {
	var m LayerMask
	for _, t := range c.Terrain {
		m |= t.Mask
	}
	return m
}

// terrainPenalty returns the penalty of the first terrain type whose mask
// holds layer.
func (c Config) terrainPenalty(layer int) int {
	for _, t := range c.Terrain {
		if t.Mask.Has(layer) {
			return t.Penalty
		}
	}
	return 0
}
