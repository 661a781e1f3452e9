package devtools

import (
	"errors"
	"testing"

	"undercroft/pkg/engine/world"
	"undercroft/pkg/game/generator"
)

func TestArena_Registered(t *testing.T) {
	g, ok := generator.Get("arena")
	if !ok || g != generator.GridGenerator(Arena) {
		t.Fatal("arena generator should be registered")
	}
}

func TestArena_Connected(t *testing.T) {
	for _, size := range []int{12, 17, 48, 50} {
		grid, err := (&ArenaGenerator{Size: size}).Generate("", nil)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if err := grid.Validate(); err != nil {
			t.Errorf("size %d: %v", size, err)
		}
		if n := len(grid.Components()); n != 1 {
			t.Errorf("size %d: expected one open region, got %d", size, n)
		}
		for _, kind := range []world.Kind{world.Room, world.Corridor, world.Cave} {
			if grid.Count(kind) == 0 {
				t.Errorf("size %d: no %s cells", size, kind)
			}
		}
	}
}

func TestArena_TooSmall(t *testing.T) {
	_, err := (&ArenaGenerator{Size: 8}).Generate("", nil)
	if !errors.Is(err, generator.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
