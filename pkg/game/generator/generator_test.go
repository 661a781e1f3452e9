package generator

import (
	"reflect"
	"testing"

	"undercroft/pkg/engine/world"
)

func TestRegistry(t *testing.T) {
	if got, want := Names(), []string{"bsp", "cave"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected generators %v, got %v", want, got)
	}
	if _, ok := Get("walker"); ok {
		t.Error("unknown generator should not be found")
	}
	if DefaultGenerator.Name() != "bsp" {
		t.Errorf("expected bsp as default, got %s", DefaultGenerator.Name())
	}
}

func TestGeneratorsProduceValidGrids(t *testing.T) {
	for _, name := range Names() {
		gen, _ := Get(name)
		grid, err := gen.Generate("registry", nil)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if err := grid.Validate(); err != nil {
			t.Errorf("%s: invalid grid: %v", name, err)
		}
		open := 0
		grid.ForEachCell(func(_, _ int, c *world.Cell) {
			if c.Open() {
				open++
			}
		})
		if open == 0 {
			t.Errorf("%s: grid has no open cells", name)
		}
	}
}
