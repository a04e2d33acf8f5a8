package physics

import (
	"math"
	"sort"
	"testing"
)

func TestPointInCircle(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		want   bool
	}{
		{"center", 0, 0, true},
		{"inside", 3, 3, true},
		{"on edge", 5, 0, false},
		{"outside", 6, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInCircle(tt.px, tt.py, 0, 0, 5); got != tt.want {
				t.Errorf("PointInCircle(%v,%v) = %v, want %v", tt.px, tt.py, got, tt.want)
			}
		})
	}
}

func TestCirclesOverlap(t *testing.T) {
	if !CirclesOverlap(0, 0, 2, 3, 0, 2) {
		t.Error("circles 3 apart with radii 2+2 should overlap")
	}
	if CirclesOverlap(0, 0, 1, 3, 0, 1) {
		t.Error("circles 3 apart with radii 1+1 should not overlap")
	}
}

func TestUnitVector(t *testing.T) {
	nx, ny := UnitVector(0, 0, 3, 4)
	if math.Abs(nx-0.6) > 1e-9 || math.Abs(ny-0.8) > 1e-9 {
		t.Errorf("UnitVector = (%f,%f), want (0.6,0.8)", nx, ny)
	}

	nx, ny = UnitVector(2, 2, 2, 2)
	if math.IsNaN(nx) || math.IsNaN(ny) {
		t.Fatal("coincident points must not produce NaN")
	}
	if nx != 0 || ny != 0 {
		t.Errorf("coincident points = (%f,%f), want (0,0)", nx, ny)
	}
}

func TestCircleTopY(t *testing.T) {
	y, ok := CircleTopY(100, 200, 50, 100)
	if !ok || y != 150 {
		t.Errorf("top at center = (%f,%v), want (150,true)", y, ok)
	}

	y, ok = CircleTopY(100, 200, 50, 130)
	if !ok || math.Abs(y-160) > 1e-9 {
		t.Errorf("top at offset 30 = (%f,%v), want (160,true)", y, ok)
	}

	for _, x := range []float64{49.9, 150.1, -1e9, 1e9} {
		if _, ok := CircleTopY(100, 200, 50, x); ok {
			t.Errorf("x=%f outside extent should be unreachable", x)
		}
	}

	if _, ok := CircleTopY(0, 0, 10, math.NaN()); ok {
		t.Error("NaN column should be unreachable")
	}
}

func collect(g *SpatialGrid, x, y float64) []int {
	var got []int
	g.QueryAround(x, y, func(i int) bool {
		got = append(got, i)
		return false
	})
	sort.Ints(got)
	return got
}

func TestSpatialGridFindsNeighbours(t *testing.T) {
	g := NewSpatialGrid(0, 0, 100, 100, 10)
	g.Insert(5, 5, 0)
	g.Insert(14, 5, 1)
	g.Insert(55, 55, 2)

	got := collect(g, 6, 6)
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("query near origin = %v, want [0 1]", got)
	}

	got = collect(g, 56, 54)
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("query near middle = %v, want [2]", got)
	}
}

func TestSpatialGridClampsOutsidePositions(t *testing.T) {
	g := NewSpatialGrid(-50, -50, 100, 100, 10)
	g.Insert(-400, -20, 7)

	got := collect(g, -60, -20)
	if len(got) != 1 || got[0] != 7 {
		t.Errorf("out-of-area items should land in border cells, got %v", got)
	}

	g.Clear()
	if got := collect(g, -60, -20); len(got) != 0 {
		t.Errorf("after Clear got %v, want none", got)
	}
}

func TestSpatialGridEarlyStop(t *testing.T) {
	g := NewSpatialGrid(0, 0, 30, 30, 10)
	for i := 0; i < 5; i++ {
		g.Insert(15, 15, i)
	}
	calls := 0
	g.QueryAround(15, 15, func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
