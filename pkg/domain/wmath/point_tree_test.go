// 指示: miu200521358
package wmath

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestPointTreeNearest(t *testing.T) {
	tree := NewPointTree([]r3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 10, Y: 0, Z: 0},
		{X: 0, Y: 10, Z: 0},
	})

	index, distance, found := tree.Nearest(r3.Vec{X: 9, Y: 0, Z: 0})
	if !found {
		t.Fatalf("expected found")
	}
	if index != 1 {
		t.Fatalf("index mismatch: %d", index)
	}
	if math.Abs(distance-1.0) > 1e-9 {
		t.Fatalf("distance mismatch: %v", distance)
	}
}

func TestPointTreeNearestExactMatch(t *testing.T) {
	tree := NewPointTree([]r3.Vec{
		{X: 1, Y: 0, Z: 0},
		{X: -1, Y: 0, Z: 0},
	})

	index, distance, found := tree.Nearest(r3.Vec{X: -1, Y: 0, Z: 0})
	if !found || index != 1 {
		t.Fatalf("match mismatch: index=%d found=%v", index, found)
	}
	if distance != 0 {
		t.Fatalf("distance mismatch: %v", distance)
	}
}

func TestPointTreeNearestTiePrefersSmallestIndex(t *testing.T) {
	// index0と2は同一座標で、問い合わせ距離が完全に一致する。
	tree := NewPointTree([]r3.Vec{
		{X: 1, Y: 0, Z: 0},
		{X: 5, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
	})

	index, _, found := tree.Nearest(r3.Vec{X: 1, Y: 0, Z: 0})
	if !found {
		t.Fatalf("expected found")
	}
	if index != 0 {
		t.Fatalf("tie break mismatch: %d", index)
	}
}

func TestPointTreeEmpty(t *testing.T) {
	tree := NewPointTree(nil)
	if tree.Len() != 0 {
		t.Fatalf("len mismatch: %d", tree.Len())
	}
	if _, _, found := tree.Nearest(r3.Vec{}); found {
		t.Fatalf("expected not found")
	}
}

func TestPointTreeLen(t *testing.T) {
	tree := NewPointTree([]r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 1}})
	if tree.Len() != 2 {
		t.Fatalf("len mismatch: %d", tree.Len())
	}
}
