// 指示: miu200521358
package wmath

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestAxisReflect(t *testing.T) {
	p := r3.Vec{X: 1, Y: 2, Z: 3}

	if got := AxisX.Reflect(p); got != (r3.Vec{X: -1, Y: 2, Z: 3}) {
		t.Fatalf("X reflect mismatch: %v", got)
	}
	if got := AxisY.Reflect(p); got != (r3.Vec{X: 1, Y: -2, Z: 3}) {
		t.Fatalf("Y reflect mismatch: %v", got)
	}
	if got := AxisZ.Reflect(p); got != (r3.Vec{X: 1, Y: 2, Z: -3}) {
		t.Fatalf("Z reflect mismatch: %v", got)
	}
}

func TestAxisString(t *testing.T) {
	if AxisX.String() != "X" || AxisY.String() != "Y" || AxisZ.String() != "Z" {
		t.Fatalf("axis name mismatch: %s %s %s", AxisX, AxisY, AxisZ)
	}
}
