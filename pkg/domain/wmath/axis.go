// 指示: miu200521358
package wmath

import "gonum.org/v1/gonum/spatial/r3"

// Axis はメッシュローカル空間原点を通る対称軸を表す。
type Axis int

const (
	// AxisX はX軸対称(YZ平面での反転)を表す。
	AxisX Axis = iota
	// AxisY はY軸対称(XZ平面での反転)を表す。
	AxisY
	// AxisZ はZ軸対称(XY平面での反転)を表す。
	AxisZ
)

// String は軸名を返す。
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "X"
	}
}

// Reflect は点を対称軸で反転した位置を返す。
func (a Axis) Reflect(p r3.Vec) r3.Vec {
	switch a {
	case AxisY:
		return r3.Vec{X: p.X, Y: -p.Y, Z: p.Z}
	case AxisZ:
		return r3.Vec{X: p.X, Y: p.Y, Z: -p.Z}
	default:
		return r3.Vec{X: -p.X, Y: p.Y, Z: p.Z}
	}
}
