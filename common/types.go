// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Axis identifies one of the three local rotation axes of a scene node.
type Axis int

const (
	// AxisX is the local X axis (pitch for a face-down swimmer's legs).
	AxisX Axis = iota

	// AxisY is the local Y axis.
	AxisY

	// AxisZ is the local Z axis.
	AxisZ
)

// String returns the lowercase axis letter.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// AxisMask is a bit set of Axis values. It records which rotation axes a writer touches so the
// remaining axes keep whatever value the node already holds.
type AxisMask uint8

const (
	// MaskX selects the X axis.
	MaskX AxisMask = 1 << AxisX

	// MaskY selects the Y axis.
	MaskY AxisMask = 1 << AxisY

	// MaskZ selects the Z axis.
	MaskZ AxisMask = 1 << AxisZ

	// MaskXYZ selects all three axes.
	MaskXYZ = MaskX | MaskY | MaskZ
)

// Has reports whether the mask includes the given axis.
//
// Parameters:
//   - a: the axis to test
//
// Returns:
//   - bool: true if the axis bit is set
func (m AxisMask) Has(a Axis) bool {
	return m&(1<<a) != 0
}

// Euler holds three independent rotation angles in radians, applied in X, Y, Z order.
type Euler struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Get returns the angle for a single axis.
//
// Parameters:
//   - a: the axis to read
//
// Returns:
//   - float64: the angle in radians
func (e Euler) Get(a Axis) float64 {
	switch a {
	case AxisX:
		return e.X
	case AxisY:
		return e.Y
	default:
		return e.Z
	}
}

// Set assigns the angle for a single axis.
//
// Parameters:
//   - a: the axis to write
//   - v: the angle in radians
func (e *Euler) Set(a Axis, v float64) {
	switch a {
	case AxisX:
		e.X = v
	case AxisY:
		e.Y = v
	default:
		e.Z = v
	}
}

// Vec3 is a position or offset in node-local space.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Add returns the component-wise sum of v and o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}
