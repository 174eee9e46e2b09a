package common

import (
	"math"
)

// HalfWave clamps a signal to its positive half: max(0, x).
// It is the building block for motion that is only active during one half of a cycle
// (elbow bend during the pull, knee bend on the up-kick). The result is never -0.
//
// Parameters:
//   - x: the input signal
//
// Returns:
//   - float64: x when x > 0, otherwise +0
func HalfWave(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float64) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float64) {
	var buf [16]float64
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// BuildLocalMatrix constructs a 4x4 local transform from a position and an Euler rotation.
// The rotation order is XYZ (R = Rx * Ry * Rz), matching the per-axis assignment order used by
// the stroke animator. All matrices are column-major.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - pos: translation relative to the parent
//   - rot: rotation angles in radians around each axis
func BuildLocalMatrix(out []float64, pos Vec3, rot Euler) {
	cx, sx := math.Cos(rot.X), math.Sin(rot.X)
	cy, sy := math.Cos(rot.Y), math.Sin(rot.Y)
	cz, sz := math.Cos(rot.Z), math.Sin(rot.Z)

	// R = Rx * Ry * Rz, column-major
	out[0] = cy * cz
	out[1] = cx*sz + sx*sy*cz
	out[2] = sx*sz - cx*sy*cz
	out[3] = 0

	out[4] = -cy * sz
	out[5] = cx*cz - sx*sy*sz
	out[6] = sx*cz + cx*sy*sz
	out[7] = 0

	out[8] = sy
	out[9] = -sx * cy
	out[10] = cx * cy
	out[11] = 0

	out[12] = pos.X
	out[13] = pos.Y
	out[14] = pos.Z
	out[15] = 1
}

// TransformPoint applies a column-major 4x4 matrix to the origin-relative point p.
//
// Parameters:
//   - m: the transform (16 elements, column-major)
//   - p: the point to transform
//
// Returns:
//   - Vec3: the transformed point
func TransformPoint(m []float64, p Vec3) Vec3 {
	return Vec3{
		X: m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		Y: m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		Z: m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

// QuaternionToEuler converts a unit quaternion (x, y, z, w) to XYZ-order Euler angles.
// Imported rest poses are stored as quaternions, while scene nodes expose per-axis angles.
//
// Parameters:
//   - q: the quaternion as [4]float64 (x, y, z, w)
//
// Returns:
//   - Euler: the equivalent rotation in XYZ order
func QuaternionToEuler(q [4]float64) Euler {
	x, y, z, w := q[0], q[1], q[2], q[3]

	// rotation matrix elements needed for XYZ extraction
	m11 := 1 - 2*(y*y+z*z)
	m12 := 2 * (x*y - z*w)
	m13 := 2 * (x*z + y*w)
	m22 := 1 - 2*(x*x+z*z)
	m23 := 2 * (y*z - x*w)
	m32 := 2 * (y*z + x*w)
	m33 := 1 - 2*(x*x+y*y)

	var e Euler
	e.Y = math.Asin(math.Max(-1, math.Min(1, m13)))
	if math.Abs(m13) < 0.9999999 {
		e.X = math.Atan2(-m23, m33)
		e.Z = math.Atan2(-m12, m11)
	} else {
		e.X = math.Atan2(m32, m22)
		e.Z = 0
	}
	return e
}
