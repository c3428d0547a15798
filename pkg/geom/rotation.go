package geom

import "math"

// Quaternion is a unit rotation.
type Quaternion struct {
	X, Y, Z, W float64
}

// Identity is the zero rotation.
var Identity = Quaternion{W: 1}

// Euler builds a rotation from angles in degrees. The rotation is applied
// around Z first, then X, then Y.
func Euler(angles Vector3) Quaternion {
	const deg2rad = math.Pi / 180
	qx := axisAngle(1, 0, 0, float64(angles.X)*deg2rad)
	qy := axisAngle(0, 1, 0, float64(angles.Y)*deg2rad)
	qz := axisAngle(0, 0, 1, float64(angles.Z)*deg2rad)
	return qy.Mul(qx).Mul(qz)
}

func axisAngle(x, y, z, rad float64) Quaternion {
	s, c := math.Sincos(rad / 2)
	return Quaternion{X: x * s, Y: y * s, Z: z * s, W: c}
}

// Mul returns q*o, which applies o first and q second.
func (q Quaternion) Mul(o Quaternion) Quaternion {
	return Quaternion{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Rotate applies the rotation to v.
func (q Quaternion) Rotate(v Vector3) Vector3 {
	p := Quaternion{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
	inv := Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
	r := q.Mul(p).Mul(inv)
	return Vector3{X: float32(r.X), Y: float32(r.Y), Z: float32(r.Z)}
}

// Transform is a position/rotation/scale triple relative to a parent.
type Transform struct {
	Position Vector3
	Rotation Quaternion
	Scale    Vector3
}

// IdentityTransform places an object at the origin with unit scale.
var IdentityTransform = Transform{Rotation: Identity, Scale: One3}

// Compose returns the world transform of a child placed at local under parent.
// Scale composes component-wise, matching a lossy scale for rotated parents.
func Compose(parent, local Transform) Transform {
	return Transform{
		Position: parent.Position.Add(parent.Rotation.Rotate(parent.Scale.Mul(local.Position))),
		Rotation: parent.Rotation.Mul(local.Rotation),
		Scale:    parent.Scale.Mul(local.Scale),
	}
}
