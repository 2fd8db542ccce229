// pkg/physics/rotate.go
package physics

// Rotate applies the orientation q to the body-local vector v and returns
// the world-space result, using
//
//	v·(s² − |u|²) + u·(u·v)·2 + (u×v)·s·2
//
// where u is the vector part and s the scalar part of q. q must be unit
// length: it is not re-normalized, and a non-unit q scales the result.
func Rotate(v Vec3, q Quat) Vec3 {
	u := q.V
	s := q.W

	return v.Mul(s*s - u.LenSqr()).
		Add(u.Mul(u.Dot(v) * 2)).
		Add(u.Cross(v).Mul(s * 2))
}
