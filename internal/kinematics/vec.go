package kinematics

import "math"

// Vec3 is a point or direction in the site frame.
// X = side/east, Y = forward/north, Z = up (meters)
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// V is shorthand for Vec3{x, y, z}
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale multiplies every component by k
func (v Vec3) Scale(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

// Dot returns the dot product
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Norm returns the Euclidean length
func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns the unit vector along v.
// ok is false when |v| is below eps; the zero vector is returned then.
func (v Vec3) Normalize(eps float64) (Vec3, bool) {
	n := v.Norm()
	if n < eps {
		return Vec3{}, false
	}
	return v.Scale(1 / n), true
}

// Deg converts radians to degrees
func Deg(rad float64) float64 { return rad * 180.0 / math.Pi }

// Rad converts degrees to radians
func Rad(deg float64) float64 { return deg * math.Pi / 180.0 }
