package server

import "math"

// Vec3 is a world-space position or direction. Y is up; gameplay movement
// happens on the XZ plane.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Flat drops the vertical component.
func (v Vec3) Flat() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

// Normalized returns a unit vector, or the zero vector for zero input.
func (v Vec3) Normalized() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{}
	}
	return v.Scale(1 / length)
}

// IsZero reports whether every component is exactly zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// planarDistance measures separation on the XZ plane. Range checks (aggro,
// attack, chat) ignore height so ledges don't break targeting.
func planarDistance(a, b Vec3) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}

// yawToDirection converts a Y-axis rotation to a planar unit vector.
func yawToDirection(yaw float64) Vec3 {
	return Vec3{X: math.Sin(yaw), Z: math.Cos(yaw)}
}

// directionToYaw derives the Y-axis rotation facing along dir, falling back
// to the previous yaw when dir has no planar component.
func directionToYaw(dir Vec3, fallback float64) float64 {
	if dir.X == 0 && dir.Z == 0 {
		return fallback
	}
	return math.Atan2(dir.X, dir.Z)
}

// rotateYaw spins a planar vector around the Y axis by the given angle.
func rotateYaw(dir Vec3, angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return Vec3{
		X: dir.X*cos + dir.Z*sin,
		Z: -dir.X*sin + dir.Z*cos,
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
