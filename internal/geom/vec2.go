package geom

import "math"

// Vec2 is a 2D vector in font units.
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector in v's direction.
// The zero vector normalizes to itself.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l < 1e-12 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

func (v Vec2) DistanceTo(o Vec2) float64 {
	return v.Sub(o).Length()
}

// Midpoint returns the point halfway between v and o.
func (v Vec2) Midpoint(o Vec2) Vec2 {
	return Vec2{(v.X + o.X) / 2, (v.Y + o.Y) / 2}
}
