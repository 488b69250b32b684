package raymarch

import "math"

// Vec2 is a 2D vector with GLSL-like helpers.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D vector with GLSL-like helpers.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is shorthand for constructing a Vec3.
func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

func (a Vec3) Add(b Vec3) Vec3      { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3      { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Mul(b Vec3) Vec3      { return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Dot(b Vec3) float64   { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) Length() float64      { return math.Sqrt(a.Dot(a)) }

func (a Vec3) Abs() Vec3 {
	return Vec3{math.Abs(a.X), math.Abs(a.Y), math.Abs(a.Z)}
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Normalize returns a unit vector. The zero vector is returned unchanged.
func (a Vec3) Normalize() Vec3 {
	l := a.Length()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}

func (a Vec3) XY() Vec2 { return Vec2{a.X, a.Y} }
func (a Vec3) XZ() Vec2 { return Vec2{a.X, a.Z} }
func (a Vec3) YZ() Vec2 { return Vec2{a.Y, a.Z} }

// Lerp3 is GLSL mix() on vectors.
func Lerp3(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// Pow3 raises each component to e. Negative components clamp to zero.
func Pow3(a Vec3, e float64) Vec3 {
	return Vec3{
		math.Pow(math.Max(a.X, 0), e),
		math.Pow(math.Max(a.Y, 0), e),
		math.Pow(math.Max(a.Z, 0), e),
	}
}

// rotate applies the GLSL idiom `v *= mat2(c, s, -s, c)`.
func rotate(x, y, a float64) (float64, float64) {
	s, c := math.Sincos(a)
	return x*c + y*s, -x*s + y*c
}

func fract(x float64) float64 {
	return x - math.Floor(x)
}

// mod follows GLSL: the result takes the sign of y.
func mod(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

func mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

// smoothstep matches GLSL, including reversed edges (e0 > e1).
func smoothstep(e0, e1, x float64) float64 {
	if e0 == e1 {
		if x < e0 {
			return 0
		}
		return 1
	}
	t := clamp((x-e0)/(e1-e0), 0, 1)
	return t * t * (3 - 2*t)
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func step(edge, x float64) float64 {
	if x < edge {
		return 0
	}
	return 1
}
