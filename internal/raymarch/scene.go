package raymarch

import "math"

const (
	// DetailEpsilon is the proximity at which a ray counts as touching the tunnel.
	DetailEpsilon = 0.00001

	tunnelRepeat   = 20.0
	tunnelFloor    = 3.0
	foldIterations = 5
	markerHalfSize = 1.4
	distanceScale  = 0.7

	fractalIterations = 7
)

var tunnelHalfSize = Vec3{5, 5, 10}

// Path is the camera/tunnel spline: a sinusoidal wobble plus a periodic
// lateral kick, advancing along +z.
func Path(t float64) Vec3 {
	p := Vec3{math.Sin(t*0.1) * 20, math.Cos(t*0.05) * 20, t}
	p.X += smoothstep(0, 0.5, math.Abs(0.5-fract(t*0.02))) * 12
	return p
}

// Hash is a cheap 2D -> [0,1) hash used for per-pixel jitter.
func Hash(p Vec2) float64 {
	p3 := Vec3{fract(p.X * 0.1031), fract(p.Y * 0.1031), fract(p.X * 0.1031)}
	d := p3.Dot(Vec3{p3.Y + 33.33, p3.Z + 33.33, p3.X + 33.33})
	p3 = Vec3{p3.X + d, p3.Y + d, p3.Z + d}
	return fract((p3.X + p3.Y) * p3.Z)
}

// Fractal folds p through an abs/divide map and returns exp(-10*trap), where
// trap is the orbit-trap minimum collected over the iterations.
func Fractal(p Vec2, t float64) float64 {
	p.X = math.Abs(5-mod(p.X*0.2, 10)) - 5
	p.Y = math.Abs(5-mod(p.Y*0.2, 10)) - 5
	ot := 1000.0
	for i := 0; i < fractalIterations; i++ {
		k := clamp(p.X*p.Y, 0.25, 2)
		p.X = math.Abs(p.X)/k - 1
		p.Y = math.Abs(p.Y)/k - 1
		if i > 0 {
			ot = math.Min(ot, math.Abs(p.X)+0.7*fract(math.Abs(p.Y)*0.05+t*0.05+float64(i)*0.3))
		}
	}
	return math.Exp(-10 * ot)
}

// Box is the signed distance from p to an axis-aligned box with half-size l.
func Box(p, l Vec3) float64 {
	c := p.Abs().Sub(l)
	outside := Vec3{math.Max(c.X, 0), math.Max(c.Y, 0), math.Max(c.Z, 0)}.Length()
	inside := math.Min(0, math.Max(c.X, math.Max(c.Y, c.Z)))
	return outside + inside
}

// sample is the result of one distance evaluation.
type sample struct {
	dist   float64
	boxHit bool
	// boxPos is the marker-local position; only meaningful when boxHit.
	boxPos Vec3
}

// markerLocal moves p into the rotating marker's frame.
func markerLocal(p, marker Vec3, t float64) Vec3 {
	q := p.Sub(marker)
	q.X, q.Z = rotate(q.X, q.Z, t*0.75)
	q.X, q.Y = rotate(q.X, q.Y, t*0.2)
	q.Y, q.Z = rotate(q.Y, q.Z, t*0.25)
	return q
}

// Tunnel is the folded box-tunnel distance alone. The scene is the inside of
// the folded box, so the value is positive in free space.
func Tunnel(p Vec3) float64 {
	c := Path(p.Z)
	p.X -= c.X
	p.Y -= c.Y
	s := sign(p.Y)
	p.Y = -math.Abs(p.Y) - tunnelFloor
	p.Z = mod(p.Z, tunnelRepeat) - tunnelRepeat/2
	a := s * -45 * math.Pi / 180
	for i := 0; i < foldIterations; i++ {
		p = p.Abs().Sub(Vec3{1, 1, 1})
		p.X, p.Z = rotate(p.X, p.Z, a)
		p.Y, p.Z = rotate(p.Y, p.Z, math.Pi/2)
	}
	return -Box(p, tunnelHalfSize)
}

// distance evaluates the full scene: tunnel min-combined with the marker box.
func distance(p, marker Vec3, t float64) sample {
	q := markerLocal(p, marker, t)
	b := Box(q, Vec3{markerHalfSize, markerHalfSize, markerHalfSize})
	f := Tunnel(p)
	if b <= f {
		return sample{dist: b * distanceScale, boxHit: true, boxPos: q}
	}
	return sample{dist: f * distanceScale}
}

// Distance reports the scene distance at p and whether the marker box is the
// nearest surface.
func Distance(p, marker Vec3, t float64) (float64, bool) {
	s := distance(p, marker, t)
	return s.dist, s.boxHit
}
