package raymarch

import "math"

const (
	glowExponent = 1.35
	fogDensity   = 0.0012
	fogNear      = 5.0
)

// MarchResult is the outcome of marching one ray.
type MarchResult struct {
	Color Vec3
	// BoxHit is true if the marker box was the nearest surface at any step.
	BoxHit bool
	// Steps is the number of iterations taken.
	Steps int
	// Distance is the total distance travelled along the ray.
	Distance float64
}

// March integrates tunnel fog and marker glow along dir starting at the
// camera eye. The ray stops early only on the tunnel wall; while the marker
// box is the nearest surface it keeps going so the glow accumulates.
func (r *Renderer) March(u Uniforms, cam Camera, dir Vec3, fragX, fragY float64) MarchResult {
	t := cam.Clock
	marker := u.Scene.MarkerColor
	jitter := 1.3 - Hash(Vec2{fragX + t, fragY + t})*0.2

	var (
		g      Vec3
		td     float64
		boxPos Vec3
		res    MarchResult
	)
	for i := 0; i < r.MaxSteps; i++ {
		res.Steps = i + 1
		p := cam.From.Add(dir.Scale(td))
		s := distance(p, cam.Marker, t)
		d := s.dist * jitter
		if s.boxHit {
			boxPos = s.boxPos
			res.BoxHit = true
		}
		if d < DetailEpsilon && !s.boxHit {
			break
		}
		td += math.Max(DetailEpsilon, math.Abs(d))

		f := Fractal(p.XY(), t) + Fractal(p.XZ(), t) + Fractal(p.YZ(), t)
		b := Fractal(boxPos.XY(), t) + Fractal(boxPos.XZ(), t) + Fractal(boxPos.YZ(), t)

		if s.boxHit {
			colb := Lerp3(Vec3{b, b, b}, marker.Scale(1.5), 0.25)
			g = g.Add(colb.Scale(1 / (10 + d*d*12)))
			continue
		}
		fog := math.Exp(-fogDensity*td*td) * step(fogNear, td) / 2
		g = g.Add(Vec3{f, f, f}.Scale(fog / (8.5 + d*d*1.5)))
	}
	res.Distance = td
	res.Color = Pow3(g, glowExponent)
	return res
}
