// Package raymarch is a CPU implementation of the CogniCube fractal tunnel.
//
// The scene is a domain-folded box tunnel that follows a wandering path, with
// a rotating marker cube floating ahead of the camera. Rays are marched with
// a volumetric glow integration rather than a single surface hit, and the
// result is shaped by the zoom progress of the exit transition.
//
// Everything here is a pure function of [Uniforms] and the fragment
// coordinate. The Kage program in assets/shaders/fractal_tunnel.kage mirrors
// this package line for line so the GPU path and the tests agree.
package raymarch

import "math"

const (
	// DefaultMaxSteps is the march iteration bound used by the shader.
	DefaultMaxSteps = 1000

	focalLength   = 0.8
	vignetteScale = 2.2
	zoomMinOffset = 0.25
	zoomLockBlend = 0.8
	fadeStart     = 0.8
	flareStart    = 0.88
	flarePeak     = 0.92
	flareEnd      = 0.95
)

// SceneConstants are fixed per-program inputs.
type SceneConstants struct {
	// MarkerColor tints the marker box glow and the exit flare.
	MarkerColor Vec3
	// CameraOffset is how far ahead along the path the marker sits.
	CameraOffset float64
	// PathSpeed scales time into path distance.
	PathSpeed float64
}

// DefaultSceneConstants returns the golden marker, offset 5 and path speed 3.
func DefaultSceneConstants() SceneConstants {
	return SceneConstants{
		MarkerColor:  Vec3{0.7, 0.45, 0.04},
		CameraOffset: 5,
		PathSpeed:    3,
	}
}

// Uniforms is the per-frame input set. It carries no identity: callers build
// a fresh value for every frame.
type Uniforms struct {
	Time         float64
	Width        float64
	Height       float64
	ZoomProgress float64
	Scene        SceneConstants
}

// resolution clamps degenerate sizes so aspect correction stays finite.
func (u Uniforms) resolution() (float64, float64) {
	w, h := u.Width, u.Height
	if !(w >= 1) {
		w = 1
	}
	if !(h >= 1) {
		h = 1
	}
	return w, h
}

func (u Uniforms) zoom() float64 {
	if math.IsNaN(u.ZoomProgress) {
		return 0
	}
	return clamp(u.ZoomProgress, 0, 1)
}

// Renderer holds the march bound. The zero value is not useful; use
// [NewRenderer] or the package-level [Render].
type Renderer struct {
	MaxSteps int
}

// NewRenderer returns a renderer with the given march bound. Non-positive
// values select [DefaultMaxSteps].
func NewRenderer(maxSteps int) *Renderer {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Renderer{MaxSteps: maxSteps}
}

var defaultRenderer = NewRenderer(DefaultMaxSteps)

// Render computes the color of one fragment. fragX/fragY are pixel-center
// coordinates with the origin at the bottom-left, like gl_FragCoord.
func Render(u Uniforms, fragX, fragY float64) Vec3 {
	return defaultRenderer.Render(u, fragX, fragY)
}

// Render computes the color of one fragment with this renderer's step bound.
func (r *Renderer) Render(u Uniforms, fragX, fragY float64) Vec3 {
	col, _ := r.Shade(u, fragX, fragY)
	return col
}

// Shade is Render that also reports whether the ray touched the marker box.
func (r *Renderer) Shade(u Uniforms, fragX, fragY float64) (Vec3, bool) {
	cam := NewCamera(u)
	dir := cam.RayDir(u, fragX, fragY)
	res := r.March(u, cam, dir, fragX, fragY)
	col := res.Color

	zoom := u.zoom()
	if zoom > fadeStart {
		return ExitTint(u.Scene.MarkerColor, zoom, col), res.BoxHit
	}
	return col.Scale(Vignette(u, fragX, fragY)), res.BoxHit
}

// Vignette is the edge darkening factor in [0,1]: 1 at the center, 0 at the
// corners. It applies at every zoom up to the exit fade.
func Vignette(u Uniforms, fragX, fragY float64) float64 {
	w, h := u.resolution()
	d := math.Hypot(fragX/w-0.5, fragY/h-0.5) * vignetteScale
	return smoothstep(0.9, 0, d)
}

// ExitTint cross-fades col toward a near-black marker tint past the fade
// threshold, with a short golden flare around the flare peak.
func ExitTint(marker Vec3, zoom float64, col Vec3) Vec3 {
	fade := smoothstep(fadeStart, 1, zoom)
	tint := Lerp3(Vec3{}, marker.Scale(0.15), 0.2)
	if zoom > flareStart && zoom < flareEnd {
		glow := smoothstep(flareStart, flarePeak, zoom) * (1 - smoothstep(flarePeak, flareEnd, zoom))
		tint = Lerp3(tint, marker.Scale(0.5), glow*0.5)
	}
	return Lerp3(col, tint, fade)
}

// ToRGBA converts a linear color to 8-bit channels, clamping to [0,1].
func ToRGBA(c Vec3) (r, g, b uint8) {
	conv := func(v float64) uint8 {
		if math.IsNaN(v) {
			return 0
		}
		return uint8(clamp(v, 0, 1)*255 + 0.5)
	}
	return conv(c.X), conv(c.Y), conv(c.Z)
}
