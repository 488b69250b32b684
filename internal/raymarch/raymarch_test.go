package raymarch

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// markerAheadTime puts sin(t*0.3) at -1 so the marker sits one path unit ahead.
const markerAheadTime = 5 * math.Pi / 3

func testUniforms(time, zoom float64) Uniforms {
	return Uniforms{
		Time:         time,
		Width:        640,
		Height:       360,
		ZoomProgress: zoom,
		Scene:        DefaultSceneConstants(),
	}
}

func finite(v Vec3) bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func TestPath(t *testing.T) {
	p := Path(0)
	assert.InDelta(t, 12.0, p.X, 1e-12)
	assert.InDelta(t, 20.0, p.Y, 1e-12)
	assert.Equal(t, 0.0, p.Z)

	for _, z := range []float64{-40, 3.5, 17, 250} {
		assert.Equal(t, z, Path(z).Z, "path advances along z")
	}
}

func TestBox(t *testing.T) {
	tests := []struct {
		name     string
		p        Vec3
		expected float64
	}{
		{"center", Vec3{}, -1},
		{"on face", Vec3{1, 0, 0}, 0},
		{"outside face", Vec3{3, 0, 0}, 2},
		{"outside corner", Vec3{2, 2, 1}, math.Sqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Box(tt.p, Vec3{1, 1, 1}), 1e-12)
		})
	}
}

func TestTunnelIsOpenOnPath(t *testing.T) {
	assert.InDelta(t, 4.0, Tunnel(Path(5)), 1e-9)
	assert.Greater(t, Tunnel(Path(markerAheadTime*3)), 1.0)
}

func TestDistanceReportsMarker(t *testing.T) {
	marker := Path(5)
	d, hit := Distance(marker, marker, 1.25)
	assert.True(t, hit)
	assert.InDelta(t, -markerHalfSize*distanceScale, d, 1e-9)

	// far behind the marker only the tunnel is near
	_, hit = Distance(Path(-30), marker, 1.25)
	assert.False(t, hit)
}

func TestHashAndFractalRanges(t *testing.T) {
	for i := 0; i < 200; i++ {
		x := float64(i)*7.3 - 500
		h := Hash(Vec2{x, x * 0.37})
		assert.GreaterOrEqual(t, h, 0.0)
		assert.Less(t, h, 1.0)

		f := Fractal(Vec2{x, -x * 1.9}, float64(i)*0.1)
		assert.Greater(t, f, 0.0)
		assert.LessOrEqual(t, f, 1.0)
	}
}

func TestCenterRayHitsMarker(t *testing.T) {
	u := testUniforms(markerAheadTime, 0)
	cam := NewCamera(u)
	require.InDelta(t, 1.45, cam.Marker.Sub(cam.From).Length(), 0.05)

	dir := cam.RayDir(u, 320, 180)
	assert.InDelta(t, 1.0, dir.Dot(cam.Forward()), 1e-12, "center ray looks at the marker")

	r := NewRenderer(200)
	_, hit := r.Shade(u, 320, 180)
	assert.True(t, hit, "center ray should reach the marker box")
}

func TestRenderIsPure(t *testing.T) {
	u := testUniforms(2.5, 0)
	a := Render(u, 101.5, 77.5)
	b := Render(u, 101.5, 77.5)
	assert.Equal(t, a, b)

	r := NewRenderer(48)
	u.ZoomProgress = 0.9
	assert.Equal(t, r.Render(u, 12.5, 300.5), r.Render(u, 12.5, 300.5))
}

func TestRenderDegradesGracefully(t *testing.T) {
	r := NewRenderer(48)
	tests := []struct {
		name string
		u    Uniforms
	}{
		{"negative time", testUniforms(-12, 0)},
		{"zero resolution", Uniforms{Time: 1, Scene: DefaultSceneConstants()}},
		{"NaN zoom", testUniforms(1, math.NaN())},
		{"zoom past one", testUniforms(1, 3)},
		{"zoom reset", testUniforms(1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := r.Render(tt.u, 5.5, 5.5)
			assert.True(t, finite(c), "got %+v", c)
		})
	}
}

func TestVignetteBlackensCorners(t *testing.T) {
	r := NewRenderer(64)
	for _, zoom := range []float64{0, 1e-9, 0.5, 0.8} {
		u := testUniforms(3, zoom)
		u.Width, u.Height = 100, 100
		assert.Equal(t, Vec3{}, r.Render(u, 0.5, 0.5), "zoom=%v", zoom)
		assert.Equal(t, Vec3{}, r.Render(u, 99.5, 99.5), "zoom=%v", zoom)
	}
}

func TestVignette(t *testing.T) {
	u := testUniforms(0, 0)
	u.Width, u.Height = 100, 100

	assert.InDelta(t, 1, Vignette(u, 50, 50), 1e-12)
	assert.Zero(t, Vignette(u, 0.5, 0.5))
	mid := Vignette(u, 40.5, 30.5)
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 1.0)

	// the factor only depends on the pixel, never on zoom
	u.ZoomProgress = 0.5
	assert.Equal(t, mid, Vignette(u, 40.5, 30.5))
}

func TestVignetteAppliedDuringZoom(t *testing.T) {
	r := NewRenderer(64)
	for _, zoom := range []float64{1e-9, 0.3, 0.5, 0.8} {
		u := testUniforms(3, zoom)
		u.Width, u.Height = 100, 100

		cam := NewCamera(u)
		raw := r.March(u, cam, cam.RayDir(u, 40.5, 30.5), 40.5, 30.5).Color
		want := raw.Scale(Vignette(u, 40.5, 30.5))
		got := r.Render(u, 40.5, 30.5)
		assert.InDelta(t, want.X, got.X, 1e-12, "zoom=%v", zoom)
		assert.InDelta(t, want.Y, got.Y, 1e-12, "zoom=%v", zoom)
		assert.InDelta(t, want.Z, got.Z, 1e-12, "zoom=%v", zoom)
	}
}

func TestZoomStartIsContinuous(t *testing.T) {
	r := NewRenderer(64)
	a := testUniforms(3, 1e-9)
	b := testUniforms(3, 2e-9)
	a.Width, a.Height = 100, 100
	b.Width, b.Height = 100, 100

	for _, px := range [][2]float64{{40.5, 30.5}, {10.5, 50.5}, {50.5, 50.5}} {
		ca := r.Render(a, px[0], px[1])
		cb := r.Render(b, px[0], px[1])
		assert.InDelta(t, ca.X, cb.X, 1e-3, "pixel %v", px)
		assert.InDelta(t, ca.Y, cb.Y, 1e-3, "pixel %v", px)
		assert.InDelta(t, ca.Z, cb.Z, 1e-3, "pixel %v", px)
	}
}

func TestExitTint(t *testing.T) {
	marker := DefaultSceneConstants().MarkerColor
	dark := marker.Scale(0.15 * 0.2)
	bright := Vec3{1, 1, 1}

	end := ExitTint(marker, 1, bright)
	assert.InDelta(t, dark.X, end.X, 1e-12)
	assert.InDelta(t, dark.Y, end.Y, 1e-12)
	assert.InDelta(t, dark.Z, end.Z, 1e-12)

	// below the fade threshold the color is untouched
	assert.Equal(t, bright, ExitTint(marker, 0.8, bright))

	// the flare peaks at 0.92 and pulls toward the marker hue
	peak := ExitTint(marker, flarePeak, Vec3{})
	after := ExitTint(marker, 0.97, Vec3{})
	assert.Greater(t, peak.X, after.X)
}

func TestRenderImage(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := NewRenderer(24)
	img, err := r.RenderImage(context.Background(), testUniforms(1, 0), 16, 9)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 9, img.Bounds().Dy())
	assert.Equal(t, uint8(0xff), img.RGBAAt(8, 4).A)

	// same pixel as the direct call; image row 4 of 9 is fragY 4.5
	cr, cg, cb := ToRGBA(r.Render(Uniforms{Time: 1, Width: 16, Height: 9, Scene: DefaultSceneConstants()}, 8.5, 4.5))
	px := img.RGBAAt(8, 4)
	assert.Equal(t, [3]uint8{cr, cg, cb}, [3]uint8{px.R, px.G, px.B})
}

func TestRenderImageErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := NewRenderer(24)
	_, err := r.RenderImage(context.Background(), testUniforms(1, 0), 0, 10)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.RenderImage(ctx, testUniforms(1, 0), 8, 8)
	assert.ErrorIs(t, err, context.Canceled)
}
