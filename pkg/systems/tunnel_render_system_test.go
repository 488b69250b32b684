package systems

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/cognicube/intro/internal/raymarch"
	"github.com/cognicube/intro/pkg/config"
)

// TestNewTunnelUniforms 逐帧 uniform 的构建与钳制
func TestNewTunnelUniforms(t *testing.T) {
	scene := config.DefaultIntroConfig().Scene

	tests := []struct {
		name     string
		w, h     float64
		zoom     float64
		wantZoom float32
		wantRes  [2]float32
	}{
		{"正常尺寸", 1920, 1080, 0.3, 0.3, [2]float32{1920, 1080}},
		{"零尺寸钳制为 1", 0, -5, 0, 0, [2]float32{1, 1}},
		{"进度超过 1", 800, 600, 1.7, 1, [2]float32{800, 600}},
		{"进度为 NaN", 800, 600, math.NaN(), 0, [2]float32{800, 600}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewTunnelUniforms(12.5, tt.w, tt.h, tt.zoom, scene)
			assert.Equal(t, float32(12.5), u.Time)
			assert.Equal(t, tt.wantRes, u.Resolution)
			assert.Equal(t, tt.wantZoom, u.ZoomProgress)
			assert.Equal(t, float32(5), u.CameraOffset)
			assert.Equal(t, float32(3), u.PathSpeed)
		})
	}
}

// TestTunnelUniforms_Map uniform 名与着色器变量一致
func TestTunnelUniforms_Map(t *testing.T) {
	u := NewTunnelUniforms(1, 640, 360, 0.5, config.DefaultIntroConfig().Scene)
	m := u.Map()

	for _, name := range []string{"Time", "Resolution", "ZoomProgress", "MarkerColor", "CameraOffset", "PathSpeed"} {
		assert.Contains(t, m, name)
	}
	assert.Equal(t, []float32{640, 360}, m["Resolution"])
	assert.Len(t, m["MarkerColor"], 3)
	assert.Equal(t, float32(0.5), m["ZoomProgress"])
}

// TestTunnelUniforms_Raymarch 转换为 CPU 渲染器输入
func TestTunnelUniforms_Raymarch(t *testing.T) {
	u := NewTunnelUniforms(2, 320, 180, 0.25, config.DefaultIntroConfig().Scene)
	ru := u.Raymarch()

	assert.Equal(t, 2.0, ru.Time)
	assert.Equal(t, 320.0, ru.Width)
	assert.Equal(t, 180.0, ru.Height)
	assert.Equal(t, 0.25, ru.ZoomProgress)

	def := raymarch.DefaultSceneConstants()
	assert.InDelta(t, def.MarkerColor.X, ru.Scene.MarkerColor.X, 1e-6)
	assert.InDelta(t, def.MarkerColor.Y, ru.Scene.MarkerColor.Y, 1e-6)
	assert.InDelta(t, def.MarkerColor.Z, ru.Scene.MarkerColor.Z, 1e-6)
	assert.Equal(t, def.CameraOffset, ru.Scene.CameraOffset)
	assert.Equal(t, def.PathSpeed, ru.Scene.PathSpeed)
}

// TestCPUFallback_RendersThrottledFrames 后台渲染按间隔节流，关闭后无协程泄漏
func TestCPUFallback_RendersThrottledFrames(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	f := newCPUFallback(raymarch.NewRenderer(16), time.Hour)
	defer f.Close()

	u := raymarch.Uniforms{Time: 1, Width: 8, Height: 4, Scene: raymarch.DefaultSceneConstants()}
	require.True(t, f.Request(u))
	assert.False(t, f.Request(u), "间隔内的请求被丢弃")

	var frame = f.Take()
	require.Eventually(t, func() bool {
		if frame == nil {
			frame = f.Take()
		}
		return frame != nil
	}, 5*time.Second, 5*time.Millisecond)

	assert.Equal(t, 8, frame.Bounds().Dx())
	assert.Equal(t, 4, frame.Bounds().Dy())
	assert.Nil(t, f.Take(), "帧只能取走一次")
}
