package systems

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/cognicube/intro/internal/raymarch"
	"github.com/cognicube/intro/pkg/config"
	"github.com/cognicube/intro/pkg/logging"
)

// TunnelUniforms 分形隧道着色器的逐帧输入（强类型绑定）
//
// 字段名与 fractal_tunnel.kage 中的 uniform 变量一一对应。
// 每帧由时钟与过渡状态重新构建，不持有任何身份。
type TunnelUniforms struct {
	Time         float32
	Resolution   [2]float32
	ZoomProgress float32
	MarkerColor  [3]float32
	CameraOffset float32
	PathSpeed    float32
}

// NewTunnelUniforms 构建一帧的 uniform
//
// 参数：
//   - elapsed: 场景时钟时间（秒）
//   - width, height: 渲染目标尺寸（设备像素）
//   - zoom: 过渡缩放进度 [0, 1]
//   - scene: 场景常量
func NewTunnelUniforms(elapsed, width, height, zoom float64, scene config.SceneConfig) TunnelUniforms {
	if math.IsNaN(zoom) {
		zoom = 0
	}
	zoom = math.Max(0, math.Min(1, zoom))
	return TunnelUniforms{
		Time:         float32(elapsed),
		Resolution:   [2]float32{float32(math.Max(1, width)), float32(math.Max(1, height))},
		ZoomProgress: float32(zoom),
		MarkerColor: [3]float32{
			float32(scene.MarkerColor[0]),
			float32(scene.MarkerColor[1]),
			float32(scene.MarkerColor[2]),
		},
		CameraOffset: float32(scene.CameraOffset),
		PathSpeed:    float32(scene.PathSpeed),
	}
}

// Map 转换为 DrawRectShaderOptions.Uniforms
func (u TunnelUniforms) Map() map[string]any {
	return map[string]any{
		"Time":         u.Time,
		"Resolution":   []float32{u.Resolution[0], u.Resolution[1]},
		"ZoomProgress": u.ZoomProgress,
		"MarkerColor":  []float32{u.MarkerColor[0], u.MarkerColor[1], u.MarkerColor[2]},
		"CameraOffset": u.CameraOffset,
		"PathSpeed":    u.PathSpeed,
	}
}

// Raymarch 转换为 CPU 渲染器的输入
func (u TunnelUniforms) Raymarch() raymarch.Uniforms {
	return raymarch.Uniforms{
		Time:         float64(u.Time),
		Width:        float64(u.Resolution[0]),
		Height:       float64(u.Resolution[1]),
		ZoomProgress: float64(u.ZoomProgress),
		Scene: raymarch.SceneConstants{
			MarkerColor: raymarch.Vec3{
				X: float64(u.MarkerColor[0]),
				Y: float64(u.MarkerColor[1]),
				Z: float64(u.MarkerColor[2]),
			},
			CameraOffset: float64(u.CameraOffset),
			PathSpeed:    float64(u.PathSpeed),
		},
	}
}

// TunnelRenderSystem 全屏绘制分形隧道
//
// 优先使用 Kage 着色器（DrawRectShader）；着色器编译失败时记录日志，
// 改用 internal/raymarch 在后台以低分辨率渲染 CPU 帧并拉伸到全屏。
// Reload 支持热重载着色器源码，失败时保留当前着色器。
type TunnelRenderSystem struct {
	shader   *ebiten.Shader
	op       *ebiten.DrawRectShaderOptions
	fallback *cpuFallback

	// fallbackFrame 主线程持有的 CPU 帧纹理
	fallbackFrame *ebiten.Image

	log *zap.SugaredLogger
}

// NewTunnelRenderSystem 创建隧道渲染系统
//
// 着色器编译失败不是致命错误：返回的系统会使用 CPU 回退渲染。
func NewTunnelRenderSystem(source []byte) *TunnelRenderSystem {
	s := &TunnelRenderSystem{
		op:  &ebiten.DrawRectShaderOptions{},
		log: logging.Named("TunnelRender"),
	}
	if err := s.Reload(source); err != nil {
		s.log.Warnw("shader unavailable, using CPU fallback", "error", err)
		s.startFallback()
	}
	return s
}

// Reload 重新编译着色器源码
//
// 成功时替换当前着色器并停止 CPU 回退；失败时返回错误，当前渲染路径不变。
func (s *TunnelRenderSystem) Reload(source []byte) error {
	if len(source) == 0 {
		return errors.New("empty shader source")
	}
	shader, err := ebiten.NewShader(source)
	if err != nil {
		return fmt.Errorf("failed to compile tunnel shader: %w", err)
	}

	if s.shader != nil {
		s.shader.Deallocate()
	}
	s.shader = shader
	if s.fallback != nil {
		s.fallback.Close()
		s.fallback = nil
		s.log.Info("shader compiled, CPU fallback stopped")
	}
	return nil
}

// UsingFallback 返回是否正在使用 CPU 回退渲染
func (s *TunnelRenderSystem) UsingFallback() bool {
	return s.shader == nil
}

func (s *TunnelRenderSystem) startFallback() {
	if s.fallback != nil {
		return
	}
	s.fallback = newCPUFallback(
		raymarch.NewRenderer(config.FallbackMaxSteps),
		time.Duration(config.FallbackRenderInterval*float64(time.Second)),
	)
}

// Draw 将隧道绘制到整个 screen
func (s *TunnelRenderSystem) Draw(screen *ebiten.Image, u TunnelUniforms) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return
	}

	if s.shader != nil {
		s.op.Uniforms = u.Map()
		screen.DrawRectShader(w, h, s.shader, s.op)
		return
	}
	s.drawFallback(screen, u, w, h)
}

func (s *TunnelRenderSystem) drawFallback(screen *ebiten.Image, u TunnelUniforms, w, h int) {
	if s.fallback == nil {
		s.startFallback()
	}

	lw := max(1, int(float64(w)*config.FallbackRenderScale))
	lh := max(1, int(float64(h)*config.FallbackRenderScale))
	ru := u.Raymarch()
	ru.Width, ru.Height = float64(lw), float64(lh)
	s.fallback.Request(ru)

	if img := s.fallback.Take(); img != nil {
		b := img.Bounds()
		if s.fallbackFrame == nil || s.fallbackFrame.Bounds().Size() != b.Size() {
			if s.fallbackFrame != nil {
				s.fallbackFrame.Deallocate()
			}
			s.fallbackFrame = ebiten.NewImage(b.Dx(), b.Dy())
		}
		s.fallbackFrame.WritePixels(img.Pix)
	}
	if s.fallbackFrame == nil {
		return
	}

	fb := s.fallbackFrame.Bounds()
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(float64(w)/float64(fb.Dx()), float64(h)/float64(fb.Dy()))
	screen.DrawImage(s.fallbackFrame, op)
}

// Close 释放着色器并停止后台渲染
func (s *TunnelRenderSystem) Close() {
	if s.fallback != nil {
		s.fallback.Close()
		s.fallback = nil
	}
	if s.shader != nil {
		s.shader.Deallocate()
		s.shader = nil
	}
	if s.fallbackFrame != nil {
		s.fallbackFrame.Deallocate()
		s.fallbackFrame = nil
	}
}

// cpuFallback 后台 CPU 渲染器
//
// 单个 worker 协程按节流间隔渲染最新请求的 uniform，
// 主线程通过 Take 取走完成的帧。
type cpuFallback struct {
	renderer *raymarch.Renderer
	interval time.Duration
	requests chan raymarch.Uniforms

	mu          sync.Mutex
	latest      *image.RGBA
	lastRequest time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
	log    *zap.SugaredLogger
}

func newCPUFallback(renderer *raymarch.Renderer, interval time.Duration) *cpuFallback {
	ctx, cancel := context.WithCancel(context.Background())
	f := &cpuFallback{
		renderer: renderer,
		interval: interval,
		requests: make(chan raymarch.Uniforms, 1),
		cancel:   cancel,
		log:      logging.Named("TunnelFallback"),
	}
	f.wg.Add(1)
	go f.run(ctx)
	return f
}

func (f *cpuFallback) run(ctx context.Context) {
	defer f.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case u := <-f.requests:
			img, err := f.renderer.RenderImage(ctx, u, int(u.Width), int(u.Height))
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					f.log.Warnw("fallback frame failed", "error", err)
				}
				continue
			}
			f.mu.Lock()
			f.latest = img
			f.mu.Unlock()
		}
	}
}

// Request 提交一帧渲染请求
//
// 距上次请求不足 interval 或 worker 仍有未处理的请求时丢弃，返回是否提交。
func (f *cpuFallback) Request(u raymarch.Uniforms) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	if !f.lastRequest.IsZero() && now.Sub(f.lastRequest) < f.interval {
		return false
	}
	select {
	case f.requests <- u:
		f.lastRequest = now
		return true
	default:
		return false
	}
}

// Take 取走最新完成的帧（没有新帧时返回 nil）
func (f *cpuFallback) Take() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	img := f.latest
	f.latest = nil
	return img
}

// Close 停止 worker 并等待其退出
func (f *cpuFallback) Close() {
	f.cancel()
	f.wg.Wait()
}
