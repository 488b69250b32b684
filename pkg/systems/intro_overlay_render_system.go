package systems

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/cognicube/intro/pkg/components"
	"github.com/cognicube/intro/pkg/config"
	"github.com/cognicube/intro/pkg/utils"
)

// 开场界面配色
var (
	NeonYellow = color.RGBA{R: 0xFF, G: 0xDD, B: 0x00, A: 0xFF}
	NeonCyan   = color.RGBA{R: 0x00, G: 0xFF, B: 0xFF, A: 0xFF}
	NeonPink   = color.RGBA{R: 0xFF, G: 0x00, B: 0xFF, A: 0xFF}
)

// shimmerPeriod 启动文字青→粉渐变的循环周期（秒）
const shimmerPeriod = 3.0

// IntroOverlayRenderSystem 开场文字层渲染系统
//
// 职责：
//   - 启动文字（逐字打出的当前行 + 闪烁光标），提示出现后隐藏
//   - 左下角加载计数器，提示出现时淡出并下滑
//   - 入口按钮的脉冲光晕（按钮本身由 ebitenui 绘制）
//
// 过渡开始后整个文字层隐藏。
type IntroOverlayRenderSystem struct {
	cfg         *config.IntroConfig
	bootFace    *text.GoTextFace
	counterFace *text.GoTextFace
}

// NewIntroOverlayRenderSystem 创建开场文字层渲染系统
func NewIntroOverlayRenderSystem(cfg *config.IntroConfig, bootFace, counterFace *text.GoTextFace) *IntroOverlayRenderSystem {
	if cfg == nil {
		cfg = config.DefaultIntroConfig()
	}
	return &IntroOverlayRenderSystem{
		cfg:         cfg,
		bootFace:    bootFace,
		counterFace: counterFace,
	}
}

// CounterFadeStyle 计数器淡出样式
//
// 返回不透明度 1→0 与向下偏移 0→offset（ease-out）。
func CounterFadeStyle(fadeElapsed, duration, offset float64) (alpha, dy float64) {
	if !(duration > 0) {
		return 0, offset
	}
	e := utils.EaseOutCubic(fadeElapsed / duration)
	return 1 - e, offset * e
}

// PromptPulse 入口按钮脉冲
//
// 周期 period 内：不透明度 0.8 ↔ 1，缩放 0.98 ↔ 1.02，t=0 时处于最小值。
func PromptPulse(elapsed, period float64) (alpha, scale float64) {
	if !(period > 0) {
		return 1, 1
	}
	phase := (1 - math.Cos(2*math.Pi*elapsed/period)) / 2
	return 0.8 + 0.2*phase, 0.98 + 0.04*phase
}

// CursorVisible 光标在每个周期的前半段可见
func CursorVisible(elapsed, period float64) bool {
	if !(period > 0) {
		return true
	}
	f := elapsed/period - math.Floor(elapsed/period)
	return f < 0.5
}

// ShimmerColor 启动文字的青粉渐变色
func ShimmerColor(elapsed float64) color.RGBA {
	t := (1 - math.Cos(2*math.Pi*elapsed/shimmerPeriod)) / 2
	return lerpRGBA(NeonCyan, NeonPink, t)
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	l := func(x, y uint8) uint8 {
		return uint8(math.Round(utils.Lerp(float64(x), float64(y), utils.Clamp01(t))))
	}
	return color.RGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: l(a.A, b.A)}
}

// Draw 绘制文字层
//
// 参数：
//   - st: 开场序列状态快照
//   - transitioning: 过渡是否已开始（开始后不绘制任何内容）
//   - now: 序列时间（秒，用于光标与渐变）
func (s *IntroOverlayRenderSystem) Draw(screen *ebiten.Image, st components.IntroComponent, transitioning bool, now float64) {
	if transitioning || st.Phase == components.IntroDismissed {
		return
	}
	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())

	if st.TypedText != "" && !st.EnterPromptVisible {
		s.drawBootText(screen, st.TypedText, w, h, now)
	}
	s.drawCounter(screen, st, h)
}

func (s *IntroOverlayRenderSystem) drawBootText(screen *ebiten.Image, typed string, w, h, now float64) {
	if s.bootFace == nil {
		return
	}
	y := h*(1-config.BootTextBottomRatio) - s.bootFace.Size

	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.GeoM.Translate(w/2, y)
	op.ColorScale.ScaleWithColor(ShimmerColor(now))
	text.Draw(screen, typed, s.bootFace, op)

	if !CursorVisible(now, config.CursorBlinkPeriod) {
		return
	}
	tw, _ := text.Measure(typed, s.bootFace, 0)
	cop := &text.DrawOptions{}
	cop.GeoM.Translate(w/2+tw/2, y)
	cop.ColorScale.ScaleWithColor(NeonYellow)
	text.Draw(screen, "_", s.bootFace, cop)
}

func (s *IntroOverlayRenderSystem) drawCounter(screen *ebiten.Image, st components.IntroComponent, h float64) {
	if s.counterFace == nil {
		return
	}
	alpha, dy := 1.0, 0.0
	if st.CountVisualFading {
		alpha, dy = CounterFadeStyle(st.FadeElapsed, s.cfg.Counter.FadeDuration, s.cfg.Counter.FadeOffset)
	}
	if alpha <= 0 {
		return
	}

	label := fmt.Sprintf("%02d", st.LoadingPercent)
	x := config.CounterMargin
	y := h - config.CounterMargin - s.counterFace.Size + dy

	// 黄色描边：四向偏移各绘制一次
	for _, off := range [][2]float64{{-2, 0}, {2, 0}, {0, -2}, {0, 2}} {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x+off[0], y+off[1])
		op.ColorScale.ScaleWithColor(NeonYellow)
		op.ColorScale.ScaleAlpha(float32(alpha))
		text.Draw(screen, label, s.counterFace, op)
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(NeonCyan)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, label, s.counterFace, op)
}

// DrawPromptGlow 在入口按钮周围绘制脉冲光晕
func (s *IntroOverlayRenderSystem) DrawPromptGlow(screen *ebiten.Image, rect image.Rectangle, elapsed float64) {
	if rect.Empty() {
		return
	}
	alpha, scale := PromptPulse(elapsed, s.cfg.Prompt.PulsePeriod)

	cx := float64(rect.Min.X+rect.Max.X) / 2
	cy := float64(rect.Min.Y+rect.Max.Y) / 2
	hw := float64(rect.Dx()) / 2 * scale
	hh := float64(rect.Dy()) / 2 * scale

	for i, spread := range []float64{4, 12, 24} {
		a := alpha * 0.35 / float64(i+1)
		c := color.RGBA{
			R: uint8(float64(NeonYellow.R) * a),
			G: uint8(float64(NeonYellow.G) * a),
			B: uint8(float64(NeonYellow.B) * a),
			A: uint8(255 * a),
		}
		vector.StrokeRect(screen,
			float32(cx-hw-spread), float32(cy-hh-spread),
			float32(2*(hw+spread)), float32(2*(hh+spread)),
			2, c, true)
	}

	// 上下装饰线（宽度 80%）
	line := color.RGBA{R: NeonYellow.R, G: NeonYellow.G, B: NeonYellow.B, A: uint8(255 * alpha)}
	vector.FillRect(screen, float32(cx-hw*0.8), float32(cy-hh-2), float32(hw*1.6), 2, line, false)
	vector.FillRect(screen, float32(cx-hw*0.8), float32(cy+hh), float32(hw*1.6), 2, line, false)
}
