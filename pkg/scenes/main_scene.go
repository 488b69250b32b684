package scenes

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/cognicube/intro/pkg/config"
	"github.com/cognicube/intro/pkg/game"
	"github.com/cognicube/intro/pkg/logging"
	"github.com/cognicube/intro/pkg/utils"
)

// 主内容文案
const (
	brandHeadline = "CogniCube"
	brandTagline  = "Your neural workspace, reimagined."
)

var mainSections = []string{
	"Neural Interface",
	"Adaptive Learning",
	"Realtime Insight",
}

var (
	mainBackground = color.RGBA{R: 0x0a, G: 0x0a, B: 0x14, A: 0xff}
	mainAccent     = color.RGBA{R: 0xff, G: 0xdd, B: 0x00, A: 0xff}
	mainText       = color.RGBA{R: 0xe6, G: 0xe6, B: 0xf0, A: 0xff}
)

// RevealStyle 返回揭示动画在 elapsed 秒时的透明度与缩放
//
// 透明度 0→1，时长 RevealFadeDuration，EaseInOutCubic；
// 缩放 RevealScaleFrom→1，时长 RevealScaleDuration，EaseOutCubic。
func RevealStyle(elapsed float64, cfg config.HostConfig) (alpha, scale float64) {
	if !(elapsed > 0) {
		return 0, cfg.RevealScaleFrom
	}
	fade := 1.0
	if cfg.RevealFadeDuration > 0 {
		fade = math.Min(1, elapsed/cfg.RevealFadeDuration)
	}
	grow := 1.0
	if cfg.RevealScaleDuration > 0 {
		grow = math.Min(1, elapsed/cfg.RevealScaleDuration)
	}
	alpha = utils.EaseInOutCubic(fade)
	scale = cfg.RevealScaleFrom + (1-cfg.RevealScaleFrom)*utils.EaseOutCubic(grow)
	return alpha, scale
}

// MainScene 开场结束后显示的主内容
//
// 过渡开始时 Prepare（内容就绪但不可见），完成时 Reveal 开始淡入与放大。
// 内容先绘制到离屏画布，再以屏幕中心为原点缩放。
type MainScene struct {
	cfg config.HostConfig

	headlineFace *text.GoTextFace
	taglineFace  *text.GoTextFace
	sectionFace  *text.GoTextFace

	canvas *ebiten.Image

	prepared  bool
	revealing bool
	elapsed   float64
}

// NewMainScene 创建主内容场景（字体可为 nil）
func NewMainScene(rm *game.ResourceManager, cfg config.HostConfig) *MainScene {
	s := &MainScene{cfg: cfg}
	if rm == nil {
		return s
	}
	log := logging.Named("MainScene")
	var err error
	if s.headlineFace, err = rm.LoadFont(game.FontBold, 72); err != nil {
		log.Warnw("headline font unavailable", "error", err)
	}
	if s.taglineFace, err = rm.LoadFont(game.FontRegular, 22); err != nil {
		log.Warnw("tagline font unavailable", "error", err)
	}
	if s.sectionFace, err = rm.LoadFont(game.FontMono, 18); err != nil {
		log.Warnw("section font unavailable", "error", err)
	}
	return s
}

// Prepare 内容就绪但保持隐藏
func (s *MainScene) Prepare() {
	s.prepared = true
}

// Reveal 开始揭示动画（重复调用无效）
func (s *MainScene) Reveal() {
	if s.revealing {
		return
	}
	s.prepared = true
	s.revealing = true
	s.elapsed = 0
}

// Prepared 内容是否已就绪
func (s *MainScene) Prepared() bool {
	return s.prepared
}

// Revealing 是否已开始揭示
func (s *MainScene) Revealing() bool {
	return s.revealing
}

// Style 返回当前帧的透明度与缩放
func (s *MainScene) Style() (alpha, scale float64) {
	if !s.revealing {
		return 0, s.cfg.RevealScaleFrom
	}
	return RevealStyle(s.elapsed, s.cfg)
}

func (s *MainScene) Update(deltaTime float64) {
	if !s.revealing || !(deltaTime > 0) || math.IsInf(deltaTime, 0) {
		return
	}
	s.elapsed += deltaTime
}

func (s *MainScene) Draw(screen *ebiten.Image) {
	alpha, scale := s.Style()
	if alpha <= 0 {
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return
	}
	if s.canvas == nil || s.canvas.Bounds().Dx() != w || s.canvas.Bounds().Dy() != h {
		if s.canvas != nil {
			s.canvas.Deallocate()
		}
		s.canvas = ebiten.NewImage(w, h)
	}
	s.canvas.Clear()
	s.drawContent(s.canvas, float64(w), float64(h))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(w)/2, float64(h)/2)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(s.canvas, op)
}

func (s *MainScene) drawContent(dst *ebiten.Image, w, h float64) {
	dst.Fill(mainBackground)

	y := h * 0.3
	if s.headlineFace != nil {
		op := &text.DrawOptions{}
		op.PrimaryAlign = text.AlignCenter
		op.GeoM.Translate(w/2, y)
		op.ColorScale.ScaleWithColor(mainAccent)
		text.Draw(dst, brandHeadline, s.headlineFace, op)
		y += s.headlineFace.Size * 1.4
	}
	if s.taglineFace != nil {
		for _, line := range utils.WrapText(brandTagline, s.taglineFace, w*0.8) {
			op := &text.DrawOptions{}
			op.PrimaryAlign = text.AlignCenter
			op.GeoM.Translate(w/2, y)
			op.ColorScale.ScaleWithColor(mainText)
			text.Draw(dst, line, s.taglineFace, op)
			y += s.taglineFace.Size * 1.5
		}
		y += s.taglineFace.Size * 1.5
	}

	// 分区标题横向排列，每个标题上方一条强调线
	colW := w / float64(len(mainSections))
	for i, title := range mainSections {
		cx := colW*float64(i) + colW/2
		vector.FillRect(dst, float32(cx-colW*0.3), float32(y), float32(colW*0.6), 2, mainAccent, false)
		if s.sectionFace == nil {
			continue
		}
		op := &text.DrawOptions{}
		op.PrimaryAlign = text.AlignCenter
		op.GeoM.Translate(cx, y+16)
		op.ColorScale.ScaleWithColor(mainText)
		text.Draw(dst, title, s.sectionFace, op)
	}
}

// Teardown 释放离屏画布
func (s *MainScene) Teardown() {
	if s.canvas != nil {
		s.canvas.Deallocate()
		s.canvas = nil
	}
}
