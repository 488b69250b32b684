package scenes

import (
	"image"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/cognicube/intro/pkg/config"
	"github.com/cognicube/intro/pkg/game"
	"github.com/cognicube/intro/pkg/logging"
	"github.com/cognicube/intro/pkg/systems"
	"github.com/cognicube/intro/pkg/utils"
)

// IntroScene 开场场景：分形隧道 + 启动文字 + 加载计数 + 入口按钮
//
// 绘制顺序：隧道（全屏）→ 文字层 → 按钮光晕 → 按钮。
// 过渡开始后只绘制隧道，缩放结束前不会出现任何文字。
type IntroScene struct {
	ctrl    *IntroController
	tunnel  *systems.TunnelRenderSystem
	overlay *systems.IntroOverlayRenderSystem
	ui      *introUI

	log *zap.SugaredLogger
}

// NewIntroScene 创建开场场景
//
// 字体或着色器加载失败都不是致命错误：缺少字体时不绘制对应文字，
// 着色器不可用时隧道使用 CPU 回退渲染。
func NewIntroScene(rm *game.ResourceManager, cfg *config.IntroConfig, rng *rand.Rand, cb IntroCallbacks) *IntroScene {
	if cfg == nil {
		cfg = config.DefaultIntroConfig()
	}
	s := &IntroScene{log: logging.Named("IntroScene")}

	src, err := rm.LoadShaderSource(game.TunnelShaderPath)
	if err != nil {
		s.log.Warnw("tunnel shader source unavailable", "error", err)
	}
	s.tunnel = systems.NewTunnelRenderSystem(src)

	bootFace, err := rm.LoadFont(game.FontMono, config.BootTextFontSize)
	if err != nil {
		s.log.Warnw("boot text font unavailable", "error", err)
	}
	counterFace, err := rm.LoadFont(game.FontBold, config.CounterFontSize)
	if err != nil {
		s.log.Warnw("counter font unavailable", "error", err)
	}
	promptFace, err := rm.LoadFont(game.FontBold, config.PromptFontSize)
	if err != nil {
		s.log.Warnw("prompt font unavailable", "error", err)
	}
	s.overlay = systems.NewIntroOverlayRenderSystem(cfg, bootFace, counterFace)

	s.ctrl = NewIntroController(cfg, rng, cb)
	s.ui = newIntroUI(cfg.Prompt.Label, promptFace, s.activate)
	s.ui.Resize(config.WindowHeight)
	return s
}

func (s *IntroScene) activate() {
	if s.ctrl.Activate() {
		s.ui.SetPromptVisible(false)
	}
}

// Update 推进一帧
func (s *IntroScene) Update(deltaTime float64) {
	if s.ctrl.TornDown() {
		return
	}
	s.ctrl.Update(deltaTime)

	st := s.ctrl.State()
	s.ui.SetPromptVisible(st.EnterPromptVisible)
	s.ui.Update()

	if !st.EnterPromptVisible {
		return
	}
	if utils.IsActivationKeyJustPressed() {
		s.activate()
		return
	}
	// ebitenui 只处理鼠标，触摸在按钮范围内同样视为激活
	if touched, x, y := utils.IsJustTouched(); touched && image.Pt(x, y).In(s.ui.ButtonRect()) {
		s.activate()
	}
}

// Draw 绘制开场场景
func (s *IntroScene) Draw(screen *ebiten.Image) {
	if s.ctrl.TornDown() {
		return
	}
	b := screen.Bounds()
	s.tunnel.Draw(screen, s.ctrl.Uniforms(b.Dx(), b.Dy()))

	st := s.ctrl.State()
	s.overlay.Draw(screen, st, s.ctrl.Transitioning(), s.ctrl.Now())
	if st.EnterPromptVisible {
		s.overlay.DrawPromptGlow(screen, s.ui.ButtonRect(), st.PromptElapsed)
		s.ui.Draw(screen)
	}
}

// Resize 更新渲染表面尺寸
func (s *IntroScene) Resize(width, height int) {
	s.ui.Resize(height)
}

// ReloadShader 热重载隧道着色器（编译失败时保留当前着色器）
func (s *IntroScene) ReloadShader(source []byte) error {
	return s.tunnel.Reload(source)
}

// UsingFallback 隧道是否正在使用 CPU 回退渲染
func (s *IntroScene) UsingFallback() bool {
	return s.tunnel.UsingFallback()
}

// Controller 返回开场逻辑控制器
func (s *IntroScene) Controller() *IntroController {
	return s.ctrl
}

// Teardown 卸载场景：取消待执行回调并释放 GPU 资源
func (s *IntroScene) Teardown() {
	if s.ctrl.TornDown() {
		return
	}
	s.ctrl.Teardown()
	s.tunnel.Close()
	s.log.Debug("intro scene unmounted")
}
