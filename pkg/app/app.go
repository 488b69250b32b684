// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/cognicube/intro/pkg/config"
	"github.com/cognicube/intro/pkg/embedded"
	"github.com/cognicube/intro/pkg/game"
	"github.com/cognicube/intro/pkg/logging"
	"github.com/cognicube/intro/pkg/scenes"
	"github.com/cognicube/intro/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出（日志器由调用方按此初始化）
	Verbose bool
	// ConfigPath 磁盘上的开场配置，为空则使用内置 data/intro.yaml
	ConfigPath string
	// WatchDir 开发模式：从该目录读取并监视着色器与配置，为空则关闭
	WatchDir string
	// Seed 打字抖动随机种子，0 表示随机
	Seed uint64
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg             Config
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	introConfig     *config.IntroConfig
	watcher         *game.AssetWatcher

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数

	log *zap.SugaredLogger
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 配置加载失败时使用默认配置继续运行；监视目录无法打开时关闭热重载。
func NewApp(cfg Config) (*App, error) {
	a := &App{
		cfg:          cfg,
		sceneManager: game.NewSceneManager(),
		log:          logging.Named("App"),
	}

	if cfg.WatchDir != "" {
		embedded.SetOverlayDir(cfg.WatchDir)
		watcher, err := game.NewAssetWatcher(cfg.WatchDir, "assets/shaders", "data")
		if err != nil {
			a.log.Warnw("hot reload disabled", "dir", cfg.WatchDir, "error", err)
		} else {
			a.watcher = watcher
			a.log.Infow("watching assets for changes", "dir", cfg.WatchDir)
		}
	}

	a.resourceManager = game.NewResourceManager(nil)
	a.introConfig, _ = a.resourceManager.LoadIntroConfig(cfg.ConfigPath)

	a.sceneManager.SwitchTo(a.newHostScene())
	return a, nil
}

// newHostScene 用当前配置创建宿主场景（开场从头播放）
func (a *App) newHostScene() *scenes.HostScene {
	var rng *rand.Rand
	if a.cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(a.cfg.Seed, a.cfg.Seed))
	}
	introCfg := a.introConfig
	content := scenes.NewMainScene(a.resourceManager, introCfg.Host)
	return scenes.NewHostScene(introCfg.Host, content, func(cb scenes.IntroCallbacks) scenes.IntroView {
		return scenes.NewIntroScene(a.resourceManager, introCfg, rng, cb)
	})
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
			a.log.Debugf("delayed SetWindowSize(%d, %d)", config.WindowWidth, config.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏（移动端始终全屏）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.log.Debug("exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.applyReloads()

	tps := ebiten.TPS()
	if tps <= 0 {
		tps = config.TickRate
	}
	a.sceneManager.Update(1.0 / float64(tps))
	return nil
}

// applyReloads 处理监视器报告的文件变更
//
//   - 着色器：重新编译，失败时保留当前着色器
//   - 配置：重新加载并从头播放开场，非法配置被忽略
func (a *App) applyReloads() {
	if a.watcher == nil {
		return
	}
	paths, errs := a.watcher.Drain()
	for _, err := range errs {
		a.log.Warnw("asset watcher error", "error", err)
	}

	for _, path := range paths {
		switch path {
		case game.TunnelShaderPath:
			a.reloadShader()
		case game.IntroConfigPath:
			if a.cfg.ConfigPath != "" {
				continue
			}
			cfg, err := a.resourceManager.LoadIntroConfig("")
			if err != nil {
				a.log.Warnw("keeping previous intro config", "error", err)
				continue
			}
			a.introConfig = cfg
			a.sceneManager.SwitchTo(a.newHostScene())
			a.log.Info("intro config reloaded, restarting intro")
		}
	}
}

func (a *App) reloadShader() {
	host, ok := a.sceneManager.GetCurrentScene().(*scenes.HostScene)
	if !ok {
		return
	}
	src, err := a.resourceManager.LoadShaderSource(game.TunnelShaderPath)
	if err == nil {
		err = host.ReloadShader(src)
	}
	if err != nil {
		a.log.Warnw("shader reload failed", "error", err)
		return
	}
	a.log.Info("tunnel shader reloaded")
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回渲染表面尺寸（设备像素）
//
// 开场在整个窗口上渲染，分辨率随窗口变化；新尺寸转发给当前场景。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	w, h := DeviceSize(outsideWidth, outsideHeight, scale)
	a.sceneManager.Resize(w, h)
	return w, h
}

// DeviceSize 将逻辑尺寸换算为设备像素（至少 1×1）
func DeviceSize(width, height int, scale float64) (int, int) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = 1
	}
	w := int(math.Ceil(float64(width) * scale))
	h := int(math.Ceil(float64(height) * scale))
	return max(w, 1), max(h, 1)
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.cfg.Verbose
}

// Close 卸载场景并停止文件监视（窗口关闭后调用）
func (a *App) Close() error {
	a.sceneManager.Close()
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}
