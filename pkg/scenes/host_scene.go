package scenes

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/cognicube/intro/pkg/config"
	"github.com/cognicube/intro/pkg/game"
	"github.com/cognicube/intro/pkg/logging"
	"github.com/cognicube/intro/pkg/systems"
)

// ErrIntroUnmounted 开场场景已卸载，无法热重载着色器
var ErrIntroUnmounted = errors.New("intro scene is not mounted")

// IntroFactory 使用宿主回调创建开场场景
type IntroFactory func(cb IntroCallbacks) IntroView

// HostScene 宿主：先播放开场，再揭示主内容
//
// 流程：
//  1. 挂载开场场景
//  2. 过渡开始 → 主内容 Prepare（隐藏）
//  3. 过渡完成 → 主内容 Reveal，UnmountDelay 秒后卸载开场场景
//
// 揭示期间开场场景仍在下层绘制，主内容淡入覆盖其上。
type HostScene struct {
	intro     IntroView
	content   ContentView
	scheduler *systems.Scheduler

	unmountDelay float64
	ready        bool
	completed    bool

	log *zap.SugaredLogger
}

// NewHostScene 创建宿主场景并立即挂载开场
func NewHostScene(cfg config.HostConfig, content ContentView, newIntro IntroFactory) *HostScene {
	h := &HostScene{
		content:      content,
		scheduler:    systems.NewScheduler(),
		unmountDelay: cfg.UnmountDelay,
		log:          logging.Named("HostScene"),
	}
	h.intro = newIntro(IntroCallbacks{
		OnReady:           h.onReady,
		OnTransitionStart: h.onTransitionStart,
		OnComplete:        h.onComplete,
	})
	return h
}

func (h *HostScene) onReady() {
	h.ready = true
	h.log.Info("intro ready, waiting for entry")
}

func (h *HostScene) onTransitionStart() {
	h.log.Debug("preparing main content")
	h.content.Prepare()
}

func (h *HostScene) onComplete() {
	if h.completed {
		return
	}
	h.completed = true
	h.content.Reveal()
	h.scheduler.After(h.unmountDelay, h.unmountIntro)
}

func (h *HostScene) unmountIntro() {
	if h.intro == nil {
		return
	}
	h.intro.Teardown()
	h.intro = nil
	h.log.Info("intro unmounted")
}

// Update 推进一帧
func (h *HostScene) Update(deltaTime float64) {
	h.scheduler.Update(deltaTime)
	if h.intro != nil {
		h.intro.Update(deltaTime)
	}
	h.content.Update(deltaTime)
}

// Draw 先绘制开场，再绘制主内容
func (h *HostScene) Draw(screen *ebiten.Image) {
	if h.intro != nil {
		h.intro.Draw(screen)
	}
	h.content.Draw(screen)
}

// Resize 转发渲染表面尺寸
func (h *HostScene) Resize(width, height int) {
	if r, ok := h.intro.(game.Resizable); ok {
		r.Resize(width, height)
	}
	if r, ok := h.content.(game.Resizable); ok {
		r.Resize(width, height)
	}
}

// ReloadShader 热重载开场着色器
func (h *HostScene) ReloadShader(source []byte) error {
	if h.intro == nil {
		return ErrIntroUnmounted
	}
	r, ok := h.intro.(interface{ ReloadShader([]byte) error })
	if !ok {
		return ErrIntroUnmounted
	}
	return r.ReloadShader(source)
}

// IntroMounted 开场场景是否仍挂载
func (h *HostScene) IntroMounted() bool {
	return h.intro != nil
}

// Ready 入口提示是否已出现过
func (h *HostScene) Ready() bool {
	return h.ready
}

// Completed 过渡是否已完成
func (h *HostScene) Completed() bool {
	return h.completed
}

// Teardown 卸载宿主及其子场景
func (h *HostScene) Teardown() {
	h.scheduler.Teardown()
	h.unmountIntro()
	if td, ok := h.content.(game.Teardowner); ok {
		td.Teardown()
	}
}
