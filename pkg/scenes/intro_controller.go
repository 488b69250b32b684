package scenes

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/cognicube/intro/pkg/components"
	"github.com/cognicube/intro/pkg/config"
	"github.com/cognicube/intro/pkg/logging"
	"github.com/cognicube/intro/pkg/systems"
)

// IntroController 组合开场序列的逻辑系统（不涉及任何绘制）
//
// 每帧更新顺序：时钟 → 序列（调度器、计数器）→ 过渡。
// 过渡开始时提升时钟倍率；过渡完成时通知宿主。
type IntroController struct {
	cfg        *config.IntroConfig
	clock      *systems.SceneClockSystem
	transition *systems.TransitionSystem
	sequencer  *systems.IntroSequencerSystem
	torn       bool

	log *zap.SugaredLogger
}

// NewIntroController 创建并启动开场序列
//
// 参数：
//   - cfg: 开场配置（nil 使用默认值）
//   - rng: 打字抖动随机源（nil 时随机播种）
//   - cb: 宿主回调
func NewIntroController(cfg *config.IntroConfig, rng *rand.Rand, cb IntroCallbacks) *IntroController {
	if cfg == nil {
		cfg = config.DefaultIntroConfig()
	}
	c := &IntroController{
		cfg:        cfg,
		clock:      systems.NewSceneClockSystem(cfg.Transition.TimeBoost),
		transition: systems.NewTransitionSystem(cfg.Transition.Duration),
		log:        logging.Named("IntroController"),
	}
	c.sequencer = systems.NewIntroSequencerSystem(cfg, rng, c.transition)

	c.transition.SetCallbacks(
		func() {
			c.clock.Boost()
			c.log.Debugw("zoom transition started", "clock", c.clock.Elapsed())
		},
		func() {
			c.log.Infow("zoom transition complete", "clock", c.clock.Elapsed())
			if cb.OnComplete != nil {
				cb.OnComplete()
			}
		},
	)
	c.sequencer.SetCallbacks(cb.OnReady, cb.OnTransitionStart)
	c.sequencer.Start()
	return c
}

// Update 推进 dt 秒
func (c *IntroController) Update(dt float64) {
	if c.torn {
		return
	}
	c.clock.Tick(dt)
	c.sequencer.Update(dt)
	if c.torn {
		return
	}
	c.transition.Update(dt)
}

// Activate 用户激活入口（仅在提示可见时有效）
func (c *IntroController) Activate() bool {
	if c.torn {
		return false
	}
	return c.sequencer.Activate()
}

// Uniforms 返回本帧的着色器参数
func (c *IntroController) Uniforms(width, height int) systems.TunnelUniforms {
	return systems.NewTunnelUniforms(c.clock.Elapsed(), float64(width), float64(height),
		c.transition.Progress(), c.cfg.Scene)
}

// State 返回开场序列状态副本
func (c *IntroController) State() components.IntroComponent {
	return c.sequencer.State()
}

// Transitioning 过渡是否已开始（进行中或已完成）
func (c *IntroController) Transitioning() bool {
	return c.transition.Active() || c.transition.Completed()
}

// Progress 返回过渡进度 [0, 1]
func (c *IntroController) Progress() float64 {
	return c.transition.Progress()
}

// Clock 返回动画时钟副本
func (c *IntroController) Clock() components.ClockComponent {
	return c.clock.Clock()
}

// Now 返回序列时间（秒）
func (c *IntroController) Now() float64 {
	return c.sequencer.Now()
}

// Config 返回开场配置
func (c *IntroController) Config() *config.IntroConfig {
	return c.cfg
}

// Teardown 卸载：取消所有待执行回调，过渡不再推进
func (c *IntroController) Teardown() {
	if c.torn {
		return
	}
	c.torn = true
	c.sequencer.Teardown()
	c.transition.Teardown()
}

// TornDown 是否已卸载
func (c *IntroController) TornDown() bool {
	return c.torn
}
