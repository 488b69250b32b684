package systems

import (
	"math"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/cognicube/intro/pkg/components"
	"github.com/cognicube/intro/pkg/config"
	"github.com/cognicube/intro/pkg/logging"
)

// IntroSequencerSystem 开场序列状态机
//
// 状态流转：Booting → AwaitingEnterDelay → PromptVisible → Dismissed
//
//   - Booting: 打字机逐字打出启动脚本，同时加载计数器向 Target 递增
//   - AwaitingEnterDelay: 最后一行打完后的短暂停顿（纯节奏）
//   - PromptVisible: 显示入口提示，计数器开始淡出，等待用户激活（无超时）
//   - Dismissed: 终态，不再修改任何状态
//
// 打字机与停顿由 Scheduler 驱动；计数器按帧推进。
// 两条时间线独立预算到同一目标时长，打字完成时计数器直接对齐到 Target。
type IntroSequencerSystem struct {
	cfg        *config.IntroConfig
	rng        *rand.Rand
	state      *components.IntroComponent
	scheduler  *Scheduler
	transition *TransitionSystem

	lineRunes       []rune
	charIndex       int
	counterDuration float64
	started         bool
	torn            bool

	onReady           func()
	onTransitionStart func()

	log *zap.SugaredLogger
}

// NewIntroSequencerSystem 创建开场序列系统
//
// 参数：
//   - cfg: 开场配置（nil 或校验失败时使用默认值）
//   - rng: 打字抖动随机源（nil 时随机播种）
//   - transition: 用户激活后启动的过渡系统
func NewIntroSequencerSystem(cfg *config.IntroConfig, rng *rand.Rand, transition *TransitionSystem) *IntroSequencerSystem {
	log := logging.Named("IntroSequencer")
	if cfg == nil {
		cfg = config.DefaultIntroConfig()
	} else if err := cfg.Validate(); err != nil {
		log.Warnw("invalid intro config, using defaults", "error", err)
		cfg = config.DefaultIntroConfig()
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if transition == nil {
		transition = NewTransitionSystem(cfg.Transition.Duration)
	}

	lines := make([]string, len(cfg.BootLines))
	copy(lines, cfg.BootLines)

	return &IntroSequencerSystem{
		cfg: cfg,
		rng: rng,
		state: &components.IntroComponent{
			Phase:     components.IntroBooting,
			BootLines: lines,
		},
		scheduler:       NewScheduler(),
		transition:      transition,
		counterDuration: cfg.CounterDuration(),
		log:             log,
	}
}

// SetCallbacks 设置宿主回调（均可为 nil）
//
//   - onReady: 入口提示首次可见时触发一次
//   - onTransitionStart: 用户激活入口时同步触发一次
//
// 过渡完成回调由 TransitionSystem.SetCallbacks 设置。
func (s *IntroSequencerSystem) SetCallbacks(onReady, onTransitionStart func()) {
	s.onReady = onReady
	s.onTransitionStart = onTransitionStart
}

// Start 开始打字机与计数器（重复调用无效）
func (s *IntroSequencerSystem) Start() {
	if s.started || s.torn {
		return
	}
	s.started = true
	s.log.Debugw("boot sequence started",
		"lines", len(s.state.BootLines),
		"estimate", s.cfg.EstimateBootTextDuration(),
		"counterDuration", s.counterDuration)
	s.scheduler.After(s.cfg.Typing.InitialDelay, s.typeNextChar)
}

// Update 推进 dt 秒
func (s *IntroSequencerSystem) Update(dt float64) {
	if s.torn || !s.started || s.state.Phase == components.IntroDismissed {
		return
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		dt = 0
	}

	s.scheduler.Update(dt)
	if s.torn {
		return
	}

	switch s.state.Phase {
	case components.IntroBooting:
		s.advanceCounter(dt)
	case components.IntroPromptVisible:
		s.state.PromptElapsed += dt
	}

	if s.state.CountVisualFading && s.state.FadeElapsed < s.cfg.Counter.FadeDuration {
		s.state.FadeElapsed = math.Min(s.cfg.Counter.FadeDuration, s.state.FadeElapsed+dt)
	}
}

// counterCurve 计数器曲线：逐渐加速，f(0)=0，f(1)=1
//
// f(p) = (2p + p²) / 3
func counterCurve(p float64) float64 {
	return (2*p + p*p) / 3
}

func (s *IntroSequencerSystem) advanceCounter(dt float64) {
	target := s.cfg.Counter.Target
	if s.state.LoadingPercent >= target {
		return
	}
	s.state.CounterElapsed += dt

	p := 1.0
	if s.counterDuration > 0 {
		p = math.Min(1, s.state.CounterElapsed/s.counterDuration)
	}
	percent := int(math.Floor(float64(target) * counterCurve(p)))
	if percent > target {
		percent = target
	}
	if percent > s.state.LoadingPercent {
		s.state.LoadingPercent = percent
	}
}

// typeNextChar 打出当前行的下一个字符，行尾安排停顿
func (s *IntroSequencerSystem) typeNextChar() {
	if s.torn || s.state.Phase != components.IntroBooting {
		return
	}
	if s.lineRunes == nil {
		s.lineRunes = []rune(s.state.BootLines[s.state.CurrentLineIndex])
	}

	if s.charIndex < len(s.lineRunes) {
		s.state.TypedText += string(s.lineRunes[s.charIndex])
		s.state.TypedChars++
		s.charIndex++
		delay := s.cfg.Typing.CharDelay + s.rng.Float64()*s.cfg.Typing.CharJitter
		s.scheduler.After(delay, s.typeNextChar)
		return
	}

	last := s.state.CurrentLineIndex == len(s.state.BootLines)-1
	pause := s.cfg.Typing.LinePause
	if last {
		pause = s.cfg.Typing.FinalPause
	}
	s.scheduler.After(pause, func() {
		if last {
			s.completeSequence()
			return
		}
		s.state.TypedText = ""
		s.state.CurrentLineIndex++
		s.lineRunes = nil
		s.charIndex = 0
		s.typeNextChar()
	})
}

// completeSequence 启动脚本全部打完
func (s *IntroSequencerSystem) completeSequence() {
	if s.torn || s.state.Phase != components.IntroBooting {
		return
	}
	s.state.SequenceComplete = true
	s.state.LoadingPercent = s.cfg.Counter.Target
	s.state.Phase = components.IntroAwaitingEnterDelay
	s.log.Infow("boot sequence complete", "at", s.scheduler.Now(), "counterElapsed", s.state.CounterElapsed)

	s.scheduler.After(s.cfg.Typing.SettleDelay, s.showPrompt)
}

// showPrompt 显示入口提示并开始计数器淡出
func (s *IntroSequencerSystem) showPrompt() {
	if s.torn || s.state.Phase != components.IntroAwaitingEnterDelay {
		return
	}
	s.state.Phase = components.IntroPromptVisible
	s.state.EnterPromptVisible = true
	s.state.CountVisualFading = true
	s.log.Infow("enter prompt visible", "at", s.scheduler.Now())

	if s.onReady != nil {
		s.onReady()
	}
}

// Activate 用户激活入口
//
// 仅在 PromptVisible 状态有效：同步通知宿主，进入 Dismissed 并启动过渡。
// 重复激活返回 false，不会产生第二条过渡曲线。
func (s *IntroSequencerSystem) Activate() bool {
	if s.torn || s.state.Phase != components.IntroPromptVisible {
		return false
	}
	s.state.Phase = components.IntroDismissed
	s.state.EnterPromptVisible = false
	s.log.Infow("entry activated", "at", s.scheduler.Now())

	if s.onTransitionStart != nil {
		s.onTransitionStart()
	}
	s.transition.Start()
	return true
}

// Teardown 卸载：取消所有待执行回调，之后不再修改状态
func (s *IntroSequencerSystem) Teardown() {
	if s.torn {
		return
	}
	s.torn = true
	s.scheduler.Teardown()
	s.onReady = nil
	s.onTransitionStart = nil
	s.log.Debug("sequencer torn down")
}

// Phase 返回当前状态
func (s *IntroSequencerSystem) Phase() components.IntroPhase {
	return s.state.Phase
}

// State 返回状态副本
func (s *IntroSequencerSystem) State() components.IntroComponent {
	st := *s.state
	st.BootLines = append([]string(nil), s.state.BootLines...)
	return st
}

// Transition 返回关联的过渡系统
func (s *IntroSequencerSystem) Transition() *TransitionSystem {
	return s.transition
}

// Now 返回序列时间（秒）
func (s *IntroSequencerSystem) Now() float64 {
	return s.scheduler.Now()
}
