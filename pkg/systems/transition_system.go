package systems

import (
	"math"

	"go.uber.org/zap"

	"github.com/cognicube/intro/pkg/components"
	"github.com/cognicube/intro/pkg/logging"
	"github.com/cognicube/intro/pkg/utils"
)

// completionEpsilon 吸收逐帧累加 dt 的浮点误差（168 帧 × 1/60 ≈ 2.8 - 1e-15）
const completionEpsilon = 1e-9

// TransitionSystem 驱动开场退出时的缩放过渡（TransitionDriver）
//
// Start() 之后在固定时长内把进度从 0 推到 1（EaseInOutQuart），
// 每帧供渲染器读取作为 zoomProgress；到达 1 时触发一次完成回调并停止推进。
type TransitionSystem struct {
	state    *components.TransitionComponent
	duration float64
	now      float64
	torn     bool

	onStart    func()
	onComplete func()

	log *zap.SugaredLogger
}

// NewTransitionSystem 创建过渡系统
//
// 参数：
//   - duration: 过渡时长（秒），必须为正
func NewTransitionSystem(duration float64) *TransitionSystem {
	if !(duration > 0) {
		duration = 2.8
	}
	return &TransitionSystem{
		state:    &components.TransitionComponent{},
		duration: duration,
		log:      logging.Named("TransitionSystem"),
	}
}

// SetCallbacks 设置开始与完成回调（均可为 nil）
func (ts *TransitionSystem) SetCallbacks(onStart, onComplete func()) {
	ts.onStart = onStart
	ts.onComplete = onComplete
}

// Start 开始过渡
//
// 过渡进行中或已完成时重复调用是空操作（防止重复点击产生第二条进度曲线）。
// 返回是否真正开始。
func (ts *TransitionSystem) Start() bool {
	if ts.torn || ts.state.Active || ts.state.Completed {
		ts.log.Debugw("ignoring repeated start", "active", ts.state.Active, "completed", ts.state.Completed)
		return false
	}
	ts.state.Active = true
	ts.state.Progress = 0
	ts.state.Elapsed = 0
	ts.state.StartTime = ts.now
	ts.log.Infow("transition started", "duration", ts.duration, "at", ts.now)

	if ts.onStart != nil {
		ts.onStart()
	}
	return true
}

// Update 推进 dt 秒
func (ts *TransitionSystem) Update(dt float64) {
	if ts.torn {
		return
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		dt = 0
	}
	ts.now += dt
	if !ts.state.Active {
		return
	}

	ts.state.Elapsed += dt
	linear := ts.state.Elapsed / ts.duration
	if ts.state.Elapsed >= ts.duration-completionEpsilon {
		linear = 1
	}
	ts.state.Progress = math.Max(ts.state.Progress, utils.EaseInOutQuart(linear))

	if linear >= 1 {
		ts.state.Progress = 1
		ts.state.Active = false
		ts.state.Completed = true
		ts.log.Infow("transition complete", "elapsed", ts.state.Elapsed)
		if ts.onComplete != nil {
			ts.onComplete()
		}
	}
}

// Progress 返回缓动后的进度 [0, 1]
func (ts *TransitionSystem) Progress() float64 {
	return ts.state.Progress
}

// Active 返回是否正在过渡
func (ts *TransitionSystem) Active() bool {
	return ts.state.Active
}

// Completed 返回是否已完成
func (ts *TransitionSystem) Completed() bool {
	return ts.state.Completed
}

// State 返回过渡状态副本
func (ts *TransitionSystem) State() components.TransitionComponent {
	return *ts.state
}

// Teardown 停止推进并丢弃回调
func (ts *TransitionSystem) Teardown() {
	ts.torn = true
	ts.state.Active = false
	ts.onStart = nil
	ts.onComplete = nil
}
