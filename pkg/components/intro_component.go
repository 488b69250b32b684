package components

// IntroPhase 开场序列状态
type IntroPhase int

const (
	// IntroBooting 逐字打出启动脚本，计数器同时递增
	IntroBooting IntroPhase = iota
	// IntroAwaitingEnterDelay 脚本完成后的短暂停顿
	IntroAwaitingEnterDelay
	// IntroPromptVisible 显示入口提示，等待用户激活
	IntroPromptVisible
	// IntroDismissed 用户已激活，终止状态
	IntroDismissed
)

// String 返回状态名（用于日志）
func (p IntroPhase) String() string {
	switch p {
	case IntroBooting:
		return "booting"
	case IntroAwaitingEnterDelay:
		return "awaitingEnterDelay"
	case IntroPromptVisible:
		return "promptVisible"
	case IntroDismissed:
		return "dismissed"
	}
	return "unknown"
}

// IntroComponent 开场序列状态（IntroState）
//
// 不变量：
//   - EnterPromptVisible 只能在 SequenceComplete 之后、且经过 settle 延迟才变为 true
//   - LoadingPercent 单调不减，且不晚于 SequenceComplete 到达目标值（99）
//   - 进入 IntroDismissed 后不再修改
type IntroComponent struct {
	// Phase 当前状态
	Phase IntroPhase

	// BootLines 固定启动脚本
	BootLines []string

	// TypedText 当前行已打出的前缀
	TypedText string

	// CurrentLineIndex 当前行索引
	CurrentLineIndex int

	// TypedChars 累计已打出的字符数（按 rune 计，跨行）
	TypedChars int

	// SequenceComplete 启动脚本是否全部打完
	SequenceComplete bool

	// EnterPromptVisible 入口提示是否可见
	EnterPromptVisible bool

	// LoadingPercent 加载计数 [0, 99]
	LoadingPercent int

	// CountVisualFading 计数器是否开始淡出（仅视觉）
	CountVisualFading bool

	// CounterElapsed 计数器已运行时间（秒）
	CounterElapsed float64

	// FadeElapsed 计数器淡出已用时间（秒）
	FadeElapsed float64

	// PromptElapsed 入口提示已显示时间（秒，用于脉冲动画）
	PromptElapsed float64
}
