package components

// TransitionComponent 缩放过渡状态（TransitionState）
//
// 不变量：Active 期间 Progress 单调不减；Progress 到达 1 时 Active 变为 false，
// Completed 置为 true，完成回调只触发一次。
type TransitionComponent struct {
	// Active 是否正在过渡
	Active bool

	// Progress 缓动后的进度 [0, 1]
	Progress float64

	// StartTime 过渡开始时的场景时间（秒）
	StartTime float64

	// Elapsed 过渡已用时间（秒，线性）
	Elapsed float64

	// Completed 是否已完成（完成后不可重新开始）
	Completed bool
}
