package components

// ClockComponent 场景动画时钟（AnimationClock）
//
// Elapsed 单调不减，仅由 SceneClockSystem 每帧修改，不可回退。
type ClockComponent struct {
	// Elapsed 已累计的动画时间（秒）
	Elapsed float64

	// RateMultiplier 时间倍率：正常为 1.0，过渡期间提升（如 1.5）
	RateMultiplier float64

	// Started 是否已经过首帧（首帧哨兵，防止无效 dt 污染时钟）
	Started bool

	// Boosted 倍率是否已提升（不可恢复）
	Boosted bool
}
