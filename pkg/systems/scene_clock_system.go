package systems

import (
	"math"

	"github.com/cognicube/intro/pkg/components"
)

// SceneClockSystem 推进着色器动画时钟
//
// 每帧调用一次 Tick(dt)：Elapsed += dt * RateMultiplier。
// 过渡开始时调用 Boost() 将倍率提升为固定常量，之后不可恢复（新场景新建时钟）。
type SceneClockSystem struct {
	clock *components.ClockComponent
	boost float64
}

// NewSceneClockSystem 创建时钟系统
//
// 参数：
//   - boost: 过渡期间的时间倍率（如 1.5），非正数视为 1
func NewSceneClockSystem(boost float64) *SceneClockSystem {
	if !(boost > 0) {
		boost = 1
	}
	return &SceneClockSystem{
		clock: &components.ClockComponent{RateMultiplier: 1},
		boost: boost,
	}
}

// Tick 推进一帧
//
// 首帧作为哨兵：此时还没有上一帧时间戳，任何无效 dt 都按 0 处理。
// 之后负数、NaN、Inf 同样按 0 处理，时钟只会原地不动而不会被污染。
func (s *SceneClockSystem) Tick(dt float64) {
	if !s.clock.Started {
		s.clock.Started = true
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return
	}
	s.clock.Elapsed += dt * s.clock.RateMultiplier
}

// Boost 进入过渡倍率（幂等）
func (s *SceneClockSystem) Boost() {
	if s.clock.Boosted {
		return
	}
	s.clock.Boosted = true
	s.clock.RateMultiplier = s.boost
}

// Elapsed 返回当前动画时间（秒）
func (s *SceneClockSystem) Elapsed() float64 {
	return s.clock.Elapsed
}

// RateMultiplier 返回当前时间倍率
func (s *SceneClockSystem) RateMultiplier() float64 {
	return s.clock.RateMultiplier
}

// Clock 返回时钟状态副本
func (s *SceneClockSystem) Clock() components.ClockComponent {
	return *s.clock
}
