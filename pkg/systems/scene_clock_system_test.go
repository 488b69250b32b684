package systems

import (
	"math"
	"testing"
)

// TestSceneClockSystem_Recurrence elapsed(n) = elapsed(n-1) + dt_n * rate_n，且单调不减
func TestSceneClockSystem_Recurrence(t *testing.T) {
	tests := []struct {
		name    string
		deltas  []float64
		boostAt int // 在第几帧之前调用 Boost（-1 表示不调用）
	}{
		{
			name:    "固定帧率",
			deltas:  []float64{1.0 / 60, 1.0 / 60, 1.0 / 60, 1.0 / 60},
			boostAt: -1,
		},
		{
			name:    "首帧为零",
			deltas:  []float64{0, 0.016, 0.033, 0.017},
			boostAt: -1,
		},
		{
			name:    "中途进入过渡倍率",
			deltas:  []float64{0.016, 0.016, 0.016, 0.016, 0.016},
			boostAt: 2,
		},
		{
			name:    "不规则帧间隔",
			deltas:  []float64{0.1, 0.0001, 0.25, 0, 0.05},
			boostAt: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := NewSceneClockSystem(1.5)
			prev := clock.Elapsed()

			for i, dt := range tt.deltas {
				if i == tt.boostAt {
					clock.Boost()
				}
				rate := clock.RateMultiplier()
				clock.Tick(dt)

				want := prev + dt*rate
				if math.Abs(clock.Elapsed()-want) > 1e-12 {
					t.Errorf("第 %d 帧：期望 %.12f，实际 %.12f", i, want, clock.Elapsed())
				}
				if clock.Elapsed() < prev {
					t.Errorf("第 %d 帧：时钟回退 %.6f → %.6f", i, prev, clock.Elapsed())
				}
				prev = clock.Elapsed()
			}
		})
	}
}

// TestSceneClockSystem_FirstFrameSentinel 首帧无效 dt 不会产生 NaN
func TestSceneClockSystem_FirstFrameSentinel(t *testing.T) {
	clock := NewSceneClockSystem(1.5)
	if clock.Clock().Started {
		t.Fatal("创建后不应标记为已开始")
	}

	clock.Tick(math.NaN())
	clock.Tick(-0.5)
	clock.Tick(math.Inf(1))

	if clock.Elapsed() != 0 {
		t.Errorf("无效 dt 不应推进时钟，实际 %v", clock.Elapsed())
	}
	if !clock.Clock().Started {
		t.Error("首帧之后应标记为已开始")
	}

	clock.Tick(0.5)
	if clock.Elapsed() != 0.5 {
		t.Errorf("期望 0.5，实际 %v", clock.Elapsed())
	}
}

// TestSceneClockSystem_Boost 倍率提升幂等且不可恢复
func TestSceneClockSystem_Boost(t *testing.T) {
	clock := NewSceneClockSystem(1.5)
	if clock.RateMultiplier() != 1 {
		t.Fatalf("初始倍率应为 1，实际 %v", clock.RateMultiplier())
	}

	clock.Boost()
	clock.Boost()
	if clock.RateMultiplier() != 1.5 {
		t.Errorf("提升后倍率应为 1.5，实际 %v", clock.RateMultiplier())
	}

	clock.Tick(1)
	if clock.Elapsed() != 1.5 {
		t.Errorf("期望 1.5，实际 %v", clock.Elapsed())
	}

	if got := NewSceneClockSystem(0).boost; got != 1 {
		t.Errorf("非正倍率应视为 1，实际 %v", got)
	}
}
