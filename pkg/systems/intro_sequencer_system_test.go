package systems

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicube/intro/pkg/components"
	"github.com/cognicube/intro/pkg/config"
)

// sequencerHarness 开场序列测试夹具：记录所有宿主回调次数
type sequencerHarness struct {
	seq        *IntroSequencerSystem
	transition *TransitionSystem

	ready, transitionStarts, completes int
}

func newSequencerHarness(t *testing.T, seed uint64) *sequencerHarness {
	t.Helper()
	cfg := config.DefaultIntroConfig()
	h := &sequencerHarness{}
	h.transition = NewTransitionSystem(cfg.Transition.Duration)
	h.seq = NewIntroSequencerSystem(cfg, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), h.transition)
	h.seq.SetCallbacks(func() { h.ready++ }, func() { h.transitionStarts++ })
	h.transition.SetCallbacks(nil, func() { h.completes++ })
	h.seq.Start()
	return h
}

// step 以 dt 推进 n 帧（序列与过渡同帧推进）
func (h *sequencerHarness) step(dt float64, n int) {
	for i := 0; i < n; i++ {
		h.seq.Update(dt)
		h.transition.Update(dt)
	}
}

// TestIntroSequencer_TypesEveryCharacterInOrder 每一行的每个字符按顺序打出
func TestIntroSequencer_TypesEveryCharacterInOrder(t *testing.T) {
	h := newSequencerHarness(t, 1)
	lines := config.DefaultIntroConfig().BootLines

	typed := make([]string, len(lines))
	prevChars := 0
	prevPercent := 0

	for i := 0; i < 20000 && !h.seq.State().SequenceComplete; i++ {
		h.step(0.001, 1)
		st := h.seq.State()

		line := lines[st.CurrentLineIndex]
		require.Truef(t, strings.HasPrefix(line, st.TypedText),
			"已打出的文本 %q 不是第 %d 行 %q 的前缀", st.TypedText, st.CurrentLineIndex, line)
		require.LessOrEqual(t, st.TypedChars-prevChars, 1, "每毫秒最多打出一个字符")
		typed[st.CurrentLineIndex] = st.TypedText

		assert.False(t, st.EnterPromptVisible, "序列完成前入口提示不可见")
		assert.GreaterOrEqual(t, st.LoadingPercent, prevPercent, "计数器不可回退")
		assert.LessOrEqual(t, st.LoadingPercent, 99)

		prevChars = st.TypedChars
		prevPercent = st.LoadingPercent
	}

	st := h.seq.State()
	require.True(t, st.SequenceComplete, "序列应在时间预算内完成")
	assert.Equal(t, lines, typed, "每一行都应完整打出")
	assert.Equal(t, 32+29+22, st.TypedChars)
	assert.Equal(t, 99, st.LoadingPercent, "序列完成时计数器到达 99")
	assert.Equal(t, components.IntroAwaitingEnterDelay, st.Phase)
	assert.False(t, st.EnterPromptVisible)
}

// TestIntroSequencer_PromptTiming 脚本打完并经过 settle 延迟后显示入口提示
//
// 最短：0.8 + 83×0.040 + 0.5×2 + 0.4 + 0.7 = 6.22s
// 最长：0.8 + 83×0.065 + 0.5×2 + 0.4 + 0.7 = 8.295s
func TestIntroSequencer_PromptTiming(t *testing.T) {
	for _, seed := range []uint64{1, 7, 42, 2024} {
		h := newSequencerHarness(t, seed)

		h.step(0.001, 6210)
		assert.False(t, h.seq.State().EnterPromptVisible, "seed %d: 6.21s 时不应显示提示", seed)
		assert.Zero(t, h.ready)

		h.step(0.001, 2090)
		st := h.seq.State()
		assert.True(t, st.SequenceComplete)
		assert.True(t, st.EnterPromptVisible, "seed %d: 8.3s 时应显示提示", seed)
		assert.True(t, st.CountVisualFading, "提示出现时计数器开始淡出")
		assert.Equal(t, components.IntroPromptVisible, h.seq.Phase())
		assert.Equal(t, 1, h.ready, "onReady 只触发一次")

		h.step(0.1, 600)
		assert.Equal(t, 1, h.ready, "等待用户期间 onReady 不再触发")
		assert.Equal(t, components.IntroPromptVisible, h.seq.Phase(), "无超时，一直等待")
	}
}

// TestIntroSequencer_SingleLargeStep 一次大 dt 也能走完整条时间线
func TestIntroSequencer_SingleLargeStep(t *testing.T) {
	h := newSequencerHarness(t, 3)
	h.seq.Update(100)

	st := h.seq.State()
	assert.Equal(t, components.IntroPromptVisible, st.Phase)
	assert.Equal(t, 99, st.LoadingPercent)
	assert.Equal(t, "Neural network online.", st.TypedText)
	assert.Equal(t, 1, h.ready)
}

// TestIntroSequencer_InvalidConfigFallsBack 未校验的非法配置回退到默认脚本
func TestIntroSequencer_InvalidConfigFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.IntroConfig)
	}{
		{"空脚本", func(c *config.IntroConfig) { c.BootLines = nil }},
		{"空行", func(c *config.IntroConfig) { c.BootLines = []string{"ok", ""} }},
		{"零字符延迟", func(c *config.IntroConfig) { c.Typing.CharDelay = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultIntroConfig()
			tt.mutate(cfg)

			seq := NewIntroSequencerSystem(cfg, rand.New(rand.NewPCG(1, 1)), nil)
			seq.Start()
			require.NotPanics(t, func() { seq.Update(100) })

			st := seq.State()
			assert.Equal(t, config.DefaultIntroConfig().BootLines, st.BootLines)
			assert.Equal(t, components.IntroPromptVisible, st.Phase)
		})
	}
}

// TestIntroSequencer_Deterministic 相同种子产生相同时间线
func TestIntroSequencer_Deterministic(t *testing.T) {
	a := newSequencerHarness(t, 99)
	b := newSequencerHarness(t, 99)

	for i := 0; i < 500; i++ {
		a.step(1.0/60, 1)
		b.step(1.0/60, 1)
		if diff := cmp.Diff(a.seq.State(), b.seq.State()); diff != "" {
			t.Fatalf("第 %d 帧状态不一致 (-a +b):\n%s", i, diff)
		}
	}
}

// TestIntroSequencer_CounterCurve 计数器逐渐加速，独立时长配置
func TestIntroSequencer_CounterCurve(t *testing.T) {
	assert.Zero(t, counterCurve(0))
	assert.InDelta(t, 1, counterCurve(1), 1e-12)
	assert.Less(t, counterCurve(0.5), 0.5, "前半程慢于线性")

	cfg := config.DefaultIntroConfig()
	cfg.Counter.Duration = 2
	seq := NewIntroSequencerSystem(cfg, rand.New(rand.NewPCG(1, 2)), nil)
	seq.Start()

	seq.Update(1)
	// floor(99 × (2×0.5 + 0.25) / 3) = floor(41.25)
	assert.Equal(t, 41, seq.State().LoadingPercent)

	seq.Update(1)
	assert.Equal(t, 99, seq.State().LoadingPercent, "计数器时长到达后为 99")
	assert.False(t, seq.State().SequenceComplete, "计数器与打字机独立计时")

	seq.Update(5)
	assert.Equal(t, 99, seq.State().LoadingPercent)
}

// TestIntroSequencer_ActivateStartsTransitionOnce 激活同步通知宿主，约 2.8s 后完成一次
func TestIntroSequencer_ActivateStartsTransitionOnce(t *testing.T) {
	h := newSequencerHarness(t, 5)

	assert.False(t, h.seq.Activate(), "提示出现前激活无效")
	assert.Zero(t, h.transitionStarts)
	assert.False(t, h.transition.Active())

	h.step(1.0/60, 600)
	require.Equal(t, components.IntroPromptVisible, h.seq.Phase())

	require.True(t, h.seq.Activate())
	assert.Equal(t, 1, h.transitionStarts, "onTransitionStart 在激活时同步触发")
	assert.True(t, h.transition.Active())
	assert.Equal(t, components.IntroDismissed, h.seq.Phase())
	assert.False(t, h.seq.State().EnterPromptVisible)

	assert.False(t, h.seq.Activate(), "重复激活为空操作")
	assert.Equal(t, 1, h.transitionStarts)

	frozen := h.seq.State()
	h.step(1.0/60, 170)

	assert.Equal(t, 1, h.completes)
	assert.Equal(t, 1.0, h.transition.Progress())
	if diff := cmp.Diff(frozen, h.seq.State()); diff != "" {
		t.Errorf("Dismissed 之后状态不应再变化 (-want +got):\n%s", diff)
	}
}

// TestIntroSequencer_TeardownDuringPendingTimers 卸载后待执行的回调不再修改状态
func TestIntroSequencer_TeardownDuringPendingTimers(t *testing.T) {
	h := newSequencerHarness(t, 11)
	h.step(0.05, 30)

	before := h.seq.State()
	require.NotEmpty(t, before.TypedText, "1.5s 时应已开始打字")

	h.seq.Teardown()
	h.step(0.05, 400)

	if diff := cmp.Diff(before, h.seq.State()); diff != "" {
		t.Errorf("卸载后状态发生变化 (-want +got):\n%s", diff)
	}
	assert.Zero(t, h.ready)
	assert.False(t, h.seq.Activate())
}
