package scenes

import (
	"math/rand/v2"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicube/intro/pkg/config"
)

type fakeIntro struct {
	cb        IntroCallbacks
	updates   int
	draws     int
	teardowns int
	width     int
	height    int
}

func (f *fakeIntro) Update(float64)           { f.updates++ }
func (f *fakeIntro) Draw(*ebiten.Image)       { f.draws++ }
func (f *fakeIntro) Teardown()                { f.teardowns++ }
func (f *fakeIntro) Resize(width, height int) { f.width, f.height = width, height }

type fakeContent struct {
	prepares, reveals, updates, draws int
}

func (f *fakeContent) Update(float64)     { f.updates++ }
func (f *fakeContent) Draw(*ebiten.Image) { f.draws++ }
func (f *fakeContent) Prepare()           { f.prepares++ }
func (f *fakeContent) Reveal()            { f.reveals++ }

func newFakeHost() (*HostScene, *fakeIntro, *fakeContent) {
	intro := &fakeIntro{}
	content := &fakeContent{}
	host := NewHostScene(config.DefaultIntroConfig().Host, content, func(cb IntroCallbacks) IntroView {
		intro.cb = cb
		return intro
	})
	return host, intro, content
}

// TestHostScene_Lifecycle 过渡开始时准备主内容，完成时揭示，0.8 秒后卸载开场
func TestHostScene_Lifecycle(t *testing.T) {
	host, intro, content := newFakeHost()
	require.NotNil(t, intro.cb.OnComplete)
	assert.True(t, host.IntroMounted())

	intro.cb.OnReady()
	assert.True(t, host.Ready())

	intro.cb.OnTransitionStart()
	assert.Equal(t, 1, content.prepares)
	assert.Zero(t, content.reveals)

	intro.cb.OnComplete()
	assert.Equal(t, 1, content.reveals)
	assert.True(t, host.Completed())
	assert.True(t, host.IntroMounted(), "完成后开场场景暂时保留")

	host.Update(0.5)
	assert.True(t, host.IntroMounted())
	assert.Equal(t, 1, intro.updates)

	host.Update(0.31)
	assert.False(t, host.IntroMounted())
	assert.Equal(t, 1, intro.teardowns)
	assert.Equal(t, 1, intro.updates, "卸载后不再更新开场")
	assert.Equal(t, 2, content.updates)

	intro.cb.OnComplete()
	assert.Equal(t, 1, content.reveals, "完成回调重复触发时忽略")

	host.Draw(nil)
	assert.Zero(t, intro.draws)
	assert.Equal(t, 1, content.draws)

	host.Teardown()
	assert.Equal(t, 1, intro.teardowns, "已卸载的开场不会再次 Teardown")
}

// TestHostScene_ForwardsResizeAndDraw 挂载期间开场在下层绘制
func TestHostScene_ForwardsResizeAndDraw(t *testing.T) {
	host, intro, content := newFakeHost()

	host.Resize(1920, 1080)
	assert.Equal(t, 1920, intro.width)
	assert.Equal(t, 1080, intro.height)

	host.Draw(nil)
	assert.Equal(t, 1, intro.draws)
	assert.Equal(t, 1, content.draws)

	assert.ErrorIs(t, host.ReloadShader([]byte("x")), ErrIntroUnmounted, "假开场不支持热重载")

	host.Teardown()
	assert.Equal(t, 1, intro.teardowns)
	assert.False(t, host.IntroMounted())
	assert.ErrorIs(t, host.ReloadShader(nil), ErrIntroUnmounted)
}

// headlessIntro 使用真实控制器、不绘制的开场场景
type headlessIntro struct {
	*IntroController
}

func (headlessIntro) Draw(*ebiten.Image) {}

// TestHostScene_WithIntroController 完整流程：提示 → 激活 → 揭示 → 卸载
func TestHostScene_WithIntroController(t *testing.T) {
	var ctrl *IntroController
	content := NewMainScene(nil, config.DefaultIntroConfig().Host)
	host := NewHostScene(config.DefaultIntroConfig().Host, content, func(cb IntroCallbacks) IntroView {
		ctrl = NewIntroController(config.DefaultIntroConfig(), rand.New(rand.NewPCG(1, 2)), cb)
		return headlessIntro{ctrl}
	})

	for i := 0; i < 60*15 && !host.Ready(); i++ {
		host.Update(frameDelta)
	}
	require.True(t, host.Ready())
	assert.False(t, content.Prepared())

	require.True(t, ctrl.Activate())
	assert.True(t, content.Prepared())
	assert.False(t, content.Revealing())

	for i := 0; i < 168; i++ {
		host.Update(frameDelta)
	}
	assert.True(t, host.Completed())
	assert.True(t, content.Revealing())
	assert.True(t, host.IntroMounted())

	for i := 0; i < 50 && host.IntroMounted(); i++ {
		host.Update(frameDelta)
	}
	assert.False(t, host.IntroMounted())
	assert.True(t, ctrl.TornDown())

	host.Teardown()
}
