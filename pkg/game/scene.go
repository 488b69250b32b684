package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a top-level view (the intro sequence, the main content, or
// the host that composes both). Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Teardowner 是一个可选接口，用于场景在被卸载时释放资源
//
// 实现此接口的场景会在以下时机被调用 Teardown()：
//   - SceneManager 切换到另一个场景
//   - 游戏窗口关闭
//
// Teardown 之后场景不再修改任何状态，所有待执行的延迟回调都会失效。
type Teardowner interface {
	Teardown()
}

// Resizable 是一个可选接口，用于接收渲染表面尺寸（设备像素）
type Resizable interface {
	Resize(width, height int)
}
