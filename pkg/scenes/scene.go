package scenes

import (
	"github.com/cognicube/intro/pkg/game"
)

// Scene is a type alias for game.Scene to maintain backward compatibility.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// IntroView 可挂载、可卸载的开场场景
type IntroView interface {
	game.Scene
	game.Teardowner
}

// ContentView 开场结束后显示的主内容
//
// Prepare 在过渡开始时调用（内容就绪但隐藏），Reveal 在过渡完成时调用。
type ContentView interface {
	game.Scene
	Prepare()
	Reveal()
}

// IntroCallbacks 开场序列通知宿主的回调（均可为 nil）
type IntroCallbacks struct {
	// OnReady 入口提示首次可见
	OnReady func()
	// OnTransitionStart 用户激活入口，缩放过渡即将开始
	OnTransitionStart func()
	// OnComplete 缩放过渡完成（只触发一次）
	OnComplete func()
}
