//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。手动构建（资源复制见 embed.go）：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.cognicube.intro -o build/android/cognicube.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/CogniCube.xcframework -v ./mobile
package mobile

import (
	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/cognicube/intro/pkg/app"
	"github.com/cognicube/intro/pkg/embedded"
	"github.com/cognicube/intro/pkg/logging"
)

func init() {
	// 初始化嵌入资源
	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(assetsFS, dataFS)

	if _, err := logging.Init(true); err != nil {
		panic(err)
	}

	// 移动端没有命令行参数，使用默认配置
	introApp, err := app.NewApp(app.Config{Verbose: true})
	if err != nil {
		logging.Named("Mobile").Fatalw("app initialization failed", "error", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(introApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
