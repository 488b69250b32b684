package config

// 窗口与布局配置常量

const (
	// WindowTitle 窗口标题
	WindowTitle = "CogniCube"

	// WindowWidth 默认窗口宽度（逻辑像素）
	WindowWidth = 1280

	// WindowHeight 默认窗口高度（逻辑像素）
	WindowHeight = 720

	// TickRate 逻辑帧率（Ebitengine 默认 TPS）
	TickRate = 60

	// FallbackRenderScale CPU 回退渲染的分辨率缩放（相对屏幕）
	FallbackRenderScale = 0.125

	// FallbackRenderInterval CPU 回退渲染的最短刷新间隔（秒）
	FallbackRenderInterval = 0.25

	// FallbackMaxSteps CPU 回退渲染的步进上限
	FallbackMaxSteps = 160
)

// 开场界面布局（相对屏幕尺寸的比例）
const (
	// BootTextBottomRatio 启动文字基线距底部的比例
	BootTextBottomRatio = 0.15

	// PromptBottomRatio 入口按钮距底部的比例
	PromptBottomRatio = 0.10

	// CounterMargin 计数器距左下角的边距（像素）
	CounterMargin = 20.0

	// BootTextFontSize 启动文字字号
	BootTextFontSize = 18.0

	// CounterFontSize 计数器字号
	CounterFontSize = 90.0

	// PromptFontSize 入口按钮字号
	PromptFontSize = 19.0

	// CursorBlinkPeriod 光标闪烁周期（秒）
	CursorBlinkPeriod = 1.0
)
