package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// IntroConfig 开场序列配置
//
// 所有时长单位为秒。默认值来自 data/intro.yaml，
// 缺省字段保持 DefaultIntroConfig() 中的值。
type IntroConfig struct {
	// BootLines 启动脚本（逐字打出）
	BootLines []string `yaml:"bootLines"`

	Typing     TypingConfig     `yaml:"typing"`
	Counter    CounterConfig    `yaml:"counter"`
	Prompt     PromptConfig     `yaml:"prompt"`
	Transition TransitionConfig `yaml:"transition"`
	Scene      SceneConfig      `yaml:"scene"`
	Host       HostConfig       `yaml:"host"`
}

// TypingConfig 打字机节奏
type TypingConfig struct {
	InitialDelay float64 `yaml:"initialDelay"` // 开始打字前的延迟
	CharDelay    float64 `yaml:"charDelay"`    // 每个字符的基础延迟
	CharJitter   float64 `yaml:"charJitter"`   // 每个字符额外随机延迟上限 [0, CharJitter)
	LinePause    float64 `yaml:"linePause"`    // 行与行之间的停顿
	FinalPause   float64 `yaml:"finalPause"`   // 最后一行打完后的停顿
	SettleDelay  float64 `yaml:"settleDelay"`  // 序列完成到显示入口提示的延迟
}

// CounterConfig 加载计数器
//
// BootTextDurationEstimate 与 Duration 是两个独立配置：
// 前者描述打字序列预计时长（0 表示按脚本估算），后者是计数器走到 Target 的时长（0 表示与前者相同）。
type CounterConfig struct {
	Target                   int     `yaml:"target"`
	Duration                 float64 `yaml:"duration"`
	BootTextDurationEstimate float64 `yaml:"bootTextDurationEstimate"`
	FadeDuration             float64 `yaml:"fadeDuration"` // 淡出动画时长
	FadeOffset               float64 `yaml:"fadeOffset"`   // 淡出时向下滑动的像素
}

// PromptConfig 入口提示
type PromptConfig struct {
	Label       string  `yaml:"label"`
	PulsePeriod float64 `yaml:"pulsePeriod"`
}

// TransitionConfig 缩放过渡
type TransitionConfig struct {
	Duration  float64 `yaml:"duration"`
	TimeBoost float64 `yaml:"timeBoost"` // 过渡期间着色器时钟倍率
}

// SceneConfig 着色器场景常量
type SceneConfig struct {
	MarkerColor  [3]float64 `yaml:"markerColor"`
	CameraOffset float64    `yaml:"cameraOffset"`
	PathSpeed    float64    `yaml:"pathSpeed"`
}

// HostConfig 主内容揭示
type HostConfig struct {
	RevealFadeDuration  float64 `yaml:"revealFadeDuration"`
	RevealScaleDuration float64 `yaml:"revealScaleDuration"`
	RevealScaleFrom     float64 `yaml:"revealScaleFrom"`
	UnmountDelay        float64 `yaml:"unmountDelay"` // 过渡完成后卸载开场场景的延迟
}

// DefaultIntroConfig 返回默认配置
func DefaultIntroConfig() *IntroConfig {
	return &IntroConfig{
		BootLines: []string{
			"Initializing neural interface...",
			"Calibrating neural network...",
			"Neural network online.",
		},
		Typing: TypingConfig{
			InitialDelay: 0.8,
			CharDelay:    0.040,
			CharJitter:   0.025,
			LinePause:    0.5,
			FinalPause:   0.4,
			SettleDelay:  0.7,
		},
		Counter: CounterConfig{
			Target:       99,
			FadeDuration: 1.0,
			FadeOffset:   30,
		},
		Prompt: PromptConfig{
			Label:       "CLICK TO ENTER",
			PulsePeriod: 2.5,
		},
		Transition: TransitionConfig{
			Duration:  2.8,
			TimeBoost: 1.5,
		},
		Scene: SceneConfig{
			MarkerColor:  [3]float64{0.7, 0.45, 0.04},
			CameraOffset: 5.0,
			PathSpeed:    3.0,
		},
		Host: HostConfig{
			RevealFadeDuration:  1.8,
			RevealScaleDuration: 4.2,
			RevealScaleFrom:     0.6,
			UnmountDelay:        0.8,
		},
	}
}

// LoadIntroConfig 从 YAML 数据加载配置
//
// 数据覆盖在默认值之上，结果经过 Validate 校验。
func LoadIntroConfig(data []byte) (*IntroConfig, error) {
	cfg := DefaultIntroConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal intro config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid intro config: %w", err)
	}
	return cfg, nil
}

// LoadIntroConfigFile 从磁盘文件加载配置
func LoadIntroConfigFile(path string) (*IntroConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read intro config %s: %w", path, err)
	}
	return LoadIntroConfig(data)
}

// Validate 校验配置取值
func (c *IntroConfig) Validate() error {
	var errs []error
	if len(c.BootLines) == 0 {
		errs = append(errs, errors.New("bootLines must not be empty"))
	}
	for i, line := range c.BootLines {
		if line == "" {
			errs = append(errs, fmt.Errorf("bootLines[%d] is empty", i))
		}
	}

	positive := map[string]float64{
		"typing.charDelay":         c.Typing.CharDelay,
		"transition.duration":      c.Transition.Duration,
		"transition.timeBoost":     c.Transition.TimeBoost,
		"scene.pathSpeed":          c.Scene.PathSpeed,
		"counter.fadeDuration":     c.Counter.FadeDuration,
		"prompt.pulsePeriod":       c.Prompt.PulsePeriod,
		"host.revealFadeDuration":  c.Host.RevealFadeDuration,
		"host.revealScaleDuration": c.Host.RevealScaleDuration,
	}
	for name, v := range positive {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", name, v))
		}
	}

	nonNegative := map[string]float64{
		"typing.initialDelay":              c.Typing.InitialDelay,
		"typing.charJitter":                c.Typing.CharJitter,
		"typing.linePause":                 c.Typing.LinePause,
		"typing.finalPause":                c.Typing.FinalPause,
		"typing.settleDelay":               c.Typing.SettleDelay,
		"counter.duration":                 c.Counter.Duration,
		"counter.bootTextDurationEstimate": c.Counter.BootTextDurationEstimate,
		"host.unmountDelay":                c.Host.UnmountDelay,
	}
	for name, v := range nonNegative {
		if !(v >= 0) {
			errs = append(errs, fmt.Errorf("%s must be >= 0, got %v", name, v))
		}
	}

	if c.Counter.Target < 1 || c.Counter.Target > 99 {
		errs = append(errs, fmt.Errorf("counter.target must be in [1, 99], got %d", c.Counter.Target))
	}
	if c.Host.RevealScaleFrom <= 0 || c.Host.RevealScaleFrom > 1 {
		errs = append(errs, fmt.Errorf("host.revealScaleFrom must be in (0, 1], got %v", c.Host.RevealScaleFrom))
	}
	return errors.Join(errs...)
}

// EstimateBootTextDuration 返回打字序列的预计时长（秒）
//
// 配置了 BootTextDurationEstimate 时直接返回；
// 否则按脚本估算：初始延迟 + 每字符平均延迟 + 行间停顿 + 末行停顿。
func (c *IntroConfig) EstimateBootTextDuration() float64 {
	if c.Counter.BootTextDurationEstimate > 0 {
		return c.Counter.BootTextDurationEstimate
	}
	chars := 0
	for _, line := range c.BootLines {
		chars += utf8.RuneCountInString(line)
	}
	perChar := c.Typing.CharDelay + c.Typing.CharJitter/2
	pauses := 0.0
	if n := len(c.BootLines); n > 0 {
		pauses = float64(n-1)*c.Typing.LinePause + c.Typing.FinalPause
	}
	return c.Typing.InitialDelay + float64(chars)*perChar + pauses
}

// CounterDuration 返回计数器走到 Target 的时长（秒）
func (c *IntroConfig) CounterDuration() float64 {
	if c.Counter.Duration > 0 {
		return c.Counter.Duration
	}
	return c.EstimateBootTextDuration()
}
