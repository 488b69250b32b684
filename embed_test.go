package main

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicube/intro/pkg/config"
	"github.com/cognicube/intro/pkg/game"
)

// TestEmbeddedShader 内置着色器存在且使用像素坐标单位
func TestEmbeddedShader(t *testing.T) {
	src, err := fs.ReadFile(assetsFS, game.TunnelShaderPath)
	require.NoError(t, err)

	s := string(src)
	assert.True(t, strings.HasPrefix(s, "//kage:unit pixels"), "着色器必须以 //kage:unit pixels 开头")
	assert.Contains(t, s, "func Fragment(")
	for _, uniform := range []string{"Time", "Resolution", "ZoomProgress", "MarkerColor", "CameraOffset", "PathSpeed"} {
		assert.Contains(t, s, "var "+uniform+" ", "缺少 uniform %s", uniform)
	}
}

// TestEmbeddedIntroConfig 内置配置可以解析且与默认值一致
func TestEmbeddedIntroConfig(t *testing.T) {
	data, err := fs.ReadFile(dataFS, game.IntroConfigPath)
	require.NoError(t, err)

	cfg, err := config.LoadIntroConfig(data)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultIntroConfig(), cfg)
}
