package game

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicube/intro/pkg/config"
)

func mapFSReader(files fstest.MapFS) ReadFileFunc {
	return func(path string) ([]byte, error) {
		return fs.ReadFile(files, path)
	}
}

// TestResourceManager_LoadShaderSource 读取着色器源码，不缓存
func TestResourceManager_LoadShaderSource(t *testing.T) {
	files := fstest.MapFS{
		TunnelShaderPath: {Data: []byte("//kage:unit pixels\npackage main\n")},
	}
	rm := NewResourceManager(mapFSReader(files))

	src, err := rm.LoadShaderSource(TunnelShaderPath)
	require.NoError(t, err)
	assert.Contains(t, string(src), "package main")

	files[TunnelShaderPath] = &fstest.MapFile{Data: []byte("changed")}
	src, err = rm.LoadShaderSource(TunnelShaderPath)
	require.NoError(t, err)
	assert.Equal(t, "changed", string(src), "热重载必须读到最新内容")

	_, err = rm.LoadShaderSource("assets/shaders/missing.kage")
	assert.Error(t, err)
}

// TestResourceManager_LoadIntroConfig 加载失败时回退到默认配置
func TestResourceManager_LoadIntroConfig(t *testing.T) {
	tests := []struct {
		name      string
		files     fstest.MapFS
		override  string
		wantErr   bool
		wantLabel string
	}{
		{
			name:      "内置配置",
			files:     fstest.MapFS{IntroConfigPath: {Data: []byte("prompt:\n  label: GO\n")}},
			wantLabel: "GO",
		},
		{
			name:      "内置配置缺失",
			files:     fstest.MapFS{},
			wantErr:   true,
			wantLabel: "CLICK TO ENTER",
		},
		{
			name:      "非法配置",
			files:     fstest.MapFS{IntroConfigPath: {Data: []byte("transition:\n  duration: -1\n")}},
			wantErr:   true,
			wantLabel: "CLICK TO ENTER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm := NewResourceManager(mapFSReader(tt.files))
			cfg, err := rm.LoadIntroConfig(tt.override)
			require.NotNil(t, cfg, "失败时也必须返回可用配置")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantLabel, cfg.Prompt.Label)
		})
	}
}

// TestResourceManager_LoadIntroConfigOverride --config 指定的磁盘文件优先
func TestResourceManager_LoadIntroConfigOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intro.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transition:\n  duration: 4\n"), 0o644))

	rm := NewResourceManager(mapFSReader(fstest.MapFS{}))
	cfg, err := rm.LoadIntroConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.Transition.Duration)
	assert.Equal(t, config.DefaultIntroConfig().BootLines, cfg.BootLines)
}

// TestResourceManager_LoadFont 内置字体按名称与字号缓存
func TestResourceManager_LoadFont(t *testing.T) {
	rm := NewResourceManager(mapFSReader(fstest.MapFS{}))
	assert.Nil(t, rm.GetFont(FontRegular, 18))

	face, err := rm.LoadFont(FontRegular, 18)
	require.NoError(t, err)
	assert.Equal(t, 18.0, face.Size)

	again, err := rm.LoadFont(FontRegular, 18)
	require.NoError(t, err)
	assert.Same(t, face, again)
	assert.Same(t, face, rm.GetFont(FontRegular, 18))

	bold, err := rm.LoadFont(FontBold, 90)
	require.NoError(t, err)
	assert.NotSame(t, face, bold)

	bigger, err := rm.LoadFont(FontRegular, 24)
	require.NoError(t, err)
	assert.Same(t, face.Source, bigger.Source, "同一字体只解析一次")

	_, err = rm.LoadFont("assets/fonts/missing.ttf", 12)
	assert.Error(t, err)
}
