// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的资源。
//
// 开发时（--watch）可设置磁盘覆盖目录：ReadFile 优先读取磁盘上的文件，
// 这样修改着色器或配置后无需重新编译即可热重载。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotInitialized 未调用 Init 时返回
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	mu          sync.RWMutex
	assetsFS    fs.FS
	dataFS      fs.FS
	overlayDir  string
	initialized bool
)

// Init 初始化资源文件系统
// 必须在 main() 开始时、任何资源加载之前调用
func Init(assets, data fs.FS) {
	mu.Lock()
	defer mu.Unlock()
	assetsFS = assets
	dataFS = data
	initialized = true
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	mu.RLock()
	defer mu.RUnlock()
	return initialized
}

// SetOverlayDir 设置磁盘覆盖目录（空字符串表示关闭）
func SetOverlayDir(dir string) {
	mu.Lock()
	defer mu.Unlock()
	overlayDir = dir
}

// OverlayDir 返回当前磁盘覆盖目录
func OverlayDir() string {
	mu.RLock()
	defer mu.RUnlock()
	return overlayDir
}

// normalize 标准化路径分隔符为正斜杠（embed.FS 使用正斜杠），并移除 "./" 前缀
func normalize(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}

// route 根据路径前缀选择文件系统
// 路径必须以 "assets/" 或 "data/" 开头
func route(path string) (fs.FS, error) {
	switch {
	case strings.HasPrefix(path, "assets/"):
		return assetsFS, nil
	case strings.HasPrefix(path, "data/"):
		return dataFS, nil
	}
	return nil, fmt.Errorf("unknown resource path prefix: %s (must start with 'assets/' or 'data/')", path)
}

// ReadFile 读取资源文件内容
//
// 设置了覆盖目录且磁盘上存在同名文件时读取磁盘，否则读取嵌入资源。
func ReadFile(path string) ([]byte, error) {
	mu.RLock()
	defer mu.RUnlock()
	if !initialized {
		return nil, ErrNotInitialized
	}

	path = normalize(path)
	fsys, err := route(path)
	if err != nil {
		return nil, err
	}

	if overlayDir != "" {
		data, err := os.ReadFile(filepath.Join(overlayDir, filepath.FromSlash(path)))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read overlay %s: %w", path, err)
		}
	}
	return fs.ReadFile(fsys, path)
}

// Exists 检查资源文件是否存在
func Exists(path string) bool {
	_, err := ReadFile(path)
	return err == nil
}
