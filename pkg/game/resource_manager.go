package game

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/cognicube/intro/pkg/config"
	"github.com/cognicube/intro/pkg/embedded"
	"github.com/cognicube/intro/pkg/logging"
)

// 资源路径
const (
	// TunnelShaderPath 分形隧道 Kage 着色器
	TunnelShaderPath = "assets/shaders/fractal_tunnel.kage"

	// IntroConfigPath 内置开场配置
	IntroConfigPath = "data/intro.yaml"
)

// 内置字体名（golang.org/x/image/font/gofont）
const (
	FontRegular = "goregular"
	FontBold    = "gobold"
	FontMono    = "gomono"
)

var builtinFonts = map[string][]byte{
	FontRegular: goregular.TTF,
	FontBold:    gobold.TTF,
	FontMono:    gomono.TTF,
}

// ReadFileFunc 读取资源文件的函数（嵌入资源或磁盘）
type ReadFileFunc func(path string) ([]byte, error)

// ResourceManager is responsible for centralized management of app resources.
// It loads shader sources, the intro configuration and font faces,
// caching font sources and faces so they are built only once.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. All loading happens on the
// Ebitengine update goroutine.
//
// Usage:
//
//	rm := NewResourceManager(nil) // embedded resources
//	face, err := rm.LoadFont(FontRegular, 18)
//	if err != nil {
//	    logger.Warnw("font unavailable", "error", err)
//	}
type ResourceManager struct {
	readFile      ReadFileFunc
	fontSources   map[string]*text.GoTextFaceSource // Cache for parsed font sources: name/path -> source
	fontFaceCache map[string]*text.GoTextFace       // Cache for Ebitengine v2 text faces: name:size -> face
}

// NewResourceManager creates and initializes a new ResourceManager instance.
//
// Parameters:
//   - readFile: resource reader; nil uses embedded.ReadFile.
func NewResourceManager(readFile ReadFileFunc) *ResourceManager {
	if readFile == nil {
		readFile = embedded.ReadFile
	}
	return &ResourceManager{
		readFile:      readFile,
		fontSources:   make(map[string]*text.GoTextFaceSource),
		fontFaceCache: make(map[string]*text.GoTextFace),
	}
}

// LoadShaderSource reads a Kage shader source.
// Shader sources are never cached: hot reload must see the latest bytes.
func (rm *ResourceManager) LoadShaderSource(path string) ([]byte, error) {
	src, err := rm.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shader %s: %w", path, err)
	}
	return src, nil
}

// LoadIntroConfig loads the intro configuration.
//
// overridePath (if non-empty) is read from disk instead of the embedded
// data/intro.yaml. Any failure falls back to DefaultIntroConfig with a
// warning; the returned error reports what went wrong.
func (rm *ResourceManager) LoadIntroConfig(overridePath string) (*config.IntroConfig, error) {
	log := logging.Named("ResourceManager")

	var (
		data []byte
		err  error
		from = IntroConfigPath
	)
	if overridePath != "" {
		from = overridePath
		data, err = os.ReadFile(overridePath)
	} else {
		data, err = rm.readFile(IntroConfigPath)
	}
	if err != nil {
		log.Warnw("failed to read intro config, using defaults", "path", from, "error", err)
		return config.DefaultIntroConfig(), fmt.Errorf("failed to read intro config %s: %w", from, err)
	}

	cfg, err := config.LoadIntroConfig(data)
	if err != nil {
		log.Warnw("invalid intro config, using defaults", "path", from, "error", err)
		return config.DefaultIntroConfig(), err
	}
	log.Debugw("intro config loaded", "path", from, "lines", len(cfg.BootLines))
	return cfg, nil
}

// LoadFont loads a font face and caches it for future use.
//
// Parameters:
//   - name: a builtin font name (FontRegular, FontBold, FontMono) or a
//     resource path readable by the manager's reader.
//   - size: The font size in points.
//
// Returns:
//   - A pointer to the cached text.GoTextFace.
//   - An error if the font cannot be read or parsed.
func (rm *ResourceManager) LoadFont(name string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", name, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, err := rm.fontSource(name)
	if err != nil {
		return nil, err
	}

	goTextFace := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = goTextFace
	return goTextFace, nil
}

// GetFont retrieves a previously loaded font face from the cache.
// If the font has not been loaded yet, it returns nil.
func (rm *ResourceManager) GetFont(name string, size float64) *text.GoTextFace {
	return rm.fontFaceCache[fmt.Sprintf("%s:%.1f", name, size)]
}

func (rm *ResourceManager) fontSource(name string) (*text.GoTextFaceSource, error) {
	if src, ok := rm.fontSources[name]; ok {
		return src, nil
	}

	fontData, ok := builtinFonts[name]
	if !ok {
		var err error
		fontData, err = rm.readFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", name, err)
		}
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", name, err)
	}
	rm.fontSources[name] = source
	return source, nil
}
