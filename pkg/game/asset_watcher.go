package game

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce 同一文件的重复事件在此间隔内合并
const reloadDebounce = 100 * time.Millisecond

// AssetWatcher 监视着色器与配置目录，用于开发时热重载
//
// 文件事件在后台协程中过滤与去抖，再以相对路径（如
// "assets/shaders/fractal_tunnel.kage"）发送到 Events。
// 游戏循环每帧非阻塞地调用 Drain 取走事件，不会阻塞后台协程：
// 通道已满时丢弃事件（下一次保存会再次触发）。
type AssetWatcher struct {
	watcher *fsnotify.Watcher
	root    string

	events  chan string
	errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewAssetWatcher 创建监视器
//
// 参数：
//   - root: 项目根目录（assets/ 与 data/ 所在目录）
//   - dirs: 相对 root 的待监视目录
func NewAssetWatcher(root string, dirs ...string) (*AssetWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	for _, dir := range dirs {
		if err := w.Add(filepath.Join(root, dir)); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	watcher := &AssetWatcher{
		watcher: w,
		root:    root,
		events:  make(chan string, 16),
		errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Drain 非阻塞地取走所有待处理的变更路径（去重）与错误
func (w *AssetWatcher) Drain() (paths []string, errs []error) {
	seen := make(map[string]bool)
	for {
		select {
		case p := <-w.events:
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		case err := <-w.errors:
			errs = append(errs, err)
		default:
			return paths, errs
		}
	}
}

// Close 停止监视并等待后台协程退出
func (w *AssetWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *AssetWatcher) run() {
	defer close(w.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !IsReloadable(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < reloadDebounce {
				continue
			}
			last[event.Name] = now

			select {
			case w.events <- w.relative(event.Name):
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// relative 返回相对 root 的斜杠路径（与嵌入资源路径一致）
func (w *AssetWatcher) relative(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// IsReloadable 返回文件是否支持热重载（Kage 着色器与 YAML 配置）
func IsReloadable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".kage", ".yaml", ".yml":
		return true
	}
	return false
}
