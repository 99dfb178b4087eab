// Package embedded 提供内嵌数据文件的统一访问接口
//
// //go:embed 只能嵌入当前包目录及其子目录的文件，
// 因此 embed.FS 变量声明在项目根目录（embed.go），由 main 在启动时注入。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotInitialized 未调用 Init
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	mu     sync.RWMutex
	dataFS fs.FS
)

// Init 注入数据文件系统
// 必须在 main() 开始时、任何配置加载之前调用；测试中可传入 fstest.MapFS
func Init(data fs.FS) {
	mu.Lock()
	defer mu.Unlock()
	dataFS = data
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	mu.RLock()
	defer mu.RUnlock()
	return dataFS != nil
}

// normalize 统一路径分隔符并校验 "data/" 前缀
func normalize(path string) (string, error) {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

func current() (fs.FS, error) {
	mu.RLock()
	defer mu.RUnlock()
	if dataFS == nil {
		return nil, ErrNotInitialized
	}
	return dataFS, nil
}

// ReadFile 读取内嵌文件内容，路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	fsys, err := current()
	if err != nil {
		return nil, err
	}
	path, err = normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, path)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	fsys, err := current()
	if err != nil {
		return false
	}
	path, err = normalize(path)
	if err != nil {
		return false
	}
	_, err = fs.Stat(fsys, path)
	return err == nil
}

// Glob 匹配内嵌文件
func Glob(pattern string) ([]string, error) {
	fsys, err := current()
	if err != nil {
		return nil, err
	}
	pattern, err = normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(fsys, pattern)
}
