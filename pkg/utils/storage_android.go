//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// prefsDirName gdata 在应用数据目录下使用的子目录
const prefsDirName = "scrollfx"

// EnsureStorageDir 确保 Android 偏好存储目录存在并可写
// gdata 使用 /data/data/{package}/ 作为根目录，但不会预先创建子目录，
// 必须在 settings.Open 之前调用。
func EnsureStorageDir() error {
	root := GetStoragePath()
	if root == "" {
		return fmt.Errorf("failed to detect Android package name")
	}
	dir := filepath.Join(root, prefsDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("storage directory %s is not writable: %w", dir, err)
	}
	os.Remove(probe)
	return nil
}

// GetStoragePath 返回 /data/data/{package}，无法识别包名时返回空字符串
func GetStoragePath() string {
	pkg, err := androidPackage()
	if err != nil {
		return ""
	}
	return filepath.Join("/data/data", pkg)
}

// androidPackage 从 /proc/self/cmdline 读取进程名，即应用包名
func androidPackage() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	// cmdline 以 NUL 分隔参数，包名是第一个参数
	name, _, _ := strings.Cut(string(data), "\x00")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return name, nil
}
