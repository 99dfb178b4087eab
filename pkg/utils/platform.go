//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 设置为 "1" 时桌面端按移动端处理输入与窗口
const MobileEmulateEnv = "SCROLLFX_MOBILE_EMULATE"

// IsMobile 是否按移动端运行
// 桌面端编译时只由 MobileEmulateEnv 决定
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
