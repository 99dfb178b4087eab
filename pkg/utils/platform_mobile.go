//go:build mobile

package utils

// MobileEmulateEnv 移动端编译时不生效，保留以便调用方统一引用
const MobileEmulateEnv = "SCROLLFX_MOBILE_EMULATE"

// IsMobile 移动端编译时恒为 true
func IsMobile() bool {
	return true
}
