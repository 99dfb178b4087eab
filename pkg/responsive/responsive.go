// Package responsive 根据视口宽度决定设备类别和相关参数
package responsive

import "fmt"

// DeviceClass 设备类别
type DeviceClass int

const (
	DeviceMobile DeviceClass = iota
	DeviceDesktop
	DeviceUltrawide
)

func (d DeviceClass) String() string {
	switch d {
	case DeviceMobile:
		return "mobile"
	case DeviceDesktop:
		return "desktop"
	case DeviceUltrawide:
		return "ultrawide"
	default:
		return fmt.Sprintf("DeviceClass(%d)", int(d))
	}
}

// Breakpoints 断点配置（px）
type Breakpoints struct {
	MobileMax        float64 `yaml:"mobile_max"`         // 宽度 ≤ MobileMax 视为移动端
	UltrawideMin     float64 `yaml:"ultrawide_min"`      // 宽度 ≥ UltrawideMin 视为超宽屏
	ParticleSmallMax float64 `yaml:"particle_small_max"` // 宽度 < 该值时使用少量粒子
	ParticleLargeMin float64 `yaml:"particle_large_min"` // 宽度 ≥ 该值时使用大量粒子
}

// DefaultBreakpoints 默认断点
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{
		MobileMax:        768,
		UltrawideMin:     2560,
		ParticleSmallMax: 768,
		ParticleLargeMin: 1920,
	}
}

// Classify 根据视口宽度返回设备类别
func (b Breakpoints) Classify(width float64) DeviceClass {
	switch {
	case width <= b.MobileMax:
		return DeviceMobile
	case width >= b.UltrawideMin:
		return DeviceUltrawide
	default:
		return DeviceDesktop
	}
}

// ParticleCount 背景粒子数量：30 / 50 / 80
func (b Breakpoints) ParticleCount(width float64) int {
	switch {
	case width < b.ParticleSmallMax:
		return 30
	case width < b.ParticleLargeMin:
		return 50
	default:
		return 80
	}
}

// HeroScrollThreshold 首屏 "scrolled" 状态的触发偏移（px）
// 移动端屏幕短，提前触发
func HeroScrollThreshold(class DeviceClass) float64 {
	if class == DeviceMobile {
		return 50
	}
	return 100
}

// ParallaxEnabled 视差只在非移动端启用
func ParallaxEnabled(class DeviceClass) bool {
	return class != DeviceMobile
}

// Motion 受 "减少动态效果" 偏好影响的参数
type Motion struct {
	ParticleSpeed   float64
	ParticleOpacity float64
	LinkOpacity     float64
	Snap            bool
}

// MotionFor 返回动态参数
func MotionFor(reducedMotion bool) Motion {
	if reducedMotion {
		return Motion{ParticleSpeed: 0.1, ParticleOpacity: 0.4, LinkOpacity: 0.2, Snap: false}
	}
	return Motion{ParticleSpeed: 0.5, ParticleOpacity: 0.6, LinkOpacity: 0.4, Snap: true}
}
