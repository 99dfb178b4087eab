package utils

import (
	"math"
	"sort"
)

// Easing Functions (缓动函数)
//
// 缓动函数决定滚动动画的速度曲线。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]，
// 并且在 [0, 1] 上单调不减（滚动通道的 curve 依赖这一点）。
//
// 参考：https://easings.net/

// EasingFunc 缓动函数类型
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（GSAP 的 power2.out 即为此曲线）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInCubic 三次方缓入
// 公式：f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseInOutCubic 三次方缓入缓出
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseInOutQuad 二次方缓入缓出
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// EaseOutExpo 指数缓出
// 公式：f(t) = 1 - 2^(-10t)
func EaseOutExpo(t float64) float64 {
	if t >= 1.0 {
		return 1.0
	}
	return 1 - math.Pow(2, -10*t)
}

// EaseSmoothScroll 平滑滚动曲线
// 与页面平滑滚动（duration 1.2s）使用的曲线一致：min(1, 1.001 - 2^(-10t))
// t=0 时返回 0，避免 0.001 的起始偏移
func EaseSmoothScroll(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return math.Min(1, 1.001-math.Pow(2, -10*t))
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi] 范围内
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 将 v 限制在 [0, 1] 范围内
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// easingByName 配置文件中可用的缓动名称
var easingByName = map[string]EasingFunc{
	"linear":         EaseLinear,
	"easeInQuad":     EaseInQuad,
	"easeOutQuad":    EaseOutQuad,
	"easeInOutQuad":  EaseInOutQuad,
	"easeInCubic":    EaseInCubic,
	"easeOutCubic":   EaseOutCubic,
	"easeInOutCubic": EaseInOutCubic,
	"easeOutExpo":    EaseOutExpo,
	"smoothScroll":   EaseSmoothScroll,
}

// EasingByName 根据名称查找缓动函数
// 空字符串视为 "linear"
func EasingByName(name string) (EasingFunc, bool) {
	if name == "" {
		return EaseLinear, true
	}
	fn, ok := easingByName[name]
	return fn, ok
}

// EasingNames 返回所有已注册的缓动名称（按字母排序）
func EasingNames() []string {
	names := make([]string, 0, len(easingByName))
	for name := range easingByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
