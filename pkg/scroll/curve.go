package scroll

import "github.com/gonewx/scrollfx/pkg/utils"

// Curve 将归一化进度 p ∈ [0,1] 映射为输出值（透明度、模糊像素、缩放倍数……）
// 必须在 [0,1] 上单调
type Curve func(p float64) float64

// Linear 恒等曲线
func Linear(p float64) float64 {
	return p
}

// Range 返回从 from 到 to 的插值曲线，ease 为 nil 时线性插值
// from > to 时曲线单调递减（如亮度 1 → 0.3）
func Range(from, to float64, ease utils.EasingFunc) Curve {
	if ease == nil {
		ease = utils.EaseLinear
	}
	return func(p float64) float64 {
		return utils.Lerp(from, to, ease(utils.Clamp01(p)))
	}
}

// Invert 返回 1 - c(p)
func Invert(c Curve) Curve {
	return func(p float64) float64 {
		return 1 - c(p)
	}
}
