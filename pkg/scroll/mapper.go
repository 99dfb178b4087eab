// Package scroll 将滚动偏移映射为各视觉通道的输出值
//
// 每个通道独立维护一个带迟滞的锁存状态：
//   - 偏移 ≥ OnThreshold 时锁存（包含边界）
//   - 已锁存且偏移 < OffThreshold 时释放（不包含边界，偏移恰好等于 OffThreshold 时保持锁存）
//   - 两阈值之间保持上一次的锁存状态，避免亚像素滚动抖动造成闪烁
//
// 锁存时输出 curve(p)，未锁存时输出 curve(0)，其中
// p = clamp((offset - off) / max(1, on - off), 0, 1)。
package scroll

import (
	"math"

	"github.com/gonewx/scrollfx/pkg/utils"
)

// Progress 计算采样在通道阈值区间内的归一化进度
// on == off 时分母取 1，不会除零
func Progress(offset float64, c ChannelConfig) float64 {
	if offset < 0 {
		offset = 0
	}
	span := math.Max(1, c.OnThreshold-c.OffThreshold)
	return utils.Clamp01((offset - c.OffThreshold) / span)
}

// MapSample 用一次采样更新通道状态并返回输出
//
// 无效采样（NaN 等）返回 ErrInvalidSample，此时状态不变、curve 不会被调用。
// 对同一采样和状态重复调用结果相同。
func MapSample(sample Sample, config ChannelConfig, state *ChannelState) (Output, error) {
	if err := sample.Validate(); err != nil {
		return Output{Value: state.LastValue, Latched: state.Latched}, err
	}
	curve := config.Curve
	if curve == nil {
		curve = Linear
	}

	offset := sample.clampedOffset()
	p := Progress(offset, config)

	// 迟滞锁存
	if !state.Latched && offset >= config.OnThreshold {
		state.Latched = true
	} else if state.Latched && offset < config.OffThreshold {
		state.Latched = false
	}

	var value float64
	if state.Latched {
		value = curve(p)
	} else {
		value = curve(0)
	}

	state.LastValue = value
	return Output{Value: value, Latched: state.Latched}, nil
}
