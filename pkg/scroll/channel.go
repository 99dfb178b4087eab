package scroll

import (
	"fmt"
	"math"
)

// ChannelConfig 单个视觉通道的静态配置
//
// OnThreshold/OffThreshold 以像素为单位，必须满足 OffThreshold ≤ OnThreshold，
// 否则锁存永远无法释放。
type ChannelConfig struct {
	OnThreshold  float64
	OffThreshold float64
	Curve        Curve
}

// NewChannelConfig 创建并校验通道配置，curve 为 nil 时使用 Linear
func NewChannelConfig(on, off float64, curve Curve) (ChannelConfig, error) {
	c := ChannelConfig{OnThreshold: on, OffThreshold: off, Curve: curve}
	if c.Curve == nil {
		c.Curve = Linear
	}
	if err := c.Validate(); err != nil {
		return ChannelConfig{}, err
	}
	return c, nil
}

// Validate 校验阈值
func (c ChannelConfig) Validate() error {
	if !isFinite(c.OnThreshold) || !isFinite(c.OffThreshold) {
		return fmt.Errorf("%w: thresholds must be finite (on=%v off=%v)", ErrInvalidConfig, c.OnThreshold, c.OffThreshold)
	}
	if c.OffThreshold > c.OnThreshold {
		return fmt.Errorf("%w: offThreshold %v > onThreshold %v", ErrInvalidConfig, c.OffThreshold, c.OnThreshold)
	}
	return nil
}

// ChannelState 单个通道的可变状态，只由映射器更新，不在通道之间共享
type ChannelState struct {
	Latched   bool
	LastValue float64
}

// Output 一次映射的结果，由宿主应用到对应的视觉属性
type Output struct {
	Value   float64
	Latched bool
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
