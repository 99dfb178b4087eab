package scroll

import (
	"fmt"
	"math"
)

// Sample 一次滚动采样（不可变快照）
// 宿主在每次节流后的 scroll/resize 事件中生成
type Sample struct {
	Offset         float64 // 滚动偏移（px，≥0）
	ViewportHeight float64 // 视口高度（px，>0）
	TimestampMs    int64   // 采样时间戳（毫秒）
}

// NewSample 创建并校验采样
//
// 负偏移被钳制为 0；NaN/Inf 偏移、NaN 或非正的视口高度返回 ErrInvalidSample。
func NewSample(offset, viewportHeight float64, timestampMs int64) (Sample, error) {
	s := Sample{Offset: offset, ViewportHeight: viewportHeight, TimestampMs: timestampMs}
	if err := s.Validate(); err != nil {
		return Sample{}, err
	}
	s.Offset = s.clampedOffset()
	return s, nil
}

// Validate 校验采样是否可用于映射
func (s Sample) Validate() error {
	if math.IsNaN(s.Offset) || math.IsInf(s.Offset, 0) {
		return fmt.Errorf("%w: offset %v", ErrInvalidSample, s.Offset)
	}
	if math.IsNaN(s.ViewportHeight) || math.IsInf(s.ViewportHeight, 0) || s.ViewportHeight <= 0 {
		return fmt.Errorf("%w: viewport height %v", ErrInvalidSample, s.ViewportHeight)
	}
	return nil
}

func (s Sample) clampedOffset() float64 {
	if s.Offset < 0 {
		return 0
	}
	return s.Offset
}
