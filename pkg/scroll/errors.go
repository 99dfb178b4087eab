package scroll

import "errors"

var (
	// ErrInvalidConfig 通道配置无效（如 offThreshold > onThreshold，或阈值不是有限数）
	ErrInvalidConfig = errors.New("invalid channel config")

	// ErrInvalidSample 滚动采样无效（NaN/Inf 偏移，或视口高度非正）
	ErrInvalidSample = errors.New("invalid scroll sample")
)
