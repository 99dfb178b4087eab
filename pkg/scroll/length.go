package scroll

import (
	"fmt"
	"strings"
)

// Unit 阈值单位
type Unit string

const (
	UnitPixels   Unit = "px" // 绝对像素
	UnitViewport Unit = "vh" // 视口高度的百分比（100vh = 一个视口高度）
)

// Length 带单位的阈值
// 以 vh 表示的阈值需要在每次视口变化后由调用方重新解析
type Length struct {
	Value float64 `yaml:"value"`
	Unit  Unit    `yaml:"unit"`
}

// Px 像素长度
func Px(v float64) Length {
	return Length{Value: v, Unit: UnitPixels}
}

// Vh 视口相对长度
func Vh(v float64) Length {
	return Length{Value: v, Unit: UnitViewport}
}

// Resolve 根据视口高度换算为像素
func (l Length) Resolve(viewportHeight float64) (float64, error) {
	switch l.Unit {
	case UnitPixels, "":
		return l.Value, nil
	case UnitViewport:
		return l.Value / 100 * viewportHeight, nil
	default:
		return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalidConfig, l.Unit)
	}
}

// IsRelative 是否依赖视口尺寸
func (l Length) IsRelative() bool {
	return l.Unit == UnitViewport
}

// ParseUnit 解析单位字符串（不区分大小写），空字符串视为 px
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "px":
		return UnitPixels, nil
	case "vh":
		return UnitViewport, nil
	default:
		return "", fmt.Errorf("%w: unknown unit %q", ErrInvalidConfig, s)
	}
}

func (l Length) String() string {
	unit := l.Unit
	if unit == "" {
		unit = UnitPixels
	}
	return fmt.Sprintf("%g%s", l.Value, unit)
}
