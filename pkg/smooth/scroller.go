// Package smooth 基于弹簧的平滑滚动
//
// 滚轮/触摸只移动目标偏移，渲染偏移每帧由临界阻尼弹簧逼近目标，
// 相当于页面上的平滑滚动层。禁用时（减少动态效果）渲染偏移直接跳到目标。
package smooth

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Config 平滑滚动参数
type Config struct {
	FPS             int     `yaml:"fps"`              // 每秒更新次数（与 ebiten TPS 一致）
	Frequency       float64 `yaml:"frequency"`        // 弹簧角频率，越大越快
	Damping         float64 `yaml:"damping"`          // 阻尼比，1 为临界阻尼（无回弹）
	WheelMultiplier float64 `yaml:"wheel_multiplier"` // 滚轮位移倍率
	TouchMultiplier float64 `yaml:"touch_multiplier"` // 触摸拖动倍率
	SettleEpsilon   float64 `yaml:"settle_epsilon"`   // 距目标和速度都小于该值时视为静止（px）
}

// DefaultConfig 默认参数
func DefaultConfig() Config {
	return Config{
		FPS:             60,
		Frequency:       6.0,
		Damping:         1.0,
		WheelMultiplier: 1,
		TouchMultiplier: 2,
		SettleEpsilon:   0.1,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.FPS <= 0 {
		c.FPS = d.FPS
	}
	if c.Frequency <= 0 {
		c.Frequency = d.Frequency
	}
	if c.Damping <= 0 {
		c.Damping = d.Damping
	}
	if c.WheelMultiplier == 0 {
		c.WheelMultiplier = d.WheelMultiplier
	}
	if c.TouchMultiplier == 0 {
		c.TouchMultiplier = d.TouchMultiplier
	}
	if c.SettleEpsilon <= 0 {
		c.SettleEpsilon = d.SettleEpsilon
	}
	return c
}

// Scroller 平滑滚动器
type Scroller struct {
	cfg     Config
	spring  harmonica.Spring
	pos     float64
	vel     float64
	target  float64
	max     float64
	enabled bool
}

// NewScroller 创建平滑滚动器，maxOffset 为可滚动的最大偏移
func NewScroller(cfg Config, maxOffset float64) *Scroller {
	cfg = cfg.withDefaults()
	return &Scroller{
		cfg:     cfg,
		spring:  harmonica.NewSpring(harmonica.FPS(cfg.FPS), cfg.Frequency, cfg.Damping),
		max:     math.Max(0, maxOffset),
		enabled: true,
	}
}

// SetEnabled 开关平滑效果
func (s *Scroller) SetEnabled(enabled bool) {
	s.enabled = enabled
	if !enabled {
		s.pos = s.target
		s.vel = 0
	}
}

// Enabled 是否启用平滑
func (s *Scroller) Enabled() bool {
	return s.enabled
}

// SetMax 更新最大偏移（页面或视口尺寸变化时）
func (s *Scroller) SetMax(maxOffset float64) {
	s.max = math.Max(0, maxOffset)
	s.target = s.clamp(s.target)
	s.pos = s.clamp(s.pos)
}

// Max 最大偏移
func (s *Scroller) Max() float64 {
	return s.max
}

// Wheel 滚轮输入，delta 为正表示向下滚动（px）
func (s *Scroller) Wheel(delta float64) {
	s.target = s.clamp(s.target + delta*s.cfg.WheelMultiplier)
}

// Touch 触摸拖动输入，delta 为正表示内容上移（向下滚动）
func (s *Scroller) Touch(delta float64) {
	s.target = s.clamp(s.target + delta*s.cfg.TouchMultiplier)
}

// ScrollTo 平滑滚动到指定偏移（导航点击）
func (s *Scroller) ScrollTo(offset float64) {
	s.target = s.clamp(offset)
}

// Jump 立即跳转，不经过动画
func (s *Scroller) Jump(offset float64) {
	s.target = s.clamp(offset)
	s.pos = s.target
	s.vel = 0
}

// Update 推进一帧并返回当前渲染偏移
func (s *Scroller) Update() float64 {
	if !s.enabled {
		s.pos = s.target
		s.vel = 0
		return s.pos
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if math.Abs(s.pos-s.target) < s.cfg.SettleEpsilon && math.Abs(s.vel) < s.cfg.SettleEpsilon {
		s.pos = s.target
		s.vel = 0
	}
	return s.pos
}

// Offset 当前渲染偏移
func (s *Scroller) Offset() float64 {
	return s.pos
}

// Target 目标偏移
func (s *Scroller) Target() float64 {
	return s.target
}

// Settled 是否已静止在目标处
func (s *Scroller) Settled() bool {
	return s.pos == s.target && s.vel == 0
}

func (s *Scroller) clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > s.max {
		return s.max
	}
	return v
}
