// Package particles 背景粒子场
//
// 粒子在区域内匀速漂移，越界后从对侧重新进入；距离小于 LinkDistance 的粒子对之间
// 连线，透明度随距离线性衰减。粒子场本身不渲染，整体透明度由 "particles" 滚动通道控制。
package particles

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

// Config 粒子场配置
type Config struct {
	Speed        float64  `yaml:"speed"`         // 漂移速度（px/帧）
	Size         float64  `yaml:"size"`          // 最大半径（px）
	MinSize      float64  `yaml:"min_size"`      // 最小半径（px）
	Opacity      float64  `yaml:"opacity"`       // 粒子透明度上限
	LinkDistance float64  `yaml:"link_distance"` // 连线距离（px）
	LinkOpacity  float64  `yaml:"link_opacity"`  // 连线透明度上限
	Colors       []string `yaml:"colors"`        // 粒子颜色（#RRGGBB）
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		Speed:        0.5,
		Size:         3,
		MinSize:      0.5,
		Opacity:      0.6,
		LinkDistance: 150,
		LinkOpacity:  0.4,
		Colors:       []string{"#007AFF", "#5856D6", "#AF52DE", "#FF2D92", "#FF9500"},
	}
}

// Particle 单个粒子
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Alpha  float64
	Color  color.RGBA
}

// Link 一条连线
type Link struct {
	A, B  int
	Alpha float64
}

// Field 粒子场
type Field struct {
	cfg       Config
	palette   []color.RGBA
	rng       *rand.Rand
	width     float64
	height    float64
	particles []Particle
}

// NewField 创建粒子场
func NewField(cfg Config, width, height float64, count int, seed int64) (*Field, error) {
	palette := make([]color.RGBA, 0, len(cfg.Colors))
	for _, hex := range cfg.Colors {
		c, err := ParseHexColor(hex)
		if err != nil {
			return nil, err
		}
		palette = append(palette, c)
	}
	if len(palette) == 0 {
		palette = append(palette, color.RGBA{R: 0x00, G: 0x7A, B: 0xFF, A: 0xFF})
	}

	f := &Field{
		cfg:     cfg,
		palette: palette,
		rng:     rand.New(rand.NewSource(seed)),
		width:   math.Max(1, width),
		height:  math.Max(1, height),
	}
	f.SetCount(count)
	return f, nil
}

// SetCount 调整粒子数量（视口宽度跨越断点时）
// 保留已有粒子，只增删尾部
func (f *Field) SetCount(count int) {
	if count < 0 {
		count = 0
	}
	if count < len(f.particles) {
		f.particles = f.particles[:count]
		return
	}
	for len(f.particles) < count {
		f.particles = append(f.particles, f.spawn())
	}
}

// SetSpeed 修改漂移速度，保持各粒子方向不变
func (f *Field) SetSpeed(speed float64) {
	if f.cfg.Speed == speed {
		return
	}
	for i := range f.particles {
		p := &f.particles[i]
		angle := math.Atan2(p.VY, p.VX)
		mag := math.Hypot(p.VX, p.VY)
		if f.cfg.Speed > 0 {
			mag = mag / f.cfg.Speed * speed
		} else {
			mag = speed
		}
		p.VX = math.Cos(angle) * mag
		p.VY = math.Sin(angle) * mag
	}
	f.cfg.Speed = speed
}

// Resize 调整区域尺寸，越界粒子被折回区域内
func (f *Field) Resize(width, height float64) {
	f.width = math.Max(1, width)
	f.height = math.Max(1, height)
	for i := range f.particles {
		f.wrap(&f.particles[i])
	}
}

// Update 推进一帧
func (f *Field) Update() {
	for i := range f.particles {
		p := &f.particles[i]
		p.X += p.VX
		p.Y += p.VY
		f.wrap(p)
	}
}

// Particles 当前粒子（只读）
func (f *Field) Particles() []Particle {
	return f.particles
}

// Len 粒子数量
func (f *Field) Len() int {
	return len(f.particles)
}

// Links 计算当前所有连线
func (f *Field) Links() []Link {
	dist := f.cfg.LinkDistance
	if dist <= 0 {
		return nil
	}
	links := make([]Link, 0)
	for i := 0; i < len(f.particles); i++ {
		for j := i + 1; j < len(f.particles); j++ {
			d := math.Hypot(f.particles[i].X-f.particles[j].X, f.particles[i].Y-f.particles[j].Y)
			if d < dist {
				links = append(links, Link{A: i, B: j, Alpha: f.cfg.LinkOpacity * (1 - d/dist)})
			}
		}
	}
	return links
}

func (f *Field) spawn() Particle {
	angle := f.rng.Float64() * 2 * math.Pi
	speed := f.cfg.Speed * (0.5 + f.rng.Float64()*0.5)
	radius := f.cfg.MinSize + f.rng.Float64()*math.Max(0, f.cfg.Size-f.cfg.MinSize)
	// 透明度随机，不低于 0.2
	alpha := 0.2 + f.rng.Float64()*math.Max(0, f.cfg.Opacity-0.2)
	return Particle{
		X:      f.rng.Float64() * f.width,
		Y:      f.rng.Float64() * f.height,
		VX:     math.Cos(angle) * speed,
		VY:     math.Sin(angle) * speed,
		Radius: radius,
		Alpha:  alpha,
		Color:  f.palette[f.rng.Intn(len(f.palette))],
	}
}

func (f *Field) wrap(p *Particle) {
	p.X = math.Mod(p.X, f.width)
	if p.X < 0 {
		p.X += f.width
	}
	p.Y = math.Mod(p.Y, f.height)
	if p.Y < 0 {
		p.Y += f.height
	}
}

// ParseHexColor 解析 #RRGGBB 或 #RGB 颜色
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}
