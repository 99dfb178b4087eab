package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gonewx/scrollfx/pkg/controller"
	"github.com/gonewx/scrollfx/pkg/embedded"
	"github.com/gonewx/scrollfx/pkg/particles"
	"github.com/gonewx/scrollfx/pkg/responsive"
	"github.com/gonewx/scrollfx/pkg/scroll"
	"github.com/gonewx/scrollfx/pkg/smooth"
	"github.com/gonewx/scrollfx/pkg/utils"
	"gopkg.in/yaml.v3"
)

// DefaultScrollConfigPath 内嵌默认配置路径
const DefaultScrollConfigPath = "data/scroll_config.yaml"

// ErrUnknownCurve 配置中引用了未注册的缓动名称
var ErrUnknownCurve = errors.New("unknown curve")

// ScrollConfig 滚动动画配置文件的顶层结构
// 未识别的字段会被忽略（向前兼容）
type ScrollConfig struct {
	ThrottleMs       int                    `yaml:"throttle_ms"`
	ResizeDebounceMs int                    `yaml:"resize_debounce_ms"`
	Page             PageConfig             `yaml:"page"`
	Smooth           smooth.Config          `yaml:"smooth"`
	Breakpoints      responsive.Breakpoints `yaml:"breakpoints"`
	Particles        particles.Config       `yaml:"particles"`
	Story            StoryConfig            `yaml:"story"`
	Channels         []ChannelConfig        `yaml:"channels"`
}

// PageConfig 页面尺寸
type PageConfig struct {
	Width  int           `yaml:"width"`  // 初始窗口宽度（px）
	Height int           `yaml:"height"` // 初始窗口高度（px）
	Length scroll.Length `yaml:"length"` // 页面总长度，通常以 vh 表示
}

// StoryConfig 横向滚动区与分区导航
type StoryConfig struct {
	Sections []SectionConfig  `yaml:"sections"` // 页面分区，用于导航
	Panels   []PanelConfig    `yaml:"panels"`   // 横向分节
	Start    scroll.Length    `yaml:"start"`    // 固定区间起点
	Length   scroll.Length    `yaml:"length"`   // 固定区间长度，为 0 时取 (分节数-1) × 视口宽度
	Parallax []ParallaxConfig `yaml:"parallax"`
}

// SectionConfig 页面分区及其起始偏移
type SectionConfig struct {
	ID string        `yaml:"id"`
	At scroll.Length `yaml:"at"`
}

// PanelConfig 横向分节
type PanelConfig struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Color string `yaml:"color"`
}

// ParallaxConfig data-parallax 元素
type ParallaxConfig struct {
	Panel int     `yaml:"panel"`
	Speed float64 `yaml:"speed"`
	Label string  `yaml:"label"`
}

// ChannelConfig 单个滚动通道
type ChannelConfig struct {
	Name     string        `yaml:"name"`
	Target   string        `yaml:"target"`
	Property string        `yaml:"property"`
	Class    string        `yaml:"class,omitempty"`
	On       scroll.Length `yaml:"on"`
	Off      scroll.Length `yaml:"off"`
	Curve    CurveConfig   `yaml:"curve"`

	// Responsive 为 "hero" 时阈值随设备类别调整：
	// on 取 responsive.HeroScrollThreshold，off 取其一半
	Responsive string `yaml:"responsive,omitempty"`
}

// ResponsiveHero 阈值跟随首屏触发偏移的通道
const ResponsiveHero = "hero"

// CurveConfig 通道曲线：按 type 缓动后从 from 插值到 to
type CurveConfig struct {
	Type string   `yaml:"type"`
	From *float64 `yaml:"from,omitempty"` // 可选，默认 0
	To   *float64 `yaml:"to,omitempty"`   // 可选，默认 1
}

// Build 构造曲线
func (c CurveConfig) Build() (scroll.Curve, error) {
	ease, ok := utils.EasingByName(c.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownCurve, c.Type, strings.Join(utils.EasingNames(), ", "))
	}
	from, to := 0.0, 1.0
	if c.From != nil {
		from = *c.From
	}
	if c.To != nil {
		to = *c.To
	}
	return scroll.Range(from, to, ease), nil
}

// LoadScrollConfig 加载滚动配置
//
// 以 "data/" 开头的路径从内嵌资源读取，其余路径从磁盘读取。
func LoadScrollConfig(path string) (*ScrollConfig, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(strings.TrimPrefix(path, "./"), "data/") && embedded.IsInitialized() {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("无法读取配置文件 %s: %w", path, err)
	}

	cfg, err := ParseScrollConfig(data)
	if err != nil {
		return nil, fmt.Errorf("配置文件 %s 无效: %w", path, err)
	}
	return cfg, nil
}

// ParseScrollConfig 解析并校验 YAML 配置，缺省字段使用默认值
func ParseScrollConfig(data []byte) (*ScrollConfig, error) {
	cfg := DefaultScrollConfig()
	cfg.Channels = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("无法解析 YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultScrollConfig 不依赖配置文件的默认值
func DefaultScrollConfig() *ScrollConfig {
	return &ScrollConfig{
		ThrottleMs:       16,
		ResizeDebounceMs: 250,
		Page: PageConfig{
			Width:  1280,
			Height: 720,
			Length: scroll.Vh(600),
		},
		Smooth:      smooth.DefaultConfig(),
		Breakpoints: responsive.DefaultBreakpoints(),
		Particles:   particles.DefaultConfig(),
	}
}

// Validate 校验配置
// 阈值大小关系按 page.height 校验；其他视口下由控制器在解析时校验
func (c *ScrollConfig) Validate() error {
	if c.ThrottleMs < 0 {
		return fmt.Errorf("%w: throttle_ms must be >= 0", scroll.ErrInvalidConfig)
	}
	if c.ResizeDebounceMs < 0 {
		return fmt.Errorf("%w: resize_debounce_ms must be >= 0", scroll.ErrInvalidConfig)
	}
	if c.Page.Width <= 0 || c.Page.Height <= 0 {
		return fmt.Errorf("%w: page size must be positive (%dx%d)", scroll.ErrInvalidConfig, c.Page.Width, c.Page.Height)
	}

	seen := make(map[string]bool, len(c.Channels))
	for i := range c.Channels {
		ch := &c.Channels[i]
		if ch.Name == "" {
			return fmt.Errorf("%w: channel #%d 缺少 'name' 字段", scroll.ErrInvalidConfig, i)
		}
		if seen[ch.Name] {
			return fmt.Errorf("%w: %s", controller.ErrDuplicateChannel, ch.Name)
		}
		seen[ch.Name] = true

		if !controller.ValidProperty(controller.Property(ch.Property)) {
			return fmt.Errorf("%w: channel %s has unknown property %q", scroll.ErrInvalidConfig, ch.Name, ch.Property)
		}
		if controller.Property(ch.Property) == controller.PropertyClass && ch.Class == "" {
			return fmt.Errorf("%w: channel %s toggles a class but 'class' is empty", scroll.ErrInvalidConfig, ch.Name)
		}

		if err := normalizeUnits(&ch.On, &ch.Off); err != nil {
			return fmt.Errorf("channel %s: %w", ch.Name, err)
		}
		// 混合单位按初始页面高度解析后比较，视口变化时控制器会再次校验
		if ch.Responsive == "" {
			on, _ := ch.On.Resolve(float64(c.Page.Height))
			off, _ := ch.Off.Resolve(float64(c.Page.Height))
			if off > on {
				return fmt.Errorf("%w: channel %s off %s > on %s at %dpx viewport", scroll.ErrInvalidConfig, ch.Name, ch.Off, ch.On, c.Page.Height)
			}
		}
		if _, err := ch.Curve.Build(); err != nil {
			return fmt.Errorf("channel %s: %w", ch.Name, err)
		}
		if ch.Responsive != "" && ch.Responsive != ResponsiveHero {
			return fmt.Errorf("%w: channel %s has unknown responsive mode %q", scroll.ErrInvalidConfig, ch.Name, ch.Responsive)
		}
	}

	if err := normalizeUnits(&c.Page.Length, &c.Story.Start, &c.Story.Length); err != nil {
		return fmt.Errorf("page/story: %w", err)
	}
	ids := make(map[string]bool, len(c.Story.Sections))
	for i := range c.Story.Sections {
		sec := &c.Story.Sections[i]
		if sec.ID == "" || ids[sec.ID] {
			return fmt.Errorf("%w: section #%d has empty or duplicate id %q", scroll.ErrInvalidConfig, i, sec.ID)
		}
		ids[sec.ID] = true
		if err := normalizeUnits(&sec.At); err != nil {
			return fmt.Errorf("section %s: %w", sec.ID, err)
		}
	}
	for _, p := range c.Story.Parallax {
		if p.Panel < 0 || p.Panel >= len(c.Story.Panels) {
			return fmt.Errorf("%w: parallax element %q references panel %d of %d", scroll.ErrInvalidConfig, p.Label, p.Panel, len(c.Story.Panels))
		}
	}
	return nil
}

func normalizeUnits(lengths ...*scroll.Length) error {
	for _, l := range lengths {
		unit, err := scroll.ParseUnit(string(l.Unit))
		if err != nil {
			return err
		}
		l.Unit = unit
	}
	return nil
}

// ThrottleWait 节流间隔
// 0 表示不节流（控制器约定负数为不节流）
func (c *ScrollConfig) ThrottleWait() time.Duration {
	if c.ThrottleMs == 0 {
		return -1
	}
	return time.Duration(c.ThrottleMs) * time.Millisecond
}

// ResizeDebounce 视口变化的防抖间隔
func (c *ScrollConfig) ResizeDebounce() time.Duration {
	return time.Duration(c.ResizeDebounceMs) * time.Millisecond
}

// ControllerChannels 按设备类别将配置转换为控制器通道定义
func (c *ScrollConfig) ControllerChannels(class responsive.DeviceClass) ([]controller.Channel, error) {
	channels := make([]controller.Channel, 0, len(c.Channels))
	for _, ch := range c.Channels {
		curve, err := ch.Curve.Build()
		if err != nil {
			return nil, fmt.Errorf("channel %s: %w", ch.Name, err)
		}
		on, off := ch.Thresholds(class)
		channels = append(channels, controller.Channel{
			Name: ch.Name,
			Binding: controller.Binding{
				Target:   ch.Target,
				Property: controller.Property(ch.Property),
				Class:    ch.Class,
			},
			On:    on,
			Off:   off,
			Curve: curve,
		})
	}
	return channels, nil
}

// Thresholds 按设备类别返回通道阈值
// 非响应式通道直接返回配置值
func (ch ChannelConfig) Thresholds(class responsive.DeviceClass) (on, off scroll.Length) {
	if ch.Responsive != ResponsiveHero {
		return ch.On, ch.Off
	}
	threshold := responsive.HeroScrollThreshold(class)
	return scroll.Px(threshold), scroll.Px(threshold / 2)
}

// SectionIDs 页面分区 ID 列表
func (s StoryConfig) SectionIDs() []string {
	ids := make([]string, len(s.Sections))
	for i, sec := range s.Sections {
		ids[i] = sec.ID
	}
	return ids
}

// PanelIDs 横向分节 ID 列表
func (s StoryConfig) PanelIDs() []string {
	ids := make([]string, len(s.Panels))
	for i, p := range s.Panels {
		ids[i] = p.ID
	}
	return ids
}
