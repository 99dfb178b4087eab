package controller

import (
	"sync"

	"github.com/gonewx/scrollfx/pkg/scroll"
)

// Property 通道驱动的视觉属性
// 单位由宿主约定：透明度 0~1、模糊为像素、缩放为倍数、位移为像素
type Property string

const (
	PropertyOpacity    Property = "opacity"
	PropertyBlur       Property = "blur"
	PropertyBrightness Property = "brightness"
	PropertyScale      Property = "scale"
	PropertyTranslateY Property = "translateY"
	PropertyClass      Property = "class" // 只使用 Output.Latched，切换 Binding.Class
)

// ValidProperty 是否为已知属性
func ValidProperty(p Property) bool {
	switch p {
	case PropertyOpacity, PropertyBlur, PropertyBrightness, PropertyScale, PropertyTranslateY, PropertyClass:
		return true
	}
	return false
}

// Binding 通道输出的应用目标
type Binding struct {
	Target   string   // 目标元素，如 "hero-video"
	Property Property // 目标属性
	Class    string   // PropertyClass 时切换的类名，如 "scrolled"
}

// AnimationDriver 将通道输出应用到渲染表面
// 由宿主注入；控制器自身从不直接接触渲染
// 注意：Apply 在控制器内部锁中调用，实现不能回调控制器
type AnimationDriver interface {
	Apply(binding Binding, out scroll.Output)
}

// NoopDriver 什么也不做的驱动（无渲染能力时的回退）
type NoopDriver struct{}

// Apply 忽略输出
func (NoopDriver) Apply(Binding, scroll.Output) {}

// Style 单个目标元素的当前样式
type Style struct {
	Opacity    float64
	Blur       float64
	Brightness float64
	Scale      float64
	TranslateY float64
	Classes    map[string]bool
}

// DefaultStyle 返回未受任何通道影响的样式
func DefaultStyle() Style {
	return Style{
		Opacity:    1,
		Brightness: 1,
		Scale:      1,
		Classes:    make(map[string]bool),
	}
}

// HasClass 类名是否处于开启状态
func (s Style) HasClass(class string) bool {
	return s.Classes[class]
}

// StyleDriver 纯内存样式表驱动
// 通道输出写入样式表，渲染层每帧读取，相当于只用 CSS 的回退实现
type StyleDriver struct {
	mu     sync.RWMutex
	styles map[string]*Style
}

// NewStyleDriver 创建样式表驱动
func NewStyleDriver() *StyleDriver {
	return &StyleDriver{styles: make(map[string]*Style)}
}

// Apply 将输出写入目标样式
func (d *StyleDriver) Apply(b Binding, out scroll.Output) {
	d.mu.Lock()
	defer d.mu.Unlock()

	style, ok := d.styles[b.Target]
	if !ok {
		s := DefaultStyle()
		style = &s
		d.styles[b.Target] = style
	}

	switch b.Property {
	case PropertyOpacity:
		style.Opacity = out.Value
	case PropertyBlur:
		style.Blur = out.Value
	case PropertyBrightness:
		style.Brightness = out.Value
	case PropertyScale:
		style.Scale = out.Value
	case PropertyTranslateY:
		style.TranslateY = out.Value
	case PropertyClass:
		style.Classes[b.Class] = out.Latched
	}
}

// Style 返回目标样式的副本，未出现过的目标返回默认样式
func (d *StyleDriver) Style(target string) Style {
	d.mu.RLock()
	defer d.mu.RUnlock()

	style, ok := d.styles[target]
	if !ok {
		return DefaultStyle()
	}
	cp := *style
	cp.Classes = make(map[string]bool, len(style.Classes))
	for k, v := range style.Classes {
		cp.Classes[k] = v
	}
	return cp
}

// Reset 清空样式表
func (d *StyleDriver) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.styles = make(map[string]*Style)
}

// AppliedOutput RecordingDriver 记录的一次应用
type AppliedOutput struct {
	Binding Binding
	Output  scroll.Output
}

// RecordingDriver 记录所有应用调用，用于测试和诊断
type RecordingDriver struct {
	mu      sync.Mutex
	applied []AppliedOutput
}

// Apply 记录输出
func (d *RecordingDriver) Apply(b Binding, out scroll.Output) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.applied = append(d.applied, AppliedOutput{Binding: b, Output: out})
}

// Applied 返回记录副本
func (d *RecordingDriver) Applied() []AppliedOutput {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]AppliedOutput, len(d.applied))
	copy(out, d.applied)
	return out
}

// Reset 清空记录
func (d *RecordingDriver) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.applied = nil
}
