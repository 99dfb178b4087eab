package app

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gonewx/scrollfx/pkg/config"
	"github.com/gonewx/scrollfx/pkg/controller"
	"github.com/gonewx/scrollfx/pkg/particles"
	"github.com/gonewx/scrollfx/pkg/responsive"
	"github.com/gonewx/scrollfx/pkg/scroll"
	"github.com/gonewx/scrollfx/pkg/settings"
	"github.com/gonewx/scrollfx/pkg/smooth"
	"github.com/gonewx/scrollfx/pkg/story"
	"github.com/gonewx/scrollfx/pkg/throttle"
)

// 滚动停止后多久吸附到最近的横向分节
const snapDelay = 150 * time.Millisecond

// Viewport 视口尺寸（px）
type Viewport struct {
	Width  float64
	Height float64
}

// PageOptions 页面构造参数
type PageOptions struct {
	Config      *config.ScrollConfig
	Preferences settings.Preferences
	Viewport    Viewport
	TPS         int   // 每秒 tick 数，<=0 时取 smooth.fps
	Seed        int64 // 粒子随机种子
}

// Page 滚动页面的全部状态
//
// 所有时间相关的组件共享一个 ManualClock，由 Tick 按帧推进，
// 因此节流、防抖、吸附回调都在调用 Tick 的 goroutine 上执行。
type Page struct {
	cfg   *config.ScrollConfig
	prefs settings.Preferences

	clock *throttle.ManualClock
	start time.Time
	frame time.Duration

	driver *controller.StyleDriver
	ctrl   *controller.ScrollAnimationController

	smooth *smooth.Scroller
	story  *story.Scroller
	nav    *story.Navigator
	field  *particles.Field

	resize *throttle.Debouncer[Viewport]
	snap   *throttle.Debouncer[struct{}]

	viewport Viewport
	pending  Viewport
	device   responsive.DeviceClass
	ticks    int
}

// NewPage 创建页面并按初始视口完成布局
func NewPage(opts PageOptions) (*Page, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultScrollConfig()
	}
	vp := opts.Viewport
	if vp.Width <= 0 || vp.Height <= 0 {
		vp = Viewport{Width: float64(cfg.Page.Width), Height: float64(cfg.Page.Height)}
	}
	tps := opts.TPS
	if tps <= 0 {
		tps = cfg.Smooth.FPS
	}
	if tps <= 0 {
		tps = 60
	}

	start := time.Unix(0, 0)
	p := &Page{
		cfg:      cfg,
		prefs:    opts.Preferences,
		clock:    throttle.NewManualClock(start),
		start:    start,
		frame:    time.Second / time.Duration(tps),
		driver:   controller.NewStyleDriver(),
		viewport: vp,
		pending:  vp,
		device:   cfg.Breakpoints.Classify(vp.Width),
	}

	if err := p.buildController(); err != nil {
		return nil, err
	}

	p.smooth = smooth.NewScroller(cfg.Smooth, p.maxOffset())
	p.smooth.SetEnabled(p.prefs.SmoothScrollActive())

	st, err := p.buildStory()
	if err != nil {
		p.ctrl.Teardown()
		return nil, err
	}
	p.story = st
	p.nav = story.NewNavigator(cfg.Story.SectionIDs())

	field, err := particles.NewField(cfg.Particles, vp.Width, vp.Height, cfg.Breakpoints.ParticleCount(vp.Width), opts.Seed)
	if err != nil {
		p.ctrl.Teardown()
		return nil, fmt.Errorf("粒子配置无效: %w", err)
	}
	p.field = field
	p.field.SetSpeed(responsive.MotionFor(p.prefs.ReducedMotion).ParticleSpeed)

	p.resize = throttle.NewDebouncer(p.applyResize, cfg.ResizeDebounce(), p.clock)
	p.snap = throttle.NewDebouncer(func(struct{}) { p.snapToPanel() }, snapDelay, p.clock)

	// 首帧立即计算一次，避免所有通道停留在构造时的值
	if _, err := p.ctrl.Process(scroll.Sample{Offset: 0, ViewportHeight: vp.Height}); err != nil {
		p.ctrl.Teardown()
		return nil, err
	}

	log.Printf("[Page] Created: viewport %.0fx%.0f, device %s, %d channels, %d sections, %d panels",
		vp.Width, vp.Height, p.device, len(cfg.Channels), len(cfg.Story.Sections), len(cfg.Story.Panels))
	return p, nil
}

func (p *Page) buildController() error {
	ctrl, err := controller.New(controller.Options{
		Driver:         p.driver,
		ViewportHeight: p.viewport.Height,
		ThrottleWait:   p.cfg.ThrottleWait(),
		Clock:          p.clock,
	})
	if err != nil {
		return err
	}
	channels, err := p.cfg.ControllerChannels(p.device)
	if err != nil {
		ctrl.Teardown()
		return err
	}
	for _, ch := range channels {
		if err := ctrl.AddChannel(ch); err != nil {
			ctrl.Teardown()
			return fmt.Errorf("无法注册通道 %s: %w", ch.Name, err)
		}
	}
	p.ctrl = ctrl
	return nil
}

func (p *Page) buildStory() (*story.Scroller, error) {
	panels := len(p.cfg.Story.Panels)
	if panels == 0 {
		panels = 1
	}
	start, err := p.cfg.Story.Start.Resolve(p.viewport.Height)
	if err != nil {
		return nil, err
	}
	length, err := p.cfg.Story.Length.Resolve(p.viewport.Height)
	if err != nil {
		return nil, err
	}
	if length == 0 {
		length = float64(panels-1) * p.viewport.Width
	}
	return story.NewScroller(panels, start, length)
}

func (p *Page) pageLength() float64 {
	length, err := p.cfg.Page.Length.Resolve(p.viewport.Height)
	if err != nil {
		return p.viewport.Height
	}
	return length
}

func (p *Page) maxOffset() float64 {
	return math.Max(0, p.pageLength()-p.viewport.Height)
}

// Tick 推进一帧
func (p *Page) Tick() {
	p.ticks++
	p.clock.Advance(p.frame)

	offset := p.smooth.Update()
	p.ctrl.HandleScroll(offset, p.clock.Now().Sub(p.start).Milliseconds())

	// 平滑滚动途中不同步，避免覆盖尚未到达的导航目标
	if p.smooth.Settled() {
		p.nav.Sync(p.SectionAt(offset))
	}
	if p.prefs.ParticlesEnabled {
		p.field.Update()
	}
}

// Wheel 滚轮输入（px，正数向下）
func (p *Page) Wheel(delta float64) {
	if delta == 0 {
		return
	}
	p.smooth.Wheel(delta)
	p.snap.Call(struct{}{})
}

// Touch 触摸拖动输入（px，正数向下）
func (p *Page) Touch(delta float64) {
	if delta == 0 {
		return
	}
	p.smooth.Touch(delta)
	p.snap.Call(struct{}{})
}

// PageBy 按视口高度的倍数翻页
func (p *Page) PageBy(pages float64) {
	p.smooth.ScrollTo(p.smooth.Target() + pages*p.viewport.Height)
	p.snap.Call(struct{}{})
}

// ScrollTo 平滑滚动到指定偏移
func (p *Page) ScrollTo(offset float64) {
	p.smooth.ScrollTo(offset)
}

// GoToSection 导航到分区 index，重复导航到当前分区被忽略
func (p *Page) GoToSection(index int) bool {
	index, moved := p.nav.NavigateTo(index)
	if !moved {
		return false
	}
	p.smooth.ScrollTo(p.sectionOffset(index))
	log.Printf("[Page] Navigate to section %s", p.nav.CurrentID())
	return true
}

// GoToAnchor 按锚点（"#contact" 或 "contact"）导航
func (p *Page) GoToAnchor(anchor string) bool {
	index := p.nav.IndexOf(anchor)
	if index < 0 {
		log.Printf("[Page] Unknown anchor %q", anchor)
		return false
	}
	return p.GoToSection(index)
}

// NextSection 下一分区
func (p *Page) NextSection() bool {
	return p.GoToSection(p.nav.Current() + 1)
}

// PrevSection 上一分区
func (p *Page) PrevSection() bool {
	return p.GoToSection(p.nav.Current() - 1)
}

// GoToPanel 横向区内跳转到分节 index（导航圆点）
func (p *Page) GoToPanel(index int) {
	p.smooth.ScrollTo(p.story.SectionOffset(index))
}

// StepPanel 横向区内前后移动一个分节；不在固定区间内时返回 false
func (p *Page) StepPanel(delta int) bool {
	target := p.smooth.Target()
	if !p.story.Pinned(target) {
		return false
	}
	p.GoToPanel(p.story.ActiveIndex(target) + delta)
	return true
}

func (p *Page) snapToPanel() {
	motion := responsive.MotionFor(p.prefs.ReducedMotion)
	target := p.smooth.Target()
	snapped := p.story.SnapOffset(target, motion.Snap)
	if snapped != target {
		p.smooth.ScrollTo(snapped)
	}
}

func (p *Page) sectionOffset(index int) float64 {
	secs := p.cfg.Story.Sections
	if index < 0 || index >= len(secs) {
		return 0
	}
	at, err := secs[index].At.Resolve(p.viewport.Height)
	if err != nil {
		return 0
	}
	return math.Min(at, p.maxOffset())
}

// SectionAt 视口中线所在的分区
func (p *Page) SectionAt(offset float64) int {
	current := 0
	mid := offset + p.viewport.Height/2
	for i := range p.cfg.Story.Sections {
		if p.sectionOffset(i) <= mid {
			current = i
		}
	}
	return current
}

// Resize 报告新的视口尺寸，实际布局在防抖间隔后进行
func (p *Page) Resize(vp Viewport) {
	if vp.Width <= 0 || vp.Height <= 0 || vp == p.pending {
		return
	}
	p.pending = vp
	if p.cfg.ResizeDebounce() <= 0 {
		p.applyResize(vp)
		return
	}
	p.resize.Call(vp)
}

func (p *Page) applyResize(vp Viewport) {
	if vp == p.viewport {
		return
	}
	prev := p.viewport
	p.viewport = vp

	if err := p.ctrl.Resize(vp.Height); err != nil {
		log.Printf("[Page] Resize rejected: %v", err)
		p.viewport = prev
		return
	}
	if device := p.cfg.Breakpoints.Classify(vp.Width); device != p.device {
		log.Printf("[Page] Device class changed: %s -> %s", p.device, device)
		p.device = device
		p.applyDeviceThresholds()
	}

	p.smooth.SetMax(p.maxOffset())
	if st, err := p.buildStory(); err != nil {
		log.Printf("[Page] Failed to rebuild story: %v", err)
	} else {
		p.story = st
	}
	p.field.Resize(vp.Width, vp.Height)
	p.field.SetCount(p.cfg.Breakpoints.ParticleCount(vp.Width))

	// 重新评估当前位置下的通道输出
	if _, err := p.ctrl.Process(scroll.Sample{Offset: p.smooth.Offset(), ViewportHeight: vp.Height}); err != nil {
		log.Printf("[Page] Failed to process after resize: %v", err)
	}
	log.Printf("[Page] Viewport %.0fx%.0f -> %.0fx%.0f", prev.Width, prev.Height, vp.Width, vp.Height)
}

// applyDeviceThresholds 就地更新随设备类别变化的通道阈值，其余通道及所有锁存状态不受影响
func (p *Page) applyDeviceThresholds() {
	for _, ch := range p.cfg.Channels {
		if ch.Responsive == "" {
			continue
		}
		on, off := ch.Thresholds(p.device)
		if err := p.ctrl.SetThresholds(ch.Name, on, off); err != nil {
			log.Printf("[Page] Failed to update thresholds of %s: %v", ch.Name, err)
		}
	}
}

// SetPreferences 应用用户偏好
func (p *Page) SetPreferences(prefs settings.Preferences) {
	p.prefs = prefs
	p.smooth.SetEnabled(prefs.SmoothScrollActive())
	p.field.SetSpeed(responsive.MotionFor(prefs.ReducedMotion).ParticleSpeed)
}

// Preferences 当前偏好
func (p *Page) Preferences() settings.Preferences {
	return p.prefs
}

// Style 目标元素的当前样式
func (p *Page) Style(target string) controller.Style {
	return p.driver.Style(target)
}

// Offset 当前渲染偏移
func (p *Page) Offset() float64 {
	return p.smooth.Offset()
}

// Target 平滑滚动目标偏移
func (p *Page) Target() float64 {
	return p.smooth.Target()
}

// MaxOffset 最大滚动偏移
func (p *Page) MaxOffset() float64 {
	return p.smooth.Max()
}

// Viewport 当前生效的视口
func (p *Page) Viewport() Viewport {
	return p.viewport
}

// Device 当前设备类别
func (p *Page) Device() responsive.DeviceClass {
	return p.device
}

// Controller 滚动动画控制器
func (p *Page) Controller() *controller.ScrollAnimationController {
	return p.ctrl
}

// Story 横向滚动区
func (p *Page) Story() *story.Scroller {
	return p.story
}

// Navigator 分区导航
func (p *Page) Navigator() *story.Navigator {
	return p.nav
}

// Field 背景粒子场
func (p *Page) Field() *particles.Field {
	return p.field
}

// Config 页面配置
func (p *Page) Config() *config.ScrollConfig {
	return p.cfg
}

// SectionOffset 分区 index 的页面偏移
func (p *Page) SectionOffset(index int) float64 {
	return p.sectionOffset(index)
}

// VideoShift 背景视频的视差位移，移动端和减少动态效果时为 0
func (p *Page) VideoShift() float64 {
	if p.prefs.ReducedMotion || !responsive.ParallaxEnabled(p.device) {
		return 0
	}
	return story.VideoParallax(p.smooth.Offset())
}

// ParallaxShift 视差元素 i 的水平位移
func (p *Page) ParallaxShift(i int) float64 {
	elems := p.cfg.Story.Parallax
	if i < 0 || i >= len(elems) || p.prefs.ReducedMotion {
		return 0
	}
	e := elems[i]
	return story.ParallaxX(e.Speed, p.story.SectionProgress(e.Panel, p.smooth.Offset()))
}

// Ticks 已推进的帧数
func (p *Page) Ticks() int {
	return p.ticks
}

// Teardown 释放页面，停止所有挂起的回调
func (p *Page) Teardown() {
	p.resize.Cancel()
	p.snap.Cancel()
	p.ctrl.Teardown()
	log.Printf("[Page] Teardown after %d ticks", p.ticks)
}
