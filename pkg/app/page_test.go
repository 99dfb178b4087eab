package app

import (
	"math"
	"testing"

	"github.com/gonewx/scrollfx/pkg/config"
	"github.com/gonewx/scrollfx/pkg/responsive"
	"github.com/gonewx/scrollfx/pkg/settings"
)

// 视口 1000x500：页面 3000px，横向区 1000~2500px，四个分节
const testPageConfig = `
throttle_ms: 16
resize_debounce_ms: 100
page:
  width: 1000
  height: 500
  length: {value: 600, unit: vh}
story:
  sections:
    - {id: hero, at: {value: 0}}
    - {id: services, at: {value: 100, unit: vh}}
    - {id: projects, at: {value: 200, unit: vh}}
    - {id: contact, at: {value: 500, unit: vh}}
  start: {value: 200, unit: vh}
  length: {value: 300, unit: vh}
  panels: [{id: a}, {id: b}, {id: c}, {id: d}]
  parallax:
    - {panel: 1, speed: 0.5}
channels:
  - name: hero-scrolled
    target: hero
    property: class
    class: scrolled
    responsive: hero
  - name: fade
    target: hero-content
    property: opacity
    on: {value: 80, unit: vh}
    off: {value: 20, unit: vh}
    curve: {type: linear, from: 1, to: 0}
`

// instantPrefs 关闭平滑滚动，偏移在下一帧直接到达目标
var instantPrefs = settings.Preferences{SmoothScroll: false, ParticlesEnabled: true}

func newTestPage(t *testing.T, prefs settings.Preferences) *Page {
	t.Helper()
	cfg, err := config.ParseScrollConfig([]byte(testPageConfig))
	if err != nil {
		t.Fatalf("ParseScrollConfig() error: %v", err)
	}
	p, err := NewPage(PageOptions{Config: cfg, Preferences: prefs, TPS: 60, Seed: 1})
	if err != nil {
		t.Fatalf("NewPage() error: %v", err)
	}
	t.Cleanup(p.Teardown)
	return p
}

func tick(p *Page, n int) {
	for i := 0; i < n; i++ {
		p.Tick()
	}
}

// TestNewPage_InitialState 构造后所有通道已按偏移 0 输出
func TestNewPage_InitialState(t *testing.T) {
	p := newTestPage(t, instantPrefs)

	if vp := p.Viewport(); vp.Width != 1000 || vp.Height != 500 {
		t.Errorf("Viewport() = %+v, want 1000x500", vp)
	}
	if p.MaxOffset() != 2500 {
		t.Errorf("MaxOffset() = %v, want 2500", p.MaxOffset())
	}
	if p.Device() != responsive.DeviceDesktop {
		t.Errorf("Device() = %v, want desktop", p.Device())
	}
	if got := p.Style("hero-content").Opacity; got != 1 {
		t.Errorf("hero-content opacity = %v, want 1", got)
	}
	if p.Style("hero").HasClass("scrolled") {
		t.Error("hero should not be scrolled at offset 0")
	}
	if p.Field().Len() != 50 {
		t.Errorf("particle count = %d, want 50 for 1000px", p.Field().Len())
	}
}

// TestNewPage_DefaultConfig 空配置也能创建页面
func TestNewPage_DefaultConfig(t *testing.T) {
	p, err := NewPage(PageOptions{Preferences: *settings.DefaultPreferences()})
	if err != nil {
		t.Fatalf("NewPage() error: %v", err)
	}
	defer p.Teardown()

	tick(p, 3)
	if len(p.Controller().Channels()) != 0 {
		t.Errorf("expected no channels, got %v", p.Controller().Channels())
	}
}

// TestPage_ScrollDrivesChannels 滚动经控制器驱动样式，迟滞带内保持锁存
func TestPage_ScrollDrivesChannels(t *testing.T) {
	p := newTestPage(t, instantPrefs)

	steps := []struct {
		name     string
		delta    float64
		offset   float64
		scrolled bool
		opacity  float64
	}{
		{"越过首屏阈值", 300, 300, true, 1},
		{"越过淡出阈值", 200, 500, true, 0},
		{"回到迟滞带内", -250, 250, true, 0.5},
		{"回到顶部", -250, 0, false, 1},
	}

	for _, s := range steps {
		p.Wheel(s.delta)
		tick(p, 3)

		if p.Offset() != s.offset {
			t.Fatalf("%s: Offset() = %v, want %v", s.name, p.Offset(), s.offset)
		}
		if got := p.Style("hero").HasClass("scrolled"); got != s.scrolled {
			t.Errorf("%s: scrolled = %v, want %v", s.name, got, s.scrolled)
		}
		if got := p.Style("hero-content").Opacity; got != s.opacity {
			t.Errorf("%s: opacity = %v, want %v", s.name, got, s.opacity)
		}
	}
}

// TestPage_SmoothScroll 平滑滚动逐帧逼近目标
func TestPage_SmoothScroll(t *testing.T) {
	p := newTestPage(t, settings.Preferences{SmoothScroll: true})

	p.Wheel(400)
	p.Tick()
	if p.Offset() <= 0 || p.Offset() >= 400 {
		t.Fatalf("first frame offset %v should be between 0 and 400", p.Offset())
	}

	for i := 0; i < 600 && p.Offset() != p.Target(); i++ {
		p.Tick()
	}
	tick(p, 2)
	if p.Offset() != 400 {
		t.Errorf("did not settle at 400, offset = %v", p.Offset())
	}
	if !p.Style("hero").HasClass("scrolled") {
		t.Error("hero should be scrolled after settling at 400")
	}
}

// TestPage_Navigation 分区导航
func TestPage_Navigation(t *testing.T) {
	p := newTestPage(t, instantPrefs)

	if !p.GoToSection(2) {
		t.Fatal("GoToSection(2) should navigate")
	}
	if p.Target() != 1000 {
		t.Errorf("Target() = %v, want 1000", p.Target())
	}
	if p.GoToSection(2) {
		t.Error("repeat navigation to the current section should be ignored")
	}

	tick(p, 2)
	if p.Navigator().Current() != 2 {
		t.Errorf("Current() = %d, want 2", p.Navigator().Current())
	}

	if !p.GoToAnchor("#contact") {
		t.Fatal("GoToAnchor(#contact) should navigate")
	}
	tick(p, 2)
	if p.Offset() != 2500 {
		t.Errorf("Offset() = %v, want 2500", p.Offset())
	}
	if p.GoToAnchor("pricing") {
		t.Error("unknown anchor should not navigate")
	}

	if !p.PrevSection() || p.Target() != 1000 {
		t.Errorf("PrevSection() target = %v, want 1000", p.Target())
	}
}

// TestPage_SnapToPanel 横向区内停止滚动后吸附到最近分节
func TestPage_SnapToPanel(t *testing.T) {
	tests := []struct {
		name   string
		prefs  settings.Preferences
		target float64
	}{
		{"吸附", instantPrefs, 1500},
		{"减少动态效果不吸附", settings.Preferences{ReducedMotion: true}, 1700},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPage(t, tt.prefs)
			p.Wheel(1700)
			tick(p, 20)

			if p.Target() != tt.target {
				t.Errorf("Target() = %v, want %v", p.Target(), tt.target)
			}
			if p.Offset() != tt.target {
				t.Errorf("Offset() = %v, want %v", p.Offset(), tt.target)
			}
		})
	}
}

// TestPage_StepPanel 横向区内左右切换分节
func TestPage_StepPanel(t *testing.T) {
	p := newTestPage(t, instantPrefs)

	if p.StepPanel(1) {
		t.Error("StepPanel outside the pinned range should return false")
	}

	p.GoToPanel(1)
	if p.Target() != 1500 {
		t.Fatalf("GoToPanel(1) target = %v, want 1500", p.Target())
	}
	if !p.StepPanel(1) || p.Target() != 2000 {
		t.Errorf("StepPanel(1) target = %v, want 2000", p.Target())
	}
	p.GoToPanel(99)
	if p.Target() != 2500 {
		t.Errorf("GoToPanel(99) should clamp to the last panel, got %v", p.Target())
	}
}

// TestPage_ResizeDebounced 视口变化在防抖间隔后生效，锁存保持
func TestPage_ResizeDebounced(t *testing.T) {
	p := newTestPage(t, instantPrefs)
	p.Wheel(500)
	tick(p, 2)
	if st, _ := p.Controller().State("fade"); !st.Latched {
		t.Fatal("fade should be latched at 500")
	}

	p.Resize(Viewport{Width: 1000, Height: 450})
	p.Resize(Viewport{Width: 1000, Height: 400})
	p.Tick()
	if p.Viewport().Height != 500 {
		t.Errorf("viewport changed before debounce: %+v", p.Viewport())
	}

	tick(p, 8)
	if p.Viewport().Height != 400 {
		t.Fatalf("viewport not applied after debounce: %+v", p.Viewport())
	}
	cfg, err := p.Controller().Config("fade")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OnThreshold != 320 || cfg.OffThreshold != 80 {
		t.Errorf("vh thresholds not re-resolved: on=%v off=%v", cfg.OnThreshold, cfg.OffThreshold)
	}
	if st, _ := p.Controller().State("fade"); !st.Latched {
		t.Error("latch should survive resize")
	}
	if p.MaxOffset() != 2000 {
		t.Errorf("MaxOffset() = %v, want 2000", p.MaxOffset())
	}
	if p.Story().Start() != 800 {
		t.Errorf("story start = %v, want 800", p.Story().Start())
	}
}

// TestPage_DeviceClassChange 切换到移动端后首屏阈值变为 50px
func TestPage_DeviceClassChange(t *testing.T) {
	p := newTestPage(t, instantPrefs)
	ctrl := p.Controller()

	// fade: on 80vh = 400, off 20vh = 100；先越过锁存阈值再回到区间内
	p.ScrollTo(500)
	tick(p, 2)
	p.ScrollTo(250)
	tick(p, 2)
	if state, _ := ctrl.State("fade"); !state.Latched {
		t.Fatal("fade should be latched inside its band before the resize")
	}

	p.Resize(Viewport{Width: 600, Height: 500})
	tick(p, 10)

	if p.Device() != responsive.DeviceMobile {
		t.Fatalf("Device() = %v, want mobile", p.Device())
	}
	if p.Controller() != ctrl || ctrl.Closed() {
		t.Error("device class change should update the existing controller in place")
	}
	if state, _ := ctrl.State("fade"); !state.Latched {
		t.Error("crossing a breakpoint must not reset the latch of a vh channel")
	}
	if got := p.Style("hero-content").Opacity; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("fade opacity = %v, want 0.5", got)
	}
	cfg, err := ctrl.Config("hero-scrolled")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OnThreshold != 50 || cfg.OffThreshold != 25 {
		t.Errorf("hero thresholds = %v/%v, want 50/25", cfg.OnThreshold, cfg.OffThreshold)
	}
	if p.Field().Len() != 30 {
		t.Errorf("particle count = %d, want 30 on mobile", p.Field().Len())
	}

	p.ScrollTo(0)
	tick(p, 2)
	if p.Style("hero").HasClass("scrolled") {
		t.Error("offset 0 should release the hero latch")
	}
	p.ScrollTo(60)
	tick(p, 2)
	if !p.Style("hero").HasClass("scrolled") {
		t.Error("60px should pass the mobile hero threshold")
	}
}

// TestPage_Parallax 视差位移
func TestPage_Parallax(t *testing.T) {
	p := newTestPage(t, instantPrefs)
	p.Wheel(300)
	tick(p, 2)
	if got := p.VideoShift(); got != 150 {
		t.Errorf("VideoShift() = %v, want 150", got)
	}

	p.GoToPanel(1)
	tick(p, 2)
	if got := p.ParallaxShift(0); math.Abs(got) > 1e-9 {
		t.Errorf("ParallaxShift(0) at its own panel = %v, want 0", got)
	}
	if got := p.ParallaxShift(5); got != 0 {
		t.Errorf("ParallaxShift out of range = %v, want 0", got)
	}

	p.SetPreferences(settings.Preferences{ReducedMotion: true})
	if got := p.VideoShift(); got != 0 {
		t.Errorf("VideoShift() with reduced motion = %v, want 0", got)
	}
}

// TestPage_Teardown 销毁后控制器关闭
func TestPage_Teardown(t *testing.T) {
	cfg, err := config.ParseScrollConfig([]byte(testPageConfig))
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewPage(PageOptions{Config: cfg, Preferences: instantPrefs})
	if err != nil {
		t.Fatal(err)
	}
	p.Teardown()
	if !p.Controller().Closed() {
		t.Error("controller should be closed after Teardown")
	}
}

// TestHitTesting 导航栏与圆点的点击检测
func TestHitTesting(t *testing.T) {
	vp := Viewport{Width: 1000, Height: 500}

	// 导航栏右半部分 4 项，每项 125px
	if got := hitNav(vp, 4, 510, 20); got != 0 {
		t.Errorf("hitNav(510,20) = %d, want 0", got)
	}
	if got := hitNav(vp, 4, 990, 20); got != 3 {
		t.Errorf("hitNav(990,20) = %d, want 3", got)
	}
	if got := hitNav(vp, 4, 100, 20); got != -1 {
		t.Errorf("hitNav(100,20) = %d, want -1", got)
	}
	if got := hitNav(vp, 4, 600, 300); got != -1 {
		t.Errorf("hitNav below the bar = %d, want -1", got)
	}

	cx, cy := dotPosition(vp, 4, 2, 0)
	if got := hitDot(vp, 4, int(cx), int(cy)); got != 2 {
		t.Errorf("hitDot on dot 2 = %d, want 2", got)
	}
	if got := hitDot(vp, 4, 0, 0); got != -1 {
		t.Errorf("hitDot far away = %d, want -1", got)
	}
}
