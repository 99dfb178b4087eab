// Package app 提供滚动页面应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过根目录 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/gonewx/scrollfx/pkg/config"
	"github.com/gonewx/scrollfx/pkg/settings"
	"github.com/gonewx/scrollfx/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppName gdata 存储使用的应用名
const AppName = "scrollfx"

// 每格滚轮对应的像素
const wheelStep = 100.0

var sectionKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 滚动配置路径，"data/" 开头从内嵌资源读取，为空使用默认配置
	ConfigPath string
	// ReducedMotion 强制开启减少动态效果（覆盖已保存的偏好）
	ReducedMotion bool
	// NoPersist 不读写偏好存储
	NoPersist bool
}

// App 是滚动页面应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	page     *Page
	prefs    *settings.Manager
	renderer *renderer
	drag     *utils.DragTracker
	verbose  bool
	mobile   bool // 移动端：拖动按触摸惯性处理，不调整窗口

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	path := cfg.ConfigPath
	if path == "" {
		path = config.DefaultScrollConfigPath
	}
	scrollConfig, err := config.LoadScrollConfig(path)
	if err != nil {
		return nil, fmt.Errorf("滚动配置加载失败: %w", err)
	}
	log.Printf("[ScrollConfig] Loaded %s: %d channels", path, len(scrollConfig.Channels))

	prefs := openPreferences(cfg.NoPersist)
	if cfg.ReducedMotion {
		prefs.SetReducedMotion(true)
	}

	page, err := NewPage(PageOptions{
		Config:      scrollConfig,
		Preferences: prefs.Preferences(),
		TPS:         ebiten.DefaultTPS,
		Seed:        time.Now().UnixNano(),
	})
	if err != nil {
		return nil, fmt.Errorf("页面初始化失败: %w", err)
	}

	mobile := utils.IsMobile()
	if !mobile {
		ebiten.SetWindowSize(scrollConfig.Page.Width, scrollConfig.Page.Height)
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	return &App{
		mobile:   mobile,
		page:     page,
		prefs:    prefs,
		renderer: newRenderer(),
		drag:     utils.NewDragTracker(),
		verbose:  cfg.Verbose,
	}, nil
}

// openPreferences 打开偏好存储，失败时进入降级模式
func openPreferences(noPersist bool) *settings.Manager {
	if noPersist {
		return settings.NewManager(nil)
	}
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage dir unavailable: %v", err)
	} else if path := utils.GetStoragePath(); path != "" {
		log.Printf("[App] Storage path: %s", path)
	}
	storage, err := settings.Open(AppName)
	if err != nil {
		log.Printf("[App] Warning: %v (preferences will not persist)", err)
		return settings.NewManager(nil)
	}
	return settings.NewManager(storage)
}

// Update 处理输入并推进一帧
func (a *App) Update() error {
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			cfg := a.page.Config()
			ebiten.SetWindowSize(cfg.Page.Width, cfg.Page.Height)
			a.pendingWindowSizeReset = false
		}
	}

	a.handleKeys()

	_, wheelY := ebiten.Wheel()
	if wheelY != 0 {
		// ebiten 滚轮向上为正
		a.page.Wheel(-wheelY * wheelStep)
	}

	a.drag.Update()
	if a.mobile || a.drag.Info().IsTouchInput {
		a.page.Touch(a.drag.ScrollDelta())
	} else {
		a.page.Wheel(a.drag.ScrollDelta())
	}
	if tapped, x, y := a.drag.Tapped(); tapped {
		a.handleTap(x, y)
	}

	a.page.Tick()
	return nil
}

func (a *App) handleKeys() {
	vp := a.page.Viewport()
	switch {
	case utils.IsAnyKeyJustPressed(ebiten.KeyArrowDown):
		a.page.Wheel(wheelStep)
	case utils.IsAnyKeyJustPressed(ebiten.KeyArrowUp):
		a.page.Wheel(-wheelStep)
	case utils.IsAnyKeyJustPressed(ebiten.KeyPageDown, ebiten.KeySpace):
		a.page.PageBy(0.9)
	case utils.IsAnyKeyJustPressed(ebiten.KeyPageUp):
		a.page.PageBy(-0.9)
	case utils.IsAnyKeyJustPressed(ebiten.KeyHome):
		a.page.ScrollTo(0)
	case utils.IsAnyKeyJustPressed(ebiten.KeyEnd):
		a.page.ScrollTo(a.page.MaxOffset())
	case utils.IsAnyKeyJustPressed(ebiten.KeyArrowRight):
		if !a.page.StepPanel(1) {
			a.page.Wheel(vp.Height * 0.25)
		}
	case utils.IsAnyKeyJustPressed(ebiten.KeyArrowLeft):
		if !a.page.StepPanel(-1) {
			a.page.Wheel(-vp.Height * 0.25)
		}
	case utils.IsAnyKeyJustPressed(ebiten.KeyTab):
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			a.page.PrevSection()
		} else {
			a.page.NextSection()
		}
	case utils.IsAnyKeyJustPressed(ebiten.KeyM):
		a.prefs.SetReducedMotion(!a.prefs.Preferences().ReducedMotion)
		a.applyPreferences()
	case utils.IsAnyKeyJustPressed(ebiten.KeyS):
		a.prefs.SetSmoothScroll(!a.prefs.Preferences().SmoothScroll)
		a.applyPreferences()
	case utils.IsAnyKeyJustPressed(ebiten.KeyP):
		a.prefs.SetParticlesEnabled(!a.prefs.Preferences().ParticlesEnabled)
		a.applyPreferences()
	case inpututil.IsKeyJustPressed(ebiten.KeyF11) && !a.mobile:
		a.toggleFullscreen()
	}

	// 数字键直接跳转分区
	for i, k := range sectionKeys {
		if inpututil.IsKeyJustPressed(k) {
			a.page.GoToSection(i)
		}
	}
}

func (a *App) handleTap(x, y int) {
	vp := a.page.Viewport()
	if i := hitNav(vp, len(a.page.Navigator().Sections()), x, y); i >= 0 {
		a.page.GoToSection(i)
		return
	}
	if a.page.Story().Pinned(a.page.Offset()) {
		if i := hitDot(vp, a.page.Story().Sections(), x, y); i >= 0 {
			a.page.GoToPanel(i)
		}
	}
}

func (a *App) applyPreferences() {
	prefs := a.prefs.Preferences()
	a.page.SetPreferences(prefs)
	if err := a.prefs.Save(); err != nil {
		log.Printf("[App] Failed to save preferences: %v", err)
	}
	log.Printf("[App] Preferences: %+v", prefs)
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 退出全屏后需要等待几帧才能正确设置窗口大小
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		return
	}
	ebiten.SetFullscreen(true)
}

// Draw 绘制页面
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.draw(screen, a.page)
}

// DrawFinalScreen 控制缩放滤波和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑屏幕尺寸等于窗口尺寸，尺寸变化经防抖后交给页面重新布局
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.page.Resize(Viewport{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	vp := a.page.Viewport()
	return int(vp.Width), int(vp.Height)
}

// Page 返回页面
func (a *App) Page() *Page {
	return a.page
}

// Close 保存偏好并释放页面
func (a *App) Close() {
	if err := a.prefs.Save(); err != nil {
		log.Printf("[App] Failed to save preferences on exit: %v", err)
	}
	a.page.Teardown()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
