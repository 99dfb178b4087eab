// Package main 是滚动动画演示页面的桌面端入口
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--verbose           输出详细日志
//	--config <path>     滚动配置文件（默认使用内嵌的 data/scroll_config.yaml）
//	--reduced-motion    开启减少动态效果
//	--no-persist        不读写用户偏好
//
// Controls:
//
//	Wheel / Drag        - 滚动
//	Up/Down Arrow       - 滚动 100px
//	PgUp/PgDn, Space    - 翻页
//	Home/End            - 回到顶部 / 跳到底部
//	Left/Right Arrow    - 横向区内切换分节
//	Tab / Shift+Tab     - 下一个 / 上一个分区
//	1-9                 - 跳转到分区
//	M                   - 切换减少动态效果
//	S                   - 切换平滑滚动
//	P                   - 切换背景粒子
//	F11                 - 全屏
package main

import (
	"flag"
	"log"

	"github.com/gonewx/scrollfx/pkg/app"
	"github.com/gonewx/scrollfx/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag       = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag        = flag.String("config", "", "Scroll config path (default: embedded data/scroll_config.yaml)")
	reducedMotionFlag = flag.Bool("reduced-motion", false, "Force reduced motion")
	noPersistFlag     = flag.Bool("no-persist", false, "Do not load or save preferences")
)

func main() {
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	scrollApp, err := app.NewApp(app.Config{
		Verbose:       *verboseFlag,
		ConfigPath:    *configFlag,
		ReducedMotion: *reducedMotionFlag,
		NoPersist:     *noPersistFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer scrollApp.Close()

	ebiten.SetWindowTitle("ScrollFX")
	if err := ebiten.RunGame(scrollApp); err != nil {
		log.Fatal(err)
	}
}
