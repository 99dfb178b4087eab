//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 手动构建：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.gonewx.scrollfx -o build/android/scrollfx.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/ScrollFX.xcframework -v ./mobile
package mobile

import (
	"embed"
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/gonewx/scrollfx/pkg/app"
	"github.com/gonewx/scrollfx/pkg/embedded"
)

//go:generate cp ../data/scroll_config.yaml data/scroll_config.yaml

//go:embed data/scroll_config.yaml
var dataFS embed.FS

func init() {
	embedded.Init(dataFS)

	scrollApp, err := app.NewApp(app.Config{Verbose: true})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	mobile.SetGame(scrollApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
