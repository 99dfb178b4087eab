// Package story 实现横向 "故事" 滚动区
//
// 纵向滚动经过固定区间 [Start, Start+Length] 时，区内各全宽分节横向平移。
// 所有计算都是偏移量的纯函数，宿主负责把结果应用到渲染层。
package story

import (
	"errors"
	"fmt"
	"math"

	"github.com/gonewx/scrollfx/pkg/utils"
)

// ErrInvalidStory 横向滚动区配置无效
var ErrInvalidStory = errors.New("invalid story config")

// VideoParallaxFactor 首屏视频视差系数
const VideoParallaxFactor = 0.5

// ParallaxRange data-parallax 元素在 speed=1 时的最大横向位移（px）
const ParallaxRange = 200.0

// Scroller 横向滚动区
type Scroller struct {
	sections int
	start    float64
	length   float64
}

// NewScroller 创建横向滚动区
//
// 参数：
//   - sections: 分节数量（≥1）
//   - start: 固定区间起点（页面偏移，px）
//   - length: 固定区间长度（px），通常为容器总宽度减去视口宽度
func NewScroller(sections int, start, length float64) (*Scroller, error) {
	if sections < 1 {
		return nil, fmt.Errorf("%w: sections must be >= 1, got %d", ErrInvalidStory, sections)
	}
	if math.IsNaN(start) || math.IsNaN(length) || length < 0 {
		return nil, fmt.Errorf("%w: start=%v length=%v", ErrInvalidStory, start, length)
	}
	return &Scroller{sections: sections, start: start, length: length}, nil
}

// Sections 分节数量
func (s *Scroller) Sections() int {
	return s.sections
}

// Start 固定区间起点
func (s *Scroller) Start() float64 {
	return s.start
}

// End 固定区间终点
func (s *Scroller) End() float64 {
	return s.start + s.length
}

// Progress 横向滚动进度 [0,1]
func (s *Scroller) Progress(offset float64) float64 {
	if s.length == 0 {
		if offset >= s.start {
			return 1
		}
		return 0
	}
	return utils.Clamp01((offset - s.start) / s.length)
}

// Pinned 偏移是否处于固定区间内
func (s *Scroller) Pinned(offset float64) bool {
	return offset >= s.start && offset <= s.End()
}

// ActiveIndex 当前激活的分节（导航圆点高亮）
func (s *Scroller) ActiveIndex(offset float64) int {
	if s.sections == 1 {
		return 0
	}
	return int(math.Round(s.Progress(offset) * float64(s.sections-1)))
}

// TranslatePercent 分节容器的横向平移（百分比，负值向左）
func (s *Scroller) TranslatePercent(offset float64) float64 {
	return -100 * float64(s.sections-1) * s.Progress(offset)
}

// SectionOffset 点击导航圆点时滚动到的页面偏移
// 越界索引被钳制
func (s *Scroller) SectionOffset(index int) float64 {
	index = s.clampIndex(index)
	if s.sections == 1 {
		return s.start
	}
	return s.start + s.length*float64(index)/float64(s.sections-1)
}

// SnapOffset 吸附到最近分节的偏移；固定区间外或禁用吸附时原样返回
func (s *Scroller) SnapOffset(offset float64, snap bool) float64 {
	if !snap || !s.Pinned(offset) {
		return offset
	}
	return s.SectionOffset(s.ActiveIndex(offset))
}

// SectionProgress 分节 index 自身的进度：
// 左边缘进入视口右侧时为 0，右边缘离开视口左侧时为 1
func (s *Scroller) SectionProgress(index int, offset float64) float64 {
	left := float64(index) - s.Progress(offset)*float64(s.sections-1)
	return utils.Clamp01((1 - left) / 2)
}

// ParallaxX data-parallax 元素的横向位移（px）
func ParallaxX(speed, sectionProgress float64) float64 {
	return utils.Lerp(-ParallaxRange*speed, ParallaxRange*speed, utils.Clamp01(sectionProgress))
}

// VideoParallax 首屏视频的纵向视差位移（px）
func VideoParallax(offset float64) float64 {
	if offset < 0 {
		return 0
	}
	return offset * VideoParallaxFactor
}

func (s *Scroller) clampIndex(index int) int {
	if index < 0 {
		return 0
	}
	if index > s.sections-1 {
		return s.sections - 1
	}
	return index
}
