// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// TapSlop 按下到释放的移动距离小于该值时视为点击而非拖动（px）
const TapSlop = 8

// DragState 拖动状态
type DragState int

const (
	// DragStateNone 无拖动
	DragStateNone DragState = iota
	// DragStateStarted 刚按下
	DragStateStarted
	// DragStateDragging 按住移动
	DragStateDragging
	// DragStateEnded 刚释放，只持续一帧
	DragStateEnded
)

// PointerSample 一帧的指针状态
type PointerSample struct {
	Pressed bool
	X, Y    int
	Touch   bool
}

// DragInfo 拖动信息
type DragInfo struct {
	State          DragState
	StartX, StartY int
	LastX, LastY   int
	CurrentX       int
	CurrentY       int
	IsTouchInput   bool
	moved          bool
}

// DragTracker 将鼠标拖动和触摸滑动统一为每帧的位移
// 内容跟随手指移动，因此向上滑动（Y 减小）对应向下滚动
type DragTracker struct {
	info DragInfo
}

// NewDragTracker 创建拖动跟踪器
func NewDragTracker() *DragTracker {
	return &DragTracker{}
}

// Update 读取 ebiten 输入并推进一帧（优先触摸）
func (d *DragTracker) Update() {
	d.Step(ReadPointer())
}

// ReadPointer 读取当前帧的指针状态
func ReadPointer() PointerSample {
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return PointerSample{Pressed: true, X: x, Y: y, Touch: true}
	}
	x, y := ebiten.CursorPosition()
	return PointerSample{Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), X: x, Y: y}
}

// Step 用一帧的指针状态推进状态机
func (d *DragTracker) Step(s PointerSample) {
	switch d.info.State {
	case DragStateNone, DragStateEnded:
		if !s.Pressed {
			d.info = DragInfo{}
			return
		}
		d.info = DragInfo{
			State:        DragStateStarted,
			StartX:       s.X,
			StartY:       s.Y,
			LastX:        s.X,
			LastY:        s.Y,
			CurrentX:     s.X,
			CurrentY:     s.Y,
			IsTouchInput: s.Touch,
		}

	case DragStateStarted, DragStateDragging:
		d.info.LastX, d.info.LastY = d.info.CurrentX, d.info.CurrentY
		if !s.Pressed {
			// 释放帧没有新位置，保留最后位置
			d.info.State = DragStateEnded
			return
		}
		d.info.State = DragStateDragging
		d.info.CurrentX, d.info.CurrentY = s.X, s.Y
		dx, dy := d.info.CurrentX-d.info.StartX, d.info.CurrentY-d.info.StartY
		if dx*dx+dy*dy >= TapSlop*TapSlop {
			d.info.moved = true
		}
	}
}

// ScrollDelta 本帧的滚动位移（px，正数向下），仅在拖动中非零
func (d *DragTracker) ScrollDelta() float64 {
	if d.info.State != DragStateDragging {
		return 0
	}
	return float64(d.info.LastY - d.info.CurrentY)
}

// Tapped 本帧是否完成了一次点击，返回点击位置
func (d *DragTracker) Tapped() (bool, int, int) {
	if d.info.State != DragStateEnded || d.info.moved {
		return false, 0, 0
	}
	return true, d.info.StartX, d.info.StartY
}

// State 当前状态
func (d *DragTracker) State() DragState {
	return d.info.State
}

// Info 完整拖动信息
func (d *DragTracker) Info() DragInfo {
	return d.info
}

// Reset 重置状态
func (d *DragTracker) Reset() {
	d.info = DragInfo{}
}

// IsAnyKeyJustPressed 任一按键本帧刚按下
func IsAnyKeyJustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
