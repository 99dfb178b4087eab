package throttle

import (
	"sync"
	"time"
)

// Debouncer 防抖器
// 每次调用都会重新计时，只有在 wait 内没有新调用时才以最后一次参数执行一次
// 页面用它合并窗口尺寸变化（连续 resize 只在停止 250ms 后处理一次）
type Debouncer[T any] struct {
	fn    func(T)
	wait  time.Duration
	clock Clock

	mu      sync.Mutex
	timer   Timer
	gen     uint64
	pending bool
	arg     T
}

// NewDebouncer 创建防抖器，clock 为 nil 时使用 SystemClock
func NewDebouncer[T any](fn func(T), wait time.Duration, clock Clock) *Debouncer[T] {
	if wait < 0 {
		wait = 0
	}
	if clock == nil {
		clock = SystemClock
	}
	return &Debouncer[T]{fn: fn, wait: wait, clock: clock}
}

// Call 记录参数并重新计时
func (d *Debouncer[T]) Call(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.arg = arg
	d.pending = true
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.wait, func() { d.fire(gen) })
}

// Pending 是否有尚未执行的调用
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Cancel 丢弃尚未执行的调用
func (d *Debouncer[T]) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	dropped := d.pending
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = false
	var zero T
	d.arg = zero
	return dropped
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	arg := d.arg
	var zero T
	d.arg = zero
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.fn(arg)
}
