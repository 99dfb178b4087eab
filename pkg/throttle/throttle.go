// Package throttle 提供节流与防抖包装器
//
// 节流器保证底层函数在每个 wait 窗口内最多执行一次：
// 距上次执行已满 wait 时立即执行（leading），否则只保留最近一次参数，
// 在上次执行满 wait 后补发一次（trailing）。窗口内的多次调用只会覆盖待发参数，不会排队。
//
// 底层函数的 panic 不会被吞掉：leading 调用传播给 Call 的调用者，
// trailing 调用传播给触发定时器的一方（ManualClock.Advance 的调用者）。
package throttle

import (
	"sync"
	"time"
)

// Throttler 节流器
type Throttler[T any] struct {
	fn    func(T)
	wait  time.Duration
	clock Clock

	mu         sync.Mutex
	invoked    bool
	lastInvoke time.Time
	timer      Timer
	gen        uint64
	pending    bool
	pendingArg T
}

// New 创建节流器
//
// 参数：
//   - fn: 被节流的函数
//   - wait: 节流间隔，小于 0 按 0 处理（每次调用都立即执行）
//   - clock: 时间源，为 nil 时使用 SystemClock
func New[T any](fn func(T), wait time.Duration, clock Clock) *Throttler[T] {
	if wait < 0 {
		wait = 0
	}
	if clock == nil {
		clock = SystemClock
	}
	return &Throttler[T]{
		fn:    fn,
		wait:  wait,
		clock: clock,
	}
}

// Throttle 返回 fn 的节流包装函数
func Throttle[T any](fn func(T), wait time.Duration, clock Clock) func(T) {
	return New(fn, wait, clock).Call
}

// Call 调用节流包装
func (t *Throttler[T]) Call(arg T) {
	t.mu.Lock()
	now := t.clock.Now()

	// 没有待发的 trailing，且距上次执行已满 wait：立即执行
	if t.timer == nil && (!t.invoked || now.Sub(t.lastInvoke) >= t.wait) {
		t.invoked = true
		t.lastInvoke = now
		t.mu.Unlock()
		t.fn(arg)
		return
	}

	t.pendingArg = arg
	t.pending = true
	if t.timer == nil {
		t.gen++
		gen := t.gen
		delay := t.wait - now.Sub(t.lastInvoke)
		t.timer = t.clock.AfterFunc(delay, func() { t.fireTrailing(gen) })
	}
	t.mu.Unlock()
}

// Pending 是否有待发的 trailing 调用
func (t *Throttler[T]) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// Wait 返回节流间隔
func (t *Throttler[T]) Wait() time.Duration {
	return t.wait
}

// Cancel 丢弃待发的 trailing 调用并停止其定时器
// 宿主在销毁视图时调用，避免销毁后仍有回调执行
// 返回是否确实丢弃了一次待发调用
func (t *Throttler[T]) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	dropped := t.pending
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
	t.pending = false
	var zero T
	t.pendingArg = zero
	return dropped
}

func (t *Throttler[T]) fireTrailing(gen uint64) {
	t.mu.Lock()
	// 已被 Cancel 或已被新一轮定时器取代
	if gen != t.gen || !t.pending {
		t.mu.Unlock()
		return
	}
	arg := t.pendingArg
	var zero T
	t.pendingArg = zero
	t.pending = false
	t.timer = nil
	t.invoked = true
	t.lastInvoke = t.clock.Now()
	t.mu.Unlock()

	t.fn(arg)
}
