package throttle

import (
	"sort"
	"sync"
	"time"
)

// Timer 是 Clock.AfterFunc 返回的可取消定时器
// *time.Timer 天然满足该接口
type Timer interface {
	Stop() bool
}

// Clock 时间源
// 节流/防抖只通过 Clock 读取时间和安排延迟回调，便于在测试和帧驱动宿主中替换
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

// SystemClock 基于 time 包的真实时钟
// 注意：延迟回调在 time 包的定时器 goroutine 上执行
var SystemClock Clock = systemClock{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualClock 手动推进的时钟
//
// 到期的回调只会在 Advance 内、由调用 Advance 的 goroutine 同步执行。
// 宿主在每帧 Update 中调用 Advance(dt)，即可让所有延迟回调都落在同一个游戏循环线程上。
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	clock *ManualClock
	due   time.Time
	seq   uint64
	fn    func()
	done  bool
}

// NewManualClock 创建从 start 开始的手动时钟
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now 返回当前时钟时间
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc 安排 f 在 d 之后执行（仅在 Advance 中触发）
func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &manualTimer{clock: c, due: c.now.Add(d), seq: c.seq, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance 将时钟推进 d，并按到期顺序同步执行所有到期回调
//
// 回调执行时 Now() 等于该回调的到期时间；回调中新安排的定时器
// 如果也在本次推进范围内，同样会被执行。
// 回调中的 panic 会直接传播给 Advance 的调用者。
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.popDueLocked(target)
		if next == nil {
			if target.After(c.now) {
				c.now = target
			}
			c.mu.Unlock()
			return
		}
		if next.due.After(c.now) {
			c.now = next.due
		}
		c.mu.Unlock()

		next.fn()
	}
}

// Pending 返回尚未触发也未取消的定时器数量
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// popDueLocked 取出最早到期（同时到期按创建顺序）的定时器
func (c *ManualClock) popDueLocked(target time.Time) *manualTimer {
	if len(c.timers) == 0 {
		return nil
	}
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].due.Equal(c.timers[j].due) {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].due.Before(c.timers[j].due)
	})
	first := c.timers[0]
	if first.due.After(target) {
		return nil
	}
	c.timers = c.timers[1:]
	first.done = true
	return first
}

// Stop 取消定时器；已触发或已取消时返回 false
func (t *manualTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			break
		}
	}
	return true
}
