package throttle

import (
	"testing"
	"time"
)

// TestManualClock_Advance 到期回调按到期时间顺序执行，执行时 Now() 等于到期时间
func TestManualClock_Advance(t *testing.T) {
	clock := NewManualClock(testStart)
	order := make([]string, 0)
	at := make([]time.Duration, 0)

	record := func(name string) func() {
		return func() {
			order = append(order, name)
			at = append(at, clock.Now().Sub(testStart))
		}
	}

	clock.AfterFunc(30*time.Millisecond, record("c"))
	clock.AfterFunc(10*time.Millisecond, record("a"))
	clock.AfterFunc(20*time.Millisecond, record("b"))
	clock.AfterFunc(10*time.Millisecond, record("a2"))

	clock.Advance(25 * time.Millisecond)

	want := []string{"a", "a2", "b"}
	if len(order) != len(want) {
		t.Fatalf("fired %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
	if at[2] != 20*time.Millisecond {
		t.Errorf("b fired at %v, want 20ms", at[2])
	}
	if got := clock.Now().Sub(testStart); got != 25*time.Millisecond {
		t.Errorf("Now() = %v after Advance, want 25ms", got)
	}
	if clock.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", clock.Pending())
	}
}

// TestManualClock_Stop 取消的定时器不会触发
func TestManualClock_Stop(t *testing.T) {
	clock := NewManualClock(testStart)
	fired := false
	timer := clock.AfterFunc(10*time.Millisecond, func() { fired = true })

	if !timer.Stop() {
		t.Error("Stop() on a pending timer should return true")
	}
	if timer.Stop() {
		t.Error("Stop() twice should return false")
	}
	clock.Advance(time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
}

// TestManualClock_NestedSchedule 回调中安排的定时器若在推进范围内也会执行
func TestManualClock_NestedSchedule(t *testing.T) {
	clock := NewManualClock(testStart)
	count := 0
	var tick func()
	tick = func() {
		count++
		clock.AfterFunc(10*time.Millisecond, tick)
	}
	clock.AfterFunc(10*time.Millisecond, tick)

	clock.Advance(55 * time.Millisecond)

	if count != 5 {
		t.Errorf("expected 5 ticks, got %d", count)
	}
}
