// Package controller 提供滚动动画控制器
//
// ScrollAnimationController 按视图实例化，独占各通道的 ChannelState，
// 每个采样对所有通道使用同一份偏移映射，再通过注入的 AnimationDriver 应用到渲染层。
// 视图销毁时调用 Teardown，取消待发的节流采样。
package controller

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/gonewx/scrollfx/pkg/scroll"
	"github.com/gonewx/scrollfx/pkg/throttle"
)

var (
	// ErrClosed 控制器已销毁
	ErrClosed = errors.New("scroll controller closed")

	// ErrDuplicateChannel 通道名重复
	ErrDuplicateChannel = errors.New("duplicate channel")

	// ErrUnknownChannel 通道不存在
	ErrUnknownChannel = errors.New("unknown channel")
)

// DefaultThrottleWait 默认采样节流间隔（约一帧）
const DefaultThrottleWait = 16 * time.Millisecond

// Channel 一个通道的定义
// 阈值可用视口相对单位（vh），控制器会在视口变化时重新解析
type Channel struct {
	Name    string
	Binding Binding
	On      scroll.Length
	Off     scroll.Length
	Curve   scroll.Curve
}

// Result 一个通道对一次采样的输出
type Result struct {
	Name    string
	Binding Binding
	Output  scroll.Output
}

// Options 控制器构造参数
type Options struct {
	// Driver 渲染驱动，为 nil 时使用 NoopDriver
	Driver AnimationDriver
	// ViewportHeight 初始视口高度（px，>0）
	ViewportHeight float64
	// ThrottleWait HandleScroll 的节流间隔，0 使用 DefaultThrottleWait，负数表示不节流
	ThrottleWait time.Duration
	// Clock 节流使用的时间源，为 nil 时使用 throttle.SystemClock
	Clock throttle.Clock
}

type channelEntry struct {
	def    Channel
	config scroll.ChannelConfig
	state  scroll.ChannelState
}

// ScrollAnimationController 滚动动画控制器
type ScrollAnimationController struct {
	mu             sync.Mutex
	driver         AnimationDriver
	channels       []*channelEntry
	byName         map[string]*channelEntry
	viewportHeight float64
	lastResults    []Result
	processed      int
	closed         bool

	throttler *throttle.Throttler[scrollEvent]
}

// scrollEvent 待节流的滚动事件
// 视口高度在真正处理时才读取，避免延迟的 trailing 调用带回过期视口
type scrollEvent struct {
	offset      float64
	timestampMs int64
}

// New 创建控制器
func New(opts Options) (*ScrollAnimationController, error) {
	if _, err := scroll.NewSample(0, opts.ViewportHeight, 0); err != nil {
		return nil, fmt.Errorf("invalid initial viewport: %w", err)
	}
	driver := opts.Driver
	if driver == nil {
		driver = NoopDriver{}
	}
	wait := opts.ThrottleWait
	if wait == 0 {
		wait = DefaultThrottleWait
	} else if wait < 0 {
		wait = 0
	}

	c := &ScrollAnimationController{
		driver:         driver,
		byName:         make(map[string]*channelEntry),
		viewportHeight: opts.ViewportHeight,
	}
	c.throttler = throttle.New(c.processThrottled, wait, opts.Clock)
	return c, nil
}

// AddChannel 注册通道
// 阈值按当前视口解析后校验，off > on 返回 scroll.ErrInvalidConfig
func (c *ScrollAnimationController) AddChannel(ch Channel) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if ch.Name == "" {
		return fmt.Errorf("%w: channel name is empty", scroll.ErrInvalidConfig)
	}
	if _, exists := c.byName[ch.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateChannel, ch.Name)
	}
	if !ValidProperty(ch.Binding.Property) {
		return fmt.Errorf("%w: channel %s has unknown property %q", scroll.ErrInvalidConfig, ch.Name, ch.Binding.Property)
	}
	if ch.Curve == nil {
		ch.Curve = scroll.Linear
	}

	config, err := resolveChannel(ch, c.viewportHeight)
	if err != nil {
		return err
	}

	entry := &channelEntry{def: ch, config: config}
	// 初始输出为 curve(0)
	entry.state.LastValue = config.Curve(0)
	c.channels = append(c.channels, entry)
	c.byName[ch.Name] = entry

	log.Printf("[ScrollController] Channel %s added: %s.%s on=%s off=%s",
		ch.Name, ch.Binding.Target, ch.Binding.Property, ch.On, ch.Off)
	return nil
}

// Process 用一次采样更新所有通道并应用到驱动
//
// 所有通道先针对同一采样完成映射，再统一应用。
// 采样的视口高度与当前不同时先重新解析 vh 阈值（不重置锁存）。
// 无效采样返回 scroll.ErrInvalidSample 并被忽略。
func (c *ScrollAnimationController) Process(sample scroll.Sample) ([]Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if err := sample.Validate(); err != nil {
		return nil, err
	}
	if sample.ViewportHeight != c.viewportHeight {
		if err := c.resizeLocked(sample.ViewportHeight); err != nil {
			return nil, err
		}
	}

	results := make([]Result, 0, len(c.channels))
	for _, entry := range c.channels {
		out, err := scroll.MapSample(sample, entry.config, &entry.state)
		if err != nil {
			return nil, fmt.Errorf("channel %s: %w", entry.def.Name, err)
		}
		results = append(results, Result{Name: entry.def.Name, Binding: entry.def.Binding, Output: out})
	}

	for _, r := range results {
		c.driver.Apply(r.Binding, r.Output)
	}

	c.lastResults = results
	c.processed++
	return results, nil
}

// HandleScroll 节流入口：按节流间隔交给 Process
// 采样在执行时用当时的视口高度构造，节流期间的 Resize 不会被覆盖。
// 控制器销毁后调用被忽略
func (c *ScrollAnimationController) HandleScroll(offset float64, timestampMs int64) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return
	}
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		log.Printf("[ScrollController] Ignoring sample: %v: offset %v", scroll.ErrInvalidSample, offset)
		return
	}
	c.throttler.Call(scrollEvent{offset: offset, timestampMs: timestampMs})
}

func (c *ScrollAnimationController) processThrottled(ev scrollEvent) {
	c.mu.Lock()
	vh := c.viewportHeight
	c.mu.Unlock()

	sample, err := scroll.NewSample(ev.offset, vh, ev.timestampMs)
	if err != nil {
		log.Printf("[ScrollController] Ignoring sample: %v", err)
		return
	}
	if _, err := c.Process(sample); err != nil && !errors.Is(err, ErrClosed) {
		log.Printf("[ScrollController] Failed to process sample at offset %.1f: %v", sample.Offset, err)
	}
}

// Resize 更新视口高度并重新解析 vh 阈值
// 锁存状态与视口无关，不会被重置；解析失败时保持原配置
func (c *ScrollAnimationController) Resize(viewportHeight float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if _, err := scroll.NewSample(0, viewportHeight, 0); err != nil {
		return err
	}
	return c.resizeLocked(viewportHeight)
}

// SetThresholds 替换通道阈值并按当前视口重新解析
// 锁存状态和最近输出保留，新阈值在下一次采样生效；校验失败时保持原阈值
func (c *ScrollAnimationController) SetThresholds(name string, on, off scroll.Length) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	entry, ok := c.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownChannel, name)
	}
	def := entry.def
	def.On, def.Off = on, off
	config, err := resolveChannel(def, c.viewportHeight)
	if err != nil {
		return err
	}
	entry.def = def
	entry.config = config
	log.Printf("[ScrollController] Channel %s thresholds: on=%s off=%s", name, on, off)
	return nil
}

func (c *ScrollAnimationController) resizeLocked(viewportHeight float64) error {
	configs := make([]scroll.ChannelConfig, len(c.channels))
	for i, entry := range c.channels {
		config, err := resolveChannel(entry.def, viewportHeight)
		if err != nil {
			return err
		}
		configs[i] = config
	}
	for i, entry := range c.channels {
		entry.config = configs[i]
	}
	if c.viewportHeight != viewportHeight {
		log.Printf("[ScrollController] Viewport resized: %.0f -> %.0f", c.viewportHeight, viewportHeight)
	}
	c.viewportHeight = viewportHeight
	return nil
}

// ViewportHeight 当前视口高度
func (c *ScrollAnimationController) ViewportHeight() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewportHeight
}

// State 返回通道状态副本
func (c *ScrollAnimationController) State(name string) (scroll.ChannelState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.byName[name]
	if !ok {
		return scroll.ChannelState{}, false
	}
	return entry.state, true
}

// Config 返回通道按当前视口解析后的配置
func (c *ScrollAnimationController) Config(name string) (scroll.ChannelConfig, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.byName[name]
	if !ok {
		return scroll.ChannelConfig{}, fmt.Errorf("%w: %s", ErrUnknownChannel, name)
	}
	return entry.config, nil
}

// Outputs 最近一次 Process 的结果
func (c *ScrollAnimationController) Outputs() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Result, len(c.lastResults))
	copy(out, c.lastResults)
	return out
}

// Channels 按注册顺序返回通道名
func (c *ScrollAnimationController) Channels() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, len(c.channels))
	for i, entry := range c.channels {
		names[i] = entry.def.Name
	}
	return names
}

// Processed 已处理的采样数
func (c *ScrollAnimationController) Processed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.processed
}

// Teardown 销毁控制器：取消待发采样，丢弃所有通道状态
// 可重复调用
func (c *ScrollAnimationController) Teardown() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.channels = nil
	c.byName = make(map[string]*channelEntry)
	c.lastResults = nil
	processed := c.processed
	c.mu.Unlock()

	// closed 已置位，之后的 HandleScroll 不会再安排 trailing 调用
	c.throttler.Cancel()
	log.Printf("[ScrollController] Torn down after %d samples", processed)
}

// Closed 是否已销毁
func (c *ScrollAnimationController) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func resolveChannel(ch Channel, viewportHeight float64) (scroll.ChannelConfig, error) {
	on, err := ch.On.Resolve(viewportHeight)
	if err != nil {
		return scroll.ChannelConfig{}, fmt.Errorf("channel %s: %w", ch.Name, err)
	}
	off, err := ch.Off.Resolve(viewportHeight)
	if err != nil {
		return scroll.ChannelConfig{}, fmt.Errorf("channel %s: %w", ch.Name, err)
	}
	config, err := scroll.NewChannelConfig(on, off, ch.Curve)
	if err != nil {
		return scroll.ChannelConfig{}, fmt.Errorf("channel %s: %w", ch.Name, err)
	}
	return config, nil
}
