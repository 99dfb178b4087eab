package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gonewx/scrollfx/pkg/config"
	"github.com/gonewx/scrollfx/pkg/controller"
	"github.com/gonewx/scrollfx/pkg/scroll"
	"github.com/gonewx/scrollfx/pkg/throttle"
	"gopkg.in/yaml.v3"
)

// 单次扫描最多生成的采样数
const maxSweepSamples = 10000

type traceOptions struct {
	ConfigPath string
	Width      int
	Height     int
	Offsets    []float64
	Channel    string
	IntervalMs int
	Throttle   bool
	Format     string
}

// traceReport 一次回放的完整结果
type traceReport struct {
	Device   string     `yaml:"device"`
	Viewport string     `yaml:"viewport"`
	Channels []string   `yaml:"channels"`
	Rows     []traceRow `yaml:"rows"`
}

// traceRow 一次采样后各通道的输出
// Processed 为 false 表示该采样被节流吞掉，输出沿用上一次
type traceRow struct {
	TimeMs    int64          `yaml:"time_ms"`
	Offset    float64        `yaml:"offset"`
	Processed bool           `yaml:"processed"`
	Flush     bool           `yaml:"flush,omitempty"`
	Values    []channelValue `yaml:"values"`
}

type channelValue struct {
	Name    string  `yaml:"name"`
	Value   float64 `yaml:"value"`
	Latched bool    `yaml:"latched"`
}

func runTrace(w io.Writer, opts traceOptions) error {
	report, err := buildTrace(opts)
	if err != nil {
		return err
	}
	if opts.Format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(report)
	}
	return writeTable(w, report)
}

func buildTrace(opts traceOptions) (*traceReport, error) {
	cfg, err := config.LoadScrollConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	device := cfg.Breakpoints.Classify(float64(opts.Width))
	channels, err := cfg.ControllerChannels(device)
	if err != nil {
		return nil, err
	}

	clock := throttle.NewManualClock(time.Unix(0, 0))
	wait := time.Duration(-1)
	if opts.Throttle {
		wait = cfg.ThrottleWait()
	}
	ctrl, err := controller.New(controller.Options{
		Driver:         &controller.RecordingDriver{},
		ViewportHeight: float64(opts.Height),
		ThrottleWait:   wait,
		Clock:          clock,
	})
	if err != nil {
		return nil, err
	}
	defer ctrl.Teardown()

	var names []string
	for _, ch := range channels {
		if opts.Channel != "" && !strings.Contains(ch.Name, opts.Channel) {
			continue
		}
		if err := ctrl.AddChannel(ch); err != nil {
			return nil, err
		}
		names = append(names, ch.Name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no channel matches %q", opts.Channel)
	}

	report := &traceReport{
		Device:   device.String(),
		Viewport: fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		Channels: names,
	}
	interval := time.Duration(opts.IntervalMs) * time.Millisecond
	var ts int64
	for i, offset := range opts.Offsets {
		if i > 0 {
			clock.Advance(interval)
			ts += int64(opts.IntervalMs)
		}
		before := ctrl.Processed()
		if opts.Throttle {
			ctrl.HandleScroll(offset, ts)
		} else {
			sample, err := scroll.NewSample(offset, float64(opts.Height), ts)
			if err != nil {
				return nil, fmt.Errorf("sample #%d: %w", i, err)
			}
			if _, err := ctrl.Process(sample); err != nil {
				return nil, err
			}
		}
		report.Rows = append(report.Rows, newRow(ctrl, ts, offset, ctrl.Processed() > before))
	}

	// 节流尾调用在等待期满后才会执行
	if opts.Throttle && clock.Pending() > 0 {
		before := ctrl.Processed()
		clock.Advance(cfg.ThrottleWait())
		ts += cfg.ThrottleWait().Milliseconds()
		if ctrl.Processed() > before {
			row := newRow(ctrl, ts, opts.Offsets[len(opts.Offsets)-1], true)
			row.Flush = true
			report.Rows = append(report.Rows, row)
		}
	}
	return report, nil
}

func newRow(ctrl *controller.ScrollAnimationController, ts int64, offset float64, processed bool) traceRow {
	row := traceRow{TimeMs: ts, Offset: offset, Processed: processed}
	for _, res := range ctrl.Outputs() {
		row.Values = append(row.Values, channelValue{
			Name:    res.Name,
			Value:   round(res.Output.Value),
			Latched: res.Output.Latched,
		})
	}
	return row
}

func writeTable(w io.Writer, report *traceReport) error {
	fmt.Fprintf(w, "device=%s viewport=%s\n", report.Device, report.Viewport)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"t(ms)", "offset", "proc"}
	header = append(header, report.Channels...)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range report.Rows {
		proc := "-"
		switch {
		case row.Flush:
			proc = "flush"
		case row.Processed:
			proc = "yes"
		}
		cells := []string{strconv.FormatInt(row.TimeMs, 10), strconv.FormatFloat(row.Offset, 'f', -1, 64), proc}
		for _, v := range row.Values {
			cell := strconv.FormatFloat(v.Value, 'f', 3, 64)
			if v.Latched {
				cell += "*"
			}
			cells = append(cells, cell)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func round(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func parseViewport(s string) (int, int, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("viewport must look like 1280x720, got %q", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("viewport width: %w", err)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("viewport height: %w", err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("viewport must be positive, got %dx%d", w, h)
	}
	return w, h, nil
}

func parseOffsets(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var offsets []float64
	for _, field := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("offset %q: %w", field, err)
		}
		offsets = append(offsets, v)
	}
	return offsets, nil
}

func sweep(from, to, step float64) ([]float64, error) {
	if step <= 0 {
		return nil, errors.New("step must be > 0")
	}
	if math.Abs(to-from)/step > maxSweepSamples {
		return nil, fmt.Errorf("sweep would produce more than %d samples", maxSweepSamples)
	}
	if to < from {
		step = -step
	}
	var offsets []float64
	for i := 0; ; i++ {
		v := from + float64(i)*step
		if (step > 0 && v > to) || (step < 0 && v < to) {
			break
		}
		offsets = append(offsets, v)
	}
	return offsets, nil
}
