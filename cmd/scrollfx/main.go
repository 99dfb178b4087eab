// Package main provides a headless tool that replays a scroll trace through the
// scroll animation controller and prints every channel's output.
//
// Usage:
//
//	go run ./cmd/scrollfx [flags]
//
// Flags:
//
//	--config <path>       Scroll config (default: data/scroll_config.yaml)
//	--viewport <WxH>      Viewport size, e.g. 1280x720
//	--offsets <list>      Comma separated offsets, e.g. 0,50,100,150,90,30
//	--from/--to/--step    Sweep offsets when --offsets is empty
//	--channel <name>      Only print channels whose name contains the keyword
//	--interval <ms>       Time between samples; with --throttle samples go through HandleScroll
//	--throttle            Feed samples through the throttled entry point
//	--format table|yaml   Output format
//	--verbose             Enable verbose logging
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

var (
	configFlag   = flag.String("config", "data/scroll_config.yaml", "Scroll config path")
	viewportFlag = flag.String("viewport", "1280x720", "Viewport size WxH")
	offsetsFlag  = flag.String("offsets", "", "Comma separated scroll offsets (px)")
	fromFlag     = flag.Float64("from", 0, "Sweep start offset (px)")
	toFlag       = flag.Float64("to", 1000, "Sweep end offset (px)")
	stepFlag     = flag.Float64("step", 50, "Sweep step (px)")
	channelFlag  = flag.String("channel", "", "Only show channels containing this keyword")
	intervalFlag = flag.Int("interval", 16, "Milliseconds between samples")
	throttleFlag = flag.Bool("throttle", false, "Feed samples through the throttled HandleScroll")
	formatFlag   = flag.String("format", "table", "Output format: table or yaml")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	opts, err := parseOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "参数错误: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	if err := runTrace(os.Stdout, opts); err != nil {
		fmt.Fprintf(os.Stderr, "回放失败: %v\n", err)
		os.Exit(1)
	}
}

func parseOptions() (traceOptions, error) {
	width, height, err := parseViewport(*viewportFlag)
	if err != nil {
		return traceOptions{}, err
	}
	offsets, err := parseOffsets(*offsetsFlag)
	if err != nil {
		return traceOptions{}, err
	}
	if len(offsets) == 0 {
		offsets, err = sweep(*fromFlag, *toFlag, *stepFlag)
		if err != nil {
			return traceOptions{}, err
		}
	}
	if *formatFlag != "table" && *formatFlag != "yaml" {
		return traceOptions{}, fmt.Errorf("unknown format %q", *formatFlag)
	}
	return traceOptions{
		ConfigPath: *configFlag,
		Width:      width,
		Height:     height,
		Offsets:    offsets,
		Channel:    *channelFlag,
		IntervalMs: *intervalFlag,
		Throttle:   *throttleFlag,
		Format:     *formatFlag,
	}, nil
}
