package story

import (
	"errors"
	"math"
	"testing"
)

func newTestScroller(t *testing.T) *Scroller {
	t.Helper()
	// 4 个分节，固定区间 [1000, 4000]
	s, err := NewScroller(4, 1000, 3000)
	if err != nil {
		t.Fatalf("NewScroller() error: %v", err)
	}
	return s
}

func TestNewScroller_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		sections int
		start    float64
		length   float64
	}{
		{"无分节", 0, 0, 100},
		{"负长度", 3, 0, -1},
		{"NaN 起点", 3, math.NaN(), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewScroller(tt.sections, tt.start, tt.length); !errors.Is(err, ErrInvalidStory) {
				t.Errorf("expected ErrInvalidStory, got %v", err)
			}
		})
	}
}

func TestScroller_Progress(t *testing.T) {
	s := newTestScroller(t)
	tests := []struct {
		name       string
		offset     float64
		progress   float64
		index      int
		translateX float64
	}{
		{"区间之前", 0, 0, 0, 0},
		{"区间起点", 1000, 0, 0, 0},
		{"第二节", 2000, 1.0 / 3.0, 1, -100},
		{"接近第三节", 2400, 0.4666666, 1, -140},
		{"过半进入第三节", 2600, 0.5333333, 2, -160},
		{"区间终点", 4000, 1, 3, -300},
		{"区间之后", 9000, 1, 3, -300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Progress(tt.offset); math.Abs(got-tt.progress) > 1e-6 {
				t.Errorf("Progress(%v) = %v, want %v", tt.offset, got, tt.progress)
			}
			if got := s.ActiveIndex(tt.offset); got != tt.index {
				t.Errorf("ActiveIndex(%v) = %d, want %d", tt.offset, got, tt.index)
			}
			if got := s.TranslatePercent(tt.offset); math.Abs(got-tt.translateX) > 1e-4 {
				t.Errorf("TranslatePercent(%v) = %v, want %v", tt.offset, got, tt.translateX)
			}
		})
	}
}

func TestScroller_SectionOffset(t *testing.T) {
	s := newTestScroller(t)
	want := []float64{1000, 2000, 3000, 4000}
	for i, w := range want {
		if got := s.SectionOffset(i); math.Abs(got-w) > 1e-9 {
			t.Errorf("SectionOffset(%d) = %v, want %v", i, got, w)
		}
	}
	if got := s.SectionOffset(-3); got != 1000 {
		t.Errorf("negative index should clamp to first section, got %v", got)
	}
	if got := s.SectionOffset(10); got != 4000 {
		t.Errorf("overflow index should clamp to last section, got %v", got)
	}
}

func TestScroller_SnapOffset(t *testing.T) {
	s := newTestScroller(t)

	if got := s.SnapOffset(2400, true); got != 2000 {
		t.Errorf("SnapOffset(2400) = %v, want 2000", got)
	}
	if got := s.SnapOffset(2600, true); got != 3000 {
		t.Errorf("SnapOffset(2600) = %v, want 3000", got)
	}
	if got := s.SnapOffset(2400, false); got != 2400 {
		t.Errorf("snap disabled should keep offset, got %v", got)
	}
	if got := s.SnapOffset(500, true); got != 500 {
		t.Errorf("offset outside the pinned range should not snap, got %v", got)
	}
}

func TestScroller_SingleSection(t *testing.T) {
	s, err := NewScroller(1, 500, 0)
	if err != nil {
		t.Fatalf("NewScroller() error: %v", err)
	}
	if s.ActiveIndex(10000) != 0 || s.TranslatePercent(10000) != 0 {
		t.Error("single section never translates")
	}
	if s.Progress(499) != 0 || s.Progress(500) != 1 {
		t.Error("zero-length range should step at start")
	}
	if s.SectionOffset(3) != 500 {
		t.Errorf("SectionOffset = %v, want 500", s.SectionOffset(3))
	}
}

func TestScroller_SectionProgress(t *testing.T) {
	s := newTestScroller(t)

	// 区间起点：第 0 节完整占据视口（左边缘在 0），第 1 节刚从右侧进入
	if got := s.SectionProgress(0, 1000); got != 0.5 {
		t.Errorf("section 0 at start = %v, want 0.5", got)
	}
	if got := s.SectionProgress(1, 1000); got != 0 {
		t.Errorf("section 1 at start = %v, want 0", got)
	}
	// 滚到第 1 节：第 0 节刚离开左侧
	if got := s.SectionProgress(0, 2000); got != 1 {
		t.Errorf("section 0 after one section = %v, want 1", got)
	}
	if got := s.SectionProgress(1, 2000); got != 0.5 {
		t.Errorf("section 1 centred = %v, want 0.5", got)
	}
}

func TestParallax(t *testing.T) {
	tests := []struct {
		name     string
		speed    float64
		progress float64
		want     float64
	}{
		{"进入", 0.5, 0, -100},
		{"居中", 0.5, 0.5, 0},
		{"离开", 0.5, 1, 100},
		{"反向速度", -1, 1, -200},
		{"超出范围被钳制", 1, 2, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParallaxX(tt.speed, tt.progress); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParallaxX(%v,%v) = %v, want %v", tt.speed, tt.progress, got, tt.want)
			}
		})
	}

	if got := VideoParallax(300); got != 150 {
		t.Errorf("VideoParallax(300) = %v, want 150", got)
	}
	if got := VideoParallax(-50); got != 0 {
		t.Errorf("VideoParallax(-50) = %v, want 0", got)
	}
}
