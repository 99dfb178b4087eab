package particles

import (
	"image/color"
	"math"
	"testing"
)

func newTestField(t *testing.T, count int) *Field {
	t.Helper()
	f, err := NewField(DefaultConfig(), 800, 600, count, 42)
	if err != nil {
		t.Fatalf("NewField() error: %v", err)
	}
	return f
}

func TestNewField_Bounds(t *testing.T) {
	f := newTestField(t, 50)
	if f.Len() != 50 {
		t.Fatalf("Len() = %d, want 50", f.Len())
	}
	cfg := DefaultConfig()
	for i, p := range f.Particles() {
		if p.X < 0 || p.X >= 800 || p.Y < 0 || p.Y >= 600 {
			t.Errorf("particle %d out of bounds: (%v,%v)", i, p.X, p.Y)
		}
		if p.Radius < cfg.MinSize || p.Radius > cfg.Size {
			t.Errorf("particle %d radius %v outside [%v,%v]", i, p.Radius, cfg.MinSize, cfg.Size)
		}
		if p.Alpha < 0.2 || p.Alpha > cfg.Opacity {
			t.Errorf("particle %d alpha %v outside [0.2,%v]", i, p.Alpha, cfg.Opacity)
		}
	}
}

func TestField_UpdateWraps(t *testing.T) {
	f := newTestField(t, 30)
	for i := 0; i < 5000; i++ {
		f.Update()
	}
	for i, p := range f.Particles() {
		if p.X < 0 || p.X >= 800 || p.Y < 0 || p.Y >= 600 {
			t.Errorf("particle %d escaped after updates: (%v,%v)", i, p.X, p.Y)
		}
	}
}

func TestField_SetCount(t *testing.T) {
	f := newTestField(t, 30)
	first := f.Particles()[0]

	f.SetCount(80)
	if f.Len() != 80 {
		t.Fatalf("Len() = %d, want 80", f.Len())
	}
	if f.Particles()[0] != first {
		t.Error("existing particles should be kept when growing")
	}

	f.SetCount(30)
	if f.Len() != 30 {
		t.Errorf("Len() = %d, want 30", f.Len())
	}
	f.SetCount(-1)
	if f.Len() != 0 {
		t.Errorf("negative count should clear the field, got %d", f.Len())
	}
}

func TestField_SetSpeed(t *testing.T) {
	f := newTestField(t, 10)
	before := f.Particles()[0]
	f.SetSpeed(0.1)
	after := f.Particles()[0]

	ratio := math.Hypot(after.VX, after.VY) / math.Hypot(before.VX, before.VY)
	if math.Abs(ratio-0.2) > 1e-9 {
		t.Errorf("speed ratio = %v, want 0.2", ratio)
	}
	if math.Abs(math.Atan2(after.VY, after.VX)-math.Atan2(before.VY, before.VX)) > 1e-9 {
		t.Error("direction should be kept when changing speed")
	}
}

func TestField_Links(t *testing.T) {
	f := newTestField(t, 0)
	f.particles = []Particle{
		{X: 0, Y: 0},
		{X: 75, Y: 0},  // 距离 75：alpha = 0.4 * 0.5
		{X: 500, Y: 0}, // 太远
	}

	links := f.Links()
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	if links[0].A != 0 || links[0].B != 1 {
		t.Errorf("unexpected link pair: %+v", links[0])
	}
	if math.Abs(links[0].Alpha-0.2) > 1e-9 {
		t.Errorf("link alpha = %v, want 0.2", links[0].Alpha)
	}
}

func TestField_Resize(t *testing.T) {
	f := newTestField(t, 0)
	f.particles = []Particle{{X: 700, Y: 550}}
	f.Resize(400, 300)
	p := f.Particles()[0]
	if p.X != 300 || p.Y != 250 {
		t.Errorf("particle not wrapped into new bounds: (%v,%v)", p.X, p.Y)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#007AFF", color.RGBA{R: 0x00, G: 0x7A, B: 0xFF, A: 0xFF}, false},
		{"FF9500", color.RGBA{R: 0xFF, G: 0x95, B: 0x00, A: 0xFF}, false},
		{"#fff", color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, false},
		{"#12345", color.RGBA{}, true},
		{"#GGGGGG", color.RGBA{}, true},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseHexColor(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestNewField_InvalidColor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Colors = []string{"blue"}
	if _, err := NewField(cfg, 100, 100, 1, 1); err == nil {
		t.Error("expected error for invalid color")
	}
}
