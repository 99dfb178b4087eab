package responsive

import "testing"

func TestClassify(t *testing.T) {
	b := DefaultBreakpoints()
	tests := []struct {
		name  string
		width float64
		want  DeviceClass
	}{
		{"手机", 375, DeviceMobile},
		{"移动端边界", 768, DeviceMobile},
		{"桌面", 769, DeviceDesktop},
		{"1080p", 1920, DeviceDesktop},
		{"超宽屏边界", 2560, DeviceUltrawide},
		{"超宽屏", 3440, DeviceUltrawide},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Classify(tt.width); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.width, got, tt.want)
			}
		})
	}
}

func TestParticleCount(t *testing.T) {
	b := DefaultBreakpoints()
	tests := []struct {
		width float64
		want  int
	}{
		{375, 30},
		{767, 30},
		{768, 50},
		{1919, 50},
		{1920, 80},
		{3840, 80},
	}

	for _, tt := range tests {
		if got := b.ParticleCount(tt.width); got != tt.want {
			t.Errorf("ParticleCount(%v) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestHeroScrollThreshold(t *testing.T) {
	if got := HeroScrollThreshold(DeviceMobile); got != 50 {
		t.Errorf("mobile threshold = %v, want 50", got)
	}
	if got := HeroScrollThreshold(DeviceDesktop); got != 100 {
		t.Errorf("desktop threshold = %v, want 100", got)
	}
	if ParallaxEnabled(DeviceMobile) || !ParallaxEnabled(DeviceUltrawide) {
		t.Error("parallax should be disabled only on mobile")
	}
}

func TestMotionFor(t *testing.T) {
	reduced := MotionFor(true)
	full := MotionFor(false)
	if reduced.ParticleSpeed >= full.ParticleSpeed {
		t.Errorf("reduced motion speed %v should be below %v", reduced.ParticleSpeed, full.ParticleSpeed)
	}
	if reduced.Snap {
		t.Error("snapping should be disabled under reduced motion")
	}
}

func TestDeviceClassString(t *testing.T) {
	if DeviceUltrawide.String() != "ultrawide" {
		t.Errorf("String() = %q", DeviceUltrawide.String())
	}
	if DeviceClass(9).String() != "DeviceClass(9)" {
		t.Errorf("String() = %q", DeviceClass(9).String())
	}
}
