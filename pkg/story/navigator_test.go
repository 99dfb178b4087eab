package story

import "testing"

func TestNavigator_NavigateTo(t *testing.T) {
	n := NewNavigator([]string{"home", "services", "about", "contact"})

	tests := []struct {
		name      string
		index     int
		wantIndex int
		wantMoved bool
	}{
		{"当前分区不跳转", 0, 0, false},
		{"跳转到 about", 2, 2, true},
		{"越界钳制到最后", 99, 3, true},
		{"重复跳转到最后", 5, 3, false},
		{"负数钳制到第一个", -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, moved := n.NavigateTo(tt.index)
			if got != tt.wantIndex || moved != tt.wantMoved {
				t.Errorf("NavigateTo(%d) = (%d,%v), want (%d,%v)", tt.index, got, moved, tt.wantIndex, tt.wantMoved)
			}
			if n.Current() != tt.wantIndex {
				t.Errorf("Current() = %d, want %d", n.Current(), tt.wantIndex)
			}
		})
	}
}

func TestNavigator_NextPrev(t *testing.T) {
	n := NewNavigator([]string{"home", "services"})

	if _, moved := n.Prev(); moved {
		t.Error("Prev() at first section should not move")
	}
	if idx, moved := n.Next(); !moved || idx != 1 {
		t.Errorf("Next() = (%d,%v), want (1,true)", idx, moved)
	}
	if _, moved := n.Next(); moved {
		t.Error("Next() at last section should not move")
	}
	if n.CurrentID() != "services" {
		t.Errorf("CurrentID() = %q, want services", n.CurrentID())
	}
}

func TestNavigator_IndexOf(t *testing.T) {
	n := NewNavigator([]string{"home", "services", "about", "contact"})

	if got := n.IndexOf("#contact"); got != 3 {
		t.Errorf("IndexOf(#contact) = %d, want 3", got)
	}
	if got := n.IndexOf("about"); got != 2 {
		t.Errorf("IndexOf(about) = %d, want 2", got)
	}
	if got := n.IndexOf("#missing"); got != -1 {
		t.Errorf("IndexOf(#missing) = %d, want -1", got)
	}

	n.Sync(2)
	if n.Current() != 2 {
		t.Errorf("Sync(2) -> Current() = %d", n.Current())
	}
	n.Sync(42)
	if n.Current() != 2 {
		t.Error("Sync with an invalid index should be ignored")
	}
}

func TestNavigator_Empty(t *testing.T) {
	n := NewNavigator(nil)
	if _, moved := n.NavigateTo(1); moved {
		t.Error("empty navigator should never move")
	}
	if n.CurrentID() != "" {
		t.Errorf("CurrentID() = %q, want empty", n.CurrentID())
	}
}
