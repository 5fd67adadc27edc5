package ui

import "testing"

func TestViewport(t *testing.T) {
	tests := []struct {
		name              string
		mapW, mapH        int
		viewW, viewH      int
		focusX, focusY    int
		wantLeft, wantTop int
	}{
		{"centred", 100, 100, 20, 10, 50, 50, 40, 54},
		{"clamped bottom left", 100, 100, 20, 10, 2, 1, 0, 9},
		{"clamped top right", 100, 100, 20, 10, 99, 99, 80, 99},
		{"map smaller than view", 10, 5, 80, 24, 3, 2, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, top := Viewport(tt.mapW, tt.mapH, tt.viewW, tt.viewH, tt.focusX, tt.focusY)
			if left != tt.wantLeft || top != tt.wantTop {
				t.Errorf("Viewport() = (%d, %d), want (%d, %d)", left, top, tt.wantLeft, tt.wantTop)
			}
		})
	}
}
