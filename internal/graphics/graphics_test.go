package graphics

import (
	"errors"
	"testing"
)

func TestClockAdvance(t *testing.T) {
	tests := []struct {
		name   string
		frames []float32
		want   int
	}{
		{"exact ticks", []float32{0.5}, 4},
		{"carries remainder", []float32{0.1875, 0.0625}, 2},
		{"short frames accumulate", []float32{0.0625, 0.0625, 0.0625}, 1},
		{"long frame is capped", []float32{10}, maxTicksPerFrame},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClock(0.125)
			ticks := 0
			for _, f := range tt.frames {
				if _, err := c.Advance(f, func() error { ticks++; return nil }); err != nil {
					t.Fatalf("Advance: %v", err)
				}
			}
			if ticks != tt.want {
				t.Errorf("Expected %d ticks, got %d", tt.want, ticks)
			}
		})
	}
}

func TestClockStopsOnError(t *testing.T) {
	c := NewClock(0.125)
	boom := errors.New("boom")
	calls := 0
	n, err := c.Advance(1, func() error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) || n != 2 || calls != 2 {
		t.Errorf("Expected stop after 2 ticks with boom, got n=%d calls=%d err=%v", n, calls, err)
	}
}
