package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// maxTicksPerFrame caps catch-up after a long frame (window drag, breakpoint); the rest of the
// lost time is dropped.
const maxTicksPerFrame = 8

// Clock turns variable frame times into a whole number of fixed ticks.
// Leftover time carries over to the next frame.
type Clock struct {
	Delta float32
	acc   float32
}

// NewClock returns a clock that ticks every delta seconds.
func NewClock(delta float32) *Clock {
	return &Clock{Delta: delta}
}

// Advance adds frame seconds and calls tick once per whole Delta accumulated, at most
// maxTicksPerFrame times. It returns the number of ticks run and stops at the first error.
func (c *Clock) Advance(frame float32, tick func() error) (int, error) {
	c.acc += frame
	n := 0
	for c.acc >= c.Delta {
		if n == maxTicksPerFrame {
			c.acc = 0
			break
		}
		c.acc -= c.Delta
		n++
		if err := tick(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// Run opens a width x height window and runs the main loop. Each frame it calls update (input,
// terminal), advances the fixed-step clock calling tick, then clears the screen and calls draw.
// ESC is left to the terminal; close via the window button. The first tick error ends the loop.
func Run(title string, width, height int32, fixedDelta float32, tick func() error, update, draw func()) error {
	rl.InitWindow(width, height, title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	clock := NewClock(fixedDelta)
	for !rl.WindowShouldClose() {
		update()
		if _, err := clock.Advance(rl.GetFrameTime(), tick); err != nil {
			return err
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)
		draw()
		rl.EndDrawing()
	}
	return nil
}
