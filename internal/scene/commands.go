package scene

import (
	"flag"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"slingshot/internal/commands"
)

// RegisterCommands adds the scene's terminal commands to reg:
//
//	cmd step -n 60
//	cmd launch -dx -60 -dy 20
//	cmd reload
//	cmd select -i 2
//	cmd reset
//	cmd gravity -value -918
//	cmd friction -value 0.96
//	cmd score
//	cmd halfplanes -show | -hide
func (s *Scene) RegisterCommands(reg *commands.Registry) {
	stepFS := flag.NewFlagSet("step", flag.ContinueOnError)
	n := stepFS.Int("n", 1, "number of fixed ticks")
	reg.Register("step", "advance the simulation by n fixed ticks", stepFS, func() error {
		if *n < 1 {
			return fmt.Errorf("step: n must be positive, got %d", *n)
		}
		for i := 0; i < *n; i++ {
			if err := s.Update(); err != nil {
				return err
			}
		}
		return nil
	})

	launchFS := flag.NewFlagSet("launch", flag.ContinueOnError)
	dx := launchFS.Float64("dx", -60, "pull offset x from the slingshot")
	dy := launchFS.Float64("dy", 20, "pull offset y from the slingshot")
	reg.Register("launch", "pull the projectile by (dx, dy) and release", launchFS, func() error {
		return s.Launch(rl.NewVector2(float32(*dx), float32(*dy)))
	})

	reg.Register("reload", "put the projectile back on the slingshot", flag.NewFlagSet("reload", flag.ContinueOnError), func() error {
		s.Reload()
		return nil
	})

	selectFS := flag.NewFlagSet("select", flag.ContinueOnError)
	idx := selectFS.Int("i", 1, "projectile number, starting at 1")
	reg.Register("select", "choose the projectile", selectFS, func() error {
		return s.SelectProjectile(*idx - 1)
	})

	reg.Register("reset", "restore the level and zero the score", flag.NewFlagSet("reset", flag.ContinueOnError), s.Reset)

	gravityFS := flag.NewFlagSet("gravity", flag.ContinueOnError)
	g := gravityFS.Float64("value", -918, "gravity constant")
	reg.Register("gravity", "set the gravity constant", gravityFS, func() error {
		s.SetGravity(float32(*g))
		s.log.Logf("gravity set to %g", *g)
		return nil
	})

	frictionFS := flag.NewFlagSet("friction", flag.ContinueOnError)
	f := frictionFS.Float64("value", 0.96, "velocity retained per tick, in (0, 1]")
	reg.Register("friction", "set the air friction factor", frictionFS, func() error {
		if err := s.SetAirFriction(float32(*f)); err != nil {
			return err
		}
		s.log.Logf("air friction set to %g", *f)
		return nil
	})

	reg.Register("score", "log the current score", flag.NewFlagSet("score", flag.ContinueOnError), func() error {
		s.log.Logf("score: %d", s.score)
		return nil
	})

	planesFS := flag.NewFlagSet("halfplanes", flag.ContinueOnError)
	show := planesFS.Bool("show", false, "draw half-planes")
	hide := planesFS.Bool("hide", false, "hide half-planes")
	reg.Register("halfplanes", "show or hide the half-plane boundaries", planesFS, func() error {
		switch {
		case *show && *hide:
			return fmt.Errorf("halfplanes: use either -show or -hide")
		case *show:
			s.SetHalfPlanesVisible(true)
		case *hide:
			s.SetHalfPlanesVisible(false)
		default:
			s.SetHalfPlanesVisible(!s.ShowPlanes)
		}
		return nil
	})
}
