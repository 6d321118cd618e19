package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"slingshot/internal/commands"
	"slingshot/internal/debug"
	"slingshot/internal/engineconfig"
	"slingshot/internal/env"
	"slingshot/internal/fonts"
	"slingshot/internal/graphics"
	"slingshot/internal/input"
	"slingshot/internal/level"
	"slingshot/internal/logger"
	"slingshot/internal/render"
	"slingshot/internal/scene"
	"slingshot/internal/terminal"
)

const (
	windowTitle  = "Slingshot"
	windowWidth  = 1024
	windowHeight = 600
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "slingshot:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if err := env.Load(".env"); err != nil {
		return err
	}

	fs := flag.NewFlagSet("slingshot", flag.ContinueOnError)
	headless := fs.Bool("headless", false, "run without a window")
	script := fs.String("script", "", "file of commands to run (headless)")
	steps := fs.Int("steps", 0, "fixed ticks to run after the script (headless)")
	levelPath := fs.String("level", env.Get(env.LevelKey, ""), "level YAML file (default: built-in level)")
	configPath := fs.String("config", env.Get(env.ConfigKey, engineconfig.EngineConfigPath), "preferences JSON file")
	logPath := fs.String("log", env.Get(env.LogKey, logger.LogFilePath), "log file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	prefs, err := engineconfig.LoadFrom(*configPath)
	if err != nil {
		return err
	}
	if *levelPath == "" {
		*levelPath = prefs.LevelPath
	}
	lvl := level.Default()
	if *levelPath != "" {
		if lvl, err = level.Load(*levelPath); err != nil {
			return err
		}
	}

	log := logger.NewAt(*logPath)
	scn, err := scene.New(lvl, prefs, log)
	if err != nil {
		return err
	}
	reg := commands.NewRegistry()
	scn.RegisterCommands(reg)
	reg.Register("save", "write the current tunables to the preferences file", flag.NewFlagSet("save", flag.ContinueOnError), func() error {
		if err := engineconfig.SaveTo(*configPath, scn.Prefs()); err != nil {
			return err
		}
		log.Logf("preferences saved to %s", *configPath)
		return nil
	})

	if *headless {
		return runHeadless(scn, reg, *script, *steps)
	}
	return runWindow(scn, reg, log, prefs)
}

func runHeadless(scn *scene.Scene, reg *commands.Registry, script string, steps int) error {
	reg.SetOutput(os.Stderr)
	if script != "" {
		f, err := os.Open(script)
		if err != nil {
			return err
		}
		err = reg.RunScript(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", script, err)
		}
	}
	for i := 0; i < steps; i++ {
		if err := scn.Update(); err != nil {
			return err
		}
	}
	fmt.Printf("score: %d\n", scn.Score())
	return nil
}

func runWindow(scn *scene.Scene, reg *commands.Registry, log *logger.Logger, prefs engineconfig.Prefs) error {
	term := terminal.New(log, reg)
	dbg := debug.New()
	dbg.SetShowFPS(prefs.ShowFPS)
	dbg.SetShowForces(prefs.ShowForces)
	view, err := render.New()
	if err != nil {
		return err
	}

	ctl := input.New(scn, log, input.Toggles{
		Inspector: func() { view.ShowInspector = !view.ShowInspector },
		Forces:    func() { dbg.SetShowForces(!dbg.ShowForces) },
		FPS:       func() { dbg.SetShowFPS(!dbg.ShowFPS) },
	})
	ctl.Disabled = term.IsOpen

	fontLoaded := false
	update := func() {
		if !fontLoaded {
			// Fonts need the GL context, which exists once the loop is running.
			fontLoaded = true
			if path, ok := fonts.Find(fonts.BaseDirs()...); ok {
				if font := rl.LoadFont(path); font.Texture.ID != 0 {
					term.SetFont(font)
					dbg.SetFont(font)
					view.SetFont(font)
				}
			}
		}
		term.Update()
		ctl.Update()
	}
	draw := func() {
		view.Draw(scn)
		proj := scn.Projectile()
		body, _ := scn.Body(proj)
		dbg.Draw(scn.Engine(), proj.Name, body)
		term.Draw()
	}
	return graphics.Run(windowTitle, windowWidth, windowHeight, prefs.FixedDelta, scn.Update, update, draw)
}
