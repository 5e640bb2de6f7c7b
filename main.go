package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	theme := flag.String("theme", "", "start with this theme (classic, dark, retro, neon)")
	configFile := flag.String("config", "", "path to the config file")
	seed := flag.Int64("seed", 0, "seed for the puzzle piece generator (0 uses the clock)")
	skipBoot := flag.Bool("skip-boot", false, "start at the home menu")
	flag.Parse()
	EnableDebugLogging(*debug)
	loadEmbeddedEnv()
	DebugLogf("heytmlboy start debug=%v", *debug)

	config, err := loadConfig(*configFile)
	if err != nil {
		DebugLogf("config load error: %v", err)
	}
	if *theme != "" {
		if themeIndexByName(*theme) < 0 {
			fmt.Fprintf(os.Stderr, "unknown theme %q\n", *theme)
			os.Exit(2)
		}
		config.Theme = *theme
	}

	ctx, err := initAudioContext()
	if err != nil {
		DebugLogf("audio context init error: %v", err)
	}
	sound := NewSoundEngine(ctx, config.Sound)
	sound.SetVolume(volumeFromPercent(config.Volume))
	music := NewMusicPlayer(ctx, volumeFromPercent(config.Volume))

	model := NewModel(Options{
		Config:   config,
		Seed:     *seed,
		SkipBoot: *skipBoot,
		Sound:    sound,
		Music:    music,
	})
	program := tea.NewProgram(&model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		DebugLogf("program error: %v", err)
		os.Exit(1)
	}
}
