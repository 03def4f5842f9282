package main

import (
	"flag"
	"fmt"
	"os"

	"blackhole/internal/config"
	"blackhole/internal/gpu/rlgpu"
	"blackhole/internal/utils"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file (default: search ./, $XDG_CONFIG_HOME/blackhole, /etc/blackhole)")
	width := flag.Int("width", 0, "Window width (overrides config)")
	height := flag.Int("height", 0, "Window height (overrides config)")
	fullscreen := flag.Bool("fullscreen", false, "Fullscreen at the X11 screen size")
	remote := flag.Bool("remote", false, "Enable the websocket remote control")
	seed := flag.Int64("seed", 0, "Population seed (overrides config)")
	logLevel := flag.String("log-level", "warn", "Log level: debug, info, warn, error")
	raylibInfo := flag.Bool("raylib-info", false, "Forward raylib info messages")
	printConfig := flag.Bool("print-config", false, "Print the effective config as TOML and exit")
	flag.Parse()

	level, err := utils.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	utils.CurrentLevel = level
	utils.ShowRaylibInfo = *raylibInfo

	path := utils.ResolveConfigPath(*configPath)
	cfg, err := config.Load(path)
	if err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}
	if path != "" {
		utils.Info("Config: loaded %s", path)
	}

	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if *fullscreen {
		cfg.Window.Fullscreen = true
	}
	if *remote {
		cfg.Remote.Enabled = true
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}
	if cfg.Window.Fullscreen {
		fitScreen(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}
	if *printConfig {
		if err := cfg.Encode(os.Stdout); err != nil {
			utils.Error("%v", err)
			os.Exit(1)
		}
		return
	}

	dev, err := rlgpu.Open(rlgpu.WindowConfig{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Title:      cfg.Window.Title,
		TargetFPS:  cfg.Window.TargetFPS,
		Fullscreen: cfg.Window.Fullscreen,
	})
	if err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}

	window := NewWindow(dev, cfg)
	window.Run()
	if err := window.Close(); err != nil {
		utils.Error("Shutdown: %v", err)
		os.Exit(1)
	}
}

// fitScreen sizes the window to the X11 root window when available.
func fitScreen(cfg *config.Config) {
	if err := utils.InitX11(); err != nil {
		utils.Warn("X11: %v; keeping %dx%d", err, cfg.Window.Width, cfg.Window.Height)
		return
	}
	defer utils.CloseX11()

	w, h, err := utils.ScreenSize()
	if err != nil {
		utils.Warn("X11: %v", err)
		return
	}
	cfg.Window.Width, cfg.Window.Height = w, h
}
