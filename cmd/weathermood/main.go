package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/weathermood/audio"
	"github.com/lixenwraith/weathermood/config"
	"github.com/lixenwraith/weathermood/dashboard"
	"github.com/lixenwraith/weathermood/screen"
	"github.com/lixenwraith/weathermood/status"
	"github.com/lixenwraith/weathermood/store"
	"github.com/lixenwraith/weathermood/weather"
	"github.com/lixenwraith/weathermood/weather/owm"
)

var (
	configFlag  = flag.String("config", "", "Config file (default "+config.DefaultPath()+")")
	weatherFlag = flag.String("weather", "", "Initial weather: sunny, cloudy, rainy, stormy, snowy")
	fpsFlag     = flag.Int("fps", 0, "Frames per second, 1-240")
	debugFlag   = flag.Bool("debug", false, "Write a debug log to "+logDir+"/"+logFileName)
	noAudioFlag = flag.Bool("no-audio", false, "Disable the weather ambience")
	dumpFlag    = flag.Bool("print-config", false, "Print the effective configuration and exit")
)

// overrides are command-line values that win over file and environment
type overrides struct {
	weather string
	fps     int
	noAudio bool
	debug   bool
}

func applyOverrides(cfg *config.Config, o overrides) error {
	if o.weather != "" {
		cfg.Weather.Initial = o.weather
	}
	if o.fps != 0 {
		cfg.Display.FPS = o.fps
	}
	if o.noAudio {
		cfg.Audio.Enabled = false
	}
	if o.debug {
		cfg.Log.Debug = true
	}
	return cfg.Validate()
}

func main() {
	// Restore the terminal before printing if anything on the main goroutine panics
	defer func() {
		if r := recover(); r != nil {
			screen.HandleCrash(r)
		}
	}()

	flag.Parse()

	logFile := setupLogging(*debugFlag)
	cfg, err := config.Load(*configFlag)
	if err == nil {
		err = applyOverrides(&cfg, overrides{
			weather: *weatherFlag,
			fps:     *fpsFlag,
			noAudio: *noAudioFlag,
			debug:   *debugFlag,
		})
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "weathermood: %v\n", err)
		os.Exit(2)
	}
	if *dumpFlag {
		if err := config.Write(os.Stdout, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "weathermood: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if cfg.Log.Debug && logFile == nil {
		logFile = setupLogging(true)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := status.NewRegistry()

	var db *store.Store
	if cfg.Store.Enabled {
		if db, err = store.Open(ctx, cfg.Store.Path); err != nil {
			log.Printf("store disabled: %v", err)
			db = nil
		}
	}

	var live weather.Source
	if cfg.Weather.APIKey != "" {
		live = owm.New(cfg.OWM(), nil)
	} else {
		log.Printf("no OpenWeatherMap key, using demo weather")
	}

	ambience := audio.NewAmbience(cfg.AudioSettings(), reg)
	if err := ambience.Initialize(); err != nil {
		log.Printf("audio unavailable, continuing without sound: %v", err)
	}

	s, err := tcell.NewScreen()
	if err == nil {
		err = s.Init()
	}
	if err != nil {
		ambience.Close()
		if db != nil {
			db.Close()
		}
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	screen.RegisterCrashScreen(s)

	d, err := dashboard.New(cfg, s, dashboard.Deps{
		Live:     live,
		Store:    db,
		Ambience: ambience,
		Registry: reg,
	})
	if err != nil {
		screen.RegisterCrashScreen(nil)
		s.Fini()
		ambience.Close()
		if db != nil {
			db.Close()
		}
		fmt.Fprintf(os.Stderr, "weathermood: %v\n", err)
		os.Exit(1)
	}

	runErr := d.Run(ctx)
	d.Close()

	for _, m := range reg.Snapshot() {
		log.Printf("final %s", m)
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		fmt.Fprintf(os.Stderr, "weathermood: %v\n", runErr)
		os.Exit(1)
	}
}
