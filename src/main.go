package main

import (
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/rs/zerolog"

	"liftfleet/src/building"
	"liftfleet/src/config"
	"liftfleet/src/dispatcher"
	"liftfleet/src/elev"
	"liftfleet/src/logger"
	"liftfleet/src/strategy"
	"liftfleet/src/types"
	"liftfleet/src/watch"
)

func main() {
	configPath := flag.String("config", "fleet.yaml", "Fleet config YAML file")
	interactive := flag.Bool("interactive", false, "Drive requests from the keyboard instead of the generator")
	numRequests := flag.Int("requests", 20, "Number of generated hall calls in demo mode")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Seed for the request generator and occupant model")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := logger.GetWithLevel(level)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid fleet config")
	}

	b := building.New(cfg, building.Deps{
		Occupants: func(carID int) elev.Occupants {
			return elev.NewRandom(*seed+int64(carID), cfg.MinFloor, cfg.MaxFloor)
		},
		Sink:      watch.NewLogSink(logger.Component("watch")),
		Log:       logger.Component("elev"),
	})

	var selection strategy.Selection = strategy.NearestCar{}
	if cfg.Selection == config.SelectionTimeToServe {
		selection = strategy.TimeToServe{}
	}
	disp := dispatcher.New(b, selection, logger.Component("dispatcher"))

	b.Start()
	defer b.Stop()

	if *interactive {
		runPanel(disp, cfg, log)
		return
	}

	go generate(disp, cfg, *numRequests, *seed, log)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Info().Msg("Interrupted, shutting down")
}

// generate mirrors the canned demo: random hall calls at a fixed interval,
// top floor always down, bottom floor always up.
func generate(d *dispatcher.Dispatcher, cfg config.FleetConfig, n int, seed int64, log *zerolog.Logger) {
	rng := rand.New(rand.NewSource(seed))
	span := cfg.MaxFloor - cfg.MinFloor + 1
	for i := 0; i < n; i++ {
		floor := cfg.MinFloor + rng.Intn(span)
		hint := types.DirUp
		switch {
		case floor == cfg.MaxFloor:
			hint = types.DirDown
		case floor == cfg.MinFloor:
			hint = types.DirUp
		case rng.Intn(2) == 0:
			hint = types.DirDown
		}
		if err := d.Submit(types.NewHallRequest(floor, hint)); err != nil {
			log.Error().Err(err).Msg("Generated request rejected")
		}
		time.Sleep(6 * cfg.TickInterval)
	}
	log.Info().Int("requests", n).Msg("Generator done, Ctrl-C to exit")
}

// runPanel reads single keys as a hall/cab panel:
//
//	0-9        hall call at minFloor+digit, hint up (down at the top floor)
//	d then 0-9 hall call with a down hint
//	c then 0-9 cab call
//	q / Ctrl-C quit
func runPanel(d *dispatcher.Dispatcher, cfg config.FleetConfig, log *zerolog.Logger) {
	log.Info().Msg("Interactive panel: digits place calls, d=down, c=cab, q quits")
	var wantDown, wantCab bool
	for {
		char, key, err := keyboard.GetSingleKey()
		if err != nil {
			log.Error().Err(err).Msg("Keyboard read failed")
			return
		}
		switch {
		case key == keyboard.KeyCtrlC || char == 'q':
			return
		case char == 'd':
			wantDown, wantCab = true, false
		case char == 'c':
			wantCab, wantDown = true, false
		case char >= '0' && char <= '9':
			floor := cfg.MinFloor + int(char-'0')
			req := types.NewHallRequest(floor, types.DirUp)
			if wantCab {
				req = types.NewCabRequest(floor)
			} else if wantDown || floor == cfg.MaxFloor {
				req = types.NewHallRequest(floor, types.DirDown)
			}
			wantDown, wantCab = false, false
			if err := d.Submit(req); err != nil {
				log.Error().Err(err).Msg("Request rejected")
			}
		}
	}
}
