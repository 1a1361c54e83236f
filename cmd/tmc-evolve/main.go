package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lixenwraith/tmc-evolve/config"
	"github.com/lixenwraith/tmc-evolve/evolve"
	"github.com/lixenwraith/tmc-evolve/logging"
	"github.com/lixenwraith/tmc-evolve/monitor"
	"github.com/lixenwraith/tmc-evolve/objective"
	"github.com/lixenwraith/tmc-evolve/telemetry"
)

func main() {
	cfg, err := config.LoadProcess()
	if errors.Is(err, config.ErrHelp) {
		config.Usage(os.Stderr)
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(cfg, strings.Join(os.Args, " ")); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "tmc-evolve: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, command string) error {
	level, _ := logging.ParseLevel(cfg.LogLevel)
	console := io.Writer(os.Stderr)
	if cfg.Monitor {
		// The dashboard owns the terminal
		console = io.Discard
	}
	log.SetOutput(console)
	logger := logging.New(console, "", level)

	inputs, err := loadInputs(cfg)
	if err != nil {
		return err
	}
	logger.Infof("loaded %d ligands and %d search space rows", inputs.charges.Len(), inputs.space.Len())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	obj, err := objective.Parse(cfg.Prop)
	if err != nil {
		return err
	}

	var observers []evolve.Observer

	if cfg.Listen != "" {
		hub := telemetry.NewHub(logger)
		defer hub.Close()
		metrics := telemetry.NewMetrics()
		observers = append(observers, hub, metrics)

		srv := telemetry.NewServer(cfg.Listen, hub, metrics, logger)
		serveCtx, stopServe := context.WithCancel(context.Background())
		served := make(chan error, 1)
		go func() { served <- srv.Serve(serveCtx) }()
		defer func() {
			stopServe()
			if err := <-served; err != nil {
				logger.Errorf("telemetry: %v", err)
			}
		}()
	}

	var mon *monitor.Monitor
	monDone := make(chan error, 1)
	if cfg.Monitor {
		screen, err := monitor.NewScreen()
		if err != nil {
			return fmt.Errorf("monitor: %w", err)
		}
		var opts []monitor.Option
		if cfg.Chime {
			chime := monitor.NewChime()
			if err := chime.Initialize(); err != nil {
				logger.Warnf("audio initialization failed: %v (continuing without sound)", err)
			} else {
				defer chime.Close()
				opts = append(opts, monitor.WithChime(chime))
			}
		}
		mon = monitor.New(screen, obj, cancel, append(opts, monitor.WithLogger(logger))...)
		observers = append(observers, mon)

		go func() {
			err := mon.Run(ctx)
			screen.Fini()
			monDone <- err
		}()
	}

	runErr := runAll(ctx, cfg, inputs, command, console, observers)

	if mon != nil {
		mon.Finish()
		if err := <-monDone; err != nil {
			logger.Errorf("monitor: %v", err)
		}
	}
	return runErr
}
