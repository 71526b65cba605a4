package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"monkey-rumble/server/funding"
	"monkey-rumble/server/logging"
	loggingsinks "monkey-rumble/server/logging/sinks"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "path to the server config file")
	flag.Parse()

	if err := run(configPath); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(configPath string) error {
	cfg, err := loadServerConfig(configPath)
	if err != nil {
		return err
	}

	router, err := buildLoggingRouter(cfg.Logging)
	if err != nil {
		return fmt.Errorf("construct logging router: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if cerr := router.Close(ctx); cerr != nil {
			log.Printf("failed to close logging router: %v", cerr)
		}
	}()

	telemetry := newTelemetryCounters()
	hub := newHub(cfg.World, router, telemetry)

	stop := make(chan struct{})
	go hub.RunSimulation(stop)
	defer close(stop)

	pollerCtx, cancelPoller := context.WithCancel(context.Background())
	defer cancelPoller()
	if cfg.Funding.Enabled {
		poller, err := funding.NewPoller(funding.PollerConfig{
			URL:        cfg.Funding.URL,
			Interval:   cfg.Funding.PollInterval.Duration(),
			SchemaPath: cfg.Funding.SchemaPath,
		}, router, hub.EnqueueFunding)
		if err != nil {
			return err
		}
		hub.SetWatermarkFunc(poller.SetWatermark)
		poller.SetWatermark(time.Now().UnixMilli())
		go poller.Run(pollerCtx)
	}

	engine := setupRouter(hub)
	log.Printf("server listening on %s", cfg.Addr)
	if err := engine.Run(cfg.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// buildLoggingRouter maps the config's sink names onto concrete sinks. An
// unknown name is a config mistake and fails startup.
func buildLoggingRouter(cfg loggingConfig) (*logging.Router, error) {
	logCfg := logging.DefaultConfig()
	logCfg.EnabledSinks = cfg.Sinks
	if cfg.JSONPath != "" {
		logCfg.JSON.FilePath = cfg.JSONPath
	}

	for _, name := range cfg.Sinks {
		if name != "console" && name != "json" {
			return nil, fmt.Errorf("unknown logging sink %q", name)
		}
	}

	var sinks []logging.NamedSink
	if logCfg.HasSink("console") {
		sinks = append(sinks, logging.NamedSink{
			Name: "console",
			Sink: loggingsinks.NewConsoleSink(os.Stdout, logCfg.Console),
		})
	}
	if logCfg.HasSink("json") {
		file, err := os.OpenFile(logCfg.JSON.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open json sink %s: %w", logCfg.JSON.FilePath, err)
		}
		sinks = append(sinks, logging.NamedSink{
			Name: "json",
			Sink: loggingsinks.NewJSON(file, logCfg.JSON),
		})
	}

	return logging.NewRouter(logging.ClockFunc(time.Now), logCfg, sinks)
}
