package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	server "saferoom/server"
	"saferoom/server/dialogue"
	"saferoom/server/logging"
	"saferoom/server/logging/sinks"
)

// Run wires the full server: config, logging pipeline, world, hub, HTTP
// serving and graceful shutdown. It blocks until ctx is cancelled.
func Run(ctx context.Context, configPath string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	zapLogger, err := buildZapLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer zapLogger.Sync()

	router, err := buildRouter(cfg.Logging, zapLogger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if cerr := router.Close(closeCtx); cerr != nil {
			log.Printf("close logging router: %v", cerr)
		}
	}()

	table, err := dialogue.Load()
	if err != nil {
		return fmt.Errorf("load dialogue: %w", err)
	}

	world := server.NewWorld(server.WorldConfig{
		Seed:      cfg.World.Seed,
		PropCount: cfg.World.PropCount,
	}, server.Deps{
		Publisher: router,
		Dialogue:  table,
	})

	if cfg.World.MapFile != "" {
		records, err := loadSpawnRecords(cfg.World.MapFile)
		if err != nil {
			return err
		}
		world.PopulateFromRecords(records)
	}

	hub := server.NewHub(world, router)
	world.SetNotifier(hub)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go hub.Run(runCtx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:    cfg.Server.BindAddress,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("server listening", zap.String("addr", cfg.Server.BindAddress))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func buildZapLogger(cfg LoggingConfig) (*zap.Logger, error) {
	if cfg.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func buildRouter(cfg LoggingConfig, zapLogger *zap.Logger) (*logging.Router, error) {
	logCfg := logging.DefaultConfig()
	logCfg.EnabledSinks = cfg.Sinks
	logCfg.MinimumSeverity = parseSeverity(cfg.MinSeverity)

	named := make([]logging.NamedSink, 0, len(cfg.Sinks))
	for _, name := range cfg.Sinks {
		switch name {
		case "console":
			named = append(named, logging.NamedSink{Name: name, Sink: sinks.NewConsoleSink(os.Stdout)})
		case "json":
			sink, err := sinks.NewJSONSink(cfg.EventLog)
			if err != nil {
				return nil, fmt.Errorf("open json sink: %w", err)
			}
			named = append(named, logging.NamedSink{Name: name, Sink: sink})
		case "zap":
			named = append(named, logging.NamedSink{Name: name, Sink: sinks.NewZapSink(zapLogger)})
		default:
			return nil, fmt.Errorf("unknown logging sink %q", name)
		}
	}
	return logging.NewRouter(nil, logCfg, named), nil
}

func parseSeverity(name string) logging.Severity {
	switch name {
	case "debug":
		return logging.SeverityDebug
	case "warn":
		return logging.SeverityWarn
	case "error":
		return logging.SeverityError
	default:
		return logging.SeverityInfo
	}
}

// loadSpawnRecords reads a map file's enemy list: either a bare array of
// records or an object with an "enemies" field.
func loadSpawnRecords(path string) ([]server.SpawnRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map %s: %w", path, err)
	}
	var records []server.SpawnRecord
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}
	var wrapped struct {
		Enemies []server.SpawnRecord `json:"enemies"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parse map %s: %w", path, err)
	}
	return wrapped.Enemies, nil
}
