// Gray Logic Home - home automation registry daemon
//
// homed owns one home (rooms and their smart plugs and thermometers),
// persists it to SQLite, publishes its report over MQTT and serves it
// over a JSON HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/nerrad567/gray-logic-home/migrations"

	"github.com/nerrad567/gray-logic-home/internal/api"
	"github.com/nerrad567/gray-logic-home/internal/bridges/mqttbridge"
	"github.com/nerrad567/gray-logic-home/internal/home"
	"github.com/nerrad567/gray-logic-home/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-home/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-home/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-home/internal/infrastructure/mqtt"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the application logic, separated from main for testability.
// It blocks until ctx is cancelled.
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting Gray Logic Home",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log = logging.New(cfg.Logging, version)
	log.Info("configuration loaded", "path", configPath, "home", cfg.Home.Name)

	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database ready", "path", cfg.Database.Path)

	repo := home.NewSQLiteRepository(db.DB)
	h, source, err := loadHome(ctx, repo, cfg.Home)
	if err != nil {
		return fmt.Errorf("loading home: %w", err)
	}

	registry := home.NewRegistry(h)
	registry.SetLogger(log.With("component", "registry"))
	registry.SetRepository(repo)
	if source != "snapshot" {
		if saveErr := registry.Save(ctx); saveErr != nil {
			return fmt.Errorf("saving initial snapshot: %w", saveErr)
		}
	}
	log.Info("home registry initialised",
		"home", registry.Name(),
		"source", source,
		"rooms", registry.RoomsCount(),
	)

	stored, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("listing stored homes: %w", err)
	}
	if len(stored) > 1 {
		log.Warn("database holds snapshots of other homes", "homes", stored, "serving", registry.Name())
	}

	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log.With("component", "mqtt"))
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		bridge, bridgeErr := startBridge(ctx, cfg, mqttClient, registry, log)
		if bridgeErr != nil {
			return bridgeErr
		}
		defer bridge.Stop()
	} else {
		log.Info("MQTT disabled")
	}

	if cfg.API.Enabled {
		deps := api.Deps{
			Config:   cfg.API,
			Logger:   log.With("component", "api"),
			Registry: registry,
			DB:       db,
			Version:  version,
		}
		if mqttClient != nil {
			deps.MQTT = mqttClient
		}

		server, apiErr := api.New(deps)
		if apiErr != nil {
			return fmt.Errorf("creating API server: %w", apiErr)
		}
		if startErr := server.Start(ctx); startErr != nil {
			return fmt.Errorf("starting API server: %w", startErr)
		}
		defer func() {
			if closeErr := server.Close(); closeErr != nil {
				log.Error("error closing API server", "error", closeErr)
			}
		}()
	} else {
		log.Info("API disabled")
	}

	log.Info("Gray Logic Home started")

	<-ctx.Done()

	log.Info("shutting down Gray Logic Home")
	return nil
}

// loadHome returns the home to serve and where it came from: the stored
// snapshot, the configured layout file, or a new empty home.
func loadHome(ctx context.Context, repo home.Repository, cfg config.HomeConfig) (*home.Home, string, error) {
	layout, err := repo.Load(ctx, cfg.Name)
	switch {
	case err == nil:
		h, buildErr := layout.Build()
		if buildErr != nil {
			return nil, "", fmt.Errorf("rebuilding stored snapshot: %w", buildErr)
		}
		return h, "snapshot", nil
	case !errors.Is(err, home.ErrHomeNotFound):
		return nil, "", err
	}

	if cfg.LayoutFile == "" {
		return home.New(cfg.Name), "empty", nil
	}

	layout, err = home.LoadLayoutFile(cfg.LayoutFile)
	if err != nil {
		return nil, "", err
	}
	if layout.Name == "" {
		layout.Name = cfg.Name
	}
	if layout.Name != cfg.Name {
		return nil, "", fmt.Errorf("layout file %s describes home %q, config names %q",
			cfg.LayoutFile, layout.Name, cfg.Name)
	}

	h, err := layout.Build()
	if err != nil {
		return nil, "", fmt.Errorf("building layout file %s: %w", cfg.LayoutFile, err)
	}
	return h, "layout_file", nil
}

// startBridge wires the MQTT bridge to the registry and republishes the
// report after every reconnect.
func startBridge(ctx context.Context, cfg *config.Config, client *mqtt.Client, registry *home.Registry, log *logging.Logger) (*mqttbridge.Bridge, error) {
	bridge, err := mqttbridge.New(mqttbridge.Options{
		Client:   client,
		Registry: registry,
		Interval: cfg.GetReportInterval(),
		QoS:      byte(cfg.MQTT.QoS),
		Logger:   log.With("component", "mqttbridge"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating MQTT bridge: %w", err)
	}
	if err := bridge.Start(ctx); err != nil {
		return nil, fmt.Errorf("starting MQTT bridge: %w", err)
	}

	client.SetOnConnect(func() {
		if pubErr := bridge.PublishReport(); pubErr != nil {
			log.Warn("failed to republish report after reconnect", "error", pubErr)
		}
	})
	return bridge, nil
}

// getConfigPath returns the configuration file path.
// Checks GRAYLOGIC_CONFIG environment variable first, then uses default.
func getConfigPath() string {
	if path := os.Getenv("GRAYLOGIC_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
