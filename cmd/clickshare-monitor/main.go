package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/clickshare"
	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/internal/archive"
	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/internal/bridge"
	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/internal/config"
	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/internal/fleet"
	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/internal/server"
)

func main() {
	configPath := flag.String("config", envOrDefault("CLICKSHARE_CONFIG", config.DefaultPath), "path to the YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	registry, err := fleet.Build(cfg)
	if err != nil {
		log.Fatalf("build fleet: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sinks []fleet.Sink
	if cfg.MQTT != nil {
		mqttBridge, err := bridge.New(cfg.MQTT, registry)
		if err != nil {
			log.Fatalf("mqtt connect: %v", err)
		}
		defer mqttBridge.Close()
		sinks = append(sinks, mqttBridge)
	}
	if cfg.Archive != nil {
		store, err := archive.NewStore(cfg.Archive)
		if err != nil {
			log.Fatalf("archive init: %v", err)
		}
		sinks = append(sinks, store)
	}

	registry.StartPolling(ctx, cfg.Poll.Interval(), sinks...)

	mux := http.NewServeMux()
	mux.Handle("/health", server.HealthHandler(registry))
	mux.Handle("/metrics", server.MetricsHandler(fleet.MetricsRegistry(registry)))
	mux.Handle("/dashboards/", server.DashboardsHandler(map[string][]byte{
		"/dashboards/clickshare/fleet.json": clickshare.DashboardJSON,
	}))
	server.RegisterAPI(mux, registry)

	httpServer := server.NewHTTPServer(cfg.Server.ListenAddr, mux)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()
	log.Printf("clickshare-monitor: %d devices, poll every %s, listening on %s",
		len(registry.Members()), cfg.Poll.Interval(), cfg.Server.ListenAddr)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
