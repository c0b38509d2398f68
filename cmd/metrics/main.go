package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/NorrieF/jp-search-quality/internal/adapters/cache"
	"github.com/NorrieF/jp-search-quality/internal/adapters/database"
	"github.com/NorrieF/jp-search-quality/internal/adapters/events"
	"github.com/NorrieF/jp-search-quality/internal/application/services"
	"github.com/NorrieF/jp-search-quality/internal/infrastructure/clients/postgres"
	redisclient "github.com/NorrieF/jp-search-quality/internal/infrastructure/clients/redis"
	"github.com/NorrieF/jp-search-quality/internal/infrastructure/observability"
	"github.com/NorrieF/jp-search-quality/internal/metrics"
	"github.com/NorrieF/jp-search-quality/pkg/config"
)

func main() {
	validateOnly := flag.Bool("validate-only", false, "check input referential integrity and exit without writing tables")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx := context.Background()

	if cfg.OTEL.Enabled {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to setup OpenTelemetry")
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Warn().Err(err).Msg("Failed to shutdown OpenTelemetry")
			}
		}()
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pgClient.Close()

	eventLogRepo := database.NewEventLogAdapter(pgClient)
	metricsRepo := database.NewMetricsAdapter(pgClient)

	runner := metrics.NewRunner(metrics.Config{
		SatClickDwellSec:        cfg.Metrics.SatClickDwellSec,
		LenBucketShort:          cfg.Metrics.LenBucketShort,
		LenBucketMed:            cfg.Metrics.LenBucketMed,
		LenBucketLong:           cfg.Metrics.LenBucketLong,
		RankerMinVolume:         cfg.Metrics.RankerMinVolume,
		RankerZeroResultsWeight: cfg.Metrics.RankerZeroResultsWeight,
		RankerNoClickWeight:     cfg.Metrics.RankerNoClickWeight,
		RankerLimit:             cfg.Metrics.RankerLimit,
	})

	service := services.NewMetricsRunService(eventLogRepo, metricsRepo, runner)

	if obs, err := observability.InitMetrics(); err == nil {
		service.SetObservability(obs)
	}

	// Redis is optional: without it the run still replaces the postgres
	// tables, it just cannot cache or announce the summary.
	if redisClient, err := redisclient.NewClient(&cfg.Redis); err == nil {
		defer redisClient.Close()
		service.SetCache(cache.NewRedisAdapter(redisClient), cfg.Metrics.SnapshotTTLSec)

		bus := events.NewRedisEventBus(redisClient)
		defer bus.Close()
		service.SetEventBus(bus)
	} else {
		log.Warn().Err(err).Msg("Redis unavailable, skipping snapshot cache and run events")
	}

	if *validateOnly {
		if err := service.Validate(ctx); err != nil {
			log.Fatal().Err(err).Msg("Input validation failed")
		}
		log.Info().Msg("Input validation passed")
		return
	}

	summary, err := service.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Metrics run failed")
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
}
