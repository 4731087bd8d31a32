package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/volkante/student-job-market/internal/api"
	appcache "github.com/volkante/student-job-market/internal/cache"
	redicache "github.com/volkante/student-job-market/internal/cache/redis"
	"github.com/volkante/student-job-market/internal/config"
	"github.com/volkante/student-job-market/internal/exchange/consumer"
	"github.com/volkante/student-job-market/internal/exchange/producer"
	"github.com/volkante/student-job-market/internal/fixtures"
	"github.com/volkante/student-job-market/internal/jobs"
	"github.com/volkante/student-job-market/internal/repository/events"
	jobrepo "github.com/volkante/student-job-market/internal/repository/job"
	"github.com/volkante/student-job-market/library/pg"
	"github.com/volkante/student-job-market/library/yamlreader"

	"github.com/IBM/sarama"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(rootCtx)
	defer cancel()

	configPath, seed := parseFlags()
	cfg := MustNewConfig(configPath)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimeFieldFormat = time.RFC3339

	log.Info().Msgf("pg=%+v", cfg.Postgres.Conn.Value)
	log.Info().Msgf("kafka=%+v", cfg.Kafka.Bootstrap.Value)

	pgClient, err := pg.NewPG(rootCtx, cfg.Postgres.Conn.Value, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres init failed")
	}
	defer pgClient.Close()

	jobRepo := jobrepo.NewRepository(pgClient.Pool())
	eventsRepo := events.NewRepository(pgClient.Pool())

	if seed {
		if err := fixtures.Seed(rootCtx, jobRepo); err != nil {
			log.Fatal().Err(err).Msg("seeding demo data failed")
		}
		log.Info().Msg("demo data seeded")
	}

	var snapshots appcache.Cache
	if cfg.Redis.Enabled.Value {
		redisCache := redicache.New(redicache.Options{
			Addr: cfg.Redis.Addr.Value,
			DB:   cfg.Redis.DB.Value,
		})
		if err := redisCache.Ping(rootCtx); err != nil {
			log.Fatal().Err(err).Msg("redis init failed")
		}
		defer func() { _ = redisCache.Close() }()

		snapshots = redisCache
	}

	eventProducer, err := initEventProducer(cfg.Kafka)
	if err != nil {
		log.Fatal().Err(err).Msg("kafka producer init failed")
	}
	defer func() { _ = eventProducer.Close() }()

	jobsService := jobs.NewService(jobs.Deps{
		Repo:      jobRepo,
		Producer:  eventProducer,
		Snapshots: snapshots,
		Log:       log.Logger,
	})

	apiService := api.NewService(api.ServiceDeps{
		Port:       cfg.JobAPI.Port.Value,
		Jobs:       jobsService,
		EventsRepo: eventsRepo,
	})

	auditConsumer := consumer.NewAuditRunner(
		cfg.Kafka.Bootstrap.Value,
		cfg.Kafka.Topics.JobEvents.Value,
		"consumer_job_audit",
		eventsRepo,
		log.Logger,
	)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info().Msg("starting HTTP API")
		if err := apiService.Start(gctx); err != nil {
			log.Error().Err(err).Msg("HTTP API stopped with error")

			return err
		}

		log.Info().Msg("HTTP API stopped")

		return nil
	})

	group.Go(func() error {
		log.Info().Msg("starting audit consumer")
		if err := auditConsumer.Start(gctx); err != nil {
			log.Error().Err(err).Msg("audit consumer stopped with error")

			return err
		}

		log.Info().Msg("audit consumer stopped")

		return nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = group.Wait()
	}()

	select {
	case <-rootCtx.Done():
		log.Info().Msg("signal received, graceful shutdown...")
		<-done
		log.Info().Msg("all services stopped")
	case <-done:
		log.Info().Msg("all services stopped")
	}
}

func initEventProducer(kafkaConfig config.KafkaConfig) (*producer.JobEventProducer, error) {
	sCfg := sarama.NewConfig()
	sCfg.Version = sarama.V3_3_2_0
	sCfg.ClientID = kafkaConfig.ProducerClientID.Value
	sCfg.Producer.Return.Successes = true
	sCfg.Producer.RequiredAcks = sarama.WaitForAll
	sCfg.Producer.Idempotent = true
	sCfg.Net.MaxOpenRequests = 1
	sCfg.Producer.Retry.Max = 5
	sCfg.Producer.Retry.Backoff = 200 * time.Millisecond

	sp, err := sarama.NewSyncProducer([]string{kafkaConfig.Bootstrap.Value}, sCfg)
	if err != nil {
		return nil, err
	}

	jobProd := producer.NewJobEventProducer(
		sp,
		producer.Config{
			Topic:  kafkaConfig.Topics.JobEvents.Value,
			Source: "job-market-api",
		},
		log.Logger,
	)

	return jobProd, nil
}

func MustNewConfig(path string) *config.Config {
	cfg, err := yamlreader.NewConfig[config.Config](path)

	if err != nil {
		log.Fatal().Str("path", path).Err(err).Msg("failed to read application config")
		return nil
	}

	return cfg
}

func parseFlags() (string, bool) {
	var (
		configPath string
		seed       bool
	)

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.BoolVar(&seed, "seed", false, "load demo postings on startup")
	flag.Parse()

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	godotenv.Load(".env")

	if configPath == "" {
		configPath = "config/application-local.yaml"
	}
	return configPath, seed
}
