package main

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cohort-roas-api/infrastructure/database/postgres"
	"github.com/vfg2006/cohort-roas-api/infrastructure/repository"
	"github.com/vfg2006/cohort-roas-api/infrastructure/sessionstore"
	"github.com/vfg2006/cohort-roas-api/internal/api"
	"github.com/vfg2006/cohort-roas-api/internal/config"
	"github.com/vfg2006/cohort-roas-api/internal/scheduler"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/cohorting"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/dashboard"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/insighting"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/sessioning"
	"github.com/vfg2006/cohort-roas-api/pkg/log"
	"github.com/vfg2006/cohort-roas-api/pkg/metrics"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := log.Configure(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
	}
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var recorder *metrics.Recorder
	if cfg.App.MetricsEnabled {
		recorder = metrics.New()
	}

	store, closeStore := sessionStore(ctx, cfg)
	defer closeStore()

	opts := sessioning.Options{
		TTL:     cfg.Session.TTL,
		Metrics: recorder,
	}

	if cfg.SnapshotArchive.Enabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		snapshots := repository.NewSnapshotRepository(pgConn)
		if err := snapshots.EnsureSchema(ctx); err != nil {
			logrus.WithError(err).Fatal("Erro ao criar tabela de snapshots")
		}
		opts.Snapshots = snapshots
	}

	sessionService := sessioning.NewService(
		store,
		newGenerator(cfg.Generator.Seed),
		insighting.NewService(),
		opts,
	)

	sweepService := scheduler.NewSessionSweepService(sessionService, cfg)

	// Inicia o agendador em background
	if err := sweepService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de sessões")
	} else {
		logrus.Info("Agendador de limpeza de sessões iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Dependencies{
		Sessions:     sessionService,
		Dashboard:    dashboard.NewService(),
		SessionSweep: sweepService,
		Metrics:      recorder,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// newGenerator usa a semente configurada; 0 usa o relógio
func newGenerator(seed uint64) cohorting.SeriesGenerator {
	if seed > 0 {
		logrus.WithField("seed", seed).Info("Gerador de cohorts com semente fixa")
		return cohorting.NewSeededGenerator(seed)
	}
	return cohorting.NewGenerator(nil)
}

// sessionStore cria o armazenamento de sessões configurado
func sessionStore(ctx context.Context, cfg *config.Config) (sessionstore.Store, func()) {
	if cfg.Session.Store != sessionstore.KindRedis {
		logrus.Info("Sessões armazenadas em memória")
		return sessionstore.NewMemoryStore(), func() {}
	}

	store, err := sessionstore.NewRedisStore(ctx, sessionstore.RedisOptions{
		Addr:     cfg.Session.RedisAddr,
		DB:       cfg.Session.RedisDB,
		Password: cfg.Session.RedisPassword,
		TTL:      cfg.Session.TTL,
	})
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
	}

	logrus.WithField("addr", cfg.Session.RedisAddr).Info("Sessões armazenadas no Redis")
	return store, closer(store)
}

func closer(c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar conexão")
		}
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
