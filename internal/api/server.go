package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cohort-roas-api/internal/api/handler"
	"github.com/vfg2006/cohort-roas-api/internal/api/handler/router"
	"github.com/vfg2006/cohort-roas-api/internal/config"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/dashboard"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/sessioning"
	"github.com/vfg2006/cohort-roas-api/pkg/metrics"
	"github.com/vfg2006/cohort-roas-api/pkg/middleware"
	"golang.org/x/sync/errgroup"
)

// Dependencies agrupa os serviços expostos pela API
type Dependencies struct {
	Sessions     sessioning.SessionManager
	Dashboard    dashboard.Builder
	SessionSweep handler.SyncJob
	Metrics      *metrics.Recorder // nil desabilita /metrics
}

type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

func New(config *config.Config, deps Dependencies) (*Server, error) {
	if deps.Sessions == nil || deps.Dashboard == nil {
		return nil, errors.New("api: serviços de sessão e dashboard são obrigatórios")
	}

	cronServices := handler.CronJobServices{
		SessionSweepService: deps.SessionSweep,
	}

	rt := router.New(
		router.WithMetrics(deps.Metrics),
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Sessions(deps.Sessions)...),
		router.WithRoutes(handler.Dashboard(deps.Sessions, deps.Dashboard, deps.Metrics)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
		router.WithRoutes(handler.Metrics(deps.Metrics)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              config.Server.Address(),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
		shutdownTimeout: config.Server.ShutdownTimeout,
	}

	return srv, nil
}

// Handler retorna a cadeia completa de middlewares e rotas
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serve até receber um sinal de término ou o cancelamento do contexto
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logrus.Info("Sinal de término recebido")

		timeout := s.shutdownTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}

		// Define timeout para desligamento
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		logrus.WithFields(logrus.Fields{
			"timeout": timeout.String(),
		}).Info("Iniciando desligamento gracioso do servidor")

		return s.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
