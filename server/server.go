package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/esummer9/mykeyword/common/log"
	"github.com/esummer9/mykeyword/plugin/analyzer"
	"github.com/esummer9/mykeyword/server/profile"
	"github.com/esummer9/mykeyword/store"
	"github.com/esummer9/mykeyword/store/db"
)

type Server struct {
	e  *echo.Echo
	db *sql.DB

	Profile   *profile.Profile
	Store     *store.Store
	Analyzer  *analyzer.Manager
	Extractor *KeywordExtractor

	registry  *prometheus.Registry
	metrics   *Metrics
	scheduler *Scheduler
}

// NewServer opens the database and wires the HTTP routes on the kagome analyzer.
func NewServer(ctx context.Context, profile *profile.Profile) (*Server, error) {
	return newServer(ctx, profile, analyzer.NewKagome)
}

func newServer(ctx context.Context, profile *profile.Profile, build analyzer.Builder) (*Server, error) {
	e := echo.New()
	e.Debug = profile.IsDev()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()

	db := db.NewDB(profile)
	if err := db.Open(ctx); err != nil {
		return nil, errors.Wrap(err, "cannot open db")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &Server{
		e:        e,
		db:       db.DBInstance,
		Profile:  profile,
		Store:    store.New(db.DBInstance, profile),
		Analyzer: analyzer.NewManager(profile.UserDict, build),
		registry: registry,
		metrics:  NewMetrics(registry),
	}
	s.Extractor = NewKeywordExtractor(s.Store, s.Analyzer, s.metrics)

	if profile.ReprocessSpec != "" {
		scheduler, err := NewScheduler(profile.ReprocessSpec, profile.Location(), s.Extractor)
		if err != nil {
			return nil, err
		}
		s.scheduler = scheduler
	}

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogMethod:  true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/healthz"
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				log.Warn("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Debug("request", fields...)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.CORS())

	e.Use(middleware.Gzip())

	e.GET("/healthz", s.healthz)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	s.registerRSSRoutes(e.Group(""))

	apiGroup := e.Group("/api")
	s.registerMemoRoutes(apiGroup)
	s.registerKeywordRoutes(apiGroup)
	s.registerUserDictRoutes(apiGroup)
	s.registerExchangeRoutes(apiGroup)
	s.registerQuickCaptureRoutes(apiGroup)

	return s, nil
}

// Prepare writes the stored user dictionary to its file and starts building
// the analyzer in the background. Requests that need it wait for readiness.
func (s *Server) Prepare(ctx context.Context) {
	if err := s.writeUserDict(ctx); err != nil {
		log.Warn("failed to write user dictionary", zap.Error(err))
	}
	go func() {
		if err := s.Analyzer.Initialize(context.Background()); err != nil {
			log.Error("failed to initialize analyzer", zap.Error(err))
		}
	}()
}

func (s *Server) Start(ctx context.Context) error {
	s.Prepare(ctx)
	if s.scheduler != nil {
		s.scheduler.Start()
	}
	return s.e.Start(fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port))
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Shutdown echo server
	if err := s.e.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", zap.Error(err))
	}

	if s.scheduler != nil {
		s.scheduler.Stop(ctx)
	}
	s.Extractor.Wait()

	// Close database connection
	if err := s.db.Close(); err != nil {
		log.Error("failed to close database", zap.Error(err))
	}

	log.Info("mykeyword stopped properly")
}

// GetEcho returns the echo instance serving the routes.
func (s *Server) GetEcho() *echo.Echo {
	return s.e
}

func (s *Server) healthz(c echo.Context) error {
	ready := false
	select {
	case <-s.Analyzer.Ready():
		ready = true
	default:
	}
	return c.JSON(http.StatusOK, composeResponse(map[string]any{
		"status":        "ok",
		"version":       s.Profile.Version,
		"analyzerReady": ready,
	}))
}
