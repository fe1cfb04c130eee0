package server

import (
	"fmt"
	"net/http"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"trip-gateway/internal/auth"
	"trip-gateway/internal/catalog"
	"trip-gateway/internal/config"
	"trip-gateway/internal/database"
	"trip-gateway/internal/graph"
	"trip-gateway/internal/metrics"
	"trip-gateway/internal/resolver"
)

// CatalogFactory builds the catalog client for one request.
type CatalogFactory func() resolver.LaunchSource

type Server struct {
	port       int
	db         database.Service
	identity   auth.IdentityResolver
	newCatalog CatalogFactory
	schema     *graphql.Schema
	metrics    *metrics.Metrics
	logger     *zap.Logger
	limiter    *visitorLimiter
}

type Options struct {
	Port       int
	DB         database.Service
	Identity   auth.IdentityResolver
	NewCatalog CatalogFactory
	Metrics    *metrics.Metrics
	Logger     *zap.Logger
	RateLimit  rate.Limit
	Burst      int
}

func New(opts Options) (*Server, error) {
	if opts.DB == nil || opts.NewCatalog == nil {
		return nil, errors.New("server: store and catalog are required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.Identity == nil {
		opts.Identity = auth.NewEmailCredentialResolver(opts.DB)
	}

	schema, err := graph.NewSchema(resolver.New(opts.Logger, opts.Metrics))
	if err != nil {
		return nil, errors.Wrap(err, "parse graphql schema")
	}

	return &Server{
		port:       opts.Port,
		db:         opts.DB,
		identity:   opts.Identity,
		newCatalog: opts.NewCatalog,
		schema:     schema,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
		limiter:    newVisitorLimiter(opts.RateLimit, opts.Burst),
	}, nil
}

// NewServer wires the gateway from configuration and returns the HTTP server
// ready to be started.
func NewServer(cfg config.Config, db database.Service, logger *zap.Logger) (*http.Server, error) {
	m := metrics.New()
	client := &http.Client{Timeout: cfg.CatalogTimeout}

	s, err := New(Options{
		Port: cfg.Port,
		DB:   db,
		NewCatalog: func() resolver.LaunchSource {
			return catalog.New(cfg.CatalogURL,
				catalog.WithHTTPClient(client),
				catalog.WithTimeout(cfg.CatalogTimeout),
				catalog.WithLogger(logger),
				catalog.WithMetrics(m),
			)
		},
		Metrics:   m,
		Logger:    logger,
		RateLimit: rate.Limit(cfg.RateLimitRPS),
		Burst:     cfg.RateLimitBurst,
	})
	if err != nil {
		return nil, err
	}
	return s.HTTPServer(), nil
}

func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
