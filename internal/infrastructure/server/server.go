package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/bibkit/internal/api/http"
	"github.com/GriffinCanCode/bibkit/internal/api/middleware"
	"github.com/GriffinCanCode/bibkit/internal/api/ws"
	"github.com/GriffinCanCode/bibkit/internal/domain/cleanup"
	"github.com/GriffinCanCode/bibkit/internal/infrastructure/config"
	"github.com/GriffinCanCode/bibkit/internal/infrastructure/logging"
	"github.com/GriffinCanCode/bibkit/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/bibkit/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/bibkit/internal/providers/fulltext"
	httpclient "github.com/GriffinCanCode/bibkit/internal/providers/http/client"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router     *gin.Engine
	handler    http.Handler
	httpServer *http.Server
	logger     *logging.Logger
	tracer     *tracing.Tracer
	config     *config.Config
	metrics    *monitoring.Metrics
	stream     *ws.Handler
}

// Option customizes server construction
type Option func(*options)

type options struct {
	logger     *logging.Logger
	downloader fulltext.Downloader
}

// WithLogger replaces the logger built from configuration
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithDownloader replaces the outbound HTTP client used by the fetchers
func WithDownloader(d fulltext.Downloader) Option {
	return func(o *options) { o.downloader = d }
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		var err error
		logger, err = logging.New(logging.FromConfig(cfg.Logging))
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	logger.Info("Initializing bibkit server",
		zap.String("port", cfg.Server.Port),
		zap.String("presets_file", cfg.Cleanup.PresetsFile),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("bibkit", logger.Component("tracing"))

	// Cleanup jobs and presets
	registry := cleanup.NewRegistry()
	presets := cleanup.DefaultPresets()
	if cfg.Cleanup.PresetsFile != "" {
		loaded, err := cleanup.LoadPresetsGlob(cfg.Cleanup.PresetsFile)
		if err != nil {
			tracer.Close()
			return nil, fmt.Errorf("failed to load cleanup presets: %w", err)
		}
		presets = loaded
	}
	if err := presets.Validate(registry); err != nil {
		tracer.Close()
		return nil, fmt.Errorf("invalid cleanup presets: %w", err)
	}
	logger.Info("Cleanup presets loaded", zap.Strings("presets", presets.Names()))

	// Full-text pipeline
	downloader := o.downloader
	if downloader == nil {
		client := httpclient.NewClient(cfg.HTTPClient, logger.Component("http-client"))
		client.SetObserver(metrics)
		downloader = client
	}
	fetcherLogger := logger.Component("fulltext")
	fetchers := fulltext.TraceAll(fulltext.DefaultFetchers(downloader, fetcherLogger), tracer)
	finder := fulltext.NewFinder(fetcherLogger, fetchers...).WithRecorder(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(middleware.Logger(logger.Component("http")))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfigFrom(cfg.RateLimit)))
	}

	handlers := apihttp.NewHandlers(registry, presets, cfg.Fields, finder, metrics, logger.Component("api"))
	handlers.Register(router)
	stream := ws.NewHandler(handlers, logger.Component("ws"))
	stream.Register(router)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Cleanup batches can be large; compress responses for clients that ask.
	// Upgrades bypass compression so the connection can be hijacked.
	gzipped := gzhttp.GzipHandler(router)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			router.ServeHTTP(w, r)
			return
		}
		gzipped.ServeHTTP(w, r)
	})

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		handler: handler,
		httpServer: &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger:  logger,
		tracer:  tracer,
		config:  cfg,
		metrics: metrics,
		stream:  stream,
	}, nil
}

// Handler returns the root handler (router plus response compression)
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run starts the HTTP server and blocks until it stops. A server stopped by
// Shutdown returns nil.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
	}

	// Streams must be gone before the tracer closes under them
	if serr := s.stream.Close(ctx); serr != nil {
		s.logger.Error("Failed to close streams", zap.Error(serr))
		err = errors.Join(err, serr)
	}

	s.tracer.Close()
	_ = s.logger.Sync()

	return err
}
