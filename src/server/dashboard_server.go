package server

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"sentiment-dashboard/src/helpers"
	"sentiment-dashboard/src/interfaces"
	"sentiment-dashboard/src/logger"
	"sentiment-dashboard/src/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ReloadInterval is the minimum spacing between accepted reload requests.
const ReloadInterval = 2 * time.Second

//go:embed static/index.html
var indexHTML []byte

// Builder produces a fresh snapshot; analysis.MetricsBuilder satisfies it.
type Builder interface {
	Build() (*models.MDashboardState, error)
}

// StatusReporter receives availability changes (the gRPC health service).
type StatusReporter interface {
	SetServing(serving bool)
}

// -----------------------------------------------------------------------------
// DashboardServer
// -----------------------------------------------------------------------------

var _ interfaces.IDataExchanger = (*DashboardServer)(nil)

type DashboardServer struct {
	Config     *models.MConfig
	Logger     *logger.Logger
	Builder    Builder
	Renderer   interfaces.IChartRenderer
	Status     StatusReporter
	Errors     *helpers.ErrorHandler
	Metrics    *DashboardMetrics
	engine     *gin.Engine
	httpServer *http.Server

	// WebSocket clients
	clients    map[*Client]struct{}
	clientsMu  sync.RWMutex
	broadcast  chan *models.MDashboardState
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once

	// Local cache
	latestState *models.MDashboardState
	lastError   string
	reloadMu    sync.Mutex
	reloadLimit *rate.Limiter
	stateMutex  sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewDashboardServer(cfg *models.MConfig, log *logger.Logger, builder Builder, renderer interfaces.IChartRenderer) *DashboardServer {
	// Set Gin mode
	if strings.ToUpper(cfg.LogLevel) != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &DashboardServer{
		Config:   cfg,
		Logger:   log,
		Builder:  builder,
		Renderer: renderer,
		Errors:   helpers.NewErrorHandler(log),
		Metrics:  NewDashboardMetrics(),
		engine:   gin.New(),
		clients:  make(map[*Client]struct{}),
		// Buffered so Publish never waits on the hub
		broadcast:  make(chan *models.MDashboardState, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),

		reloadLimit: rate.NewLimiter(rate.Every(ReloadInterval), 1),
	}

	s.engine.Use(gin.Recovery(), s.requestLogger())

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	s.setupRoutes()
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *DashboardServer) setupRoutes() {
	s.engine.GET("/", s.getIndex)

	api := s.engine.Group("/api")
	api.GET("/health", s.getHealth)
	api.GET("/config", s.getConfig)

	data := api.Group("", s.requireState)
	data.GET("/summary", s.getSummary)
	data.GET("/records", s.getRecords)
	data.GET("/insights", s.getInsights)
	data.GET("/charts/price", s.getPriceChart)
	data.GET("/charts/sentiment", s.getSentimentChart)
	data.GET("/dashboard", s.getDashboard)

	api.POST("/reload", s.postReload)

	s.engine.GET("/metrics", s.Metrics.handler())

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// Handler exposes the router, mainly for tests.
func (s *DashboardServer) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Start runs the hub and serves HTTP until Stop.
func (s *DashboardServer) Start() error {
	s.Logger.Info("Starting dashboard server on http://%s", s.httpServer.Addr)

	go s.handleWebsockets()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.done)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = s.httpServer.Shutdown(ctx)
	})
	return err
}

// -----------------------------------------------------------------------------
// Middleware
// -----------------------------------------------------------------------------

func (s *DashboardServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		s.Metrics.RequestLatency.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Observe(time.Since(start).Seconds())
		s.Logger.Debug("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) requireState(c *gin.Context) {
	if s.snapshot() == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "no data loaded"})
		return
	}
	c.Next()
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) snapshot() *models.MDashboardState {
	s.stateMutex.RLock()
	defer s.stateMutex.RUnlock()
	return s.latestState
}
