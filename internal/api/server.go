// Package api serves the ledger and budget advisor over a local HTTP API.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/cashheal/internal/charts"
	"github.com/Veraticus/cashheal/internal/ledger"
	"github.com/Veraticus/cashheal/internal/service"
	"github.com/Veraticus/cashheal/internal/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	shutdownTimeout = 5 * time.Second
)

// Deps holds the collaborators a Server routes requests to.
type Deps struct {
	Storage service.Storage
	Plans   *storage.PlanStore
	Charts  *charts.Generator
	// Now defaults to time.Now.
	Now func() time.Time
}

// Server is the local HTTP API.
type Server struct {
	storage  service.Storage
	recorder *ledger.Recorder
	plans    *storage.PlanStore
	charts   *charts.Generator
	now      func() time.Time
	engine   *gin.Engine
}

// NewServer wires the routes over deps.
func NewServer(deps Deps) (*Server, error) {
	if deps.Storage == nil || deps.Plans == nil || deps.Charts == nil {
		return nil, errors.New("api: storage, plans and charts are required")
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	s := &Server{
		storage:  deps.Storage,
		recorder: ledger.NewRecorder(deps.Storage),
		plans:    deps.Plans,
		charts:   deps.Charts,
		now:      now,
	}
	s.engine = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", s.healthCheck)

	api := r.Group("/api")
	api.GET("/balance", s.getBalance)
	api.POST("/balance/adjust", s.adjustBalance)
	api.GET("/categories", s.getCategories)
	api.GET("/transactions", s.getTransactions)
	api.POST("/transactions", s.addTransaction)

	api.POST("/budget/plan", s.createPlan)
	api.GET("/budget/plan", s.getPlan)
	api.DELETE("/budget/plan", s.deletePlan)
	api.GET("/budget/targets", s.getTargets)
	api.PUT("/budget/targets/:period", s.setTarget)
	api.GET("/budget/status", s.getStatus)

	api.GET("/charts/categories.png", s.categoryChart)

	return r
}

// Handler returns the router as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("API server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("API server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

// requestLogger tags every request with an id and logs it once complete.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()

		slog.Info("API request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
