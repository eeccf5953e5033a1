package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	glog "github.com/gin-contrib/slog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mark3labs/chainform/internal/ledger"
	"github.com/mark3labs/chainform/internal/logger"
)

// Server implements the submission API
type Server struct {
	recorder ledger.Recorder
	origins  []string
	log      *slog.Logger
	newID    func() string
}

// ErrorResponse is the body of every non-2xx answer
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// shutdownTimeout bounds graceful shutdown in Run
const shutdownTimeout = 5 * time.Second

// NewServer creates a server recording accepted submissions in rec. Requests
// from the given origins are allowed cross-origin; "*" allows any origin.
func NewServer(rec ledger.Recorder, origins []string) *Server {
	return &Server{
		recorder: rec,
		origins:  origins,
		log:      logger.Default.Slog(),
		newID:    uuid.NewString,
	}
}

// SetupRoutes configures and returns the HTTP router with all API endpoints
func (s *Server) SetupRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(glog.SetLogger(
		glog.WithLogger(func(c *gin.Context, l *slog.Logger) *slog.Logger {
			return s.log
		}),
	))
	router.Use(s.cors)

	router.GET("/", s.handleRoot)

	api := router.Group("/api")
	{
		api.POST("/submit", s.handleSubmit)
		api.GET("/submissions", s.listSubmissions)
	}

	return router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Submission API listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down submission API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) cors(c *gin.Context) {
	origin := c.GetHeader("Origin")
	if origin != "" && s.allowOrigin(origin) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		h.Add("Vary", "Origin")
	}

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusOK)
		return
	}
	c.Next()
}

func (s *Server) allowOrigin(origin string) bool {
	return slices.Contains(s.origins, "*") || slices.Contains(s.origins, origin)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Chained Form API is running"})
}
