package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StatsProvider reports entity counts per collection.
type StatsProvider interface {
	Stats() map[string]int
}

// Server is the read-only ops endpoint that runs beside the console.
type Server struct {
	router  *gin.Engine
	limiter *RateLimiter
	http    *http.Server
}

func New(addr string, stats StatsProvider) *Server {
	limiter := NewRateLimiter(10, 20, 3*time.Minute)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())
	router.Use(RateLimitMiddleware(limiter))

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/stats", Stats(stats))

	return &Server{
		router:  router,
		limiter: limiter,
		http: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until Shutdown is called. It then returns http.ErrServerClosed.
func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, Cache-Control")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
