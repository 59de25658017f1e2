package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fitclub/internal/api"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

// Stats returns the entity count of every collection.
func Stats(stats StatsProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		collections := stats.Stats()
		total := 0
		for _, n := range collections {
			total += n
		}
		c.JSON(http.StatusOK, api.StatsResponse{Collections: collections, Total: total})
	}
}

// Metrics exposes Prometheus metrics in text format.
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
