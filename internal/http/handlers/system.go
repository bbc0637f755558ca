package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Busy reports the process-wide count of in-flight backend calls.
func (h *Handler) Busy(c *gin.Context) {
	n := h.Client.Busy().Count()
	c.JSON(http.StatusOK, gin.H{"count": n, "busy": n > 0})
}

// Metrics exposes the Prometheus registry.
func (h *Handler) Metrics() gin.HandlerFunc {
	g := h.Gatherer
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return gin.WrapH(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
