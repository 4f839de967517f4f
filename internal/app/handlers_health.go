package app

import (
	"net/http"
	"os"
	"runtime"

	"github.com/gin-gonic/gin"
)

// HandleReadiness reports database health; used by orchestrator probes.
func (a *App) HandleReadiness(c *gin.Context) {
	stats := a.db.Health()
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, stats)
}

func (a *App) HandleLiveness(c *gin.Context) {
	host, _ := os.Hostname()
	if host == "" {
		host = "unavailable"
	}

	c.JSON(http.StatusOK, LivenessResponse{
		Status:     "up",
		Host:       host,
		GOMAXPROCS: runtime.GOMAXPROCS(0),
	})
}
