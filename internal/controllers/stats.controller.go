package controllers

import (
	"net/http"
	"time"

	"jelly/internal/services"

	"github.com/gin-gonic/gin"
)

// StatsController serves live host stats and the recent history behind them
type StatsController struct {
	sampler *services.Sampler
	history *services.History
}

func NewStatsController(sampler *services.Sampler, history *services.History) *StatsController {
	return &StatsController{sampler: sampler, history: history}
}

// GetStats samples CPU, memory and network now. It always answers 200; failed
// readings show up as zeroed fields and null rates.
func (sc *StatsController) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, sc.sampler.Sample(c.Request.Context()))
}

// GetHistory returns the samples taken within the last duration
// Query params: duration=30s|5m|10m (default: 10m)
func (sc *StatsController) GetHistory(c *gin.Context) {
	durationStr := c.DefaultQuery("duration", "10m")

	duration, err := time.ParseDuration(durationStr)
	if err != nil || duration <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid duration format"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"duration": durationStr,
		"data":     sc.history.Window(duration),
	})
}
