package services

import (
	"sync"
	"time"

	"jelly/internal/models"

	"github.com/benbjohnson/clock"
)

// History keeps the most recent samples so a freshly opened dashboard can draw
// its charts. It is fed by the sampler; nothing samples on its own schedule.
type History struct {
	mu            sync.RWMutex
	points        []models.HistoryPoint
	maxDataPoints int
	clock         clock.Clock
}

// NewHistory keeps up to maxDataPoints samples. clk may be nil for the wall clock.
func NewHistory(maxDataPoints int, clk clock.Clock) *History {
	if maxDataPoints <= 0 {
		maxDataPoints = 60
	}
	if clk == nil {
		clk = clock.New()
	}
	return &History{
		points:        make([]models.HistoryPoint, 0, maxDataPoints),
		maxDataPoints: maxDataPoints,
		clock:         clk,
	}
}

// Append records a sample, dropping the oldest one when full
func (h *History) Append(stats *models.SystemStats) {
	point := models.HistoryPoint{
		Timestamp:     time.Unix(stats.Timestamp, 0),
		CPUPercent:    stats.CPUPercent,
		MemoryPercent: stats.Memory.Percent,
		BytesSent:     stats.Network.BytesSent,
		BytesRecv:     stats.Network.BytesRecv,
		SentPerSec:    stats.Network.SentPerSec,
		RecvPerSec:    stats.Network.RecvPerSec,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.points = append(h.points, point)
	if len(h.points) > h.maxDataPoints {
		h.points = h.points[len(h.points)-h.maxDataPoints:]
	}
}

// Window returns the samples recorded within duration of now, oldest first
func (h *History) Window(duration time.Duration) []models.HistoryPoint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	cutoff := h.clock.Now().Add(-duration)
	filtered := []models.HistoryPoint{}
	for _, p := range h.points {
		if p.Timestamp.After(cutoff) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
