package services

import (
	"context"

	"jelly/internal/models"

	"github.com/benbjohnson/clock"
)

// SelectionSource supplies the persisted network selection
type SelectionSource interface {
	Selection() (models.Selection, error)
}

// Sampler answers "sample now": it reads the host, turns network counters into
// rates against the previous snapshot and records the result.
type Sampler struct {
	provider HostProvider
	settings SelectionSource
	store    *SnapshotStore
	clock    clock.Clock
	recorder *Recorder
	history  *History
}

// NewSampler wires a sampler. clk may be nil for the wall clock.
func NewSampler(provider HostProvider, settings SelectionSource, store *SnapshotStore, clk clock.Clock) *Sampler {
	if clk == nil {
		clk = clock.New()
	}
	return &Sampler{
		provider: provider,
		settings: settings,
		store:    store,
		clock:    clk,
	}
}

// SetRecorder makes every sample update the given metrics recorder
func (s *Sampler) SetRecorder(r *Recorder) {
	s.recorder = r
}

// SetHistory makes every sample land in the given history window
func (s *Sampler) SetHistory(h *History) {
	s.history = h
}

// SampleNetwork takes one network sample. It never fails: provider errors
// yield an empty snapshot and a broken settings file yields the default selection.
func (s *Sampler) SampleNetwork(ctx context.Context) models.RateResult {
	sel, err := s.settings.Selection()
	if err != nil {
		log.WithError(err).Warn("Could not load network selection, using defaults")
		sel = models.DefaultSelection()
	}

	var result models.RateResult
	s.store.Cycle(func(previous *models.Snapshot) models.Snapshot {
		current := s.readSnapshot(ctx)
		result = EstimateRates(current, previous, sel)
		return current
	})
	return result
}

// Sample collects CPU, memory and network stats
func (s *Sampler) Sample(ctx context.Context) *models.SystemStats {
	stats := &models.SystemStats{PerCore: []float64{}}

	cpuStatus, err := s.provider.CPU(ctx)
	if err != nil {
		log.WithError(err).Warn("Could not get CPU usage")
	} else {
		stats.CPUPercent = cpuStatus.UsagePercent
		stats.CPUCount = cpuStatus.CoreCount
		stats.CPUFreq = cpuStatus.FrequencyGHz
		if cpuStatus.PerCore != nil {
			stats.PerCore = cpuStatus.PerCore
		}
	}

	memStatus, err := s.provider.Memory(ctx)
	if err != nil {
		log.WithError(err).Warn("Could not get memory usage")
	} else {
		stats.Memory = *memStatus
	}

	stats.Network = s.SampleNetwork(ctx)
	stats.Timestamp = s.clock.Now().Unix()

	if s.recorder != nil {
		s.recorder.Observe(stats)
	}
	if s.history != nil {
		s.history.Append(stats)
	}
	return stats
}

// readSnapshot must run inside a store cycle so the timestamp and counters
// belong to the same step as the previous snapshot they are compared with.
func (s *Sampler) readSnapshot(ctx context.Context) models.Snapshot {
	now := s.clock.Now()
	counters, err := s.provider.NetCounters(ctx)
	if err != nil {
		log.WithError(err).Warn("Could not read network counters")
		return models.NewSnapshot(now, nil)
	}
	return models.NewSnapshot(now, counters)
}
