package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"jelly/internal/models"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

// HostProvider reads raw host metrics from the operating system
type HostProvider interface {
	NetCounters(ctx context.Context) ([]models.InterfaceCounters, error)
	CPU(ctx context.Context) (*models.CPUStatus, error)
	Memory(ctx context.Context) (*models.MemoryStatus, error)
}

// GopsutilProvider implements HostProvider on top of gopsutil
type GopsutilProvider struct {
	// CPUWindow is how long per-core usage is measured for
	CPUWindow time.Duration
}

// NewGopsutilProvider returns a provider that measures CPU over 100ms
func NewGopsutilProvider() *GopsutilProvider {
	return &GopsutilProvider{CPUWindow: 100 * time.Millisecond}
}

// NetCounters returns byte counters for every interface
func (p *GopsutilProvider) NetCounters(ctx context.Context) ([]models.InterfaceCounters, error) {
	counters, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to read interface counters: %w", err)
	}

	result := make([]models.InterfaceCounters, 0, len(counters))
	for _, counter := range counters {
		result = append(result, models.InterfaceCounters{
			Name:      counter.Name,
			BytesSent: counter.BytesSent,
			BytesRecv: counter.BytesRecv,
		})
	}
	return result, nil
}

// CPU samples per-core usage over CPUWindow and averages it. When per-core
// sampling fails it falls back to an instantaneous overall reading.
func (p *GopsutilProvider) CPU(ctx context.Context) (*models.CPUStatus, error) {
	status := &models.CPUStatus{PerCore: []float64{}}

	perCore, err := cpu.PercentWithContext(ctx, p.CPUWindow, true)
	if err == nil {
		status.PerCore = perCore
		status.UsagePercent = mean(perCore)
	} else {
		log.WithError(err).Warn("Could not get per-core CPU usage")
		overall, err := cpu.PercentWithContext(ctx, 0, false)
		if err != nil {
			return nil, fmt.Errorf("failed to get CPU usage: %w", err)
		}
		if len(overall) > 0 {
			status.UsagePercent = overall[0]
		}
	}

	coreCount, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		log.WithError(err).Warn("Could not get CPU core count")
	}
	status.CoreCount = coreCount

	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		log.WithError(err).Debug("Could not get CPU frequency")
	} else if len(infos) > 0 && infos[0].Mhz > 0 {
		ghz := math.Round(infos[0].Mhz/1000.0*100) / 100
		status.FrequencyGHz = &ghz
	}

	return status, nil
}

// Memory returns virtual memory usage
func (p *GopsutilProvider) Memory(ctx context.Context) (*models.MemoryStatus, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get memory usage: %w", err)
	}

	return &models.MemoryStatus{
		Total:     vm.Total,
		Available: vm.Available,
		Used:      vm.Used,
		Percent:   vm.UsedPercent,
	}, nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
