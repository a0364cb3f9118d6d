package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

var (
	_ = promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "host_cpu_usage_percent",
		Help: "Host CPU usage since the previous scrape",
	}, GetCPUUsage)

	_ = promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "host_memory_used_percent",
		Help: "Host memory in use",
	}, GetMemoryUsage)
)

// GetCPUUsage returns the CPU usage percentage since the last call. It does not block.
func GetCPUUsage() float64 {
	percentage, err := cpu.Percent(0, false)
	if err != nil {
		log.Warn().Err(err).Msg("reading cpu usage")
		return 0
	}
	if len(percentage) > 0 {
		return percentage[0]
	}
	return 0
}

func GetMemoryUsage() float64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Warn().Err(err).Msg("reading memory usage")
		return 0
	}
	return vm.UsedPercent
}
