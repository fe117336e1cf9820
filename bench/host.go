package bench

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostInfo describes the machine a plan ran on.
type HostInfo struct {
	Hostname        string
	OS              string
	Platform        string
	PlatformVersion string
	CPUModel        string
	LogicalCPUs     int
	MemTotal        uint64
	GoVersion       string
	GOMAXPROCS      int
}

// CollectHost gathers host, CPU and memory facts.
func CollectHost() (HostInfo, error) {
	hi := HostInfo{
		GoVersion:  runtime.Version(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
	}

	hs, err := host.Info()
	if err != nil {
		return hi, fmt.Errorf("bench: host info: %w", err)
	}
	hi.Hostname, hi.OS, hi.Platform, hi.PlatformVersion = hs.Hostname, hs.OS, hs.Platform, hs.PlatformVersion

	infos, err := cpu.Info()
	if err != nil {
		return hi, fmt.Errorf("bench: cpu info: %w", err)
	}
	if len(infos) > 0 {
		hi.CPUModel = infos[0].ModelName
	}
	if hi.LogicalCPUs, err = cpu.Counts(true); err != nil {
		return hi, fmt.Errorf("bench: cpu count: %w", err)
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return hi, fmt.Errorf("bench: memory info: %w", err)
	}
	hi.MemTotal = vm.Total
	return hi, nil
}

// LogArgs lists the facts as slog key/value pairs.
func (h HostInfo) LogArgs() []any {
	return []any{
		"hostname", h.Hostname,
		"os", h.OS,
		"platform", h.Platform + " " + h.PlatformVersion,
		"cpu", h.CPUModel,
		"logical_cpus", h.LogicalCPUs,
		"mem_total_mb", h.MemTotal / (1 << 20),
		"go", h.GoVersion,
		"gomaxprocs", h.GOMAXPROCS,
	}
}
