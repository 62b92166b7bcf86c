package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// livenessHandler reports that the process is up and which model is active.
func (s *Server) livenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "running",
		"model":  s.gemini.ActiveModel(),
	})
}

// systemHealthHandler collects and returns system-level metrics
func (s *Server) systemHealthHandler(c echo.Context) error {
	runtime := map[string]interface{}{
		"uptime":     time.Since(s.startTime).Round(time.Second).String(),
		"start_time": s.startTime.Format(time.RFC3339),
	}
	cpuStats := map[string]interface{}{}
	memory := map[string]interface{}{}

	// 1. Host/Runtime Info
	if hInfo, err := host.Info(); err == nil && hInfo != nil {
		runtime["os"] = hInfo.OS
		runtime["platform"] = hInfo.Platform
		runtime["arch"] = hInfo.KernelArch
		runtime["hostname"] = hInfo.Hostname
		cpuStats["cores"] = hInfo.Procs
	}

	// 2. CPU Usage (since the previous call, non-blocking)
	if cpuPercent, err := cpu.Percent(0, false); err == nil && len(cpuPercent) > 0 {
		cpuStats["usage_percent"] = fmt.Sprintf("%.2f%%", cpuPercent[0])
	}

	// 3. Memory Stats
	if v, err := mem.VirtualMemory(); err == nil && v != nil {
		memory["total_gb"] = fmt.Sprintf("%.2f GB", float64(v.Total)/1024/1024/1024)
		memory["used_gb"] = fmt.Sprintf("%.2f GB", float64(v.Used)/1024/1024/1024)
		memory["used_percent"] = fmt.Sprintf("%.2f%%", v.UsedPercent)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "online",
		"model":   s.gemini.ActiveModel(),
		"tier":    s.gemini.Tier().String(),
		"runtime": runtime,
		"cpu":     cpuStats,
		"memory":  memory,
	})
}
