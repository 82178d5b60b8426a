package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"ambientpi/internal/status"
)

const (
	systemSourceName   = "System health"
	defaultThermalZone = "/sys/class/thermal/thermal_zone0/temp"

	// sysinfo load averages are fixed-point, scaled by 2^16.
	loadScale = 1 << 16
)

// SystemSource summarizes local system health: load average, disk usage and
// CPU temperature, collapsed into one severity value.
type SystemSource struct {
	rootPath    string
	thermalPath string
	logger      *slog.Logger
}

// SystemOption configures a SystemSource.
type SystemOption func(*SystemSource)

// WithRootPath sets the filesystem path monitored for disk usage.
func WithRootPath(path string) SystemOption {
	return func(s *SystemSource) {
		s.rootPath = path
	}
}

// WithThermalZone sets the sysfs file read for the CPU temperature.
func WithThermalZone(path string) SystemOption {
	return func(s *SystemSource) {
		s.thermalPath = path
	}
}

// NewSystemSource creates a system health source.
func NewSystemSource(logger *slog.Logger, opts ...SystemOption) *SystemSource {
	s := &SystemSource{
		rootPath:    "/",
		thermalPath: defaultThermalZone,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the mode name shown for this source.
func (s *SystemSource) Name() string { return systemSourceName }

// Fetch reads the OS statistics and maps the worst normalized reading to a
// green-to-red color and an optional alert tone.
func (s *SystemSource) Fetch(ctx context.Context) (status.Status, error) {
	if err := ctx.Err(); err != nil {
		return status.Status{}, err
	}

	load5, err := loadAverage5()
	if err != nil {
		return status.Status{}, fmt.Errorf("read load average: %w", err)
	}
	loadRatio := load5 / float64(runtime.NumCPU())

	diskRatio, err := diskUsageRatio(s.rootPath)
	if err != nil {
		return status.Status{}, fmt.Errorf("read disk usage for %s: %w", s.rootPath, err)
	}

	severity := max(loadRatio, diskRatio)

	parts := []string{
		fmt.Sprintf("5m load: %.2f", load5),
		fmt.Sprintf("Disk used: %.0f%%", diskRatio*100),
	}

	// The thermal zone file is absent on some boards and in containers;
	// temperature is simply omitted then.
	if tempC, ok := s.readCPUTemperature(); ok {
		severity = max(severity, status.NormalizeCPUTemperature(tempC))
		parts = append(parts, fmt.Sprintf("CPU temp: %.1f°C", tempC))
	}

	return status.Status{
		Label:       systemSourceName,
		Color:       status.SeverityColor(severity),
		Description: strings.Join(parts, ", "),
		Tone:        status.SeverityTone(severity),
	}, nil
}

// readCPUTemperature reads the thermal zone pseudo-file, reported in
// millidegrees Celsius.
func (s *SystemSource) readCPUTemperature() (float64, bool) {
	raw, err := os.ReadFile(s.thermalPath)
	if err != nil {
		return 0, false
	}
	milli, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		s.logger.Debug("Unparseable thermal zone reading", "path", s.thermalPath, "raw", string(raw))
		return 0, false
	}
	return float64(milli) / 1000.0, true
}

// loadAverage5 returns the 5-minute load average.
func loadAverage5() (float64, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, err
	}
	return float64(info.Loads[1]) / loadScale, nil
}

// diskUsageRatio returns used/total for the filesystem containing path.
func diskUsageRatio(path string) (float64, error) {
	var fs unix.Statfs_t
	if err := unix.Statfs(path, &fs); err != nil {
		return 0, err
	}
	total := float64(fs.Blocks) * float64(fs.Bsize)
	if total == 0 {
		return 0, fmt.Errorf("filesystem at %s reports zero size", path)
	}
	used := float64(fs.Blocks-fs.Bfree) * float64(fs.Bsize)
	return used / total, nil
}
