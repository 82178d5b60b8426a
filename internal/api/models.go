package api

// HealthData is the health check payload.
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Health status"`
	Message string `json:"message" example:"API is healthy" doc:"Status message"`
}

// HealthResponse wraps HealthData for Huma.
type HealthResponse struct {
	Body HealthData
}

// VersionData is the build metadata payload.
type VersionData struct {
	Version   string `json:"version" example:"1.2.0" doc:"Application version"`
	GitCommit string `json:"git_commit" example:"a1b2c3d" doc:"Git commit hash"`
	BuildDate string `json:"build_date" example:"2025-01-27" doc:"Build timestamp"`
	GoVersion string `json:"go_version" example:"go1.24.11" doc:"Go toolchain version"`
	Platform  string `json:"platform" example:"linux/arm64" doc:"Build platform"`
}

// VersionResponse wraps VersionData for Huma.
type VersionResponse struct {
	Body VersionData
}

// StatusData is the most recently displayed ambient status.
type StatusData struct {
	Mode        string  `json:"mode" example:"Weather" doc:"Mode that produced the status"`
	Label       string  `json:"label" example:"Weather" doc:"Status label"`
	Description string  `json:"description" example:"Partly cloudy, 18.2°C" doc:"Human-readable summary"`
	R           float64 `json:"r" doc:"Red LED channel in [0,1]"`
	G           float64 `json:"g" doc:"Green LED channel in [0,1]"`
	B           float64 `json:"b" doc:"Blue LED channel in [0,1]"`
	ToneHz      float64 `json:"tone_hz,omitempty" doc:"Buzzer frequency in Hz, 0 when silent"`
	UpdatedAt   string  `json:"updated_at" example:"2025-01-27T10:30:00Z" doc:"When the status was displayed"`
}

// StatusResponse wraps StatusData for Huma.
type StatusResponse struct {
	Body StatusData
}

// ModeData describes one configured mode.
type ModeData struct {
	Name     string `json:"name" example:"System health" doc:"Mode name"`
	Index    int    `json:"index" example:"0" doc:"Position in the cycle order"`
	Interval string `json:"interval" example:"1m0s" doc:"Refresh interval"`
	Current  bool   `json:"current" doc:"True for the currently selected mode"`
}

// ModeListData lists the configured modes.
type ModeListData struct {
	Modes []ModeData `json:"modes" doc:"Modes in cycle order"`
	Count int        `json:"count" example:"2" doc:"Number of modes"`
}

// ModeListResponse wraps ModeListData for Huma.
type ModeListResponse struct {
	Body ModeListData
}

// AdvanceData acknowledges a mode advance request.
type AdvanceData struct {
	Message string `json:"message" example:"Mode advance requested" doc:"Acknowledgement"`
}

// AdvanceResponse wraps AdvanceData for Huma.
type AdvanceResponse struct {
	Body AdvanceData
}

// LogEntryData is one buffered log line.
type LogEntryData struct {
	Timestamp  string         `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Log timestamp"`
	Level      string         `json:"level" example:"INFO" doc:"Log level"`
	Module     string         `json:"module" example:"hub" doc:"Originating module"`
	Message    string         `json:"message" example:"Switched mode" doc:"Log message"`
	Attributes map[string]any `json:"attributes,omitempty" doc:"Structured attributes"`
}

// LogsData lists buffered log lines in chronological order.
type LogsData struct {
	Entries []LogEntryData `json:"entries" doc:"Log lines, oldest first"`
	Count   int            `json:"count" example:"128" doc:"Number of entries"`
}

// LogsResponse wraps LogsData for Huma.
type LogsResponse struct {
	Body LogsData
}
