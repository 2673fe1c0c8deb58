package dto

import "time"

const (
	StatusUp   = "up"
	StatusDown = "down"
)

// DependencyStatus état d'une dépendance externe
type DependencyStatus struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	Required  bool   `json:"required"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// ReadinessReport résultat de /ready
type ReadinessReport struct {
	Status       string             `json:"status"`
	Dependencies []DependencyStatus `json:"dependencies"`
}

// SystemInfo informations exposées par /api/v1/system/info
type SystemInfo struct {
	Environment  string             `json:"environment"`
	Version      string             `json:"version"`
	StartedAt    time.Time          `json:"started_at"`
	Uptime       string             `json:"uptime"`
	Dependencies []DependencyStatus `json:"dependencies"`
}
