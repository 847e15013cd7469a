package model

// HealthStatus is the payload returned by the health check endpoint.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
