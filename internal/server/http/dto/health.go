package dto

// HealthResponse is returned by the readiness endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
