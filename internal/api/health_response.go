package api

// swagger:model api.HealthResponse
type HealthResponse struct {
	Status string `json:"status" example:"Healthy"`
}
