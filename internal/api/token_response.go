package api

// swagger:model api.TokenResponse
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	Type         string `json:"type" example:"bearer"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
