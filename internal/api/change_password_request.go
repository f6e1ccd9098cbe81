package api

// swagger:model api.ChangePasswordRequest
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required" example:"CURRENT_PASS"`
	NewPassword     string `json:"new_password" validate:"required" example:"NEW_P@SSWORD"`
}
