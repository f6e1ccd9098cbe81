package api

// swagger:model api.UpdatePhoneNumberRequest
type UpdatePhoneNumberRequest struct {
	NewPhoneNumber string `json:"new_phone_number" validate:"required" example:"423-433-1212"`
}
