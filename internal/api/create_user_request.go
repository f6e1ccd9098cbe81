package api

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Username    string `json:"username" validate:"required" example:"willswinson"`
	Email       string `json:"email" validate:"required,email" example:"ws@email.com"`
	FirstName   string `json:"first_name" validate:"required" example:"Will"`
	LastName    string `json:"last_name" validate:"required" example:"Swinson"`
	Password    string `json:"password" validate:"required" example:"P@SSWORD"`
	PhoneNumber string `json:"phone_number" example:"912-232-1121"`
	Role        string `json:"role" validate:"required" example:"admin"`
}
