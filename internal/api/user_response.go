package api

// swagger:model api.UserResponse
type UserResponse struct {
	ID          int    `json:"id" example:"1"`
	Username    string `json:"username" example:"willswinson"`
	Email       string `json:"email" example:"ws@email.com"`
	FirstName   string `json:"first_name" example:"Will"`
	LastName    string `json:"last_name" example:"Swinson"`
	PhoneNumber string `json:"phone_number" example:"912-232-1121"`
	Role        string `json:"role" example:"admin"`
	IsActive    bool   `json:"is_active" example:"true"`
}
