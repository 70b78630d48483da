package users

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

type AssignRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type StrengthRequest struct {
	Password string `json:"password"`
}

type StrengthResponse struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

type ListUsersRequest struct {
	Role    *string `json:"role,omitempty"`
	Page    int     `json:"page" validate:"gte=0"`
	PerPage int     `json:"per_page" validate:"gte=0,lte=200"`
}
