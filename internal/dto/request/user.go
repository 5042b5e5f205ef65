package request

type RegisterRequest struct {
	Name  string  `json:"name" validate:"required,min=1,max=100"`
	Email string  `json:"email" validate:"required,email,max=100"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}
