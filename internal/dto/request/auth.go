package request

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=3,max=150"`
	IDNumber string `json:"id_number" validate:"required,min=5,max=30"`
	Phone    string `json:"phone" validate:"required,min=7,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
