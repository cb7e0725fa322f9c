package request

type UserCreateRequest struct {
	RegisterRequest
	Role string `json:"role" validate:"required,oneof=admin user"`
}

type UserUpdateRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=3,max=150"`
	IDNumber *string `json:"id_number,omitempty" validate:"omitempty,min=5,max=30"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin user"`
}
