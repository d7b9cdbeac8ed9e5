package dto

type CreateUserDTO struct {
	Name       string  `json:"name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	Role       string  `json:"role" validate:"omitempty,oneof=admin user"`
	LocationID *string `json:"location_id,omitempty"`
}

type UpdateUserDTO struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Role       *string `json:"role,omitempty" validate:"omitempty,oneof=admin user"`
	IsActive   *bool   `json:"is_active,omitempty"`
	LocationID *string `json:"location_id,omitempty"`
}

type UserDTO struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Role      string            `json:"role"`
	IsActive  bool              `json:"is_active"`
	Location  *ShortLocationDTO `json:"location"`
	CreatedAt string            `json:"created_at"`
}

type ShortUserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
