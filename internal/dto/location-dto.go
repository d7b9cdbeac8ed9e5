package dto

type CreateLocationDTO struct {
	Name string `json:"name" validate:"required"`
}

type UpdateLocationDTO struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1"`
}

type LocationDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type ShortLocationDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
