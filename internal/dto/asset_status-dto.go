package dto

type CreateAssetStatusDTO struct {
	StatusName string `json:"status_name" validate:"required"`
}

type AssetStatusDTO struct {
	ID         string `json:"id"`
	StatusName string `json:"status_name"`
}
