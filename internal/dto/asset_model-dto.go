package dto

type CreateAssetModelDTO struct {
	AssetMake  string `json:"asset_make" validate:"required"`
	AssetModel string `json:"asset_model" validate:"required"`
	AssetType  string `json:"asset_type" validate:"required"`
}

type AssetModelDTO struct {
	ID         string `json:"id"`
	AssetMake  string `json:"asset_make"`
	AssetModel string `json:"asset_model"`
	AssetType  string `json:"asset_type"`
}
