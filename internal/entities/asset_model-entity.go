package entities

type AssetModel struct {
	ID         string `json:"id"`
	AssetMake  string `json:"asset_make"`
	AssetModel string `json:"asset_model"`
	AssetType  string `json:"asset_type"`
}
