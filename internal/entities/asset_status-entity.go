package entities

type AssetStatus struct {
	ID         string `json:"id"`
	StatusName string `json:"status_name"`
}
