package entities

import (
	"time"

	"asset-system/pkg/types"
)

type Asset struct {
	ID             string     `json:"id"`
	SerialNo       string     `json:"serial_no"`
	TagNo          string     `json:"tag_no"`
	AssetModelID   *types.Ref `json:"asset_model_id"`
	AssetStatusID  *types.Ref `json:"asset_status_id"`
	LocationID     *types.Ref `json:"location_id"`
	AssignedUserID *types.Ref `json:"assigned_user_id"`
	PurchaseDate   *time.Time `json:"purchase_date,omitempty"`
	WarrantyExpiry *time.Time `json:"warranty_expiry,omitempty"`
	Description    string     `json:"description,omitempty"`

	types.BaseEntity
}
