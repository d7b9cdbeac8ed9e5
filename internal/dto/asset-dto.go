package dto

import "github.com/aarondl/null/v8"

type CreateAssetDTO struct {
	SerialNo       string    `json:"serial_no" validate:"required"`
	TagNo          string    `json:"tag_no" validate:"required,asset_tag"`
	AssetModelID   *string   `json:"asset_model_id,omitempty" validate:"omitempty"`
	AssetStatusID  *string   `json:"asset_status_id,omitempty" validate:"omitempty"`
	LocationID     *string   `json:"location_id,omitempty" validate:"omitempty"`
	AssignedUserID *string   `json:"assigned_user_id,omitempty" validate:"omitempty"`
	PurchaseDate   null.Time `json:"purchase_date,omitempty"`
	WarrantyExpiry null.Time `json:"warranty_expiry,omitempty"`
	Description    string    `json:"description,omitempty"`
}

type UpdateAssetDTO struct {
	SerialNo       *string   `json:"serial_no,omitempty" validate:"omitempty,min=1"`
	TagNo          *string   `json:"tag_no,omitempty" validate:"omitempty,asset_tag"`
	AssetModelID   *string   `json:"asset_model_id,omitempty"`
	AssetStatusID  *string   `json:"asset_status_id,omitempty"`
	LocationID     *string   `json:"location_id,omitempty"`
	AssignedUserID *string   `json:"assigned_user_id,omitempty"`
	PurchaseDate   null.Time `json:"purchase_date,omitempty"`
	WarrantyExpiry null.Time `json:"warranty_expiry,omitempty"`
	Description    *string   `json:"description,omitempty"`
}

// PopulatedAssetDTO is an asset record with its reference fields replaced by
// the human-readable data they point to. Unresolvable references stay nil.
type PopulatedAssetDTO struct {
	ID             string            `json:"id"`
	SerialNo       string            `json:"serial_no"`
	TagNo          string            `json:"tag_no"`
	AssetType      string            `json:"asset_type,omitempty"`
	Brand          string            `json:"brand,omitempty"`
	Model          string            `json:"model,omitempty"`
	Status         string            `json:"status,omitempty"`
	AssignedUser   *ShortUserDTO     `json:"assigned_user"`
	Location       *ShortLocationDTO `json:"location"`
	PurchaseDate   null.Time         `json:"purchase_date,omitempty"`
	WarrantyExpiry null.Time         `json:"warranty_expiry,omitempty"`
	Description    string            `json:"description,omitempty"`
	CreatedAt      string            `json:"created_at"`
	UpdatedAt      string            `json:"updated_at"`
}
