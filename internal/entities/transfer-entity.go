package entities

import (
	"time"

	"asset-system/pkg/types"
)

// Transfer is a request to reassign an asset's owning user and/or location.
// FromUserID/FromLocationID are snapshots of the asset's assignment taken at
// creation time; they do not follow later asset mutations.
type Transfer struct {
	ID              string     `json:"id"`
	AssetID         types.Ref  `json:"asset_id"`
	RequesterID     types.Ref  `json:"requester_id"`
	ApproverID      *types.Ref `json:"approver_id,omitempty"`
	FromUserID      *types.Ref `json:"from_user_id,omitempty"`
	FromLocationID  *types.Ref `json:"from_location_id,omitempty"`
	ToUserID        *types.Ref `json:"to_user_id,omitempty"`
	ToLocationID    *types.Ref `json:"to_location_id,omitempty"`
	Reason          string     `json:"reason"`
	Notes           string     `json:"notes,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	Status          string     `json:"status"`
	RequestedAt     time.Time  `json:"requested_at"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}
