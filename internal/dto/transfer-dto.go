package dto

type CreateTransferDTO struct {
	AssetID      string  `json:"asset_id" validate:"required"`
	Reason       string  `json:"reason" validate:"required"`
	Notes        string  `json:"notes,omitempty"`
	ToUserID     *string `json:"to_user_id,omitempty"`
	ToLocationID *string `json:"to_location_id,omitempty"`
}

type UpdateTransferDTO struct {
	Status          string `json:"status" validate:"required,transfer_status"`
	Notes           string `json:"notes,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// PopulatedTransferDTO carries the transfer together with every referenced
// record resolved; unresolvable references stay nil.
type PopulatedTransferDTO struct {
	ID              string             `json:"id"`
	Status          string             `json:"status"`
	Reason          string             `json:"reason"`
	Notes           string             `json:"notes,omitempty"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
	RequestedAt     string             `json:"requested_at"`
	ApprovedAt      string             `json:"approved_at,omitempty"`
	CompletedAt     string             `json:"completed_at,omitempty"`
	Asset           *PopulatedAssetDTO `json:"asset"`
	Requester       *ShortUserDTO      `json:"requester"`
	Approver        *ShortUserDTO      `json:"approver"`
	FromUser        *ShortUserDTO      `json:"from_user"`
	ToUser          *ShortUserDTO      `json:"to_user"`
	FromLocation    *ShortLocationDTO  `json:"from_location"`
	ToLocation      *ShortLocationDTO  `json:"to_location"`
}

type PendingTransfersDTO struct {
	PendingCount uint64 `json:"pending_count"`
}
