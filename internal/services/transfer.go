package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/types"
	"asset-system/pkg/utils"
)

type TransferServiceInterface interface {
	GetTransfers(ctx context.Context, filter types.Filter) ([]dto.PopulatedTransferDTO, uint64, error)
	FindTransfer(ctx context.Context, id string) (*dto.PopulatedTransferDTO, error)
	CreateTransfer(ctx context.Context, payload dto.CreateTransferDTO) (*entities.Transfer, error)
	UpdateTransferStatus(ctx context.Context, id string, payload dto.UpdateTransferDTO) (*entities.Transfer, error)
	PendingCount(ctx context.Context) (uint64, error)
}

type TransferService struct {
	transferRepo repositories.TransferRepositoryInterface
	assetRepo    repositories.AssetRepositoryInterface
	txManager    repositories.TxManagerInterface
	populator    *AssetPopulator
	stats        statsInvalidator
	logger       *zap.Logger
	now          func() time.Time
}

func NewTransferService(
	transferRepo repositories.TransferRepositoryInterface,
	assetRepo repositories.AssetRepositoryInterface,
	txManager repositories.TxManagerInterface,
	populator *AssetPopulator,
	stats statsInvalidator,
	logger *zap.Logger,
) TransferServiceInterface {
	return &TransferService{
		transferRepo: transferRepo,
		assetRepo:    assetRepo,
		txManager:    txManager,
		populator:    populator,
		stats:        stats,
		logger:       logger,
		now:          time.Now,
	}
}

// GetTransfers lists transfers for the calling user. Admins see every
// transfer; everyone else only their own requests.
func (s *TransferService) GetTransfers(ctx context.Context, filter types.Filter) ([]dto.PopulatedTransferDTO, uint64, error) {
	requesterID := ""
	if !utils.IsAdminCtx(ctx) {
		userID, err := utils.GetUserIDFromCtx(ctx)
		if err != nil {
			return nil, 0, err
		}
		requesterID = userID
	}

	transfers, total, err := s.transferRepo.GetTransfers(ctx, filter, requesterID)
	if err != nil {
		return nil, 0, err
	}
	populated, err := s.populator.PopulateTransfers(ctx, transfers)
	if err != nil {
		return nil, 0, err
	}
	return populated, total, nil
}

func (s *TransferService) FindTransfer(ctx context.Context, id string) (*dto.PopulatedTransferDTO, error) {
	transfer, err := s.transferRepo.FindTransfer(ctx, id)
	if err != nil {
		return nil, err
	}
	if !utils.IsAdminCtx(ctx) {
		userID, err := utils.GetUserIDFromCtx(ctx)
		if err != nil {
			return nil, err
		}
		if transfer.RequesterID.String() != userID {
			return nil, apperrors.ErrForbidden
		}
	}
	populated, err := s.populator.PopulateTransfers(ctx, []*entities.Transfer{transfer})
	if err != nil {
		return nil, err
	}
	return &populated[0], nil
}

// CreateTransfer opens a PENDING request and snapshots the asset's current
// assignment into from_user_id/from_location_id. The snapshot is what a later
// completion reports as the origin, regardless of asset edits in between.
func (s *TransferService) CreateTransfer(ctx context.Context, payload dto.CreateTransferDTO) (*entities.Transfer, error) {
	requesterID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	asset, err := s.assetRepo.FindAsset(ctx, types.NewRef(payload.AssetID).String())
	if err != nil {
		return nil, err
	}

	transfer := &entities.Transfer{
		AssetID:        types.NewRef(asset.ID),
		RequesterID:    types.NewRef(requesterID),
		FromUserID:     asset.AssignedUserID,
		FromLocationID: asset.LocationID,
		ToUserID:       types.NewRefPtr(payload.ToUserID),
		ToLocationID:   types.NewRefPtr(payload.ToLocationID),
		Reason:         payload.Reason,
		Notes:          payload.Notes,
		Status:         constants.TransferStatusPending,
		RequestedAt:    s.now().UTC(),
	}
	created, err := s.transferRepo.CreateTransfer(ctx, transfer)
	if err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	return created, nil
}

// UpdateTransferStatus drives the transfer lifecycle. Only admins may call
// it, only the edges PENDING -> {APPROVED, REJECTED, COMPLETED} and
// APPROVED -> COMPLETED are legal, and the acting admin is recorded as
// approver on every transition, rejections included.
func (s *TransferService) UpdateTransferStatus(ctx context.Context, id string, payload dto.UpdateTransferDTO) (*entities.Transfer, error) {
	if !utils.IsAdminCtx(ctx) {
		return nil, apperrors.ErrForbidden
	}
	approverID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if !constants.IsTransferStatus(payload.Status) {
		return nil, apperrors.NewInvalidInputError("unknown transfer status %q", payload.Status)
	}

	transfer, err := s.transferRepo.FindTransfer(ctx, id)
	if err != nil {
		return nil, err
	}
	if !constants.CanTransitionTransfer(transfer.Status, payload.Status) {
		return nil, apperrors.NewInvalidInputError(
			"cannot transition transfer from %s to %s", transfer.Status, payload.Status)
	}

	var updated *entities.Transfer
	switch payload.Status {
	case constants.TransferStatusApproved:
		updated, err = s.transferRepo.MarkApproved(ctx, transfer.ID, approverID, transfer.Status, s.now().UTC())

	case constants.TransferStatusRejected:
		if payload.RejectionReason == "" {
			return nil, apperrors.NewInvalidInputError("rejection_reason is required to reject a transfer")
		}
		updated, err = s.transferRepo.MarkRejected(ctx, transfer.ID, approverID, transfer.Status, payload.RejectionReason)

	case constants.TransferStatusCompleted:
		updated, err = s.complete(ctx, transfer, approverID)
	}
	if err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)

	if payload.Notes != "" && payload.Notes != transfer.Notes {
		if err := s.transferRepo.SetNotes(ctx, transfer.ID, payload.Notes); err != nil {
			return nil, err
		}
		updated.Notes = payload.Notes
	}
	return updated, nil
}

// complete finishes the transfer and mutates the asset in one transaction.
// The status column is re-checked inside the transaction, so two admins
// racing to complete the same transfer cannot both apply the asset mutation;
// the loser gets a conflict.
func (s *TransferService) complete(ctx context.Context, transfer *entities.Transfer, approverID string) (*entities.Transfer, error) {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		ok, err := s.transferRepo.CompleteInTx(ctx, tx, transfer.ID, approverID, transfer.Status, s.now().UTC())
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrConflict
		}
		if transfer.ToUserID == nil && transfer.ToLocationID == nil {
			return nil
		}
		return s.assetRepo.ApplyTransferInTx(ctx, tx, transfer.AssetID.String(), transfer.ToUserID, transfer.ToLocationID)
	})
	if err != nil {
		return nil, err
	}
	return s.transferRepo.FindTransfer(ctx, transfer.ID)
}

func (s *TransferService) PendingCount(ctx context.Context) (uint64, error) {
	return s.transferRepo.CountByStatus(ctx, constants.TransferStatusPending)
}

func (s *TransferService) invalidateStats(ctx context.Context) {
	if err := s.stats.InvalidateStats(ctx); err != nil {
		s.logger.Warn("failed to invalidate dashboard stats", zap.Error(err))
	}
}
