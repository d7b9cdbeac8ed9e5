package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/pkg/contextkeys"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/types"
)

func adminCtx(userID string) context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.UserRoleKey, "admin")
}

func userCtx(userID string) context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.UserRoleKey, "user")
}

type fakeLocationRepo struct {
	locations []entities.Location
	allCalls  int
	allErr    error
}

func (f *fakeLocationRepo) All(ctx context.Context) ([]entities.Location, error) {
	f.allCalls++
	if f.allErr != nil {
		return nil, f.allErr
	}
	return f.locations, nil
}

func (f *fakeLocationRepo) FindByID(ctx context.Context, id string) (*entities.Location, error) {
	for _, l := range f.locations {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeLocationRepo) FindByIDs(ctx context.Context, ids []string) (map[string]entities.Location, error) {
	out := make(map[string]entities.Location)
	for _, id := range ids {
		for _, l := range f.locations {
			if l.ID == id {
				out[id] = l
			}
		}
	}
	return out, nil
}

func (f *fakeLocationRepo) Create(ctx context.Context, payload dto.CreateLocationDTO) (*entities.Location, error) {
	l := entities.Location{ID: "loc-new", Name: payload.Name, CreatedAt: time.Now()}
	f.locations = append(f.locations, l)
	return &l, nil
}

func (f *fakeLocationRepo) Update(ctx context.Context, id string, payload dto.UpdateLocationDTO) (*entities.Location, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeLocationRepo) Delete(ctx context.Context, id string) error {
	for i, l := range f.locations {
		if l.ID == id {
			f.locations = append(f.locations[:i], f.locations[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeLocationRepo) Count(ctx context.Context) (uint64, error) {
	return uint64(len(f.locations)), nil
}

type fakeModelRepo struct {
	models   []entities.AssetModel
	allCalls int
}

func (f *fakeModelRepo) All(ctx context.Context) ([]entities.AssetModel, error) {
	f.allCalls++
	return f.models, nil
}

func (f *fakeModelRepo) FindByID(ctx context.Context, id string) (*entities.AssetModel, error) {
	for _, m := range f.models {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeModelRepo) FindByIDs(ctx context.Context, ids []string) (map[string]entities.AssetModel, error) {
	out := make(map[string]entities.AssetModel)
	for _, id := range ids {
		for _, m := range f.models {
			if m.ID == id {
				out[id] = m
			}
		}
	}
	return out, nil
}

func (f *fakeModelRepo) Create(ctx context.Context, payload dto.CreateAssetModelDTO) (*entities.AssetModel, error) {
	m := entities.AssetModel{ID: "model-new", AssetMake: payload.AssetMake, AssetModel: payload.AssetModel, AssetType: payload.AssetType}
	f.models = append(f.models, m)
	return &m, nil
}

type fakeStatusRepo struct {
	statuses []entities.AssetStatus
	allCalls int
}

func (f *fakeStatusRepo) All(ctx context.Context) ([]entities.AssetStatus, error) {
	f.allCalls++
	return f.statuses, nil
}

func (f *fakeStatusRepo) FindByID(ctx context.Context, id string) (*entities.AssetStatus, error) {
	for _, s := range f.statuses {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeStatusRepo) FindByName(ctx context.Context, name string) (*entities.AssetStatus, error) {
	for _, s := range f.statuses {
		if s.StatusName == name {
			return &s, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeStatusRepo) Create(ctx context.Context, payload dto.CreateAssetStatusDTO) (*entities.AssetStatus, error) {
	s := entities.AssetStatus{ID: "status-new", StatusName: payload.StatusName}
	f.statuses = append(f.statuses, s)
	return &s, nil
}

type fakeUserRepo struct {
	users    []*entities.User
	allCalls int
}

func (f *fakeUserRepo) GetUsers(ctx context.Context, isActive *bool) ([]*entities.User, error) {
	f.allCalls++
	if isActive == nil {
		return f.users, nil
	}
	out := make([]*entities.User, 0)
	for _, u := range f.users {
		if u.IsActive == *isActive {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) FindUserByID(ctx context.Context, id string) (*entities.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) FindByIDs(ctx context.Context, ids []string) (map[string]*entities.User, error) {
	out := make(map[string]*entities.User)
	for _, id := range ids {
		for _, u := range f.users {
			if u.ID == id {
				out[id] = u
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, payload dto.CreateUserDTO, passwordHash string) (*entities.User, error) {
	u := &entities.User{
		ID:           "user-new",
		Name:         payload.Name,
		Email:        payload.Email,
		PasswordHash: passwordHash,
		Role:         payload.Role,
		IsActive:     true,
		LocationID:   types.NewRefPtr(payload.LocationID),
		CreatedAt:    time.Now(),
	}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, id string, payload dto.UpdateUserDTO) (*entities.User, error) {
	return f.FindUserByID(ctx, id)
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id string) error {
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) Count(ctx context.Context) (uint64, error) {
	return uint64(len(f.users)), nil
}

type fakeAssetRepo struct {
	assets  map[string]*entities.Asset
	created int

	appliedAssetID    string
	appliedToUser     *types.Ref
	appliedToLocation *types.Ref

	existsByLocation bool
	existsByUser     bool
}

func newFakeAssetRepo(assets ...*entities.Asset) *fakeAssetRepo {
	byID := make(map[string]*entities.Asset)
	for _, a := range assets {
		byID[a.ID] = a
	}
	return &fakeAssetRepo{assets: byID}
}

func (f *fakeAssetRepo) GetAssets(ctx context.Context, filter types.Filter) ([]*entities.Asset, uint64, error) {
	out := make([]*entities.Asset, 0, len(f.assets))
	for _, a := range f.assets {
		out = append(out, a)
	}
	return out, uint64(len(out)), nil
}

func (f *fakeAssetRepo) FindAsset(ctx context.Context, id string) (*entities.Asset, error) {
	if a, ok := f.assets[id]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAssetNotFound
}

func (f *fakeAssetRepo) FindByIDs(ctx context.Context, ids []string) (map[string]*entities.Asset, error) {
	out := make(map[string]*entities.Asset)
	for _, id := range ids {
		if a, ok := f.assets[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (f *fakeAssetRepo) CreateAsset(ctx context.Context, payload dto.CreateAssetDTO) (*entities.Asset, error) {
	for _, a := range f.assets {
		if a.SerialNo == payload.SerialNo || a.TagNo == payload.TagNo {
			return nil, apperrors.ErrConflict
		}
	}
	f.created++
	a := &entities.Asset{
		ID:         fmt.Sprintf("asset-new-%d", f.created),
		SerialNo:   payload.SerialNo,
		TagNo:      payload.TagNo,
		BaseEntity: types.BaseEntity{CreatedAt: time.Now()},
	}
	f.assets[a.ID] = a
	return a, nil
}

func (f *fakeAssetRepo) UpdateAsset(ctx context.Context, id string, payload dto.UpdateAssetDTO) (*entities.Asset, error) {
	return f.FindAsset(ctx, id)
}

func (f *fakeAssetRepo) DeleteAsset(ctx context.Context, id string) error {
	if _, ok := f.assets[id]; !ok {
		return apperrors.ErrAssetNotFound
	}
	delete(f.assets, id)
	return nil
}

func (f *fakeAssetRepo) ApplyTransferInTx(ctx context.Context, tx pgx.Tx, assetID string, toUser, toLocation *types.Ref) error {
	f.appliedAssetID = assetID
	f.appliedToUser = toUser
	f.appliedToLocation = toLocation
	if a, ok := f.assets[assetID]; ok {
		if toUser != nil {
			a.AssignedUserID = toUser
		}
		if toLocation != nil {
			a.LocationID = toLocation
		}
	}
	return nil
}

func (f *fakeAssetRepo) ExistsByLocation(ctx context.Context, locationID string) (bool, error) {
	return f.existsByLocation, nil
}

func (f *fakeAssetRepo) ExistsByAssignedUser(ctx context.Context, userID string) (bool, error) {
	return f.existsByUser, nil
}

func (f *fakeAssetRepo) GetByAssignedUser(ctx context.Context, userID string) ([]*entities.Asset, error) {
	out := make([]*entities.Asset, 0)
	for _, a := range f.assets {
		if a.AssignedUserID != nil && a.AssignedUserID.String() == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssetRepo) GetByLocation(ctx context.Context, locationID string) ([]*entities.Asset, error) {
	out := make([]*entities.Asset, 0)
	for _, a := range f.assets {
		if a.LocationID != nil && a.LocationID.String() == locationID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssetRepo) GetWarrantyExpiring(ctx context.Context, from, until time.Time) ([]*entities.Asset, error) {
	out := make([]*entities.Asset, 0)
	for _, a := range f.assets {
		if a.WarrantyExpiry == nil {
			continue
		}
		if a.WarrantyExpiry.Before(from) || a.WarrantyExpiry.After(until) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WarrantyExpiry.Before(*out[j].WarrantyExpiry) })
	return out, nil
}

func (f *fakeAssetRepo) RecentlyCreated(ctx context.Context, since time.Time, limit int) ([]*entities.Asset, error) {
	out := make([]*entities.Asset, 0)
	for _, a := range f.assets {
		if a.CreatedAt.Before(since) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeTransferRepo struct {
	transfers map[string]*entities.Transfer

	// markOK and completeOK simulate losing a status race: the row left the
	// expected status between the service's read and its update.
	markOK     bool
	completeOK bool

	approvedID  string
	rejectedID  string
	completedID string
}

func newFakeTransferRepo(transfers ...*entities.Transfer) *fakeTransferRepo {
	byID := make(map[string]*entities.Transfer)
	for _, t := range transfers {
		byID[t.ID] = t
	}
	return &fakeTransferRepo{transfers: byID, markOK: true, completeOK: true}
}

func (f *fakeTransferRepo) GetTransfers(ctx context.Context, filter types.Filter, requesterID string) ([]*entities.Transfer, uint64, error) {
	out := make([]*entities.Transfer, 0)
	for _, t := range f.transfers {
		if requesterID != "" && t.RequesterID.String() != requesterID {
			continue
		}
		out = append(out, t)
	}
	return out, uint64(len(out)), nil
}

func (f *fakeTransferRepo) FindTransfer(ctx context.Context, id string) (*entities.Transfer, error) {
	if t, ok := f.transfers[id]; ok {
		return t, nil
	}
	return nil, apperrors.ErrTransferNotFound
}

func (f *fakeTransferRepo) CreateTransfer(ctx context.Context, t *entities.Transfer) (*entities.Transfer, error) {
	t.ID = "transfer-new"
	f.transfers[t.ID] = t
	return t, nil
}

func (f *fakeTransferRepo) MarkApproved(ctx context.Context, id, approverID, expectedStatus string, at time.Time) (*entities.Transfer, error) {
	t, err := f.FindTransfer(ctx, id)
	if err != nil {
		return nil, err
	}
	if !f.markOK || t.Status != expectedStatus {
		return nil, apperrors.ErrConflict
	}
	f.approvedID = id
	t.Status = "APPROVED"
	ref := types.NewRef(approverID)
	t.ApproverID = &ref
	t.ApprovedAt = &at
	return t, nil
}

func (f *fakeTransferRepo) MarkRejected(ctx context.Context, id, approverID, expectedStatus, reason string) (*entities.Transfer, error) {
	t, err := f.FindTransfer(ctx, id)
	if err != nil {
		return nil, err
	}
	if !f.markOK || t.Status != expectedStatus {
		return nil, apperrors.ErrConflict
	}
	f.rejectedID = id
	t.Status = "REJECTED"
	ref := types.NewRef(approverID)
	t.ApproverID = &ref
	t.RejectionReason = reason
	return t, nil
}

func (f *fakeTransferRepo) CompleteInTx(ctx context.Context, tx pgx.Tx, id, approverID, expectedStatus string, at time.Time) (bool, error) {
	if !f.completeOK {
		return false, nil
	}
	t, err := f.FindTransfer(ctx, id)
	if err != nil {
		return false, err
	}
	if t.Status != expectedStatus {
		return false, nil
	}
	f.completedID = id
	t.Status = "COMPLETED"
	ref := types.NewRef(approverID)
	t.ApproverID = &ref
	t.CompletedAt = &at
	return true, nil
}

func (f *fakeTransferRepo) SetNotes(ctx context.Context, id, notes string) error {
	t, err := f.FindTransfer(ctx, id)
	if err != nil {
		return err
	}
	t.Notes = notes
	return nil
}

func (f *fakeTransferRepo) CountByStatus(ctx context.Context, status string) (uint64, error) {
	var n uint64
	for _, t := range f.transfers {
		if t.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeTransferRepo) Recent(ctx context.Context, limit int) ([]*entities.Transfer, error) {
	out := make([]*entities.Transfer, 0, len(f.transfers))
	for _, t := range f.transfers {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.After(out[j].RequestedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeTransferRepo) MonthlyCounts(ctx context.Context, since time.Time) ([]dto.MonthlyTransferCountDTO, error) {
	counts := make(map[[2]int]uint64)
	for _, t := range f.transfers {
		if t.RequestedAt.Before(since) {
			continue
		}
		key := [2]int{t.RequestedAt.Year(), int(t.RequestedAt.Month())}
		counts[key]++
	}
	out := make([]dto.MonthlyTransferCountDTO, 0, len(counts))
	for key, n := range counts {
		out = append(out, dto.MonthlyTransferCountDTO{Year: key[0], Month: key[1], TransferCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	f.calls++
	return fn(nil)
}

type fakeStatsInvalidator struct {
	calls int
	err   error
}

func (f *fakeStatsInvalidator) InvalidateStats(ctx context.Context) error {
	f.calls++
	return f.err
}
