package services

import (
	"context"
	"log/slog"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/domain"
	"sacco-admin/internal/pkg/civil"

	"github.com/shopspring/decimal"
)

// Share service errors
var (
	ErrShareNotFound = &domain.NotFoundError{Resource: "share"}
)

// defaultShareValue is the par value of one share
var defaultShareValue = decimal.NewFromInt(100)

// ShareService manages share ownership records
type ShareService struct {
	store *repositories.Store
}

// NewShareService creates a new share service
func NewShareService(store *repositories.Store) *ShareService {
	return &ShareService{store: store}
}

// CreateShareInput represents a share purchase
type CreateShareInput struct {
	MemberID      uint             `json:"member"`
	Quantity      *int             `json:"quantity"`
	ValuePerShare *decimal.Decimal `json:"value_per_share"`
	PurchaseDate  *civil.Date      `json:"purchase_date"`
	IsActive      *bool            `json:"is_active"`
}

// UpdateShareInput represents share edits; total_value follows quantity and value_per_share
type UpdateShareInput struct {
	Quantity      *int             `json:"quantity"`
	ValuePerShare *decimal.Decimal `json:"value_per_share"`
	PurchaseDate  *civil.Date      `json:"purchase_date"`
	IsActive      *bool            `json:"is_active"`
}

func shareTotal(quantity int, value decimal.Decimal) decimal.Decimal {
	return money(value.Mul(decimal.NewFromInt(int64(quantity))))
}

func validateShare(quantity int, value decimal.Decimal) error {
	if quantity < 1 {
		return domain.Invalid("quantity", "must be at least 1")
	}
	if !value.IsPositive() {
		return domain.Invalid("value_per_share", "must be greater than zero")
	}
	return nil
}

func (s *ShareService) Create(ctx context.Context, input *CreateShareInput) (*models.Share, error) {
	if _, err := s.store.Members.GetByID(ctx, input.MemberID); err != nil {
		return nil, notFound(err, ErrMemberNotFound)
	}

	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	value := defaultShareValue
	if input.ValuePerShare != nil {
		value = money(*input.ValuePerShare)
	}
	if err := validateShare(quantity, value); err != nil {
		return nil, err
	}

	purchased := today()
	if input.PurchaseDate != nil {
		purchased = input.PurchaseDate.Time
	}

	share := &models.Share{
		MemberID:      input.MemberID,
		Quantity:      quantity,
		ValuePerShare: value,
		TotalValue:    shareTotal(quantity, value),
		PurchaseDate:  purchased,
		IsActive:      input.IsActive == nil || *input.IsActive,
	}
	if err := s.store.Shares.Create(ctx, share); err != nil {
		return nil, err
	}

	slog.Info("Shares issued", "share", share.ShareNumber, "member_id", share.MemberID, "quantity", quantity)
	return s.Get(ctx, share.ID)
}

func (s *ShareService) Get(ctx context.Context, id uint) (*models.Share, error) {
	share, err := s.store.Shares.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrShareNotFound)
	}
	return share, nil
}

func (s *ShareService) List(ctx context.Context, filter repositories.ShareFilter, offset, limit int) ([]*models.Share, int64, error) {
	return s.store.Shares.List(ctx, filter, offset, limit)
}

func (s *ShareService) Update(ctx context.Context, id uint, input *UpdateShareInput) (*models.Share, error) {
	share, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Quantity != nil {
		share.Quantity = *input.Quantity
	}
	if input.ValuePerShare != nil {
		share.ValuePerShare = money(*input.ValuePerShare)
	}
	if err := validateShare(share.Quantity, share.ValuePerShare); err != nil {
		return nil, err
	}
	share.TotalValue = shareTotal(share.Quantity, share.ValuePerShare)

	if input.PurchaseDate != nil {
		share.PurchaseDate = input.PurchaseDate.Time
	}
	if input.IsActive != nil {
		share.IsActive = *input.IsActive
	}

	member := share.Member
	share.Member = nil
	if err := s.store.Shares.Update(ctx, share); err != nil {
		return nil, err
	}
	share.Member = member
	return share, nil
}

func (s *ShareService) Delete(ctx context.Context, id uint) error {
	return notFound(s.store.Shares.Delete(ctx, id), ErrShareNotFound)
}
