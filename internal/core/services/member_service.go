package services

import (
	"context"
	"fmt"
	"log/slog"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/domain"
	"sacco-admin/internal/pkg/civil"

	"github.com/shopspring/decimal"
)

// Member service errors
var (
	ErrMemberNotFound      = &domain.NotFoundError{Resource: "member"}
	ErrMemberAlreadyExists = fmt.Errorf("user already has a member profile: %w", domain.ErrDuplicateEntry)
)

// recentTransactionsLimit caps the member transaction history view
const recentTransactionsLimit = 50

// MemberService manages the member registry
type MemberService struct {
	store *repositories.Store
}

// NewMemberService creates a new member service
func NewMemberService(store *repositories.Store) *MemberService {
	return &MemberService{store: store}
}

// CreateMemberInput represents create member input
type CreateMemberInput struct {
	UserID                uint                `json:"user"`
	MembershipDate        *civil.Date         `json:"membership_date"`
	Status                string              `json:"status"`
	EmergencyContactName  *string             `json:"emergency_contact_name"`
	EmergencyContactPhone *string             `json:"emergency_contact_phone"`
	EmploymentStatus      *string             `json:"employment_status"`
	EmployerName          *string             `json:"employer_name"`
	MonthlyIncome         decimal.NullDecimal `json:"monthly_income"`
}

// UpdateMemberInput represents update member input; the membership number is not editable
type UpdateMemberInput struct {
	MembershipDate        *civil.Date         `json:"membership_date"`
	Status                *string             `json:"status"`
	EmergencyContactName  *string             `json:"emergency_contact_name"`
	EmergencyContactPhone *string             `json:"emergency_contact_phone"`
	EmploymentStatus      *string             `json:"employment_status"`
	EmployerName          *string             `json:"employer_name"`
	MonthlyIncome         decimal.NullDecimal `json:"monthly_income"`
}

// Create attaches a member profile to an existing user
func (s *MemberService) Create(ctx context.Context, input *CreateMemberInput) (*models.Member, error) {
	if _, err := s.store.Users.GetByID(ctx, input.UserID); err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	exists, err := s.store.Members.ExistsByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrMemberAlreadyExists
	}

	status := domain.MemberStatus(input.Status)
	if status == "" {
		status = domain.MemberStatusActive
	}
	if !status.IsValid() {
		return nil, domain.Invalid("status", "must be active, inactive or suspended")
	}

	joined := today()
	if input.MembershipDate != nil {
		joined = input.MembershipDate.Time
	}

	member := &models.Member{
		UserID:                input.UserID,
		MembershipDate:        joined,
		Status:                string(status),
		EmergencyContactName:  input.EmergencyContactName,
		EmergencyContactPhone: input.EmergencyContactPhone,
		EmploymentStatus:      input.EmploymentStatus,
		EmployerName:          input.EmployerName,
		MonthlyIncome:         input.MonthlyIncome,
	}
	if err := s.store.Members.Create(ctx, member); err != nil {
		return nil, err
	}

	slog.Info("Member registered", "member_id", member.MembershipNo, "user_id", member.UserID)
	return s.Get(ctx, member.ID)
}

func (s *MemberService) Get(ctx context.Context, id uint) (*models.Member, error) {
	member, err := s.store.Members.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrMemberNotFound)
	}
	return member, nil
}

func (s *MemberService) List(ctx context.Context, filter repositories.MemberFilter, offset, limit int) ([]*models.Member, int64, error) {
	return s.store.Members.List(ctx, filter, offset, limit)
}

// Update edits profile fields
func (s *MemberService) Update(ctx context.Context, id uint, input *UpdateMemberInput) (*models.Member, error) {
	member, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		if !domain.MemberStatus(*input.Status).IsValid() {
			return nil, domain.Invalid("status", "must be active, inactive or suspended")
		}
		member.Status = *input.Status
	}
	if input.MembershipDate != nil {
		member.MembershipDate = input.MembershipDate.Time
	}
	if input.EmergencyContactName != nil {
		member.EmergencyContactName = input.EmergencyContactName
	}
	if input.EmergencyContactPhone != nil {
		member.EmergencyContactPhone = input.EmergencyContactPhone
	}
	if input.EmploymentStatus != nil {
		member.EmploymentStatus = input.EmploymentStatus
	}
	if input.EmployerName != nil {
		member.EmployerName = input.EmployerName
	}
	if input.MonthlyIncome.Valid {
		member.MonthlyIncome = input.MonthlyIncome
	}

	if err := s.store.Members.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Delete removes the member and cascades to every financial record it owns
func (s *MemberService) Delete(ctx context.Context, id uint) error {
	err := s.store.Atomic(ctx, func(tx *repositories.Store) error {
		return tx.Members.Delete(ctx, id)
	})
	if err != nil {
		return notFound(err, ErrMemberNotFound)
	}
	slog.Info("Member deleted", "id", id)
	return nil
}

// Accounts lists a member's savings accounts
func (s *MemberService) Accounts(ctx context.Context, id uint) ([]*models.SavingsAccount, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.store.Accounts.ListByMember(ctx, id)
}

// Loans lists a member's loans
func (s *MemberService) Loans(ctx context.Context, id uint) ([]*models.Loan, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.store.Loans.ListByMember(ctx, id)
}

// Transactions returns the member's latest ledger entries, newest first
func (s *MemberService) Transactions(ctx context.Context, id uint) ([]*models.Transaction, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.store.Transactions.ListByMember(ctx, id, recentTransactionsLimit)
}
