package services

import (
	"context"
	"fmt"
	"log/slog"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/domain"
	"sacco-admin/internal/pkg/metrics"

	"github.com/shopspring/decimal"
)

// Account service errors
var (
	ErrAccountNotFound = &domain.NotFoundError{Resource: "savings account"}
)

// AccountService manages savings accounts and posts deposits and withdrawals
type AccountService struct {
	store      *repositories.Store
	metrics    *metrics.Metrics
	maxRetries int
}

// NewAccountService creates a new account service
func NewAccountService(store *repositories.Store, m *metrics.Metrics, maxRetries int) *AccountService {
	return &AccountService{store: store, metrics: m, maxRetries: maxRetries}
}

// CreateAccountInput represents create savings account input.
// Balance is not accepted: it only moves through Deposit and Withdraw.
type CreateAccountInput struct {
	MemberID     uint             `json:"member"`
	AccountType  string           `json:"account_type"`
	InterestRate *decimal.Decimal `json:"interest_rate"`
	IsActive     *bool            `json:"is_active"`
}

// UpdateAccountInput represents update savings account input
type UpdateAccountInput struct {
	AccountType  *string          `json:"account_type"`
	InterestRate *decimal.Decimal `json:"interest_rate"`
	IsActive     *bool            `json:"is_active"`
}

// BalanceChange is the outcome of a posted deposit or withdrawal
type BalanceChange struct {
	Account     *models.SavingsAccount
	Transaction *models.Transaction
}

// Create opens a savings account for a member
func (s *AccountService) Create(ctx context.Context, input *CreateAccountInput) (*models.SavingsAccount, error) {
	if _, err := s.store.Members.GetByID(ctx, input.MemberID); err != nil {
		return nil, notFound(err, ErrMemberNotFound)
	}

	accountType := domain.AccountType(input.AccountType)
	if accountType == "" {
		accountType = domain.AccountTypeRegular
	}
	if !accountType.IsValid() {
		return nil, domain.Invalid("account_type", "must be regular, fixed or emergency")
	}

	rate := decimal.NewFromInt(5)
	if input.InterestRate != nil {
		if input.InterestRate.IsNegative() {
			return nil, domain.Invalid("interest_rate", "must not be negative")
		}
		rate = *input.InterestRate
	}

	account := &models.SavingsAccount{
		MemberID:     input.MemberID,
		AccountType:  string(accountType),
		Balance:      decimal.Zero,
		InterestRate: rate,
		IsActive:     input.IsActive == nil || *input.IsActive,
	}
	if err := s.store.Accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	slog.Info("Savings account opened", "account", account.AccountNumber, "member_id", account.MemberID)
	return s.Get(ctx, account.ID)
}

func (s *AccountService) Get(ctx context.Context, id uint) (*models.SavingsAccount, error) {
	account, err := s.store.Accounts.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrAccountNotFound)
	}
	return account, nil
}

func (s *AccountService) List(ctx context.Context, filter repositories.AccountFilter, offset, limit int) ([]*models.SavingsAccount, int64, error) {
	return s.store.Accounts.List(ctx, filter, offset, limit)
}

// Update edits account metadata. The write is versioned so it never clobbers a concurrent posting.
func (s *AccountService) Update(ctx context.Context, id uint, input *UpdateAccountInput) (*models.SavingsAccount, error) {
	if input.AccountType != nil && !domain.AccountType(*input.AccountType).IsValid() {
		return nil, domain.Invalid("account_type", "must be regular, fixed or emergency")
	}
	if input.InterestRate != nil && input.InterestRate.IsNegative() {
		return nil, domain.Invalid("interest_rate", "must not be negative")
	}

	var account *models.SavingsAccount
	err := withRetry(ctx, s.maxRetries, s.metrics, "savings_account", func() error {
		var err error
		account, err = s.store.Accounts.GetByID(ctx, id)
		if err != nil {
			return notFound(err, ErrAccountNotFound)
		}
		if input.AccountType != nil {
			account.AccountType = *input.AccountType
		}
		if input.InterestRate != nil {
			account.InterestRate = *input.InterestRate
		}
		if input.IsActive != nil {
			account.IsActive = *input.IsActive
		}
		return s.store.Accounts.Update(ctx, account)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Delete closes an account and removes its ledger entries
func (s *AccountService) Delete(ctx context.Context, id uint) error {
	err := s.store.Atomic(ctx, func(tx *repositories.Store) error {
		return tx.Accounts.Delete(ctx, id)
	})
	return notFound(err, ErrAccountNotFound)
}

// Deposit credits amount to the account and appends a deposit entry in the same DB transaction
func (s *AccountService) Deposit(ctx context.Context, accountID uint, amount decimal.Decimal, actor Actor) (*BalanceChange, error) {
	change, err := s.post(ctx, accountID, amount, actor, domain.TxTypeDeposit,
		func(balance decimal.Decimal) (decimal.Decimal, error) {
			return balance.Add(amount), nil
		})
	s.metrics.LedgerOp("deposit", outcome(err))
	return change, err
}

// Withdraw debits amount when the balance covers it and appends a withdrawal entry
func (s *AccountService) Withdraw(ctx context.Context, accountID uint, amount decimal.Decimal, actor Actor) (*BalanceChange, error) {
	change, err := s.post(ctx, accountID, amount, actor, domain.TxTypeWithdrawal,
		func(balance decimal.Decimal) (decimal.Decimal, error) {
			if amount.GreaterThan(balance) {
				return balance, domain.ErrInsufficientFunds
			}
			return balance.Sub(amount), nil
		})
	s.metrics.LedgerOp("withdraw", outcome(err))
	return change, err
}

// post applies a balance mutation and its ledger entry atomically, retrying on version conflicts
func (s *AccountService) post(
	ctx context.Context,
	accountID uint,
	amount decimal.Decimal,
	actor Actor,
	txType domain.TransactionType,
	apply func(balance decimal.Decimal) (decimal.Decimal, error),
) (*BalanceChange, error) {
	if err := requirePositive(amount); err != nil {
		return nil, err
	}
	amount = money(amount)

	var change *BalanceChange
	err := withRetry(ctx, s.maxRetries, s.metrics, "savings_account", func() error {
		return s.store.Atomic(ctx, func(tx *repositories.Store) error {
			account, err := tx.Accounts.GetByID(ctx, accountID)
			if err != nil {
				return notFound(err, ErrAccountNotFound)
			}

			balance, err := apply(account.Balance)
			if err != nil {
				return err
			}
			account.Balance = balance
			if err := tx.Accounts.Update(ctx, account); err != nil {
				return err
			}

			entry := &models.Transaction{
				MemberID:         account.MemberID,
				TransactionType:  string(txType),
				Amount:           amount,
				Description:      describePosting(txType, account.AccountNumber),
				SavingsAccountID: &account.ID,
				BalanceAfter:     account.Balance,
				PerformedBy:      actor.performedBy(),
				IPAddress:        actor.IPAddress,
			}
			if err := tx.Transactions.Create(ctx, entry); err != nil {
				return err
			}
			entry.Member = account.Member

			change = &BalanceChange{Account: account, Transaction: entry}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Ledger posting",
		"type", txType,
		"account", change.Account.AccountNumber,
		"amount", amount.StringFixed(2),
		"balance_after", change.Account.Balance.StringFixed(2),
		"transaction_id", change.Transaction.TransactionID,
	)
	return change, nil
}

func describePosting(txType domain.TransactionType, accountNumber string) string {
	if txType == domain.TxTypeWithdrawal {
		return fmt.Sprintf("Withdrawal from %s", accountNumber)
	}
	return fmt.Sprintf("Deposit to %s", accountNumber)
}
