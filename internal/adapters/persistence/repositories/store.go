package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles every repository over one database handle.
// Inside Atomic the handle is the open transaction, so all repositories share it.
type Store struct {
	db *gorm.DB

	Users            UserRepository
	RefreshTokens    RefreshTokenRepository
	Members          *MemberRepository
	Accounts         *SavingsAccountRepository
	Loans            *LoanRepository
	Transactions     *TransactionRepository
	Shares           *ShareRepository
	Dividends        *DividendRepository
	DividendPayments *DividendPaymentRepository
	News             *NewsRepository
	FAQs             *FAQRepository
	Downloads        *DownloadRepository
	Gallery          *GalleryRepository
	Contacts         *ContactInfoRepository
	Feedback         *FeedbackRepository
	Settings         *SettingRepository
}

// NewStore creates a store over db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:               db,
		Users:            NewUserRepository(db),
		RefreshTokens:    NewRefreshTokenRepository(db),
		Members:          NewMemberRepository(db),
		Accounts:         NewSavingsAccountRepository(db),
		Loans:            NewLoanRepository(db),
		Transactions:     NewTransactionRepository(db),
		Shares:           NewShareRepository(db),
		Dividends:        NewDividendRepository(db),
		DividendPayments: NewDividendPaymentRepository(db),
		News:             NewNewsRepository(db),
		FAQs:             NewFAQRepository(db),
		Downloads:        NewDownloadRepository(db),
		Gallery:          NewGalleryRepository(db),
		Contacts:         NewContactInfoRepository(db),
		Feedback:         NewFeedbackRepository(db),
		Settings:         NewSettingRepository(db),
	}
}

// DB exposes the underlying handle (health checks, migrations)
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Atomic runs fn inside a database transaction. fn receives a Store bound to the
// transaction; returning an error rolls everything back.
func (s *Store) Atomic(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
