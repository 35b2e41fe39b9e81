package models

import (
	"time"

	"sacco-admin/internal/pkg/refno"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Member Registry
// ============================================================

// Member is the SACCO profile attached one-to-one to a user
type Member struct {
	ID                    uint                `gorm:"primaryKey" json:"id"`
	UserID                uint                `gorm:"uniqueIndex;not null" json:"user_id"`
	MembershipNo          string              `gorm:"column:member_id;uniqueIndex;size:20;not null" json:"member_id"`
	MembershipDate        time.Time           `gorm:"type:date;not null" json:"membership_date"`
	Status                string              `gorm:"size:20;not null;default:'active'" json:"status"`
	EmergencyContactName  *string             `gorm:"size:100" json:"emergency_contact_name"`
	EmergencyContactPhone *string             `gorm:"size:15" json:"emergency_contact_phone"`
	EmploymentStatus      *string             `gorm:"size:50" json:"employment_status"`
	EmployerName          *string             `gorm:"size:100" json:"employer_name"`
	MonthlyIncome         decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"monthly_income"`
	CreatedAt             time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time           `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (Member) TableName() string {
	return "members"
}

// BeforeCreate assigns the membership number once; it is never regenerated
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.MembershipNo == "" {
		m.MembershipNo = refno.New(refno.PrefixMember, 8)
	}
	return nil
}

// FullName returns the member's display name when the user is loaded
func (m *Member) FullName() string {
	if m.User == nil {
		return ""
	}
	return m.User.FullName()
}

// ============================================================
// Account Ledger
// ============================================================

// SavingsAccount holds a member's savings balance
type SavingsAccount struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	MemberID      uint            `gorm:"not null;index" json:"member"`
	AccountNumber string          `gorm:"uniqueIndex;size:20;not null" json:"account_number"`
	AccountType   string          `gorm:"size:20;not null;default:'regular'" json:"account_type"`
	Balance       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"balance"`
	InterestRate  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:5" json:"interest_rate"`
	IsActive      bool            `gorm:"not null" json:"is_active"`
	Version       int64           `gorm:"not null;default:1" json:"-"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Member *Member `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SavingsAccount) TableName() string {
	return "savings_accounts"
}

func (a *SavingsAccount) BeforeCreate(tx *gorm.DB) error {
	if a.AccountNumber == "" {
		a.AccountNumber = refno.New(refno.PrefixAccount, 12)
	}
	return nil
}

// SavingsAccountResponse DTO
type SavingsAccountResponse struct {
	*SavingsAccount
	MemberName string `json:"member_name"`
}

func (a *SavingsAccount) ToResponse() *SavingsAccountResponse {
	resp := &SavingsAccountResponse{SavingsAccount: a}
	if a.Member != nil {
		resp.MemberName = a.Member.FullName()
	}
	return resp
}

// ============================================================
// Loan Engine
// ============================================================

// Loan is a member's loan application and, once disbursed, its repayment state
type Loan struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	MemberID         uint            `gorm:"not null;index" json:"member"`
	LoanNumber       string          `gorm:"uniqueIndex;size:20;not null" json:"loan_number"`
	LoanType         string          `gorm:"size:20;not null" json:"loan_type"`
	Amount           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	InterestRate     decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	TermMonths       int             `gorm:"not null" json:"term_months"`
	MonthlyPayment   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monthly_payment"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	RemainingBalance decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"remaining_balance"`
	Status           string          `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ApplicationDate  time.Time       `gorm:"type:date;not null" json:"application_date"`
	ApprovalDate     *time.Time      `gorm:"type:date" json:"approval_date"`
	DisbursementDate *time.Time      `gorm:"type:date" json:"disbursement_date"`
	DueDate          *time.Time      `gorm:"type:date;index" json:"due_date"`
	Purpose          string          `gorm:"type:text;not null" json:"purpose"`
	GuarantorName    *string         `gorm:"size:100" json:"guarantor_name"`
	GuarantorPhone   *string         `gorm:"size:15" json:"guarantor_phone"`
	Version          int64           `gorm:"not null;default:1" json:"-"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Member *Member `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Loan) TableName() string {
	return "loans"
}

func (l *Loan) BeforeCreate(tx *gorm.DB) error {
	if l.LoanNumber == "" {
		l.LoanNumber = refno.New(refno.PrefixLoan, 12)
	}
	return nil
}

// LoanResponse DTO
type LoanResponse struct {
	*Loan
	MemberName string `json:"member_name"`
}

func (l *Loan) ToResponse() *LoanResponse {
	resp := &LoanResponse{Loan: l}
	if l.Member != nil {
		resp.MemberName = l.Member.FullName()
	}
	return resp
}

// ============================================================
// Transaction Ledger
// ============================================================

// Transaction is an immutable ledger record of a balance-affecting event
type Transaction struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	TransactionID    string          `gorm:"uniqueIndex;size:20;not null" json:"transaction_id"`
	MemberID         uint            `gorm:"not null;index" json:"member"`
	TransactionType  string          `gorm:"size:20;not null;index" json:"transaction_type"`
	Amount           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description      string          `gorm:"type:text;not null" json:"description"`
	ReferenceNumber  *string         `gorm:"size:50" json:"reference_number"`
	SavingsAccountID *uint           `gorm:"index" json:"savings_account"`
	LoanID           *uint           `gorm:"index" json:"loan"`
	BalanceAfter     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance_after"`
	PerformedBy      *uint           `json:"performed_by"`
	IPAddress        string          `gorm:"size:50" json:"ip_address,omitempty"`
	CreatedAt        time.Time       `gorm:"autoCreateTime;index" json:"created_at"`

	// Relations
	Member         *Member         `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"-"`
	SavingsAccount *SavingsAccount `gorm:"foreignKey:SavingsAccountID;constraint:OnDelete:CASCADE" json:"-"`
	Loan           *Loan           `gorm:"foreignKey:LoanID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.TransactionID == "" {
		t.TransactionID = refno.New(refno.PrefixTransaction, 16)
	}
	return nil
}

// TransactionResponse DTO
type TransactionResponse struct {
	*Transaction
	MemberName string `json:"member_name"`
}

func (t *Transaction) ToResponse() *TransactionResponse {
	resp := &TransactionResponse{Transaction: t}
	if t.Member != nil {
		resp.MemberName = t.Member.FullName()
	}
	return resp
}

// ============================================================
// Shares & Dividends
// ============================================================

// Share records a member's ownership of cooperative shares
type Share struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	MemberID      uint            `gorm:"not null;index" json:"member"`
	ShareNumber   string          `gorm:"uniqueIndex;size:20;not null" json:"share_number"`
	Quantity      int             `gorm:"not null;default:1" json:"quantity"`
	ValuePerShare decimal.Decimal `gorm:"type:decimal(10,2);not null;default:100" json:"value_per_share"`
	TotalValue    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_value"`
	PurchaseDate  time.Time       `gorm:"type:date;not null" json:"purchase_date"`
	IsActive      bool            `gorm:"not null;index" json:"is_active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Member *Member `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Share) TableName() string {
	return "shares"
}

func (s *Share) BeforeCreate(tx *gorm.DB) error {
	if s.ShareNumber == "" {
		s.ShareNumber = refno.New(refno.PrefixShare, 12)
	}
	return nil
}

// ShareResponse DTO
type ShareResponse struct {
	*Share
	MemberName string `json:"member_name"`
}

func (s *Share) ToResponse() *ShareResponse {
	resp := &ShareResponse{Share: s}
	if s.Member != nil {
		resp.MemberName = s.Member.FullName()
	}
	return resp
}

// Dividend declares a per-share payout for a financial year
type Dividend struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Year            int             `gorm:"not null;index" json:"year"`
	AmountPerShare  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount_per_share"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	DeclarationDate time.Time       `gorm:"type:date;not null" json:"declaration_date"`
	PaymentDate     *time.Time      `gorm:"type:date" json:"payment_date"`
	IsPaid          bool            `gorm:"not null" json:"is_paid"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Dividend) TableName() string {
	return "dividends"
}

// DividendPayment is the per-member materialization of a dividend
type DividendPayment struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	DividendID  uint            `gorm:"not null;uniqueIndex:idx_dividend_member" json:"dividend"`
	MemberID    uint            `gorm:"not null;uniqueIndex:idx_dividend_member" json:"member"`
	SharesOwned int             `gorm:"not null" json:"shares_owned"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	IsPaid      bool            `gorm:"not null" json:"is_paid"`
	PaymentDate *time.Time      `gorm:"type:date" json:"payment_date"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Dividend *Dividend `gorm:"foreignKey:DividendID;constraint:OnDelete:CASCADE" json:"-"`
	Member   *Member   `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"-"`
}

func (DividendPayment) TableName() string {
	return "dividend_payments"
}

// DividendPaymentResponse DTO
type DividendPaymentResponse struct {
	*DividendPayment
	MemberName   string `json:"member_name"`
	DividendYear int    `json:"dividend_year,omitempty"`
}

func (p *DividendPayment) ToResponse() *DividendPaymentResponse {
	resp := &DividendPaymentResponse{DividendPayment: p}
	if p.Member != nil {
		resp.MemberName = p.Member.FullName()
	}
	if p.Dividend != nil {
		resp.DividendYear = p.Dividend.Year
	}
	return resp
}
