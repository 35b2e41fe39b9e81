package domain

// Role represents user role in the system
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleManager        Role = "manager"
	RoleFinanceOfficer Role = "finance_officer"
	RoleMember         Role = "member"
)

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleFinanceOfficer, RoleMember:
		return true
	}
	return false
}

// MemberStatus represents the standing of a SACCO member
type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "active"
	MemberStatusInactive  MemberStatus = "inactive"
	MemberStatusSuspended MemberStatus = "suspended"
)

func (s MemberStatus) IsValid() bool {
	return s == MemberStatusActive || s == MemberStatusInactive || s == MemberStatusSuspended
}

// AccountType represents the kind of savings account
type AccountType string

const (
	AccountTypeRegular   AccountType = "regular"
	AccountTypeFixed     AccountType = "fixed"
	AccountTypeEmergency AccountType = "emergency"
)

func (t AccountType) IsValid() bool {
	return t == AccountTypeRegular || t == AccountTypeFixed || t == AccountTypeEmergency
}

// LoanType represents the purpose category of a loan
type LoanType string

const (
	LoanTypePersonal  LoanType = "personal"
	LoanTypeBusiness  LoanType = "business"
	LoanTypeEmergency LoanType = "emergency"
	LoanTypeEducation LoanType = "education"
)

func (t LoanType) IsValid() bool {
	switch t {
	case LoanTypePersonal, LoanTypeBusiness, LoanTypeEmergency, LoanTypeEducation:
		return true
	}
	return false
}

// LoanStatus represents a loan's position in its lifecycle
type LoanStatus string

const (
	LoanStatusPending   LoanStatus = "pending"   // Application received
	LoanStatusApproved  LoanStatus = "approved"  // Approved, not yet paid out
	LoanStatusActive    LoanStatus = "active"    // Disbursed, repayments open
	LoanStatusCompleted LoanStatus = "completed" // Fully repaid
	LoanStatusDefaulted LoanStatus = "defaulted" // Past due with balance outstanding
	LoanStatusRejected  LoanStatus = "rejected"  // Application declined
)

var loanTransitions = map[LoanStatus][]LoanStatus{
	LoanStatusPending:  {LoanStatusApproved, LoanStatusRejected},
	LoanStatusApproved: {LoanStatusActive},
	LoanStatusActive:   {LoanStatusCompleted, LoanStatusDefaulted},
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next
func (s LoanStatus) CanTransitionTo(next LoanStatus) bool {
	for _, allowed := range loanTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible
func (s LoanStatus) IsTerminal() bool {
	return len(loanTransitions[s]) == 0
}

func (s LoanStatus) IsValid() bool {
	switch s {
	case LoanStatusPending, LoanStatusApproved, LoanStatusActive,
		LoanStatusCompleted, LoanStatusDefaulted, LoanStatusRejected:
		return true
	}
	return false
}

// TransactionType represents the kind of balance-affecting event
type TransactionType string

const (
	TxTypeDeposit          TransactionType = "deposit"
	TxTypeWithdrawal       TransactionType = "withdrawal"
	TxTypeLoanDisbursement TransactionType = "loan_disbursement"
	TxTypeLoanPayment      TransactionType = "loan_payment"
	TxTypeInterest         TransactionType = "interest"
	TxTypeFee              TransactionType = "fee"
	TxTypeTransfer         TransactionType = "transfer"
)

// FeedbackStatus represents the handling state of customer feedback
type FeedbackStatus string

const (
	FeedbackStatusNew        FeedbackStatus = "new"
	FeedbackStatusInProgress FeedbackStatus = "in_progress"
	FeedbackStatusResolved   FeedbackStatus = "resolved"
	FeedbackStatusClosed     FeedbackStatus = "closed"
)

func (s FeedbackStatus) IsValid() bool {
	switch s {
	case FeedbackStatusNew, FeedbackStatusInProgress, FeedbackStatusResolved, FeedbackStatusClosed:
		return true
	}
	return false
}

// FileType represents the category of a downloadable document
type FileType string

const (
	FileTypeFinancialReport FileType = "financial_report"
	FileTypePolicy          FileType = "policy"
	FileTypeForm            FileType = "form"
	FileTypeGuide           FileType = "guide"
	FileTypeOther           FileType = "other"
)

// Branch identifies a SACCO office for contact info
type Branch string

const (
	BranchMain Branch = "main"
	Branch1    Branch = "branch1"
	Branch2    Branch = "branch2"
	Branch3    Branch = "branch3"
)

// SettingType groups system settings
type SettingType string

const (
	SettingTypeGeneral   SettingType = "general"
	SettingTypeFinancial SettingType = "financial"
	SettingTypeEmail     SettingType = "email"
	SettingTypeSecurity  SettingType = "security"
)
