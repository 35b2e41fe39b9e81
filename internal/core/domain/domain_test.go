package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoanStatusTransitions(t *testing.T) {
	tests := []struct {
		name        string
		from        LoanStatus
		to          LoanStatus
		shouldAllow bool
	}{
		{"pending to approved", LoanStatusPending, LoanStatusApproved, true},
		{"pending to rejected", LoanStatusPending, LoanStatusRejected, true},
		{"pending to active", LoanStatusPending, LoanStatusActive, false},
		{"approved to active", LoanStatusApproved, LoanStatusActive, true},
		{"approved to rejected", LoanStatusApproved, LoanStatusRejected, false},
		{"active to completed", LoanStatusActive, LoanStatusCompleted, true},
		{"active to defaulted", LoanStatusActive, LoanStatusDefaulted, true},
		{"active to pending", LoanStatusActive, LoanStatusPending, false},
		{"completed to active", LoanStatusCompleted, LoanStatusActive, false},
		{"rejected to approved", LoanStatusRejected, LoanStatusApproved, false},
		{"defaulted to completed", LoanStatusDefaulted, LoanStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.shouldAllow, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestLoanStatusIsTerminal(t *testing.T) {
	terminal := map[LoanStatus]bool{
		LoanStatusPending:   false,
		LoanStatusApproved:  false,
		LoanStatusActive:    false,
		LoanStatusCompleted: true,
		LoanStatusDefaulted: true,
		LoanStatusRejected:  true,
	}
	for status, want := range terminal {
		assert.Equal(t, want, status.IsTerminal(), string(status))
	}
}

func TestCan(t *testing.T) {
	tests := []struct {
		role  Role
		cap   Capability
		allow bool
	}{
		{RoleFinanceOfficer, CapManageLedger, true},
		{RoleManager, CapManageLedger, true},
		{RoleAdmin, CapManageLedger, true},
		{RoleMember, CapManageLedger, false},
		{RoleFinanceOfficer, CapManageUsers, false},
		{RoleFinanceOfficer, CapManageContent, false},
		{RoleManager, CapManageFeedback, true},
		{RoleAdmin, CapViewDashboard, true},
		{RoleMember, CapViewDashboard, false},
		{Role("root"), CapManageUsers, false},
		{RoleAdmin, Capability("launch_rockets"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.cap), func(t *testing.T) {
			assert.Equal(t, tt.allow, Can(tt.role, tt.cap))
		})
	}
}

func TestNotFoundErrorMatchesSentinel(t *testing.T) {
	var err error = &NotFoundError{Resource: "loan"}
	assert.EqualError(t, err, "loan not found")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

func TestValidationError(t *testing.T) {
	err := Invalid("term_months", "must be positive")
	assert.EqualError(t, err, "term_months: must be positive")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.EqualError(t, Invalid("", "response text is required"), "response text is required")
}
