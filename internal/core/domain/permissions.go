package domain

// Capability names a guarded group of operations
type Capability string

const (
	CapManageUsers    Capability = "manage_users"
	CapManageMembers  Capability = "manage_members"
	CapManageLedger   Capability = "manage_ledger" // accounts, loans, transactions, shares, dividends
	CapManageContent  Capability = "manage_content"
	CapManageFeedback Capability = "manage_feedback"
	CapManageSettings Capability = "manage_settings"
	CapViewDashboard  Capability = "view_dashboard"
)

var (
	adminRoles   = []Role{RoleAdmin, RoleManager}
	financeRoles = []Role{RoleAdmin, RoleManager, RoleFinanceOfficer}
)

var capabilityRoles = map[Capability][]Role{
	CapManageUsers:    adminRoles,
	CapManageMembers:  adminRoles,
	CapManageLedger:   financeRoles,
	CapManageContent:  adminRoles,
	CapManageFeedback: adminRoles,
	CapManageSettings: adminRoles,
	CapViewDashboard:  adminRoles,
}

// Can reports whether a caller holding role may perform operations guarded by capability.
// Unknown capabilities are denied.
func Can(role Role, capability Capability) bool {
	for _, r := range capabilityRoles[capability] {
		if r == role {
			return true
		}
	}
	return false
}
