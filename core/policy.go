package core

// LoanCategory selects the renewal and overdue rules applied to a loan.
type LoanCategory string

const (
	// LoanCategoryStandard is the default category.
	LoanCategoryStandard LoanCategory = "standard"

	// LoanCategoryPriority grants extra grace days before a loan becomes overdue.
	LoanCategoryPriority LoanCategory = "priority"

	// LoanCategoryAcademic allows more renewals.
	LoanCategoryAcademic LoanCategory = "academic"

	// LoanCategoryRestricted disallows renewals and becomes overdue one day early.
	LoanCategoryRestricted LoanCategory = "restricted"
)

// LoanPolicy is the set of rules attached to a loan through its category.
type LoanPolicy struct {
	MaxRenewals     int
	ExtraGraceDays  int
	RenewalsAllowed bool
}

var loanPolicies = map[LoanCategory]LoanPolicy{
	LoanCategoryStandard:   {MaxRenewals: MaxRenewals, ExtraGraceDays: 0, RenewalsAllowed: true},
	LoanCategoryPriority:   {MaxRenewals: MaxRenewals, ExtraGraceDays: 7, RenewalsAllowed: true},
	LoanCategoryAcademic:   {MaxRenewals: 5, ExtraGraceDays: 0, RenewalsAllowed: true},
	LoanCategoryRestricted: {MaxRenewals: 0, ExtraGraceDays: -1, RenewalsAllowed: false},
}

// PolicyFor returns the policy of the given category, falling back to the standard policy.
func PolicyFor(category LoanCategory) LoanPolicy {
	if policy, ok := loanPolicies[category]; ok {
		return policy
	}

	return loanPolicies[LoanCategoryStandard]
}

// IsValid reports whether c is a known category. The empty category is not valid.
func (c LoanCategory) IsValid() bool {
	_, ok := loanPolicies[c]
	return ok
}

// Role is the role of a user in the library.
type Role string

const (
	RoleReader        Role = "READER"
	RoleLibrarian     Role = "LIBRARIAN"
	RoleAdministrator Role = "ADMIN"
)

// RolePolicy holds the borrowing limits of a role.
type RolePolicy struct {
	MaxActiveLoans int
}

var rolePolicies = map[Role]RolePolicy{
	RoleReader:        {MaxActiveLoans: MaxActiveLoans},
	RoleLibrarian:     {MaxActiveLoans: 5},
	RoleAdministrator: {MaxActiveLoans: 5},
}

// RolePolicyFor returns the policy of the given role, falling back to the reader policy.
func RolePolicyFor(role Role) RolePolicy {
	if policy, ok := rolePolicies[role]; ok {
		return policy
	}

	return rolePolicies[RoleReader]
}
