package identity

// Role represents the single role assigned to an account
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
	RoleCustomer Role = "CUSTOMER"
	RoleCompany  Role = "COMPANY"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleCustomer, RoleCompany:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// IsStaff reports whether the role grants back-office access
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleEmployee
}
