package identity

import "github.com/google/uuid"

// RequesterContext identifies who is performing an operation. Services
// receive it explicitly; handlers build it from the verified token.
type RequesterContext struct {
	AccountID uuid.UUID
	Role      Role
}

// IsAdmin reports whether the requester holds the admin role
func (r RequesterContext) IsAdmin() bool {
	return r.Role == RoleAdmin
}

// IsStaff reports whether the requester holds a back-office role
func (r RequesterContext) IsStaff() bool {
	return r.Role.IsStaff()
}

// Owns reports whether the requester is the given account
func (r RequesterContext) Owns(accountID uuid.UUID) bool {
	return r.AccountID == accountID
}

// CanAccessOrder reports whether the requester may read an order owned
// by the given account: staff see everything, buyers see their own.
func (r RequesterContext) CanAccessOrder(ownerID uuid.UUID) bool {
	return r.IsStaff() || r.Owns(ownerID)
}
