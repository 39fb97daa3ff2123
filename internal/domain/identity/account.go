package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/bulky/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// Account represents a storefront account. It is the aggregate root for
// authentication and profile operations. An account carries exactly one
// role; company buyers additionally reference the company they purchase
// on behalf of.
type Account struct {
	shared.BaseAggregateRoot
	Email          string     `gorm:"type:varchar(256);not null;uniqueIndex"`
	PasswordHash   string     `gorm:"type:varchar(100);not null"`
	Name           string     `gorm:"type:varchar(200);not null"`
	PhoneNumber    string     `gorm:"type:varchar(30)"`
	StreetAddress  string     `gorm:"type:varchar(200)"`
	City           string     `gorm:"type:varchar(100)"`
	State          string     `gorm:"type:varchar(100)"`
	PostalCode     string     `gorm:"type:varchar(20)"`
	Role           Role       `gorm:"type:varchar(20);not null"`
	CompanyID      *uuid.UUID `gorm:"type:uuid"`
	Company        *Company   `gorm:"foreignKey:CompanyID"`
	FailedAttempts int        `gorm:"not null;default:0"`
	LockedUntil    *time.Time ``
	LastLoginAt    *time.Time ``
}

// TableName returns the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// NewAccount creates a new account with a hashed password
func NewAccount(email, password, name string, role Role) (*Account, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      passwordHash,
		Name:              name,
		Role:              role,
	}, nil
}

// AssignCompany links the account to a company. Only company-role
// accounts may carry a company reference.
func (a *Account) AssignCompany(companyID uuid.UUID) error {
	if a.Role != RoleCompany {
		return shared.NewDomainError("INVALID_ROLE", "Only company accounts can be linked to a company")
	}
	if companyID == uuid.Nil {
		return shared.NewDomainError("INVALID_COMPANY_ID", "Company ID cannot be empty")
	}

	a.CompanyID = &companyID
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// ChangeRole switches the account to a different role. Leaving the
// company role clears the company link.
func (a *Account) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	a.Role = role
	if role != RoleCompany {
		a.CompanyID = nil
	}
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// UpdateProfile updates the account's name and address fields
func (a *Account) UpdateProfile(name, phone, street, city, state, postalCode string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(phone) > 30 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 30 characters")
	}

	a.Name = name
	a.PhoneNumber = strings.TrimSpace(phone)
	a.StreetAddress = strings.TrimSpace(street)
	a.City = strings.TrimSpace(city)
	a.State = strings.TrimSpace(state)
	a.PostalCode = strings.TrimSpace(postalCode)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// ChangePassword changes the password after verifying the current one
func (a *Account) ChangePassword(oldPassword, newPassword string) error {
	if !a.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return a.SetPassword(newPassword)
}

// SetPassword sets a new password without checking the old one
func (a *Account) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	a.PasswordHash = passwordHash
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// VerifyPassword verifies if the provided password matches
func (a *Account) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	return err == nil
}

// RecordLoginSuccess resets the failure counter and stamps the login time
func (a *Account) RecordLoginSuccess() {
	now := time.Now()
	a.LastLoginAt = &now
	a.FailedAttempts = 0
	a.LockedUntil = nil
	a.UpdatedAt = now
	a.IncrementVersion()
}

// RecordLoginFailure counts a failed attempt and locks the account once
// the threshold is reached. Returns true if the account got locked.
func (a *Account) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	a.FailedAttempts++
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	if a.FailedAttempts >= maxAttempts {
		lockedUntil := time.Now().Add(lockDuration)
		a.LockedUntil = &lockedUntil
		return true
	}

	return false
}

// Unlock clears an active lockout
func (a *Account) Unlock() {
	a.FailedAttempts = 0
	a.LockedUntil = nil
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// IsLocked returns true while a lockout is in effect
func (a *Account) IsLocked() bool {
	return a.LockedUntil != nil && time.Now().Before(*a.LockedUntil)
}

// IsCompanyBuyer reports whether orders from this account use deferred
// company billing
func (a *Account) IsCompanyBuyer() bool {
	return a.Role == RoleCompany && a.CompanyID != nil
}

// ShippingName returns the account name used to prefill order shipping
func (a *Account) ShippingName() string {
	return a.Name
}

// Validation functions

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 256 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 256 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
