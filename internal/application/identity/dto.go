package identity

import (
	"time"

	"github.com/bulky/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// ==================== Auth DTOs ====================

// RegisterRequest represents a request to create an account
type RegisterRequest struct {
	Email         string     `json:"email" binding:"required,email"`
	Password      string     `json:"password" binding:"required,min=8,max=72"`
	Name          string     `json:"name" binding:"required,min=1,max=200"`
	PhoneNumber   string     `json:"phone_number" binding:"omitempty,max=30"`
	StreetAddress string     `json:"street_address" binding:"omitempty,max=200"`
	City          string     `json:"city" binding:"omitempty,max=100"`
	State         string     `json:"state" binding:"omitempty,max=100"`
	PostalCode    string     `json:"postal_code" binding:"omitempty,max=20"`
	Role          string     `json:"role" binding:"omitempty,oneof=ADMIN EMPLOYEE CUSTOMER COMPANY"`
	CompanyID     *uuid.UUID `json:"company_id"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries the refresh token to exchange
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AccountInfo is the account block returned with auth results
type AccountInfo struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
}

// AuthResult is returned from login, register and refresh
type AuthResult struct {
	AccessToken           string      `json:"access_token"`
	RefreshToken          string      `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time   `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time   `json:"refresh_token_expires_at"`
	TokenType             string      `json:"token_type"`
	Account               AccountInfo `json:"account"`
}

// ToAccountInfo converts an account to its auth info representation
func ToAccountInfo(account *identity.Account) AccountInfo {
	return AccountInfo{
		ID:        account.ID,
		Email:     account.Email,
		Name:      account.Name,
		Role:      account.Role.String(),
		CompanyID: account.CompanyID,
	}
}

// ==================== Account DTOs ====================

// UpdateProfileRequest represents a profile update
type UpdateProfileRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	PhoneNumber   string `json:"phone_number" binding:"omitempty,max=30"`
	StreetAddress string `json:"street_address" binding:"omitempty,max=200"`
	City          string `json:"city" binding:"omitempty,max=100"`
	State         string `json:"state" binding:"omitempty,max=100"`
	PostalCode    string `json:"postal_code" binding:"omitempty,max=20"`
}

// ChangePasswordRequest represents a password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// ChangeRoleRequest switches an account's role
type ChangeRoleRequest struct {
	Role      string     `json:"role" binding:"required,oneof=ADMIN EMPLOYEE CUSTOMER COMPANY"`
	CompanyID *uuid.UUID `json:"company_id"`
}

// AccountListFilter represents filter options for the account list
type AccountListFilter struct {
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,oneof=ADMIN EMPLOYEE CUSTOMER COMPANY"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	PhoneNumber   string     `json:"phone_number,omitempty"`
	StreetAddress string     `json:"street_address,omitempty"`
	City          string     `json:"city,omitempty"`
	State         string     `json:"state,omitempty"`
	PostalCode    string     `json:"postal_code,omitempty"`
	Role          string     `json:"role"`
	CompanyID     *uuid.UUID `json:"company_id,omitempty"`
	Company       string     `json:"company,omitempty"`
	Locked        bool       `json:"locked"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToAccountResponse converts an account to its response representation
func ToAccountResponse(account *identity.Account) AccountResponse {
	resp := AccountResponse{
		ID:            account.ID,
		Email:         account.Email,
		Name:          account.Name,
		PhoneNumber:   account.PhoneNumber,
		StreetAddress: account.StreetAddress,
		City:          account.City,
		State:         account.State,
		PostalCode:    account.PostalCode,
		Role:          account.Role.String(),
		CompanyID:     account.CompanyID,
		Locked:        account.IsLocked(),
		LastLoginAt:   account.LastLoginAt,
		CreatedAt:     account.CreatedAt,
	}
	if account.Company != nil {
		resp.Company = account.Company.Name
	}
	return resp
}

// AccountListResponse is a paginated list of accounts
type AccountListResponse struct {
	Items      []AccountResponse `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// ==================== Company DTOs ====================

// CreateCompanyRequest represents a request to create a company
type CreateCompanyRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	PhoneNumber   string `json:"phone_number" binding:"omitempty,max=30"`
	StreetAddress string `json:"street_address" binding:"omitempty,max=200"`
	City          string `json:"city" binding:"omitempty,max=100"`
	State         string `json:"state" binding:"omitempty,max=100"`
	PostalCode    string `json:"postal_code" binding:"omitempty,max=20"`
}

// UpdateCompanyRequest represents a request to update a company
type UpdateCompanyRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	PhoneNumber   string `json:"phone_number" binding:"omitempty,max=30"`
	StreetAddress string `json:"street_address" binding:"omitempty,max=200"`
	City          string `json:"city" binding:"omitempty,max=100"`
	State         string `json:"state" binding:"omitempty,max=100"`
	PostalCode    string `json:"postal_code" binding:"omitempty,max=20"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	PhoneNumber   string    `json:"phone_number,omitempty"`
	StreetAddress string    `json:"street_address,omitempty"`
	City          string    `json:"city,omitempty"`
	State         string    `json:"state,omitempty"`
	PostalCode    string    `json:"postal_code,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToCompanyResponse converts a company to its response representation
func ToCompanyResponse(company *identity.Company) CompanyResponse {
	return CompanyResponse{
		ID:            company.ID,
		Name:          company.Name,
		PhoneNumber:   company.PhoneNumber,
		StreetAddress: company.StreetAddress,
		City:          company.City,
		State:         company.State,
		PostalCode:    company.PostalCode,
		CreatedAt:     company.CreatedAt,
	}
}

// CompanyListResponse is a paginated list of companies
type CompanyListResponse struct {
	Items      []CompanyResponse `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}
