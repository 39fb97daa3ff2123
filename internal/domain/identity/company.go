package identity

import (
	"strings"
	"time"

	"github.com/bulky/backend/internal/domain/shared"
)

// Company represents an organization purchasing on deferred billing terms.
// Company-role accounts reference one company and inherit its terms.
type Company struct {
	shared.BaseAggregateRoot
	Name          string `gorm:"type:varchar(200);not null;uniqueIndex"`
	PhoneNumber   string `gorm:"type:varchar(30)"`
	StreetAddress string `gorm:"type:varchar(200)"`
	City          string `gorm:"type:varchar(100)"`
	State         string `gorm:"type:varchar(100)"`
	PostalCode    string `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a new company
func NewCompany(name, phone, street, city, state, postalCode string) (*Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot exceed 200 characters")
	}

	return &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		PhoneNumber:       strings.TrimSpace(phone),
		StreetAddress:     strings.TrimSpace(street),
		City:              strings.TrimSpace(city),
		State:             strings.TrimSpace(state),
		PostalCode:        strings.TrimSpace(postalCode),
	}, nil
}

// Update replaces the company's details
func (c *Company) Update(name, phone, street, city, state, postalCode string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot exceed 200 characters")
	}

	c.Name = name
	c.PhoneNumber = strings.TrimSpace(phone)
	c.StreetAddress = strings.TrimSpace(street)
	c.City = strings.TrimSpace(city)
	c.State = strings.TrimSpace(state)
	c.PostalCode = strings.TrimSpace(postalCode)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}
