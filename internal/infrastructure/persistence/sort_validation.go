package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC,
// falling back to the given default for anything else.
func ValidateSortOrder(orderDir, defaultDir string) string {
	switch strings.ToUpper(strings.TrimSpace(orderDir)) {
	case "ASC":
		return "ASC"
	case "DESC":
		return "DESC"
	}
	return defaultDir
}

// ValidateSortField validates the sort field against a whitelist of
// allowed columns. Returns the defaultField if the input is empty or
// not in the whitelist. Caller-supplied sort fields must never reach
// the ORDER BY clause unvalidated.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// AccountSortFields contains allowed sort fields for accounts
var AccountSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"email":      true,
	"name":       true,
	"role":       true,
}

// CompanySortFields contains allowed sort fields for companies
var CompanySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"city":       true,
	"state":      true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"title":       true,
	"author":      true,
	"isbn":        true,
	"list_price":  true,
	"price":       true,
	"category_id": true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"order_date":     true,
	"shipping_date":  true,
	"total":          true,
	"status":         true,
	"payment_status": true,
}
