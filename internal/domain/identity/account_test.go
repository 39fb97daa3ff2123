package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	t.Run("creates account with hashed password", func(t *testing.T) {
		account, err := NewAccount("Buyer@Example.COM", "correct-horse", "Jo Buyer", RoleCustomer)
		require.NoError(t, err)

		assert.Equal(t, "buyer@example.com", account.Email)
		assert.Equal(t, "Jo Buyer", account.Name)
		assert.Equal(t, RoleCustomer, account.Role)
		assert.NotEqual(t, "correct-horse", account.PasswordHash)
		assert.True(t, account.VerifyPassword("correct-horse"))
		assert.False(t, account.VerifyPassword("wrong"))
		assert.False(t, account.IsCompanyBuyer())
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewAccount("not-an-email", "correct-horse", "Jo", RoleCustomer)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Email")
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewAccount("a@b.com", "short", "Jo", RoleCustomer)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewAccount("a@b.com", "correct-horse", "  ", RoleCustomer)
		require.Error(t, err)
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		_, err := NewAccount("a@b.com", "correct-horse", "Jo", Role("SUPERVISOR"))
		require.Error(t, err)
	})
}

func TestAccountAssignCompany(t *testing.T) {
	t.Run("links company account", func(t *testing.T) {
		account, err := NewAccount("a@b.com", "correct-horse", "Jo", RoleCompany)
		require.NoError(t, err)

		companyID := uuid.New()
		require.NoError(t, account.AssignCompany(companyID))
		require.NotNil(t, account.CompanyID)
		assert.Equal(t, companyID, *account.CompanyID)
		assert.True(t, account.IsCompanyBuyer())
	})

	t.Run("rejects company link on customer account", func(t *testing.T) {
		account, err := NewAccount("a@b.com", "correct-horse", "Jo", RoleCustomer)
		require.NoError(t, err)
		require.Error(t, account.AssignCompany(uuid.New()))
	})

	t.Run("role change away from company clears the link", func(t *testing.T) {
		account, err := NewAccount("a@b.com", "correct-horse", "Jo", RoleCompany)
		require.NoError(t, err)
		require.NoError(t, account.AssignCompany(uuid.New()))

		require.NoError(t, account.ChangeRole(RoleCustomer))
		assert.Nil(t, account.CompanyID)
		assert.False(t, account.IsCompanyBuyer())
	})
}

func TestAccountLockout(t *testing.T) {
	newAccount := func(t *testing.T) *Account {
		account, err := NewAccount("a@b.com", "correct-horse", "Jo", RoleCustomer)
		require.NoError(t, err)
		return account
	}

	t.Run("locks after max failed attempts", func(t *testing.T) {
		account := newAccount(t)

		assert.False(t, account.RecordLoginFailure(3, time.Minute))
		assert.False(t, account.RecordLoginFailure(3, time.Minute))
		assert.True(t, account.RecordLoginFailure(3, time.Minute))
		assert.True(t, account.IsLocked())
	})

	t.Run("successful login resets the counter", func(t *testing.T) {
		account := newAccount(t)
		account.RecordLoginFailure(3, time.Minute)
		account.RecordLoginFailure(3, time.Minute)

		account.RecordLoginSuccess()
		assert.Equal(t, 0, account.FailedAttempts)
		assert.False(t, account.IsLocked())
		require.NotNil(t, account.LastLoginAt)
	})

	t.Run("expired lock no longer blocks", func(t *testing.T) {
		account := newAccount(t)
		past := time.Now().Add(-time.Minute)
		account.LockedUntil = &past
		assert.False(t, account.IsLocked())
	})

	t.Run("unlock clears the lockout", func(t *testing.T) {
		account := newAccount(t)
		account.RecordLoginFailure(1, time.Hour)
		require.True(t, account.IsLocked())

		account.Unlock()
		assert.False(t, account.IsLocked())
		assert.Equal(t, 0, account.FailedAttempts)
	})
}

func TestAccountChangePassword(t *testing.T) {
	account, err := NewAccount("a@b.com", "correct-horse", "Jo", RoleCustomer)
	require.NoError(t, err)

	t.Run("rejects wrong current password", func(t *testing.T) {
		require.Error(t, account.ChangePassword("wrong", "new-password-1"))
	})

	t.Run("changes with correct current password", func(t *testing.T) {
		require.NoError(t, account.ChangePassword("correct-horse", "new-password-1"))
		assert.True(t, account.VerifyPassword("new-password-1"))
		assert.False(t, account.VerifyPassword("correct-horse"))
	})
}

func TestRequesterContext(t *testing.T) {
	ownerID := uuid.New()

	t.Run("staff can access any order", func(t *testing.T) {
		admin := RequesterContext{AccountID: uuid.New(), Role: RoleAdmin}
		employee := RequesterContext{AccountID: uuid.New(), Role: RoleEmployee}

		assert.True(t, admin.IsAdmin())
		assert.True(t, admin.CanAccessOrder(ownerID))
		assert.False(t, employee.IsAdmin())
		assert.True(t, employee.IsStaff())
		assert.True(t, employee.CanAccessOrder(ownerID))
	})

	t.Run("buyers can access only their own orders", func(t *testing.T) {
		owner := RequesterContext{AccountID: ownerID, Role: RoleCustomer}
		stranger := RequesterContext{AccountID: uuid.New(), Role: RoleCustomer}

		assert.True(t, owner.CanAccessOrder(ownerID))
		assert.False(t, stranger.CanAccessOrder(ownerID))
	})
}

func TestNewCompany(t *testing.T) {
	t.Run("creates company", func(t *testing.T) {
		company, err := NewCompany(" Acme Books ", "555-0100", "1 Main St", "Springfield", "IL", "62701")
		require.NoError(t, err)
		assert.Equal(t, "Acme Books", company.Name)
		assert.Equal(t, "Springfield", company.City)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCompany("", "", "", "", "", "")
		require.Error(t, err)
	})

	t.Run("update replaces details", func(t *testing.T) {
		company, err := NewCompany("Acme Books", "", "", "", "", "")
		require.NoError(t, err)

		require.NoError(t, company.Update("Acme Holdings", "555-0101", "2 Oak Ave", "Shelbyville", "IL", "62565"))
		assert.Equal(t, "Acme Holdings", company.Name)
		assert.Equal(t, 2, company.GetVersion())
	})
}
