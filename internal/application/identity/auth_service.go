package identity

import (
	"context"
	"time"

	"github.com/bulky/backend/internal/domain/identity"
	"github.com/bulky/backend/internal/domain/shared"
	"github.com/bulky/backend/internal/infrastructure/auth"
	"github.com/bulky/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	accountRepo identity.AccountRepository
	companyRepo identity.CompanyRepository
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
	cfg         config.AuthConfig
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	accountRepo identity.AccountRepository,
	companyRepo identity.CompanyRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	cfg config.AuthConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		companyRepo: companyRepo,
		jwtService:  jwtService,
		blacklist:   blacklist,
		cfg:         cfg,
		logger:      logger,
	}
}

// Register creates a new account and signs it in. Self-registration only
// grants the customer and company roles; staff roles come from an admin.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	role := identity.RoleCustomer
	if req.Role != "" {
		role = identity.Role(req.Role)
	}
	if role.IsStaff() {
		return nil, shared.NewDomainError("FORBIDDEN", "Staff accounts cannot self-register")
	}

	exists, err := s.accountRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	account, err := identity.NewAccount(req.Email, req.Password, req.Name, role)
	if err != nil {
		return nil, err
	}
	if err := account.UpdateProfile(req.Name, req.PhoneNumber, req.StreetAddress, req.City, req.State, req.PostalCode); err != nil {
		return nil, err
	}

	if role == identity.RoleCompany {
		if req.CompanyID == nil {
			return nil, shared.NewDomainError("INVALID_COMPANY_ID", "Company accounts must name their company")
		}
		if _, err := s.companyRepo.FindByID(ctx, *req.CompanyID); err != nil {
			return nil, err
		}
		if err := account.AssignCompany(*req.CompanyID); err != nil {
			return nil, err
		}
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account registered",
		zap.String("account_id", account.ID.String()),
		zap.String("role", account.Role.String()))

	return s.issueTokens(account)
}

// Login authenticates an account and returns a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	account, err := s.accountRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Warn("login for unknown email")
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if account.IsLocked() {
		s.logger.Warn("login attempt on locked account", zap.String("account_id", account.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later")
	}

	if !account.VerifyPassword(req.Password) {
		locked := account.RecordLoginFailure(s.cfg.MaxLoginAttempts, s.cfg.LockDuration)
		if err := s.accountRepo.Save(ctx, account); err != nil {
			s.logger.Error("failed to record login failure", zap.Error(err))
		}
		if locked {
			s.logger.Warn("account locked after repeated failures",
				zap.String("account_id", account.ID.String()),
				zap.Int("attempts", s.cfg.MaxLoginAttempts))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	account.RecordLoginSuccess()
	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.logger.Error("failed to record login success", zap.Error(err))
		// Login still succeeds
	}

	s.logger.Info("account logged in", zap.String("account_id", account.ID.String()))

	return s.issueTokens(account)
}

// Refresh exchanges a valid refresh token for a fresh token pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshTokenRequest) (*AuthResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Error("blacklist check failed", zap.Error(err))
		return nil, shared.ErrUpstreamFailure
	}
	if revoked {
		return nil, shared.NewDomainError("TOKEN_REVOKED", "Refresh token has been revoked")
	}

	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Account no longer exists")
	}

	if account.IsLocked() {
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked")
	}

	pair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, account.Email, account.Role.String())
	if err != nil {
		return nil, mapTokenError(err)
	}

	return &AuthResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		Account:               ToAccountInfo(account),
	}, nil
}

// Logout revokes the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		// An invalid token has nothing left to revoke
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("failed to revoke token", zap.Error(err))
		return shared.ErrUpstreamFailure
	}

	s.logger.Info("account logged out", zap.String("account_id", claims.AccountID))
	return nil
}

func (s *AuthService) issueTokens(account *identity.Account) (*AuthResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      account.Role.String(),
	})
	if err != nil {
		s.logger.Error("failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	return &AuthResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		Account:               ToAccountInfo(account),
	}, nil
}

func mapTokenError(err error) error {
	switch err {
	case auth.ErrExpiredToken:
		return shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	case auth.ErrMaxRefreshExceeded:
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid token")
	}
}
