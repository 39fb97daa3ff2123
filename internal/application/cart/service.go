package cart

import (
	"context"
	"errors"

	"github.com/bulky/backend/internal/domain/cart"
	"github.com/bulky/backend/internal/domain/catalog"
	"github.com/bulky/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service handles shopping cart operations. All operations act on the
// requesting account's own cart.
type Service struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
}

// NewService creates a new cart Service
func NewService(cartRepo cart.Repository, productRepo catalog.ProductRepository) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Get returns the account's cart with per-line tier pricing applied
func (s *Service) Get(ctx context.Context, accountID uuid.UUID) (*CartResponse, error) {
	lines, err := s.cartRepo.FindAllByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	resp := &CartResponse{
		Lines: make([]CartLineResponse, 0, len(lines)),
		Total: decimal.Zero,
	}
	for i := range lines {
		lineResp, err := ToCartLineResponse(&lines[i])
		if err != nil {
			return nil, err
		}
		resp.Lines = append(resp.Lines, lineResp)
		resp.Total = resp.Total.Add(lineResp.LineTotal)
	}
	return resp, nil
}

// Add puts a product into the account's cart. Adding a product already
// in the cart merges quantities into the existing line.
func (s *Service) Add(ctx context.Context, accountID uuid.UUID, req AddToCartRequest) (*CartResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.FindByAccountAndProduct(ctx, accountID, req.ProductID)
	switch {
	case err == nil:
		if err := existing.AddQuantity(req.Quantity); err != nil {
			return nil, err
		}
		if err := s.cartRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		line, err := cart.NewCartLine(accountID, req.ProductID, req.Quantity)
		if err != nil {
			return nil, err
		}
		if err := s.cartRepo.Save(ctx, line); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.Get(ctx, accountID)
}

// Increment adds one unit to a cart line owned by the account
func (s *Service) Increment(ctx context.Context, accountID, lineID uuid.UUID) (*CartResponse, error) {
	line, err := s.ownedLine(ctx, accountID, lineID)
	if err != nil {
		return nil, err
	}

	if err := line.Increment(); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, line); err != nil {
		return nil, err
	}

	return s.Get(ctx, accountID)
}

// Decrement removes one unit from a cart line. Decrementing a line at
// quantity one removes the line entirely.
func (s *Service) Decrement(ctx context.Context, accountID, lineID uuid.UUID) (*CartResponse, error) {
	line, err := s.ownedLine(ctx, accountID, lineID)
	if err != nil {
		return nil, err
	}

	if removed := line.Decrement(); removed {
		if err := s.cartRepo.Delete(ctx, line.ID); err != nil {
			return nil, err
		}
	} else {
		if err := s.cartRepo.Save(ctx, line); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, accountID)
}

// Remove deletes a cart line owned by the account
func (s *Service) Remove(ctx context.Context, accountID, lineID uuid.UUID) (*CartResponse, error) {
	line, err := s.ownedLine(ctx, accountID, lineID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.Delete(ctx, line.ID); err != nil {
		return nil, err
	}

	return s.Get(ctx, accountID)
}

// Clear empties the account's cart
func (s *Service) Clear(ctx context.Context, accountID uuid.UUID) error {
	return s.cartRepo.DeleteAllByAccount(ctx, accountID)
}

func (s *Service) ownedLine(ctx context.Context, accountID, lineID uuid.UUID) (*cart.CartLine, error) {
	line, err := s.cartRepo.FindByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if !line.BelongsTo(accountID) {
		return nil, shared.ErrForbidden
	}
	return line, nil
}
