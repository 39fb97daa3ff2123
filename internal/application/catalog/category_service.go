package catalog

import (
	"context"

	"github.com/bulky/backend/internal/domain/catalog"
	"github.com/bulky/backend/internal/domain/identity"
	"github.com/bulky/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryService handles category management operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, productRepo catalog.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// List returns all categories ordered by display order
func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, ToCategoryResponse(&categories[i]))
	}
	return responses, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Create creates a new category. Staff only.
func (s *CategoryService) Create(ctx context.Context, requester identity.RequesterContext, req CreateCategoryRequest) (*CategoryResponse, error) {
	if !requester.IsStaff() {
		return nil, shared.ErrForbidden
	}

	if existing, err := s.categoryRepo.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists")
	}

	category, err := catalog.NewCategory(req.Name, req.DisplayOrder)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Update updates an existing category. Staff only.
func (s *CategoryService) Update(ctx context.Context, requester identity.RequesterContext, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	if !requester.IsStaff() {
		return nil, shared.ErrForbidden
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := category.Update(req.Name, req.DisplayOrder); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category that has no products. Staff only.
func (s *CategoryService) Delete(ctx context.Context, requester identity.RequesterContext, id uuid.UUID) error {
	if !requester.IsStaff() {
		return shared.ErrForbidden
	}

	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	filter := shared.DefaultFilter()
	filter.Filters["category_id"] = id
	count, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Cannot delete a category that still has products")
	}

	return s.categoryRepo.Delete(ctx, id)
}
