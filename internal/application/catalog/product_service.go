package catalog

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/bulky/backend/internal/domain/catalog"
	"github.com/bulky/backend/internal/domain/identity"
	"github.com/bulky/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// imageURLExpiry bounds how long presigned product image links stay valid
const imageURLExpiry = 15 * time.Minute

// ProductService handles catalog product operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	storage      ObjectStorage
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository, storage ObjectStorage, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		storage:      storage,
		logger:       logger,
	}
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*ProductListResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, ToProductResponse(&products[i], s.imageURL(ctx, &products[i])))
	}

	paginated := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.Limit())
	return &ProductListResponse{
		Items:      paginated.Items,
		Total:      paginated.Total,
		Page:       paginated.Page,
		PageSize:   paginated.PageSize,
		TotalPages: paginated.TotalPages,
	}, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product, s.imageURL(ctx, product))
	return &resp, nil
}

// Create creates a new product. Staff only.
func (s *ProductService) Create(ctx context.Context, requester identity.RequesterContext, req CreateProductRequest) (*ProductResponse, error) {
	if !requester.IsStaff() {
		return nil, shared.ErrForbidden
	}

	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	if existing, err := s.productRepo.FindByISBN(ctx, req.ISBN); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this ISBN already exists")
	}

	product, err := catalog.NewProduct(req.Title, req.Author, req.ISBN, catalog.ProductPrices{
		ListPrice: req.ListPrice,
		Price:     req.Price,
		Price50:   req.Price50,
		Price100:  req.Price100,
	}, req.CategoryID)
	if err != nil {
		return nil, err
	}
	product.SetDescription(strings.TrimSpace(req.Description))

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product, "")
	return &resp, nil
}

// Update updates an existing product. Staff only.
func (s *ProductService) Update(ctx context.Context, requester identity.RequesterContext, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	if !requester.IsStaff() {
		return nil, shared.ErrForbidden
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	if existing, err := s.productRepo.FindByISBN(ctx, req.ISBN); err == nil && existing != nil && existing.ID != id {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this ISBN already exists")
	}

	err = product.Update(req.Title, strings.TrimSpace(req.Description), req.Author, req.ISBN, catalog.ProductPrices{
		ListPrice: req.ListPrice,
		Price:     req.Price,
		Price50:   req.Price50,
		Price100:  req.Price100,
	}, req.CategoryID)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product, s.imageURL(ctx, product))
	return &resp, nil
}

// Delete removes a product and its stored image. Staff only.
func (s *ProductService) Delete(ctx context.Context, requester identity.RequesterContext, id uuid.UUID) error {
	if !requester.IsStaff() {
		return shared.ErrForbidden
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if product.HasImage() && s.storage != nil {
		if err := s.storage.Delete(ctx, product.ImageKey); err != nil {
			s.logger.Warn("failed to delete product image",
				zap.String("product_id", id.String()),
				zap.String("image_key", product.ImageKey),
				zap.Error(err))
		}
	}

	return s.productRepo.Delete(ctx, id)
}

// UploadImage stores a product image and records its key. Staff only.
// A previous image is replaced.
func (s *ProductService) UploadImage(ctx context.Context, requester identity.RequesterContext, id uuid.UUID, filename, contentType string, body io.Reader) (*ProductResponse, error) {
	if !requester.IsStaff() {
		return nil, shared.ErrForbidden
	}
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_UNAVAILABLE", "Image storage is not configured")
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return nil, shared.NewDomainError("INVALID_IMAGE", "Unsupported image type")
	}

	key := fmt.Sprintf("products/%s/%s%s", product.ID, uuid.New(), ext)
	if err := s.storage.Put(ctx, key, contentType, body); err != nil {
		s.logger.Error("product image upload failed",
			zap.String("product_id", id.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("UPSTREAM_FAILURE", "Image upload failed")
	}

	oldKey := product.ImageKey
	product.SetImageKey(key)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	if oldKey != "" {
		if err := s.storage.Delete(ctx, oldKey); err != nil {
			s.logger.Warn("failed to delete replaced product image",
				zap.String("image_key", oldKey),
				zap.Error(err))
		}
	}

	resp := ToProductResponse(product, s.imageURL(ctx, product))
	return &resp, nil
}

// RemoveImage deletes the product's image. Staff only.
func (s *ProductService) RemoveImage(ctx context.Context, requester identity.RequesterContext, id uuid.UUID) error {
	if !requester.IsStaff() {
		return shared.ErrForbidden
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !product.HasImage() {
		return nil
	}

	key := product.ImageKey
	product.RemoveImage()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return err
	}

	if s.storage != nil {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to delete product image",
				zap.String("image_key", key),
				zap.Error(err))
		}
	}

	return nil
}

func (s *ProductService) imageURL(ctx context.Context, product *catalog.Product) string {
	if !product.HasImage() || s.storage == nil {
		return ""
	}
	url, err := s.storage.PresignGet(ctx, product.ImageKey, imageURLExpiry)
	if err != nil {
		s.logger.Warn("failed to presign product image",
			zap.String("image_key", product.ImageKey),
			zap.Error(err))
		return ""
	}
	return url
}
