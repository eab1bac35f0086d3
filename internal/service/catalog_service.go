package service

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/shop-admin-service/internal/auth"
	"github.com/spec-kit/shop-admin-service/internal/cache"
	"github.com/spec-kit/shop-admin-service/internal/domain"
	"github.com/spec-kit/shop-admin-service/internal/events"
	"github.com/spec-kit/shop-admin-service/internal/repository"
	apperrors "github.com/spec-kit/shop-admin-service/pkg/util"
)

// CatalogService manages products and the read-only category listing.
type CatalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	listings   ListingCache
	dispatcher events.Dispatcher
}

// CatalogDependencies bundles requirements for the catalog service.
type CatalogDependencies struct {
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	Listings     ListingCache
	Dispatcher   events.Dispatcher
}

// ProductInput describes the product form fields. Price arrives as a string
// so no precision is lost before decimal parsing.
type ProductInput struct {
	Name        string
	Description string
	Price       string
	Stock       int
	CategoryID  string
	Images      []string
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{
		products:   deps.ProductRepo,
		categories: deps.CategoryRepo,
		listings:   deps.Listings,
		dispatcher: deps.Dispatcher,
	}
}

// ListProducts returns the product listing, cached. Visible to every role.
func (s *CatalogService) ListProducts(ctx context.Context, actor auth.Context) ([]domain.Product, error) {
	if !auth.Allow(actor.Role, auth.ActionViewProducts) {
		return nil, apperrors.NewUnauthorized("viewing products is not permitted")
	}

	var cached []domain.Product
	if s.listings != nil && s.listings.Get(ctx, cache.KeyProducts, &cached) {
		return cached, nil
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if s.listings != nil {
		s.listings.Set(ctx, cache.KeyProducts, products)
	}
	return products, nil
}

// GetProduct fetches one product.
func (s *CatalogService) GetProduct(ctx context.Context, actor auth.Context, id string) (*domain.Product, error) {
	if !auth.Allow(actor.Role, auth.ActionViewProducts) {
		return nil, apperrors.NewUnauthorized("viewing products is not permitted")
	}
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// ListCategories returns all categories, cached.
func (s *CatalogService) ListCategories(ctx context.Context, actor auth.Context) ([]domain.Category, error) {
	if !auth.Allow(actor.Role, auth.ActionViewProducts) {
		return nil, apperrors.NewUnauthorized("viewing categories is not permitted")
	}

	var cached []domain.Category
	if s.listings != nil && s.listings.Get(ctx, cache.KeyCategories, &cached) {
		return cached, nil
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if s.listings != nil {
		s.listings.Set(ctx, cache.KeyCategories, categories)
	}
	return categories, nil
}

// CreateProduct validates and persists a new product. ADMIN and above.
func (s *CatalogService) CreateProduct(ctx context.Context, actor auth.Context, input ProductInput) (*domain.Product, error) {
	if !auth.Allow(actor.Role, auth.ActionCreateProduct) {
		return nil, apperrors.NewUnauthorized("users cannot create products")
	}

	price, err := s.validateProduct(ctx, input)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       price,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
		Images:      normalizeImages(input.Images),
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventProductCreated, product.ID, actor)
	return product, nil
}

// UpdateProduct validates and persists changes to an existing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, actor auth.Context, id string, input ProductInput) (*domain.Product, error) {
	if !auth.Allow(actor.Role, auth.ActionUpdateProduct) {
		return nil, apperrors.NewUnauthorized("users cannot update products")
	}

	price, err := s.validateProduct(ctx, input)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Price:       price,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
		Images:      normalizeImages(input.Images),
	}
	if err := s.products.Update(ctx, product); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventProductUpdated, id, actor)
	return product, nil
}

// DeleteProduct removes a product.
func (s *CatalogService) DeleteProduct(ctx context.Context, actor auth.Context, id string) error {
	if !auth.Allow(actor.Role, auth.ActionDeleteProduct) {
		return apperrors.NewUnauthorized("users cannot delete products")
	}

	if err := s.products.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.EventProductDeleted, id, actor)
	return nil
}

// validateProduct enforces the product schema and returns the parsed price.
// All violations are collected into one field -> message map.
func (s *CatalogService) validateProduct(ctx context.Context, input ProductInput) (decimal.Decimal, error) {
	details := map[string]any{}

	if input.Name == "" {
		details["name"] = "name is required"
	}
	if input.Description == "" {
		details["description"] = "description is required"
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		details["price"] = "price must be a decimal number"
	} else if !price.IsPositive() {
		details["price"] = "price must be greater than 0"
	}

	if input.Stock < 0 {
		details["stock"] = "stock cannot be negative"
	}

	if input.CategoryID == "" {
		details["category_id"] = "please select a category"
	} else if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
		if err == pgx.ErrNoRows {
			details["category_id"] = "category does not exist"
		} else {
			return decimal.Zero, apperrors.MapError(err)
		}
	}

	for _, image := range input.Images {
		if u, err := url.ParseRequestURI(image); err != nil || u.Host == "" {
			details["images"] = "images must be absolute URLs"
			break
		}
	}

	if len(details) > 0 {
		return decimal.Zero, apperrors.NewValidationError("invalid product input", details)
	}
	return price, nil
}

func (s *CatalogService) publish(ctx context.Context, eventType events.EventType, resourceID string, actor auth.Context) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ResourceID: resourceID,
		Actor:      events.Actor{UserID: actor.UserID, Role: actor.Role},
		Timestamp:  time.Now(),
	})
}

func normalizeImages(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}
