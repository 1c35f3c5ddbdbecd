package service

import (
	"context"
	"io"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront-service/internal/concurrency"
	"github.com/Cheertaboi/storefront-service/internal/models"
	"github.com/Cheertaboi/storefront-service/internal/repository"
)

type ProductStore interface {
	List(ctx context.Context, search string, offset, limit int) ([]models.Product, error)
	Count(ctx context.Context, search string) (int, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	Rename(ctx context.Context, id, name string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ImageUploader interface {
	Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error)
}

var minProductPrice = decimal.RequireFromString("0.01")

type CatalogService struct {
	products   ProductStore
	categories CategoryStore
	campaigns  ActiveCampaigns
	authz      *Authorizer
	images     ImageUploader
	log        *zap.Logger
}

// NewCatalogService wires the catalog. images may be nil when object
// storage is not configured.
func NewCatalogService(products ProductStore, categories CategoryStore, campaigns ActiveCampaigns, authz *Authorizer, images ImageUploader, log *zap.Logger) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		campaigns:  campaigns,
		authz:      authz,
		images:     images,
		log:        log,
	}
}

// ListProducts returns one page of products, newest first.
func (s *CatalogService) ListProducts(ctx context.Context, req models.PageRequest) (models.Page[models.Product], error) {
	if err := validateStruct(req); err != nil {
		return models.Page[models.Product]{}, err
	}

	var (
		items []models.Product
		total int
	)
	err := concurrency.Run(ctx, 2,
		func(ctx context.Context) error {
			var err error
			if items, err = s.products.List(ctx, req.Search, req.Offset(), req.PageSize); err != nil {
				return errors.Wrap(err, "list products")
			}
			return nil
		},
		func(ctx context.Context) error {
			var err error
			if total, err = s.products.Count(ctx, req.Search); err != nil {
				return errors.Wrap(err, "count products")
			}
			return nil
		},
	)
	if err != nil {
		return models.Page[models.Product]{}, err
	}
	return models.NewPage(items, total, req.Page, req.PageSize), nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get product")
	}
	if p == nil {
		return nil, errors.Wrapf(models.ErrNotFound, "product %s", id)
	}
	return p, nil
}

// ProductView is the product detail page: the product priced against the
// campaigns active right now.
func (s *CatalogService) ProductView(ctx context.Context, id string) (*models.ProductView, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	active, err := s.campaigns.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return &models.ProductView{Product: *p, Quote: quoteFor(*p, active)}, nil
}

// Quote prices each requested product against the active campaigns, in
// request order. An unknown id fails the whole request.
func (s *CatalogService) Quote(ctx context.Context, req models.QuoteRequest) ([]models.ProductQuote, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	products, err := s.products.ListByIDs(ctx, req.ProductIDs)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	active, err := s.campaigns.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	quotes := make([]models.ProductQuote, 0, len(req.ProductIDs))
	for _, id := range req.ProductIDs {
		p, ok := byID[id]
		if !ok {
			return nil, errors.Wrapf(models.ErrNotFound, "product %s", id)
		}
		quotes = append(quotes, quoteFor(p, active))
	}
	return quotes, nil
}

func (s *CatalogService) validateProduct(ctx context.Context, in models.ProductInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if in.Price.LessThan(minProductPrice) {
		return models.NewValidationError("price", "must be at least %s", minProductPrice)
	}
	cat, err := s.categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return errors.Wrap(err, "get category")
	}
	if cat == nil {
		return models.NewValidationError("category_id", "category does not exist")
	}
	return nil
}

func productFromInput(id string, in models.ProductInput) *models.Product {
	return &models.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Brand:       in.Brand,
		Image:       in.Image,
		CategoryID:  in.CategoryID,
	}
}

func (s *CatalogService) CreateProduct(ctx context.Context, actorID string, in models.ProductInput) (*models.Product, error) {
	if err := s.authz.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if err := s.validateProduct(ctx, in); err != nil {
		return nil, err
	}

	p := productFromInput(uuid.NewString(), in)
	if err := s.products.Create(ctx, p); err != nil {
		return nil, errors.Wrap(err, "create product")
	}
	s.log.Info("product created", zap.String("product_id", p.ID), zap.String("actor_id", actorID))
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, actorID, id string, in models.ProductInput) (*models.Product, error) {
	if err := s.authz.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if err := s.validateProduct(ctx, in); err != nil {
		return nil, err
	}

	p := productFromInput(id, in)
	ok, err := s.products.Update(ctx, p)
	if err != nil {
		return nil, errors.Wrap(err, "update product")
	}
	if !ok {
		return nil, errors.Wrapf(models.ErrNotFound, "product %s", id)
	}
	s.log.Info("product updated", zap.String("product_id", id), zap.String("actor_id", actorID))
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, actorID, id string) error {
	if err := s.authz.RequireAdmin(ctx, actorID); err != nil {
		return err
	}
	ok, err := s.products.Delete(ctx, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return errors.Wrap(models.ErrConflict, "product has been ordered")
		}
		return errors.Wrap(err, "delete product")
	}
	if !ok {
		return errors.Wrapf(models.ErrNotFound, "product %s", id)
	}
	s.log.Info("product deleted", zap.String("product_id", id), zap.String("actor_id", actorID))
	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, actorID string, in models.CategoryInput) (*models.Category, error) {
	if err := s.authz.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	c := &models.Category{ID: uuid.NewString(), Name: in.Name}
	if err := s.categories.Create(ctx, c); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, errors.Wrapf(models.ErrConflict, "category %q exists", in.Name)
		}
		return nil, errors.Wrap(err, "create category")
	}
	return c, nil
}

func (s *CatalogService) RenameCategory(ctx context.Context, actorID, id string, in models.CategoryInput) (*models.Category, error) {
	if err := s.authz.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	ok, err := s.categories.Rename(ctx, id, in.Name)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, errors.Wrapf(models.ErrConflict, "category %q exists", in.Name)
		}
		return nil, errors.Wrap(err, "rename category")
	}
	if !ok {
		return nil, errors.Wrapf(models.ErrNotFound, "category %s", id)
	}
	return &models.Category{ID: id, Name: in.Name}, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, actorID, id string) error {
	if err := s.authz.RequireAdmin(ctx, actorID); err != nil {
		return err
	}
	ok, err := s.categories.Delete(ctx, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return errors.Wrap(models.ErrConflict, "category still has products")
		}
		return errors.Wrap(err, "delete category")
	}
	if !ok {
		return errors.Wrapf(models.ErrNotFound, "category %s", id)
	}
	return nil
}

// UploadProductImage stores an image and returns the URL to put in a
// product's image field.
func (s *CatalogService) UploadProductImage(ctx context.Context, actorID string, r io.Reader, size int64, contentType string) (string, error) {
	if err := s.authz.RequireAdmin(ctx, actorID); err != nil {
		return "", err
	}
	if s.images == nil {
		return "", errors.Wrap(models.ErrUnavailable, "image storage is not configured")
	}
	url, err := s.images.Upload(ctx, r, size, contentType)
	if err != nil {
		return "", err
	}
	s.log.Info("product image uploaded", zap.String("url", url), zap.String("actor_id", actorID))
	return url, nil
}
