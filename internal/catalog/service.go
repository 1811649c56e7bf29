package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/luxuryconcept/storefront-backend/pkg/db"
	pkgerrors "github.com/luxuryconcept/storefront-backend/pkg/errors"
	"github.com/luxuryconcept/storefront-backend/pkg/logger"
)

// Service exposes catalog reads and admin catalog management.
type Service interface {
	ListProducts(ctx context.Context) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id int64) (*ProductDTO, error)
	CreateProduct(ctx context.Context, input ProductInput) (int64, error)
	UpdateProduct(ctx context.Context, id int64, input ProductInput) error
	DeleteProduct(ctx context.Context, id int64) error
	SeedIfEmpty(ctx context.Context) (int, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	logg     *logger.Logger
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient, logg: logg}, nil
}

func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return toDTOs(products), nil
}

func (s *service) GetProduct(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	dto := toDTO(*product)
	return &dto, nil
}

func (s *service) CreateProduct(ctx context.Context, input ProductInput) (int64, error) {
	input = normalizeInput(input)
	if err := validateInput(input); err != nil {
		return 0, err
	}
	product := input.toModel()
	if err := s.repo.Create(ctx, &product); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to add product")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithProductID(ctx, product.ID), "catalog.product.created")
	}
	return product.ID, nil
}

func (s *service) UpdateProduct(ctx context.Context, id int64, input ProductInput) error {
	input = normalizeInput(input)
	if err := validateInput(input); err != nil {
		return err
	}
	rows, err := s.repo.Replace(ctx, id, input.toModel())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to update product")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithProductID(ctx, id), "catalog.product.updated")
	}
	return nil
}

func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to delete product")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithProductID(ctx, id), "catalog.product.deleted")
	}
	return nil
}

// SeedIfEmpty inserts the default catalog when no products exist and reports
// how many rows were written.
func (s *service) SeedIfEmpty(ctx context.Context) (int, error) {
	seeded := 0
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		count, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		products := defaultProducts()
		if err := repo.CreateBatch(ctx, products); err != nil {
			return err
		}
		seeded = len(products)
		return nil
	})
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed catalog")
	}
	if seeded > 0 && s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "count", seeded), "catalog.seeded")
	}
	return seeded, nil
}

func normalizeInput(in ProductInput) ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	return in
}

func validateInput(in ProductInput) error {
	details := map[string]string{}
	if in.Name == "" {
		details["name"] = "is required"
	}
	if in.Price == nil {
		details["price"] = "is required"
	}
	for _, img := range in.AdditionalImages {
		if strings.Contains(img, imageSeparator) {
			details["additional_images"] = "entries must not contain commas"
			break
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product").WithDetails(details)
	}
	return nil
}
