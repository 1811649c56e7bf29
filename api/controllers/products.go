package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/luxuryconcept/storefront-backend/api/responses"
	"github.com/luxuryconcept/storefront-backend/api/validators"
	"github.com/luxuryconcept/storefront-backend/internal/catalog"
	pkgerrors "github.com/luxuryconcept/storefront-backend/pkg/errors"
	"github.com/luxuryconcept/storefront-backend/pkg/logger"
)

const (
	maxNameLen     = 255
	maxCategoryLen = 120
)

// productRequest accepts the ProductDTO shape so a fetched product can be
// edited and sent back. ID is ignored; the path id wins.
type productRequest struct {
	ID               *int64           `json:"id"`
	Name             string           `json:"name" validate:"required"`
	Description      string           `json:"description"`
	Price            *decimal.Decimal `json:"price" validate:"required"`
	Category         string           `json:"category"`
	ImageURL         string           `json:"image_url"`
	Dimensions       string           `json:"dimensions"`
	Materials        string           `json:"materials"`
	Fabrics          string           `json:"fabrics"`
	AdditionalImages []string         `json:"additional_images"`
}

func (p productRequest) toInput() catalog.ProductInput {
	return catalog.ProductInput{
		Name:             validators.SanitizeString(p.Name, maxNameLen),
		Description:      p.Description,
		Price:            p.Price,
		Category:         validators.SanitizeString(p.Category, maxCategoryLen),
		ImageURL:         p.ImageURL,
		Dimensions:       p.Dimensions,
		Materials:        p.Materials,
		Fabrics:          p.Fabrics,
		AdditionalImages: p.AdditionalImages,
	}
}

func catalogUnavailable(r *http.Request, w http.ResponseWriter, logg *logger.Logger) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
}

// ListProducts returns the full catalog.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			catalogUnavailable(r, w, logg)
			return
		}
		products, err := svc.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// GetProduct returns one product by id.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			catalogUnavailable(r, w, logg)
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Product not found"))
			return
		}
		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminCreateProduct adds a product and returns its id.
func AdminCreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			catalogUnavailable(r, w, logg)
			return
		}
		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := svc.CreateProduct(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]int64{"id": id})
	}
}

// AdminUpdateProduct replaces every field of an existing product.
func AdminUpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			catalogUnavailable(r, w, logg)
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.UpdateProduct(r.Context(), id, payload.toInput()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"success": true})
	}
}

// AdminDeleteProduct removes a product; existing order items keep their rows.
func AdminDeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			catalogUnavailable(r, w, logg)
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"success": true})
	}
}
