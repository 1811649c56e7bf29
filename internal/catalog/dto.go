package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/luxuryconcept/storefront-backend/pkg/db/models"
)

// ProductDTO is the catalog representation returned to callers.
type ProductDTO struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	Category         string          `json:"category"`
	ImageURL         string          `json:"image_url"`
	Dimensions       string          `json:"dimensions"`
	Materials        string          `json:"materials"`
	Fabrics          string          `json:"fabrics"`
	AdditionalImages []string        `json:"additional_images"`
}

// ProductInput carries every mutable product field. Updates replace all of
// them, so omitted optional fields are cleared.
type ProductInput struct {
	Name             string
	Description      string
	Price            *decimal.Decimal
	Category         string
	ImageURL         string
	Dimensions       string
	Materials        string
	Fabrics          string
	AdditionalImages []string
}

func toDTO(p models.Product) ProductDTO {
	return ProductDTO{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		Category:         p.Category,
		ImageURL:         p.ImageURL,
		Dimensions:       p.Dimensions,
		Materials:        p.Materials,
		Fabrics:          p.Fabrics,
		AdditionalImages: DecodeImages(p.AdditionalImages),
	}
}

func toDTOs(products []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toDTO(p))
	}
	return out
}

func (in ProductInput) toModel() models.Product {
	p := models.Product{
		Name:             in.Name,
		Description:      in.Description,
		Category:         in.Category,
		ImageURL:         in.ImageURL,
		Dimensions:       in.Dimensions,
		Materials:        in.Materials,
		Fabrics:          in.Fabrics,
		AdditionalImages: EncodeImages(in.AdditionalImages),
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	return p
}
