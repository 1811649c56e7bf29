package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/luxuryconcept/storefront-backend/pkg/db/models"
)

type seedProduct struct {
	name        string
	description string
	price       int64
	category    string
	image       string
	dimensions  string
	materials   string
	fabrics     string
	extra       []string
}

// seedCatalog is the launch collection written on first boot. Images are
// Unsplash photo ids.
var seedCatalog = []seedProduct{
	{
		name:        "The Velvet Sovereign",
		description: "Deep emerald velvet sofa with gold-leaf accents.",
		price:       350000,
		category:    "Living Room",
		image:       "photo-1555041469-a586c61ea9bc",
		dimensions:  "220cm x 95cm x 85cm",
		materials:   "Velvet, Solid Oak, Gold Leaf",
		fabrics:     "Premium Italian Velvet",
		extra:       []string{"photo-1493663284031-b7e3aefcae8e", "photo-1540518614846-7eded433c457"},
	},
	{
		name:        "Ethereal Oak Table",
		description: "Hand-carved solid white oak dining table.",
		price:       225000,
		category:    "Dining Room",
		image:       "photo-1577140917170-285929fb55b7",
		dimensions:  "240cm x 100cm x 75cm",
		materials:   "Solid White Oak",
		fabrics:     "N/A",
		extra:       []string{"photo-1530018607912-eff2df114f11"},
	},
	{
		name:        "Celestial Lounge Chair",
		description: "Ergonomic lounge chair with premium Italian leather.",
		price:       185000,
		category:    "Living Room",
		image:       "photo-1592078615290-033ee584e267",
		dimensions:  "85cm x 90cm x 100cm",
		materials:   "Italian Leather, Walnut Shell",
		fabrics:     "Top-grain Italian Leather",
		extra:       []string{"photo-1586023492125-27b2c045efd7"},
	},
	{
		name:        "Marble Zenith Console",
		description: "Italian Carrara marble top with brushed brass base.",
		price:       145000,
		category:    "Living Room",
		image:       "photo-1533090161767-e6ffed986c88",
		dimensions:  "140cm x 40cm x 80cm",
		materials:   "Carrara Marble, Brass",
		fabrics:     "N/A",
		extra:       []string{"photo-1538688598139-682181377e3c"},
	},
	{
		name:        "Onyx Nightstand",
		description: "Minimalist nightstand with black marble and walnut.",
		price:       65000,
		category:    "Bedroom",
		image:       "photo-1532372320572-cda25653a26d",
		dimensions:  "50cm x 45cm x 55cm",
		materials:   "Black Marble, Walnut Wood",
		fabrics:     "N/A",
		extra:       []string{"photo-1505691938895-1758d7eaa511"},
	},
	{
		name:        "Luminous Floor Lamp",
		description: "Sculptural floor lamp with hand-blown glass.",
		price:       85000,
		category:    "Decor",
		image:       "photo-1507473885765-e6ed057f782c",
		dimensions:  "40cm x 40cm x 160cm",
		materials:   "Hand-blown Glass, Steel",
		fabrics:     "N/A",
		extra:       []string{"photo-1513506003901-1e6a229e2d15"},
	},
	{
		name:        "Executive Monarch Desk",
		description: "Grand mahogany desk with leather inlay.",
		price:       420000,
		category:    "Office",
		image:       "photo-1518455027359-f3f8164ba6bd",
		dimensions:  "180cm x 90cm x 76cm",
		materials:   "Mahogany, Top-grain Leather",
		fabrics:     "Top-grain Leather Inlay",
		extra:       []string{"photo-1497215728101-856f4ea42174"},
	},
	{
		name:        "Zenith Office Chair",
		description: "High-back ergonomic chair with mesh and aluminum.",
		price:       120000,
		category:    "Office",
		image:       "photo-1505797149-43b0ad766207",
		dimensions:  "70cm x 70cm x 120cm",
		materials:   "Aluminum, Breathable Mesh",
		fabrics:     "High-performance Mesh",
		extra:       []string{"photo-1580480055273-228ff5388ef8"},
	},
	{
		name:        "Aurelian Bed Frame",
		description: "King-size bed frame with brushed gold finish and velvet headboard.",
		price:       450000,
		category:    "Bedroom",
		image:       "photo-1505693415958-4d5ec170653d",
		dimensions:  "210cm x 200cm x 140cm",
		materials:   "Steel, Gold Plating, Velvet",
		fabrics:     "Plush Champagne Velvet",
		extra:       []string{"photo-1522771739844-6a9f6d5f14af"},
	},
	{
		name:        "Nordic Silence Sideboard",
		description: "Minimalist sideboard in light ash wood with brass handles.",
		price:       175000,
		category:    "Living Room",
		image:       "photo-1595428774223-ef52624120d2",
		dimensions:  "160cm x 45cm x 75cm",
		materials:   "Ash Wood, Brass",
		fabrics:     "N/A",
		extra:       []string{"photo-1532323544230-7191fd51bc1b"},
	},
	{
		name:        "Ivory Cloud Armchair",
		description: "Soft bouclé armchair with organic curves.",
		price:       95000,
		category:    "Living Room",
		image:       "photo-1598300042247-d088f8ab3a91",
		dimensions:  "90cm x 85cm x 80cm",
		materials:   "Bouclé Fabric, Pine Wood",
		fabrics:     "Premium White Bouclé",
		extra:       []string{"photo-1567016432779-094069958ea5"},
	},
	{
		name:        "Obsidian Dining Chair",
		description: "Sleek black-stained ash dining chair with leather seat.",
		price:       45000,
		category:    "Dining Room",
		image:       "photo-1503602642458-232111445657",
		dimensions:  "45cm x 50cm x 85cm",
		materials:   "Ash Wood, Leather",
		fabrics:     "Black Nappa Leather",
		extra:       []string{"photo-1592078615290-033ee584e267"},
	},
	{
		name:        "Quartz Coffee Table",
		description: "Solid quartz top with geometric steel base.",
		price:       115000,
		category:    "Living Room",
		image:       "photo-1533090161767-e6ffed986c88",
		dimensions:  "100cm x 100cm x 35cm",
		materials:   "Quartz, Powder-coated Steel",
		fabrics:     "N/A",
		extra:       []string{"photo-1577140917170-285929fb55b7"},
	},
	{
		name:        "Amber Glass Vase",
		description: "Hand-blown amber glass vase with textured finish.",
		price:       12000,
		category:    "Decor",
		image:       "photo-1581783898377-1c85bf937427",
		dimensions:  "20cm x 20cm x 35cm",
		materials:   "Hand-blown Glass",
		fabrics:     "N/A",
		extra:       []string{"photo-1513506003901-1e6a229e2d15"},
	},
}

func unsplash(photo string) string {
	return "https://images.unsplash.com/" + photo + "?auto=format&fit=crop&q=80&w=800"
}

func defaultProducts() []models.Product {
	products := make([]models.Product, 0, len(seedCatalog))
	for _, s := range seedCatalog {
		extra := make([]string, 0, len(s.extra))
		for _, photo := range s.extra {
			extra = append(extra, unsplash(photo))
		}
		products = append(products, models.Product{
			Name:             s.name,
			Description:      s.description,
			Price:            decimal.NewFromInt(s.price),
			Category:         s.category,
			ImageURL:         unsplash(s.image),
			Dimensions:       s.dimensions,
			Materials:        s.materials,
			Fabrics:          s.fabrics,
			AdditionalImages: EncodeImages(extra),
		})
	}
	return products
}
