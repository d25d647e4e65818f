package repository

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lapiazza/storefront_api/internal/models"
)

// DefaultVendor is the single vendor of the built-in catalog.
const DefaultVendor = "La Piazza"

type productSeed struct {
	id          string
	title       string
	handle      string
	description string
	image       string
	price       string
	category    string
}

var productSeeds = []productSeed{
	// Pizzas
	{"p1", "Pizza Margarita", "pizza-margarita", "La clásica italiana con tomate San Marzano y mozzarella fresca.", "https://images.unsplash.com/photo-1541745537411-b8046dc6d66c?auto=format&fit=crop&w=800&q=80", "12.00", "Pizzas"},
	{"p2", "Pizza Pepperoni", "pizza-pepperoni", "Picante y sabrosa, con pepperoni de primera calidad.", "https://images.unsplash.com/photo-1628840042765-356cda07504e?auto=format&fit=crop&w=800&q=80", "14.50", "Pizzas"},
	{"p3", "Pizza Cuatro Quesos", "pizza-cuatro-quesos", "Mezcla perfecta de mozzarella, gorgonzola, parmesano y emmental.", "https://images.unsplash.com/photo-1513104890138-7c749659a591?auto=format&fit=crop&w=800&q=80", "15.00", "Pizzas"},
	{"p4", "Pizza Vegetariana", "pizza-vegetariana", "Pimientos, cebolla, champiñones, aceitunas y calabacín.", "https://images.unsplash.com/photo-1571407970349-bc81e7e96d47?auto=format&fit=crop&w=800&q=80", "13.50", "Pizzas"},
	{"p5", "Pizza Barbacoa", "pizza-barbacoa", "Salsa barbacoa, carne picada, pollo y cebolla caramelizada.", "https://images.unsplash.com/photo-1565299624946-b28f40a0ae38?auto=format&fit=crop&w=800&q=80", "16.00", "Pizzas"},

	// Pastas
	{"p6", "Espaguetis Carbonara", "espaguetis-carbonara", "Receta tradicional con huevo, guanciale y pecorino.", "https://images.unsplash.com/photo-1612874742237-6526221588e3?auto=format&fit=crop&w=800&q=80", "11.00", "Pastas"},
	{"p7", "Lasaña de Carne", "lasana-carne", "Láminas de pasta con boloñesa casera y bechamel.", "https://images.unsplash.com/photo-1551183053-bf91a1d81141?auto=format&fit=crop&w=800&q=80", "12.50", "Pastas"},
	{"p8", "Penne al Pesto", "penne-pesto", "Pasta corta con salsa de albahaca fresca, piñones y parmesano.", "https://images.unsplash.com/photo-1473093226795-af9932fe5856?auto=format&fit=crop&w=800&q=80", "10.50", "Pastas"},

	// Entrantes
	{"p9", "Pan de Ajo", "pan-ajo", "Pan tostado con mantequilla de ajo y perejil.", "https://images.unsplash.com/photo-1767065886239-24a0b8975b24?q=80&w=688&auto=format&fit=crop", "4.50", "Entrantes"},
	{"p10", "Bruschetta Italiana", "bruschetta", "Pan tostado con tomate picado, ajo y aceite de oliva.", "https://plus.unsplash.com/premium_photo-1677686707252-16013f466e61?w=600&auto=format&fit=crop&q=60", "6.00", "Entrantes"},
	{"p11", "Ensalada Caprese", "ensalada-caprese", "Tomate, mozzarella de búfala y albahaca fresca.", "https://images.unsplash.com/photo-1602881917760-7379db593981?auto=format&fit=crop&w=800&q=80", "9.50", "Entrantes"},

	// Postres
	{"p12", "Tiramisú Casero", "tiramisu", "El postre italiano por excelencia, con café y mascarpone.", "https://images.unsplash.com/photo-1571877227200-a0d98ea607e9?auto=format&fit=crop&w=800&q=80", "6.50", "Postres"},
	{"p13", "Panna Cotta", "panna-cotta", "Nata cocida con vainilla y frutos rojos.", "https://images.unsplash.com/photo-1488477181946-6428a0291777?auto=format&fit=crop&w=800&q=80", "5.50", "Postres"},
}

// SeedProducts returns the built-in La Piazza catalog. Timestamps are
// deterministic (one minute apart in seed order) so creation-time sorting
// is stable across restarts.
func SeedProducts(currency string) []models.Product {
	base := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	out := make([]models.Product, 0, len(productSeeds))
	for i, s := range productSeeds {
		ts := base.Add(time.Duration(i) * time.Minute)
		amount, err := decimal.NewFromString(s.price)
		if err != nil {
			panic("seed: bad price for " + s.id + ": " + s.price)
		}
		price := models.NewMoney(amount, currency)
		img := models.Image{URL: s.image, AltText: s.title, Width: 800, Height: 800}

		out = append(out, models.Product{
			ID:               s.id,
			Title:            s.title,
			Handle:           s.handle,
			Description:      s.description,
			Category:         s.category,
			Vendor:           DefaultVendor,
			Tags:             seedTags(s),
			AvailableForSale: true,
			FeaturedImage:    img,
			Images:           []models.Image{img},
			Variants: []models.Variant{
				{ID: "v-" + s.id, Title: "Normal", Price: price, AvailableForSale: true},
			},
			Price:     price,
			CreatedAt: ts,
			UpdatedAt: ts,
		})
	}
	return out
}

// seedTags derives the tag set of a seed product: its category, the shared
// "comida" tag and the first word of its title, all lowercased.
func seedTags(s productSeed) []string {
	first := strings.ToLower(strings.Fields(s.title)[0])
	return []string{strings.ToLower(s.category), "comida", first}
}
