// store.go - Persistence ports the catalog service depends on
//
// Implemented by database.CatalogRepository (gorm) and store.Memory.

package catalog // Declares the package name

import ( // Import required packages
	"context"                   // Every call is request scoped
	"go-catalog-backend/models" // Category and product models
)

// CategoryStore persists categories keyed by name.
type CategoryStore interface {
	GetCategory(ctx context.Context, name string) (models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
}

// ProductStore persists products keyed by id.
//
// ModifyProducts loads every id, applies fn to each and saves the results as
// one unit: if any id is missing or fn fails, nothing is written.
type ProductStore interface {
	GetProduct(ctx context.Context, id string) (models.Product, error)
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	ModifyProducts(ctx context.Context, ids []string, fn func(*models.Product) error) ([]models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// Store is everything the catalog service needs from persistence.
type Store interface {
	CategoryStore
	ProductStore
}
