// catalog_repository.go - Categories and products stored through GORM

package database // Declares the package name

import ( // Import required packages
	"context"                   // Request-scoped queries
	"errors"                    // errors.Is on gorm errors
	"go-catalog-backend/models" // Catalog models and sentinels

	"gorm.io/gorm"        // GORM ORM
	"gorm.io/gorm/clause" // Row locks on postgres
)

// CatalogRepository is the gorm-backed catalog store. Every write runs in a
// transaction so readers never observe a partially updated product.
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository - Wraps an open, migrated connection
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetCategory - Category by exact name
func (r *CatalogRepository) GetCategory(ctx context.Context, name string) (models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Category{}, models.ErrCategoryNotFound
		}
		return models.Category{}, err
	}
	return category, nil
}

// ListCategories - All categories ordered by name
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory - Inserts category; a taken name gives models.ErrDuplicate
func (r *CatalogRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	return duplicate(r.db.WithContext(ctx).Create(category).Error)
}

// GetProduct - Product by id
func (r *CatalogRepository) GetProduct(ctx context.Context, id string) (models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, models.ErrProductNotFound
		}
		return models.Product{}, err
	}
	return product, nil
}

// ListProducts - Products matching filters, oldest first
func (r *CatalogRepository) ListProducts(ctx context.Context, filters models.ProductFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	// Filter
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.SubCategory != "" {
		query = query.Where("sub_category = ?", filters.SubCategory)
	}

	var products []models.Product
	if err := query.Order("created_at, id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct - Inserts product
func (r *CatalogRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	return duplicate(r.db.WithContext(ctx).Create(product).Error)
}

// ModifyProducts - Loads, changes and saves every id in one transaction
func (r *CatalogRepository) ModifyProducts(ctx context.Context, ids []string, fn func(*models.Product) error) ([]models.Product, error) {
	var out []models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true

			q := tx
			if tx.Dialector.Name() == "postgres" { // SQLite has no row locks
				q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
			}
			var product models.Product
			if err := q.Where("id = ?", id).First(&product).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.ErrProductNotFound
				}
				return err
			}
			if err := fn(&product); err != nil {
				return err
			}
			if err := tx.Save(&product).Error; err != nil {
				return duplicate(err)
			}
			out = append(out, product)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteProduct - Removes product id; nothing deleted means not found
func (r *CatalogRepository) DeleteProduct(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

// duplicate maps unique-key violations to models.ErrDuplicate
func duplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.ErrDuplicate
	}
	return err
}
