// service.go - Category and product rules on top of a Store
//
// Write Flow:
// 1. Trim and validate the caller's fields
// 2. Persist through the Store (one transaction per call)
// 3. Publish an event for the committed change, bounded by the publish timeout

// Package catalog enforces the category and product invariants on top of a Store.
package catalog // Declares the package name

import ( // Import required packages
	"context"                   // Request-scoped calls
	"errors"                    // errors.Is / errors.As
	"go-catalog-backend/logger" // Structured logging
	"go-catalog-backend/models" // Category and product models
	"strings"                   // Input trimming
	"time"                      // Timestamps and publish deadline

	"github.com/google/uuid"        // Product ids
	"github.com/shopspring/decimal" // Exact prices
)

var hundred = decimal.NewFromInt(100)

// DefaultPublishTimeout bounds how long a write waits for its event to be delivered
const DefaultPublishTimeout = 3 * time.Second

// ProductFields is the caller-supplied part of a product. Price is kept as
// text so that malformed numbers surface as validation errors.
type ProductFields struct {
	Name        string
	Description string
	Price       string
	Category    string
	SubCategory string
}

// Service implements the catalog operations.
type Service struct {
	store          Store
	events         Publisher
	publishTimeout time.Duration
	strict         bool
	newID          func() string
	now            func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sends committed changes to p.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.events = p
		}
	}
}

// WithPublishTimeout caps the wait for each event; zero or less keeps the default.
func WithPublishTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.publishTimeout = d
		}
	}
}

// WithStrictCategories controls whether products must reference an existing category.
func WithStrictCategories(strict bool) Option {
	return func(s *Service) { s.strict = strict }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// WithClock replaces time.Now.
func WithClock(fn func() time.Time) Option {
	return func(s *Service) { s.now = fn }
}

// NewService returns a Service with strict category checks enabled.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:          store,
		events:         nopPublisher{},
		publishTimeout: DefaultPublishTimeout,
		strict:         true,
		newID:          uuid.NewString,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetCategory looks a category up by its exact name.
func (s *Service) GetCategory(ctx context.Context, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, &NotFoundError{Kind: "category", Key: name}
	}
	c, err := s.store.GetCategory(ctx, name)
	return c, translate(err, "category", name)
}

// ListCategories returns every category ordered by name.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.ListCategories(ctx)
}

// CreateCategory adds a category; names are unique.
func (s *Service) CreateCategory(ctx context.Context, name, description string) (models.Category, error) {
	c := models.Category{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
	if c.Name == "" {
		return models.Category{}, invalid("name", "is required")
	}
	if err := s.store.CreateCategory(ctx, &c); err != nil {
		return models.Category{}, translate(err, "category", c.Name)
	}
	s.publish(ctx, Event{Type: CategoryCreated, Key: c.Name, Category: &c})
	return c, nil
}

// GetProduct returns the product with the given id.
func (s *Service) GetProduct(ctx context.Context, id string) (models.Product, error) {
	p, err := s.store.GetProduct(ctx, id)
	return p, translate(err, "product", id)
}

// ListProducts returns products matching filter, oldest first.
func (s *Service) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	return s.store.ListProducts(ctx, filter)
}

// AddProduct validates f and persists a new product with a generated id.
func (s *Service) AddProduct(ctx context.Context, f ProductFields) (models.Product, error) {
	price, err := s.validate(ctx, &f)
	if err != nil {
		return models.Product{}, err
	}
	now := s.now()
	p := models.Product{
		ID:            s.newID(),
		Name:          f.Name,
		Description:   f.Description,
		Price:         price,
		OriginalPrice: price,
		DiscountRate:  decimal.Zero,
		Category:      f.Category,
		SubCategory:   f.SubCategory,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreateProduct(ctx, &p); err != nil {
		return models.Product{}, translate(err, "product", p.ID)
	}
	s.publish(ctx, Event{Type: ProductCreated, Key: p.ID, Product: &p})
	return p, nil
}

// UpdateProduct replaces every field of product id with f. Any active
// discount is dropped and the new price becomes the base price.
func (s *Service) UpdateProduct(ctx context.Context, id string, f ProductFields) (models.Product, error) {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return models.Product{}, err
	}
	price, err := s.validate(ctx, &f)
	if err != nil {
		return models.Product{}, err
	}
	now := s.now()
	updated, err := s.store.ModifyProducts(ctx, []string{id}, func(p *models.Product) error {
		p.Name = f.Name
		p.Description = f.Description
		p.Price = price
		p.OriginalPrice = price
		p.DiscountRate = decimal.Zero
		p.Category = f.Category
		p.SubCategory = f.SubCategory
		p.UpdatedAt = now
		return nil
	})
	if err != nil {
		return models.Product{}, translate(err, "product", id)
	}
	p := updated[0]
	s.publish(ctx, Event{Type: ProductUpdated, Key: p.ID, Product: &p})
	return p, nil
}

// DeleteProduct removes product id; deleting it again is a NotFoundError.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return translate(err, "product", id)
	}
	s.publish(ctx, Event{Type: ProductDeleted, Key: id})
	return nil
}

// ApplyDiscount sets price = originalPrice * (1 - rate/100) on every listed
// product. rate must lie strictly between 0 and 100.
func (s *Service) ApplyDiscount(ctx context.Context, ids []string, rate string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, invalid("productIds", "is required")
	}
	r, err := decimal.NewFromString(strings.TrimSpace(rate))
	if err != nil {
		return nil, invalid("discountRate", "must be a number")
	}
	if !r.IsPositive() || r.GreaterThanOrEqual(hundred) {
		return nil, invalid("discountRate", "must be between 0 and 100")
	}
	factor := decimal.NewFromInt(1).Sub(r.Div(hundred))
	now := s.now()
	updated, err := s.store.ModifyProducts(ctx, ids, func(p *models.Product) error {
		if p.OriginalPrice.IsZero() {
			p.OriginalPrice = p.Price
		}
		price := p.OriginalPrice.Mul(factor).Round(2)
		if !price.IsPositive() {
			return invalid("discountRate", "would make the price of "+p.ID+" zero")
		}
		p.Price = price
		p.DiscountRate = r
		p.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, s.batchError(err, ids)
	}
	s.publishPrices(ctx, updated)
	return updated, nil
}

// RemoveDiscount restores the base price of every listed product that has a
// discount. Products without one are left untouched and not returned.
func (s *Service) RemoveDiscount(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, invalid("productIds", "is required")
	}
	now := s.now()
	changed := make(map[string]bool, len(ids))
	all, err := s.store.ModifyProducts(ctx, ids, func(p *models.Product) error {
		if !p.Discounted() {
			return nil
		}
		p.Price = p.OriginalPrice
		p.DiscountRate = decimal.Zero
		p.UpdatedAt = now
		changed[p.ID] = true
		return nil
	})
	if err != nil {
		return nil, s.batchError(err, ids)
	}
	var restored []models.Product
	for i := range all {
		if changed[all[i].ID] {
			restored = append(restored, all[i])
		}
	}
	s.publishPrices(ctx, restored)
	return restored, nil
}

// SetPrice gives every listed product a new base price and clears its discount.
// Either all products change or none do.
func (s *Service) SetPrice(ctx context.Context, ids []string, price string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, invalid("productIds", "is required")
	}
	p, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return nil, invalid("price", "must be a number")
	}
	p = p.Round(2)
	if !p.IsPositive() {
		return nil, invalid("price", "must be greater than zero")
	}
	now := s.now()
	updated, err := s.store.ModifyProducts(ctx, ids, func(prod *models.Product) error {
		prod.Price = p
		prod.OriginalPrice = p
		prod.DiscountRate = decimal.Zero
		prod.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, s.batchError(err, ids)
	}
	s.publishPrices(ctx, updated)
	return updated, nil
}

// validate trims f in place and returns the parsed price.
func (s *Service) validate(ctx context.Context, f *ProductFields) (decimal.Decimal, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.Category = strings.TrimSpace(f.Category)
	f.SubCategory = strings.TrimSpace(f.SubCategory)

	for _, req := range []struct{ field, value string }{
		{"name", f.Name},
		{"description", f.Description},
		{"price", strings.TrimSpace(f.Price)},
		{"category", f.Category},
		{"subCategory", f.SubCategory},
	} {
		if req.value == "" {
			return decimal.Zero, invalid(req.field, "is required")
		}
	}
	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil {
		return decimal.Zero, invalid("price", "must be a number")
	}
	price = price.Round(2)
	if !price.IsPositive() {
		return decimal.Zero, invalid("price", "must be greater than zero")
	}
	if s.strict {
		if _, err := s.store.GetCategory(ctx, f.Category); err != nil {
			if errors.Is(err, models.ErrCategoryNotFound) {
				return decimal.Zero, invalid("category", "unknown category "+f.Category)
			}
			return decimal.Zero, err
		}
	}
	return price, nil
}

func (s *Service) batchError(err error, ids []string) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return translate(err, "product", strings.Join(ids, ","))
}

func (s *Service) publishPrices(ctx context.Context, products []models.Product) {
	for i := range products {
		s.publish(ctx, Event{Type: PriceChanged, Key: products[i].ID, Product: &products[i]})
	}
}

// publish delivers ev after the change is committed. The wait is capped by
// publishTimeout and failures are only logged.
func (s *Service) publish(ctx context.Context, ev Event) {
	ev.At = s.now()
	ctx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()
	if err := s.events.Publish(ctx, ev); err != nil {
		logger.Warn("catalog event not delivered", "type", ev.Type, "key", ev.Key, "err", err)
	}
}
