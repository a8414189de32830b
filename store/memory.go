// memory.go - In-memory catalog and credential store
//
// Values are copied in and out under a RWMutex, so callers never share a
// map entry with the store.

// Package store holds an in-memory implementation of the catalog and
// credential stores, used by the service and handler tests.
package store // Declares the package name

import ( // Import required packages
	"context"                   // Store interface signatures
	"go-catalog-backend/models" // Catalog and user models
	"sort"                      // Stable listing order
	"strings"                   // Email keys
	"sync"                      // Concurrent access
)

// Memory - Map-backed store, safe for concurrent use
type Memory struct {
	mu         sync.RWMutex
	categories map[string]models.Category
	products   map[string]models.Product
	users      map[string]models.User // keyed by lower-cased email
	nextCatID  uint
	nextUserID uint
}

// NewMemory - Empty store
func NewMemory() *Memory {
	return &Memory{
		categories: make(map[string]models.Category),
		products:   make(map[string]models.Product),
		users:      make(map[string]models.User),
	}
}

// GetCategory - Category by exact name
func (m *Memory) GetCategory(_ context.Context, name string) (models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.categories[name]
	if !ok {
		return models.Category{}, models.ErrCategoryNotFound
	}
	return c, nil
}

// ListCategories - All categories ordered by name
func (m *Memory) ListCategories(_ context.Context) ([]models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CreateCategory - Adds c and assigns its id; duplicate names fail
func (m *Memory) CreateCategory(_ context.Context, c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[c.Name]; ok {
		return models.ErrDuplicate
	}
	m.nextCatID++
	c.ID = m.nextCatID
	m.categories[c.Name] = *c
	return nil
}

// GetProduct - Product by id
func (m *Memory) GetProduct(_ context.Context, id string) (models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return models.Product{}, models.ErrProductNotFound
	}
	return p, nil
}

// ListProducts - Products matching filter, oldest first
func (m *Memory) ListProducts(_ context.Context, filter models.ProductFilter) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.SubCategory != "" && p.SubCategory != filter.SubCategory {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// CreateProduct - Adds p under its id
func (m *Memory) CreateProduct(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; ok {
		return models.ErrDuplicate
	}
	m.products[p.ID] = *p
	return nil
}

// ModifyProducts - Works on copies and only writes them back once fn has
// succeeded for every id
func (m *Memory) ModifyProducts(_ context.Context, ids []string, fn func(*models.Product) error) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids = dedupe(ids)
	staged := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := m.products[id]
		if !ok {
			return nil, models.ErrProductNotFound
		}
		if err := fn(&p); err != nil {
			return nil, err
		}
		staged = append(staged, p)
	}
	for _, p := range staged {
		m.products[p.ID] = p
	}
	return staged, nil
}

// DeleteProduct - Removes product id
func (m *Memory) DeleteProduct(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return models.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

// FindUserByEmail - Case-insensitive user lookup
func (m *Memory) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[strings.ToLower(email)]
	if !ok {
		return models.User{}, models.ErrUserNotFound
	}
	return u, nil
}

// CreateUser - Adds u and assigns its id; emails are unique
func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, ok := m.users[key]; ok {
		return models.ErrDuplicate
	}
	m.nextUserID++
	u.ID = m.nextUserID
	m.users[key] = *u
	return nil
}

// dedupe keeps the first occurrence of each id
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
