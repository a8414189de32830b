// catalog_test.go - Tests for category and product endpoints

package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-catalog-backend/catalog"
	"go-catalog-backend/models"
)

func tshirt() gin.H {
	return gin.H{
		"name":        "T-shirt",
		"description": "Plain cotton tee",
		"price":       20.00,
		"category":    "Clothing",
		"subCategory": "Men",
	}
}

// seedClothing creates the category products in these tests refer to
func seedClothing(t *testing.T, env *testEnv) {
	t.Helper()
	_, err := env.catalog.CreateCategory(context.Background(), "Clothing", "Various types of clothing")
	require.NoError(t, err)
}

func TestGetCategory(t *testing.T) {
	env := setupEnv(t)
	seedClothing(t, env)

	w := env.do("GET", "/api/categories/Clothing", "", nil)
	require.Equal(t, 200, w.Code)
	category, _ := decode(t, w)["category"].(map[string]any)
	assert.Equal(t, "Clothing", category["name"])
	assert.Equal(t, "Various types of clothing", category["description"])

	w = env.do("GET", "/api/categories/Shoes", "", nil)
	assert.Equal(t, 404, w.Code)
	assert.Contains(t, decode(t, w)["error"], "Shoes")
}

func TestCreateAndListCategories(t *testing.T) {
	env := setupEnv(t)
	admin := env.token(t, "admin@example.com")

	w := env.do("POST", "/api/categories", admin, gin.H{"name": "Clothing", "description": "Various types of clothing"})
	require.Equal(t, 201, w.Code)
	assert.Equal(t, "Category created successfully.", decode(t, w)["message"])

	assert.Equal(t, 409, env.do("POST", "/api/categories", admin, gin.H{"name": "Clothing"}).Code)
	assert.Equal(t, 400, env.do("POST", "/api/categories", admin, gin.H{"description": "no name"}).Code)
	assert.Equal(t, 401, env.do("POST", "/api/categories", "", gin.H{"name": "Shoes"}).Code)
	assert.Equal(t, 403, env.do("POST", "/api/categories", env.token(t, "shopper@example.com"), gin.H{"name": "Shoes"}).Code)

	w = env.do("GET", "/api/categories", "", nil)
	require.Equal(t, 200, w.Code)
	list, _ := decode(t, w)["categories"].([]any)
	assert.Len(t, list, 1)
}

func TestAddProduct(t *testing.T) {
	env := setupEnv(t)
	seedClothing(t, env)
	sales := env.token(t, "sales@example.com")

	w := env.do("POST", "/api/products", sales, tshirt())
	require.Equal(t, 201, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Product added successfully.", body["message"])
	product, _ := body["product"].(map[string]any)
	id, _ := product["id"].(string)
	require.NotEmpty(t, id)
	assert.EqualValues(t, 20, product["price"])

	stored, err := env.mem.GetProduct(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "T-shirt", stored.Name)
	assert.Equal(t, "Men", stored.SubCategory)

	w = env.do("GET", "/api/products/"+id, "", nil)
	require.Equal(t, 200, w.Code)
	w = env.do("GET", "/api/products?category=Clothing", "", nil)
	list, _ := decode(t, w)["products"].([]any)
	assert.Len(t, list, 1)
}

func TestAddProductStringPrice(t *testing.T) {
	env := setupEnv(t)
	seedClothing(t, env)

	in := tshirt()
	in["price"] = "19.99"
	w := env.do("POST", "/api/products", env.token(t, "products@example.com"), in)
	require.Equal(t, 201, w.Code, w.Body.String())
	product, _ := decode(t, w)["product"].(map[string]any)
	assert.EqualValues(t, 19.99, product["price"])
}

func TestAddProductValidation(t *testing.T) {
	env := setupEnv(t)
	seedClothing(t, env)
	sales := env.token(t, "sales@example.com")

	tests := []struct {
		name  string
		edit  func(gin.H)
		field string
	}{
		{"zero price", func(b gin.H) { b["price"] = 0 }, "price"},
		{"negative price", func(b gin.H) { b["price"] = -5 }, "price"},
		{"missing name", func(b gin.H) { delete(b, "name") }, "name"},
		{"missing subCategory", func(b gin.H) { b["subCategory"] = " " }, "subCategory"},
		{"unknown category", func(b gin.H) { b["category"] = "Shoes" }, "category"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := tshirt()
			tc.edit(in)
			w := env.do("POST", "/api/products", sales, in)
			require.Equal(t, 400, w.Code, w.Body.String())
			details, _ := decode(t, w)["details"].(map[string]any)
			assert.Contains(t, details, tc.field)
		})
	}

	list, err := env.mem.ListProducts(context.Background(), models.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "rejected products must not be stored")
}

func TestProductRoutesRequireStaff(t *testing.T) {
	env := setupEnv(t)
	seedClothing(t, env)
	shopper := env.token(t, "shopper@example.com")

	assert.Equal(t, 401, env.do("POST", "/api/products", "", tshirt()).Code)
	assert.Equal(t, 403, env.do("POST", "/api/products", shopper, tshirt()).Code)
	assert.Equal(t, 403, env.do("PUT", "/api/products/any", shopper, tshirt()).Code)
	assert.Equal(t, 403, env.do("DELETE", "/api/products/any", shopper, nil).Code)
	assert.Equal(t, 403, env.do("POST", "/api/products/discount", env.token(t, "products@example.com"),
		gin.H{"productIds": []string{"any"}, "discountRate": 10}).Code)
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	env := setupEnv(t)
	seedClothing(t, env)
	sales := env.token(t, "sales@example.com")

	old := tshirt()
	old["name"] = "Old T-shirt"
	old["price"] = 15.00
	w := env.do("POST", "/api/products", sales, old)
	require.Equal(t, 201, w.Code)
	product, _ := decode(t, w)["product"].(map[string]any)
	id, _ := product["id"].(string)

	updated := tshirt()
	updated["name"] = "Updated T-shirt"
	updated["price"] = 25.00
	w = env.do("PUT", "/api/products/"+id, sales, updated)
	require.Equal(t, 200, w.Code, w.Body.String())
	assert.Equal(t, "Product updated successfully.", decode(t, w)["message"])

	w = env.do("GET", "/api/products/"+id, "", nil)
	product, _ = decode(t, w)["product"].(map[string]any)
	assert.Equal(t, "Updated T-shirt", product["name"])
	assert.EqualValues(t, 25, product["price"])

	w = env.do("DELETE", "/api/products/"+id, sales, nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "Product deleted successfully.", decode(t, w)["message"])

	assert.Equal(t, 404, env.do("GET", "/api/products/"+id, "", nil).Code)
	assert.Equal(t, 404, env.do("PUT", "/api/products/"+id, sales, updated).Code)
	assert.Equal(t, 404, env.do("DELETE", "/api/products/"+id, sales, nil).Code)
}

func TestDiscountEndpoints(t *testing.T) {
	env := setupEnv(t)
	seedClothing(t, env)
	sales := env.token(t, "sales@example.com")

	w := env.do("POST", "/api/products", sales, tshirt())
	product, _ := decode(t, w)["product"].(map[string]any)
	id, _ := product["id"].(string)

	w = env.do("POST", "/api/products/discount", sales, gin.H{"productIds": []string{id}, "discountRate": 25})
	require.Equal(t, 200, w.Code, w.Body.String())
	list, _ := decode(t, w)["products"].([]any)
	require.Len(t, list, 1)
	first, _ := list[0].(map[string]any)
	assert.EqualValues(t, 15, first["price"])
	assert.EqualValues(t, 20, first["originalPrice"])

	assert.Equal(t, 400, env.do("POST", "/api/products/discount", sales, gin.H{"productIds": []string{id}, "discountRate": 100}).Code)
	assert.Equal(t, 400, env.do("POST", "/api/products/discount", sales, gin.H{"productIds": []string{}, "discountRate": 10}).Code)
	assert.Equal(t, 404, env.do("POST", "/api/products/discount", sales, gin.H{"productIds": []string{id, "missing"}, "discountRate": 10}).Code)

	w = env.do("POST", "/api/products/remove-discount", env.token(t, "admin@example.com"), gin.H{"productIds": []string{id}})
	require.Equal(t, 200, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Discounts removed successfully.", body["message"])

	w = env.do("POST", "/api/products/remove-discount", sales, gin.H{"productIds": []string{id}})
	assert.Equal(t, "No discounted products found.", decode(t, w)["message"])
}

func TestSetPriceEndpoint(t *testing.T) {
	env := setupEnv(t)
	seedClothing(t, env)
	sales := env.token(t, "sales@example.com")

	w := env.do("POST", "/api/products", sales, tshirt())
	product, _ := decode(t, w)["product"].(map[string]any)
	id, _ := product["id"].(string)
	require.Equal(t, 200, env.do("POST", "/api/products/discount", sales, gin.H{"productIds": []string{id}, "discountRate": 50}).Code)

	w = env.do("POST", "/api/products/set-price", sales, gin.H{"productIds": []string{id}, "newPrice": "30"})
	require.Equal(t, 200, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Prices updated successfully.", body["message"])
	list, _ := body["products"].([]any)
	require.Len(t, list, 1)
	first, _ := list[0].(map[string]any)
	assert.EqualValues(t, 30, first["price"])
	assert.EqualValues(t, 30, first["originalPrice"])
	assert.NotContains(t, first, "discountRate")

	assert.Equal(t, 400, env.do("POST", "/api/products/set-price", sales, gin.H{"productIds": []string{id}, "newPrice": 0}).Code)
	assert.Equal(t, 400, env.do("POST", "/api/products/set-price", sales, gin.H{"newPrice": 10}).Code)
	assert.Equal(t, 404, env.do("POST", "/api/products/set-price", sales, gin.H{"productIds": []string{id, "missing"}, "newPrice": 10}).Code)
	assert.Equal(t, 403, env.do("POST", "/api/products/set-price", env.token(t, "products@example.com"),
		gin.H{"productIds": []string{id}, "newPrice": 10}).Code)

	w = env.do("GET", "/api/products/"+id, "", nil)
	product, _ = decode(t, w)["product"].(map[string]any)
	assert.EqualValues(t, 30, product["price"], "failed batches leave the price alone")
}

// --- Error mapping with a failing service ---

type failingCatalog struct {
	CatalogService
	err error
}

func (f failingCatalog) GetCategory(context.Context, string) (models.Category, error) {
	return models.Category{}, f.err
}

func (f failingCatalog) DeleteProduct(context.Context, string) error { return f.err }

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", &catalog.NotFoundError{Kind: "category", Key: "Shoes"}, http.StatusNotFound},
		{"validation", &catalog.ValidationError{Field: "price", Message: "must be greater than zero"}, http.StatusBadRequest},
		{"conflict", catalog.ErrConflict, http.StatusConflict},
		{"store failure", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewCatalogHandler(failingCatalog{err: tc.err})
			res := h.GetCategory(context.Background(), "Shoes")
			assert.Equal(t, tc.status, res.Status)
			assert.NotEmpty(t, res.Body["error"])

			res = h.DeleteProduct(context.Background(), "p1")
			assert.Equal(t, tc.status, res.Status)
		})
	}
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	h := NewCatalogHandler(failingCatalog{err: errors.New("pq: connection refused")})
	res := h.GetCategory(context.Background(), "Clothing")
	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Equal(t, "internal server error", res.Body["error"])
}

func TestHealth(t *testing.T) {
	env := setupEnv(t)
	w := env.do("GET", "/health", "", nil)
	assert.Equal(t, 200, w.Code)

	down := &testEnv{router: NewRouter(Deps{Catalog: env.catalog, Auth: env.auth, DB: downDB{}})}
	w = down.do("GET", "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

type downDB struct{}

func (downDB) PingContext(context.Context) error { return errors.New("unreachable") }
