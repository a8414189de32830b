// catalog.go - Category and product endpoints

package handlers // Declares the package name

import ( // Import required packages
	"context"       // Passed through to the service
	"encoding/json" // json.Number for prices
	"net/http"      // HTTP status codes
	"time"          // Timestamps in responses

	"github.com/gin-gonic/gin" // Gin web framework

	"go-catalog-backend/catalog" // Catalog service types
	"go-catalog-backend/models"  // Category and product models
)

// CatalogService - What the handlers need from the catalog
type CatalogService interface {
	GetCategory(ctx context.Context, name string) (models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name, description string) (models.Category, error)
	GetProduct(ctx context.Context, id string) (models.Product, error)
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	AddProduct(ctx context.Context, f catalog.ProductFields) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, f catalog.ProductFields) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ApplyDiscount(ctx context.Context, ids []string, rate string) ([]models.Product, error)
	RemoveDiscount(ctx context.Context, ids []string) ([]models.Product, error)
	SetPrice(ctx context.Context, ids []string, price string) ([]models.Product, error)
}

// CategoryInput - Body for creating a category (JSON or form)
type CategoryInput struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

// ProductInput - Body for adding or replacing a product (JSON or form)
// Price accepts 20, 20.00 or "20.00"
type ProductInput struct {
	Name        string      `json:"name" form:"name"`
	Description string      `json:"description" form:"description"`
	Price       json.Number `json:"price" form:"price"`
	Category    string      `json:"category" form:"category"`
	SubCategory string      `json:"subCategory" form:"subCategory"`
}

func (in ProductInput) fields() catalog.ProductFields {
	return catalog.ProductFields{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price.String(),
		Category:    in.Category,
		SubCategory: in.SubCategory,
	}
}

// DiscountInput - Body for applying or removing discounts
type DiscountInput struct {
	ProductIDs   []string    `json:"productIds" form:"productIds" binding:"required,min=1"`
	DiscountRate json.Number `json:"discountRate" form:"discountRate"`
}

// PriceInput - Body for setting a new base price on several products
type PriceInput struct {
	ProductIDs []string    `json:"productIds" form:"productIds" binding:"required,min=1"`
	NewPrice   json.Number `json:"newPrice" form:"newPrice"`
}

type CategoryResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProductResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"originalPrice"`
	DiscountRate  float64   `json:"discountRate,omitempty"`
	Category      string    `json:"category"`
	SubCategory   string    `json:"subCategory"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toCategory(c models.Category) CategoryResponse {
	return CategoryResponse{Name: c.Name, Description: c.Description}
}

func toProduct(p models.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.InexactFloat64(),
		OriginalPrice: p.OriginalPrice.InexactFloat64(),
		DiscountRate:  p.DiscountRate.InexactFloat64(),
		Category:      p.Category,
		SubCategory:   p.SubCategory,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProducts(ps []models.Product) []ProductResponse {
	out := make([]ProductResponse, len(ps))
	for i, p := range ps {
		out[i] = toProduct(p)
	}
	return out
}

type CatalogHandler struct {
	svc CatalogService
}

func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// --- Request -> Response functions ---

func (h *CatalogHandler) GetCategory(ctx context.Context, name string) Response {
	c, err := h.svc.GetCategory(ctx, name)
	if err != nil {
		return errorResponse(err)
	}
	return ok(http.StatusOK, gin.H{"category": toCategory(c)})
}

func (h *CatalogHandler) ListCategories(ctx context.Context) Response {
	cs, err := h.svc.ListCategories(ctx)
	if err != nil {
		return errorResponse(err)
	}
	out := make([]CategoryResponse, len(cs))
	for i, c := range cs {
		out[i] = toCategory(c)
	}
	return ok(http.StatusOK, gin.H{"categories": out})
}

func (h *CatalogHandler) CreateCategory(ctx context.Context, in CategoryInput) Response {
	c, err := h.svc.CreateCategory(ctx, in.Name, in.Description)
	if err != nil {
		return errorResponse(err)
	}
	return ok(http.StatusCreated, gin.H{"message": "Category created successfully.", "category": toCategory(c)})
}

func (h *CatalogHandler) GetProduct(ctx context.Context, id string) Response {
	p, err := h.svc.GetProduct(ctx, id)
	if err != nil {
		return errorResponse(err)
	}
	return ok(http.StatusOK, gin.H{"product": toProduct(p)})
}

func (h *CatalogHandler) ListProducts(ctx context.Context, filter models.ProductFilter) Response {
	ps, err := h.svc.ListProducts(ctx, filter)
	if err != nil {
		return errorResponse(err)
	}
	return ok(http.StatusOK, gin.H{"products": toProducts(ps)})
}

func (h *CatalogHandler) AddProduct(ctx context.Context, in ProductInput) Response {
	p, err := h.svc.AddProduct(ctx, in.fields())
	if err != nil {
		return errorResponse(err)
	}
	return ok(http.StatusCreated, gin.H{"message": "Product added successfully.", "product": toProduct(p)})
}

func (h *CatalogHandler) UpdateProduct(ctx context.Context, id string, in ProductInput) Response {
	p, err := h.svc.UpdateProduct(ctx, id, in.fields())
	if err != nil {
		return errorResponse(err)
	}
	return ok(http.StatusOK, gin.H{"message": "Product updated successfully.", "product": toProduct(p)})
}

func (h *CatalogHandler) DeleteProduct(ctx context.Context, id string) Response {
	if err := h.svc.DeleteProduct(ctx, id); err != nil {
		return errorResponse(err)
	}
	return ok(http.StatusOK, gin.H{"message": "Product deleted successfully."})
}

func (h *CatalogHandler) ApplyDiscount(ctx context.Context, in DiscountInput) Response {
	ps, err := h.svc.ApplyDiscount(ctx, in.ProductIDs, in.DiscountRate.String())
	if err != nil {
		return errorResponse(err)
	}
	return ok(http.StatusOK, gin.H{"message": "Discount applied.", "products": toProducts(ps)})
}

func (h *CatalogHandler) RemoveDiscount(ctx context.Context, in DiscountInput) Response {
	ps, err := h.svc.RemoveDiscount(ctx, in.ProductIDs)
	if err != nil {
		return errorResponse(err)
	}
	msg := "Discounts removed successfully."
	if len(ps) == 0 {
		msg = "No discounted products found."
	}
	return ok(http.StatusOK, gin.H{"message": msg, "products": toProducts(ps)})
}

func (h *CatalogHandler) SetPrice(ctx context.Context, in PriceInput) Response {
	ps, err := h.svc.SetPrice(ctx, in.ProductIDs, in.NewPrice.String())
	if err != nil {
		return errorResponse(err)
	}
	return ok(http.StatusOK, gin.H{"message": "Prices updated successfully.", "products": toProducts(ps)})
}

// --- Gin adapters ---

func (h *CatalogHandler) HandleGetCategory(c *gin.Context) {
	h.GetCategory(c.Request.Context(), c.Param("name")).write(c)
}

func (h *CatalogHandler) HandleListCategories(c *gin.Context) {
	h.ListCategories(c.Request.Context()).write(c)
}

func (h *CatalogHandler) HandleCreateCategory(c *gin.Context) {
	var in CategoryInput
	if err := c.ShouldBind(&in); err != nil {
		bindError(err).write(c)
		return
	}
	h.CreateCategory(c.Request.Context(), in).write(c)
}

func (h *CatalogHandler) HandleGetProduct(c *gin.Context) {
	h.GetProduct(c.Request.Context(), c.Param("id")).write(c)
}

func (h *CatalogHandler) HandleListProducts(c *gin.Context) {
	filter := models.ProductFilter{
		Category:    c.Query("category"),
		SubCategory: c.Query("subCategory"),
	}
	h.ListProducts(c.Request.Context(), filter).write(c)
}

func (h *CatalogHandler) HandleAddProduct(c *gin.Context) {
	var in ProductInput
	if err := c.ShouldBind(&in); err != nil {
		bindError(err).write(c)
		return
	}
	h.AddProduct(c.Request.Context(), in).write(c)
}

func (h *CatalogHandler) HandleUpdateProduct(c *gin.Context) {
	var in ProductInput
	if err := c.ShouldBind(&in); err != nil {
		bindError(err).write(c)
		return
	}
	h.UpdateProduct(c.Request.Context(), c.Param("id"), in).write(c)
}

func (h *CatalogHandler) HandleDeleteProduct(c *gin.Context) {
	h.DeleteProduct(c.Request.Context(), c.Param("id")).write(c)
}

func (h *CatalogHandler) HandleApplyDiscount(c *gin.Context) {
	var in DiscountInput
	if err := c.ShouldBind(&in); err != nil {
		bindError(err).write(c)
		return
	}
	h.ApplyDiscount(c.Request.Context(), in).write(c)
}

func (h *CatalogHandler) HandleRemoveDiscount(c *gin.Context) {
	var in DiscountInput
	if err := c.ShouldBind(&in); err != nil {
		bindError(err).write(c)
		return
	}
	h.RemoveDiscount(c.Request.Context(), in).write(c)
}

func (h *CatalogHandler) HandleSetPrice(c *gin.Context) {
	var in PriceInput
	if err := c.ShouldBind(&in); err != nil {
		bindError(err).write(c)
		return
	}
	h.SetPrice(c.Request.Context(), in).write(c)
}
