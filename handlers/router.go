// router.go - Route table and middleware chain

package handlers // Declares the package name

import ( // Import required packages
	"context"  // Health check deadline
	"net/http" // HTTP status codes
	"time"     // CORS max age, ping timeout

	"github.com/gin-contrib/cors" // Cross-origin requests from the storefront
	"github.com/gin-gonic/gin"    // Gin web framework

	"go-catalog-backend/middleware" // Auth, roles, logging, metrics
	"go-catalog-backend/models"     // Roles
)

// Pinger - Anything that can report whether the database is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps - Everything the router wires together
type Deps struct {
	Catalog      CatalogService
	Auth         AuthService
	Metrics      *middleware.Metrics // Optional
	LoginLimiter gin.HandlerFunc     // Optional, applied to /login and /register
	DB           Pinger              // Optional, checked by /health
	CORSOrigins  []string
}

// discountRoles may change prices in bulk (discounts and base prices)
var discountRoles = []models.Role{models.RoleAdmin, models.RoleSalesManager}

// NewRouter - Builds the gin engine with all routes
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders:    []string{middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/health", health(d.DB))

	// Public routes (no authentication required)
	users := NewAuthHandler(d.Auth)
	public := r.Group("/")
	if d.LoginLimiter != nil {
		public.Use(d.LoginLimiter)
	}
	public.POST("/login", users.HandleLogin)
	public.POST("/register", users.HandleRegister)

	cat := NewCatalogHandler(d.Catalog)
	staff := middleware.RoleMiddleware(d.Auth, models.StaffRoles...)
	discount := middleware.RoleMiddleware(d.Auth, discountRoles...)

	api := r.Group("/api")
	{
		api.GET("/session", middleware.AuthMiddleware(d.Auth), users.HandleSession)

		api.GET("/categories", cat.HandleListCategories)
		api.GET("/categories/:name", cat.HandleGetCategory)
		api.POST("/categories", staff, cat.HandleCreateCategory)

		api.GET("/products", cat.HandleListProducts)
		api.GET("/products/:id", cat.HandleGetProduct)
		api.POST("/products", staff, cat.HandleAddProduct)
		api.PUT("/products/:id", staff, cat.HandleUpdateProduct)
		api.DELETE("/products/:id", staff, cat.HandleDeleteProduct)
		api.POST("/products/discount", discount, cat.HandleApplyDiscount)
		api.POST("/products/remove-discount", discount, cat.HandleRemoveDiscount)
		api.POST("/products/set-price", discount, cat.HandleSetPrice)
	}
	return r
}

func health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
