// user.go - Handles user registration, login and session lookup

package handlers // Declares the package name

import ( // Import required packages
	"context"  // Passed through to the service
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"go-catalog-backend/auth"       // Session types
	"go-catalog-backend/middleware" // Context keys set by the auth middleware
	"go-catalog-backend/models"     // User model
)

// AuthService - What the handlers need from the auth service
type AuthService interface {
	Login(ctx context.Context, email, password string) (auth.Session, error)
	Register(ctx context.Context, email, password string) (models.User, error)
	Validate(token string) (auth.Identity, error)
}

type RegisterInput struct { // Struct for registration input
	Email    string `json:"email" form:"email" binding:"required"`       // Email (required)
	Password string `json:"password" form:"password" binding:"required"` // Password (required)
}

type LoginInput struct { // Struct for login input
	Email    string `json:"email" form:"email" binding:"required"`       // Email (required)
	Password string `json:"password" form:"password" binding:"required"` // Password (required)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register - Creates a customer account
func (h *AuthHandler) Register(ctx context.Context, in RegisterInput) Response {
	if _, err := h.svc.Register(ctx, in.Email, in.Password); err != nil {
		return errorResponse(err)
	}
	return ok(http.StatusCreated, gin.H{"message": "registration successful"})
}

// Login - Checks credentials and returns a role-scoped token
func (h *AuthHandler) Login(ctx context.Context, in LoginInput) Response {
	session, err := h.svc.Login(ctx, in.Email, in.Password)
	if err != nil {
		return errorResponse(err)
	}
	return ok(http.StatusOK, gin.H{
		"message":    "Login successful",
		"token":      session.Token,
		"role":       session.Role,
		"expires_at": session.ExpiresAt,
	})
}

func (h *AuthHandler) HandleRegister(c *gin.Context) { // Handler for user registration
	var input RegisterInput                      // Declare input variable
	if err := c.ShouldBind(&input); err != nil { // Parse JSON or form input
		bindError(err).write(c) // Return error if invalid
		return
	}
	h.Register(c.Request.Context(), input).write(c)
}

func (h *AuthHandler) HandleLogin(c *gin.Context) { // Handler for user login
	var input LoginInput                         // Declare input variable
	if err := c.ShouldBind(&input); err != nil { // Parse JSON or form input
		bindError(err).write(c) // Return error if invalid
		return
	}
	h.Login(c.Request.Context(), input).write(c)
}

// HandleSession - Echoes the identity stored by the auth middleware
func (h *AuthHandler) HandleSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": c.MustGet(middleware.ContextUserID),
		"email":   c.GetString(middleware.ContextEmail),
		"role":    c.MustGet(middleware.ContextRole),
	})
}
