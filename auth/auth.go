// auth.go - Credential checks and JWT session tokens
//
// Login Flow:
// 1. Look up the user by email
// 2. Compare the bcrypt hash with the supplied password
// 3. Sign an HS256 token carrying user id, email, role and expiry
//
// Validation Flow:
// 1. Check signature and algorithm
// 2. Check issuer and expiry
// 3. Return the identity stored in the claims

package auth // Declares the package name

import ( // Import required packages
	"context" // Request-scoped lookups
	"errors"  // Sentinel errors
	"fmt"     // Error wrapping
	"strconv" // User id <-> subject claim
	"strings" // Email normalisation
	"time"    // Token lifetimes

	"github.com/go-playground/validator/v10" // Email format check
	"github.com/golang-jwt/jwt/v5"           // JWT library
	"golang.org/x/crypto/bcrypt"             // Password hashing

	"go-catalog-backend/models" // User model and roles
)

var ( // Errors returned to callers
	// ErrAuthentication covers unknown users, wrong passwords and bad tokens alike.
	ErrAuthentication = errors.New("invalid credentials")
	ErrEmailTaken     = errors.New("email already registered")
	ErrInvalidInput   = errors.New("invalid registration")
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt only accepts up to 72 bytes
)

// CredentialStore - Where user records live
type CredentialStore interface {
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

// Config - Token signing settings
type Config struct {
	Secret     string        // HMAC key
	Issuer     string        // iss claim
	TTL        time.Duration // Token lifetime
	BcryptCost int           // 0 means bcrypt.DefaultCost
}

// Claims - What a session token carries
type Claims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Session - Result of a successful login
type Session struct {
	Token     string
	Role      models.Role
	ExpiresAt time.Time
}

// Identity - Who a validated token belongs to
type Identity struct {
	UserID uint
	Email  string
	Role   models.Role
}

type Service struct {
	users     CredentialStore
	cfg       Config
	validate  *validator.Validate
	dummyHash []byte // Compared against when the email is unknown
	now       func() time.Time
}

func NewService(users CredentialStore, cfg Config) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 72 * time.Hour
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cfg.BcryptCost)
	return &Service{
		users:     users,
		cfg:       cfg,
		validate:  validator.New(),
		dummyHash: dummy,
		now:       time.Now,
	}
}

// SetClock - Replaces time.Now (tests)
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// HashPassword - bcrypt hash at the configured cost
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// Login - Checks credentials and issues a signed token
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.users.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, models.ErrUserNotFound) {
			return Session{}, err
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password)) // Same cost as a real miss
		return Session{}, ErrAuthentication
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return Session{}, ErrAuthentication
	}
	return s.Issue(user)
}

// Issue - Signs a token for user without checking a password
func (s *Service) Issue(user models.User) (Session, error) {
	now := s.now()
	exp := now.Add(s.cfg.TTL)
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{Token: token, Role: user.Role, ExpiresAt: exp.Truncate(time.Second)}, nil
}

// Validate - Verifies a token and returns the identity it carries
func (s *Service) Validate(token string) (Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return Identity{}, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || !claims.Role.Valid() {
		return Identity{}, fmt.Errorf("%w: malformed claims", ErrAuthentication)
	}
	return Identity{UserID: uint(id), Email: claims.Email, Role: claims.Role}, nil
}

// Register - Creates a customer account
func (s *Service) Register(ctx context.Context, email, password string) (models.User, error) {
	email = normalizeEmail(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return models.User{}, fmt.Errorf("%w: email must be a valid address", ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return models.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return models.User{}, fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, maxPasswordLen)
	}
	hash, err := s.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{Email: email, Password: hash, Role: models.RoleUser}
	if err := s.users.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
