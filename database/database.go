// database.go - Handles database connection and setup

package database // Declares the package name

import ( // Import required packages
	"context" // Request-scoped queries
	"errors"  // errors.Is on lookup failures
	"fmt"     // Error wrapping
	"strings" // Email normalisation

	"go-catalog-backend/config" // Project config
	"go-catalog-backend/logger" // Structured logging
	"go-catalog-backend/models" // Catalog and user models

	"golang.org/x/crypto/bcrypt"     // Password hashing
	"gorm.io/driver/postgres"        // Postgres driver for GORM
	"gorm.io/driver/sqlite"          // SQLite driver for GORM
	"gorm.io/gorm"                   // GORM ORM
	gormlogger "gorm.io/gorm/logger" // GORM query logging
)

// Connect opens the configured database and runs migrations
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver { // Pick the driver from config
	case "sqlite", "":
		dialector = sqlite.Open(sqliteDSN(cfg.DBPath))
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return Open(dialector)
}

// Open connects with an explicit dialector and migrates the schema
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true, // Unique violations become gorm.ErrDuplicatedKey
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil { // If error, return it
		return nil, err
	}

	if db.Dialector.Name() == "sqlite" { // SQLite allows one writer at a time
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1) // Writers queue in the pool instead of failing with "database is locked"
	}

	// Auto-migrate the models (create tables if needed)
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// sqliteDSN adds a busy timeout and WAL journaling unless the path already sets options
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_busy_timeout=5000&_journal_mode=WAL"
}

// StaffStore - The user lookups seeding needs (UsersRepository in production)
type StaffStore interface {
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

// StaffAccount - A staff login configured through the environment
type StaffAccount struct {
	Email    string
	Password string
	Role     models.Role
}

// StaffAccounts - Lists every staff account that has both an email and a password set
func StaffAccounts(cfg *config.Config) []StaffAccount {
	all := []StaffAccount{
		{cfg.AdminEmail, cfg.AdminPassword, models.RoleAdmin},
		{cfg.SalesManagerEmail, cfg.SalesManagerPassword, models.RoleSalesManager},
		{cfg.ProductManagerEmail, cfg.ProductManagerPassword, models.RoleProductManager},
	}
	var out []StaffAccount
	for _, a := range all {
		if a.Email != "" && a.Password != "" {
			out = append(out, a)
		}
	}
	return out
}

// SeedStaff - Creates the configured staff users that do not exist yet
// Credentials come from environment variables instead of being hardcoded
func SeedStaff(ctx context.Context, users StaffStore, accounts []StaffAccount) error {
	for _, a := range accounts {
		email := strings.ToLower(strings.TrimSpace(a.Email))
		_, err := users.FindUserByEmail(ctx, email)
		if err == nil {
			continue // Already seeded
		}
		if !errors.Is(err, models.ErrUserNotFound) { // Lookup failed, do not guess
			return fmt.Errorf("seed %s: %w", a.Role, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u := models.User{Email: email, Password: string(hash), Role: a.Role}
		if err := users.CreateUser(ctx, &u); err != nil {
			return fmt.Errorf("seed %s: %w", a.Role, err)
		}
		logger.Info("staff account created", "email", email, "role", a.Role)
	}
	return nil
}
