// user.go - Defines the User model and staff roles

package models // Declares the package name

import "time"

// Role - Access level carried in issued tokens
type Role string

const ( // Known roles
	RoleAdmin          Role = "admin"           // Full access
	RoleSalesManager   Role = "sales_manager"   // Manages products and pricing
	RoleProductManager Role = "product_manager" // Manages products and categories
	RoleUser           Role = "user"            // Customer account
)

// StaffRoles - Roles allowed to change the catalog
var StaffRoles = []Role{RoleAdmin, RoleSalesManager, RoleProductManager}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSalesManager, RoleProductManager, RoleUser:
		return true
	}
	return false
}

type User struct { // User struct represents a user in the database
	ID        uint      `gorm:"primaryKey"`      // Unique user ID (primary key)
	Email     string    `gorm:"unique;not null"` // User's email (must be unique, cannot be null)
	Password  string    `gorm:"not null"`        // Hashed password (cannot be null)
	Role      Role      `gorm:"default:'user'"`  // User role
	CreatedAt time.Time // Set by gorm on insert
}
