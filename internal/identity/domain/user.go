package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleFarmer Role = "farmer"
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleClient, RoleAdmin:
		return true
	}
	return false
}

// SelfService reports whether users may register with this role. Admins are
// provisioned, never registered.
func (r Role) SelfService() bool {
	return r == RoleFarmer || r == RoleClient
}

type User struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	Name         string    `json:"name" bson:"name"`
	Role         Role      `json:"role" bson:"role"`
	PasswordHash string    `json:"-" bson:"password"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// NormalizeEmail is applied before every lookup and insert.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DemoUsers are the accounts a fresh deployment starts with. The farmer owns
// the first catalog product.
func DemoUsers(now time.Time) []User {
	return []User{
		{ID: "farmer1", Email: "farmer@example.com", Name: "John Smith", Role: RoleFarmer, CreatedAt: now},
		{ID: "client1", Email: "client@example.com", Name: "Jane Doe", Role: RoleClient, CreatedAt: now},
		{ID: "admin1", Email: "admin@example.com", Name: "Admin User", Role: RoleAdmin, CreatedAt: now},
	}
}
