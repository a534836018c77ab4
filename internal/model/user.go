package model

import "time"

const (
	RoleCustomer = "Customer"
	RoleManager  = "Manager"
	RoleAdmin    = "Admin"
)

// DefaultBalance is the opening balance assigned to every new account,
// matching the users table column default.
const DefaultBalance = "100000.00"

// User represents a bank customer account
type User struct {
	UID          int       `json:"uid"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`       // Do not expose password hash in JSON responses
	Balance      string    `json:"balance"` // Decimal string, e.g. "100000.00"
	Phone        *string   `json:"phone,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest is the payload for account registration
type RegisterRequest struct {
	UID      *int    `json:"uid"` // Accepted for client compatibility; the database assigns the real uid
	Username string  `json:"uname" binding:"required"`
	Password string  `json:"password" binding:"required,min=6"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    *string `json:"phone"`
	Role     string  `json:"role" binding:"omitempty,oneof=Customer Manager Admin"`
}

// LoginRequest is the payload for credential login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
