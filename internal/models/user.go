package models

import "time"

type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	Name      string     `json:"name"`
	Role      string     `json:"role"` // "customer" ou "admin"
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
