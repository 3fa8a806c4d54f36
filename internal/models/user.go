package models

import "time"

type User struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"` // "admin" gates the back-office
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
