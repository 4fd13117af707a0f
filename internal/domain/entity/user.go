package entity

import "time"

// User usuario del sistema hospitalario.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Name         string
	Role         string // "admin" | "laboratorista" | "farmaceutico"
	CreatedAt    time.Time
}
