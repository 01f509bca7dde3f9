package entity

import "time"

// User dueño de los ítems y lotes. Cada consulta de persistencia filtra por
// UserID; no hay visibilidad entre usuarios.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
