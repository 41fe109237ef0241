package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PhoneNumber  *string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}
