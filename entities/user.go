package entities

import (
	"time"

	"github.com/google/uuid"
)

type Timestamp struct {
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email      string    `gorm:"uniqueIndex" json:"email"`
	Password   string    `json:"-"`
	Name       string    `json:"name"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	IsStaff    bool      `json:"is_staff"`
	IsVerified bool      `json:"is_verified"`

	Timestamp
}
