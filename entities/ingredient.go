package entities

import (
	"github.com/google/uuid"
)

type Ingredient struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Timestamp
}
