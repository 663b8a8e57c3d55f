package entities

import (
	"github.com/google/uuid"
)

// Tag labels an owner's recipes. No uniqueness constraint on (user_id, name):
// the recipe service's get-or-create path is the only writer of new tags.
type Tag struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Timestamp
}
