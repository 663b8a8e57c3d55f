package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	TimeMinutes int       `json:"time_minutes"`
	Price       float64   `gorm:"type:decimal(5,2)" json:"price"`
	Link        string    `json:"link"`
	ImageURL    string    `json:"image_url,omitempty"`

	User        *User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Tags        []*Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []*Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE"`
	Timestamp
}
