package domain

import (
	"errors"
)

var (
	MessageSuccessGetIngredients   = "success get ingredients"
	MessageSuccessUpdateIngredient = "ingredient updated successfully"
	MessageSuccessDeleteIngredient = "ingredient deleted successfully"
	MessageFailedGetIngredients    = "failed to get ingredients"
	MessageFailedUpdateIngredient  = "failed to update ingredient"
	MessageFailedDeleteIngredient  = "failed to delete ingredient"

	ErrIngredientNotFound = errors.New("ingredient not found")
)

type (
	IngredientResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	UpdateIngredientRequest struct {
		Name string `json:"name" validate:"required,max=255"`
	}
)
