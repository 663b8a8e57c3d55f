package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessUploadImage     = "recipe image uploaded successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedUploadImage     = "failed to upload recipe image"

	ErrRecipeNotFound = errors.New("recipe not found")
)

type (
	// TagDescriptor and IngredientDescriptor are the nested inputs a recipe
	// request carries; they resolve to an existing row of the caller or create
	// a new one.
	TagDescriptor struct {
		Name string `json:"name" validate:"required,max=255"`
	}

	IngredientDescriptor struct {
		Name string `json:"name" validate:"required,max=255"`
	}

	CreateRecipeRequest struct {
		Title       string                 `json:"title" validate:"required,max=255"`
		Description string                 `json:"description"`
		TimeMinutes int                    `json:"time_minutes" validate:"min=0"`
		Price       float64                `json:"price" validate:"min=0"`
		Link        string                 `json:"link" validate:"omitempty,max=255"`
		Tags        []TagDescriptor        `json:"tags" validate:"omitempty,dive"`
		Ingredients []IngredientDescriptor `json:"ingredients" validate:"omitempty,dive"`
	}

	// UpdateRecipeRequest uses pointers so an omitted field can be told apart
	// from a zero value: a nil tag/ingredient list leaves the current
	// associations untouched, an empty one clears them.
	UpdateRecipeRequest struct {
		Title       *string                 `json:"title" validate:"omitempty,max=255"`
		Description *string                 `json:"description"`
		TimeMinutes *int                    `json:"time_minutes" validate:"omitempty,min=0"`
		Price       *float64                `json:"price" validate:"omitempty,min=0"`
		Link        *string                 `json:"link" validate:"omitempty,max=255"`
		Tags        *[]TagDescriptor        `json:"tags" validate:"omitempty,dive"`
		Ingredients *[]IngredientDescriptor `json:"ingredients" validate:"omitempty,dive"`
	}

	RecipeResponse struct {
		ID          string               `json:"id"`
		Title       string               `json:"title"`
		Description string               `json:"description,omitempty"`
		TimeMinutes int                  `json:"time_minutes"`
		Price       float64              `json:"price"`
		Link        string               `json:"link,omitempty"`
		ImageURL    string               `json:"image_url,omitempty"`
		Tags        []TagResponse        `json:"tags"`
		Ingredients []IngredientResponse `json:"ingredients"`
		CreatedAt   time.Time            `json:"created_at"`
	}

	RecipeListQuery struct {
		TagIDs        []string
		IngredientIDs []string
		Page          int
		Limit         int
	}

	UploadRecipeImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}
)
