package routes

import (
	"Recipe-Vault-Backend/internal/api/handlers"
	"Recipe-Vault-Backend/internal/middleware"
	"Recipe-Vault-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	RecipeHandler     handlers.RecipeHandler
	TagHandler        handlers.TagHandler
	IngredientHandler handlers.IngredientHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Recipes()
	c.Tags()
	c.Ingredients()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))

	recipes.Post("", c.RecipeHandler.CreateRecipe)
	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	recipes.Put("/:id", c.RecipeHandler.UpdateRecipe)
	recipes.Patch("/:id", c.RecipeHandler.PartialUpdateRecipe)
	recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)
	recipes.Post("/:id/image", c.RecipeHandler.UploadRecipeImage)
}

func (c *Config) Tags() {
	tags := c.App.Group("/api/v1/tags", c.Middleware.AuthMiddleware(c.JWTService))

	tags.Get("", c.TagHandler.GetTags)
	tags.Patch("/:id", c.TagHandler.UpdateTag)
	tags.Delete("/:id", c.TagHandler.DeleteTag)
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/v1/ingredients", c.Middleware.AuthMiddleware(c.JWTService))

	ingredients.Get("", c.IngredientHandler.GetIngredients)
	ingredients.Patch("/:id", c.IngredientHandler.UpdateIngredient)
	ingredients.Delete("/:id", c.IngredientHandler.DeleteIngredient)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
