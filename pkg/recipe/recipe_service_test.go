package recipe

import (
	"Recipe-Vault-Backend/domain"
	"Recipe-Vault-Backend/entities"
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}, &entities.Tag{}, &entities.Ingredient{}, &entities.Recipe{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *entities.User {
	t.Helper()
	user := &entities.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "hashed",
		Name:     "Test User",
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func newTestService(db *gorm.DB) RecipeService {
	return NewRecipeService(NewRecipeRepository(db), nil)
}

func tagNames(res domain.RecipeResponse) map[string]bool {
	names := make(map[string]bool, len(res.Tags))
	for _, tag := range res.Tags {
		names[tag.Name] = true
	}
	return names
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}

func TestCreateRecipeWithNewTags(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	s := newTestService(db)

	res, err := s.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:       "Thai Prawn Curry",
		TimeMinutes: 30,
		Price:       12.50,
		Tags:        []domain.TagDescriptor{{Name: "Thai"}, {Name: "Dinner"}},
	}, user.ID.String())
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	if len(res.Tags) != 2 {
		t.Fatalf("expected 2 tags got %d", len(res.Tags))
	}
	names := tagNames(res)
	if !names["Thai"] || !names["Dinner"] {
		t.Fatalf("unexpected tag names: %v", names)
	}
	if got := countRows(t, db, &entities.Tag{}); got != 2 {
		t.Fatalf("expected 2 tag rows got %d", got)
	}

	var tags []entities.Tag
	if err := db.Find(&tags).Error; err != nil {
		t.Fatal(err)
	}
	for _, tag := range tags {
		if tag.UserID != user.ID {
			t.Fatalf("tag %q owned by %s, want %s", tag.Name, tag.UserID, user.ID)
		}
	}
}

func TestCreateRecipeReusesExistingTag(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	s := newTestService(db)

	existing := entities.Tag{ID: uuid.New(), UserID: user.ID, Name: "Vegan"}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatal(err)
	}

	res, err := s.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:       "Avocado Toast",
		TimeMinutes: 10,
		Price:       5.00,
		Tags:        []domain.TagDescriptor{{Name: "Vegan"}, {Name: "Dinner"}},
	}, user.ID.String())
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	if len(res.Tags) != 2 {
		t.Fatalf("expected 2 tags got %d", len(res.Tags))
	}
	// "Vegan" must be the pre-existing row, not a duplicate.
	for _, tag := range res.Tags {
		if tag.Name == "Vegan" && tag.ID != existing.ID.String() {
			t.Fatalf("expected existing Vegan tag %s, got %s", existing.ID, tag.ID)
		}
	}
	if got := countRows(t, db, &entities.Tag{}); got != 2 {
		t.Fatalf("expected exactly one new tag row (2 total) got %d", got)
	}
}

func TestCreateRecipeDuplicateDescriptorsCollapse(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	s := newTestService(db)

	res, err := s.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:       "Stew",
		TimeMinutes: 90,
		Price:       8.00,
		Tags:        []domain.TagDescriptor{{Name: "Winter"}, {Name: "Winter"}, {Name: "Winter"}},
	}, user.ID.String())
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	if len(res.Tags) != 1 {
		t.Fatalf("expected duplicate names to collapse to 1 tag, got %d", len(res.Tags))
	}
	if got := countRows(t, db, &entities.Tag{}); got != 1 {
		t.Fatalf("expected 1 tag row got %d", got)
	}
}

func TestCreateRecipeWithIngredients(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	s := newTestService(db)

	existing := entities.Ingredient{ID: uuid.New(), UserID: user.ID, Name: "Lemon"}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatal(err)
	}

	res, err := s.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:       "Lemonade",
		TimeMinutes: 5,
		Price:       2.50,
		Ingredients: []domain.IngredientDescriptor{{Name: "Lemon"}, {Name: "Sugar"}},
	}, user.ID.String())
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	if len(res.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredients got %d", len(res.Ingredients))
	}
	if got := countRows(t, db, &entities.Ingredient{}); got != 2 {
		t.Fatalf("expected 2 ingredient rows got %d", got)
	}
}

func TestUpdateRecipeReplacesTags(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	s := newTestService(db)

	created, err := s.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:       "Pancakes",
		TimeMinutes: 20,
		Price:       4.00,
		Tags:        []domain.TagDescriptor{{Name: "Breakfast"}},
	}, user.ID.String())
	if err != nil {
		t.Fatal(err)
	}

	updated, err := s.UpdateRecipe(context.Background(), created.ID, domain.UpdateRecipeRequest{
		Tags: &[]domain.TagDescriptor{{Name: "Lunch"}},
	}, user.ID.String(), true)
	if err != nil {
		t.Fatalf("update recipe: %v", err)
	}

	if len(updated.Tags) != 1 || updated.Tags[0].Name != "Lunch" {
		t.Fatalf("expected tags {Lunch}, got %v", updated.Tags)
	}
	// Breakfast is de-associated but not deleted.
	var breakfast entities.Tag
	if err := db.Where("name = ?", "Breakfast").First(&breakfast).Error; err != nil {
		t.Fatalf("Breakfast tag should still exist: %v", err)
	}
}

func TestUpdateRecipeClearsTags(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	s := newTestService(db)

	created, err := s.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:       "Pancakes",
		TimeMinutes: 20,
		Price:       4.00,
		Tags:        []domain.TagDescriptor{{Name: "Breakfast"}, {Name: "Sweet"}},
	}, user.ID.String())
	if err != nil {
		t.Fatal(err)
	}

	empty := []domain.TagDescriptor{}
	updated, err := s.UpdateRecipe(context.Background(), created.ID, domain.UpdateRecipeRequest{
		Tags: &empty,
	}, user.ID.String(), true)
	if err != nil {
		t.Fatalf("update recipe: %v", err)
	}

	if len(updated.Tags) != 0 {
		t.Fatalf("expected no tags got %v", updated.Tags)
	}
	if got := countRows(t, db, &entities.Tag{}); got != 2 {
		t.Fatalf("tag rows must survive clearing, got %d", got)
	}
}

func TestUpdateRecipeAbsentTagsUnchanged(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	s := newTestService(db)

	created, err := s.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:       "Pancakes",
		TimeMinutes: 20,
		Price:       4.00,
		Tags:        []domain.TagDescriptor{{Name: "Breakfast"}},
	}, user.ID.String())
	if err != nil {
		t.Fatal(err)
	}

	newTitle := "Waffles"
	updated, err := s.UpdateRecipe(context.Background(), created.ID, domain.UpdateRecipeRequest{
		Title: &newTitle,
	}, user.ID.String(), true)
	if err != nil {
		t.Fatalf("update recipe: %v", err)
	}

	if updated.Title != "Waffles" {
		t.Fatalf("expected title Waffles got %q", updated.Title)
	}
	if len(updated.Tags) != 1 || updated.Tags[0].Name != "Breakfast" {
		t.Fatalf("absent tag list must leave associations untouched, got %v", updated.Tags)
	}
}

func TestUpdateRecipeReconcileIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	s := newTestService(db)

	created, err := s.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:       "Soup",
		TimeMinutes: 40,
		Price:       6.00,
	}, user.ID.String())
	if err != nil {
		t.Fatal(err)
	}

	desired := []domain.TagDescriptor{{Name: "Comfort"}, {Name: "Winter"}}
	for i := 0; i < 2; i++ {
		if _, err := s.UpdateRecipe(context.Background(), created.ID, domain.UpdateRecipeRequest{
			Tags: &desired,
		}, user.ID.String(), true); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}

	if got := countRows(t, db, &entities.Tag{}); got != 2 {
		t.Fatalf("repeated reconcile must not duplicate rows, got %d", got)
	}
	res, err := s.GetRecipeDetail(context.Background(), created.ID, user.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tags) != 2 {
		t.Fatalf("expected 2 tags got %d", len(res.Tags))
	}
}

func TestPartialUpdateKeepsOtherFields(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	s := newTestService(db)

	created, err := s.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:       "Curry",
		Description: "Spicy",
		TimeMinutes: 45,
		Price:       9.00,
		Link:        "https://example.com/curry",
	}, user.ID.String())
	if err != nil {
		t.Fatal(err)
	}

	newTitle := "Green Curry"
	updated, err := s.UpdateRecipe(context.Background(), created.ID, domain.UpdateRecipeRequest{
		Title: &newTitle,
	}, user.ID.String(), true)
	if err != nil {
		t.Fatal(err)
	}

	if updated.Title != "Green Curry" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.TimeMinutes != 45 || updated.Link != "https://example.com/curry" {
		t.Fatalf("partial update must not touch other fields: %+v", updated)
	}
}

func TestFullUpdateResetsOmittedFields(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	s := newTestService(db)

	created, err := s.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:       "Curry",
		Description: "Spicy",
		TimeMinutes: 45,
		Price:       9.00,
		Link:        "https://example.com/curry",
	}, user.ID.String())
	if err != nil {
		t.Fatal(err)
	}

	newTitle := "Mild Curry"
	newTime := 30
	newPrice := 7.50
	updated, err := s.UpdateRecipe(context.Background(), created.ID, domain.UpdateRecipeRequest{
		Title:       &newTitle,
		TimeMinutes: &newTime,
		Price:       &newPrice,
	}, user.ID.String(), false)
	if err != nil {
		t.Fatal(err)
	}

	if updated.Title != "Mild Curry" || updated.TimeMinutes != 30 || updated.Price != 7.50 {
		t.Fatalf("unexpected scalars: %+v", updated)
	}
	if updated.Description != "" || updated.Link != "" {
		t.Fatalf("full update must reset omitted fields, got desc=%q link=%q", updated.Description, updated.Link)
	}
}

func TestUpdateOtherUsersRecipeNotFound(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	intruder := createTestUser(t, db, "other@example.com")
	s := newTestService(db)

	created, err := s.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:       "Secret Sauce",
		TimeMinutes: 15,
		Price:       3.00,
	}, owner.ID.String())
	if err != nil {
		t.Fatal(err)
	}

	newTitle := "Stolen Sauce"
	_, err = s.UpdateRecipe(context.Background(), created.ID, domain.UpdateRecipeRequest{
		Title: &newTitle,
	}, intruder.ID.String(), true)
	if !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound got %v", err)
	}

	// Stored state must be unmodified.
	var stored entities.Recipe
	if err := db.Where("id = ?", created.ID).First(&stored).Error; err != nil {
		t.Fatal(err)
	}
	if stored.Title != "Secret Sauce" || stored.UserID != owner.ID {
		t.Fatalf("recipe mutated by intruder: %+v", stored)
	}
}

func TestDeleteOtherUsersRecipeNotFound(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	intruder := createTestUser(t, db, "other@example.com")
	s := newTestService(db)

	created, err := s.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:       "Keeper",
		TimeMinutes: 15,
		Price:       3.00,
	}, owner.ID.String())
	if err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteRecipe(context.Background(), created.ID, intruder.ID.String()); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound got %v", err)
	}
	if got := countRows(t, db, &entities.Recipe{}); got != 1 {
		t.Fatalf("recipe must survive, got %d rows", got)
	}
}

func TestDeleteRecipeKeepsTagEntities(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	s := newTestService(db)

	created, err := s.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:       "Salad",
		TimeMinutes: 10,
		Price:       4.00,
		Tags:        []domain.TagDescriptor{{Name: "Fresh"}},
		Ingredients: []domain.IngredientDescriptor{{Name: "Lettuce"}},
	}, user.ID.String())
	if err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteRecipe(context.Background(), created.ID, user.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if got := countRows(t, db, &entities.Recipe{}); got != 0 {
		t.Fatalf("expected 0 recipes got %d", got)
	}
	if got := countRows(t, db, &entities.Tag{}); got != 1 {
		t.Fatalf("tag entity must survive recipe deletion, got %d", got)
	}
	if got := countRows(t, db, &entities.Ingredient{}); got != 1 {
		t.Fatalf("ingredient entity must survive recipe deletion, got %d", got)
	}
}

func TestGetRecipesLimitedToUser(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	s := newTestService(db)

	for _, title := range []string{"A1", "A2"} {
		if _, err := s.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
			Title: title, TimeMinutes: 5, Price: 1.00,
		}, alice.ID.String()); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title: "B1", TimeMinutes: 5, Price: 1.00,
	}, bob.ID.String()); err != nil {
		t.Fatal(err)
	}

	recipes, count, err := s.GetRecipes(context.Background(), domain.RecipeListQuery{Page: 1, Limit: 20}, alice.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 || len(recipes) != 2 {
		t.Fatalf("expected 2 recipes for alice got count=%d len=%d", count, len(recipes))
	}
}

func TestGetRecipesFilterByTag(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	s := newTestService(db)

	tagged, err := s.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title: "Tagged", TimeMinutes: 5, Price: 1.00,
		Tags: []domain.TagDescriptor{{Name: "Vegan"}},
	}, user.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title: "Plain", TimeMinutes: 5, Price: 1.00,
	}, user.ID.String()); err != nil {
		t.Fatal(err)
	}

	recipes, count, err := s.GetRecipes(context.Background(), domain.RecipeListQuery{
		TagIDs: []string{tagged.Tags[0].ID},
		Page:   1,
		Limit:  20,
	}, user.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 || len(recipes) != 1 || recipes[0].Title != "Tagged" {
		t.Fatalf("expected only the tagged recipe, got count=%d recipes=%v", count, recipes)
	}
}

func TestGetRecipeDetailCrossUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	intruder := createTestUser(t, db, "other@example.com")
	s := newTestService(db)

	created, err := s.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title: "Hidden", TimeMinutes: 5, Price: 1.00,
	}, owner.ID.String())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.GetRecipeDetail(context.Background(), created.ID, intruder.ID.String()); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound got %v", err)
	}
}

func TestTagsScopedToOwnerNotRequestBody(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	s := newTestService(db)

	// Bob already has a "Vegan" tag; Alice creating a recipe with the same
	// name must get her own row, never Bob's.
	bobsTag := entities.Tag{ID: uuid.New(), UserID: bob.ID, Name: "Vegan"}
	if err := db.Create(&bobsTag).Error; err != nil {
		t.Fatal(err)
	}

	res, err := s.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title: "Bowl", TimeMinutes: 5, Price: 1.00,
		Tags: []domain.TagDescriptor{{Name: "Vegan"}},
	}, alice.ID.String())
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Tags) != 1 {
		t.Fatalf("expected 1 tag got %d", len(res.Tags))
	}
	if res.Tags[0].ID == bobsTag.ID.String() {
		t.Fatal("alice's recipe must not reference bob's tag")
	}
	if got := countRows(t, db, &entities.Tag{}); got != 2 {
		t.Fatalf("expected a fresh row for alice (2 total), got %d", got)
	}
}

// fakeStorage records object deletions so service-level tests can assert the
// image cleanup path without talking to S3.
type fakeStorage struct {
	deleted []string
}

func (f *fakeStorage) UploadFile(fileName string, file *multipart.FileHeader, dir string, allowedExt ...string) (string, error) {
	return dir + "/" + fileName, nil
}

func (f *fakeStorage) UpdateFile(objectKey string, file *multipart.FileHeader, allowedExt ...string) (string, error) {
	return objectKey, nil
}

func (f *fakeStorage) DeleteFile(objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeStorage) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.s3.test.amazonaws.com/" + objectKey
}

func (f *fakeStorage) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, "https://bucket.s3.test.amazonaws.com/")
}

func TestDeleteRecipeRemovesStoredImage(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	store := &fakeStorage{}
	s := NewRecipeService(NewRecipeRepository(db), store)

	recipe := &entities.Recipe{
		ID:       uuid.New(),
		UserID:   user.ID,
		Title:    "Smoothie",
		ImageURL: "https://bucket.s3.test.amazonaws.com/recipes/pic123.jpg",
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteRecipe(context.Background(), recipe.ID.String(), user.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if len(store.deleted) != 1 || store.deleted[0] != "recipes/pic123.jpg" {
		t.Fatalf("expected stored image object deleted, got %v", store.deleted)
	}
	if got := countRows(t, db, &entities.Recipe{}); got != 0 {
		t.Fatalf("recipe must be gone, got %d", got)
	}
}
