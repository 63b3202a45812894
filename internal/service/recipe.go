package service

import (
	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mealdeck/recipebook-back/internal/db"
)

type (
	// IngredientAmount is one submitted (ingredient, amount) line. The same
	// ingredient may appear more than once; occurrences are merged before
	// anything is persisted.
	IngredientAmount struct {
		IngredientID uint64
		Amount       int
	}

	RecipeInput struct {
		Name        string
		Image       string
		Text        string
		CookingTime int
		Ingredients []IngredientAmount
		TagIDs      []uint64
	}

	RecipeFilter struct {
		AuthorID    uint64
		TagSlugs    []string
		FavoritedBy uint64
		InCartOf    uint64
		Limit       int
		Offset      int
	}

	Recipes struct {
		db     *gorm.DB
		logger *zap.SugaredLogger
	}
)

func NewRecipes(conn *gorm.DB, l *zap.SugaredLogger) *Recipes {
	return &Recipes{
		db:     conn,
		logger: l,
	}
}

func (s *Recipes) Create(authorID uint64, in RecipeInput) (*db.Recipe, error) {
	if err := validateRecipeInput(&in); err != nil {
		return nil, err
	}
	merged := mergeIngredientAmounts(in.Ingredients)
	tagIDs := dedupeIDs(in.TagIDs)

	model := db.Recipe{
		AuthorID:    authorID,
		Name:        in.Name,
		Image:       in.Image,
		Text:        in.Text,
		CookingTime: in.CookingTime,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := resolveRefs(tx, merged, tagIDs); err != nil {
			return err
		}
		if err := tx.Create(&model).Error; err != nil {
			return errors.Wrap(err, "create recipe")
		}
		return createAssociations(tx, model.ID, merged, tagIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(model.ID)
}

// Replace swaps the recipe's full association set for the submitted one and
// updates the scalar fields. Runs in one transaction so a mid-sequence
// failure leaves the old associations in place.
func (s *Recipes) Replace(actor *db.User, recipeID uint64, in RecipeInput) (*db.Recipe, error) {
	if err := validateRecipeInput(&in); err != nil {
		return nil, err
	}
	merged := mergeIngredientAmounts(in.Ingredients)
	tagIDs := dedupeIDs(in.TagIDs)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		model := db.Recipe{}
		if err := tx.First(&model, recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrap(ErrNotFound, "recipe")
			}
			return err
		}
		if model.AuthorID != actor.ID && !actor.IsAdmin {
			return errors.Wrap(ErrNotPermitted, "recipe author")
		}
		if err := resolveRefs(tx, merged, tagIDs); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&db.RecipeIngredient{}).Error; err != nil {
			return errors.Wrap(err, "delete recipe ingredients")
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&db.RecipeTag{}).Error; err != nil {
			return errors.Wrap(err, "delete recipe tags")
		}
		if err := createAssociations(tx, recipeID, merged, tagIDs); err != nil {
			return err
		}
		res := tx.Model(&model).Updates(map[string]interface{}{
			"name":         in.Name,
			"image":        in.Image,
			"text":         in.Text,
			"cooking_time": in.CookingTime,
		})
		return errors.Wrap(res.Error, "update recipe fields")
	})
	if err != nil {
		return nil, err
	}
	return s.Get(recipeID)
}

func (s *Recipes) Delete(actor *db.User, recipeID uint64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		model := db.Recipe{}
		if err := tx.First(&model, recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrap(ErrNotFound, "recipe")
			}
			return err
		}
		if model.AuthorID != actor.ID && !actor.IsAdmin {
			return errors.Wrap(ErrNotPermitted, "recipe author")
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&db.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&db.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&db.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&db.Cart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Recipe{}, recipeID).Error
	})
}

func (s *Recipes) Get(id uint64) (*db.Recipe, error) {
	model := db.Recipe{}
	res := s.preloaded().First(&model, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(ErrNotFound, "recipe")
		}
		return nil, res.Error
	}
	return &model, nil
}

// List returns recipes newest first. Tag slugs are conjoined: a recipe must
// carry every requested slug to match.
func (s *Recipes) List(f RecipeFilter) ([]db.Recipe, error) {
	b := squirrel.
		Select("r.id AS id").From("recipes r").
		GroupBy("r.id").
		OrderBy("r.created_at DESC", "r.id DESC")
	if f.AuthorID != 0 {
		b = b.Where(squirrel.Eq{"r.author_id": f.AuthorID})
	}
	if len(f.TagSlugs) != 0 {
		slugs := dedupeSlugs(f.TagSlugs)
		b = b.
			Join("recipe_tags rt ON rt.recipe_id = r.id").
			Join("tags t ON t.id = rt.tag_id").
			Where(squirrel.Eq{"t.slug": slugs}).
			Having("COUNT(DISTINCT t.slug) = ?", len(slugs))
	}
	if f.FavoritedBy != 0 {
		b = b.
			Join("favorites fav ON fav.recipe_id = r.id").
			Where(squirrel.Eq{"fav.user_id": f.FavoritedBy})
	}
	if f.InCartOf != 0 {
		b = b.
			Join("carts c ON c.recipe_id = r.id").
			Where(squirrel.Eq{"c.user_id": f.InCartOf})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit)).Offset(uint64(f.Offset))
	}
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	idRows := make([]struct{ ID uint64 }, 0)
	if res := s.db.Raw(sql, args...).Scan(&idRows); res.Error != nil {
		return nil, errors.Wrap(res.Error, "scan recipe ids")
	}
	if len(idRows) == 0 {
		return []db.Recipe{}, nil
	}

	ids := make([]uint64, len(idRows))
	for i := range idRows {
		ids[i] = idRows[i].ID
	}
	loaded := make([]db.Recipe, 0, len(ids))
	if res := s.preloaded().Where("id IN ?", ids).Find(&loaded); res.Error != nil {
		return nil, errors.Wrap(res.Error, "load recipes")
	}

	byID := make(map[uint64]db.Recipe, len(loaded))
	for i := range loaded {
		byID[loaded[i].ID] = loaded[i]
	}
	ordered := make([]db.Recipe, 0, len(ids))
	for _, id := range ids {
		if model, ok := byID[id]; ok {
			ordered = append(ordered, model)
		}
	}
	return ordered, nil
}

func (s *Recipes) preloaded() *gorm.DB {
	return s.db.
		Preload("Author").
		Preload("Ingredients", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("recipe_ingredients.id")
		}).
		Preload("Ingredients.Ingredient").
		Preload("Tags", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("recipe_tags.id")
		}).
		Preload("Tags.Tag")
}

func validateRecipeInput(in *RecipeInput) error {
	if in.CookingTime < 1 {
		return NewValidationError("cooking_time", "must be at least 1 minute")
	}
	if len(in.Ingredients) == 0 {
		return NewValidationError("ingredients", "add at least one ingredient")
	}
	if len(in.TagIDs) == 0 {
		return NewValidationError("tags", "add at least one tag")
	}
	for _, ia := range in.Ingredients {
		if ia.Amount < 1 {
			return NewValidationError("ingredients", "amount must be at least 1")
		}
	}
	return nil
}

// mergeIngredientAmounts folds repeated ingredient ids into one entry
// summing their amounts, keeping first-seen order.
func mergeIngredientAmounts(in []IngredientAmount) []IngredientAmount {
	index := make(map[uint64]int, len(in))
	merged := make([]IngredientAmount, 0, len(in))
	for _, ia := range in {
		if at, ok := index[ia.IngredientID]; ok {
			merged[at].Amount += ia.Amount
			continue
		}
		index[ia.IngredientID] = len(merged)
		merged = append(merged, ia)
	}
	return merged
}

func dedupeIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func dedupeSlugs(slugs []string) []string {
	seen := make(map[string]struct{}, len(slugs))
	out := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		out = append(out, slug)
	}
	return out
}

// resolveRefs checks every referenced ingredient and tag id against the
// catalog before the first row is written.
func resolveRefs(tx *gorm.DB, ingredients []IngredientAmount, tagIDs []uint64) error {
	ingredientIDs := make([]uint64, len(ingredients))
	for i := range ingredients {
		ingredientIDs[i] = ingredients[i].IngredientID
	}
	var count int64
	if err := tx.Model(&db.Ingredient{}).Where("id IN ?", ingredientIDs).Count(&count).Error; err != nil {
		return errors.Wrap(err, "count ingredients")
	}
	if count != int64(len(ingredientIDs)) {
		return errors.Wrap(ErrNotFound, "ingredient")
	}
	if err := tx.Model(&db.Tag{}).Where("id IN ?", tagIDs).Count(&count).Error; err != nil {
		return errors.Wrap(err, "count tags")
	}
	if count != int64(len(tagIDs)) {
		return errors.Wrap(ErrNotFound, "tag")
	}
	return nil
}

func createAssociations(tx *gorm.DB, recipeID uint64, ingredients []IngredientAmount, tagIDs []uint64) error {
	rows := make([]db.RecipeIngredient, len(ingredients))
	for i, ia := range ingredients {
		rows[i] = db.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: ia.IngredientID,
			Amount:       ia.Amount,
		}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return errors.Wrap(err, "create recipe ingredients")
	}
	tagRows := make([]db.RecipeTag, len(tagIDs))
	for i, tagID := range tagIDs {
		tagRows[i] = db.RecipeTag{
			RecipeID: recipeID,
			TagID:    tagID,
		}
	}
	if err := tx.Create(&tagRows).Error; err != nil {
		return errors.Wrap(err, "create recipe tags")
	}
	return nil
}
