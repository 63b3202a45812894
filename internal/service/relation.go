package service

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mealdeck/recipebook-back/internal/db"
)

// Relations owns the Follow/Favorite/Cart pair rows. Adds are idempotent:
// the first one creates the row, a repeat reports ErrAlreadyExists. The
// composite unique indexes back this up under concurrent adds.
type Relations struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

func NewRelations(conn *gorm.DB, l *zap.SugaredLogger) *Relations {
	return &Relations{
		db:     conn,
		logger: l,
	}
}

func (s *Relations) Subscribe(userID, authorID uint64) (*db.User, error) {
	if userID == authorID {
		return nil, ErrSelfFollow
	}
	author := db.User{}
	if err := s.db.First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(ErrNotFound, "author")
		}
		return nil, err
	}

	row := db.Follow{UserID: userID, AuthorID: authorID}
	res := s.db.Where(db.Follow{UserID: userID, AuthorID: authorID}).FirstOrCreate(&row)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return nil, errors.Wrap(ErrAlreadyExists, "subscription")
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errors.Wrap(ErrAlreadyExists, "subscription")
	}
	return &author, nil
}

func (s *Relations) Unsubscribe(userID, authorID uint64) error {
	res := s.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&db.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(ErrNotFound, "subscription")
	}
	return nil
}

func (s *Relations) AddFavorite(userID, recipeID uint64) (*db.Recipe, error) {
	recipe, err := s.recipeByID(recipeID)
	if err != nil {
		return nil, err
	}
	row := db.Favorite{UserID: userID, RecipeID: recipeID}
	res := s.db.Where(db.Favorite{UserID: userID, RecipeID: recipeID}).FirstOrCreate(&row)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return nil, errors.Wrap(ErrAlreadyExists, "favorite")
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errors.Wrap(ErrAlreadyExists, "favorite")
	}
	return recipe, nil
}

func (s *Relations) RemoveFavorite(userID, recipeID uint64) error {
	res := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&db.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(ErrNotFound, "favorite")
	}
	return nil
}

func (s *Relations) AddToCart(userID, recipeID uint64) (*db.Recipe, error) {
	recipe, err := s.recipeByID(recipeID)
	if err != nil {
		return nil, err
	}
	row := db.Cart{UserID: userID, RecipeID: recipeID}
	res := s.db.Where(db.Cart{UserID: userID, RecipeID: recipeID}).FirstOrCreate(&row)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return nil, errors.Wrap(ErrAlreadyExists, "cart entry")
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errors.Wrap(ErrAlreadyExists, "cart entry")
	}
	return recipe, nil
}

func (s *Relations) RemoveFromCart(userID, recipeID uint64) error {
	res := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&db.Cart{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(ErrNotFound, "cart entry")
	}
	return nil
}

func (s *Relations) recipeByID(id uint64) (*db.Recipe, error) {
	recipe := db.Recipe{}
	if err := s.db.First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(ErrNotFound, "recipe")
		}
		return nil, err
	}
	return &recipe, nil
}
