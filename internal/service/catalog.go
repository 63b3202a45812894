package service

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/mealdeck/recipebook-back/internal/db"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Catalog serves the read-mostly tag and ingredient reference data.
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(conn *gorm.DB) *Catalog {
	return &Catalog{db: conn}
}

func (s *Catalog) Tags() ([]db.Tag, error) {
	tags := make([]db.Tag, 0)
	res := s.db.Order("name").Find(&tags)
	if res.Error != nil {
		return nil, res.Error
	}
	return tags, nil
}

func (s *Catalog) Tag(id uint64) (*db.Tag, error) {
	tag := db.Tag{}
	res := s.db.First(&tag, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(ErrNotFound, "tag")
		}
		return nil, res.Error
	}
	return &tag, nil
}

// Ingredients lists reference ingredients, optionally narrowed to a name prefix.
func (s *Catalog) Ingredients(namePrefix string) ([]db.Ingredient, error) {
	ingredients := make([]db.Ingredient, 0)
	q := s.db.Order("name")
	if namePrefix != "" {
		// The prefix is user input; % and _ must match literally.
		q = q.Where(`name LIKE ? ESCAPE '\'`, likeEscaper.Replace(namePrefix)+"%")
	}
	res := q.Find(&ingredients)
	if res.Error != nil {
		return nil, res.Error
	}
	return ingredients, nil
}

func (s *Catalog) Ingredient(id uint64) (*db.Ingredient, error) {
	ingredient := db.Ingredient{}
	res := s.db.First(&ingredient, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(ErrNotFound, "ingredient")
		}
		return nil, res.Error
	}
	return &ingredient, nil
}
