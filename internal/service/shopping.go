package service

import (
	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type (
	// ShoppingItem is one exported shopping-list line: the summed amount of
	// an ingredient across every recipe in the cart.
	ShoppingItem struct {
		Name   string
		Unit   string
		Amount int
	}

	Shopping struct {
		db *gorm.DB
	}
)

func NewShopping(conn *gorm.DB) *Shopping {
	return &Shopping{db: conn}
}

// Export walks every recipe in the user's cart and folds the ingredient
// lines into one row per (name, unit), keeping first-encounter order. An
// empty cart exports an empty list.
func (s *Shopping) Export(userID uint64) ([]ShoppingItem, error) {
	sql, args, err := squirrel.
		Select("i.name AS name", "i.measurement_unit AS unit", "ri.amount AS amount").
		From("carts c").
		Join("recipe_ingredients ri ON ri.recipe_id = c.recipe_id").
		Join("ingredients i ON i.id = ri.ingredient_id").
		Where(squirrel.Eq{"c.user_id": userID}).
		OrderBy("c.id", "ri.id").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	lines := make([]ShoppingItem, 0)
	res := s.db.Raw(sql, args...).Scan(&lines)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "scan cart lines")
	}

	type key struct {
		name string
		unit string
	}
	index := make(map[key]int, len(lines))
	items := make([]ShoppingItem, 0, len(lines))
	for _, line := range lines {
		k := key{name: line.Name, unit: line.Unit}
		if at, ok := index[k]; ok {
			items[at].Amount += line.Amount
			continue
		}
		index[k] = len(items)
		items = append(items, line)
	}
	return items, nil
}
