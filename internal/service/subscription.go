package service

import (
	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/mealdeck/recipebook-back/internal/db"
)

type (
	// Subscription is one followed author together with their recipes,
	// possibly capped, plus the uncapped count.
	Subscription struct {
		Author       db.User
		Recipes      []db.Recipe
		RecipesCount int
	}

	Subscriptions struct {
		db *gorm.DB
	}
)

func NewSubscriptions(conn *gorm.DB) *Subscriptions {
	return &Subscriptions{db: conn}
}

// List returns every author the viewer follows, in follow order. A nil
// recipesLimit returns all of each author's recipes; zero caps every list
// to empty while the counts stay uncapped. One grouped count and one
// recipe fetch cover the whole feed.
func (s *Subscriptions) List(viewerID uint64, recipesLimit *int) ([]Subscription, error) {
	if recipesLimit != nil && *recipesLimit < 0 {
		return nil, NewValidationError("recipes_limit", "must be a non-negative integer")
	}

	follows := make([]db.Follow, 0)
	res := s.db.Preload("Author").Where("user_id = ?", viewerID).Order("id").Find(&follows)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "load follows")
	}
	if len(follows) == 0 {
		return []Subscription{}, nil
	}

	authorIDs := make([]uint64, len(follows))
	for i := range follows {
		authorIDs[i] = follows[i].AuthorID
	}

	counts, err := s.recipeCounts(authorIDs)
	if err != nil {
		return nil, err
	}

	byAuthor := make(map[uint64][]db.Recipe, len(authorIDs))
	if recipesLimit == nil || *recipesLimit > 0 {
		recipes := make([]db.Recipe, 0)
		res := s.db.Where("author_id IN ?", authorIDs).Order("created_at DESC, id DESC").Find(&recipes)
		if res.Error != nil {
			return nil, errors.Wrap(res.Error, "load author recipes")
		}
		for _, recipe := range recipes {
			kept := byAuthor[recipe.AuthorID]
			if recipesLimit != nil && len(kept) >= *recipesLimit {
				continue
			}
			byAuthor[recipe.AuthorID] = append(kept, recipe)
		}
	}

	subscriptions := make([]Subscription, 0, len(follows))
	for _, follow := range follows {
		recipes := byAuthor[follow.AuthorID]
		if recipes == nil {
			recipes = []db.Recipe{}
		}
		subscriptions = append(subscriptions, Subscription{
			Author:       follow.Author,
			Recipes:      recipes,
			RecipesCount: counts[follow.AuthorID],
		})
	}
	return subscriptions, nil
}

func (s *Subscriptions) recipeCounts(authorIDs []uint64) (map[uint64]int, error) {
	sql, args, err := squirrel.
		Select("author_id AS id", "COUNT(*) AS total").
		From("recipes").
		Where(squirrel.Eq{"author_id": authorIDs}).
		GroupBy("author_id").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	rows := make([]struct {
		ID    uint64
		Total int
	}, 0)
	res := s.db.Raw(sql, args...).Scan(&rows)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "scan recipe counts")
	}

	counts := make(map[uint64]int, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Total
	}
	return counts, nil
}
