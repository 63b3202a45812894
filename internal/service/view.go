package service

import (
	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type (
	// Viewer is the acting identity resolved by the transport layer. An
	// unauthenticated viewer never triggers a store lookup, whatever its ID.
	Viewer struct {
		ID            uint64
		Authenticated bool
	}

	RecipeFlags struct {
		Favorited bool
		InCart    bool
	}

	// View computes the per-viewer personalization flags. For a whole page
	// of recipes it issues exactly one batched existence query per flag
	// type.
	View struct {
		db *gorm.DB
	}
)

func NewView(conn *gorm.DB) *View {
	return &View{db: conn}
}

func AnonymousViewer() Viewer {
	return Viewer{}
}

func UserViewer(id uint64) Viewer {
	return Viewer{ID: id, Authenticated: true}
}

func (s *View) RecipeFlags(viewer Viewer, recipeIDs []uint64) (map[uint64]RecipeFlags, error) {
	flags := make(map[uint64]RecipeFlags, len(recipeIDs))
	if !viewer.Authenticated || len(recipeIDs) == 0 {
		return flags, nil
	}
	favorited, err := s.pairExists("favorites", "recipe_id", viewer.ID, recipeIDs)
	if err != nil {
		return nil, errors.Wrap(err, "favorites lookup")
	}
	inCart, err := s.pairExists("carts", "recipe_id", viewer.ID, recipeIDs)
	if err != nil {
		return nil, errors.Wrap(err, "carts lookup")
	}
	for _, id := range recipeIDs {
		flags[id] = RecipeFlags{
			Favorited: favorited[id],
			InCart:    inCart[id],
		}
	}
	return flags, nil
}

func (s *View) SubscribedAuthors(viewer Viewer, authorIDs []uint64) (map[uint64]bool, error) {
	if !viewer.Authenticated || len(authorIDs) == 0 {
		return map[uint64]bool{}, nil
	}
	subscribed, err := s.pairExists("follows", "author_id", viewer.ID, authorIDs)
	if err != nil {
		return nil, errors.Wrap(err, "follows lookup")
	}
	return subscribed, nil
}

func (s *View) pairExists(table, targetColumn string, userID uint64, targetIDs []uint64) (map[uint64]bool, error) {
	sql, args, err := squirrel.
		Select(targetColumn + " AS id").From(table).
		Where(squirrel.Eq{
			"user_id":    userID,
			targetColumn: targetIDs,
		}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	rows := make([]struct{ ID uint64 }, 0)
	res := s.db.Raw(sql, args...).Scan(&rows)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "scan")
	}

	exists := make(map[uint64]bool, len(rows))
	for _, row := range rows {
		exists[row.ID] = true
	}
	return exists, nil
}
