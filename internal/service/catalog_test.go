package service

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogTags(t *testing.T) {
	conn := newTestDB(t)
	svc := NewCatalog(conn)

	seedTag(t, conn, "dinner")
	breakfast := seedTag(t, conn, "breakfast")

	tags, err := svc.Tags()
	require.NoError(t, err)
	require.Len(t, tags, 2)
	// Ordered by name.
	assert.Equal(t, "breakfast", tags[0].Name)

	got, err := svc.Tag(breakfast.ID)
	require.NoError(t, err)
	assert.Equal(t, "breakfast", got.Name)

	_, err = svc.Tag(9999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCatalogIngredientPrefixSearch(t *testing.T) {
	conn := newTestDB(t)
	svc := NewCatalog(conn)

	seedIngredient(t, conn, "flour", "g")
	seedIngredient(t, conn, "flax seed", "g")
	seedIngredient(t, conn, "milk", "ml")

	all, err := svc.Ingredients("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	matched, err := svc.Ingredients("fl")
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "flax seed", matched[0].Name)
	assert.Equal(t, "flour", matched[1].Name)

	none, err := svc.Ingredients("zz")
	require.NoError(t, err)
	assert.Empty(t, none)

	// Wildcard characters in the prefix match literally, not everything.
	wildcard, err := svc.Ingredients("%")
	require.NoError(t, err)
	assert.Empty(t, wildcard)

	underscore, err := svc.Ingredients("m_")
	require.NoError(t, err)
	assert.Empty(t, underscore)

	_, err = svc.Ingredient(9999)
	assert.True(t, errors.Is(err, ErrNotFound))
}
