package transport

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mealdeck/recipebook-back/internal/config"
	"github.com/mealdeck/recipebook-back/internal/db"
	"github.com/mealdeck/recipebook-back/internal/service"
)

func newTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	l := zap.NewNop().Sugar()
	cfg := &config.Config{Host: "127.0.0.1", Port: "0"}

	server := NewHTTPServer(
		fxtest.NewLifecycle(t),
		cfg,
		conn,
		l,
		service.NewAuth(conn, l),
		service.NewCatalog(conn),
		service.NewRecipes(conn, l),
		service.NewRelations(conn, l),
		service.NewView(conn),
		service.NewShopping(conn),
		service.NewSubscriptions(conn),
	)

	ts := httptest.NewServer(server.echo)
	t.Cleanup(ts.Close)
	return ts, conn
}

func registerUser(t *testing.T, ts *httptest.Server, username string) string {
	t.Helper()
	got := TokenResp{}
	resp, err := resty.New().R().
		SetHeader("Content-Type", "application/json").
		SetResult(&got).
		SetBody(fmt.Sprintf(`{
			"email": "%s@example.com",
			"username": "%s",
			"first_name": "Test",
			"last_name": "User",
			"password": "longenoughpassword"
		}`, username, username)).
		Post(ts.URL + "/auth/register")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.NotEmpty(t, got.Token)
	return got.Token
}

func seedCatalog(t *testing.T, conn *gorm.DB) (*db.Tag, *db.Ingredient, *db.Ingredient) {
	t.Helper()
	tag := db.Tag{Name: "dinner", Color: "#ff0000", Slug: "dinner"}
	require.NoError(t, conn.Create(&tag).Error)
	flour := db.Ingredient{Name: "flour", MeasurementUnit: "g"}
	require.NoError(t, conn.Create(&flour).Error)
	milk := db.Ingredient{Name: "milk", MeasurementUnit: "ml"}
	require.NoError(t, conn.Create(&milk).Error)
	return &tag, &flour, &milk
}

func createRecipe(t *testing.T, ts *httptest.Server, token, name string, tagID uint64, lines ...RecipeIngredientReq) RecipeResp {
	t.Helper()
	body := struct {
		Name        string                `json:"name"`
		Image       string                `json:"image"`
		Text        string                `json:"text"`
		CookingTime int                   `json:"cooking_time"`
		Ingredients []RecipeIngredientReq `json:"ingredients"`
		Tags        []uint64              `json:"tags"`
	}{
		Name:        name,
		Image:       "blob-ref",
		Text:        "cook it",
		CookingTime: 30,
		Ingredients: lines,
		Tags:        []uint64{tagID},
	}
	got := RecipeResp{}
	resp, err := resty.New().R().
		SetHeader("X-Token", token).
		SetResult(&got).
		SetBody(&body).
		Post(ts.URL + "/api/recipes")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())
	return got
}

func TestRegisterValidation(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := resty.New().R().
		SetHeader("Content-Type", "application/json").
		SetBody(`{"something": "???"}`).
		Post(ts.URL + "/auth/register")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
}

func TestRecipeLifecycle(t *testing.T) {
	ts, conn := newTestServer(t)
	token := registerUser(t, ts, "author")
	tag, flour, milk := seedCatalog(t, conn)

	created := createRecipe(t, ts, token, "pancakes", tag.ID,
		RecipeIngredientReq{ID: flour.ID, Amount: 2},
		RecipeIngredientReq{ID: flour.ID, Amount: 3},
		RecipeIngredientReq{ID: milk.ID, Amount: 300},
	)

	// Duplicate flour lines merged into one summed row.
	require.Len(t, created.Ingredients, 2)
	assert.Equal(t, "flour", created.Ingredients[0].Name)
	assert.Equal(t, 5, created.Ingredients[0].Amount)
	assert.Equal(t, "g", created.Ingredients[0].MeasurementUnit)
	assert.Equal(t, 300, created.Ingredients[1].Amount)

	require.Len(t, created.Tags, 1)
	assert.Equal(t, "dinner", created.Tags[0].Name)
	assert.Equal(t, "author", created.Author.Username)
	assert.False(t, created.IsFavorited)

	// Anonymous read: personalization flags are false and no auth needed.
	listed := make([]RecipeResp, 0)
	resp, err := resty.New().R().
		SetResult(&listed).
		Get(ts.URL + "/api/recipes")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.False(t, listed[0].IsFavorited)
	assert.False(t, listed[0].IsInShoppingCart)

	// Anonymous write is rejected.
	resp, err = resty.New().R().
		SetBody(`{}`).
		Post(ts.URL + "/api/recipes")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
}

func TestRecipeUpdatePermissions(t *testing.T) {
	ts, conn := newTestServer(t)
	authorToken := registerUser(t, ts, "author")
	otherToken := registerUser(t, ts, "other")
	tag, flour, _ := seedCatalog(t, conn)

	created := createRecipe(t, ts, authorToken, "bread", tag.ID,
		RecipeIngredientReq{ID: flour.ID, Amount: 500},
	)

	body := fmt.Sprintf(`{
		"name": "stolen bread",
		"image": "blob-ref",
		"text": "bake",
		"cooking_time": 10,
		"ingredients": [{"id": %d, "amount": 1}],
		"tags": [%d]
	}`, flour.ID, tag.ID)

	resp, err := resty.New().R().
		SetHeader("X-Token", otherToken).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Patch(fmt.Sprintf("%s/api/recipes/%d", ts.URL, created.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())

	resp, err = resty.New().R().
		SetHeader("X-Token", authorToken).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Patch(fmt.Sprintf("%s/api/recipes/%d", ts.URL, created.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}

func TestRecipeCreateBadCookingTime(t *testing.T) {
	ts, conn := newTestServer(t)
	token := registerUser(t, ts, "author")
	tag, flour, _ := seedCatalog(t, conn)

	body := fmt.Sprintf(`{
		"name": "instant",
		"image": "blob-ref",
		"text": "none",
		"cooking_time": 0,
		"ingredients": [{"id": %d, "amount": 1}],
		"tags": [%d]
	}`, flour.ID, tag.ID)
	resp, err := resty.New().R().
		SetHeader("X-Token", token).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(ts.URL + "/api/recipes")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
}

func TestFavoriteAndCartFlow(t *testing.T) {
	ts, conn := newTestServer(t)
	authorToken := registerUser(t, ts, "author")
	eaterToken := registerUser(t, ts, "eater")
	tag, flour, milk := seedCatalog(t, conn)

	pancakes := createRecipe(t, ts, authorToken, "pancakes", tag.ID,
		RecipeIngredientReq{ID: flour.ID, Amount: 2},
		RecipeIngredientReq{ID: milk.ID, Amount: 300},
	)
	cake := createRecipe(t, ts, authorToken, "cake", tag.ID,
		RecipeIngredientReq{ID: flour.ID, Amount: 5},
	)

	// Favorite: first add creates, repeat is a client error.
	card := RecipeCardResp{}
	resp, err := resty.New().R().
		SetHeader("X-Token", eaterToken).
		SetResult(&card).
		Post(fmt.Sprintf("%s/api/recipes/%d/favorite", ts.URL, pancakes.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())
	assert.Equal(t, "pancakes", card.Name)

	resp, err = resty.New().R().
		SetHeader("X-Token", eaterToken).
		Post(fmt.Sprintf("%s/api/recipes/%d/favorite", ts.URL, pancakes.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())

	// Cart both recipes, then the export sums flour across them.
	for _, id := range []uint64{pancakes.ID, cake.ID} {
		resp, err = resty.New().R().
			SetHeader("X-Token", eaterToken).
			Post(fmt.Sprintf("%s/api/recipes/%d/shopping_cart", ts.URL, id))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode())
	}

	resp, err = resty.New().R().
		SetHeader("X-Token", eaterToken).
		Get(ts.URL + "/api/recipes/download_shopping_cart")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t,
		"Ingredient,Unit,Amount\nflour,g,7\nmilk,ml,300\n",
		string(resp.Body()))

	// Personalized flags from the eater's point of view.
	listed := make([]RecipeResp, 0)
	resp, err = resty.New().R().
		SetHeader("X-Token", eaterToken).
		SetResult(&listed).
		Get(ts.URL + "/api/recipes")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.Len(t, listed, 2)
	for _, recipe := range listed {
		if recipe.ID == pancakes.ID {
			assert.True(t, recipe.IsFavorited)
		} else {
			assert.False(t, recipe.IsFavorited)
		}
		assert.True(t, recipe.IsInShoppingCart)
	}

	// Remove from cart, then removing again reports not found.
	resp, err = resty.New().R().
		SetHeader("X-Token", eaterToken).
		Delete(fmt.Sprintf("%s/api/recipes/%d/shopping_cart", ts.URL, cake.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode())

	resp, err = resty.New().R().
		SetHeader("X-Token", eaterToken).
		Delete(fmt.Sprintf("%s/api/recipes/%d/shopping_cart", ts.URL, cake.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestSubscriptionFlow(t *testing.T) {
	ts, conn := newTestServer(t)
	authorToken := registerUser(t, ts, "author")
	readerToken := registerUser(t, ts, "reader")
	tag, flour, _ := seedCatalog(t, conn)

	for _, name := range []string{"one", "two", "three"} {
		createRecipe(t, ts, authorToken, name, tag.ID,
			RecipeIngredientReq{ID: flour.ID, Amount: 1})
	}

	author := db.User{}
	require.NoError(t, conn.Where("username = ?", "author").First(&author).Error)
	reader := db.User{}
	require.NoError(t, conn.Where("username = ?", "reader").First(&reader).Error)

	// Self-subscribe is rejected up front.
	resp, err := resty.New().R().
		SetHeader("X-Token", readerToken).
		Post(fmt.Sprintf("%s/api/users/%d/subscribe", ts.URL, reader.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())

	sub := SubscriptionResp{}
	resp, err = resty.New().R().
		SetHeader("X-Token", readerToken).
		SetResult(&sub).
		Post(fmt.Sprintf("%s/api/users/%d/subscribe", ts.URL, author.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())
	assert.True(t, sub.IsSubscribed)
	assert.Equal(t, 3, sub.RecipesCount)

	feed := make([]SubscriptionResp, 0)
	resp, err = resty.New().R().
		SetHeader("X-Token", readerToken).
		SetResult(&feed).
		Get(ts.URL + "/api/users/subscriptions?recipes_limit=2")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.Len(t, feed, 1)
	assert.Equal(t, "author", feed[0].Username)
	assert.True(t, feed[0].IsSubscribed)
	assert.Len(t, feed[0].Recipes, 2)
	assert.Equal(t, 3, feed[0].RecipesCount)

	resp, err = resty.New().R().
		SetHeader("X-Token", readerToken).
		Get(ts.URL + "/api/users/subscriptions?recipes_limit=abc")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())

	resp, err = resty.New().R().
		SetHeader("X-Token", readerToken).
		Delete(fmt.Sprintf("%s/api/users/%d/subscribe", ts.URL, author.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode())
}

func TestIngredientSearch(t *testing.T) {
	ts, conn := newTestServer(t)
	seedCatalog(t, conn)

	matched := make([]IngredientResp, 0)
	resp, err := resty.New().R().
		SetResult(&matched).
		Get(ts.URL + "/api/ingredients?name=fl")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.Len(t, matched, 1)
	assert.Equal(t, "flour", matched[0].Name)
}
