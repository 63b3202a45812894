package transport

import (
	"context"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mealdeck/recipebook-back/internal/config"
	"github.com/mealdeck/recipebook-back/internal/db"
	"github.com/mealdeck/recipebook-back/internal/service"
)

type (
	RegisterReq struct {
		Email     string `json:"email" validate:"required,email"`
		Username  string `json:"username" validate:"required"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Password  string `json:"password" validate:"required,min=8"`
	}

	LoginReq struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	TokenResp struct {
		Token string `json:"token"`
	}

	RecipeIngredientReq struct {
		ID     uint64 `json:"id" validate:"required"`
		Amount int    `json:"amount"`
	}

	RecipeReq struct {
		Name        string                `json:"name" validate:"required"`
		Image       string                `json:"image" validate:"required"`
		Text        string                `json:"text" validate:"required"`
		CookingTime int                   `json:"cooking_time"`
		Ingredients []RecipeIngredientReq `json:"ingredients"`
		Tags        []uint64              `json:"tags"`
	}

	UserResp struct {
		Email        string `json:"email"`
		ID           uint64 `json:"id"`
		Username     string `json:"username"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		IsSubscribed bool   `json:"is_subscribed"`
	}

	TagResp struct {
		ID    uint64 `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	}

	IngredientResp struct {
		ID              uint64 `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}

	RecipeIngredientResp struct {
		ID              uint64 `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	RecipeResp struct {
		ID               uint64                 `json:"id"`
		Tags             []TagResp              `json:"tags"`
		Author           UserResp               `json:"author"`
		Ingredients      []RecipeIngredientResp `json:"ingredients"`
		IsFavorited      bool                   `json:"is_favorited"`
		IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
		Name             string                 `json:"name"`
		Image            string                 `json:"image"`
		Text             string                 `json:"text"`
		CookingTime      int                    `json:"cooking_time"`
	}

	RecipeCardResp struct {
		ID          uint64 `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}

	SubscriptionResp struct {
		UserResp
		Recipes      []RecipeCardResp `json:"recipes"`
		RecipesCount int              `json:"recipes_count"`
	}

	ErrorResp struct {
		Error string `json:"error"`
	}

	CustomValidator struct {
		validator *validator.Validate
	}

	HTTPServer struct {
		echo          *echo.Echo
		db            *gorm.DB
		logger        *zap.SugaredLogger
		auth          *service.Auth
		catalog       *service.Catalog
		recipes       *service.Recipes
		relations     *service.Relations
		view          *service.View
		shopping      *service.Shopping
		subscriptions *service.Subscriptions
	}
)

func NewHTTPServer(
	lc fx.Lifecycle,
	cfg *config.Config,
	conn *gorm.DB,
	logger *zap.SugaredLogger,
	auth *service.Auth,
	catalog *service.Catalog,
	recipes *service.Recipes,
	relations *service.Relations,
	view *service.View,
	shopping *service.Shopping,
	subscriptions *service.Subscriptions,
) *HTTPServer {
	e := echo.New()

	instance := HTTPServer{
		echo:          e,
		db:            conn,
		logger:        logger,
		auth:          auth,
		catalog:       catalog,
		recipes:       recipes,
		relations:     relations,
		view:          view,
		shopping:      shopping,
		subscriptions: subscriptions,
	}

	e.POST("/auth/register", instance.Register)
	e.POST("/auth/login", instance.Login)

	api := e.Group("/api")

	api.GET("/tags", instance.TagList)
	api.GET("/tags/:id", instance.TagGet)
	api.GET("/ingredients", instance.IngredientList)
	api.GET("/ingredients/:id", instance.IngredientGet)

	api.GET("/recipes", instance.RecipeList)
	api.POST("/recipes", instance.RecipeCreate)
	api.GET("/recipes/download_shopping_cart", instance.ShoppingCartDownload)
	api.GET("/recipes/:id", instance.RecipeGet)
	api.PATCH("/recipes/:id", instance.RecipeUpdate)
	api.DELETE("/recipes/:id", instance.RecipeDelete)
	api.POST("/recipes/:id/favorite", instance.FavoriteAdd)
	api.DELETE("/recipes/:id/favorite", instance.FavoriteRemove)
	api.POST("/recipes/:id/shopping_cart", instance.CartAdd)
	api.DELETE("/recipes/:id/shopping_cart", instance.CartRemove)

	api.GET("/users/subscriptions", instance.SubscriptionList)
	api.GET("/users/me", instance.UserMe)
	api.GET("/users/:id", instance.UserGet)
	api.POST("/users/:id/subscribe", instance.Subscribe)
	api.DELETE("/users/:id/subscribe", instance.Unsubscribe)

	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Use(instance.AuthMiddleware)

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = instance.ErrorHandler

	echo.NotFoundHandler = func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				listen := cfg.Host + ":" + cfg.Port
				if err := e.Start(listen); err != nil && err != http.ErrServerClosed {
					e.Logger.Fatal("shutting down the server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server.")
			return e.Shutdown(ctx)
		},
	})

	return &instance
}

func (s *HTTPServer) Register(c echo.Context) error {
	req := RegisterReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := s.auth.Register(service.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &TokenResp{Token: token})
}

func (s *HTTPServer) Login(c echo.Context) error {
	req := LoginReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := s.auth.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrLoginUserNotFound) || errors.Is(err, service.ErrLoginPasswordDoesNotMatch) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid credentials")
		}
		return err
	}
	return c.JSON(http.StatusOK, &TokenResp{Token: token})
}

func (s *HTTPServer) TagList(c echo.Context) error {
	tags, err := s.catalog.Tags()
	if err != nil {
		return err
	}
	resp := make([]TagResp, len(tags))
	for i := range tags {
		resp[i] = tagResp(&tags[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) TagGet(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	tag, err := s.catalog.Tag(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tagResp(tag))
}

func (s *HTTPServer) IngredientList(c echo.Context) error {
	ingredients, err := s.catalog.Ingredients(c.QueryParam("name"))
	if err != nil {
		return err
	}
	resp := make([]IngredientResp, len(ingredients))
	for i := range ingredients {
		resp[i] = IngredientResp{
			ID:              ingredients[i].ID,
			Name:            ingredients[i].Name,
			MeasurementUnit: ingredients[i].MeasurementUnit,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) IngredientGet(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	ingredient, err := s.catalog.Ingredient(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, IngredientResp{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	})
}

func (s *HTTPServer) RecipeList(c echo.Context) error {
	viewer := GetViewer(c)

	filter := service.RecipeFilter{
		TagSlugs: c.QueryParams()["tags"],
	}
	if raw := c.QueryParam("author"); raw != "" {
		authorID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid query param 'author'")
		}
		filter.AuthorID = authorID
	}
	if viewer.Authenticated && c.QueryParam("is_favorited") == "1" {
		filter.FavoritedBy = viewer.ID
	}
	if viewer.Authenticated && c.QueryParam("is_in_shopping_cart") == "1" {
		filter.InCartOf = viewer.ID
	}
	limit, page, err := parsePagination(c)
	if err != nil {
		return err
	}
	if limit > 0 {
		filter.Limit = limit
		filter.Offset = (page - 1) * limit
	}

	recipes, err := s.recipes.List(filter)
	if err != nil {
		return err
	}
	resp, err := s.renderRecipes(viewer, recipes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) RecipeGet(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	recipe, err := s.recipes.Get(id)
	if err != nil {
		return err
	}
	resp, err := s.renderRecipes(GetViewer(c), []db.Recipe{*recipe})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp[0])
}

func (s *HTTPServer) RecipeCreate(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := RecipeReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	recipe, err := s.recipes.Create(user.ID, recipeInput(&req))
	if err != nil {
		return err
	}
	resp, err := s.renderRecipes(service.UserViewer(user.ID), []db.Recipe{*recipe})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp[0])
}

func (s *HTTPServer) RecipeUpdate(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := RecipeReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	recipe, err := s.recipes.Replace(user, id, recipeInput(&req))
	if err != nil {
		return err
	}
	resp, err := s.renderRecipes(service.UserViewer(user.ID), []db.Recipe{*recipe})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp[0])
}

func (s *HTTPServer) RecipeDelete(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}
	if err := s.recipes.Delete(user, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) FavoriteAdd(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}
	recipe, err := s.relations.AddFavorite(user.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, recipeCardResp(recipe))
}

func (s *HTTPServer) FavoriteRemove(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}
	if err := s.relations.RemoveFavorite(user.ID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) CartAdd(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}
	recipe, err := s.relations.AddToCart(user.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, recipeCardResp(recipe))
}

func (s *HTTPServer) CartRemove(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}
	if err := s.relations.RemoveFromCart(user.ID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) ShoppingCartDownload(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}
	items, err := s.shopping.Export(user.ID)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="shopping_cart.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"Ingredient", "Unit", "Amount"}); err != nil {
		return err
	}
	for _, item := range items {
		if err := w.Write([]string{item.Name, item.Unit, strconv.Itoa(item.Amount)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *HTTPServer) UserGet(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	user, err := s.auth.UserByID(id)
	if err != nil {
		return err
	}
	subscribed, err := s.view.SubscribedAuthors(GetViewer(c), []uint64{user.ID})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResp(user, subscribed[user.ID]))
}

func (s *HTTPServer) UserMe(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResp(user, false))
}

func (s *HTTPServer) Subscribe(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}
	author, err := s.relations.Subscribe(user.ID, id)
	if err != nil {
		return err
	}
	resp, err := s.renderSubscription(author, nil)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

func (s *HTTPServer) Unsubscribe(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}
	if err := s.relations.Unsubscribe(user.ID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) SubscriptionList(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	var recipesLimit *int
	if raw := c.QueryParam("recipes_limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return service.NewValidationError("recipes_limit", "must be a non-negative integer")
		}
		recipesLimit = &parsed
	}

	subscriptions, err := s.subscriptions.List(user.ID, recipesLimit)
	if err != nil {
		return err
	}
	resp := make([]SubscriptionResp, len(subscriptions))
	for i := range subscriptions {
		cards := make([]RecipeCardResp, len(subscriptions[i].Recipes))
		for j := range subscriptions[i].Recipes {
			cards[j] = recipeCardResp(&subscriptions[i].Recipes[j])
		}
		resp[i] = SubscriptionResp{
			UserResp:     userResp(&subscriptions[i].Author, true),
			Recipes:      cards,
			RecipesCount: subscriptions[i].RecipesCount,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// renderSubscription builds the author profile returned by a fresh
// subscribe: every recipe card plus the total, is_subscribed true by
// construction.
func (s *HTTPServer) renderSubscription(author *db.User, recipesLimit *int) (*SubscriptionResp, error) {
	recipes, err := s.recipes.List(service.RecipeFilter{AuthorID: author.ID})
	if err != nil {
		return nil, err
	}
	count := len(recipes)
	if recipesLimit != nil && *recipesLimit < count {
		recipes = recipes[:*recipesLimit]
	}
	cards := make([]RecipeCardResp, len(recipes))
	for i := range recipes {
		cards[i] = recipeCardResp(&recipes[i])
	}
	return &SubscriptionResp{
		UserResp:     userResp(author, true),
		Recipes:      cards,
		RecipesCount: count,
	}, nil
}

// renderRecipes assembles the full representations for a batch of recipes
// with one flags query per flag type, not one per recipe.
func (s *HTTPServer) renderRecipes(viewer service.Viewer, recipes []db.Recipe) ([]RecipeResp, error) {
	recipeIDs := make([]uint64, len(recipes))
	authorIDs := make([]uint64, len(recipes))
	for i := range recipes {
		recipeIDs[i] = recipes[i].ID
		authorIDs[i] = recipes[i].AuthorID
	}

	flags, err := s.view.RecipeFlags(viewer, recipeIDs)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.view.SubscribedAuthors(viewer, authorIDs)
	if err != nil {
		return nil, err
	}

	resp := make([]RecipeResp, len(recipes))
	for i := range recipes {
		recipe := &recipes[i]

		tags := make([]TagResp, len(recipe.Tags))
		for j := range recipe.Tags {
			tags[j] = tagResp(&recipe.Tags[j].Tag)
		}
		ingredients := make([]RecipeIngredientResp, len(recipe.Ingredients))
		for j := range recipe.Ingredients {
			line := &recipe.Ingredients[j]
			ingredients[j] = RecipeIngredientResp{
				ID:              line.IngredientID,
				Name:            line.Ingredient.Name,
				MeasurementUnit: line.Ingredient.MeasurementUnit,
				Amount:          line.Amount,
			}
		}

		resp[i] = RecipeResp{
			ID:               recipe.ID,
			Tags:             tags,
			Author:           userResp(&recipe.Author, subscribed[recipe.AuthorID]),
			Ingredients:      ingredients,
			IsFavorited:      flags[recipe.ID].Favorited,
			IsInShoppingCart: flags[recipe.ID].InCart,
			Name:             recipe.Name,
			Image:            recipe.Image,
			Text:             recipe.Text,
			CookingTime:      recipe.CookingTime,
		}
	}
	return resp, nil
}

func (s *HTTPServer) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := ""
		for key, values := range c.Request().Header {
			if strings.ToLower(key) == "x-token" {
				token = values[0]
				break
			}
		}
		if token == "" {
			return next(c)
		}
		user := db.User{}
		res := s.db.Where("token = ?", token).First(&user)
		if res.Error != nil {
			c.Logger().Error(errors.Wrap(res.Error, "find user in db"))
			return c.NoContent(http.StatusUnauthorized)
		}

		c.Set("user", &user)
		return next(c)
	}
}

func (s *HTTPServer) ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = c.JSON(httpErr.Code, ErrorResp{Error: errorMessage(httpErr.Message)})
		return
	}

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		_ = c.JSON(http.StatusBadRequest, ErrorResp{Error: validationErr.Error()})
	case errors.Is(err, service.ErrAlreadyExists), errors.Is(err, service.ErrSelfFollow):
		_ = c.JSON(http.StatusBadRequest, ErrorResp{Error: err.Error()})
	case errors.Is(err, service.ErrNotPermitted):
		_ = c.JSON(http.StatusForbidden, ErrorResp{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		_ = c.JSON(http.StatusNotFound, ErrorResp{Error: err.Error()})
	default:
		s.logger.Errorw("unhandled error", "path", c.Path(), "error", err)
		_ = c.JSON(http.StatusInternalServerError, ErrorResp{Error: "internal server error"})
	}
}

////////

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func BindAndValidate(c echo.Context, v interface{}) error {
	var err error
	if err = c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err = c.Validate(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func GetUserFromContext(c echo.Context) (*db.User, error) {
	user, _ := c.Get("user").(*db.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return user, nil
}

func GetViewer(c echo.Context) service.Viewer {
	user, _ := c.Get("user").(*db.User)
	if user == nil {
		return service.AnonymousViewer()
	}
	return service.UserViewer(user.ID)
}

func GetParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if value == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid path param '"+name+"'")
	}
	return value, nil
}

func GetAndParseParam(c echo.Context, name string) (uint64, error) {
	v, e := GetParam(c, name)
	if e != nil {
		return 0, e
	}
	vv, e := strconv.ParseUint(v, 10, 64)
	if e != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid path param '"+name+"'")
	}
	return vv, nil
}

func parsePagination(c echo.Context) (limit, page int, err error) {
	page = 1
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid query param 'limit'")
		}
	}
	if raw := c.QueryParam("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid query param 'page'")
		}
	}
	return limit, page, nil
}

func errorMessage(msg interface{}) string {
	if str, ok := msg.(string); ok {
		return str
	}
	return http.StatusText(http.StatusInternalServerError)
}

func tagResp(tag *db.Tag) TagResp {
	return TagResp{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}

func userResp(user *db.User, subscribed bool) UserResp {
	return UserResp{
		Email:        user.Email,
		ID:           user.ID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: subscribed,
	}
}

func recipeCardResp(recipe *db.Recipe) RecipeCardResp {
	return RecipeCardResp{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

func recipeInput(req *RecipeReq) service.RecipeInput {
	ingredients := make([]service.IngredientAmount, len(req.Ingredients))
	for i := range req.Ingredients {
		ingredients[i] = service.IngredientAmount{
			IngredientID: req.Ingredients[i].ID,
			Amount:       req.Ingredients[i].Amount,
		}
	}
	return service.RecipeInput{
		Name:        req.Name,
		Image:       req.Image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Ingredients: ingredients,
		TagIDs:      req.Tags,
	}
}
