package db

import (
	"fmt"
	stdlog "log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mealdeck/recipebook-back/internal/config"
)

type (
	BaseModel struct {
		ID        uint64 `gorm:"primarykey"`
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	User struct {
		BaseModel
		Email     string `gorm:"unique;not null"`
		Username  string `gorm:"unique;not null"`
		FirstName string
		LastName  string
		Password  string `gorm:"not null"`
		Token     string `gorm:"not null;index"`
		IsAdmin   bool   `gorm:"not null;default:false"`
		Recipes   []Recipe `gorm:"foreignKey:AuthorID"`
	}

	Tag struct {
		BaseModel
		Name  string `gorm:"unique;not null"`
		Color string `gorm:"unique;not null"`
		Slug  string `gorm:"unique;not null"`
	}

	Ingredient struct {
		BaseModel
		Name            string `gorm:"unique;not null"`
		MeasurementUnit string `gorm:"not null"`
	}

	Recipe struct {
		BaseModel
		AuthorID    uint64 `gorm:"not null;index"`
		Author      User
		Name        string `gorm:"not null"`
		Image       string
		Text        string
		CookingTime int `gorm:"not null"`
		Ingredients []RecipeIngredient
		Tags        []RecipeTag
	}

	RecipeIngredient struct {
		BaseModel
		RecipeID     uint64 `gorm:"not null;uniqueIndex:uidx_recipe_ingredient"`
		IngredientID uint64 `gorm:"not null;uniqueIndex:uidx_recipe_ingredient"`
		Ingredient   Ingredient
		Amount       int `gorm:"not null"`
	}

	RecipeTag struct {
		BaseModel
		RecipeID uint64 `gorm:"not null;uniqueIndex:uidx_recipe_tag"`
		TagID    uint64 `gorm:"not null;uniqueIndex:uidx_recipe_tag"`
		Tag      Tag
	}

	Follow struct {
		BaseModel
		UserID   uint64 `gorm:"not null;uniqueIndex:uidx_follow_pair"`
		AuthorID uint64 `gorm:"not null;uniqueIndex:uidx_follow_pair"`
		Author   User
	}

	Favorite struct {
		BaseModel
		UserID   uint64 `gorm:"not null;uniqueIndex:uidx_favorite_pair"`
		RecipeID uint64 `gorm:"not null;uniqueIndex:uidx_favorite_pair"`
		Recipe   Recipe
	}

	Cart struct {
		BaseModel
		UserID   uint64 `gorm:"not null;uniqueIndex:uidx_cart_pair"`
		RecipeID uint64 `gorm:"not null;uniqueIndex:uidx_cart_pair"`
		Recipe   Recipe
	}
)

func Migrate(conn *gorm.DB) error {
	models := []interface{}{
		&User{},
		&Tag{},
		&Ingredient{},
		&Recipe{},
		&RecipeIngredient{},
		&RecipeTag{},
		&Follow{},
		&Favorite{},
		&Cart{},
	}
	for _, model := range models {
		if err := conn.AutoMigrate(model); err != nil {
			return errors.Wrapf(err, "migrate %T", model)
		}
	}
	return nil
}

func NewGormClient(cfg *config.Config) (*gorm.DB, error) {
	newLogger := logger.New(stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Info,
		Colorful:                  true,
		IgnoreRecordNotFoundError: false,
	})

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err := Migrate(conn); err != nil {
		return nil, err
	}

	return conn, nil
}
