package service

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mealdeck/recipebook-back/internal/db"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	return conn
}

func newTestLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func seedUser(t *testing.T, conn *gorm.DB, username string) *db.User {
	t.Helper()
	user := db.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "hash",
		Token:    "token-" + username,
	}
	require.NoError(t, conn.Create(&user).Error)
	return &user
}

var tagColorSeq int

func seedTag(t *testing.T, conn *gorm.DB, name string) *db.Tag {
	t.Helper()
	tagColorSeq++
	tag := db.Tag{
		Name:  name,
		Color: fmt.Sprintf("#%06x", tagColorSeq),
		Slug:  name,
	}
	require.NoError(t, conn.Create(&tag).Error)
	return &tag
}

func seedIngredient(t *testing.T, conn *gorm.DB, name, unit string) *db.Ingredient {
	t.Helper()
	ingredient := db.Ingredient{
		Name:            name,
		MeasurementUnit: unit,
	}
	require.NoError(t, conn.Create(&ingredient).Error)
	return &ingredient
}

func countRows(t *testing.T, conn *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, conn.Model(model).Where(query, args...).Count(&count).Error)
	return count
}
