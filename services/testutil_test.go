package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"storefront/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.LoginToken{},
		&models.Product{},
		&models.Offer{},
		&models.Order{},
		&models.OrderItem{},
		&models.Cart{},
		&models.CartItem{},
	)
	require.NoError(t, err)

	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, name, price string, stock uint) *models.Product {
	t.Helper()

	product := models.Product{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func createTestOffer(t *testing.T, db *gorm.DB, productID uint, percent string) {
	t.Helper()

	offer := models.Offer{
		ProductID: productID,
		Percent:   decimal.RequireFromString(percent),
		Active:    true,
	}
	require.NoError(t, db.Create(&offer).Error)
}
