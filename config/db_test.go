package config

import (
	"path/filepath"
	"testing"

	"food-ordering-api/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenDB("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestOpenDB_UnknownDriver(t *testing.T) {
	_, err := OpenDB("mongodb", "whatever")
	require.Error(t, err)
}

func TestClearAll_RemovesEveryRow(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, SeedDemo(db))

	customer, err := CreateUser(db, "Casey", "casey@example.com", "secret1", models.RoleCustomer)
	require.NoError(t, err)

	var item models.FoodItem
	require.NoError(t, db.First(&item).Error)
	order := models.Order{
		CustomerID:      customer.ID,
		RestaurantID:    item.RestaurantID,
		DeliveryAddress: "1 Main St",
		OrderStatus:     models.StatusPlaced,
		TotalAmount:     item.Price,
		Items:           []models.OrderItem{{FoodItemID: item.ID, Quantity: 1, Price: item.Price, Name: item.Name}},
		StatusHistory:   []models.OrderStatusHistory{{ToStatus: models.StatusPlaced, ChangedBy: customer.ID}},
	}
	require.NoError(t, db.Create(&order).Error)
	require.NoError(t, db.Create(&models.Contact{CustomerID: customer.ID, SenderName: "Casey", Message: "hi", Status: models.ContactUnread}).Error)

	removed, err := ClearAll(db)
	require.NoError(t, err)
	require.Equal(t, int64(2), removed["users"])
	require.Equal(t, int64(1), removed["orders"])

	for _, m := range models.AllModels() {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		require.Zero(t, count, "%T", m)
	}
}

func TestClearAll_EmptyDatabase(t *testing.T) {
	db := openTestDB(t)
	removed, err := ClearAll(db)
	require.NoError(t, err)
	require.Len(t, removed, len(models.AllModels()))
}
