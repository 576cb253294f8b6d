package config

import (
	"sync"
	"testing"

	"food-ordering-api/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUser_HashesAndRejectsDuplicates(t *testing.T) {
	db := openTestDB(t)

	user, err := CreateUser(db, " Alice ", "Alice@Example.com", "secret1", models.RoleCustomer)
	require.NoError(t, err)
	require.Equal(t, "Alice", user.Name)
	require.Equal(t, "alice@example.com", user.Email)
	require.Equal(t, models.UserActive, user.Status)
	require.NotEqual(t, "secret1", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))

	_, err = CreateUser(db, "Alice Again", "alice@example.com", "other12", models.RoleOwner)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateUser_TrimmedNameTooShort(t *testing.T) {
	db := openTestDB(t)

	for _, name := range []string{"", "ab", "  ab  ", "\t x \n"} {
		_, err := CreateUser(db, name, "short@example.com", "secret1", models.RoleCustomer)
		require.ErrorIs(t, err, ErrNameTooShort, "%q", name)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	require.Zero(t, count)
}

func TestCreateUser_ConcurrentSameEmail(t *testing.T) {
	db := openTestDB(t)

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = CreateUser(db, "Racer", "race@example.com", "secret1", models.RoleCustomer)
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		require.ErrorIs(t, err, ErrEmailTaken)
	}
	require.Equal(t, 1, created)
}

func TestIsDuplicateKey_UniqueEmailIndex(t *testing.T) {
	db := openTestDB(t)

	first := models.User{Name: "Dup", Email: "dup@example.com", PasswordHash: "x", Role: models.RoleCustomer, Status: models.UserActive}
	require.NoError(t, db.Create(&first).Error)

	second := models.User{Name: "Dup", Email: "dup@example.com", PasswordHash: "x", Role: models.RoleCustomer, Status: models.UserActive}
	err := db.Create(&second).Error
	require.Error(t, err)
	require.True(t, isDuplicateKey(err), err.Error())
}

func TestSeedAdmin_Idempotent(t *testing.T) {
	db := openTestDB(t)

	created, err := SeedAdmin(db, "Admin", "admin@example.com", "adminpw")
	require.NoError(t, err)
	require.True(t, created)

	created, err = SeedAdmin(db, "Admin", "admin@example.com", "adminpw")
	require.NoError(t, err)
	require.False(t, created)

	var admins int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins)
	require.Equal(t, int64(1), admins)

	_, err = SeedAdmin(db, "Admin", "", "")
	require.Error(t, err)
}

func TestResetAdmin_RecreatesAccount(t *testing.T) {
	db := openTestDB(t)

	_, err := SeedAdmin(db, "Admin", "admin@example.com", "oldpass")
	require.NoError(t, err)

	after, err := ResetAdmin(db, "Admin", "admin@example.com", "newpass")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, after.Role)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(after.PasswordHash), []byte("newpass")))
	require.Error(t, bcrypt.CompareHashAndPassword([]byte(after.PasswordHash), []byte("oldpass")))

	var count int64
	db.Model(&models.User{}).Where("email = ?", "admin@example.com").Count(&count)
	require.Equal(t, int64(1), count)
}

func TestSeedDemo_Rerunnable(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, SeedDemo(db))
	require.NoError(t, SeedDemo(db))

	var restaurants, items int64
	db.Model(&models.Restaurant{}).Count(&restaurants)
	db.Model(&models.FoodItem{}).Count(&items)
	require.Equal(t, int64(2), restaurants)
	require.Equal(t, int64(6), items)
}
