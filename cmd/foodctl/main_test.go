package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"food-ordering-api/config"
	"food-ordering-api/models"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func useTempDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SOURCE", path)
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("ADMIN_PASSWORD", "")
	return path
}

func TestSeedAdminThenReset(t *testing.T) {
	path := useTempDB(t)

	out, err := run(t, "seed-admin", "--email", "root@example.com", "--password", "secret1")
	require.NoError(t, err)
	require.Contains(t, out, "created")

	out, err = run(t, "seed-admin", "--email", "root@example.com", "--password", "secret1")
	require.NoError(t, err)
	require.Contains(t, out, "already exists")

	_, err = run(t, "reset-admin", "--email", "root@example.com", "--password", "secret2")
	require.NoError(t, err)

	db, err := config.OpenDB("sqlite", path)
	require.NoError(t, err)
	var admins int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins)
	require.EqualValues(t, 1, admins)
}

func TestSeedAdmin_MissingCredentials(t *testing.T) {
	useTempDB(t)
	_, err := run(t, "seed-admin")
	require.Error(t, err)
}

func TestClearDB_RequiresConfirmation(t *testing.T) {
	path := useTempDB(t)

	_, err := run(t, "seed-demo")
	require.NoError(t, err)

	_, err = run(t, "clear-db")
	require.ErrorContains(t, err, "--yes")

	out, err := run(t, "clear-db", "--yes")
	require.NoError(t, err)
	require.Contains(t, out, "food_items")

	db, err := config.OpenDB("sqlite", path)
	require.NoError(t, err)
	for _, m := range models.AllModels() {
		var n int64
		db.Model(m).Count(&n)
		require.Zero(t, n)
	}
}

func TestCreateUser(t *testing.T) {
	useTempDB(t)

	out, err := run(t, "create-user", "--name", "Olive Owner", "--email", "olive@example.com", "--password", "hunter22", "--role", "owner")
	require.NoError(t, err)
	require.Contains(t, out, "role owner")

	_, err = run(t, "create-user", "--name", "Olive Owner", "--email", "olive@example.com", "--password", "hunter22", "--role", "owner")
	require.ErrorIs(t, err, config.ErrEmailTaken)

	_, err = run(t, "create-user", "--name", "Bad", "--email", "bad@example.com", "--password", "hunter22", "--role", "driver")
	require.Error(t, err)
}
