package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"music_learning_backend/internal/config"
	"music_learning_backend/internal/model"
	"music_learning_backend/internal/service"
	"music_learning_backend/internal/util"
	"music_learning_backend/pkg/database"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["create-admin"])
	assert.Equal(t, "configs", root.PersistentFlags().Lookup("config").DefValue)
}

func TestCreateAdmin(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "cli.db")},
		JWT:      config.JWTConfig{Secret: "cli-test-secret"},
	}
	db, err := database.InitDB(&cfg.Database, false)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	in := service.RegisterInput{Email: "Admin@Example.com", Password: "s3cret!!", FirstName: "Clara"}
	id, err := createAdmin(context.Background(), db, cfg, in)
	require.NoError(t, err)

	var user model.User
	require.NoError(t, db.First(&user, "id = ?", id).Error)
	assert.Equal(t, "admin@example.com", user.Email)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret!!")))

	_, err = createAdmin(context.Background(), db, cfg, in)
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestMigrateCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "migrate.db")
	yaml := "database:\n  driver: sqlite\n  path: " + dbPath + "\njwt:\n  secret: migrate-test-secret\nstorage:\n  type: memory\nlog:\n  file: " + filepath.Join(dir, "app.log") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	root := newRootCmd()
	root.SetArgs([]string{"migrate", "--config", dir})
	require.NoError(t, root.Execute())

	_, err := os.Stat(dbPath)
	assert.NoError(t, err)
}
