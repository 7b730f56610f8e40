package database

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"music_learning_backend/internal/config"
)

func TestInitDBSqliteMigrates(t *testing.T) {
	cfg := &config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")}
	db, err := InitDB(cfg, false)
	require.NoError(t, err)
	defer Close(db)

	for _, table := range []string{"users", "quizzes", "quiz_questions", "lessons", "lesson_quizzes", "user_completed_quizzes", "user_recordings"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex("user_completed_quizzes", "idx_user_quiz"))
	assert.True(t, db.Migrator().HasIndex("user_recordings", "idx_user_lesson"))
}

func TestInitDBRejectsUnknownDriver(t *testing.T) {
	_, err := InitDB(&config.DatabaseConfig{Driver: "oracle"}, false)
	assert.Error(t, err)
}

func TestInitRedis(t *testing.T) {
	rdb, err := InitRedis(&config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, rdb)

	mr := miniredis.RunT(t)
	cfg := &config.RedisConfig{Enabled: true, Host: mr.Host()}
	_, err = fmt.Sscanf(mr.Port(), "%d", &cfg.Port)
	require.NoError(t, err)

	rdb, err = InitRedis(cfg)
	require.NoError(t, err)
	require.NotNil(t, rdb)
	defer rdb.Close()
}
