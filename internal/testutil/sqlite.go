// Package testutil はテスト用のDB接続などを提供する
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"go_5_superlingo/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteDB はテストごとに独立したインメモリ sqlite を作り、マイグレーション済みで返す。
// 接続は1本に絞るので、トランザクションは直列に実行される。
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1"
	db, err := gorm.Open(sqlite.Open(dsn), repository.NewGormConfig(DiscardLogger()))
	require.NoError(t, err, "failed to open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repository.Migrate(db), "failed to migrate sqlite")
	return db
}

// DiscardLogger は出力を捨てる slog.Logger
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
