package xcontext

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type record struct {
	ID   string `gorm:"primarykey"`
	Name string
}

func newTestDB(t *testing.T) context.Context {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	ctx := WithDB(context.Background(), db)
	require.NoError(t, DB(ctx).AutoMigrate(&record{}))
	return ctx
}

func count(t *testing.T, ctx context.Context) int64 {
	var n int64
	require.NoError(t, DB(ctx).Model(&record{}).Count(&n).Error)
	return n
}

func TestTransaction_Commit(t *testing.T) {
	ctx := newTestDB(t)

	txCtx := WithDBTransaction(ctx)
	require.NoError(t, DB(txCtx).Create(&record{ID: "1"}).Error)
	txCtx = WithCommitDBTransaction(txCtx)

	// Rollback after commit is a no-op.
	WithRollbackDBTransaction(txCtx)
	require.Equal(t, int64(1), count(t, ctx))
}

func TestTransaction_Rollback(t *testing.T) {
	ctx := newTestDB(t)

	txCtx := WithDBTransaction(ctx)
	require.NoError(t, DB(txCtx).Create(&record{ID: "1"}).Error)
	WithRollbackDBTransaction(txCtx)

	require.Equal(t, int64(0), count(t, ctx))
}

func TestTransaction_Nested(t *testing.T) {
	ctx := newTestDB(t)

	outer := WithDBTransaction(ctx)
	inner := WithDBTransaction(outer)
	require.NoError(t, DB(inner).Create(&record{ID: "1"}).Error)

	// The inner commit must not end the outer transaction.
	WithCommitDBTransaction(inner)
	WithRollbackDBTransaction(outer)

	require.Equal(t, int64(0), count(t, ctx))
}

func TestValues(t *testing.T) {
	ctx := context.Background()
	require.Equal(t, "", RequestUserID(ctx))
	require.Nil(t, HTTPRequest(ctx))
	require.Nil(t, SnowFlake(ctx))
	require.NotNil(t, Logger(ctx))

	ctx = WithRequestUserID(ctx, "user1")
	require.Equal(t, "user1", RequestUserID(ctx))
}
