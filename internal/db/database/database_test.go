package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rizkyprovidervisa/visa-admin/internal/config"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/models"
	"github.com/rizkyprovidervisa/visa-admin/internal/logger"
	gormadapter "github.com/rizkyprovidervisa/visa-admin/internal/logger/adapter/gorm"
)

func TestOpenSQLite(t *testing.T) {
	cfg := &config.Config{DB: config.DB{Engine: config.EngineSQLite, Path: ":memory:"}}

	db, err := Open(cfg)
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Country{}))
	require.NoError(t, db.Create(&models.Country{Name: "Japan", Code: "JP"}).Error)

	var count int64
	require.NoError(t, db.Model(&models.Country{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	require.NoError(t, Close(db))
	assert.Error(t, sqlDB.Ping())
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(nil)
	require.ErrorIs(t, err, ErrNilConfig)

	_, err = Open(&config.Config{DB: config.DB{Engine: "oracle"}})
	require.Error(t, err)

	assert.NoError(t, Close(nil))
}

func TestSQLLogger(t *testing.T) {
	l, ok := SQLLogger(logger.Log{LogLevel: "info"}).(*gormadapter.Logger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, l.Level)

	l, ok = SQLLogger(logger.Log{LogLevel: "trace"}).(*gormadapter.Logger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Info, l.Level)
}
