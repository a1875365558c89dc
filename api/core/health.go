package core

import (
	"context"
	"time"

	"github.com/handleme/gallery/cache"
	"github.com/handleme/gallery/storage"
	"gorm.io/gorm"
)

func checkDatabaseHealth(db *gorm.DB) string {
	if db == nil {
		return "not configured"
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err.Error()
	}
	if err := sqlDB.Ping(); err != nil {
		return err.Error()
	}
	return "ok"
}

func checkCacheHealth(provider cache.Provider) string {
	if provider == nil {
		return "not configured"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := provider.Ping(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}

func checkStorageHealth(provider storage.Provider) string {
	if provider == nil {
		return "not configured"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := provider.Health(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}
