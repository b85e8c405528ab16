package utils

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
	mu   sync.RWMutex
)

// InitDB initializes database connection
func InitDB(database *gorm.DB) {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		db = database
	})
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	mu.RLock()
	defer mu.RUnlock()
	return db
}

// PingDB checks the shared connection; nil when no database is configured.
func PingDB(ctx context.Context) error {
	conn := GetDB()
	if conn == nil {
		return nil
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Join(errors.New("database unreachable"), err)
	}
	return nil
}
