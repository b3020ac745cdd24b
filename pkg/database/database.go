package database

import (
	"fmt"

	"github.com/flaboy/aira-checkout/pkg/migration"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var db *gorm.DB

// Init 打开数据库连接并执行已注册模型的迁移
func Init(dsn string) error {
	if db != nil {
		return nil
	}

	conn, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := migration.AutoMigrate(conn); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	db = conn
	return nil
}

// Database 获取全局数据库句柄
func Database() *gorm.DB {
	return db
}

// SetDatabase 注入已有的数据库句柄（测试用）
func SetDatabase(conn *gorm.DB) {
	db = conn
}
