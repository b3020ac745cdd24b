package migration

import "gorm.io/gorm"

var autoMigrateModels []interface{}

// RegisterAutoMigrateModels 注册需要自动迁移的模型，模型包的init()中调用
func RegisterAutoMigrateModels(models ...interface{}) {
	autoMigrateModels = append(autoMigrateModels, models...)
}

// AutoMigrate 执行所有已注册模型的迁移
func AutoMigrate(db *gorm.DB) error {
	if len(autoMigrateModels) == 0 {
		return nil
	}
	return db.AutoMigrate(autoMigrateModels...)
}
