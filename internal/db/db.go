package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"agora/internal/config"
	"agora/internal/models"
)

// Open 连接数据库并自动迁移
func Open(driver, dsn string, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("db: connect: %w", err)
	}

	if driver == config.DriverSQLite {
		// 每个 sqlite 连接都是独立的 :memory: 库，只保留一个连接
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
	}
	if log != nil {
		log.Info("database connection established", zap.String("driver", driver))
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if log != nil {
		log.Info("database migration completed")
	}
	return db, nil
}

// newGormLogger 把 gorm 日志写进 zap。查不到记录是正常分支，不记日志
func newGormLogger(log *zap.Logger) gormlogger.Interface {
	if log == nil {
		log = zap.NewNop()
	}
	return gormlogger.New(zap.NewStdLog(log.Named("gorm")), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
		&models.Bookmark{},
	)
	if err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}
