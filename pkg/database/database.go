package database

import (
	"fmt"
	"log"

	"github.com/Shibo14/ielts-mock/internal/config"
	"github.com/Shibo14/ielts-mock/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.Center{},
		&model.User{},
		&model.Test{},
		&model.Question{},
		&model.Submission{},
		&model.Answer{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Every user needs a center row to hang off, even before seeding.
	var count int64
	db.Model(&model.Center{}).Count(&count)
	if count == 0 {
		db.Create(&model.Center{Name: "Default Center"})
	}

	return db, nil
}
