package database

import (
	"fmt"
	"log"

	"tryout_prep_backend/internal/config"
	"tryout_prep_backend/internal/model"

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
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate creates/updates the schema. The unique index on
// tryout_attempts(user_id, tryout_id) and the composite keys of the link and
// answer tables are what the attempt lifecycle relies on.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.AnswerOption{},
		&model.Tryout{},
		&model.TryoutQuestion{},
		&model.TryoutAttempt{},
		&model.TryoutUserAnswer{},
		&model.PracticePack{},
		&model.PracticePackQuestion{},
		&model.Material{},
	)
}
