package database

import (
	"fmt"
	"language_center_backend/internal/config"
	"language_center_backend/internal/model"
	"log"

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

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.AttendanceSession{},
		&model.AttendanceRecord{},
		&model.GradeItem{},
		&model.GradeEntry{},
		&model.Exam{},
		&model.ExamSection{},
		&model.ExamQuestion{},
		&model.ExamSubmission{},
		&model.PQRTicket{},
		&model.PQRResponse{},
		&model.ChatConversation{},
		&model.ChatMessage{},
		&model.UploadedFile{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}
