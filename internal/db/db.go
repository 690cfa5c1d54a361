package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agendamento-smul/internal/config"
	"github.com/BruksfildServices01/agendamento-smul/internal/models"
)

// NewDB abre o banco de auditoria. Sem DATABASE_URL devolve nil e a
// auditoria fica só no log.
func NewDB(cfg *config.Config) *gorm.DB {
	if cfg.DBUrl == "" {
		log.Println("[DB] DATABASE_URL vazio, auditoria apenas em log")
		return nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
