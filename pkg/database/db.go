package database

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// AdminAccount represents the admin_accounts table. The clinic shares one
// admin password; read-only guest access needs no account at all.
type AdminAccount struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuditLog represents the audit_logs table: one row per mutating request.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Actor     string    `gorm:"index;not null" json:"actor"`
	Method    string    `gorm:"not null" json:"method"`
	Path      string    `gorm:"not null" json:"path"`
	Status    int       `json:"status"`
	ClientIP  string    `json:"client_ip"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// InitDB initializes the database connection and migrates the schema.
// DATABASE_URL selects postgres; otherwise a local sqlite file is used.
func InitDB(sqlitePath string) *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		if sqlitePath == "" {
			sqlitePath = "data/admin.db"
		}
		if mkErr := os.MkdirAll(filepath.Dir(sqlitePath), 0755); mkErr != nil {
			log.Fatalf("failed to create database directory: %v", mkErr)
		}
		db, err = gorm.Open(sqlite.Open(sqlitePath+"?_journal_mode=WAL&_busy_timeout=5000"), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	db.AutoMigrate(&AdminAccount{}, &AuditLog{})

	return db
}
