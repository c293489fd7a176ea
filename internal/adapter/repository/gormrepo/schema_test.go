package gormrepo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schema only for tests (no ENUM, no DATE) ---

type loanSQLite struct {
	ID          uint64          `gorm:"primaryKey;column:id"`
	LoanID      string          `gorm:"size:32;uniqueIndex;column:loan_id"`
	OwnerID     uint64          `gorm:"column:owner_id"`
	Currency    string          `gorm:"column:currency;default:'COP'"`
	Principal   decimal.Decimal `gorm:"type:numeric;column:principal"`
	MonthlyRate decimal.Decimal `gorm:"type:numeric;column:monthly_rate;not null;default:0"`
	StartDate   time.Time       `gorm:"column:start_date"`
	DueDate     *time.Time      `gorm:"column:due_date"`
	Status      string          `gorm:"type:text;column:status;default:'active'"` // ← no enum
	Note        *string         `gorm:"column:note"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type movementSQLite struct {
	ID         uint64          `gorm:"primaryKey;column:id"`
	MovementID string          `gorm:"size:32;uniqueIndex;column:movement_id"`
	LoanID     uint64          `gorm:"column:loan_id;index"`
	Kind       string          `gorm:"type:text;column:kind"`
	Amount     decimal.Decimal `gorm:"type:numeric;column:amount"`
	OccurredAt time.Time       `gorm:"column:occurred_at"`
	Note       *string         `gorm:"column:note"`
	Reference  *string         `gorm:"column:reference"`
}

func (movementSQLite) TableName() string { return "movements" }

type userSQLite struct {
	ID           uint64    `gorm:"primaryKey;column:id"`
	UserID       string    `gorm:"size:32;uniqueIndex;column:user_id"`
	Username     string    `gorm:"uniqueIndex;column:username"`
	DisplayName  string    `gorm:"column:display_name"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"type:text;column:role;default:'client'"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
	CreatedBy    *uint64   `gorm:"column:created_by"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userSQLite) TableName() string { return "users" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// a single connection keeps every statement on the same in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&loanSQLite{}, &movementSQLite{}, &userSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
