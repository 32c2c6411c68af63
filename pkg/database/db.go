package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Tenant represents one clinic account.
type Tenant struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Staff represents a clinic staff member, doubling as the login user.
type Staff struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	TenantID     string    `gorm:"index;not null" json:"tenant_id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null;default:'staff'" json:"role"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	Active       bool      `gorm:"default:true" json:"active"`
	MaxHours     float64   `gorm:"default:40" json:"max_hours"`
	CreatedAt    time.Time `json:"created_at"`
}

// Coverage represents a stored coverage requirement. Timestamps are
// absolute instants; all day bucketing happens at read time in the
// viewer's zone.
type Coverage struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	TenantID      string    `gorm:"index;not null" json:"tenant_id"`
	Role          string    `gorm:"not null" json:"role"`
	StartTime     time.Time `gorm:"not null" json:"startTime"`
	EndTime       time.Time `gorm:"not null" json:"endTime"`
	RequiredCount int       `gorm:"not null;default:1" json:"requiredCount"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Shift represents a stored scheduled shift.
type Shift struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	TenantID  string    `gorm:"index;not null" json:"tenant_id"`
	StaffID   string    `gorm:"index;not null" json:"staff_id"`
	Staff     *Staff    `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	StartTime time.Time `gorm:"not null" json:"startTime"`
	EndTime   time.Time `gorm:"not null" json:"endTime"`
	Status    string    `gorm:"not null;default:'scheduled'" json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TimeOffRequest represents a staff time-off request and its decision.
type TimeOffRequest struct {
	ID        string     `gorm:"primaryKey" json:"id"`
	TenantID  string     `gorm:"index;not null" json:"tenant_id"`
	StaffID   string     `gorm:"index;not null" json:"staff_id"`
	Staff     *Staff     `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	StartDate time.Time  `gorm:"not null" json:"startDate"`
	EndDate   time.Time  `gorm:"not null" json:"endDate"`
	Reason    string     `json:"reason,omitempty"`
	Status    string     `gorm:"not null;default:'pending'" json:"status"` // pending | approved | denied
	DecidedBy *string    `json:"decided_by,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// APIKey represents an HMAC-signed integration key.
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	TenantID   string     `gorm:"index" json:"tenant_id"`
	Key        string     `gorm:"unique;not null" json:"-"`
	Name       string     `gorm:"not null" json:"name"`
	KeyPreview string     `json:"key_preview"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage accumulates per-key, per-day integration usage.
type APIUsage struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	KeyID         uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date          string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount  int    `gorm:"default:0" json:"request_count"`
	TotalCoverage int    `gorm:"default:0" json:"total_coverage"`
	TotalShifts   int    `gorm:"default:0" json:"total_shifts"`
}

// InitDB initializes the database connection and migrates the schema.
// DATABASE_URL selects Postgres; otherwise a local SQLite file is used.
func InitDB() *gorm.DB {
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
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "clinicshift.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	db.AutoMigrate(&Tenant{}, &Staff{}, &Coverage{}, &Shift{}, &TimeOffRequest{}, &APIKey{}, &APIUsage{})

	return db
}
