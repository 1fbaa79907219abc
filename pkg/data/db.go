// Package data persists user preferences and saved forcing runs to
// Postgres.
package data

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// User holds per-user overrides for the Dean profile. Nil fields fall back
// to the defaults.
type User struct {
	gorm.Model
	Name         string
	DefaultSite  string
	ProfileA     *float64
	ProfileM     *float64
	ClosureDepth *float64
	LastSeen     time.Time
}

// ForcingRun is a saved wave climate summary: which buoy and years produced
// which forcing scalars.
type ForcingRun struct {
	gorm.Model
	Site           string
	Station        string
	YearStart      int
	YearEnd        int
	MeanHeight     float64
	MeanPeriod     float64
	ModalDirection int
	Samples        int
}

func PostgresFromEnvOrDie() *gorm.DB {
	pw := os.Getenv("PGPASSWORD")
	host := os.Getenv("PGHOST")
	port := os.Getenv("PGPORT")
	dsn := fmt.Sprintf("host=%s user=postgres password=%s dbname=coastprep port=%s sslmode=disable TimeZone=America/Los_Angeles",
		host,
		pw,
		port)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect to database")
	}
	db.AutoMigrate(&User{}, &ForcingRun{})
	return db
}
