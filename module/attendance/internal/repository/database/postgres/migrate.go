package postgres

import (
	"time"

	"gorm.io/gorm"
)

// The location and clock tables are written with plain SQL; these rows only
// describe their schema for AutoMigrate.

type employeeLocationRow struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	EmployeeID string    `gorm:"type:varchar(36);index:idx_employee_locations_employee_ts,priority:1;not null"`
	Latitude   float64   `gorm:"not null"`
	Longitude  float64   `gorm:"not null"`
	Timestamp  time.Time `gorm:"index:idx_employee_locations_employee_ts,priority:2;not null"`
}

func (employeeLocationRow) TableName() string { return "employee_locations" }

type clockEntryRow struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	EmployeeID      string    `gorm:"type:varchar(36);index:idx_clock_entries_employee_recorded,priority:1;not null"`
	EstablishmentID string    `gorm:"type:varchar(36);not null"`
	Kind            string    `gorm:"type:varchar(8);not null"`
	Latitude        float64   `gorm:"not null"`
	Longitude       float64   `gorm:"not null"`
	DistanceMeters  float64   `gorm:"not null"`
	RecordedAt      time.Time `gorm:"index:idx_clock_entries_employee_recorded,priority:2;not null"`
}

func (clockEntryRow) TableName() string { return "clock_entries" }

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&companyRow{},
		&establishmentRow{},
		&employeeRow{},
		&employeeLocationRow{},
		&clockEntryRow{},
	)
}
