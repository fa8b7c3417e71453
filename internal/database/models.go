package database

import (
	"github.com/chrissnell/climateapi/internal/climate"
	"gorm.io/gorm"
)

// StationRecord maps the station table of the climate dataset
type StationRecord struct {
	ID        int     `gorm:"primaryKey;column:id"`
	Station   string  `gorm:"column:station;not null;uniqueIndex"`
	Name      string  `gorm:"column:name"`
	Latitude  float64 `gorm:"column:latitude"`
	Longitude float64 `gorm:"column:longitude"`
	Elevation float64 `gorm:"column:elevation"`
}

// TableName specifies the table name for StationRecord
func (StationRecord) TableName() string {
	return "station"
}

// MeasurementRecord maps the measurement table. Date is ISO text so that range
// bounds compare lexically on every backend.
type MeasurementRecord struct {
	ID      int      `gorm:"primaryKey;column:id"`
	Station string   `gorm:"column:station;not null;index"`
	Date    string   `gorm:"column:date;type:text;not null;index"`
	Prcp    *float64 `gorm:"column:prcp"`
	Tobs    float64  `gorm:"column:tobs;not null"`
}

// TableName specifies the table name for MeasurementRecord
func (MeasurementRecord) TableName() string {
	return "measurement"
}

// NewStationRecord converts a dataset station into its table row
func NewStationRecord(s climate.Station) StationRecord {
	return StationRecord{
		ID:        s.ID,
		Station:   s.Station,
		Name:      s.Name,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Elevation: s.Elevation,
	}
}

// NewMeasurementRecord converts a dataset measurement into its table row
func NewMeasurementRecord(m climate.Measurement) MeasurementRecord {
	return MeasurementRecord{
		ID:      m.ID,
		Station: m.Station,
		Date:    m.Date,
		Prcp:    m.Prcp,
		Tobs:    m.Tobs,
	}
}

// AutoMigrate creates the station and measurement tables when they are missing.
// Only the dataset loader calls it; the API never alters the schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&StationRecord{}, &MeasurementRecord{})
}
