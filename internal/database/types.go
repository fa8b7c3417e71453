package database

// statsRow receives a MIN/AVG/MAX aggregate. The pointers stay nil when the
// aggregate ran over zero rows.
type statsRow struct {
	TMin  *float64 `gorm:"column:tmin"`
	TAvg  *float64 `gorm:"column:tavg"`
	TMax  *float64 `gorm:"column:tmax"`
	Count int64    `gorm:"column:n"`
}

type observationRow struct {
	Date string   `gorm:"column:date"`
	Tobs float64  `gorm:"column:tobs"`
	Prcp *float64 `gorm:"column:prcp"`
}
