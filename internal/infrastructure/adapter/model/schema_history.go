package model

import (
	"time"
)

// SchemaHistory represents one row of a schema history table. The table name is
// configurable, so queries scope the model with db.Table(name).
type SchemaHistory struct {
	InstalledRank int       `gorm:"column:installed_rank;primaryKey;autoIncrement:false"`
	Version       *string   `gorm:"column:version;type:varchar(50)"` // nil for repeatable migrations
	Description   string    `gorm:"column:description;type:varchar(200);not null"`
	Type          string    `gorm:"column:type;type:varchar(20);not null"`
	Script        string    `gorm:"column:script;type:varchar(1000);not null"`
	Checksum      *int32    `gorm:"column:checksum"`
	InstalledBy   string    `gorm:"column:installed_by;type:varchar(100);not null"`
	InstalledOn   time.Time `gorm:"column:installed_on;not null"`
	ExecutionTime int       `gorm:"column:execution_time;not null"` // milliseconds
	Success       bool      `gorm:"column:success;not null"`
}
