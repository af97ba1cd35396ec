package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TraceRun persists one completed pipeline run tree. The nested child runs
// live inside the JSON payload; only root-level attributes are columns.
type TraceRun struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SessionId string         `gorm:"type:varchar(36);index"`
	Name      string         `gorm:"type:varchar(128)"`
	RunType   string         `gorm:"type:varchar(16)"`
	Error     string         `gorm:"type:text"`
	Payload   datatypes.JSON `gorm:"type:jsonb"`
	StartedAt time.Time
	EndedAt   time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (TraceRun) TableName() string {
	return "trace_runs"
}
