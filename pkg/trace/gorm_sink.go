package trace

import (
	"context"
	"encoding/json"
	"fmt"

	"rag-chat-be/internal/model"

	"gorm.io/gorm"
)

// GormSink stores completed run trees in the trace_runs table, the whole
// tree serialized into a JSONB payload column.
type GormSink struct {
	db *gorm.DB
}

func NewGormSink(db *gorm.DB) *GormSink {
	return &GormSink{db: db}
}

func (s *GormSink) Export(ctx context.Context, sessionID string, root *Run) error {
	payload, err := json.Marshal(root)
	if err != nil {
		return fmt.Errorf("marshal trace run: %w", err)
	}

	row := model.TraceRun{
		Id:        root.ID,
		SessionId: sessionID,
		Name:      root.Name,
		RunType:   string(root.Type),
		Error:     root.Error,
		Payload:   payload,
		StartedAt: root.StartTime,
		EndedAt:   root.EndTime,
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("persist trace run: %w", err)
	}
	return nil
}
