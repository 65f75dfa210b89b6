package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ImportBatch represents one archived CSV import
type ImportBatch struct {
	ID           uuid.UUID `json:"id"`
	SourceFile   string    `json:"source_file"`
	RecordCount  int       `json:"record_count"`
	ErrorCount   int       `json:"error_count"`
	WarningCount int       `json:"warning_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Snapshot is a persisted KPI summary card, frozen with the range it was
// computed over so later recomputations can be compared against it.
type Snapshot struct {
	ID         uuid.UUID       `json:"id"`
	KPIKey     string          `json:"kpi_key"`
	RangeStart string          `json:"range_start,omitempty"`
	RangeEnd   string          `json:"range_end,omitempty"`
	Payload    json.RawMessage `json:"payload"`
	CreatedAt  time.Time       `json:"created_at"`
}
