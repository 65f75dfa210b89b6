package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImportBatchType(t *testing.T) {
	b := ImportBatch{
		SourceFile:   "learning.csv",
		RecordCount:  42,
		ErrorCount:   2,
		WarningCount: 1,
	}

	assert.Equal(t, "learning.csv", b.SourceFile)
	assert.Equal(t, 42, b.RecordCount)
	assert.Equal(t, 2, b.ErrorCount)
}

func TestSnapshotType(t *testing.T) {
	s := Snapshot{
		KPIKey:     "learning",
		RangeStart: "2025-01-01",
		Payload:    []byte(`{"value": 1.2}`),
	}

	assert.Equal(t, "learning", s.KPIKey)
	assert.JSONEq(t, `{"value": 1.2}`, string(s.Payload))
}
