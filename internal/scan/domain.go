package scan

import (
	"time"

	"scanlens-api/internal/common"
)

// Defaults applied when the classifier omits a field.
const (
	DefaultTitle      = "Unknown object"
	DefaultCategory   = "Other"
	DefaultConfidence = 50
)

// Record is one classification result. Records are append-only: never
// updated or deleted by this service.
type Record struct {
	ID         common.ScanID `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     common.UserID `json:"user_id" gorm:"not null;index:idx_scan_history_user_id"`
	Title      string        `json:"title" gorm:"type:varchar(255);not null"`
	Category   string        `json:"category" gorm:"type:varchar(100);not null"`
	Confidence int           `json:"confidence" gorm:"not null"`
	AIResponse *string       `json:"description" gorm:"column:ai_response;type:text"`
	CreatedAt  time.Time     `json:"created_at" gorm:"index:idx_scan_history_created_at"`
}

func (Record) TableName() string {
	return "scan_history"
}

// SubmitRequest carries a scan submission.
type SubmitRequest struct {
	UserID common.UserID `json:"user_id"`
	Image  string        `json:"image"`
}

// SubmitResult is the created record plus the description visibility
// decision already applied.
type SubmitResult struct {
	ScanID      common.ScanID `json:"scan_id"`
	Title       string        `json:"title"`
	Category    string        `json:"category"`
	Confidence  int           `json:"confidence"`
	Description *string       `json:"description"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Stats aggregates a user's full scan history, not just one page.
type Stats struct {
	TotalScans        int64
	AverageConfidence int
}

// HistoryResult is one page of records plus whole-history aggregates.
type HistoryResult struct {
	Scans             []Record `json:"scans"`
	TotalScans        int64    `json:"total_scans"`
	AverageConfidence int      `json:"average_confidence"`
}
