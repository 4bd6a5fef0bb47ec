package runs

import (
	"time"

	"are-we-consistent-yet/core/consistency"
)

// RunRecord is a stored consistency report.
type RunRecord struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Container           string    `gorm:"size:255;not null" json:"container"`
	Endpoint            string    `gorm:"size:255" json:"endpoint"`
	ReaderEndpoint      string    `gorm:"size:255" json:"reader_endpoint"`
	Iterations          int       `gorm:"not null" json:"iterations"`
	ObjectSize          int64     `gorm:"not null" json:"object_size"`
	ReadAfterCreate     int       `json:"read_after_create"`
	ReadAfterDelete     int       `json:"read_after_delete"`
	ReadAfterOverwrite  int       `json:"read_after_overwrite"`
	ListAfterCreate     int       `json:"list_after_create"`
	ListAfterDelete     int       `json:"list_after_delete"`
	OverwriteNotVisible int       `json:"overwrite_not_visible"`
	DurationMillis      int64     `json:"duration_ms"`
	CreatedAt           time.Time `gorm:"index" json:"created_at"`
}

// TableName pins the table name.
func (RunRecord) TableName() string {
	return "consistency_runs"
}

// NewRunRecord flattens a report into a record.
func NewRunRecord(container, endpoint, readerEndpoint string, report consistency.Report, elapsed time.Duration) RunRecord {
	return RunRecord{
		Container:           container,
		Endpoint:            endpoint,
		ReaderEndpoint:      readerEndpoint,
		Iterations:          report.Iterations,
		ObjectSize:          report.ObjectSize,
		ReadAfterCreate:     report.ReadAfterCreate,
		ReadAfterDelete:     report.ReadAfterDelete,
		ReadAfterOverwrite:  report.ReadAfterOverwrite,
		ListAfterCreate:     report.ListAfterCreate,
		ListAfterDelete:     report.ListAfterDelete,
		OverwriteNotVisible: report.OverwriteNotVisible,
		DurationMillis:      elapsed.Milliseconds(),
	}
}

// Report rebuilds the consistency report held by the record.
func (r RunRecord) Report() consistency.Report {
	return consistency.Report{
		Iterations:          r.Iterations,
		ObjectSize:          r.ObjectSize,
		ReadAfterCreate:     r.ReadAfterCreate,
		ReadAfterDelete:     r.ReadAfterDelete,
		ReadAfterOverwrite:  r.ReadAfterOverwrite,
		ListAfterCreate:     r.ListAfterCreate,
		ListAfterDelete:     r.ListAfterDelete,
		OverwriteNotVisible: r.OverwriteNotVisible,
	}
}
