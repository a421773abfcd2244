package model

import (
	"time"

	"github.com/google/uuid"
)

// Submission is a stored Cabrillo log
type Submission struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Callsign  string    `gorm:"column:callsign"`
	Contest   string    `gorm:"column:contest"`
	QSOCount  int       `gorm:"column:qso_count"`
	Content   string    `gorm:"column:content"`
	Valid     bool      `gorm:"column:valid"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Submission) TableName() string {
	return "submissions"
}
