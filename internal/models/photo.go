package models

import (
	"time"

	"github.com/google/uuid"
)

// Photo is fault evidence attached to a single checklist item.
type Photo struct {
	ID           uuid.UUID `gorm:"primaryKey;type:uuid" json:"id"`
	SubmissionID string    `gorm:"index;not null" json:"submissionId"`
	ItemIndex    int       `gorm:"not null" json:"itemIndex"`
	Filename     string    `gorm:"not null" json:"filename"`
	ContentType  string    `json:"contentType"`
	Content      []byte    `gorm:"type:blob" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
