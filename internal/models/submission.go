package models

import "time"

// Workflow states of a submission. Approval is one-way: a submission is
// created PENDING and a supervisor moves it to APPROVED.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
)

// Condition reported for the equipment as a whole and per checklist item.
const (
	ConditionOperational = "OPERATIONAL"
	ConditionFault       = "FAULT"
	ConditionInoperative = "INOPERATIVE"
)

// ValidCondition reports whether s is one of the three known conditions.
func ValidCondition(s string) bool {
	switch s {
	case ConditionOperational, ConditionFault, ConditionInoperative:
		return true
	}
	return false
}

// Submission is one filled checklist for an equipment unit and shift.
// OperatorSignature holds the raw PNG bytes; encoding/json serializes
// []byte as base64, which is also the wire format clients send.
type Submission struct {
	ID                string    `gorm:"primaryKey" json:"id"`
	Date              string    `gorm:"index;not null" json:"date"` // ISO date (2006-01-02)
	Shift             string    `json:"shift"`
	Equipment         string    `gorm:"index;not null" json:"equipment"`
	OperatorUsername  string    `gorm:"index;not null" json:"operatorUsername"`
	OperatorName      string    `json:"operatorName"`
	GlobalStatus      string    `gorm:"not null" json:"globalStatus"`
	Note              string    `json:"note"`
	OperatorSignature []byte    `gorm:"type:blob" json:"operatorSignature,omitempty"`
	Status            string    `gorm:"index;not null" json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type SubmissionItem struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	SubmissionID string `gorm:"index;not null" json:"submissionId"`
	ItemIndex    int    `gorm:"not null" json:"itemIndex"`
	Section      string `json:"section"`
	Item         string `gorm:"not null" json:"item"`
	Status       string `gorm:"not null" json:"status"`
	Comment      string `json:"comment"`
}
