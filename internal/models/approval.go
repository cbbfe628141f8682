package models

import "time"

// Approval records the supervisor's sign-off on a submission, including
// the rendered PDF report. One approval per submission; re-approving
// replaces the previous row.
type Approval struct {
	ID                  uint      `gorm:"primaryKey" json:"-"`
	SubmissionID        string    `gorm:"uniqueIndex;not null" json:"submissionId"`
	SupervisorUsername  string    `gorm:"not null" json:"supervisorUsername"`
	SupervisorName      string    `json:"supervisorName"`
	Approved            bool      `json:"approved"`
	Notes               string    `json:"notes"`
	SupervisorSignature []byte    `gorm:"type:blob" json:"supervisorSignature,omitempty"`
	PDF                 []byte    `gorm:"type:blob" json:"-"`
	ApprovedAt          time.Time `json:"approvedAt"`
}
