package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/despachos/equipcheck/internal/models"
)

type ApprovalRepo struct {
	db *gorm.DB
}

func NewApprovalRepo(db *gorm.DB) *ApprovalRepo {
	return &ApprovalRepo{db: db}
}

// Replace stores the approval, removing any previous row for the same
// submission first.
func (r *ApprovalRepo) Replace(ctx context.Context, appr *models.Approval) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_id = ?", appr.SubmissionID).Delete(&models.Approval{}).Error; err != nil {
			return err
		}
		return tx.Create(appr).Error
	})
}

func (r *ApprovalRepo) FindBySubmission(ctx context.Context, submissionID string) (*models.Approval, error) {
	var a models.Approval
	err := r.db.WithContext(ctx).Where("submission_id = ?", submissionID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindForSubmissions loads approvals for a set of submissions without the
// embedded PDF blobs; the export sheet only needs the review columns.
func (r *ApprovalRepo) FindForSubmissions(ctx context.Context, submissionIDs []string) ([]models.Approval, error) {
	if len(submissionIDs) == 0 {
		return nil, nil
	}
	var approvals []models.Approval
	err := r.db.WithContext(ctx).
		Select("id", "submission_id", "supervisor_username", "supervisor_name", "approved", "notes", "approved_at").
		Where("submission_id IN ?", submissionIDs).
		Find(&approvals).Error
	return approvals, err
}
